package util

import (
    "strconv"
    "time"
)

// TradeDateLayout is the provider-side trade date format.
const TradeDateLayout = "20060102"

// TodayTradeDate returns today's date in YYYYMMDD.
func TodayTradeDate() string {
    return time.Now().Format(TradeDateLayout)
}

// ParseTradeDate parses a YYYYMMDD trade date. Returns (t, true) if valid.
func ParseTradeDate(s string) (time.Time, bool) {
    if len(s) != 8 {
        return time.Time{}, false
    }
    t, err := time.Parse(TradeDateLayout, s)
    if err != nil {
        return time.Time{}, false
    }
    return t, true
}

// ParseTime tries RFC3339, RFC3339Nano, and unix seconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
    if s == "" {
        return time.Time{}, false
    }
    if t, err := time.Parse(time.RFC3339, s); err == nil {
        return t, true
    }
    if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
        return t, true
    }
    if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
        return time.Unix(ts, 0), true
    }
    return time.Time{}, false
}

// ParseTimeDefault parses time or returns default if empty/invalid.
func ParseTimeDefault(s string, def time.Time) time.Time {
    if t, ok := ParseTime(s); ok {
        return t
    }
    return def
}
