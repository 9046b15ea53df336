package util

import (
    "strconv"
    "testing"
    "time"
)

func TestParseTradeDate(t *testing.T) {
    got, ok := ParseTradeDate("20240105")
    if !ok {
        t.Fatalf("expected ok")
    }
    if got.Year() != 2024 || got.Month() != time.January || got.Day() != 5 {
        t.Fatalf("unexpected date %v", got)
    }
}

func TestParseTradeDateInvalid(t *testing.T) {
    for _, s := range []string{"", "2024-01-05", "202401", "20241345"} {
        if _, ok := ParseTradeDate(s); ok {
            t.Fatalf("expected not ok for %q", s)
        }
    }
}

func TestTodayTradeDateShape(t *testing.T) {
    s := TodayTradeDate()
    if len(s) != 8 {
        t.Fatalf("unexpected shape %q", s)
    }
    if _, ok := ParseTradeDate(s); !ok {
        t.Fatalf("today should round-trip: %q", s)
    }
}

func TestParseTimeRFC3339(t *testing.T) {
    s := "2024-10-10T10:10:10Z"
    got, ok := ParseTime(s)
    if !ok {
        t.Fatalf("expected ok")
    }
    if got.UTC().Format(time.RFC3339) != s {
        t.Fatalf("unexpected time %v", got)
    }
}

func TestParseTimeUnix(t *testing.T) {
    ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
    got, ok := ParseTime(strconv.FormatInt(ts, 10))
    if !ok {
        t.Fatalf("expected ok")
    }
    if got.Unix() != ts {
        t.Fatalf("unexpected unix %v", got.Unix())
    }
}

func TestParseTimeDefault(t *testing.T) {
    def := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC)
    got := ParseTimeDefault("", def)
    if !got.Equal(def) {
        t.Fatalf("expected default")
    }
}
