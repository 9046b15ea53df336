package tushare

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchDailyParsesFieldsAndItems(t *testing.T) {
	var gotReq apiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"code": 0,
			"msg":  "",
			"data": map[string]any{
				"fields": []string{"ts_code", "trade_date", "pct_chg", "vol", "amount"},
				"items": [][]any{
					{"000001.SZ", "20240105", 1.2, 1000.0, 20000.0},
				},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", 5*time.Second)
	rows, err := c.FetchDaily(context.Background(), "000001.SZ", "20240105", "20240105")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotReq.APIName != "daily" || gotReq.Token != "tok" {
		t.Fatalf("unexpected request: %+v", gotReq)
	}
	if gotReq.Params["start_date"] != "20240105" || gotReq.Params["end_date"] != "20240105" {
		t.Fatalf("unexpected params: %v", gotReq.Params)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].Symbol != "000001.SZ" {
		t.Fatalf("symbol = %q", rows[0].Symbol)
	}
	if rows[0].Values["pct_chg"] != 1.2 || rows[0].Values["vol"] != 1000 {
		t.Fatalf("values = %v", rows[0].Values)
	}
	// string cells are not numeric columns
	if _, ok := rows[0].Values["trade_date"]; ok {
		t.Fatalf("trade_date should not be a numeric column")
	}
}

func TestFetchMoneyFlowEmptyItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"code": 0,
			"data": map[string]any{"fields": []string{"ts_code"}, "items": [][]any{}},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", 5*time.Second)
	rows, err := c.FetchMoneyFlow(context.Background(), "000001.SZ", "20240105")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("rows = %d, want 0", len(rows))
	}
}

func TestQueryAPIErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"code": 40001, "msg": "token invalid"})
	}))
	defer srv.Close()

	c := New(srv.URL, "bad", 5*time.Second)
	if _, err := c.FetchMargin(context.Background(), "000001.SZ", "20240105"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestQueryMissingToken(t *testing.T) {
	c := New("http://unused", "", 5*time.Second)
	if _, err := c.FetchDaily(context.Background(), "000001.SZ", "20240105", "20240105"); err == nil {
		t.Fatalf("expected error")
	}
}
