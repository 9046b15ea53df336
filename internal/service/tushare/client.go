package tushare

import (
	"context"
	"fmt"
	"time"

	"SectorPulse/internal/domain/models"
	drepo "SectorPulse/internal/domain/repository"
	xhttp "SectorPulse/pkg/http"
)

// Client implements MarketData against the Tushare pro JSON endpoint.
// Every indicator kind goes through the same single-POST protocol: the
// api_name selects the dataset, data comes back as parallel fields/items.
type Client struct {
	apiURL string
	token  string
	client *xhttp.Client
}

// New creates a Tushare MarketData client.
func New(apiURL, token string, timeout time.Duration) drepo.MarketData {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiURL: apiURL,
		token:  token,
		client: xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

type apiRequest struct {
	APIName string            `json:"api_name"`
	Token   string            `json:"token"`
	Params  map[string]string `json:"params"`
	Fields  string            `json:"fields"`
}

type apiResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		Fields []string `json:"fields"`
		Items  [][]any  `json:"items"`
	} `json:"data"`
}

// FetchDaily returns daily OHLCV rows for one symbol over a date range.
func (c *Client) FetchDaily(ctx context.Context, symbol, startDate, endDate string) ([]models.IndicatorRow, error) {
	return c.query(ctx, "daily", symbol, map[string]string{
		"ts_code":    symbol,
		"start_date": startDate,
		"end_date":   endDate,
	})
}

// FetchMoneyFlow returns money-flow rows for one symbol on a trade date.
func (c *Client) FetchMoneyFlow(ctx context.Context, symbol, tradeDate string) ([]models.IndicatorRow, error) {
	return c.query(ctx, "moneyflow", symbol, map[string]string{
		"ts_code":    symbol,
		"trade_date": tradeDate,
	})
}

// FetchMargin returns margin-trading rows for one symbol on a trade date.
func (c *Client) FetchMargin(ctx context.Context, symbol, tradeDate string) ([]models.IndicatorRow, error) {
	return c.query(ctx, "margin_detail", symbol, map[string]string{
		"ts_code":    symbol,
		"trade_date": tradeDate,
	})
}

func (c *Client) query(ctx context.Context, apiName, symbol string, params map[string]string) ([]models.IndicatorRow, error) {
	if c.token == "" {
		return nil, fmt.Errorf("tushare: token is not configured")
	}

	var resp apiResponse
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    c.apiURL,
		Body: apiRequest{
			APIName: apiName,
			Token:   c.token,
			Params:  params,
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("tushare %s %s: %w", apiName, symbol, err)
	}
	if resp.Code != 0 {
		return nil, fmt.Errorf("tushare %s %s: api error %d: %s", apiName, symbol, resp.Code, resp.Msg)
	}

	return rowsFromItems(symbol, resp.Data.Fields, resp.Data.Items), nil
}

// rowsFromItems converts the fields/items wire shape into symbol-tagged rows.
// Non-numeric cells (codes, dates) are not indicator columns and are skipped.
func rowsFromItems(symbol string, fields []string, items [][]any) []models.IndicatorRow {
	if len(items) == 0 {
		return nil
	}
	rows := make([]models.IndicatorRow, 0, len(items))
	for _, item := range items {
		values := make(map[string]float64, len(fields))
		for i, f := range fields {
			if i >= len(item) {
				break
			}
			if v, ok := item[i].(float64); ok {
				values[f] = v
			}
		}
		rows = append(rows, models.IndicatorRow{Symbol: symbol, Values: values})
	}
	return rows
}
