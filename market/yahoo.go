// Package market fetches financial statements from the Yahoo Finance
// quoteSummary endpoint.
package market

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"

	"financial-analyzer/config"
	"financial-analyzer/models"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

var ErrFetch = errors.New("market: fetch failed")

const (
	IncomeStatementName = "Income Statement"
	BalanceSheetName    = "Balance Sheet"
	CashFlowName        = "Cash Flow Statement"

	modules = "incomeStatementHistory,balanceSheetHistory,cashflowStatementHistory"
)

// statement locations inside quoteSummary.result[0]
var statementPaths = []struct {
	name string
	path string
}{
	{IncomeStatementName, "incomeStatementHistory.incomeStatementHistory"},
	{BalanceSheetName, "balanceSheetHistory.balanceSheetStatements"},
	{CashFlowName, "cashflowStatementHistory.cashflowStatements"},
}

type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

func NewClient(cfg config.MarketConfig, timeout time.Duration) *Client {
	return &Client{
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves the income statement, balance sheet and cash flow
// statement for ticker in one request. Any failure wraps ErrFetch.
func (c *Client) Fetch(ctx context.Context, ticker string) (*models.Statements, error) {
	endpoint := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s",
		c.baseURL, url.PathEscape(ticker), modules)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrFetch, err)
	}

	if resp.StatusCode != http.StatusOK {
		if desc := gjson.GetBytes(body, "quoteSummary.error.description"); desc.Exists() {
			return nil, fmt.Errorf("%w: %s: %s", ErrFetch, ticker, desc.String())
		}
		return nil, fmt.Errorf("%w: %s: status %d", ErrFetch, ticker, resp.StatusCode)
	}

	statements, err := ParseQuoteSummary(ticker, body)
	if err != nil {
		return nil, err
	}
	statements.FetchedAt = time.Now()
	return statements, nil
}

// ParseQuoteSummary converts a quoteSummary payload into statements.
// Statements the provider did not return are left empty, not nil.
func ParseQuoteSummary(ticker string, body []byte) (*models.Statements, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: %s: invalid JSON", ErrFetch, ticker)
	}
	summary := gjson.GetBytes(body, "quoteSummary")
	if e := summary.Get("error"); e.Exists() && e.Type != gjson.Null {
		return nil, fmt.Errorf("%w: %s: %s", ErrFetch, ticker, e.Get("description").String())
	}
	result := summary.Get("result.0")
	if !result.Exists() {
		return nil, fmt.Errorf("%w: no financial data for %s", ErrFetch, ticker)
	}

	out := &models.Statements{Ticker: ticker}
	for _, sp := range statementPaths {
		st := parseStatement(sp.name, result.Get(sp.path))
		switch sp.name {
		case IncomeStatementName:
			out.IncomeStatement = st
		case BalanceSheetName:
			out.BalanceSheet = st
		case CashFlowName:
			out.CashFlow = st
		}
	}
	return out, nil
}

func parseStatement(name string, periods gjson.Result) *models.Statement {
	st := models.NewStatement(name)
	if !periods.IsArray() {
		return st
	}
	for _, p := range periods.Array() {
		period := periodLabel(p.Get("endDate"))
		if period == "" {
			continue
		}
		p.ForEach(func(key, value gjson.Result) bool {
			k := key.String()
			if k == "maxAge" || k == "endDate" {
				return true
			}
			raw := value.Get("raw")
			if !raw.Exists() || raw.Type != gjson.Number {
				return true
			}
			d, err := decimal.NewFromString(raw.Raw)
			if err != nil {
				d = decimal.NewFromFloat(raw.Float())
			}
			st.Set(Label(k), period, d)
			return true
		})
	}
	return st
}

func periodLabel(endDate gjson.Result) string {
	if f := endDate.Get("fmt"); f.Exists() && f.String() != "" {
		return f.String()
	}
	if r := endDate.Get("raw"); r.Exists() {
		return time.Unix(r.Int(), 0).UTC().Format("2006-01-02")
	}
	return ""
}

// Label turns a provider key such as "totalStockholderEquity" into the
// line-item name "Total Stockholder Equity".
func Label(key string) string {
	var b strings.Builder
	runes := []rune(key)
	for i, r := range runes {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		prev := runes[i-1]
		if unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
