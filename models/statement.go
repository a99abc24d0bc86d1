package models

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// NormalizeTicker trims and upper-cases user input. It does not validate.
func NormalizeTicker(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Statement is one financial statement table keyed by (line item, period).
// Periods are ordered most recent first.
type Statement struct {
	Name    string
	Periods []string
	items   []string
	cells   map[string]map[string]decimal.Decimal
}

func NewStatement(name string) *Statement {
	return &Statement{
		Name:  name,
		cells: make(map[string]map[string]decimal.Decimal),
	}
}

// Set stores a cell, registering the line item and period on first use.
func (s *Statement) Set(item, period string, value decimal.Decimal) {
	row, ok := s.cells[item]
	if !ok {
		row = make(map[string]decimal.Decimal)
		s.cells[item] = row
		s.items = append(s.items, item)
	}
	row[period] = value

	for _, p := range s.Periods {
		if p == period {
			return
		}
	}
	s.Periods = append(s.Periods, period)
	// ISO dates: reverse lexical order is most recent first
	sort.Sort(sort.Reverse(sort.StringSlice(s.Periods)))
}

// Latest returns the value of item in the most recent period. The second
// result is false when the statement has no periods, the line item does not
// exist, or it has no value in that period.
func (s *Statement) Latest(item string) (decimal.Decimal, bool) {
	if s == nil || len(s.Periods) == 0 {
		return decimal.Zero, false
	}
	return s.Value(item, s.Periods[0])
}

func (s *Statement) Value(item, period string) (decimal.Decimal, bool) {
	if s == nil {
		return decimal.Zero, false
	}
	row, ok := s.cells[item]
	if !ok {
		return decimal.Zero, false
	}
	v, ok := row[period]
	return v, ok
}

func (s *Statement) Items() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.items...)
}

func (s *Statement) Empty() bool {
	return s == nil || len(s.items) == 0
}

// StatementRow is one line item rendered for display; Values align with
// Statement.Periods and hold "" where the provider had no value.
type StatementRow struct {
	Item   string   `json:"item"`
	Values []string `json:"values"`
}

type StatementTable struct {
	Name    string         `json:"name"`
	Periods []string       `json:"periods"`
	Rows    []StatementRow `json:"rows"`
}

func (s *Statement) Table() StatementTable {
	t := StatementTable{Name: s.Name, Periods: append([]string(nil), s.Periods...)}
	for _, item := range s.items {
		row := StatementRow{Item: item, Values: make([]string, len(s.Periods))}
		for i, p := range s.Periods {
			if v, ok := s.cells[item][p]; ok {
				row.Values[i] = v.String()
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Statements holds the three tables fetched for one ticker.
type Statements struct {
	Ticker          string
	IncomeStatement *Statement
	BalanceSheet    *Statement
	CashFlow        *Statement
	FetchedAt       time.Time
}

func (s *Statements) Tables() []StatementTable {
	var out []StatementTable
	for _, st := range []*Statement{s.IncomeStatement, s.BalanceSheet, s.CashFlow} {
		if st != nil {
			out = append(out, st.Table())
		}
	}
	return out
}
