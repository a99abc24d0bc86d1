package analysis

import (
	"log"

	"financial-analyzer/models"

	"github.com/shopspring/decimal"
)

// StatementKind selects which table a ratio reads from.
type StatementKind int

const (
	IncomeStatement StatementKind = iota
	BalanceSheet
)

func (k StatementKind) from(s *models.Statements) *models.Statement {
	if s == nil {
		return nil
	}
	switch k {
	case IncomeStatement:
		return s.IncomeStatement
	case BalanceSheet:
		return s.BalanceSheet
	}
	return nil
}

// Definition describes one ratio: the line items it needs, read from the
// most recent period of one statement, and how to combine them. Combine
// reports false when the inputs do not define a value.
type Definition struct {
	Name    string
	Source  StatementKind
	Inputs  []string
	Combine func(values []decimal.Decimal) (float64, bool)
}

// Definitions is the fixed, ordered set of ratios.
var Definitions = []Definition{
	{
		Name:    models.GrossMargin,
		Source:  IncomeStatement,
		Inputs:  []string{"Gross Profit", "Total Revenue"},
		Combine: quotient,
	},
	{
		Name:    models.CurrentRatio,
		Source:  BalanceSheet,
		Inputs:  []string{"Total Current Assets", "Total Current Liabilities"},
		Combine: quotient,
	},
	{
		Name:    models.DebtToEquity,
		Source:  BalanceSheet,
		Inputs:  []string{"Total Liab", "Total Stockholder Equity"},
		Combine: quotient,
	},
}

// quotient divides values[0] by values[1]. A zero denominator has no value.
func quotient(values []decimal.Decimal) (float64, bool) {
	if values[1].IsZero() {
		return 0, false
	}
	return values[0].Div(values[1]).InexactFloat64(), true
}

// Outcome of computing a single ratio.
type Outcome int

const (
	Computed Outcome = iota
	MissingInput
	Undefined
)

// Evaluate computes one ratio. For MissingInput the returned string names
// the first absent line item.
func (d Definition) Evaluate(s *models.Statements) (float64, Outcome, string) {
	st := d.Source.from(s)
	values := make([]decimal.Decimal, len(d.Inputs))
	for i, item := range d.Inputs {
		v, ok := st.Latest(item)
		if !ok {
			return 0, MissingInput, item
		}
		values[i] = v
	}
	v, ok := d.Combine(values)
	if !ok {
		return 0, Undefined, ""
	}
	return v, Computed, ""
}

// Compute evaluates every definition independently. Ratios whose inputs are
// missing, or whose denominator is zero, are left out and named once each in
// missing, in definition order.
func Compute(s *models.Statements) (models.Ratios, []string) {
	return ComputeWith(Definitions, s)
}

func ComputeWith(defs []Definition, s *models.Statements) (models.Ratios, []string) {
	var (
		ratios  models.Ratios
		missing []string
	)
	for _, d := range defs {
		v, outcome, item := d.Evaluate(s)
		switch outcome {
		case Computed:
			ratios = append(ratios, models.Ratio{Name: d.Name, Value: v})
		case MissingInput:
			log.Printf("ratio %s: missing line item %q", d.Name, item)
			missing = append(missing, d.Name)
		case Undefined:
			log.Printf("ratio %s: zero denominator", d.Name)
			missing = append(missing, d.Name)
		}
	}
	return ratios, missing
}
