package models

import "time"

const (
	GrossMargin  = "Gross Margin"
	CurrentRatio = "Current Ratio"
	DebtToEquity = "Debt-to-Equity Ratio"
)

type Ratio struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Ratios keeps insertion order. A name that is absent could not be
// computed; it is never reported as zero.
type Ratios []Ratio

func (r Ratios) Get(name string) (float64, bool) {
	for _, x := range r {
		if x.Name == name {
			return x.Value, true
		}
	}
	return 0, false
}

type ReportMode string

const (
	ModeRatioGrounded ReportMode = "ratio-grounded"
	ModeFallback      ReportMode = "fallback"
)

type Report struct {
	Ticker      string     `json:"ticker"`
	Text        string     `json:"text"`
	Mode        ReportMode `json:"mode"`
	Model       string     `json:"model"`
	GeneratedAt time.Time  `json:"generated_at"`
}
