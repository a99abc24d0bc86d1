// Package analysis computes financial ratios and runs the per-request
// analysis: fetch statements, compute ratios, compose the report.
package analysis

import (
	"context"
	"fmt"
	"log"
	"strings"

	"financial-analyzer/models"

	"github.com/google/uuid"
)

type State string

const (
	StateIdle                  State = "idle"
	StateFetching              State = "fetching"
	StateFetchFailed           State = "fetch_failed"
	StateFetched               State = "fetched"
	StateRatiosComputed        State = "ratios_computed"
	StateFallbackReportAttempt State = "fallback_report_attempt"
	StateReportGenerated       State = "report_generated"
	StateReportFailed          State = "report_failed"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Message is a user-visible status line.
type Message struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

type Fetcher interface {
	Fetch(ctx context.Context, ticker string) (*models.Statements, error)
}

type Composer interface {
	Compose(ctx context.Context, ticker string, ratios models.Ratios) (*models.Report, error)
}

// Result is everything derived for one ticker in one request. It is not
// kept after the response is written.
type Result struct {
	ID         string
	Ticker     string
	State      State
	Trail      []State
	Messages   []Message
	Statements *models.Statements
	Ratios     models.Ratios
	Missing    []string
	Mode       models.ReportMode
	Report     *models.Report
}

func (r *Result) Failed() bool {
	return r.State == StateFetchFailed || r.State == StateReportFailed
}

func (r *Result) to(s State) {
	r.State = s
	r.Trail = append(r.Trail, s)
}

func (r *Result) say(level Level, format string, args ...any) {
	r.Messages = append(r.Messages, Message{Level: level, Text: fmt.Sprintf(format, args...)})
}

type Analyzer struct {
	fetcher  Fetcher
	composer Composer
}

func NewAnalyzer(fetcher Fetcher, composer Composer) *Analyzer {
	return &Analyzer{fetcher: fetcher, composer: composer}
}

// Run analyzes one ticker. An empty ticker leaves the result idle and
// makes no outbound call.
func (a *Analyzer) Run(ctx context.Context, input string) *Result {
	res := &Result{Ticker: models.NormalizeTicker(input), State: StateIdle}
	if res.Ticker == "" {
		return res
	}
	res.ID = uuid.NewString()

	res.to(StateFetching)
	log.Printf("[%s] fetching statements for %s", res.ID, res.Ticker)
	statements, err := a.fetcher.Fetch(ctx, res.Ticker)
	if err != nil {
		log.Printf("[%s] fetch failed: %v", res.ID, err)
		res.say(LevelError, "Error fetching financial statements: %v", err)
		res.say(LevelError, "Failed to fetch data. Please check the ticker symbol and try again.")
		res.to(StateFetchFailed)
		return res
	}
	res.Statements = statements
	res.to(StateFetched)

	res.Ratios, res.Missing = Compute(statements)
	if len(res.Missing) > 0 {
		res.say(LevelWarning, "Unable to calculate the following ratios due to missing data: %s",
			strings.Join(res.Missing, ", "))
	}

	if len(res.Ratios) > 0 {
		res.to(StateRatiosComputed)
		res.Mode = models.ModeRatioGrounded
		res.say(LevelSuccess, "Data fetched and ratios calculated.")
	} else {
		res.to(StateFallbackReportAttempt)
		res.Mode = models.ModeFallback
		res.say(LevelError, "Financial ratios could not be calculated.")
		res.say(LevelInfo, "Generating report based on available financial data.")
	}

	log.Printf("[%s] generating %s report for %s (%d ratios)", res.ID, res.Mode, res.Ticker, len(res.Ratios))
	report, err := a.composer.Compose(ctx, res.Ticker, res.Ratios)
	if err != nil {
		log.Printf("[%s] report failed: %v", res.ID, err)
		res.say(LevelError, "Error generating financial report: %v", err)
		if res.Mode == models.ModeRatioGrounded {
			res.say(LevelError, "Failed to generate financial report.")
		} else {
			res.say(LevelError, "Unable to generate report due to insufficient data.")
		}
		res.to(StateReportFailed)
		return res
	}

	res.Report = report
	res.to(StateReportGenerated)
	log.Printf("[%s] report generated for %s with %s", res.ID, res.Ticker, report.Model)
	return res
}
