package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"financial-analyzer/analysis"
	"financial-analyzer/config"
	"financial-analyzer/handlers"
	"financial-analyzer/llm"
	"financial-analyzer/market"
	"financial-analyzer/report"

	"github.com/charmbracelet/glamour"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

// Set via -ldflags.
var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "financial-analyzer",
	Short:         "AI-Powered Financial Statement Analyzer and Report Generator",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          serve,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web UI",
	Args:  cobra.NoArgs,
	RunE:  serve,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze TICKER",
	Short: "Analyze one ticker and print the report",
	Args:  cobra.ExactArgs(1),
	RunE:  analyze,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("financial-analyzer", version)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, analyzeCmd, versionCmd)
}

type app struct {
	cfg      *config.Config
	fetcher  *market.Client
	analyzer *analysis.Analyzer
}

// setup loads configuration once and builds the components from it.
func setup(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, config.ErrNoAPIKey) {
			return nil, fmt.Errorf("completion API key not found: %w", err)
		}
		return nil, err
	}
	log.Printf("🔑 %s API key loaded from %s (%s)", cfg.LLM.Provider, cfg.LLM.KeySource, config.MaskKey(cfg.LLM.APIKey))

	client, err := llm.New(ctx, cfg.LLM, cfg.HTTPTimeout)
	if err != nil {
		return nil, err
	}
	fetcher := market.NewClient(cfg.Market, cfg.HTTPTimeout)
	composer := report.NewComposer(client, cfg.LLM)

	return &app{
		cfg:      cfg,
		fetcher:  fetcher,
		analyzer: analysis.NewAnalyzer(fetcher, composer),
	}, nil
}

func serve(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd.Context())
	if err != nil {
		return err
	}

	gin.SetMode(a.cfg.GinMode)
	r, err := handlers.NewRouter(handlers.New(a.cfg, a.analyzer, a.fetcher))
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	log.Printf("🚀 Starting Financial Statement Analyzer on %s", a.cfg.Addr)
	log.Printf("📊 Default ticker: %s", a.cfg.DefaultTicker)

	if err := r.Run(a.cfg.Addr); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func analyze(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd.Context())
	if err != nil {
		return err
	}

	res := a.analyzer.Run(cmd.Context(), args[0])
	if res.State == analysis.StateIdle {
		return errors.New("ticker is required")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Analyzing: %s\n\n", res.Ticker)
	for _, m := range res.Messages {
		fmt.Fprintf(out, "[%s] %s\n", strings.ToUpper(string(m.Level)), m.Text)
	}

	if len(res.Ratios) > 0 {
		fmt.Fprintln(out, "\nKey Financial Ratios")
		for _, r := range res.Ratios {
			fmt.Fprintf(out, "  %-22s %10.4f\n", r.Name, r.Value)
		}
	}

	if res.Report != nil {
		renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
		text := res.Report.Text
		if err == nil {
			if rendered, rerr := renderer.Render(text); rerr == nil {
				text = rendered
			}
		}
		fmt.Fprintln(out, "\nAI-Generated Financial Report")
		fmt.Fprintln(out, text)
	}

	if res.Failed() {
		return fmt.Errorf("analysis of %s ended in state %s", res.Ticker, res.State)
	}
	return nil
}
