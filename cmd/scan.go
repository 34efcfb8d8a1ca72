package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lintwarden/lintwarden/internal/adapters"
	"github.com/lintwarden/lintwarden/internal/category"
	"github.com/lintwarden/lintwarden/internal/config"
	"github.com/lintwarden/lintwarden/internal/engine"
	"github.com/lintwarden/lintwarden/internal/lifecycle"
	"github.com/lintwarden/lintwarden/internal/logging"
	"github.com/lintwarden/lintwarden/internal/model"
	"github.com/lintwarden/lintwarden/internal/report"
	"github.com/lintwarden/lintwarden/internal/sarif"
)

var (
	cfgFile     string
	rgFiles     []string
	astFiles    []string
	guardFiles  []string
	countsFile  string
	onlyFlag    string
	skipFlag    string
	outputFlag  string
	catalogFlag string
	sampleFlag  int
	failOnWarn  bool
	debugMode   bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Correlate collected pattern matches into severity-scored findings",
	Long: `Reads saved output of external pattern-matching tools (ripgrep --json,
ast-grep --json) plus optional resource acquire/release counts, decides which
matches are guarded by surrounding code, correlates resource lifecycles per
file, and reports severity totals. Exit code 1 on critical findings, or on
warnings when --fail-on-warning is set.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger, err := logging.New(debugMode)
		if err != nil {
			fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
			os.Exit(1)
		}
		defer logger.Sync()

		cfg, err := config.Load(cfgFile, cmd.Flags())
		if err != nil {
			logger.Errorw("failed to load configuration", "error", err)
			os.Exit(1)
		}

		kinds, err := loadKinds(cfg.Catalog)
		if err != nil {
			logger.Errorw("failed to load resource catalog", "error", err)
			os.Exit(1)
		}

		in, adapterDropped, err := collectInput(logger)
		if err != nil {
			logger.Errorw("failed to ingest tool output", "error", err)
			os.Exit(1)
		}

		opts := engine.Options{
			SampleLimit:   cfg.SampleLimit,
			FailOnWarning: cfg.FailOnWarning,
			Only:          category.ParseList(cfg.Only),
			Skip:          category.ParseList(cfg.Skip),
		}
		res := engine.Run(in, kinds, opts, logger)

		meta := report.NewMeta("lintwarden", Version, cfg.FailOnWarning,
			res.Guarded, res.Unguarded, res.Discarded+adapterDropped)
		rep := report.Report{
			Meta:     meta,
			Totals:   res.Totals,
			Findings: res.Findings,
			Sample:   res.Sample,
		}

		switch strings.ToLower(cfg.Output) {
		case "json":
			err = report.WriteJSON(os.Stdout, rep)
		case "sarif":
			entries := make([]sarif.Entry, 0, len(res.Sample))
			for _, m := range res.Sample {
				entries = append(entries, sarif.Entry{Match: m, Severity: model.SeverityWarning})
			}
			err = sarif.Export(os.Stdout, entries, "lintwarden", Version)
		default:
			err = report.WriteMarkdown(os.Stdout, rep)
		}
		if err != nil {
			logger.Errorw("failed to render report", "error", err)
			os.Exit(1)
		}

		logger.Infow("scan complete",
			"critical", res.Totals.Critical,
			"warning", res.Totals.Warning,
			"info", res.Totals.Info,
			"guarded", res.Guarded,
			"exit", res.ExitCode,
		)
		if res.ExitCode != 0 {
			logger.Sync()
			os.Exit(res.ExitCode)
		}
	},
}

// collectInput reads all configured tool output files into one batch.
func collectInput(logger *zap.SugaredLogger) (engine.Input, int, error) {
	var in engine.Input
	dropped := 0

	for _, arg := range rgFiles {
		ruleID, path, ok := strings.Cut(arg, "=")
		if !ok {
			return in, dropped, fmt.Errorf("invalid --rg value %q, expected rule-id=path", arg)
		}
		src := &adapters.RipgrepFile{Path: path, RuleID: ruleID}
		matches, err := src.Matches()
		if err != nil {
			return in, dropped, err
		}
		in.Matches = append(in.Matches, matches...)
		dropped += src.Dropped
	}

	for _, path := range astFiles {
		src := &adapters.AstGrepFile{Path: path}
		matches, err := src.Matches()
		if err != nil {
			return in, dropped, err
		}
		in.Matches = append(in.Matches, matches...)
		dropped += src.Dropped
	}

	for _, path := range guardFiles {
		src := &adapters.AstGrepFile{Path: path}
		guards, err := src.Guards()
		if err != nil {
			return in, dropped, err
		}
		in.Guards = append(in.Guards, guards...)
		dropped += src.Dropped
	}

	if countsFile != "" {
		hits, err := adapters.ParseCountsFile(countsFile)
		if err != nil {
			return in, dropped, err
		}
		in.Hits = hits
	}

	logger.Debugf("ingested %d matches, %d guard regions (%d dropped)",
		len(in.Matches), len(in.Guards), dropped)
	return in, dropped, nil
}

func loadKinds(catalog string) ([]lifecycle.ResourceKind, error) {
	if catalog != "" {
		return lifecycle.LoadRegistry(catalog)
	}
	return lifecycle.DefaultRegistry()
}

func init() {
	scanCmd.Flags().StringVar(&cfgFile, "config", "", "Config file (default lintwarden.yaml)")
	scanCmd.Flags().StringArrayVar(&rgFiles, "rg", nil, "Saved `rg --json` output as rule-id=path (repeatable)")
	scanCmd.Flags().StringArrayVar(&astFiles, "ast", nil, "Saved `ast-grep --json` match output (repeatable)")
	scanCmd.Flags().StringArrayVar(&guardFiles, "guards", nil, "Saved `ast-grep --json` guard-rule output (repeatable)")
	scanCmd.Flags().StringVar(&countsFile, "counts", "", "Resource acquire/release counts JSON file")
	scanCmd.Flags().StringVar(&onlyFlag, "only", "", "Run only these categories (names or numbers, comma separated)")
	scanCmd.Flags().StringVar(&skipFlag, "skip", "", "Skip these categories (names or numbers, comma separated)")
	scanCmd.Flags().StringVar(&outputFlag, "output", config.DefaultOutput, "Report format (markdown, json, sarif)")
	scanCmd.Flags().StringVar(&catalogFlag, "catalog", "", "Resource catalog YAML overriding the built-in one")
	scanCmd.Flags().IntVar(&sampleFlag, "sample-limit", config.DefaultSampleLimit, "Max unguarded matches kept for display per rule")
	scanCmd.Flags().BoolVar(&failOnWarn, "fail-on-warning", false, "Exit non-zero when warnings were found")
	scanCmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.AddCommand(scanCmd)
}
