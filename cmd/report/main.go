package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"survey-insights-go/internal/config"
	"survey-insights-go/internal/dataset"
	"survey-insights-go/internal/logger"
	"survey-insights-go/internal/pipeline"
	"survey-insights-go/internal/questions"
	"survey-insights-go/internal/report"
	"survey-insights-go/internal/store"
)

type options struct {
	datasetPath string
	dbType      string
	dbURL       string
	format      string
	out         string
	question    int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "survey-report",
		Short: "Aggregate survey responses into tables, JSON or an xlsx report",
		Long: `Reads every stored survey response, from an xlsx export or the database,
and prints the per-question counts and percentages the dashboard shows.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.datasetPath, "dataset", "", "xlsx export to read instead of the database")
	f.StringVar(&opts.dbType, "db-type", "", "database type: sqlite, postgres or mysql (default from DATABASE_TYPE)")
	f.StringVar(&opts.dbURL, "db-url", "", "database connection string (default from DATABASE_URL)")
	f.StringVar(&opts.format, "format", "table", "output format: table, json or xlsx")
	f.StringVar(&opts.out, "out", "", "xlsx output path (default survey-report-<uuid>.xlsx)")
	f.IntVar(&opts.question, "question", 0, "only report this question id")
	cmd.MarkFlagsMutuallyExclusive("dataset", "db-url")

	return cmd
}

func run(ctx context.Context, opts options, stdout, stderr io.Writer) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	format := strings.ToLower(opts.format)
	switch format {
	case "table", "json", "xlsx":
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}

	log := logger.NewWithOptions(logger.Options{Output: stderr})
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if opts.datasetPath != "" {
		cfg.DatasetPath = opts.datasetPath
	}
	if opts.dbType != "" {
		cfg.DatabaseType = opts.dbType
	}
	if opts.dbURL != "" {
		cfg.DatabaseURL = opts.dbURL
		cfg.DatasetPath = ""
	}

	registry, err := questions.Default()
	if err != nil {
		return err
	}
	if opts.question != 0 {
		if _, ok := registry.Get(opts.question); !ok {
			return fmt.Errorf("no question %d", opts.question)
		}
	}

	var source pipeline.Source
	if cfg.ReadOnly() {
		source = dataset.NewFileSource(cfg.DatasetPath, log)
	} else {
		db, err := store.Open(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer db.Close()
		source = db
	}

	d, records, err := pipeline.New(registry, cfg.PipelineConcurrent, log).RunSource(ctx, source)
	if err != nil {
		return err
	}
	if opts.question != 0 {
		q, _ := d.Question(opts.question)
		d.Questions = []pipeline.QuestionReport{q}
	}

	switch format {
	case "json":
		return writeJSON(stdout, d)
	case "xlsx":
		out := opts.out
		if out == "" {
			out = fmt.Sprintf("survey-report-%s.xlsx", uuid.New().String())
		}
		if err := report.WriteFile(out, d, records); err != nil {
			return err
		}
		log.WithField("path", out).Info("report written")
		fmt.Fprintln(stdout, out)
		return nil
	default:
		_, err := io.WriteString(stdout, renderTables(d))
		return err
	}
}
