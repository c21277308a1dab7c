package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ppiankov/edrbo/internal/logging"
	"github.com/ppiankov/edrbo/internal/model"
	"github.com/ppiankov/edrbo/internal/pipeline"
	"github.com/ppiankov/edrbo/internal/reader"
	"github.com/ppiankov/edrbo/internal/sink"
	"github.com/ppiankov/edrbo/internal/stats"
	"github.com/ppiankov/edrbo/internal/validate"
	"github.com/ppiankov/edrbo/internal/worker"
)

var (
	transformOutput  string
	transformFormat  string
	transformWorkers int
	transformLimit   int
	transformLines   bool
)

var transformCmd = &cobra.Command{
	Use:   "transform <dump.xml>",
	Short: "Extract ownership facts from a registry dump",
	Long: `Stream a registry dump and write one extraction result per company.

The input is the official EDR XML export ("-" reads stdin; the declared
encoding, usually windows-1251, is handled transparently). With --lines
the input is plain text instead, one founder record per line, which is
convenient for spot-checking dictionary changes.

Results stream to stdout or --output as JSONL or CSV. A run report with
category counts and diagnostic signals is logged at the end.`,
	Args: cobra.ExactArgs(1),
	RunE: runTransform,
}

func init() {
	transformCmd.Flags().StringVarP(&transformOutput, "output", "o", "", "output file (default: stdout)")
	transformCmd.Flags().StringVarP(&transformFormat, "format", "f", "", "output format: jsonl or csv")
	transformCmd.Flags().IntVarP(&transformWorkers, "workers", "w", 0, "concurrent workers (default: from config)")
	transformCmd.Flags().IntVar(&transformLimit, "limit", 0, "stop after N companies (0 = no limit)")
	transformCmd.Flags().BoolVar(&transformLines, "lines", false, "read plain text input, one founder record per line")

	rootCmd.AddCommand(transformCmd)
}

func runTransform(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if transformWorkers > 0 {
		cfg.Concurrency.Workers = transformWorkers
	}
	if transformFormat != "" {
		cfg.Output.Format = transformFormat
	}

	log := logging.New(cfg.Log)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pipe, err := pipeline.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	if v := pipe.ModelVersion(); v != "" {
		log.Info("model fallback enabled", zap.String("model", v))
	}

	in, closeIn, err := openInput(args[0])
	if err != nil {
		return err
	}
	defer closeIn()

	var src reader.Source
	if transformLines {
		src = reader.NewLines(in)
	} else {
		src = reader.NewXML(in)
	}

	out, closeOut, err := openOutput(transformOutput)
	if err != nil {
		return err
	}
	defer closeOut()

	snk, err := sink.New(cfg.Output.Format, out)
	if err != nil {
		return err
	}

	collector := stats.NewCollector()
	batch := worker.NewBatchProcessor(pipe, cfg.Concurrency.Workers)

	recs := make(chan model.CompanyRecord, cfg.Concurrency.Workers*2)
	results := make(chan model.CompanyResult, cfg.Concurrency.Workers*2)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(recs)
		return produce(ctx, src, recs, log)
	})

	g.Go(func() error {
		return batch.ProcessStream(ctx, recs, results)
	})

	g.Go(func() error {
		for res := range results {
			collector.Observe(res)
			if err := snk.Write(res); err != nil {
				return err
			}
		}
		return nil
	})

	runErr := g.Wait()
	if err := snk.Close(); err != nil && runErr == nil {
		runErr = err
	}

	report := collector.Snapshot()
	logReport(log, report)
	if cfg.Output.Verbose {
		if data, err := json.MarshalIndent(report, "", "  "); err == nil {
			fmt.Fprintln(os.Stderr, string(data))
		}
	}

	return runErr
}

// produce drains the source into the record channel, logging validation
// warnings along the way. Synthetic line-mode identifiers skip the
// EDRPOU checks.
func produce(ctx context.Context, src reader.Source, recs chan<- model.CompanyRecord, log *zap.Logger) error {
	sent := 0
	for {
		rec, err := src.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if !transformLines {
			for _, w := range validate.Record(rec) {
				log.Warn("invalid record field",
					zap.String("edrpou", w.EDRPOU),
					zap.String("field", w.Field),
					zap.String("detail", w.Detail))
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case recs <- rec:
		}

		sent++
		if transformLimit > 0 && sent >= transformLimit {
			return nil
		}
	}
}

func logReport(log *zap.Logger, r stats.Report) {
	fields := []zap.Field{
		zap.Int("companies", r.Companies),
		zap.Int("facts", r.Facts),
		zap.Float64("unparsed_ratio", r.UnparsedRatio),
		zap.Float64("mean_confidence", r.MeanConfidence),
	}
	log.Info("run complete", fields...)

	for _, s := range r.Signals {
		f := []zap.Field{zap.String("type", s.Type), zap.String("detail", s.Description)}
		switch s.Severity {
		case stats.SeverityCritical:
			log.Error("run signal", f...)
		case stats.SeverityWarning:
			log.Warn("run signal", f...)
		default:
			log.Info("run signal", f...)
		}
	}
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
