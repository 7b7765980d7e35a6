package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"sort"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/opensource-finance/hurricane-autopop/internal/inventory"
	"github.com/opensource-finance/hurricane-autopop/internal/worker"
)

var (
	batchOut     string
	batchWorkers int
	batchDryRun  bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <dir|file.json|footprints.shp>",
	Short: "Auto-populate a building inventory",
	Long:  "Processes every record of an inventory directory, record file or footprint shapefile and writes <id>-AIM.json and <id>-DL.json per building.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		entries, err := inventory.Load(args[0])
		if err != nil {
			return err
		}

		p, err := newPipeline(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = p.Close() }()

		workers := cfg.Batch.Workers
		if batchWorkers > 0 {
			workers = batchWorkers
		}
		dir := cfg.Output.Dir
		if batchOut != "" {
			dir = batchOut
		}

		runner := worker.NewRunner(p, worker.Config{Workers: workers, Seed: cfg.Rules.Seed}, zap.L())
		writer := &inventory.Writer{Dir: dir, Pretty: cfg.Output.Pretty}

		stats, err := runner.Run(ctx, toRecords(entries), writeSink(writer, batchDryRun))
		if err != nil {
			return err
		}

		formatStats(cmd.OutOrStdout(), stats)
		if stats.Failed > 0 {
			return eris.Errorf("%d of %d records failed", stats.Failed, stats.Records)
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchOut, "out", "", "output directory (overrides output.dir)")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "records in flight (overrides batch.workers)")
	batchCmd.Flags().BoolVar(&batchDryRun, "dry-run", false, "populate without writing output files")
	rootCmd.AddCommand(batchCmd)
}

func toRecords(entries []inventory.Entry) []worker.Record {
	records := make([]worker.Record, len(entries))
	for i, e := range entries {
		records[i] = worker.Record{Index: i, Source: e.Source, Raw: e.Raw}
	}
	return records
}

// writeSink stores successful assessments. Failed records were already
// logged by the runner.
func writeSink(w *inventory.Writer, dryRun bool) worker.Sink {
	return func(_ context.Context, res worker.Result) error {
		if res.Err != nil || dryRun {
			return nil
		}
		return w.Write(res.Assessment)
	}
}

func formatStats(w io.Writer, stats *worker.Stats) {
	fmt.Fprintf(w, "run:        %s\n", stats.RunID)
	fmt.Fprintf(w, "records:    %d\n", stats.Records)
	fmt.Fprintf(w, "succeeded:  %d\n", stats.Succeeded)
	fmt.Fprintf(w, "failed:     %d\n", stats.Failed)
	fmt.Fprintf(w, "duration:   %dms\n", stats.DurationMs)

	if len(stats.Classes) == 0 {
		return
	}
	classes := make([]string, 0, len(stats.Classes))
	for c := range stats.Classes {
		classes = append(classes, c)
	}
	sort.Strings(classes)

	fmt.Fprintf(w, "\n%-8s  %s\n", "CLASS", "COUNT")
	for _, c := range classes {
		fmt.Fprintf(w, "%-8s  %d\n", c, stats.Classes[c])
	}
}
