// Command benchmark measures classification accuracy and throughput of the
// auto-population pipeline against a labelled building inventory.
//
// The CSV holds one building per row: any inventory attribute columns plus
// an expected_class column and, optionally, expected_wind.
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/opensource-finance/hurricane-autopop/internal/config"
	"github.com/opensource-finance/hurricane-autopop/internal/domain"
	"github.com/opensource-finance/hurricane-autopop/internal/pipeline"
	"github.com/opensource-finance/hurricane-autopop/internal/worker"
)

// errorLabel is the predicted class of a record the pipeline rejected.
const errorLabel = "ERR"

// Label is the ground truth of one row.
type Label struct {
	Class string `csv:"expected_class"`
	Wind  string `csv:"expected_wind,omitempty"`
}

// Sample is one labelled inventory record.
type Sample struct {
	Label Label
	Raw   domain.RawRecord
}

// Metrics tracks benchmark results
type Metrics struct {
	mu sync.Mutex

	TotalProcessed int64
	TotalErrors    int64
	ClassCorrect   int64
	WindLabelled   int64
	WindCorrect    int64

	// Confusion counts predictions per expected class.
	Confusion map[string]map[string]int64
}

func newMetrics() *Metrics {
	return &Metrics{Confusion: make(map[string]map[string]int64)}
}

func (m *Metrics) observe(label Label, res worker.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalProcessed++
	predicted := errorLabel
	if res.Err != nil {
		m.TotalErrors++
	} else {
		predicted = res.Assessment.Class.String()
	}

	row, ok := m.Confusion[label.Class]
	if !ok {
		row = make(map[string]int64)
		m.Confusion[label.Class] = row
	}
	row[predicted]++

	if predicted == label.Class {
		m.ClassCorrect++
	}
	if label.Wind != "" {
		m.WindLabelled++
		if res.Err == nil && res.Assessment.Wind.Key == label.Wind {
			m.WindCorrect++
		}
	}
}

// Accuracy is the share of rows whose class matched the label.
func (m *Metrics) Accuracy() float64 {
	if m.TotalProcessed == 0 {
		return 0
	}
	return float64(m.ClassCorrect) / float64(m.TotalProcessed)
}

func main() {
	csvPath := pflag.String("csv", "", "Path to labelled inventory CSV")
	limit := pflag.Int("limit", 0, "Maximum rows to process (0 = all)")
	workers := pflag.Int("workers", 8, "Number of concurrent workers")
	seed := pflag.Uint64("seed", 1, "Root seed of the per-record random streams")
	referenceYear := pflag.Int("reference-year", time.Now().Year(), "Year age-based rules are evaluated against")
	verbose := pflag.Bool("verbose", false, "Print each mismatched row")
	pflag.Parse()

	if *csvPath == "" {
		fmt.Println("Usage: benchmark --csv /path/to/labelled.csv")
		fmt.Println("\nFlags:")
		pflag.PrintDefaults()
		os.Exit(1)
	}

	if err := config.InitLogger(domain.LogConfig{Level: "warn", Format: "console"}); err != nil {
		fmt.Printf("ERROR: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = zap.L().Sync() }()

	fmt.Println("AUTOPOP BENCHMARK - labelled building inventory")
	fmt.Printf("\nCSV File:       %s\n", *csvPath)
	fmt.Printf("Workers:        %d\n", *workers)
	fmt.Printf("Limit:          %d\n", *limit)
	fmt.Printf("Reference Year: %d\n", *referenceYear)
	fmt.Println()

	samples, err := readSamples(*csvPath, *limit)
	if err != nil {
		fmt.Printf("ERROR: Failed to read CSV: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %s rows\n", humanize.Comma(int64(len(samples))))

	p, err := pipeline.New(pipeline.Options{ReferenceYear: *referenceYear})
	if err != nil {
		fmt.Printf("ERROR: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = p.Close() }()

	fmt.Printf("\nRunning benchmark with %d workers...\n", *workers)
	startTime := time.Now()
	metrics, err := runBenchmark(context.Background(), p, samples, worker.Config{Workers: *workers, Seed: *seed}, *verbose)
	if err != nil {
		fmt.Printf("ERROR: %v\n", err)
		os.Exit(1)
	}
	duration := time.Since(startTime)

	printResults(os.Stdout, metrics, duration)
}

// readSamples decodes the labelled CSV. Label columns fill the Label; every
// other non-blank cell becomes an inventory attribute.
func readSamples(path string, limit int) ([]Sample, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "open %s", path)
	}
	defer file.Close()

	return decodeSamples(file, limit)
}

func decodeSamples(r io.Reader, limit int) ([]Sample, error) {
	dec, err := csvutil.NewDecoder(csv.NewReader(r))
	if err != nil {
		return nil, eris.Wrap(err, "read header")
	}
	header := dec.Header()

	var samples []Sample
	for {
		var label Label
		err := dec.Decode(&label)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "row %d", len(samples)+1)
		}

		record := dec.Record()
		raw := make(domain.RawRecord)
		for _, i := range dec.Unused() {
			if v := strings.TrimSpace(record[i]); v != "" {
				raw[header[i]] = v
			}
		}
		samples = append(samples, Sample{Label: label, Raw: raw})

		if limit > 0 && len(samples) >= limit {
			break
		}
	}

	return samples, nil
}

func runBenchmark(ctx context.Context, p worker.Populator, samples []Sample, cfg worker.Config, verbose bool) (*Metrics, error) {
	records := make([]worker.Record, len(samples))
	for i, s := range samples {
		records[i] = worker.Record{Index: i, Source: fmt.Sprintf("row %d", i+1), Raw: s.Raw}
	}

	metrics := newMetrics()
	runner := worker.NewRunner(p, cfg, zap.L())
	_, err := runner.Run(ctx, records, func(_ context.Context, res worker.Result) error {
		label := samples[res.Index].Label
		metrics.observe(label, res)

		if verbose {
			switch {
			case res.Err != nil:
				fmt.Printf("ERROR %-8s | expected %-6s | %v\n", res.Source, label.Class, res.Err)
			case res.Assessment.Class.String() != label.Class:
				fmt.Printf("MISS  %-8s | expected %-6s | got %-6s\n", res.Source, label.Class, res.Assessment.Class)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return metrics, nil
}

func printResults(w io.Writer, m *Metrics, duration time.Duration) {
	fmt.Fprintln(w, "\nBENCHMARK RESULTS")

	fmt.Fprintf(w, "\nDATASET\n")
	fmt.Fprintf(w, "   Total Processed:  %s\n", humanize.Comma(m.TotalProcessed))
	fmt.Fprintf(w, "   Errors:           %s\n", humanize.Comma(m.TotalErrors))

	fmt.Fprintf(w, "\nACCURACY\n")
	fmt.Fprintf(w, "   Building class:   %.2f%% (%d/%d)\n", 100*m.Accuracy(), m.ClassCorrect, m.TotalProcessed)
	if m.WindLabelled > 0 {
		fmt.Fprintf(w, "   Wind config:      %.2f%% (%d/%d)\n",
			100*float64(m.WindCorrect)/float64(m.WindLabelled), m.WindCorrect, m.WindLabelled)
	}

	fmt.Fprintf(w, "\nPER CLASS\n")
	fmt.Fprintf(w, "   %-8s %8s %8s %8s  %s\n", "EXPECTED", "ROWS", "CORRECT", "RECALL", "CONFUSED WITH")
	expected := make([]string, 0, len(m.Confusion))
	for c := range m.Confusion {
		expected = append(expected, c)
	}
	sort.Strings(expected)
	for _, c := range expected {
		row := m.Confusion[c]
		var total int64
		var others []string
		for predicted, n := range row {
			total += n
			if predicted != c {
				others = append(others, fmt.Sprintf("%s:%d", predicted, n))
			}
		}
		sort.Strings(others)
		fmt.Fprintf(w, "   %-8s %8d %8d %7.1f%%  %s\n", c, total, row[c], 100*float64(row[c])/float64(total), strings.Join(others, " "))
	}

	fmt.Fprintf(w, "\nTHROUGHPUT\n")
	fmt.Fprintf(w, "   Duration:         %s\n", duration.Round(time.Millisecond))
	if secs := duration.Seconds(); secs > 0 {
		fmt.Fprintf(w, "   Records/sec:      %s\n", humanize.Commaf(float64(int64(float64(m.TotalProcessed)/secs))))
	}
}
