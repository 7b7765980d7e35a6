package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opensource-finance/hurricane-autopop/internal/chance"
	"github.com/opensource-finance/hurricane-autopop/internal/domain"
	"github.com/opensource-finance/hurricane-autopop/internal/inventory"
	"github.com/opensource-finance/hurricane-autopop/internal/worker"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"populate", "batch", "classes", "version"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "autopop", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
}

func TestBatchCommand_Flags(t *testing.T) {
	for _, name := range []string{"out", "workers", "dry-run"} {
		assert.NotNil(t, batchCmd.Flags().Lookup(name), "batch should have --%s flag", name)
	}
	assert.Equal(t, "0", batchCmd.Flags().Lookup("workers").DefValue)
}

func TestPopulateCommand_Flags(t *testing.T) {
	flag := populateCmd.Flags().Lookup("candidates")
	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)
}

func TestNewPipeline(t *testing.T) {
	c := domain.DefaultConfig()
	c.Rules.ReferenceYear = 2026

	p, err := newPipeline(c)
	require.NoError(t, err)
	defer func() { _ = p.Close() }()
	assert.Equal(t, 2026, p.ReferenceYear())

	c.Rules.TablesFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = newPipeline(c)
	assert.Error(t, err)
}

func TestToRecords(t *testing.T) {
	records := toRecords([]inventory.Entry{
		{Source: "a.json", Raw: domain.RawRecord{"id": "a"}},
		{Source: "b.json", Raw: domain.RawRecord{"id": "b"}},
	})
	require.Len(t, records, 2)
	assert.Equal(t, 1, records[1].Index)
	assert.Equal(t, "b.json", records[1].Source)
}

func TestWriteSink(t *testing.T) {
	dir := t.TempDir()
	w := &inventory.Writer{Dir: dir}
	a := &domain.Assessment{
		ID:       "NJ-9",
		Building: &domain.Building{ID: "NJ-9"},
		Class:    domain.ClassWSF,
		Model:    &domain.DamageLossModel{Method: domain.MethodHazusHU},
	}

	// Failed records are skipped.
	require.NoError(t, writeSink(w, false)(context.Background(), worker.Result{Err: assert.AnError}))

	require.NoError(t, writeSink(w, true)(context.Background(), worker.Result{Assessment: a}))
	_, err := os.Stat(filepath.Join(dir, "NJ-9-DL.json"))
	assert.True(t, os.IsNotExist(err), "dry run writes nothing")

	require.NoError(t, writeSink(w, false)(context.Background(), worker.Result{Assessment: a}))
	assert.FileExists(t, filepath.Join(dir, "NJ-9-DL.json"))
	assert.FileExists(t, filepath.Join(dir, "NJ-9-AIM.json"))
}

func TestFormatStats(t *testing.T) {
	var buf bytes.Buffer
	formatStats(&buf, &worker.Stats{
		RunID:     "run-1",
		Records:   3,
		Succeeded: 2,
		Failed:    1,
		Classes:   map[string]int{"WSF": 1, "MH": 1},
	})

	out := buf.String()
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "succeeded:  2")
	assert.Contains(t, out, "failed:     1")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("MH ")), bytes.Index(buf.Bytes(), []byte("WSF ")))
}

func TestFormatCandidates(t *testing.T) {
	var buf bytes.Buffer
	formatCandidates(&buf, domain.ClassWSF, []chance.Candidate{
		{Key: "WSF2_gab_0_8d_tnail_no_0_15", Probability: 0.55},
		{Key: "WSF2_gab_1_8d_tnail_no_0_15", Probability: 0.45},
	})

	out := buf.String()
	assert.Contains(t, out, "class: WSF")
	assert.Contains(t, out, "0.5500        WSF2_gab_0_8d_tnail_no_0_15")
}

func TestFormatClasses(t *testing.T) {
	var buf bytes.Buffer
	formatClasses(&buf, []domain.BuildingClass{domain.ClassWSF, domain.ClassMH}, []*domain.ClassRule{
		{ID: "wood-sf", Class: domain.ClassWSF, Expression: `material == "W"`},
	})

	out := buf.String()
	assert.Contains(t, out, "  WSF\n")
	assert.Contains(t, out, "  MH\n")
	assert.Contains(t, out, "wood-sf")
	assert.Contains(t, out, `material == "W"`)
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	versionCmd.Run(versionCmd, nil)
	assert.Contains(t, buf.String(), "autopop dev")
}
