package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/opensource-finance/hurricane-autopop/internal/config"
	"github.com/opensource-finance/hurricane-autopop/internal/domain"
	"github.com/opensource-finance/hurricane-autopop/internal/pipeline"
)

// Version information (set via ldflags)
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

var (
	cfgFile string
	cfg     *domain.Config
)

var rootCmd = &cobra.Command{
	Use:   "autopop",
	Short: "Hazus hurricane damage and loss auto-population",
	Long:  "Derives Hazus hurricane building classes, wind and flood configurations and damage and loss models from building inventory records.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(cfgFile)
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}
		config.InitTracing(cfg.Tracing)

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./autopop.yaml)")
}

// newPipeline wires a pipeline from the loaded configuration.
func newPipeline(c *domain.Config) (*pipeline.Pipeline, error) {
	tbl, err := config.LoadTables(c)
	if err != nil {
		return nil, eris.Wrap(err, "load tables")
	}
	p, err := pipeline.New(pipeline.Options{
		Tables:        tbl,
		Logger:        zap.L(),
		ReferenceYear: c.Rules.ReferenceYear,
	})
	if err != nil {
		return nil, eris.Wrap(err, "init pipeline")
	}
	return p, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
