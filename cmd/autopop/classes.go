package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/opensource-finance/hurricane-autopop/internal/domain"
	"github.com/opensource-finance/hurricane-autopop/internal/rules"
	"github.com/opensource-finance/hurricane-autopop/internal/wind"
)

var classesCmd = &cobra.Command{
	Use:   "classes",
	Short: "List building classes and the classification rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := rules.NewHazusEngine()
		if err != nil {
			return err
		}
		defer func() { _ = engine.Close() }()

		formatClasses(cmd.OutOrStdout(), wind.Classes(), engine.GetLoadedRules())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(classesCmd)
}

func formatClasses(w io.Writer, classes []domain.BuildingClass, classRules []*domain.ClassRule) {
	fmt.Fprintln(w, "wind rulesets:")
	for _, c := range classes {
		fmt.Fprintf(w, "  %s\n", c)
	}

	fmt.Fprintf(w, "\n%-24s  %-6s  %s\n", "RULE", "CLASS", "EXPRESSION")
	for _, r := range classRules {
		fmt.Fprintf(w, "%-24s  %-6s  %s\n", r.ID, r.Class, r.Expression)
	}
}
