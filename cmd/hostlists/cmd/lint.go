package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// lintCmd validates the registry without writing anything.
var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate registry inputs without writing anything",
	Long: `Lint checks every list descriptor, tag reference, compiler
configuration, locale key, and service fragment, and reports all problems
in one run. The exit status is non-zero when anything is wrong.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		reg, err := registry()
		if err != nil {
			return err
		}

		report, err := reg.Lint(cmd.Context())
		if err != nil {
			return err
		}

		if err := formatter().Format(os.Stdout, report.Findings); err != nil {
			return err
		}
		if !report.OK() {
			return fmt.Errorf("%d problem(s) found", len(report.Findings))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)
}
