package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/hostlists"
	"github.com/agentstation/hostlists/pkg/compiler"
)

var (
	buildOffline     bool
	buildSkipLocales bool
	buildCompiler    string
)

// buildSummary is one list's outcome as rendered by the build command.
type buildSummary struct {
	FilterID    int    `json:"filter_id" yaml:"filter_id"`
	Name        string `json:"name" yaml:"name"`
	Environment string `json:"environment" yaml:"environment"`
	Status      string `json:"status" yaml:"status"`
}

// buildCmd compiles every list and replaces the published filter catalogs.
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Compile filter lists and publish the metadata catalogs",
	Long: `Build discovers every list directory under the registry, compiles the
enabled ones, updates content-hash revisions, folds locale fragments, and
replaces filters.json, filters-dev.json, and filters_i18n.json.

A compile failure for any list aborts the whole run before anything is
written; the previous artifacts stay in place.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		opts := []hostlists.Option{}
		if buildOffline {
			opts = append(opts, hostlists.WithOfflineCompiler())
		} else if buildCompiler != "" {
			opts = append(opts, hostlists.WithCompiler(compiler.NewExec(buildCompiler)))
		}
		if buildSkipLocales {
			opts = append(opts, hostlists.WithSkipLocales())
		}

		reg, err := registry(opts...)
		if err != nil {
			return err
		}

		result, err := reg.Build(cmd.Context())
		if err != nil {
			return err
		}

		summaries := make([]buildSummary, 0, len(result.Compiled))
		for i := range result.Compiled {
			c := &result.Compiled[i]
			status := "unchanged"
			switch {
			case c.Frozen:
				status = "frozen"
			case c.Changed:
				status = "changed"
			}
			summaries = append(summaries, buildSummary{
				FilterID:    c.List.Filter.ID,
				Name:        c.List.Filter.Name,
				Environment: c.List.Filter.Environment.String(),
				Status:      status,
			})
		}

		return formatter().Format(os.Stdout, summaries)
	},
}

func init() {
	buildCmd.Flags().BoolVar(&buildOffline, "offline", false,
		"Assemble local sources without the external compiler or the network")
	buildCmd.Flags().BoolVar(&buildSkipLocales, "skip-locales", false,
		"Skip folding locale fragments")
	buildCmd.Flags().StringVar(&buildCompiler, "compiler", "",
		"External compiler command (default hostlist-compiler)")
	rootCmd.AddCommand(buildCmd)
}
