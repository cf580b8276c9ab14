package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// servicesSummary is the services command's rendered outcome.
type servicesSummary struct {
	Services int `json:"services" yaml:"services"`
	Added    int `json:"added" yaml:"added"`
	Removed  int `json:"removed" yaml:"removed"`
	Changed  int `json:"changed" yaml:"changed"`
	Restored int `json:"restored" yaml:"restored"`
}

// servicesCmd reconciles the services catalog and replaces services.json.
var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "Reconcile service fragments and publish services.json",
	Long: `Services compares the editable source fragments under services/ against
the published distribution, merges them (source edits win), restores
fragments that were deleted upstream, regroups the result into the
category/group/service hierarchy, and replaces services.json.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		reg, err := registry()
		if err != nil {
			return err
		}

		result, err := reg.BuildServices(cmd.Context())
		if err != nil {
			return err
		}

		summary := servicesSummary{
			Services: len(result.Catalog.Flatten()),
			Added:    len(result.Diff.Added),
			Removed:  len(result.Diff.Removed),
			Changed:  len(result.Diff.Changed),
			Restored: len(result.Restored),
		}
		return formatter().Format(os.Stdout, summary)
	},
}

func init() {
	rootCmd.AddCommand(servicesCmd)
}
