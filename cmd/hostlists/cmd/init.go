package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var initName string

// initCmd scaffolds a new list directory.
var initCmd = &cobra.Command{
	Use:   "init <dir>",
	Short: "Scaffold a new filter list directory",
	Long: `Init creates filters/<dir> with a configuration.json and metadata.json
generated from templates, assigning the next free filter id. Fill in the
sources, homepage, and description before building.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := registry()
		if err != nil {
			return err
		}

		name := initName
		if name == "" {
			name = args[0]
		}

		result, err := reg.Scaffold(cmd.Context(), args[0], name)
		if err != nil {
			return err
		}
		return formatter().Format(os.Stdout, *result)
	},
}

func init() {
	initCmd.Flags().StringVar(&initName, "name", "", "Display name for the new list (default the directory name)")
	rootCmd.AddCommand(initCmd)
}
