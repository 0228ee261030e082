package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/scrapeview/internal/config"
)

// NewConfigShowCmd creates the config show command.
func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Prints the configuration after merging the config file, .env and
SCRAPEVIEW_* environment variables.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := config.GetGlobalConfig().YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
