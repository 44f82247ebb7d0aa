package command

import (
	"github.com/spf13/cobra"
)

// NewGenPlist returns the root command for
// genplist which acts as its CLI entrypoint.
func NewGenPlist() *cobra.Command {
	var (
		cmd = &cobra.Command{
			Use:   "genplist",
			Short: "Serve iOS installation manifests",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := loadConfig(cmd.Flags())
				if err != nil {
					return err
				}

				return Serve(cmd.Context(), cfg)
			},
		}
	)

	addConfigFlags(cmd.Flags())

	cmd.AddCommand(newManifest(), newLink())

	return cmd
}
