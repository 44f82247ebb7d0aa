package command

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	xslice "github.com/frantjc/x/slice"
	"github.com/go-logr/logr"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// SetCommon configures the flags, logging and
// version output shared by every genplist command.
func SetCommon(cmd *cobra.Command, version string) *cobra.Command {
	var (
		verbosity int
		envFile   string
	)
	cmd.PersistentFlags().CountVarP(&verbosity, "verbose", "V", fmt.Sprintf("Verbosity for %s.", cmd.Name()))
	cmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Path to a .env file to load into the environment.")
	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if envFile != "" {
			if err := godotenv.Load(envFile); err != nil {
				return err
			}
		}

		if verbose := os.Getenv(envPrefix + "_VERBOSE"); verbose != "" && xslice.Some([]string{"1", "y", "yes", "true", "t"}, func(s string, _ int) bool {
			return strings.EqualFold(s, verbose)
		}) && verbosity < 1 {
			verbosity = 1
		}

		var (
			// Logs go to stderr so that stdout stays
			// free for command output such as manifests.
			slog = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: slog.Level(int(slog.LevelInfo) - 4*verbosity),
			}))
			slogr = logr.FromSlogHandler(slog.Handler())
		)

		cmd.SetContext(logr.NewContext(cmd.Context(), slogr))

		return nil
	}

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	cmd.Version = version
	cmd.SetVersionTemplate("{{ .Name }}{{ .Version }} " + runtime.Version() + "\n")

	return cmd
}
