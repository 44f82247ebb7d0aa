package command

import (
	"fmt"

	"github.com/frantjc/genplist/ios"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type manifestFlags struct {
	bundleID string
	name     string
	version  string
	fetchURL string
}

func (f *manifestFlags) addFlags(flags *pflag.FlagSet) {
	flags.StringVar(&f.bundleID, "bundleid", "", "Bundle identifier of the app.")
	flags.StringVar(&f.name, "name", "", "Title of the app.")
	flags.StringVar(&f.version, "bundle-version", "", "Version of the app.")
	flags.StringVar(&f.fetchURL, "fetchurl", "", "URL that the .ipa can be downloaded from.")
}

func newManifest() *cobra.Command {
	var (
		fields manifestFlags
		ipa    string
		pretty bool
		cmd    = &cobra.Command{
			Use:   "manifest",
			Short: "Write an iOS installation manifest to stdout",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				var (
					ctx   = cmd.Context()
					flags = cmd.Flags()
				)

				if ipa != "" {
					ipaDecoder := ios.NewIPADecoder(ipa)
					defer ipaDecoder.Close()

					info, err := ipaDecoder.Info(ctx)
					if err != nil {
						return err
					}

					// Flags take precedence over the .ipa's Info.plist.
					if !flags.Changed("bundleid") {
						fields.bundleID = info.CFBundleIdentifier
					}

					if !flags.Changed("name") {
						fields.name = info.Title()
					}

					if !flags.Changed("bundle-version") {
						fields.version = info.Version()
					}
				} else {
					for _, name := range []string{"bundleid", "name", "bundle-version"} {
						if !flags.Changed(name) {
							return fmt.Errorf("--%s is required without --ipa", name)
						}
					}
				}

				indent := ""
				if pretty {
					indent = ios.ManifestIndent
				}

				b, err := ios.MarshalManifest(
					ios.NewManifest(fields.bundleID, fields.name, fields.version, fields.fetchURL),
					indent,
				)
				if err != nil {
					return err
				}

				_, err = cmd.OutOrStdout().Write(b)
				return err
			},
		}
	)

	fields.addFlags(cmd.Flags())
	cmd.Flags().StringVar(&ipa, "ipa", "", "Path to an .ipa to read the bundle identifier, name and version from.")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the manifest.")
	_ = cmd.MarkFlagRequired("fetchurl")

	return cmd
}
