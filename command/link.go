package command

import (
	"fmt"
	"net/url"

	"github.com/frantjc/genplist"
	"github.com/frantjc/genplist/ios"
	"github.com/spf13/cobra"
)

func newLink() *cobra.Command {
	var (
		fields         manifestFlags
		urlstr         string
		manifestURLStr string
		cmd            = &cobra.Command{
			Use:   "link",
			Short: "Print the itms-services link that installs an app",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				var (
					manifestURL *url.URL
					err         error
				)

				switch {
				case manifestURLStr != "":
					if manifestURL, err = url.Parse(manifestURLStr); err != nil {
						return err
					}
				case urlstr != "":
					cli := new(genplist.Client)
					if cli.Base, err = url.Parse(urlstr); err != nil {
						return err
					}

					if manifestURL, err = cli.ManifestURL(fields.bundleID, fields.name, fields.version, fields.fetchURL); err != nil {
						return err
					}
				default:
					return fmt.Errorf("one of --manifest-url or --url is required")
				}

				_, err = fmt.Fprintln(cmd.OutOrStdout(), ios.InstallURL(manifestURL).String())
				return err
			},
		}
	)

	fields.addFlags(cmd.Flags())
	cmd.Flags().StringVar(&urlstr, "url", "", "Base URL of a genplist server to point the link at.")
	cmd.Flags().StringVar(&manifestURLStr, "manifest-url", "", "URL of an existing manifest.plist to point the link at.")
	cmd.MarkFlagsMutuallyExclusive("url", "manifest-url")

	return cmd
}
