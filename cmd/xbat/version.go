package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/xbat/pkg/client"
	"github.com/charlie0129/xbat/pkg/version"
)

func NewVersionCommand() *cobra.Command {
	remote := false
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Printf("%s %s\n", version.Version, version.GitCommit)
			if !remote {
				return nil
			}

			conf, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			daemonVersion, err := client.NewClient(conf.SocketPath()).GetVersion(cmd.Context())
			if err != nil {
				return err
			}
			if daemonVersion != version.Version {
				logrus.WithFields(logrus.Fields{
					"clientVersion": version.Version,
					"daemonVersion": daemonVersion,
				}).Warn("version mismatch between client and daemon")
			}
			cmd.Printf("daemon %s\n", daemonVersion)
			return nil
		},
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "also print the version of the xbat daemon")
	return cmd
}
