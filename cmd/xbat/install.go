package main

import (
	"fmt"
	"os"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	daemonutils "github.com/charlie0129/xbat/pkg/utils/daemon"
)

var gInstallation = "Installation:"

func init() {
	commandGroups = append(commandGroups, gInstallation)
}

// NewInstallCommand .
func NewInstallCommand() *cobra.Command {
	allowNonRootAccess := false

	cmd := &cobra.Command{
		Use:     "install",
		Short:   "Install xbat serve as a system service",
		GroupID: gInstallation,
		Long: `Install the xbat server to launchd (macOS) or systemd (Linux).

This makes xbat serve battery snapshots in the background and start on boot. You must run this command as root.

By default, only root may read from the socket. Use --allow-non-root-access to let every user query it with --remote.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			conf.SetAllowNonRootAccess(allowNonRootAccess)

			exePath, err := os.Executable()
			if err != nil {
				return pkgerrors.Wrapf(err, "failed to get the path to the current executable")
			}

			if err := (daemonutils.Manager{}).Install(exePath, configPath); err != nil {
				if os.Geteuid() != 0 {
					logrus.Errorf("you must run this command as root")
				}
				return fmt.Errorf("failed to install daemon: %w", err)
			}

			if err := conf.Save(); err != nil {
				return pkgerrors.Wrapf(err, "failed to save config")
			}

			logrus.Infof("installation succeeded")
			cmd.Printf("The service uses the current binary (%s). If you move or delete it, run `xbat install' again.\n", exePath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&allowNonRootAccess, "allow-non-root-access", false, "allow non-root users to access the socket")

	return cmd
}

// NewUninstallCommand .
func NewUninstallCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "uninstall",
		Short:   "Uninstall the xbat system service",
		GroupID: gInstallation,
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := (daemonutils.Manager{}).Uninstall(); err != nil {
				if os.Geteuid() != 0 {
					logrus.Errorf("you must run this command as root")
				}
				return fmt.Errorf("failed to uninstall daemon: %w", err)
			}
			logrus.Infof("uninstallation succeeded")
			return nil
		},
	}
}
