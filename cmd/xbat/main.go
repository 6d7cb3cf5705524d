package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/xbat/pkg/client"
	"github.com/charlie0129/xbat/pkg/config"
	"github.com/charlie0129/xbat/pkg/snapshot"
	"github.com/charlie0129/xbat/pkg/source"
)

var (
	logLevel       = "info"
	configPath     = "/etc/xbat.json"
	unixSocketPath = config.DefaultSocketPath
	sourceName     = source.Auto
)

var (
	gBasic        = "Basic:"
	gAdvanced     = "Advanced:"
	commandGroups = []string{
		gBasic,
		gAdvanced,
	}
)

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if isatty.IsTerminal(os.Stderr.Fd()) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

func handleCmdError(err error) {
	switch {
	case errors.Is(err, snapshot.ErrPlatformUnsupported):
		fmt.Fprintln(os.Stderr, "\nError: no battery source for this platform")
		fmt.Fprintf(os.Stderr, "  - Try another source with '--source', one of: %s\n", strings.Join(source.Names(), ", "))
	case errors.Is(err, client.ErrDaemonNotRunning):
		fmt.Fprintln(os.Stderr, "\nError: xbat daemon is not running")
		fmt.Fprintln(os.Stderr, "Start it with 'xbat serve', or drop '--remote' to read the battery directly.")
	case errors.Is(err, client.ErrPermissionDenied):
		fmt.Fprintln(os.Stderr, "\nError: Permission Denied")
		fmt.Fprintln(os.Stderr, "  - Try running the command again with 'sudo'")
		fmt.Fprintln(os.Stderr, "  - Or restart the daemon with '--allow-non-root-access'")
	}
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		handleCmdError(err)
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	opts := &statusOptions{}

	cmd := &cobra.Command{
		Use:   "xbat",
		Short: "xbat reports normalized battery information",
		Long: `xbat reports normalized battery information on macOS, Linux and Windows.

Without a subcommand, xbat prints the status of the primary battery.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogger()
		},
		RunE: opts.run,
	}
	opts.addFlags(cmd.Flags())

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&configPath, "config", configPath, "config file path (.json, .toml, .yaml)")
	globalFlags.StringVarP(&sourceName, "source", "s", sourceName, "battery source ("+strings.Join(source.Names(), ", ")+")")
	globalFlags.StringVar(&unixSocketPath, "daemon-socket", unixSocketPath, "xbat daemon unix socket path")

	for _, i := range commandGroups {
		cmd.AddGroup(&cobra.Group{
			ID:    i,
			Title: i,
		})
	}

	cmd.AddCommand(
		NewStatusCommand(),
		NewDetailsCommand(),
		NewServeCommand(),
		NewVersionCommand(),
		NewInstallCommand(),
		NewUninstallCommand(),
	)

	return cmd
}
