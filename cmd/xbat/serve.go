package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/xbat/pkg/server"
	"github.com/charlie0129/xbat/pkg/snapshot"
)

func NewServeCommand() *cobra.Command {
	allowNonRootAccess := false

	cmd := &cobra.Command{
		Use:     "serve",
		GroupID: gAdvanced,
		Short:   "Serve battery snapshots on a unix socket",
		Long: `Serve battery snapshots over HTTP on a unix socket.

Every request takes a fresh snapshot. Nothing is polled or cached between requests.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("allow-non-root-access") {
				conf.SetAllowNonRootAccess(allowNonRootAccess)
			}

			logrus.WithFields(conf.LogrusFields()).Info("starting xbat server")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(func(ctx context.Context) (snapshot.Snapshot, error) {
				return openSnapshot(ctx, conf)
			}, conf)
			return srv.Run(ctx, conf.SocketPath(), conf.AllowNonRootAccess())
		},
	}

	cmd.Flags().BoolVar(&allowNonRootAccess, "allow-non-root-access", false, "allow non-root users to access the socket")

	return cmd
}
