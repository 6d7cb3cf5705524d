package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/xbat/pkg/client"
	"github.com/charlie0129/xbat/pkg/config"
	"github.com/charlie0129/xbat/pkg/snapshot"
	"github.com/charlie0129/xbat/pkg/source"
)

// loadConfig reads the config file and applies the global flags the user
// set explicitly on top of it.
func loadConfig(cmd *cobra.Command) (*config.File, error) {
	conf, err := config.NewFile(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("source") {
		conf.SetSource(sourceName)
	}
	if flags.Changed("daemon-socket") {
		conf.SetSocketPath(unixSocketPath)
	}

	logrus.WithFields(conf.LogrusFields()).Debug("config loaded")
	return conf, nil
}

func openSnapshot(ctx context.Context, conf config.Config) (snapshot.Snapshot, error) {
	return source.Open(ctx, conf.Source(), source.Options{
		IORegPath: conf.IORegPath(),
		SysfsRoot: conf.SysfsRoot(),
	})
}

// takeSnapshot reads the battery directly, or asks the daemon when remote
// is set.
func takeSnapshot(cmd *cobra.Command, remote bool) (snapshot.Snapshot, error) {
	conf, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if remote {
		return client.NewClient(conf.SocketPath()).Snapshot(cmd.Context())
	}
	return openSnapshot(cmd.Context(), conf)
}
