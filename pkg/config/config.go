package config

import "github.com/sirupsen/logrus"

// Config is the persisted xbat configuration.
type Config interface {
	// Source is the snapshot source name, see package source.
	Source() string
	IORegPath() string
	SysfsRoot() string
	SocketPath() string
	AllowNonRootAccess() bool

	SetSource(string)
	SetIORegPath(string)
	SetSysfsRoot(string)
	SetSocketPath(string)
	SetAllowNonRootAccess(bool)

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error

	LogrusFields() logrus.Fields
}
