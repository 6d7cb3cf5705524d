// Package daemon installs `xbat serve` as a system service: a launchd
// daemon on macOS and a systemd unit on Linux.
package daemon

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/charlie0129/xbat/pkg/snapshot"
)

// Manager writes and loads the service definition.
type Manager struct {
	// GOOS selects launchd or systemd. Empty means runtime.GOOS.
	GOOS string
	// Root is prepended to every file path, for tests.
	Root string
	// Run executes a service manager command. Nil means exec.Command.
	Run func(name string, args ...string) error
}

type service struct {
	path     string
	template string
	load     [][]string
	unload   [][]string
}

func (m Manager) service() (service, error) {
	goos := m.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	switch goos {
	case "darwin":
		p := "/Library/LaunchDaemons/" + launchdLabel + ".plist"
		return service{
			path:     p,
			template: launchdPlistTemplate,
			load:     [][]string{{"/bin/launchctl", "load", p}},
			unload:   [][]string{{"/bin/launchctl", "unload", p}},
		}, nil
	case "linux":
		return service{
			path:     "/etc/systemd/system/xbat.service",
			template: systemdUnitTemplate,
			load:     [][]string{{"systemctl", "daemon-reload"}, {"systemctl", "enable", "--now", "xbat.service"}},
			unload:   [][]string{{"systemctl", "disable", "--now", "xbat.service"}},
		}, nil
	}
	return service{}, fmt.Errorf("%w: no service manager on %s", snapshot.ErrPlatformUnsupported, goos)
}

func (m Manager) run(args []string) error {
	if m.Run != nil {
		return m.Run(args[0], args[1:]...)
	}
	return exec.Command(args[0], args[1:]...).Run()
}

// Render returns the service definition for the given binary and config.
func (m Manager) Render(exePath, configPath string) (string, error) {
	svc, err := m.service()
	if err != nil {
		return "", err
	}
	ret := strings.ReplaceAll(svc.template, "/path/to/xbat", exePath)
	return strings.ReplaceAll(ret, "/path/to/config", configPath), nil
}

// Install writes the service definition for exePath and starts it.
func (m Manager) Install(exePath, configPath string) error {
	svc, err := m.service()
	if err != nil {
		return err
	}

	exePath, err = filepath.Abs(exePath)
	if err != nil {
		return fmt.Errorf("failed to get the absolute path to the executable: %w", err)
	}
	logrus.Infof("executable path: %s", exePath)

	content, err := m.Render(exePath, configPath)
	if err != nil {
		return err
	}

	path := filepath.Join(m.Root, svc.path)
	logrus.Infof("writing service definition to %s", path)

	// mkdir -p
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}

	// warn if the file already exists
	if _, err := os.Stat(path); err == nil {
		logrus.Warnf("%s already exists, overwriting", path)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	logrus.Infof("starting xbat")
	for _, args := range svc.load {
		if err := m.run(args); err != nil {
			return fmt.Errorf("failed to run %s: %w", strings.Join(args, " "), err)
		}
	}

	return nil
}
