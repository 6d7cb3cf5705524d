package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Uninstall stops the service and removes its definition. A missing
// definition is not an error.
func (m Manager) Uninstall() error {
	svc, err := m.service()
	if err != nil {
		return err
	}

	logrus.Infof("stopping xbat")
	for _, args := range svc.unload {
		if err := m.run(args); err != nil {
			return fmt.Errorf("failed to run %s: %w. Are you root?", strings.Join(args, " "), err)
		}
	}

	path := filepath.Join(m.Root, svc.path)
	logrus.Infof("removing %s", path)

	err = os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w. Are you root?", path, err)
	}

	return nil
}
