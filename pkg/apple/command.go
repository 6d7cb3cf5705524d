package apple

import (
	"bytes"
	"context"
	"os/exec"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultIORegPath is used when Command.Path is empty.
const DefaultIORegPath = "ioreg"

// Command runs ioreg and parses its output.
type Command struct {
	// Path of the ioreg binary.
	Path string
	// Plist selects the XML output format (ioreg -a).
	Plist bool
}

// Args returns the ioreg arguments that list the battery entry with
// unlimited line width.
func (c Command) Args() []string {
	args := []string{"-r", "-c", BatteryObjectName, "-w0"}
	if c.Plist {
		args = append(args, "-a")
	}
	return args
}

// Snapshot runs ioreg to completion, then parses the captured output.
func (c Command) Snapshot(ctx context.Context) (*Snapshot, error) {
	path := c.Path
	if path == "" {
		path = DefaultIORegPath
	}
	args := c.Args()

	logrus.WithFields(logrus.Fields{
		"path": path,
		"args": args,
	}).Trace("running ioreg")

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to run %s: %s", path, bytes.TrimSpace(stderr.Bytes()))
	}

	logrus.WithFields(logrus.Fields{
		"path":  path,
		"bytes": stdout.Len(),
	}).Debug("ioreg finished")

	if c.Plist {
		return FromPlist(ctx, &stdout)
	}
	return FromIORegContext(ctx, &stdout)
}
