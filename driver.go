// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gpiosysfs

import (
	"fmt"
	"io"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/pkg/errors"
	"gopkg.in/retry.v1"

	"github.com/warthog618/go-gpiosysfs/board"
)

const (
	// DefaultSysfsRoot is the location of the GPIO sysfs interface.
	DefaultSysfsRoot = "/sys/class/gpio"

	// DefaultExportTimeout is the default limit on the time waited for the
	// kernel to create the nodes of an exported line.
	DefaultExportTimeout = 5 * time.Second

	// exportPollInterval is the delay between checks for exported nodes.
	exportPollInterval = 10 * time.Millisecond
)

// driver performs the raw sysfs operations on resolved channels.
//
// No node is held open between operations, so changes made by other
// processes between calls are always seen.
type driver struct {
	fs   billy.Filesystem
	root string

	exportTimeout time.Duration

	// clock used by the export poll, nil for the wall clock.
	clock retry.Clock
}

// checkWriteAccess confirms the export and unexport nodes are writable.
func (d *driver) checkWriteAccess() error {
	for _, node := range []string{"export", "unexport"} {
		p := path.Join(d.root, node)
		f, err := d.fs.OpenFile(p, os.O_WRONLY, 0)
		if err != nil {
			if os.IsPermission(err) {
				return errors.Wrapf(ErrPermissionDenied, "%s", p)
			}
			return &IOError{Op: "access", Path: p, Err: err}
		}
		f.Close()
	}
	return nil
}

// lineDir returns the directory of the exported line.
func (d *driver) lineDir(ch board.Channel) string {
	return path.Join(d.root, ch.GlobalName)
}

// export exports the line, if necessary, and waits for its value node to
// become available.
//
// The returned flag is set if the line was exported by this call, even if
// waiting for the value node then fails.
func (d *driver) export(ch board.Channel) (bool, error) {
	valuePath := path.Join(d.lineDir(ch), "value")
	exported := false
	if !d.exists(valuePath) {
		err := d.writeNode("export", path.Join(d.root, "export"), strconv.Itoa(ch.GlobalNumber))
		// Something else may have exported the line in the meantime, in
		// which case the write fails with EBUSY, so only report the error if
		// the line is really not there.
		if err != nil && !d.exists(d.lineDir(ch)) {
			return false, err
		}
		exported = err == nil
	}
	return exported, d.waitForNode(valuePath)
}

// waitForNode polls for the node to appear, as the kernel creates the nodes
// of an exported line asynchronously.
func (d *driver) waitForNode(p string) error {
	strategy := retry.Regular{Total: d.exportTimeout, Delay: exportPollInterval, Min: 1}
	for a := retry.Start(strategy, d.clock); a.Next(); {
		if d.exists(p) {
			return nil
		}
	}
	return errors.Wrapf(ErrTimeout, "%s not created after %s", p, d.exportTimeout)
}

// unexport unexports the line if it is currently exported.
func (d *driver) unexport(ch board.Channel) error {
	if !d.exists(d.lineDir(ch)) {
		return nil
	}
	return d.writeNode("unexport", path.Join(d.root, "unexport"), strconv.Itoa(ch.GlobalNumber))
}

func (d *driver) writeDirection(ch board.Channel, direction string) error {
	return d.writeNode("direction", path.Join(d.lineDir(ch), "direction"), direction)
}

func (d *driver) writeValue(ch board.Channel, value string) error {
	return d.writeNode("value", path.Join(d.lineDir(ch), "value"), value)
}

func (d *driver) readValue(ch board.Channel) (string, error) {
	p := path.Join(d.lineDir(ch), "value")
	v, err := d.readNode(p)
	if err != nil {
		return "", &IOError{Op: "read", Path: p, Err: err}
	}
	return v, nil
}

// configuration returns the configuration of the channel as reported by
// sysfs, or DirectionUnknown if the channel is not in use.
func (d *driver) configuration(ch board.Channel) Direction {
	if ch.HasPWM() && d.exists(path.Join(ch.PWMChipDir, fmt.Sprintf("pwm%d", ch.PWMID))) {
		return DirectionHardPWM
	}
	if !ch.HasGPIO() || !d.exists(d.lineDir(ch)) {
		return DirectionUnknown
	}
	v, err := d.readNode(path.Join(d.lineDir(ch), "direction"))
	if err != nil {
		return DirectionUnknown
	}
	switch v {
	case "in":
		return DirectionInput
	case "out":
		return DirectionOutput
	default:
		return DirectionUnknown
	}
}

func (d *driver) exists(p string) bool {
	_, err := d.fs.Stat(p)
	return err == nil
}

// writeNode opens the node, writes the value, and closes it again.
func (d *driver) writeNode(op, p, value string) error {
	f, err := d.fs.OpenFile(p, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return &IOError{Op: op, Path: p, Err: err}
	}
	_, err = f.Write([]byte(value))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return &IOError{Op: op, Path: p, Err: err}
	}
	return nil
}

func (d *driver) readNode(p string) (string, error) {
	f, err := d.fs.Open(p)
	if err != nil {
		return "", err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
