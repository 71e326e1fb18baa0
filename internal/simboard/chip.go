// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package simboard

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
)

// sysfsClass is where the GPIO sysfs interface publishes its gpiochips.
const sysfsClass = "/sys/class/gpio"

// chip is the simulated gpiochip behind the header.
type chip struct {
	// The label of the chip, unique on the system.
	label string

	// The path to the chip in /dev
	devPath string

	// The name of the gpiochip in /dev and sysfs.
	chipName string

	// The path to the chip in /sys/devices/platform.
	sysfsPath string

	// The global GPIO number of line 0, as seen by the sysfs interface.
	base int

	// The configuration for this chip
	cfg Header
}

// locate finds the chip created by the live simulator at configfsPath.
func (c *chip) locate(configfsPath string) error {
	devName, err := readAttr(configfsPath, "dev_name")
	if err != nil {
		return err
	}
	chipName, err := readAttr(path.Join(configfsPath, "bank0"), "chip_name")
	if err != nil {
		return err
	}
	devPath := path.Join("/dev", chipName)
	stat, err := os.Lstat(devPath)
	if err != nil {
		return err
	}
	if stat.Mode()&fs.ModeSymlink != 0 {
		return errors.New("A symlink (" + devPath + ") is masking GPIO device " + chipName)
	}
	c.chipName = chipName
	c.devPath = devPath
	c.sysfsPath = path.Join("/sys/devices/platform", devName, chipName)
	c.base, err = findBase(c.label)
	return err
}

// findBase returns the base of the sysfs gpiochip with the given label.
func findBase(label string) (int, error) {
	dirs, err := filepath.Glob(path.Join(sysfsClass, "gpiochip*"))
	if err != nil {
		return 0, err
	}
	for _, d := range dirs {
		if l, err := readAttr(d, "label"); err != nil || l != label {
			continue
		}
		v, err := readAttr(d, "base")
		if err != nil {
			return 0, err
		}
		base, err := strconv.Atoi(v)
		if err != nil {
			return 0, errors.Wrapf(err, "unexpected base value: %s", v)
		}
		return base, nil
	}
	return 0, errors.Errorf("no gpiochip labelled '%s' in %s", label, sysfsClass)
}

// Level returns the level the line is being pulled to.
//
// If the line is an output then this is the level it is being driven to.
func (c *chip) Level(offset int) (int, error) {
	v, err := c.attr(offset, "value")
	if err == nil {
		if v == "0" {
			return LevelInactive, nil
		}
		if v == "1" {
			return LevelActive, nil
		}
		err = errors.Errorf("unexpected level value: %s", v)
	}
	return LevelInactive, err
}

const (
	// Line is inactive.
	LevelInactive int = iota

	// Line is active.
	LevelActive
)

// Pull returns the current pull of the given line.
func (c *chip) Pull(offset int) (int, error) {
	v, err := c.attr(offset, "pull")
	if err == nil {
		if v == "pull-down" {
			return LevelInactive, nil
		}
		if v == "pull-up" {
			return LevelActive, nil
		}
		err = errors.Errorf("unexpected pull value: %s", v)
	}
	return LevelInactive, err
}

// SetPull sets the pull of the given line, which is the level an input reads.
func (c *chip) SetPull(offset int, level int) error {
	l := "pull-down"
	if level == LevelActive {
		l = "pull-up"
	}
	return c.setAttr(offset, "pull", l)
}

// attr reads the given line attribute from sysfs
func (c *chip) attr(offset int, name string) (string, error) {
	return readAttr(path.Join(c.sysfsPath, fmt.Sprintf("sim_gpio%d", offset)), name)
}

// setAttr writes the given line attribute to sysfs
func (c *chip) setAttr(offset int, name, value string) error {
	return writeAttr(path.Join(c.sysfsPath, fmt.Sprintf("sim_gpio%d", offset)), name, value)
}
