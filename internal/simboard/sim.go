// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package simboard provides a board header backed by a gpio-sim chip, for
// testing against the real GPIO sysfs interface.
//
// Creating a Board requires the gpio-sim kernel module and permission to
// write to configfs, so generally root.
package simboard

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"path"
	"strings"
	"sync/atomic"

	"github.com/pkg/errors"
)

// builder contains all the information required to build a Board.
type builder struct {
	// The name for the simulator in the configfs space.
	//
	// If empty when live is called then a unique name is generated.
	name string // optional

	hdr Header
}

// live creates the gpio-sim configuration for the header and takes it live.
func (b *builder) live() (*Board, error) {
	if b.hdr.NumLines <= 0 {
		return nil, errors.New("no lines defined")
	}
	for _, p := range b.hdr.Pins {
		if p.Offset < 0 || p.Offset >= b.hdr.NumLines {
			return nil, errors.Errorf("pin %d offset %d out of range", p.Board, p.Offset)
		}
	}
	if len(b.name) == 0 {
		b.name = uniqueName()
	}
	configfsPath, err := findConfigfsPath()
	if err != nil {
		return nil, err
	}
	configfsPath = path.Join(configfsPath, b.name)
	if _, err := os.Stat(configfsPath); err == nil {
		return nil, errors.Errorf("sim with name '%s' already exists", b.name)
	}

	s := &Board{
		Name:         b.name,
		configfsPath: configfsPath,
		chip:         chip{cfg: b.hdr, label: b.name},
	}
	err = s.setupConfigfs()
	if err == nil {
		err = writeAttr(s.configfsPath, "live", "1")
	}
	if err != nil {
		s.Close()
		return nil, err
	}
	if err = s.chip.locate(s.configfsPath); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// setupConfigfs constructs the gpio-sim configuration in configfs for the
// header chip.
func (s *Board) setupConfigfs() error {
	c := s.chip.cfg
	bankPath := path.Join(s.configfsPath, "bank0")
	if err := os.MkdirAll(bankPath, 0755); err != nil {
		return err
	}
	if err := writeAttr(bankPath, "label", s.chip.label); err != nil {
		return err
	}
	if err := writeAttr(bankPath, "num_lines", fmt.Sprintf("%d", c.NumLines)); err != nil {
		return err
	}
	for o, n := range c.Names {
		linePath := path.Join(bankPath, fmt.Sprintf("line%d", o))
		if err := os.Mkdir(linePath, 0755); err != nil {
			return err
		}
		if err := writeAttr(linePath, "name", n); err != nil {
			return err
		}
	}
	for o, h := range c.Hogs {
		hogPath := path.Join(bankPath, fmt.Sprintf("line%d", o), "hog")
		if err := os.MkdirAll(hogPath, 0755); err != nil {
			return err
		}
		if err := writeAttr(hogPath, "name", h.Consumer); err != nil {
			return err
		}
		if err := writeAttr(hogPath, "direction", h.Direction.String()); err != nil {
			return err
		}
	}
	return nil
}

// cleanupConfigfs removes all the gpio-sim configuration for the header.
func (s *Board) cleanupConfigfs() {
	writeAttr(s.configfsPath, "live", "0")
	bankPath := path.Join(s.configfsPath, "bank0")
	if _, err := os.Stat(bankPath); err == nil {
		for o := range s.chip.cfg.Hogs {
			linePath := path.Join(bankPath, fmt.Sprintf("line%d", o))
			os.Remove(path.Join(linePath, "hog"))
			os.Remove(linePath)
		}
		for o := range s.chip.cfg.Names {
			os.Remove(path.Join(bankPath, fmt.Sprintf("line%d", o)))
		}
		os.Remove(bankPath)
	}
	os.Remove(s.configfsPath)
}

// configfsMountPoint finds the location where configfs is mounted in the file system.
//
// If no mountpoint is found, attempts to mount it in the usual "/sys/kernel/config".
func configfsMountPoint() (string, error) {
	file, err := os.Open("/proc/mounts")
	if err != nil {
		return "", err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		words := strings.Fields(scanner.Text())
		if len(words) >= 6 && words[2] == "configfs" {
			return words[1], nil
		}
	}
	configfs := "/sys/kernel/config"
	cmd := exec.Command("mount", "-t", "configfs", "configfs", configfs)
	if err = cmd.Run(); err == nil {
		return configfs, nil
	}
	return "", errors.New("can't find configfs mountpoint")
}

// findConfigfsPath finds the location of gpio-sim in configfs, loading the
// module if necessary.
func findConfigfsPath() (string, error) {
	configfs := "/sys/kernel/config/gpio-sim"
	if _, err := os.Stat(configfs); err == nil {
		return configfs, nil
	}
	cmd := exec.Command("modprobe", "gpio-sim")
	if err := cmd.Run(); err == nil {
		if _, err := os.Stat(configfs); err == nil {
			return configfs, nil
		}
	}
	// configfs may be mounted somewhere unusual
	if configfs, err := configfsMountPoint(); err == nil {
		configfs = path.Join(configfs, "gpio-sim")
		if _, err := os.Stat(configfs); err == nil {
			return configfs, nil
		}
	}
	return "", errors.New("gpio-sim module not loaded")
}

var simCounter uint32

// uniqueName returns a name for the simulator that is very likely to be
// unique, using the app name, PID and a counter.
//
// The name doubles as the chip label, which is how the chip is found in
// the GPIO sysfs class.
func uniqueName() string {
	return fmt.Sprintf("%s-p%d-%d", appName(), os.Getpid(), atomic.AddUint32(&simCounter, 1))
}

func appName() string {
	str, err := os.Executable()
	if err != nil {
		return "simboard"
	}
	return path.Base(str)
}

func readAttr(p, attr string) (string, error) {
	data, err := os.ReadFile(path.Join(p, attr))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func writeAttr(p, attr, value string) error {
	return os.WriteFile(path.Join(p, attr), []byte(value), 0666)
}
