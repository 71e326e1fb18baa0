// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package board

import (
	"io"
	"os"
	"path"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	compatiblePath  = "/proc/device-tree/compatible"
	pluginIDsPath   = "/proc/device-tree/chosen/plugin-manager/ids"
	chosenIDsPath   = "/proc/device-tree/chosen/ids"
	modelEnvVar     = "JETSON_MODEL_NAME"
	nanoModulePart  = "3448"
	nanoMinRevision = "200"
)

// ErrNoModel indicates the board model could not be determined.
var ErrNoModel = errors.New("could not determine Jetson model")

// detectModel identifies the board model from the device-tree, falling back
// to the JETSON_MODEL_NAME environment variable.
func detectModel(fs billy.Filesystem, logger logrus.FieldLogger) (string, error) {
	if compats, err := readCompatible(fs); err == nil {
		for _, m := range models {
			if !matchesAny(m.compats, compats) {
				continue
			}
			if m.name == JetsonNano {
				if err := checkNanoRevision(fs, logger); err != nil {
					return "", err
				}
			}
			warnIfNotCarrierBoard(fs, logger, m.carriers)
			return m.name, nil
		}
	}
	if name, ok := os.LookupEnv(modelEnvVar); ok {
		name = strings.TrimSpace(name)
		if _, ok := findModel(name); ok {
			return name, nil
		}
		logger.WithField("env", modelEnvVar).Warnf("environment variable '%s=%s' is invalid", modelEnvVar, name)
	}
	return "", ErrNoModel
}

// readCompatible returns the NUL separated device-tree compatible strings.
func readCompatible(fs billy.Filesystem) ([]string, error) {
	data, err := readFile(fs, compatiblePath)
	if err != nil {
		return nil, err
	}
	return strings.Split(string(data), "\x00"), nil
}

func matchesAny(vals, compats []string) bool {
	for _, v := range vals {
		for _, c := range compats {
			if v == c {
				return true
			}
		}
	}
	return false
}

// checkNanoRevision rejects Jetson Nano modules earlier than A02.
func checkNanoRevision(fs billy.Filesystem, logger logrus.FieldLogger) error {
	id, ok := findPluginManagerBoard(fs, logger, nanoModulePart)
	if !ok {
		return errors.New("could not determine Jetson Nano module revision")
	}
	revision := id[strings.LastIndex(id, "-")+1:]
	// revision is an ordered string, not a decimal integer
	if revision < nanoMinRevision {
		return errors.New("Jetson Nano module revision must be A02 or later")
	}
	return nil
}

// findPluginManagerBoard returns the first plugin-manager board id with the
// given prefix.
func findPluginManagerBoard(fs billy.Filesystem, logger logrus.FieldLogger, prefix string) (string, bool) {
	if entries, err := fs.ReadDir(pluginIDsPath); err == nil {
		for _, e := range entries {
			if strings.HasPrefix(e.Name(), prefix) {
				return e.Name(), true
			}
		}
		return "", false
	}
	if data, err := readFile(fs, chosenIDsPath); err == nil {
		for _, id := range strings.Fields(string(data)) {
			if strings.HasPrefix(id, prefix) {
				return id, true
			}
		}
		return "", false
	}
	logger.Warn("plugin manager information missing from device tree, cannot determine whether the expected Jetson board is present")
	return "", false
}

func warnIfNotCarrierBoard(fs billy.Filesystem, logger logrus.FieldLogger, carriers []string) {
	for _, c := range carriers {
		if _, ok := findPluginManagerBoard(fs, logger, c+"-"); ok {
			return
		}
	}
	logger.Warn("carrier board is not from a Jetson Developer Kit, this library has not been verified with it and is unlikely to work correctly")
}

// readFile returns the contents of the named file.
func readFile(fs billy.Filesystem, name string) ([]byte, error) {
	f, err := fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// readAttr reads the given attribute from a sysfs directory.
func readAttr(fs billy.Filesystem, dir, attr string) (string, error) {
	data, err := readFile(fs, path.Join(dir, attr))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
