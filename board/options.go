// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package board

import (
	"github.com/go-git/go-billy/v5"
	"github.com/sirupsen/logrus"
)

// LoadOption defines the interface required to provide an option to Load.
type LoadOption interface {
	applyLoadOption(*loader)
}

// FilesystemOption provides the filesystem containing /proc and /sys.
type FilesystemOption struct {
	fs billy.Filesystem
}

// WithFilesystem returns an option that sets the filesystem used to detect
// the model and discover the chips.
//
// The default is the host root filesystem.
func WithFilesystem(fs billy.Filesystem) FilesystemOption {
	return FilesystemOption{fs}
}

func (o FilesystemOption) applyLoadOption(l *loader) {
	l.fs = o.fs
}

// ModelOption names the board model, bypassing detection.
type ModelOption string

// WithModel returns an option that sets the board model rather than
// detecting it.
func WithModel(name string) ModelOption {
	return ModelOption(name)
}

func (o ModelOption) applyLoadOption(l *loader) {
	l.model = string(o)
}

// LoggerOption provides the logger for detection warnings.
type LoggerOption struct {
	logger logrus.FieldLogger
}

// WithLogger returns an option that sets the logger used to report detection
// warnings.
func WithLogger(logger logrus.FieldLogger) LoggerOption {
	return LoggerOption{logger}
}

func (o LoggerOption) applyLoadOption(l *loader) {
	l.logger = o.logger
}
