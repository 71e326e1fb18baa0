// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gpiosysfs

import (
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/sirupsen/logrus"

	"github.com/warthog618/go-gpiosysfs/board"
)

// builder contains all the information required to build a Session.
type builder struct {
	// The board description.
	//
	// If nil when the Session is built then the board is detected.
	desc *board.Description // optional

	fs            billy.Filesystem
	root          string
	logger        logrus.FieldLogger
	warnings      bool
	exportTimeout time.Duration
	watcher       LineWatcher
}

// NewOption defines the interface required to provide an option to New.
type NewOption interface {
	applyNewOption(*builder)
}

// BoardOption provides the board description for a Session.
type BoardOption struct {
	desc board.Description
}

// WithBoard returns an option that provides the board description, rather
// than detecting the board.
func WithBoard(d board.Description) BoardOption {
	return BoardOption{d}
}

func (o BoardOption) applyNewOption(b *builder) {
	d := o.desc
	b.desc = &d
}

// TableOption provides the channel table for a Session.
type TableOption board.Table

// WithTable returns an option that provides the channel table, rather than
// detecting the board.
//
// The Session Model and Info are left empty.
func WithTable(t board.Table) TableOption {
	return TableOption(t)
}

func (o TableOption) applyNewOption(b *builder) {
	b.desc = &board.Description{Table: board.Table(o)}
}

// FilesystemOption provides the filesystem containing sysfs.
type FilesystemOption struct {
	fs billy.Filesystem
}

// WithFilesystem returns an option that sets the filesystem used to access
// sysfs, and to detect the board.
//
// The default is the host root filesystem.
func WithFilesystem(fs billy.Filesystem) FilesystemOption {
	return FilesystemOption{fs}
}

func (o FilesystemOption) applyNewOption(b *builder) {
	b.fs = o.fs
}

// SysfsRootOption sets the location of the GPIO sysfs interface.
type SysfsRootOption string

// WithSysfsRoot returns an option that sets the location of the GPIO sysfs
// interface.
//
// The default is DefaultSysfsRoot.
func WithSysfsRoot(root string) SysfsRootOption {
	return SysfsRootOption(root)
}

func (o SysfsRootOption) applyNewOption(b *builder) {
	b.root = string(o)
}

// LoggerOption provides the logger for warnings.
type LoggerOption struct {
	logger logrus.FieldLogger
}

// WithLogger returns an option that sets the logger warnings are reported to.
//
// The default is the logrus standard logger.
func WithLogger(logger logrus.FieldLogger) LoggerOption {
	return LoggerOption{logger}
}

func (o LoggerOption) applyNewOption(b *builder) {
	b.logger = o.logger
}

// WarningsOption enables or disables warnings.
type WarningsOption bool

// WithWarnings returns an option that enables or disables warnings.
//
// Warnings are enabled by default.
func WithWarnings(enabled bool) WarningsOption {
	return WarningsOption(enabled)
}

func (o WarningsOption) applyNewOption(b *builder) {
	b.warnings = bool(o)
}

// ExportTimeoutOption limits the wait for exported lines.
type ExportTimeoutOption time.Duration

// WithExportTimeout returns an option that sets how long Setup waits for the
// kernel to create the nodes of an exported line.
//
// The default is DefaultExportTimeout.
func WithExportTimeout(d time.Duration) ExportTimeoutOption {
	return ExportTimeoutOption(d)
}

func (o ExportTimeoutOption) applyNewOption(b *builder) {
	b.exportTimeout = time.Duration(o)
}

// LineWatcherOption installs a LineWatcher.
type LineWatcherOption struct {
	w LineWatcher
}

// WithLineWatcher returns an option that installs the LineWatcher used for
// edge detection.
func WithLineWatcher(w LineWatcher) LineWatcherOption {
	return LineWatcherOption{w}
}

func (o LineWatcherOption) applyNewOption(b *builder) {
	b.watcher = o.w
}

// setupConfig contains the optional parameters to Setup.
type setupConfig struct {
	initial *Level
	pull    *Pull
}

// SetupOption defines the interface required to provide an option to Setup.
type SetupOption interface {
	applySetupOption(*setupConfig)
}

// InitialOption sets the initial level of an output.
type InitialOption Level

// WithInitial returns an option that sets the level an output is driven to
// when it is set up.
//
// Only valid for outputs.
func WithInitial(l Level) InitialOption {
	return InitialOption(l)
}

func (o InitialOption) applySetupOption(c *setupConfig) {
	l := Level(o)
	c.initial = &l
}

// PullOption requests a pull on an input.
type PullOption Pull

// WithPull returns an option that requests a pull on an input.
//
// The pull cannot be applied through sysfs, so it is ignored with a
// warning. Only valid for inputs.
func WithPull(p Pull) PullOption {
	return PullOption(p)
}

func (o PullOption) applySetupOption(c *setupConfig) {
	p := Pull(o)
	c.pull = &p
}
