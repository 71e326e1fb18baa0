// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gpiosysfs

import (
	"sync"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/warthog618/go-gpiosysfs/board"
)

// Session provides access to the GPIO channels of a board.
//
// A Session holds the active numbering mode and the record of the channels
// it has set up. Its methods may be called from multiple goroutines.
type Session struct {
	mu sync.Mutex

	desc    board.Description
	drv     driver
	logger  logrus.FieldLogger
	watcher LineWatcher

	warnings   bool
	res        resolver
	configured tracker
}

// New constructs a Session based on the provided options.
//
// The available options are [WithBoard], [WithTable], [WithFilesystem],
// [WithSysfsRoot], [WithLogger], [WithWarnings], [WithExportTimeout] and
// [WithLineWatcher].
//
// If neither WithBoard nor WithTable is provided then the board is detected
// and its channel table discovered from sysfs.
func New(options ...NewOption) (*Session, error) {
	b := builder{
		root:          DefaultSysfsRoot,
		warnings:      true,
		exportTimeout: DefaultExportTimeout,
	}
	for _, o := range options {
		o.applyNewOption(&b)
	}
	return b.build()
}

func (b *builder) build() (*Session, error) {
	if b.fs == nil {
		b.fs = osfs.New("/")
	}
	if b.logger == nil {
		b.logger = logrus.StandardLogger()
	}
	if b.desc == nil {
		d, err := board.Load(board.WithFilesystem(b.fs), board.WithLogger(b.logger))
		if err != nil {
			return nil, err
		}
		b.desc = d
	}
	return &Session{
		desc:       *b.desc,
		drv:        driver{fs: b.fs, root: b.root, exportTimeout: b.exportTimeout},
		logger:     b.logger,
		watcher:    b.watcher,
		warnings:   b.warnings,
		configured: tracker{},
	}, nil
}

// Model returns the name of the board model, e.g. JETSON_ORIN.
func (s *Session) Model() string {
	return s.desc.Model
}

// Info returns the descriptive information for the board.
func (s *Session) Info() board.Info {
	return s.desc.Info
}

// SetWarnings enables or disables warnings.
func (s *Session) SetWarnings(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warnings = enabled
}

// SetMode selects the numbering mode used to identify channels.
//
// Selecting the active mode again has no effect. Selecting a different mode
// fails with ErrModeConflict until the mode is reset by a full Cleanup.
func (s *Session) SetMode(m board.Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.res.channels != nil && s.res.mode != m {
		return errors.Wrapf(ErrModeConflict, "%s is active", s.res.mode)
	}
	if !m.Supported() {
		return errors.Wrapf(ErrInvalidMode, "%s", m)
	}
	chs, ok := s.desc.Table.Channels(m)
	if !ok {
		return errors.Wrapf(ErrInvalidMode, "no channels defined for %s", m)
	}
	if chs == nil {
		chs = map[int]board.Channel{}
	}
	s.res = resolver{mode: m, channels: chs}
	return nil
}

// Mode returns the active numbering mode, or ModeUnset if none is active.
func (s *Session) Mode() board.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.res.mode
}

// Setup configures the channels in the given direction.
//
// The available options are [WithInitial], for outputs, and [WithPull], for
// inputs.
//
// Channels already set up by the Session are cleaned up before being
// reconfigured. All arguments are validated before any channel is touched,
// but if configuring a channel fails then channels earlier in the list are
// left configured.
func (s *Session) Setup(channels []int, direction Direction, options ...SetupOption) error {
	cfg := setupConfig{}
	for _, o := range options {
		o.applySetupOption(&cfg)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.drv.checkWriteAccess(); err != nil {
		return err
	}
	chs, err := s.res.resolveAll(channels, needGPIO)
	if err != nil {
		return err
	}
	if direction != DirectionInput && direction != DirectionOutput {
		return errors.Wrapf(ErrInvalidDirection, "%s", direction)
	}
	if direction == DirectionInput && cfg.initial != nil {
		return errors.Wrap(ErrInvalidArgument, "initial level is not valid for inputs")
	}
	if cfg.pull != nil && (*cfg.pull < PullOff || *cfg.pull > PullUp) {
		return errors.Wrapf(ErrInvalidArgument, "pull %d", *cfg.pull)
	}
	if direction == DirectionOutput && cfg.pull != nil && *cfg.pull != PullOff {
		return errors.Wrap(ErrInvalidArgument, "pull is not valid for outputs")
	}
	if cfg.pull != nil && s.warnings {
		s.logger.Warn("pull cannot be set through sysfs and is ignored")
	}

	if s.warnings {
		for _, ch := range chs {
			if s.configured.direction(ch.Number) == DirectionUnknown &&
				s.drv.configuration(ch) != DirectionUnknown {
				s.logger.WithFields(channelFields(ch)).
					Warn("channel is already in use, continuing anyway. Use SetWarnings(false) to disable warnings")
			}
		}
	}

	for _, ch := range chs {
		if c, ok := s.configured[ch.Number]; ok {
			if err := s.cleanupOne(c); err != nil {
				return err
			}
		}
	}

	for _, ch := range chs {
		if err := s.setupOne(ch, direction, cfg.initial); err != nil {
			return err
		}
	}
	return nil
}

// setupOne exports and configures the line, and records it.
//
// If configuring fails then a line exported here is unexported again, so no
// unrecorded line is left behind.
func (s *Session) setupOne(ch board.Channel, direction Direction, initial *Level) error {
	exported, err := s.drv.export(ch)
	if err == nil {
		err = s.configureLine(ch, direction, initial)
	}
	if err != nil {
		if exported {
			err = multierr.Append(err, s.drv.unexport(ch))
		}
		return err
	}
	s.configured.set(ch, direction)
	return nil
}

func (s *Session) configureLine(ch board.Channel, direction Direction, initial *Level) error {
	if direction == DirectionInput {
		return s.drv.writeDirection(ch, "in")
	}
	if err := s.drv.writeDirection(ch, "out"); err != nil {
		return err
	}
	if initial != nil {
		return s.drv.writeValue(ch, levelValue(*initial))
	}
	return nil
}

// Input returns the current level of the channel.
//
// The channel must have been set up as either an input or an output.
func (s *Session) Input(channel int) (Level, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, err := s.res.resolve(channel, needGPIO)
	if err != nil {
		return Low, err
	}
	switch s.configured.direction(channel) {
	case DirectionInput, DirectionOutput:
	default:
		return Low, errors.Wrapf(ErrNotSetUp, "channel %d", channel)
	}
	v, err := s.drv.readValue(ch)
	if err != nil {
		return Low, err
	}
	if v == "0" {
		return Low, nil
	}
	return High, nil
}

// Output drives each channel to the corresponding level.
//
// All channels must have been set up as outputs. The channels are validated
// before any is written, but a failed write does not undo the writes to
// channels earlier in the list.
func (s *Session) Output(channels []int, levels []Level) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	chs, err := s.res.resolveAll(channels, needGPIO)
	if err != nil {
		return err
	}
	if len(levels) != len(chs) {
		return errors.Wrapf(ErrLengthMismatch, "%d levels for %d channels", len(levels), len(chs))
	}
	for _, ch := range chs {
		if s.configured.direction(ch.Number) != DirectionOutput {
			return errors.Wrapf(ErrNotSetUp, "channel %d has not been set up as an output", ch.Number)
		}
	}
	for i, ch := range chs {
		if err := s.drv.writeValue(ch, levelValue(levels[i])); err != nil {
			return err
		}
	}
	return nil
}

// Cleanup releases channels set up by the Session.
//
// With no arguments, every channel set up by the Session is released and the
// numbering mode is reset, so a different mode may then be selected. If that
// fails to unexport some lines the Session still forgets them, and the
// combined error is returned.
//
// Otherwise only the listed channels are released, and channels that have not
// been set up are ignored. Note that an empty, but non-nil, list releases
// nothing.
func (s *Session) Cleanup(channels ...int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.res.channels == nil {
		if s.warnings {
			s.logger.Warn("no channels have been set up yet - nothing to clean up")
		}
		return nil
	}
	if channels == nil {
		return s.cleanupAll()
	}
	chs, err := s.res.resolveAll(channels, anyCapability)
	if err != nil {
		return err
	}
	for _, ch := range chs {
		if c, ok := s.configured[ch.Number]; ok {
			if err := s.cleanupOne(c); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close releases all channels set up by the Session.
func (s *Session) Close() error {
	return s.Cleanup()
}

func (s *Session) cleanupAll() error {
	var errs error
	for _, c := range s.configured {
		errs = multierr.Append(errs, s.cleanupOne(c))
	}
	s.configured = tracker{}
	s.res = resolver{}
	return errs
}

// cleanupOne releases the channel and forgets it.
//
// The record is kept if the line cannot be unexported.
func (s *Session) cleanupOne(c configuredChannel) error {
	if s.watcher != nil {
		if err := s.watcher.Release(c.Channel); err != nil {
			return err
		}
	}
	if err := s.drv.unexport(c.Channel); err != nil {
		return err
	}
	s.configured.remove(c.Number)
	return nil
}

// Function returns the current configuration of the channel.
//
// This is the direction the Session set the channel up for, else the
// configuration reported by sysfs, else DirectionUnknown.
func (s *Session) Function(channel int) (Direction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, err := s.res.resolve(channel, anyCapability)
	if err != nil {
		return DirectionUnknown, err
	}
	if d := s.configured.direction(channel); d != DirectionUnknown {
		return d, nil
	}
	return s.drv.configuration(ch), nil
}

// AddEventDetect starts detecting edges on an input channel using the
// installed LineWatcher.
func (s *Session) AddEventDetect(channel int, edge Edge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.watcher == nil {
		return ErrNoLineWatcher
	}
	ch, err := s.res.resolve(channel, needGPIO)
	if err != nil {
		return err
	}
	if s.configured.direction(channel) != DirectionInput {
		return errors.Wrapf(ErrNotSetUp, "channel %d has not been set up as an input", channel)
	}
	switch edge {
	case EdgeRising, EdgeFalling, EdgeBoth:
	default:
		return errors.Wrapf(ErrInvalidArgument, "edge %d", edge)
	}
	return s.watcher.Watch(ch, edge)
}

// RemoveEventDetect stops detecting edges on the channel.
func (s *Session) RemoveEventDetect(channel int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.watcher == nil {
		return ErrNoLineWatcher
	}
	ch, err := s.res.resolve(channel, needGPIO)
	if err != nil {
		return err
	}
	return s.watcher.Release(ch)
}

// EventDetected returns true if an edge has been detected on the channel
// since the last call.
func (s *Session) EventDetected(channel int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.watcher == nil {
		return false, ErrNoLineWatcher
	}
	ch, err := s.res.resolve(channel, needGPIO)
	if err != nil {
		return false, err
	}
	return s.watcher.Detected(ch), nil
}

func levelValue(l Level) string {
	if l == Low {
		return "0"
	}
	return "1"
}

func channelFields(ch board.Channel) logrus.Fields {
	return logrus.Fields{"channel": ch.Number, "gpio": ch.GlobalName}
}
