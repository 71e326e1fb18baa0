// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package simboard

import (
	"fmt"

	"github.com/warthog618/go-gpiosysfs/board"
)

// Board is a header whose pins are backed by a simulated gpiochip.
type Board struct {
	// The name of the simulator in configfs and sysfs space.
	//
	// Provided to assist with debugging.
	Name string

	// Path to the gpio-sim in configfs.
	configfsPath string

	chip
}

// New constructs a Board with numLines simulated lines.
//
// The available options are [WithPin], [WithNamedLine], [WithHoggedLine] and
// [WithName].
func New(numLines int, options ...Option) (*Board, error) {
	b := builder{hdr: Header{NumLines: numLines}}
	for _, o := range options {
		o.applyOption(&b)
	}
	return b.live()
}

// Close removes the simulator and its gpiochip.
func (s *Board) Close() {
	s.cleanupConfigfs()
}

// ChipName returns the name of the gpiochip.
//
// e.g. "gpiochip0"
func (s *Board) ChipName() string {
	return s.chipName
}

// Config returns the configuration used for the header.
func (s *Board) Config() Header {
	return s.cfg
}

// DevPath returns the path to the gpiochip device.
//
// e.g. "/dev/gpiochip0"
func (s *Board) DevPath() string {
	return s.devPath
}

// Base returns the global GPIO number of line 0.
func (s *Board) Base() int {
	return s.base
}

// GlobalNumber returns the global GPIO number of the line.
func (s *Board) GlobalNumber(offset int) int {
	return s.base + offset
}

// GlobalName returns the name of the directory created when the line is
// exported.
func (s *Board) GlobalName(offset int) string {
	if n, ok := s.cfg.Names[offset]; ok {
		return n
	}
	return fmt.Sprintf("gpio%d", s.GlobalNumber(offset))
}

// Table returns the channel table for the header pins.
func (s *Board) Table() board.Table {
	boardChannels := make(map[int]board.Channel, len(s.cfg.Pins))
	bcmChannels := make(map[int]board.Channel, len(s.cfg.Pins))
	for _, p := range s.cfg.Pins {
		ch := board.Channel{
			ChipDir:      s.sysfsPath,
			ChipOffset:   p.Offset,
			GlobalNumber: s.GlobalNumber(p.Offset),
			GlobalName:   s.GlobalName(p.Offset),
		}
		ch.Number = p.Board
		boardChannels[p.Board] = ch
		ch.Number = p.BCM
		bcmChannels[p.BCM] = ch
	}
	return board.Table{board.ModeBoard: boardChannels, board.ModeBCM: bcmChannels}
}
