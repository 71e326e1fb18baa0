// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gpiosysfs

import "github.com/warthog618/go-gpiosysfs/board"

// configuredChannel is a channel this process has set up.
type configuredChannel struct {
	board.Channel
	direction Direction
}

// tracker records the channels this process has configured, keyed by channel
// number under the active mode.
type tracker map[int]configuredChannel

// direction returns the direction the channel was set up for, or
// DirectionUnknown if it has not been set up.
func (t tracker) direction(channel int) Direction {
	if c, ok := t[channel]; ok {
		return c.direction
	}
	return DirectionUnknown
}

func (t tracker) set(ch board.Channel, d Direction) {
	t[ch.Number] = configuredChannel{ch, d}
}

func (t tracker) remove(channel int) {
	delete(t, channel)
}
