// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gpiosysfs

import "github.com/warthog618/go-gpiosysfs/board"

// LineWatcher detects edges on lines set up as inputs.
//
// The Session does not provide edge detection itself. A LineWatcher installed
// with WithLineWatcher receives the resolved channel for each request, and is
// told to release a channel before the Session unexports it.
type LineWatcher interface {
	// Watch starts detecting the given edges on the channel.
	Watch(ch board.Channel, edge Edge) error

	// Detected returns true if an edge has been detected on the channel
	// since the last call.
	Detected(ch board.Channel) bool

	// Release stops detecting edges on the channel.
	//
	// Releasing a channel that is not being watched is not an error.
	Release(ch board.Channel) error
}
