// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

/*
Package gpiosysfs is a library for driving the header GPIOs of NVIDIA Jetson
boards through the Linux GPIO sysfs interface.

Channels are identified by pin number under a numbering [board.Mode], either
the physical position on the header ([board.ModeBoard]) or the Broadcom number
of the equivalent Raspberry Pi pin ([board.ModeBCM]).
A [Session] resolves each channel to its kernel GPIO line using a
[board.Table], exports the line, and drives it via the sysfs direction and
value nodes.

Constructing a [Session] with [New] detects the board model from the device
tree and discovers the table from sysfs. Alternatively the table may be
provided using [WithTable] or [WithBoard].

A numbering mode must be selected with [Session.SetMode] before any channel is
used, and the mode cannot be changed until the Session has been cleaned up
with [Session.Cleanup].
Channels are configured with [Session.Setup], read with [Session.Input] and
driven with [Session.Output].
[Session.Cleanup] unexports the lines the Session exported.

Warnings, such as setting up a channel already in use by another process, are
reported to a logrus logger, and may be disabled with [Session.SetWarnings].

Writing to the sysfs export nodes typically requires root permissions, or
membership of a gpio group.

# Example Usage

Drive BOARD pin 12 high, and read BOARD pin 11:

	s, err := gpiosysfs.New()
	defer s.Close()
	err = s.SetMode(board.ModeBoard)
	err = s.Setup([]int{12}, gpiosysfs.DirectionOutput, gpiosysfs.WithInitial(gpiosysfs.High))
	err = s.Setup([]int{11}, gpiosysfs.DirectionInput)
	level, err := s.Input(11)

Drive several outputs at once:

	err = s.Output([]int{12, 13}, []gpiosysfs.Level{gpiosysfs.Low, gpiosysfs.High})
*/
package gpiosysfs
