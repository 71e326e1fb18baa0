// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package board describes how caller-facing pin numbers map onto kernel GPIO
// lines for each supported board model.
//
// A [Table] holds, for each numbering [Mode], the [Channel] descriptors for
// every pin reachable under that mode. Tables are normally built by [Load],
// which detects the board model and discovers the chip bases from sysfs, but
// may also be constructed directly.
package board

import "fmt"

// Mode identifies the convention used to number channels.
type Mode int

const (
	// ModeUnset indicates no numbering mode has been selected.
	ModeUnset Mode = iota

	// ModeBoard numbers channels by their physical position on the header.
	ModeBoard

	// ModeBCM numbers channels by the Broadcom SOC channel numbers of the
	// equivalent Raspberry Pi header pins.
	ModeBCM

	// ModeTegraSOC names channels by Tegra SOC pin name.
	//
	// Channels are names rather than numbers, so the mode is not supported.
	ModeTegraSOC

	// ModeCVM names channels by CVM pin name.
	//
	// Channels are names rather than numbers, so the mode is not supported.
	ModeCVM
)

// Supported returns true if channels may be selected using the mode.
func (m Mode) Supported() bool {
	return m == ModeBoard || m == ModeBCM
}

func (m Mode) String() string {
	switch m {
	case ModeUnset:
		return "UNSET"
	case ModeBoard:
		return "BOARD"
	case ModeBCM:
		return "BCM"
	case ModeTegraSOC:
		return "TEGRA_SOC"
	case ModeCVM:
		return "CVM"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode returns the Mode with the given name, e.g. "BOARD".
func ParseMode(s string) (Mode, error) {
	for _, m := range []Mode{ModeBoard, ModeBCM, ModeTegraSOC, ModeCVM} {
		if m.String() == s {
			return m, nil
		}
	}
	return ModeUnset, fmt.Errorf("invalid mode: %s", s)
}

// Channel describes how a channel resolves to kernel resources.
type Channel struct {
	// The caller-facing channel number under the mode the Channel belongs to.
	Number int

	// The sysfs directory of the GPIO chip.
	//
	// Empty if the channel has no GPIO capability.
	ChipDir string

	// The offset of the line within the GPIO chip.
	ChipOffset int

	// The global kernel GPIO number, as written to export and unexport.
	GlobalNumber int

	// The name of the line directory created by export.
	//
	// e.g. "gpio348" or "PQ.06"
	GlobalName string

	// The sysfs directory of the PWM chip, e.g.
	// "/sys/devices/3280000.pwm/pwm/pwmchip0".
	//
	// Empty if the channel has no PWM capability.
	PWMChipDir string

	// The index of the PWM within the PWM chip.
	PWMID int
}

// HasGPIO returns true if the channel can be driven as a GPIO.
func (c Channel) HasGPIO() bool {
	return c.ChipDir != ""
}

// HasPWM returns true if the channel can be driven by a hardware PWM.
func (c Channel) HasPWM() bool {
	return c.PWMChipDir != ""
}

// Table maps each numbering mode to the channels reachable under it.
type Table map[Mode]map[int]Channel

// Channels returns the channels available under the given mode.
func (t Table) Channels(m Mode) (map[int]Channel, bool) {
	chs, ok := t[m]
	return chs, ok
}

// Info contains descriptive information about a board model.
type Info struct {
	P1Revision   int
	RAM          string
	Revision     string
	Type         string
	Manufacturer string
	Processor    string
}
