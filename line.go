// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gpiosysfs

// Level is the binary value of a pin.
type Level int

const (
	// Low is a pin driven or read as 0.
	Low Level = iota

	// High is a pin driven or read as 1.
	High
)

func (l Level) String() string {
	if l == Low {
		return "LOW"
	}
	return "HIGH"
}

// Direction is the configuration of a channel.
type Direction int

const (
	// DirectionUnknown is a channel that has not been configured.
	DirectionUnknown Direction = iota

	// DirectionInput is a channel configured as an input.
	DirectionInput

	// DirectionOutput is a channel configured as an output.
	DirectionOutput

	// DirectionHardPWM is a channel driven by a hardware PWM.
	//
	// It is only ever reported by the kernel, and cannot be set up.
	DirectionHardPWM
)

func (d Direction) String() string {
	switch d {
	case DirectionInput:
		return "IN"
	case DirectionOutput:
		return "OUT"
	case DirectionHardPWM:
		return "HARD_PWM"
	default:
		return "UNKNOWN"
	}
}

// Pull is a pull-up/down resistor setting.
//
// The sysfs interface cannot configure pulls, so a pull passed to Setup is
// ignored with a warning.
type Pull int

const (
	// PullOff disables the pull.
	PullOff Pull = iota

	// PullDown pulls the line down.
	PullDown

	// PullUp pulls the line up.
	PullUp
)

// Edge selects the transitions reported by a LineWatcher.
type Edge int

const (
	// EdgeRising reports low to high transitions.
	EdgeRising Edge = iota + 1

	// EdgeFalling reports high to low transitions.
	EdgeFalling

	// EdgeBoth reports all transitions.
	EdgeBoth
)
