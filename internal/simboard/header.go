// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package simboard

// Header contains the information required to configure the simulated chip
// behind a board header.
type Header struct {
	// The number of lines simulated by the chip.
	NumLines int

	// The header pins and the lines behind them.
	Pins []Pin

	// Lines assigned an identifying name.
	//
	// A named line is exported to sysfs under its name rather than as
	// gpio<N>.
	Names map[int]string

	// Lines that appear to be already in use by some other entity.
	Hogs map[int]Hog
}

// Pin maps a header pin onto a simulated line.
type Pin struct {
	// The pin number under the BOARD numbering mode.
	Board int

	// The pin number under the BCM numbering mode.
	BCM int

	// The offset of the line within the simulated chip.
	Offset int
}

// Hog contains the details of a line hog, i.e. some other user of a line.
type Hog struct {
	// The name of the consumer that appears to be using the line.
	Consumer string

	// The requested direction for the hogged line, and if an
	// output then the direction of pull.
	Direction HogDirection
}

// HogDirection indicates the direction of a hogged line.
type HogDirection int

const (
	// Hogged line is requested as an input.
	HogDirectionInput HogDirection = iota

	// Hogged line is requested as an output pulled low.
	HogDirectionOutputLow

	// Hogged line is requested as an output pulled high.
	HogDirectionOutputHigh
)

func (d HogDirection) String() string {
	switch d {
	case HogDirectionOutputLow:
		return "output-low"
	case HogDirectionOutputHigh:
		return "output-high"
	default:
		return "input"
	}
}
