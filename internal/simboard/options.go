// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package simboard

// Option defines the interface required to provide an option to New.
type Option interface {
	applyOption(*builder)
}

// PinOption adds a pin to the header.
type PinOption Pin

// WithPin returns an option that places the line at offset behind the given
// BOARD and BCM pin numbers.
func WithPin(boardNumber, bcmNumber, offset int) PinOption {
	return PinOption{Board: boardNumber, BCM: bcmNumber, Offset: offset}
}

func (o PinOption) applyOption(b *builder) {
	b.hdr.Pins = append(b.hdr.Pins, Pin(o))
}

// HoggedLine is an option that hogs a line.
type HoggedLine struct {
	offset int
	Hog
}

// WithHoggedLine returns an option to hog a simulated line.
//
// Hogging the line makes it appear in use by another consumer, so it cannot
// be exported.
func WithHoggedLine(offset int, consumer string, direction HogDirection) HoggedLine {
	return HoggedLine{offset, Hog{consumer, direction}}
}

func (o HoggedLine) applyOption(b *builder) {
	if b.hdr.Hogs == nil {
		b.hdr.Hogs = make(map[int]Hog)
	}
	b.hdr.Hogs[o.offset] = o.Hog
}

// NameOption defines the name for the simulator.
type NameOption string

// WithName returns an option that defines the name of the simulator in
// configfs.
func WithName(name string) NameOption {
	return NameOption(name)
}

func (o NameOption) applyOption(b *builder) {
	b.name = string(o)
}

// NamedLine is an option that names a line.
type NamedLine struct {
	Offset int
	Name   string
}

// WithNamedLine returns an option that defines the name of a simulated line.
func WithNamedLine(offset int, name string) NamedLine {
	return NamedLine{offset, name}
}

func (o NamedLine) applyOption(b *builder) {
	if b.hdr.Names == nil {
		b.hdr.Names = make(map[int]string)
	}
	b.hdr.Names[o.Offset] = o.Name
}
