// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gpiosysfs

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrModeNotSet indicates a channel was used before a numbering mode was
	// selected with SetMode.
	ErrModeNotSet = errors.New("numbering mode not set")

	// ErrModeConflict indicates SetMode was called with a mode different to
	// the active one.
	ErrModeConflict = errors.New("a different mode has already been set")

	// ErrInvalidMode indicates the mode is not a supported numbering mode.
	ErrInvalidMode = errors.New("invalid mode")

	// ErrInvalidChannel indicates the channel does not exist under the active
	// mode.
	ErrInvalidChannel = errors.New("invalid channel")

	// ErrNotGPIO indicates the channel has no GPIO capability.
	ErrNotGPIO = errors.New("channel is not a GPIO")

	// ErrNotPWM indicates the channel has no hardware PWM capability.
	ErrNotPWM = errors.New("channel is not a PWM")

	// ErrInvalidDirection indicates a direction other than input or output
	// was passed to Setup.
	ErrInvalidDirection = errors.New("invalid direction")

	// ErrInvalidArgument indicates an option is not valid in the context it
	// was used, e.g. an initial level for an input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrLengthMismatch indicates the number of levels differs from the
	// number of channels.
	ErrLengthMismatch = errors.New("number of levels != number of channels")

	// ErrNotSetUp indicates the channel has not been set up by this session
	// in the direction required.
	ErrNotSetUp = errors.New("channel not set up")

	// ErrPermissionDenied indicates the process cannot write to the sysfs
	// export and unexport nodes.
	ErrPermissionDenied = errors.New("no write access to the GPIO sysfs interface")

	// ErrTimeout indicates an exported line did not appear in sysfs in time.
	ErrTimeout = errors.New("timeout waiting for exported line")

	// ErrNoLineWatcher indicates edge detection was requested without a
	// LineWatcher installed.
	ErrNoLineWatcher = errors.New("no line watcher")
)

// IOError reports a failed operation on a sysfs node.
type IOError struct {
	// The operation being performed, e.g. "export".
	Op string

	// The path of the node.
	Path string

	// The underlying error.
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *IOError) Unwrap() error {
	return e.Err
}
