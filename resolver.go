// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gpiosysfs

import (
	"github.com/pkg/errors"

	"github.com/warthog618/go-gpiosysfs/board"
)

// capability is the function a channel is required to support.
type capability int

const (
	anyCapability capability = iota
	needGPIO
	needPWM
)

// resolver maps channel numbers under the active mode onto channel
// descriptors.
//
// A nil channel map indicates no mode is active.
type resolver struct {
	mode     board.Mode
	channels map[int]board.Channel
}

// resolve returns the descriptor for the channel.
func (r *resolver) resolve(channel int, need capability) (board.Channel, error) {
	if r.channels == nil {
		return board.Channel{}, ErrModeNotSet
	}
	return r.lookup(channel, need)
}

// resolveAll returns the descriptors for the channels, in order.
//
// No descriptors are returned if any channel fails to resolve.
func (r *resolver) resolveAll(channels []int, need capability) ([]board.Channel, error) {
	if r.channels == nil {
		return nil, ErrModeNotSet
	}
	chs := make([]board.Channel, 0, len(channels))
	for _, c := range channels {
		ch, err := r.lookup(c, need)
		if err != nil {
			return nil, err
		}
		chs = append(chs, ch)
	}
	return chs, nil
}

func (r *resolver) lookup(channel int, need capability) (board.Channel, error) {
	ch, ok := r.channels[channel]
	if !ok {
		return board.Channel{}, errors.Wrapf(ErrInvalidChannel, "channel %d under %s", channel, r.mode)
	}
	switch {
	case need == needGPIO && !ch.HasGPIO():
		return board.Channel{}, errors.Wrapf(ErrNotGPIO, "channel %d", channel)
	case need == needPWM && !ch.HasPWM():
		return board.Channel{}, errors.Wrapf(ErrNotPWM, "channel %d", channel)
	}
	ch.Number = channel
	return ch, nil
}
