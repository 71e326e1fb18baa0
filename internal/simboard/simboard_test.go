// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package simboard_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warthog618/go-gpiocdev"

	"github.com/warthog618/go-gpiosysfs/board"
	"github.com/warthog618/go-gpiosysfs/internal/simboard"
)

// newBoard creates a simulated board, skipping the test if gpio-sim is
// unavailable.
//
// Creating a board requires the gpio-sim kernel module and a mounted configfs
// that is writable, which usually means root.
func newBoard(t *testing.T, numLines int, options ...simboard.Option) *simboard.Board {
	t.Helper()
	s, err := simboard.New(numLines, options...)
	if err != nil {
		t.Skipf("gpio-sim unavailable: %s", err)
	}
	return s
}

func TestNew(t *testing.T) {
	s := newBoard(t, 8,
		simboard.WithName("simboard_test"),
		simboard.WithPin(7, 4, 3),
		simboard.WithNamedLine(3, "LED0"),
		simboard.WithNamedLine(5, "BUTTON1"),
		simboard.WithHoggedLine(2, "piggy", simboard.HogDirectionOutputLow),
		simboard.WithHoggedLine(6, "hogster", simboard.HogDirectionInput),
	)
	defer s.Close()

	assert.Equal(t, "simboard_test", s.Name)
	k := s.Config()
	assert.Equal(t, 8, k.NumLines)
	assert.Equal(t, 2, len(k.Names))
	assert.Equal(t, 2, len(k.Hogs))
	require.Len(t, k.Pins, 1)

	p := s.DevPath()
	assert.FileExists(t, p)
	c, err := gpiocdev.NewChip(p)
	require.Nil(t, err)
	defer c.Close()
	assert.Equal(t, k.NumLines, c.Lines())
	assert.Equal(t, "simboard_test", c.Label)
	checkLineInfo(t, c, k)

	// non-unique name
	bs, err := simboard.New(8, simboard.WithName("simboard_test"))
	assert.NotNil(t, err)
	assert.Nil(t, bs)

	s.Close()
	assert.NoFileExists(t, p)
}

func TestNewInvalid(t *testing.T) {
	bs, err := simboard.New(0)
	assert.NotNil(t, err)
	assert.Nil(t, bs)

	bs, err = simboard.New(8, simboard.WithPin(7, 4, 8))
	assert.NotNil(t, err)
	assert.Nil(t, bs)
}

func TestTable(t *testing.T) {
	s := newBoard(t, 8,
		simboard.WithPin(7, 4, 1),
		simboard.WithPin(11, 17, 2),
		simboard.WithNamedLine(2, "PR.04"),
	)
	defer s.Close()

	tbl := s.Table()
	chs, ok := tbl.Channels(board.ModeBoard)
	require.True(t, ok)
	require.Len(t, chs, 2)
	ch := chs[7]
	assert.Equal(t, 7, ch.Number)
	assert.True(t, ch.HasGPIO())
	assert.False(t, ch.HasPWM())
	assert.Equal(t, 1, ch.ChipOffset)
	assert.Equal(t, s.Base()+1, ch.GlobalNumber)
	assert.Equal(t, fmt.Sprintf("gpio%d", s.Base()+1), ch.GlobalName)
	assert.Equal(t, "PR.04", chs[11].GlobalName)

	bcm, ok := tbl.Channels(board.ModeBCM)
	require.True(t, ok)
	assert.Equal(t, 17, bcm[17].Number)
	assert.Equal(t, s.GlobalNumber(2), bcm[17].GlobalNumber)
}

func checkLineInfo(t *testing.T, c *gpiocdev.Chip, k simboard.Header) {
	for o := 0; o < k.NumLines; o++ {
		xli := gpiocdev.LineInfo{
			Offset: o,
			Config: gpiocdev.LineConfig{Direction: gpiocdev.LineDirectionInput},
		}
		if name, ok := k.Names[o]; ok {
			xli.Name = name
		}
		if hog, ok := k.Hogs[o]; ok {
			if hog.Direction != simboard.HogDirectionInput {
				xli.Config.Direction = gpiocdev.LineDirectionOutput
			}
			xli.Used = true
			xli.Consumer = hog.Consumer
		}
		li, err := c.LineInfo(o)
		assert.Nil(t, err)
		assert.Equal(t, xli, li)
	}
}

func checkLineLevel(t *testing.T, l *gpiocdev.Line, xv int) {
	v, err := l.Value()
	assert.Nil(t, err)
	assert.Equal(t, xv, v)
}

func checkPull(t *testing.T, s *simboard.Board, offset, xv int) {
	v, err := s.Pull(offset)
	assert.Nil(t, err)
	assert.Equal(t, xv, v)
}

func checkLevel(t *testing.T, s *simboard.Board, offset, xv int) {
	v, err := s.Level(offset)
	assert.Nil(t, err)
	assert.Equal(t, xv, v)
}

func TestPull(t *testing.T) {
	s := newBoard(t, 8)
	defer s.Close()

	offset := 3
	l, err := gpiocdev.RequestLine(s.DevPath(), offset, gpiocdev.AsInput)
	require.Nil(t, err)
	defer l.Close()

	checkLineLevel(t, l, 0)

	err = s.SetPull(offset, simboard.LevelActive)
	assert.Nil(t, err)
	checkLineLevel(t, l, 1)
	checkPull(t, s, offset, simboard.LevelActive)

	err = s.SetPull(offset, simboard.LevelInactive)
	assert.Nil(t, err)
	checkLineLevel(t, l, 0)
	checkPull(t, s, offset, simboard.LevelInactive)
}

func TestLevel(t *testing.T) {
	s := newBoard(t, 8)
	defer s.Close()

	offset := 3
	l, err := gpiocdev.RequestLine(s.DevPath(), offset, gpiocdev.AsOutput(0))
	require.Nil(t, err)
	defer l.Close()
	checkLevel(t, s, offset, 0)
	checkPull(t, s, offset, 0)

	err = l.SetValue(1)
	assert.Nil(t, err)
	checkLevel(t, s, offset, 1)
	// driven level does not affect pull
	checkPull(t, s, offset, 0)

	err = l.SetValue(0)
	assert.Nil(t, err)
	checkLevel(t, s, offset, 0)
	checkPull(t, s, offset, 0)
}
