// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gpiosysfs_test

import (
	"os"
	"path"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warthog618/go-gpiocdev"

	gpiosysfs "github.com/warthog618/go-gpiosysfs"
	"github.com/warthog618/go-gpiosysfs/board"
	"github.com/warthog618/go-gpiosysfs/internal/simboard"
)

// The tests in this file drive a simulated header through the host GPIO sysfs
// interface. They require the gpio-sim kernel module, a mounted configfs and
// write access to /sys/class/gpio, which usually means root, and are skipped
// otherwise. Without them the Session is only covered by the tests using
// internal/fakesysfs.

// newSimSession creates a Session on the host sysfs for a simulated header
// with BOARD pins 7, 11 and 13 on lines 1, 2 and 4, and a hog on line 5
// behind pin 15.
//
// The test is skipped if the sysfs interface or gpio-sim is unavailable.
func newSimSession(t *testing.T) (*simboard.Board, *gpiosysfs.Session) {
	t.Helper()
	if _, err := os.Stat(path.Join(gpiosysfs.DefaultSysfsRoot, "export")); err != nil {
		t.Skip("GPIO sysfs interface unavailable")
	}
	sb, err := simboard.New(8,
		simboard.WithPin(7, 4, 1),
		simboard.WithPin(11, 17, 2),
		simboard.WithPin(13, 27, 4),
		simboard.WithPin(15, 22, 5),
		simboard.WithNamedLine(4, "PY.00"),
		simboard.WithHoggedLine(5, "piggy", simboard.HogDirectionInput),
	)
	if err != nil {
		t.Skipf("gpio-sim unavailable: %s", err)
	}
	s, err := gpiosysfs.New(gpiosysfs.WithTable(sb.Table()))
	if err != nil {
		sb.Close()
		t.Fatal(err)
	}
	require.Nil(t, s.SetMode(board.ModeBoard))
	return sb, s
}

func checkSysfsUser(t *testing.T, sb *simboard.Board, offset int, used bool) {
	t.Helper()
	c, err := gpiocdev.NewChip(sb.DevPath())
	require.Nil(t, err)
	defer c.Close()
	li, err := c.LineInfo(offset)
	require.Nil(t, err)
	assert.Equal(t, used, li.Used)
	if used {
		assert.Equal(t, "sysfs", li.Consumer)
	}
}

func TestSimOutput(t *testing.T) {
	sb, s := newSimSession(t)
	defer sb.Close()
	defer s.Close()

	err := s.Setup([]int{7}, gpiosysfs.DirectionOutput, gpiosysfs.WithInitial(gpiosysfs.High))
	require.Nil(t, err)
	checkSysfsUser(t, sb, 1, true)
	v, err := sb.Level(1)
	assert.Nil(t, err)
	assert.Equal(t, simboard.LevelActive, v)

	err = s.Output([]int{7}, []gpiosysfs.Level{gpiosysfs.Low})
	require.Nil(t, err)
	v, err = sb.Level(1)
	assert.Nil(t, err)
	assert.Equal(t, simboard.LevelInactive, v)

	l, err := s.Input(7)
	assert.Nil(t, err)
	assert.Equal(t, gpiosysfs.Low, l)

	err = s.Cleanup(7)
	require.Nil(t, err)
	checkSysfsUser(t, sb, 1, false)
}

func TestSimInput(t *testing.T) {
	sb, s := newSimSession(t)
	defer sb.Close()
	defer s.Close()

	err := s.Setup([]int{11}, gpiosysfs.DirectionInput)
	require.Nil(t, err)
	dir, err := s.Function(11)
	assert.Nil(t, err)
	assert.Equal(t, gpiosysfs.DirectionInput, dir)

	require.Nil(t, sb.SetPull(2, simboard.LevelActive))
	l, err := s.Input(11)
	assert.Nil(t, err)
	assert.Equal(t, gpiosysfs.High, l)

	require.Nil(t, sb.SetPull(2, simboard.LevelInactive))
	l, err = s.Input(11)
	assert.Nil(t, err)
	assert.Equal(t, gpiosysfs.Low, l)
}

func TestSimNamedLine(t *testing.T) {
	sb, s := newSimSession(t)
	defer sb.Close()
	defer s.Close()

	err := s.Setup([]int{13}, gpiosysfs.DirectionOutput, gpiosysfs.WithInitial(gpiosysfs.High))
	require.Nil(t, err)
	assert.DirExists(t, path.Join(gpiosysfs.DefaultSysfsRoot, "PY.00"))
	v, err := sb.Level(4)
	assert.Nil(t, err)
	assert.Equal(t, simboard.LevelActive, v)
}

func TestSimHoggedLine(t *testing.T) {
	sb, s := newSimSession(t)
	defer sb.Close()
	defer s.Close()

	err := s.Setup([]int{15}, gpiosysfs.DirectionInput)
	var ioErr *gpiosysfs.IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "export", ioErr.Op)
	dir, err := s.Function(15)
	assert.Nil(t, err)
	assert.Equal(t, gpiosysfs.DirectionUnknown, dir)
}

func TestSimCleanupAll(t *testing.T) {
	sb, s := newSimSession(t)
	defer sb.Close()

	err := s.Setup([]int{7, 11}, gpiosysfs.DirectionOutput)
	require.Nil(t, err)
	checkSysfsUser(t, sb, 1, true)
	checkSysfsUser(t, sb, 2, true)

	err = s.Cleanup()
	require.Nil(t, err)
	checkSysfsUser(t, sb, 1, false)
	checkSysfsUser(t, sb, 2, false)
	assert.Equal(t, board.ModeUnset, s.Mode())
}
