// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gpiosysfs

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warthog618/go-gpiosysfs/board"
	"github.com/warthog618/go-gpiosysfs/internal/fakesysfs"
)

// stepClock is a retry.Clock that advances by the requested delay
// immediately.
type stepClock struct {
	now   time.Time
	waits int
}

func (c *stepClock) Now() time.Time {
	return c.now
}

func (c *stepClock) After(d time.Duration) <-chan time.Time {
	c.waits++
	c.now = c.now.Add(d)
	ch := make(chan time.Time, 1)
	ch <- c.now
	return ch
}

var line7 = board.Channel{
	Number:       7,
	ChipDir:      "/sys/devices/2200000.gpio",
	ChipOffset:   106,
	GlobalNumber: 454,
	GlobalName:   "gpio454",
}

func newDriver(k *fakesysfs.Kernel) driver {
	return driver{fs: k, root: fakesysfs.Root, exportTimeout: time.Second}
}

func TestDriverExport(t *testing.T) {
	k := fakesysfs.New()
	d := newDriver(k)

	exported, err := d.export(line7)
	require.Nil(t, err)
	assert.True(t, exported)
	assert.True(t, k.Exported(454))
	assert.Equal(t, DirectionInput, d.configuration(line7))

	// already exported
	k.ClearWrites()
	exported, err = d.export(line7)
	assert.Nil(t, err)
	assert.False(t, exported)
	assert.Empty(t, k.Writes())

	err = d.unexport(line7)
	assert.Nil(t, err)
	assert.False(t, k.Exported(454))
	assert.Equal(t, DirectionUnknown, d.configuration(line7))

	// already unexported
	k.ClearWrites()
	err = d.unexport(line7)
	assert.Nil(t, err)
	assert.Empty(t, k.Writes())
}

func TestDriverExportWriteFails(t *testing.T) {
	k := fakesysfs.New(fakesysfs.WithReadOnly())
	d := newDriver(k)
	d.clock = &stepClock{now: time.Unix(0, 0)}

	exported, err := d.export(line7)
	assert.False(t, exported)
	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "export", ioErr.Op)

	// the write error is ignored if another process has exported the line
	require.Nil(t, k.MkdirAll("/sys/class/gpio/gpio454", 0o755))
	exported, err = d.export(line7)
	assert.False(t, exported)
	assert.True(t, errors.Is(err, ErrTimeout))

	require.Nil(t, k.WriteFile("/sys/class/gpio/gpio454/value", "0\n"))
	exported, err = d.export(line7)
	assert.False(t, exported)
	assert.Nil(t, err)
}

func TestDriverExportTimeout(t *testing.T) {
	k := fakesysfs.New(fakesysfs.WithStalledExport())
	d := newDriver(k)
	clk := &stepClock{now: time.Unix(0, 0)}
	d.clock = clk

	exported, err := d.export(line7)
	assert.True(t, errors.Is(err, ErrTimeout))
	assert.True(t, exported)
	assert.Greater(t, clk.waits, 10)
}

func TestDriverValue(t *testing.T) {
	k := fakesysfs.New()
	d := newDriver(k)
	_, err := d.export(line7)
	require.Nil(t, err)

	v, err := d.readValue(line7)
	assert.Nil(t, err)
	assert.Equal(t, "0", v)

	require.Nil(t, d.writeDirection(line7, "out"))
	assert.Equal(t, DirectionOutput, d.configuration(line7))
	require.Nil(t, d.writeValue(line7, "1"))
	v, err = d.readValue(line7)
	assert.Nil(t, err)
	assert.Equal(t, "1", v)

	k.Unexport(454)
	_, err = d.readValue(line7)
	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "read", ioErr.Op)

	err = d.writeValue(line7, "1")
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "value", ioErr.Op)
	assert.Equal(t, "/sys/class/gpio/gpio454/value", ioErr.Path)
}

func TestDriverConfigurationPWM(t *testing.T) {
	k := fakesysfs.New()
	d := newDriver(k)
	ch := line7
	ch.PWMChipDir = "/sys/devices/3280000.pwm/pwm/pwmchip0"
	ch.PWMID = 1

	assert.Equal(t, DirectionUnknown, d.configuration(ch))
	require.Nil(t, k.MkdirAll(ch.PWMChipDir+"/pwm0", 0o755))
	assert.Equal(t, DirectionUnknown, d.configuration(ch))
	require.Nil(t, k.MkdirAll(ch.PWMChipDir+"/pwm1", 0o755))
	assert.Equal(t, DirectionHardPWM, d.configuration(ch))
}

func TestDriverCheckWriteAccess(t *testing.T) {
	d := newDriver(fakesysfs.New())
	assert.Nil(t, d.checkWriteAccess())

	d = newDriver(fakesysfs.New(fakesysfs.WithReadOnly()))
	err := d.checkWriteAccess()
	assert.True(t, errors.Is(err, ErrPermissionDenied))

	d.root = "/sys/class/nonexistent"
	err = d.checkWriteAccess()
	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "access", ioErr.Op)
}

func TestSetupTwiceKeepsOneRecord(t *testing.T) {
	k := fakesysfs.New()
	s, err := New(
		WithTable(board.Table{board.ModeBoard: {7: line7}}),
		WithFilesystem(k),
	)
	require.Nil(t, err)
	require.Nil(t, s.SetMode(board.ModeBoard))

	require.Nil(t, s.Setup([]int{7}, DirectionOutput))
	require.Nil(t, s.Setup([]int{7}, DirectionInput))
	require.Len(t, s.configured, 1)
	assert.Equal(t, DirectionInput, s.configured.direction(7))

	require.Nil(t, s.Cleanup())
	assert.Empty(t, s.configured)
	assert.Nil(t, s.res.channels)
}

func TestResolver(t *testing.T) {
	r := resolver{}
	_, err := r.resolve(7, anyCapability)
	assert.Equal(t, ErrModeNotSet, err)

	pwmOnly := board.Channel{PWMChipDir: "/sys/devices/3280000.pwm/pwm/pwmchip0"}
	r = resolver{
		mode:     board.ModeBCM,
		channels: map[int]board.Channel{4: line7, 18: pwmOnly, 1: {}},
	}
	ch, err := r.resolve(4, needGPIO)
	assert.Nil(t, err)
	assert.Equal(t, 4, ch.Number)

	_, err = r.resolve(18, needGPIO)
	assert.True(t, errors.Is(err, ErrNotGPIO))
	ch, err = r.resolve(18, needPWM)
	assert.Nil(t, err)
	assert.Equal(t, 18, ch.Number)
	_, err = r.resolve(4, needPWM)
	assert.True(t, errors.Is(err, ErrNotPWM))

	_, err = r.resolve(1, anyCapability)
	assert.Nil(t, err)
	_, err = r.resolve(7, anyCapability)
	assert.True(t, errors.Is(err, ErrInvalidChannel))

	chs, err := r.resolveAll([]int{18, 4}, anyCapability)
	assert.Nil(t, err)
	require.Len(t, chs, 2)
	assert.Equal(t, 18, chs[0].Number)
	assert.Equal(t, 4, chs[1].Number)

	chs, err = r.resolveAll([]int{4, 99}, anyCapability)
	assert.True(t, errors.Is(err, ErrInvalidChannel))
	assert.Nil(t, chs)
}
