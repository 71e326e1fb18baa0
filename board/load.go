// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package board

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// The locations searched for chip devices in sysfs.
var sysfsPrefixes = []string{"/sys/devices/", "/sys/devices/platform/"}

// Description is the detected board model and its channel table.
type Description struct {
	// The name of the board model, e.g. JETSON_ORIN.
	Model string

	// Descriptive information about the model.
	Info Info

	// The channels available under each supported numbering mode.
	Table Table
}

// Load detects the board model and builds the channel table for it.
//
// The available options are [WithFilesystem], [WithModel] and [WithLogger].
func Load(options ...LoadOption) (*Description, error) {
	l := loader{}
	for _, o := range options {
		o.applyLoadOption(&l)
	}
	if l.fs == nil {
		l.fs = osfs.New("/")
	}
	if l.logger == nil {
		l.logger = logrus.StandardLogger()
	}
	return l.load()
}

// loader contains the information required to load a board description.
type loader struct {
	fs     billy.Filesystem
	logger logrus.FieldLogger
	model  string // optional
}

// chipData describes a GPIO chip found in sysfs.
type chipData struct {
	dir   string
	base  int
	ngpio int
}

func (l *loader) load() (*Description, error) {
	name := l.model
	if name == "" {
		var err error
		if name, err = detectModel(l.fs, l.logger); err != nil {
			return nil, err
		}
	}
	m, ok := findModel(name)
	if !ok {
		return nil, errors.Errorf("unknown model '%s'", name)
	}
	if len(m.pins) == 0 {
		return nil, errors.Errorf("no pin definitions found for model %s", name)
	}
	t, err := l.buildTable(m.pins)
	if err != nil {
		return nil, err
	}
	return &Description{Model: name, Info: m.info, Table: t}, nil
}

func (l *loader) buildTable(pins []pinDefinition) (Table, error) {
	chips := map[string]chipData{}
	pwms := map[string]string{}
	for _, p := range pins {
		if _, ok := chips[p.chip]; ok || p.chip == "" {
			continue
		}
		c, err := l.findGPIOChip(p.chip)
		if err != nil {
			return nil, err
		}
		chips[p.chip] = c
	}
	for _, p := range pins {
		if _, ok := pwms[p.pwmChip]; ok || p.pwmChip == "" {
			continue
		}
		// Some PWM controllers aren't enabled in all versions of the DT.
		// Hide the PWM function on those pins.
		if dir, ok := l.findPWMChip(p.pwmChip); ok {
			pwms[p.pwmChip] = dir
		}
	}

	boardChannels := make(map[int]Channel, len(pins))
	bcmChannels := make(map[int]Channel, len(pins))
	for _, p := range pins {
		c := chips[p.chip]
		offset, ok := p.offsets[c.ngpio]
		if !ok {
			return nil, errors.Errorf("no offset for pin %d on %s with %d lines", p.board, p.chip, c.ngpio)
		}
		gpio := c.base + offset
		name, ok := p.names[c.ngpio]
		if !ok {
			name = fmt.Sprintf("gpio%d", gpio)
		}
		ch := Channel{
			ChipDir:      c.dir,
			ChipOffset:   offset,
			GlobalNumber: gpio,
			GlobalName:   name,
		}
		if dir, ok := pwms[p.pwmChip]; ok {
			ch.PWMChipDir = dir
			ch.PWMID = p.pwmID
		}
		ch.Number = p.board
		boardChannels[p.board] = ch
		ch.Number = p.bcm
		bcmChannels[p.bcm] = ch
	}
	return Table{ModeBoard: boardChannels, ModeBCM: bcmChannels}, nil
}

// findDevice returns the sysfs directory of the named device.
func (l *loader) findDevice(name string) (string, bool) {
	for _, prefix := range sysfsPrefixes {
		d := prefix + name
		if _, err := l.fs.Stat(d); err == nil {
			return d, true
		}
	}
	return "", false
}

// findGPIOChip locates the named GPIO chip and reads its base and ngpio.
func (l *loader) findGPIOChip(name string) (chipData, error) {
	dir, ok := l.findDevice(name)
	if !ok {
		return chipData{}, errors.Errorf("cannot find GPIO chip %s", name)
	}
	gpioDir := path.Join(dir, "gpio")
	entries, err := l.fs.ReadDir(gpioDir)
	if err != nil {
		return chipData{}, errors.Wrapf(err, "cannot read GPIO chip %s", name)
	}
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), "gpiochip") {
			continue
		}
		chipDir := path.Join(gpioDir, e.Name())
		base, err := l.readInt(chipDir, "base")
		if err != nil {
			return chipData{}, err
		}
		ngpio, err := l.readInt(chipDir, "ngpio")
		if err != nil {
			return chipData{}, err
		}
		return chipData{dir: dir, base: base, ngpio: ngpio}, nil
	}
	return chipData{}, errors.Errorf("no gpiochip found for GPIO chip %s", name)
}

// findPWMChip returns the pwmchip directory for the named PWM controller.
func (l *loader) findPWMChip(name string) (string, bool) {
	dir, ok := l.findDevice(name)
	if !ok {
		return "", false
	}
	pwmDir := path.Join(dir, "pwm")
	entries, err := l.fs.ReadDir(pwmDir)
	if err != nil {
		return "", false
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "pwmchip") {
			return path.Join(pwmDir, e.Name()), true
		}
	}
	return "", false
}

func (l *loader) readInt(dir, attr string) (int, error) {
	v, err := readAttr(l.fs, dir, attr)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Wrapf(err, "unexpected %s value: %s", attr, v)
	}
	return n, nil
}
