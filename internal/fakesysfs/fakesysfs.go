// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package fakesysfs provides an in-memory filesystem that behaves like the
// GPIO sysfs interface, for testing.
//
// Writing a GPIO number to the export node creates the line directory with
// its direction and value nodes, and writing it to the unexport node removes
// them again. All writes to nodes are recorded.
package fakesysfs

import (
	"fmt"
	"io"
	"os"
	"path"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
)

// Root is the location of the GPIO sysfs interface in the Kernel.
const Root = "/sys/class/gpio"

// Write is a value written to a node.
type Write struct {
	Path  string
	Value string
}

// Kernel is a billy.Filesystem emulating the GPIO sysfs interface.
//
// It is safe to use from multiple goroutines.
type Kernel struct {
	billy.Filesystem

	mu sync.Mutex

	// exported line names, keyed by GPIO number.
	//
	// Lines not present are named gpio<N>.
	names map[int]string

	exportDelay time.Duration
	stalled     bool
	readOnly    bool
	failedNode  string
	writes      []Write
}

// Option defines the interface required to provide an option to New.
type Option interface {
	applyOption(*Kernel)
}

// NamedLine is an option that names an exported line.
type NamedLine struct {
	Number int
	Name   string
}

// WithNamedLine returns an option that sets the name of the directory created
// when the line is exported.
func WithNamedLine(number int, name string) NamedLine {
	return NamedLine{number, name}
}

func (o NamedLine) applyOption(k *Kernel) {
	k.names[o.Number] = o.Name
}

// ExportDelayOption delays the creation of exported nodes.
type ExportDelayOption time.Duration

// WithExportDelay returns an option that makes export create the line nodes
// asynchronously, after the given delay.
func WithExportDelay(d time.Duration) ExportDelayOption {
	return ExportDelayOption(d)
}

func (o ExportDelayOption) applyOption(k *Kernel) {
	k.exportDelay = time.Duration(o)
}

// StalledExportOption prevents value nodes being created.
type StalledExportOption struct{}

// WithStalledExport returns an option that makes export create the line
// directory but never its value node.
func WithStalledExport() StalledExportOption {
	return StalledExportOption{}
}

func (o StalledExportOption) applyOption(k *Kernel) {
	k.stalled = true
}

// ReadOnlyOption denies writes to export and unexport.
type ReadOnlyOption struct{}

// WithReadOnly returns an option that makes opening the export and unexport
// nodes for writing fail with a permission error.
func WithReadOnly() ReadOnlyOption {
	return ReadOnlyOption{}
}

func (o ReadOnlyOption) applyOption(k *Kernel) {
	k.readOnly = true
}

// FailedNodeOption fails writes to a line node.
type FailedNodeOption string

// WithFailedNode returns an option that makes opening the named node of any
// exported line, e.g. "direction", for writing fail with EIO.
func WithFailedNode(name string) FailedNodeOption {
	return FailedNodeOption(name)
}

func (o FailedNodeOption) applyOption(k *Kernel) {
	k.failedNode = string(o)
}

// New creates a Kernel with an empty GPIO sysfs interface.
func New(options ...Option) *Kernel {
	k := &Kernel{Filesystem: memfs.New(), names: map[int]string{}}
	for _, o := range options {
		o.applyOption(k)
	}
	k.MkdirAll(Root, 0o755)
	k.WriteFile(path.Join(Root, "export"), "")
	k.WriteFile(path.Join(Root, "unexport"), "")
	return k
}

// LineName returns the name of the directory of the exported line.
func (k *Kernel) LineName(number int) string {
	if n, ok := k.names[number]; ok {
		return n
	}
	return fmt.Sprintf("gpio%d", number)
}

// Open opens the named file for reading.
func (k *Kernel) Open(filename string) (billy.File, error) {
	return k.OpenFile(filename, os.O_RDONLY, 0)
}

// OpenFile opens the named file, recording any values written to it.
func (k *Kernel) OpenFile(filename string, flag int, perm os.FileMode) (billy.File, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	writing := flag&(os.O_WRONLY|os.O_RDWR) != 0
	if writing && k.readOnly && k.isControlNode(filename) {
		return nil, &os.PathError{Op: "open", Path: filename, Err: os.ErrPermission}
	}
	if writing && k.failedNode != "" && path.Base(filename) == k.failedNode {
		return nil, &os.PathError{Op: "open", Path: filename, Err: syscall.EIO}
	}
	f, err := k.Filesystem.OpenFile(filename, flag, perm)
	if err != nil || !writing {
		return f, err
	}
	return &node{File: f, k: k, path: path.Clean(filename)}, nil
}

// Stat returns the FileInfo for the named file.
func (k *Kernel) Stat(filename string) (os.FileInfo, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.Filesystem.Stat(filename)
}

// ReadDir returns the FileInfo of the entries in the named directory.
func (k *Kernel) ReadDir(p string) ([]os.FileInfo, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.Filesystem.ReadDir(p)
}

// MkdirAll creates the directory and any missing parents.
func (k *Kernel) MkdirAll(filename string, perm os.FileMode) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.Filesystem.MkdirAll(filename, perm)
}

// WriteFile creates or replaces the named file, without recording the write.
func (k *Kernel) WriteFile(filename, data string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.writeFile(filename, data)
}

// ReadFile returns the contents of the named file.
func (k *Kernel) ReadFile(filename string) (string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	f, err := k.Filesystem.Open(filename)
	if err != nil {
		return "", err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	return string(data), err
}

// Writes returns the writes made to nodes, in order.
func (k *Kernel) Writes() []Write {
	k.mu.Lock()
	defer k.mu.Unlock()
	return append([]Write(nil), k.writes...)
}

// ClearWrites forgets the writes recorded so far.
func (k *Kernel) ClearWrites() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.writes = nil
}

// Exported returns true if the line is currently exported.
func (k *Kernel) Exported(number int) bool {
	_, err := k.Stat(path.Join(Root, k.LineName(number)))
	return err == nil
}

// Export exports the line as if by another process.
func (k *Kernel) Export(number int, direction string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.createLine(number)
	k.writeFile(path.Join(Root, k.LineName(number), "direction"), direction)
}

// Unexport unexports the line as if by another process.
func (k *Kernel) Unexport(number int) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.removeLine(number)
}

// Value returns the contents of the value node of an exported line.
func (k *Kernel) Value(number int) (string, error) {
	return k.ReadFile(path.Join(Root, k.LineName(number), "value"))
}

// Direction returns the contents of the direction node of an exported line.
func (k *Kernel) Direction(number int) (string, error) {
	return k.ReadFile(path.Join(Root, k.LineName(number), "direction"))
}

// SetValue sets the value node of an exported line, as if the line were
// being driven externally.
func (k *Kernel) SetValue(number int, value string) error {
	return k.WriteFile(path.Join(Root, k.LineName(number), "value"), value)
}

func (k *Kernel) isControlNode(filename string) bool {
	p := path.Clean(filename)
	return p == path.Join(Root, "export") || p == path.Join(Root, "unexport")
}

// writeFile replaces the named file. The lock must be held.
func (k *Kernel) writeFile(filename, data string) error {
	f, err := k.Filesystem.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	_, err = f.Write([]byte(data))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// createLine creates the nodes of an exported line. The lock must be held.
func (k *Kernel) createLine(number int) {
	dir := path.Join(Root, k.LineName(number))
	k.Filesystem.MkdirAll(dir, 0o755)
	if k.stalled {
		return
	}
	k.writeFile(path.Join(dir, "direction"), "in\n")
	k.writeFile(path.Join(dir, "value"), "0\n")
}

// removeLine removes the nodes of an exported line. The lock must be held.
func (k *Kernel) removeLine(number int) {
	dir := path.Join(Root, k.LineName(number))
	k.Filesystem.Remove(path.Join(dir, "direction"))
	k.Filesystem.Remove(path.Join(dir, "value"))
	k.Filesystem.Remove(dir)
}

// written handles a value written to a node. The lock must be held.
func (k *Kernel) written(p, value string) error {
	k.writes = append(k.writes, Write{Path: p, Value: value})
	switch p {
	case path.Join(Root, "export"), path.Join(Root, "unexport"):
	default:
		return nil
	}
	number, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return &os.PathError{Op: "write", Path: p, Err: os.ErrInvalid}
	}
	if p == path.Join(Root, "unexport") {
		k.removeLine(number)
		return nil
	}
	if k.exportDelay == 0 {
		k.createLine(number)
		return nil
	}
	go func() {
		time.Sleep(k.exportDelay)
		k.mu.Lock()
		defer k.mu.Unlock()
		k.createLine(number)
	}()
	return nil
}

// node is a file opened for writing.
type node struct {
	billy.File
	k    *Kernel
	path string
}

func (n *node) Write(p []byte) (int, error) {
	n.k.mu.Lock()
	defer n.k.mu.Unlock()
	c, err := n.File.Write(p)
	if err != nil {
		return c, err
	}
	return c, n.k.written(n.path, string(p))
}
