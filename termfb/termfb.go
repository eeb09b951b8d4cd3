// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package termfb implements an otm8009a.Framebuffer that mirrors every
// mutation to the terminal using ANSI 256 color blocks.
//
// Useful while you are waiting for your panel to come by mail: bind the
// driver to a termfb instead of real hardware and watch the frames in
// your terminal.
package termfb

import (
	"bytes"
	"fmt"
	"io"

	"github.com/maruel/ansi256"
	colorable "github.com/mattn/go-colorable"

	"github.com/GermanBionicSystems/otm8009a"
	"github.com/GermanBionicSystems/otm8009a/memfb"
)

// Opts represents the options available for this preview.
type Opts struct {
	// Cols and Rows are the character cell grid the frame is downsampled
	// to. Defaults to 48x27.
	Cols int
	Rows int
	// W receives the ANSI output. Defaults to a colorable stdout.
	W io.Writer
	// Palette used for the color blocks.
	Palette *ansi256.Palette
}

// Dev is a framebuffer decorating a memfb.FB with a terminal preview.
type Dev struct {
	fb      *memfb.FB
	w       io.Writer
	cols    int
	rows    int
	palette ansi256.Palette

	drawn bool
	buf   bytes.Buffer
}

// New returns a Dev mirroring fb to the terminal.
func New(fb *memfb.FB, opts *Opts) *Dev {
	o := Opts{}
	if opts != nil {
		o = *opts
	}
	if o.Cols <= 0 {
		o.Cols = 48
	}
	if o.Rows <= 0 {
		o.Rows = 27
	}
	if o.W == nil {
		o.W = colorable.NewColorableStdout()
	}
	p := o.Palette
	if p == nil {
		p = ansi256.Default
	}
	return &Dev{fb: fb, w: o.W, cols: o.Cols, rows: o.Rows, palette: *p}
}

func (d *Dev) String() string {
	return fmt.Sprintf("termfb.Dev{%dx%d cells}", d.cols, d.rows)
}

// Size implements otm8009a.Framebuffer.
func (d *Dev) Size() (width, height int) {
	return d.fb.Size()
}

// Write implements otm8009a.Framebuffer.
func (d *Dev) Write(w otm8009a.Window, pix []byte) error {
	if err := d.fb.Write(w, pix); err != nil {
		return err
	}
	return d.refresh()
}

// Read implements otm8009a.Framebuffer.
func (d *Dev) Read(w otm8009a.Window, pix []byte) error {
	return d.fb.Read(w, pix)
}

// Fill implements otm8009a.Framebuffer.
func (d *Dev) Fill(w otm8009a.Window, pixel []byte) error {
	if err := d.fb.Fill(w, pixel); err != nil {
		return err
	}
	return d.refresh()
}

// Halt resets the terminal attributes so the shell is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\033[0m\n"))
	return err
}

// refresh redraws the downsampled frame, overwriting the previous one.
// Designed to minimize the amount of memory allocated per call.
func (d *Dev) refresh() error {
	img := d.fb.Image()
	width, height := d.fb.Size()

	d.buf.Reset()
	if d.drawn {
		fmt.Fprintf(&d.buf, "\033[%dA", d.rows)
	}
	for row := 0; row < d.rows; row++ {
		_, _ = d.buf.WriteString("\033[0m")
		y := row * height / d.rows
		for col := 0; col < d.cols; col++ {
			x := col * width / d.cols
			_, _ = io.WriteString(&d.buf, d.palette.Block(img.NRGBAAt(x, y)))
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	d.drawn = true
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ otm8009a.Framebuffer = &Dev{}
var _ fmt.Stringer = &Dev{}
