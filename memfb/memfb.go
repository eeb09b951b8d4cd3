// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package memfb provides an in-memory framebuffer implementing the
// otm8009a.Framebuffer capability.
//
// Pixels are stored packed in the panel's transmission format, two bytes
// per pixel for RGB565 or three for RGB666/RGB888, so a region read yields
// exactly the byte stream a memory write command expects.
package memfb

import (
	"fmt"
	"image"
	"image/color"

	"github.com/GermanBionicSystems/otm8009a"
)

// FB is a packed pixel framebuffer.
type FB struct {
	width  int
	height int
	bpp    int
	pix    []byte
}

// New returns a zeroed framebuffer of width x height pixels with
// bytesPerPixel (2 or 3) bytes of storage per pixel.
func New(width, height, bytesPerPixel int) (*FB, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("memfb: invalid dimensions %dx%d", width, height)
	}
	if bytesPerPixel != 2 && bytesPerPixel != 3 {
		return nil, fmt.Errorf("memfb: unsupported %d bytes per pixel", bytesPerPixel)
	}
	return &FB{
		width:  width,
		height: height,
		bpp:    bytesPerPixel,
		pix:    make([]byte, width*height*bytesPerPixel),
	}, nil
}

func (f *FB) String() string {
	return fmt.Sprintf("memfb.FB{%dx%d, %d bytes/px}", f.width, f.height, f.bpp)
}

// Size implements otm8009a.Framebuffer.
func (f *FB) Size() (width, height int) {
	return f.width, f.height
}

// BytesPerPixel returns the storage width of one pixel.
func (f *FB) BytesPerPixel() int {
	return f.bpp
}

// Write implements otm8009a.Framebuffer. len(pix) must be exactly the
// region's pixel count times the pixel byte width.
func (f *FB) Write(w otm8009a.Window, pix []byte) (err error) {
	if err = f.check(w); err != nil {
		return err
	}
	if len(pix) != w.Dx()*w.Dy()*f.bpp {
		return fmt.Errorf("memfb: got %d bytes for %dx%d region, want %d", len(pix), w.Dx(), w.Dy(), w.Dx()*w.Dy()*f.bpp)
	}
	rowLen := w.Dx() * f.bpp
	for y := w.Y0; y <= w.Y1; y++ {
		copy(f.row(w.X0, y)[:rowLen], pix[:rowLen])
		pix = pix[rowLen:]
	}
	return nil
}

// Read implements otm8009a.Framebuffer.
func (f *FB) Read(w otm8009a.Window, pix []byte) (err error) {
	if err = f.check(w); err != nil {
		return err
	}
	if len(pix) != w.Dx()*w.Dy()*f.bpp {
		return fmt.Errorf("memfb: got %d bytes for %dx%d region, want %d", len(pix), w.Dx(), w.Dy(), w.Dx()*w.Dy()*f.bpp)
	}
	rowLen := w.Dx() * f.bpp
	for y := w.Y0; y <= w.Y1; y++ {
		copy(pix[:rowLen], f.row(w.X0, y)[:rowLen])
		pix = pix[rowLen:]
	}
	return nil
}

// Fill implements otm8009a.Framebuffer.
func (f *FB) Fill(w otm8009a.Window, pixel []byte) error {
	if err := f.check(w); err != nil {
		return err
	}
	if len(pixel) != f.bpp {
		return fmt.Errorf("memfb: got %d byte fill pixel, want %d", len(pixel), f.bpp)
	}
	for y := w.Y0; y <= w.Y1; y++ {
		row := f.row(w.X0, y)
		for x := 0; x < w.Dx(); x++ {
			copy(row[x*f.bpp:], pixel)
		}
	}
	return nil
}

// Image returns a decoded copy of the framebuffer contents. Two byte
// pixels are interpreted as big endian RGB565, three byte pixels as RGB.
func (f *FB) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, f.width, f.height))
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			img.SetNRGBA(x, y, f.at(x, y))
		}
	}
	return img
}

func (f *FB) at(x, y int) color.NRGBA {
	p := f.row(x, y)
	if f.bpp == 2 {
		r, g, b := RGB565To888(uint16(p[0])<<8 | uint16(p[1]))
		return color.NRGBA{R: r, G: g, B: b, A: 0xFF}
	}
	return color.NRGBA{R: p[0], G: p[1], B: p[2], A: 0xFF}
}

func (f *FB) row(x, y int) []byte {
	off := (y*f.width + x) * f.bpp
	return f.pix[off:]
}

func (f *FB) check(w otm8009a.Window) error {
	if w.X1 < w.X0 || w.Y1 < w.Y0 {
		return fmt.Errorf("memfb: inverted region %s", w)
	}
	if w.X0 < 0 || w.Y0 < 0 || w.X1 >= f.width || w.Y1 >= f.height {
		return fmt.Errorf("memfb: region %s outside %dx%d buffer", w, f.width, f.height)
	}
	return nil
}

// RGB565From888 packs 8 bit components into a RGB565 value.
func RGB565From888(r, g, b byte) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}

// RGB565To888 expands a RGB565 value back to 8 bit components by bit
// replication.
func RGB565To888(v uint16) (r, g, b byte) {
	r5 := byte(v >> 11 & 0x1F)
	g6 := byte(v >> 5 & 0x3F)
	b5 := byte(v & 0x1F)
	return r5<<3 | r5>>2, g6<<2 | g6>>4, b5<<3 | b5>>2
}

var _ otm8009a.Framebuffer = &FB{}
