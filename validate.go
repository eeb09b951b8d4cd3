// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package otm8009a

import (
	"errors"
	"fmt"
)

// Format is a panel pixel format, with values matching the COLMOD
// parameter byte the OTM8009A expects.
type Format byte

const (
	RGB565 Format = 0x55
	RGB666 Format = 0x66
	RGB888 Format = 0x77
)

// BytesPerPixel returns the byte width of one transmitted pixel. RGB666 is
// carried in three bytes, six significant bits each.
func (f Format) BytesPerPixel() int {
	switch f {
	case RGB565:
		return 2
	case RGB666, RGB888:
		return 3
	default:
		return 0
	}
}

func (f Format) valid() bool {
	return f.BytesPerPixel() != 0
}

func (f Format) String() string {
	switch f {
	case RGB565:
		return "RGB565"
	case RGB666:
		return "RGB666"
	case RGB888:
		return "RGB888"
	default:
		return fmt.Sprintf("Format(0x%02X)", byte(f))
	}
}

// Orientation selects how panel memory maps onto the glass. It affects the
// window addressing math, not the command framing.
type Orientation int

const (
	Portrait Orientation = iota
	Landscape
	PortraitFlipped
	LandscapeFlipped
)

// madctl returns the memory access control byte for o.
func (o Orientation) madctl() byte {
	switch o {
	case Portrait:
		return 0x00
	case Landscape:
		return 0x60
	case PortraitFlipped:
		return 0xC0
	case LandscapeFlipped:
		return 0xA0
	default:
		return 0x00
	}
}

// dims returns the addressable width and height under o.
func (o Orientation) dims() (w, h int) {
	if o == Landscape || o == LandscapeFlipped {
		return NativeHeight, NativeWidth
	}
	return NativeWidth, NativeHeight
}

func (o Orientation) valid() bool {
	return o >= Portrait && o <= LandscapeFlipped
}

func (o Orientation) String() string {
	switch o {
	case Portrait:
		return "portrait"
	case Landscape:
		return "landscape"
	case PortraitFlipped:
		return "portrait-flipped"
	case LandscapeFlipped:
		return "landscape-flipped"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// Window is a rectangular pixel region with inclusive bounds, the
// addressing unit of the panel's column and page address commands.
type Window struct {
	X0, Y0, X1, Y1 int
}

// Dx returns the window width in pixels.
func (w Window) Dx() int { return w.X1 - w.X0 + 1 }

// Dy returns the window height in pixels.
func (w Window) Dy() int { return w.Y1 - w.Y0 + 1 }

func (w Window) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", w.X0, w.Y0, w.X1, w.Y1)
}

// validateIn rejects windows that are inverted or not fully inside a
// width x height panel. Windows are never clamped: a clamped window would
// no longer match the framebuffer region the caller prepared.
func (w Window) validateIn(width, height int) error {
	if w.X1 < w.X0 || w.Y1 < w.Y0 {
		return fmt.Errorf("inverted window %s", w)
	}
	if w.X0 < 0 || w.Y0 < 0 || w.X1 >= width || w.Y1 >= height {
		return fmt.Errorf("window %s outside %dx%d panel", w, width, height)
	}
	return nil
}

// caset returns the column address (2Ah) parameter bytes for w.
func (w Window) caset() []byte {
	return []byte{byte(w.X0 >> 8), byte(w.X0), byte(w.X1 >> 8), byte(w.X1)}
}

// paset returns the page address (2Bh) parameter bytes for w.
func (w Window) paset() []byte {
	return []byte{byte(w.Y0 >> 8), byte(w.Y0), byte(w.Y1 >> 8), byte(w.Y1)}
}

// decodeWindow rebuilds a Window from CASET and PASET parameter bytes.
// It is the inverse of caset/paset and is used to verify transfer lengths.
func decodeWindow(caset, paset []byte) (Window, error) {
	if len(caset) != 4 || len(paset) != 4 {
		return Window{}, errors.New("otm8009a: address payload must be 4 bytes")
	}
	return Window{
		X0: int(caset[0])<<8 | int(caset[1]),
		Y0: int(paset[0])<<8 | int(paset[1]),
		X1: int(caset[2])<<8 | int(caset[3]),
		Y1: int(paset[2])<<8 | int(paset[3]),
	}, nil
}
