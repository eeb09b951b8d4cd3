// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package otm8009a

import (
	"time"

	"periph.io/x/conn/v3/physic"
)

// CommandTransport sends DCS commands to the panel.
//
// Implementations wrap the platform's DSI host (or any other link able to
// frame DCS writes, see the dsihost package). The driver never retries a
// failed Send; retry policy, if any, belongs to the transport.
type CommandTransport interface {
	// Send transmits a single DCS command and its parameter bytes.
	Send(addr byte, payload []byte) error
	// Wait blocks for at least d. The panel requires settle delays between
	// specific command groups; the platform decides whether to busy-wait or
	// sleep.
	Wait(d time.Duration)
	// Ready reports whether the link and the panel are ready to accept
	// pixel data.
	Ready() bool
	// Reset performs a link or panel level reset.
	Reset() error
}

// TimingController configures the display controller feeding the panel with
// pixel timing (sync widths and porches). It is configured exactly once
// during Init and is read-only from the driver's perspective afterwards.
type TimingController interface {
	Configure(TimingConfig) error
}

// TimingConfig is the pixel timing handed to the TimingController.
type TimingConfig struct {
	Width  int
	Height int

	HSync       int
	HBackPorch  int
	HFrontPorch int
	VSync       int
	VBackPorch  int
	VFrontPorch int

	PixelClock physic.Frequency
}

// Framebuffer provides bounded region access to pixel memory in the panel's
// active pixel format. Regions are keyed by Window; implementations must
// reject out of bounds regions rather than clamp them.
type Framebuffer interface {
	// Write copies packed pixels into the region. len(pix) must equal
	// the region's pixel count times the byte width of one pixel.
	Write(w Window, pix []byte) error
	// Read copies the region's packed pixels into pix.
	Read(w Window, pix []byte) error
	// Fill replicates a single packed pixel across the region.
	Fill(w Window, pixel []byte) error
	// Size returns the framebuffer dimensions in pixels.
	Size() (width, height int)
}
