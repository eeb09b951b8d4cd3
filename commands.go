// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package otm8009a

import "time"

// DCS commands understood by the OTM8009A. Standard commands first,
// manufacturer (CMD2 / ORISE) commands after.
const (
	cmdNop               byte = 0x00
	cmdSleepIn           byte = 0x10
	cmdSleepOut          byte = 0x11
	cmdDisplayOff        byte = 0x28
	cmdDisplayOn         byte = 0x29
	cmdColumnAddress     byte = 0x2A // CASET
	cmdPageAddress       byte = 0x2B // PASET
	cmdWriteMemoryStart  byte = 0x2C // RAMWR
	cmdMemoryAccessCtrl  byte = 0x36 // MADCTL
	cmdPixelFormat       byte = 0x3A // COLMOD
	cmdWriteCtrlDisplay  byte = 0x53
	cmdWriteCABC         byte = 0x55
	cmdWriteCABCMinLevel byte = 0x5E
	cmdOriseShift        byte = 0x80
	cmdGammaPositive     byte = 0xE0
	cmdGammaNegative     byte = 0xE1
	cmdVCOMCtrl          byte = 0xC5
	cmdSetEXTC           byte = 0xFF
)

// Settle delays mandated between command groups. Shortening them is a
// silent corruption risk, not a visible failure.
const (
	resetSettle     = 10 * time.Millisecond
	sleepOutSettle  = 120 * time.Millisecond
	displayOnSettle = 40 * time.Millisecond
	commandSettle   = time.Millisecond
)

// Native panel geometry, portrait. Landscape orientations swap the two.
const (
	NativeWidth  = 480
	NativeHeight = 800
)

// Panel pixel timing for the 480x800 glass, from the vendor BSP.
const (
	panelHSync       = 63
	panelHBackPorch  = 120
	panelHFrontPorch = 120
	panelVSync       = 12
	panelVBackPorch  = 12
	panelVFrontPorch = 12
)

// command is one entry of a panel command table: a DCS address, its
// parameter bytes and the settle delay required after transmission.
type command struct {
	addr       byte
	payload    []byte
	delayAfter time.Duration
}

// powerOnSequence is the vendor initialization prefix, transmitted in order
// by Init before the format and orientation commands. The ordering and the
// byte values are a compatibility contract with the panel; do not reorder.
var powerOnSequence = []command{
	// Enable access to the manufacturer command set (CMD2).
	{cmdSetEXTC, []byte{0x80, 0x09, 0x01}, commandSettle},
	// Enter ORISE command 2 mode.
	{cmdOriseShift, []byte{0x09, 0x00}, commandSettle},
	// GVDD / NGVDD source voltages.
	{cmdVCOMCtrl, []byte{0x17, 0x40}, commandSettle},
	// Leave CMD2 mode; everything below is standard DCS.
	{cmdSetEXTC, []byte{0x00, 0x00, 0x00}, commandSettle},
	{cmdNop, nil, commandSettle},
	// Positive and negative gamma curves.
	{cmdGammaPositive, []byte{0x00, 0x09, 0x0F, 0x0E, 0x07, 0x10, 0x0B, 0x0A, 0x04, 0x07, 0x0B, 0x08, 0x0F, 0x10, 0x0A, 0x01}, 0},
	{cmdGammaNegative, []byte{0x00, 0x09, 0x0F, 0x0E, 0x07, 0x10, 0x0B, 0x0A, 0x04, 0x07, 0x0B, 0x08, 0x0F, 0x10, 0x0A, 0x01}, commandSettle},
	{cmdSleepOut, nil, sleepOutSettle},
}

// cabcDefaults enables content adaptive backlight control with brightness
// control on and CABC itself off until EnableCABC selects a mode.
var cabcDefaults = []command{
	{cmdWriteCtrlDisplay, []byte{0x24}, 0},
	{cmdWriteCABC, []byte{0x00}, 0},
	{cmdWriteCABCMinLevel, []byte{0x00}, commandSettle},
}

// displayOnSequence finishes initialization: panel on, then open the GRAM
// write so the first Flush can stream pixels.
var displayOnSequence = []command{
	{cmdDisplayOn, nil, displayOnSettle},
	{cmdNop, nil, 0},
	{cmdWriteMemoryStart, nil, 0},
}

var sleepInSequence = []command{
	{cmdDisplayOff, nil, displayOnSettle},
	{cmdSleepIn, nil, sleepOutSettle},
}

var sleepOutSequence = []command{
	{cmdSleepOut, nil, sleepOutSettle},
	{cmdDisplayOn, nil, displayOnSettle},
}

// formatCommand returns the COLMOD write selecting f.
func formatCommand(f Format) command {
	return command{cmdPixelFormat, []byte{byte(f)}, commandSettle}
}

// orientationCommands returns the MADCTL write for o followed by the full
// span column and page address windows for the resulting geometry.
func orientationCommands(o Orientation) []command {
	w, h := o.dims()
	full := Window{X0: 0, Y0: 0, X1: w - 1, Y1: h - 1}
	return []command{
		{cmdMemoryAccessCtrl, []byte{o.madctl()}, 0},
		{cmdColumnAddress, full.caset(), 0},
		{cmdPageAddress, full.paset(), 0},
	}
}

func panelTiming() TimingConfig {
	return TimingConfig{
		Width:       NativeWidth,
		Height:      NativeHeight,
		HSync:       panelHSync,
		HBackPorch:  panelHBackPorch,
		HFrontPorch: panelHFrontPorch,
		VSync:       panelVSync,
		VBackPorch:  panelVBackPorch,
		VFrontPorch: panelVFrontPorch,
	}
}
