// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package dsihost binds the otm8009a capability interfaces to real
// peripherals.
//
// Host drives the panel's command interface over an SPI port plus a
// data/command select pin, the wiring used by DSI bridge boards that expose
// the panel bus as SPI. Timing latches the video timing so a host
// controller configured out of band can be represented in tests and on
// boards where the timing generator is fixed in the device tree.
package dsihost

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"

	"github.com/GermanBionicSystems/otm8009a"
)

// DefaultOpts is the recommended bus configuration.
var DefaultOpts = Opts{
	Speed:     10 * physic.MegaHertz,
	MaxTxSize: 4096,
}

// Opts holds the bus configuration for a Host.
type Opts struct {
	// Speed is the SPI clock. Defaults to 10MHz.
	Speed physic.Frequency
	// MaxTxSize caps a single SPI transaction. Payloads larger than this
	// are split. If the connection advertises its own limit through
	// conn.Limits that limit wins when smaller. Defaults to 4096 bytes.
	MaxTxSize int
}

// Host transmits panel commands over SPI with a data/command select pin.
type Host struct {
	c         conn.Conn
	dc        gpio.PinOut
	rst       gpio.PinOut
	busy      gpio.PinIn
	maxTxSize int
}

// NewHost connects to the panel bus on p.
//
// dc selects between command (low) and parameter (high) bytes. rst drives
// the panel's active low hardware reset line. busy is the panel's tearing
// effect line, high while the panel is processing.
func NewHost(p spi.Port, dc, rst gpio.PinOut, busy gpio.PinIn, opts *Opts) (*Host, error) {
	o := DefaultOpts
	if opts != nil {
		o = *opts
	}
	if o.Speed <= 0 {
		o.Speed = DefaultOpts.Speed
	}
	if o.MaxTxSize <= 0 {
		o.MaxTxSize = DefaultOpts.MaxTxSize
	}
	if dc == nil || rst == nil || busy == nil {
		return nil, fmt.Errorf("dsihost: all control pins are required")
	}
	c, err := p.Connect(o.Speed, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("dsihost: failed to connect: %w", err)
	}
	maxTxSize := o.MaxTxSize
	if limits, ok := c.(conn.Limits); ok {
		if l := limits.MaxTxSize(); l > 0 && l < maxTxSize {
			maxTxSize = l
		}
	}
	if err := busy.In(gpio.PullDown, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("dsihost: failed to configure busy pin: %w", err)
	}
	return &Host{c: c, dc: dc, rst: rst, busy: busy, maxTxSize: maxTxSize}, nil
}

func (h *Host) String() string {
	return fmt.Sprintf("dsihost.Host{%s}", h.c)
}

// Send implements otm8009a.CommandTransport. The register address goes out
// with dc low, the payload with dc high, split into transactions of at most
// the negotiated size.
func (h *Host) Send(addr byte, payload []byte) error {
	if err := h.dc.Out(gpio.Low); err != nil {
		return err
	}
	if err := h.c.Tx([]byte{addr}, nil); err != nil {
		return err
	}
	if len(payload) == 0 {
		return nil
	}
	if err := h.dc.Out(gpio.High); err != nil {
		return err
	}
	for len(payload) > 0 {
		n := len(payload)
		if n > h.maxTxSize {
			n = h.maxTxSize
		}
		if err := h.c.Tx(payload[:n], nil); err != nil {
			return err
		}
		payload = payload[n:]
	}
	return nil
}

// Wait implements otm8009a.CommandTransport.
func (h *Host) Wait(d time.Duration) {
	time.Sleep(d)
}

// Ready implements otm8009a.CommandTransport. The panel is ready when the
// busy line is released.
func (h *Host) Ready() bool {
	return h.busy.Read() == gpio.Low
}

// Reset implements otm8009a.CommandTransport with a hardware reset pulse.
func (h *Host) Reset() error {
	if err := h.rst.Out(gpio.Low); err != nil {
		return err
	}
	time.Sleep(20 * time.Millisecond)
	if err := h.rst.Out(gpio.High); err != nil {
		return err
	}
	time.Sleep(10 * time.Millisecond)
	return nil
}

var _ otm8009a.CommandTransport = &Host{}
var _ fmt.Stringer = &Host{}

// Timing is a TimingController that records the requested video timing.
//
// Many boards fix the panel timing in firmware or in the host controller's
// device tree. Timing stands in for such a controller: it validates and
// latches the configuration so the rest of the system can read it back, and
// refuses to be reprogrammed once set.
type Timing struct {
	cfg otm8009a.TimingConfig
	set bool
}

// Configure implements otm8009a.TimingController.
func (t *Timing) Configure(cfg otm8009a.TimingConfig) error {
	if t.set {
		return fmt.Errorf("dsihost: timing already configured")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("dsihost: invalid active area %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.PixelClock <= 0 {
		return fmt.Errorf("dsihost: invalid pixel clock %s", cfg.PixelClock)
	}
	t.cfg = cfg
	t.set = true
	return nil
}

// Config returns the latched timing. ok is false before Configure succeeds.
func (t *Timing) Config() (cfg otm8009a.TimingConfig, ok bool) {
	return t.cfg, t.set
}

var _ otm8009a.TimingController = &Timing{}
