// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package otm8009a

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"time"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/physic"
)

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{
	ReadyAttempts: 3,
	ReadyInterval: 10 * time.Millisecond,
}

// Opts defines the options for the device.
type Opts struct {
	// ReadyAttempts bounds the readiness poll performed at the end of Init
	// and Wake. Exceeding it reports ErrTimeout.
	ReadyAttempts int
	// ReadyInterval is the delay between readiness poll attempts.
	ReadyInterval time.Duration
	// PixelClock overrides the default 27.429MHz panel pixel clock handed
	// to the timing controller.
	PixelClock physic.Frequency
}

// Dev is an open handle to an OTM8009A panel.
//
// Dev is not safe for concurrent use; see the package documentation.
type Dev struct {
	// Capabilities, supplied at construction and never owned.
	t  CommandTransport
	tc TimingController
	fb Framebuffer

	opts Opts

	// Negotiated configuration, valid from the first successful Init.
	state       PanelState
	format      Format
	orientation Orientation
	width       int
	height      int
	window      Window
	timingDone  bool
}

// New binds a driver to its three hardware capabilities. No hardware is
// touched until Init.
func New(t CommandTransport, tc TimingController, fb Framebuffer, opts *Opts) (*Dev, error) {
	const op = "new"
	if t == nil || tc == nil || fb == nil {
		return nil, invalidArgErr(op, errors.New("transport, timing and framebuffer capabilities are all required"))
	}
	o := DefaultOpts
	if opts != nil {
		o = *opts
	}
	if o.ReadyAttempts <= 0 {
		o.ReadyAttempts = DefaultOpts.ReadyAttempts
	}
	if o.ReadyInterval <= 0 {
		o.ReadyInterval = DefaultOpts.ReadyInterval
	}
	d := &Dev{
		t:           t,
		tc:          tc,
		fb:          fb,
		opts:        o,
		state:       StateUninitialized,
		format:      RGB565,
		orientation: Portrait,
	}
	d.width, d.height = Portrait.dims()
	return d, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("otm8009a.Dev{%dx%d, %s, %s, %s}", d.width, d.height, d.format, d.orientation, d.state)
}

// State returns the driver's current view of the panel.
func (d *Dev) State() PanelState {
	return d.state
}

// Format returns the active pixel format.
func (d *Dev) Format() Format {
	return d.format
}

// Orientation returns the active orientation.
func (d *Dev) Orientation() Orientation {
	return d.orientation
}

// Init powers the panel on and walks the vendor initialization sequence:
// reset, timing configuration, the power-on command table, pixel format,
// orientation, backlight control defaults, display-on and a bounded
// readiness poll.
//
// Init may be called from any state; from Faulted it restarts the whole
// sequence. A reset failure leaves the driver Uninitialized; any later
// failure leaves it Faulted. Partial initialization is never silent: the
// first transmit error aborts the call.
func (d *Dev) Init(f Format, o Orientation) error {
	const op = "init"
	if !f.valid() {
		return invalidArgErr(op, fmt.Errorf("unsupported format %s", f))
	}
	if !o.valid() {
		return invalidArgErr(op, fmt.Errorf("unsupported orientation %s", o))
	}

	d.state = StatePoweringOn
	if err := d.t.Reset(); err != nil {
		d.state = StateUninitialized
		return transportErr(op, err)
	}
	d.t.Wait(resetSettle)

	// The timing controller is configured once for the lifetime of the
	// binding; re-Init after a fault does not reprogram it.
	if !d.timingDone {
		cfg := panelTiming()
		cfg.PixelClock = d.opts.PixelClock
		if cfg.PixelClock == 0 {
			cfg.PixelClock = 27429 * physic.KiloHertz
		}
		if err := d.tc.Configure(cfg); err != nil {
			d.state = StateFaulted
			return transportErr(op, err)
		}
		d.timingDone = true
	}

	d.state = StateInitializing
	s := &sender{t: d.t, op: op}
	s.sendAll(powerOnSequence)
	s.send(formatCommand(f))
	s.sendAll(orientationCommands(o))
	s.sendAll(cabcDefaults)
	s.sendAll(displayOnSequence)
	if s.err != nil {
		d.state = StateFaulted
		return s.err
	}
	if err := d.waitReady(op); err != nil {
		d.state = StateFaulted
		return err
	}

	d.format = f
	d.orientation = o
	d.width, d.height = o.dims()
	d.window = Window{X0: 0, Y0: 0, X1: d.width - 1, Y1: d.height - 1}
	d.state = StateReady
	return nil
}

// SetOrientation remaps panel memory onto the glass. The addressable
// dimensions swap for landscape orientations and all subsequent window
// validation uses the new geometry.
func (d *Dev) SetOrientation(o Orientation) error {
	const op = "set-orientation"
	if err := d.requireState(op, StateReady); err != nil {
		return err
	}
	if !o.valid() {
		return invalidArgErr(op, fmt.Errorf("unsupported orientation %s", o))
	}
	s := &sender{t: d.t, op: op}
	s.sendAll(orientationCommands(o))
	if s.err != nil {
		d.state = StateFaulted
		return s.err
	}
	d.orientation = o
	d.width, d.height = o.dims()
	d.window = Window{X0: 0, Y0: 0, X1: d.width - 1, Y1: d.height - 1}
	return nil
}

// SetFormat selects the pixel format used for memory writes. Column and
// page addressing is unaffected, but the transfer length of every
// subsequent Flush changes with the format's byte width.
func (d *Dev) SetFormat(f Format) error {
	const op = "set-format"
	if err := d.requireState(op, StateReady); err != nil {
		return err
	}
	if !f.valid() {
		return invalidArgErr(op, fmt.Errorf("unsupported format %s", f))
	}
	s := &sender{t: d.t, op: op}
	s.send(formatCommand(f))
	if s.err != nil {
		d.state = StateFaulted
		return s.err
	}
	d.format = f
	return nil
}

// SetWindow designates the region targeted by the next memory write.
// Out of bounds or inverted windows are rejected without touching the
// panel; windows are never clamped.
func (d *Dev) SetWindow(w Window) error {
	const op = "set-window"
	if err := d.requireState(op, StateReady); err != nil {
		return err
	}
	if err := w.validateIn(d.width, d.height); err != nil {
		return invalidArgErr(op, err)
	}
	s := &sender{t: d.t, op: op}
	s.send(command{cmdColumnAddress, w.caset(), 0})
	s.send(command{cmdPageAddress, w.paset(), 0})
	s.send(command{cmdWriteMemoryStart, nil, 0})
	if s.err != nil {
		d.state = StateFaulted
		return s.err
	}
	d.window = w
	return nil
}

// Flush reads the window's pixels from the framebuffer capability and
// streams them to the panel. The transmitted length is always
// Dx*Dy*BytesPerPixel of the active format.
func (d *Dev) Flush(w Window) error {
	const op = "flush"
	if err := d.requireState(op, StateReady); err != nil {
		return err
	}
	if err := w.validateIn(d.width, d.height); err != nil {
		return invalidArgErr(op, err)
	}
	pix := make([]byte, w.Dx()*w.Dy()*d.format.BytesPerPixel())
	if err := d.fb.Read(w, pix); err != nil {
		d.state = StateFaulted
		return transportErr(op, err)
	}
	s := &sender{t: d.t, op: op}
	s.send(command{cmdColumnAddress, w.caset(), 0})
	s.send(command{cmdPageAddress, w.paset(), 0})
	s.send(command{cmdWriteMemoryStart, pix, 0})
	if s.err != nil {
		d.state = StateFaulted
		return s.err
	}
	d.window = w
	return nil
}

// FillRect fills a framebuffer region with a single color. The panel is
// not contacted; use Flush to push the region out.
func (d *Dev) FillRect(w Window, c color.Color) error {
	const op = "fill-rect"
	if err := d.requireState(op, StateReady); err != nil {
		return err
	}
	if err := w.validateIn(d.width, d.height); err != nil {
		return invalidArgErr(op, err)
	}
	if err := d.fb.Fill(w, encodePixel(d.format, c)); err != nil {
		d.state = StateFaulted
		return transportErr(op, err)
	}
	return nil
}

// SetPixel sets a single framebuffer pixel.
func (d *Dev) SetPixel(x, y int, c color.Color) error {
	return d.FillRect(Window{X0: x, Y0: y, X1: x, Y1: y}, c)
}

// Clear fills the whole framebuffer with a single color.
func (d *Dev) Clear(c color.Color) error {
	return d.FillRect(Window{X0: 0, Y0: 0, X1: d.width - 1, Y1: d.height - 1}, c)
}

// SetBrightness sets the display brightness control byte.
func (d *Dev) SetBrightness(level byte) error {
	const op = "set-brightness"
	if err := d.requireState(op, StateReady); err != nil {
		return err
	}
	s := &sender{t: d.t, op: op}
	s.send(command{cmdWriteCtrlDisplay, []byte{level}, 0})
	if s.err != nil {
		d.state = StateFaulted
		return s.err
	}
	return nil
}

// EnableCABC selects a content adaptive backlight control mode, 0 (off)
// through 3 (moving image).
func (d *Dev) EnableCABC(mode byte) error {
	const op = "enable-cabc"
	if err := d.requireState(op, StateReady); err != nil {
		return err
	}
	if mode > 3 {
		return invalidArgErr(op, fmt.Errorf("CABC mode %d out of range", mode))
	}
	s := &sender{t: d.t, op: op}
	s.send(command{cmdWriteCABC, []byte{mode}, 0})
	if s.err != nil {
		d.state = StateFaulted
		return s.err
	}
	return nil
}

// DisableCABC turns content adaptive backlight control off.
func (d *Dev) DisableCABC() error {
	return d.EnableCABC(0)
}

// Sleep turns the display off and enters the panel's low power mode.
// Sleeping while already asleep is rejected, not silently accepted.
func (d *Dev) Sleep() error {
	const op = "sleep"
	if err := d.requireState(op, StateReady); err != nil {
		return err
	}
	s := &sender{t: d.t, op: op}
	s.sendAll(sleepInSequence)
	if s.err != nil {
		d.state = StateFaulted
		return s.err
	}
	d.state = StateSleeping
	return nil
}

// Wake leaves sleep mode and turns the display back on. Panel memory is
// retained across Sleep/Wake.
func (d *Dev) Wake() error {
	const op = "wake"
	if err := d.requireState(op, StateSleeping); err != nil {
		return err
	}
	s := &sender{t: d.t, op: op}
	s.sendAll(sleepOutSequence)
	if s.err != nil {
		d.state = StateFaulted
		return s.err
	}
	if err := d.waitReady(op); err != nil {
		d.state = StateFaulted
		return err
	}
	d.state = StateReady
	return nil
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements display.Drawer. Min is guaranteed to be {0, 0}.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.width, d.height)
}

// Draw implements display.Drawer.
//
// It encodes src into the active pixel format, writes it to the
// framebuffer region and flushes that region to the panel synchronously.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	const op = "draw"
	if err := d.requireState(op, StateReady); err != nil {
		return err
	}
	r = r.Intersect(d.Bounds())
	if r.Empty() {
		return nil
	}
	bpp := d.format.BytesPerPixel()
	pix := make([]byte, r.Dx()*r.Dy()*bpp)
	i := 0
	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			copy(pix[i:i+bpp], encodePixel(d.format, src.At(sp.X+x, sp.Y+y)))
			i += bpp
		}
	}
	w := Window{X0: r.Min.X, Y0: r.Min.Y, X1: r.Max.X - 1, Y1: r.Max.Y - 1}
	if err := d.fb.Write(w, pix); err != nil {
		d.state = StateFaulted
		return transportErr(op, err)
	}
	return d.Flush(w)
}

// Halt implements conn.Resource by putting the panel to sleep. It is a
// no-op if the panel is already sleeping.
func (d *Dev) Halt() error {
	if d.state == StateSleeping {
		return nil
	}
	return d.Sleep()
}

func (d *Dev) requireState(op string, want PanelState) error {
	if d.state != want {
		return invalidArgErr(op, fmt.Errorf("not allowed in state %s", d.state))
	}
	return nil
}

// waitReady polls the transport readiness bit, waiting ReadyInterval
// between attempts. This is the driver's only retry loop: commands are
// never re-sent, since re-sending after an unknown-success failure risks
// duplicate hardware state.
func (d *Dev) waitReady(op string) error {
	for i := 0; i < d.opts.ReadyAttempts; i++ {
		if i > 0 {
			d.t.Wait(d.opts.ReadyInterval)
		}
		if d.t.Ready() {
			return nil
		}
	}
	return timeoutErr(op)
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
