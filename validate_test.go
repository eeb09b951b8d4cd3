// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package otm8009a

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormat(t *testing.T) {
	for _, tc := range []struct {
		f     Format
		bpp   int
		valid bool
		s     string
	}{
		{RGB565, 2, true, "RGB565"},
		{RGB666, 3, true, "RGB666"},
		{RGB888, 3, true, "RGB888"},
		{Format(0x00), 0, false, "Format(0x00)"},
		{Format(0x56), 0, false, "Format(0x56)"},
	} {
		if got := tc.f.BytesPerPixel(); got != tc.bpp {
			t.Errorf("%s.BytesPerPixel() = %d, want %d", tc.s, got, tc.bpp)
		}
		if got := tc.f.valid(); got != tc.valid {
			t.Errorf("%s.valid() = %t, want %t", tc.s, got, tc.valid)
		}
		if got := tc.f.String(); got != tc.s {
			t.Errorf("String() = %q, want %q", got, tc.s)
		}
	}
}

func TestOrientationDims(t *testing.T) {
	for _, tc := range []struct {
		o    Orientation
		w, h int
	}{
		{Portrait, 480, 800},
		{PortraitFlipped, 480, 800},
		{Landscape, 800, 480},
		{LandscapeFlipped, 800, 480},
	} {
		if w, h := tc.o.dims(); w != tc.w || h != tc.h {
			t.Errorf("%s.dims() = %dx%d, want %dx%d", tc.o, w, h, tc.w, tc.h)
		}
	}
	if Orientation(-1).valid() || Orientation(4).valid() {
		t.Error("out of range orientations report valid")
	}
}

func TestWindowValidateIn(t *testing.T) {
	for _, tc := range []struct {
		name    string
		w       Window
		wantErr bool
	}{
		{name: "full screen", w: Window{0, 0, 479, 799}},
		{name: "single pixel", w: Window{0, 0, 0, 0}},
		{name: "bottom right pixel", w: Window{479, 799, 479, 799}},
		{name: "x overflow", w: Window{0, 0, 480, 799}, wantErr: true},
		{name: "y overflow", w: Window{0, 0, 479, 800}, wantErr: true},
		{name: "negative x", w: Window{-1, 0, 0, 0}, wantErr: true},
		{name: "negative y", w: Window{0, -1, 0, 0}, wantErr: true},
		{name: "inverted x", w: Window{5, 0, 4, 0}, wantErr: true},
		{name: "inverted y", w: Window{0, 5, 0, 4}, wantErr: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.w.validateIn(480, 800)
			if (err != nil) != tc.wantErr {
				t.Errorf("validateIn(480, 800) = %v, wantErr %t", err, tc.wantErr)
			}
		})
	}
}

func TestWindowAddressing(t *testing.T) {
	w := Window{X0: 256, Y0: 1, X1: 479, Y1: 799}
	if diff := cmp.Diff(w.caset(), []byte{0x01, 0x00, 0x01, 0xDF}); diff != "" {
		t.Errorf("caset() difference (-got +want):\n%s", diff)
	}
	if diff := cmp.Diff(w.paset(), []byte{0x00, 0x01, 0x03, 0x1F}); diff != "" {
		t.Errorf("paset() difference (-got +want):\n%s", diff)
	}

	got, err := decodeWindow(w.caset(), w.paset())
	if err != nil {
		t.Fatalf("decodeWindow() = %v", err)
	}
	if got != w {
		t.Errorf("decodeWindow() = %s, want %s", got, w)
	}

	if _, err := decodeWindow([]byte{0x00}, w.paset()); err == nil {
		t.Error("decodeWindow(short caset) accepted")
	}

	if w.Dx() != 224 || w.Dy() != 799 {
		t.Errorf("Dx()/Dy() = %d/%d, want 224/799", w.Dx(), w.Dy())
	}
}

func TestDriverErrorChain(t *testing.T) {
	cause := errors.New("spi: chip select stuck")
	err := transportErr("flush", cause)

	if !errors.Is(err, ErrTransport) {
		t.Errorf("errors.Is(err, ErrTransport) = false")
	}
	if errors.Is(err, ErrTimeout) || errors.Is(err, ErrInvalidArgument) {
		t.Errorf("transport error matches unrelated kinds")
	}
	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(err, cause) = false, want unwrap to reach the capability error")
	}
	var de *DriverError
	if !errors.As(err, &de) || de.Op != "flush" {
		t.Errorf("errors.As(err, *DriverError) failed or wrong op: %+v", de)
	}
	want := "otm8009a: flush: transport failure: spi: chip select stuck"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	if got := timeoutErr("init").Error(); got != "otm8009a: init: timeout" {
		t.Errorf("Error() = %q", got)
	}
}
