// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package otm8009a_test

import (
	"image"
	"image/color"
	"image/draw"
	"log"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/otm8009a"
	"github.com/GermanBionicSystems/otm8009a/dsihost"
	"github.com/GermanBionicSystems/otm8009a/memfb"
	"github.com/GermanBionicSystems/otm8009a/termfb"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// Use spireg SPI bus registry to find the first available SPI bus.
	b, err := spireg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer b.Close()

	t, err := dsihost.NewHost(b,
		gpioreg.ByName("GPIO25"), // data/command
		gpioreg.ByName("GPIO27"), // reset
		gpioreg.ByName("GPIO24"), // busy
		nil)
	if err != nil {
		log.Fatalf("failed to open the panel bus: %v", err)
	}

	fb, err := memfb.New(otm8009a.NativeWidth, otm8009a.NativeHeight, otm8009a.RGB565.BytesPerPixel())
	if err != nil {
		log.Fatal(err)
	}

	dev, err := otm8009a.New(t, &dsihost.Timing{}, fb, nil)
	if err != nil {
		log.Fatalf("failed to bind driver: %v", err)
	}
	if err := dev.Init(otm8009a.RGB565, otm8009a.Portrait); err != nil {
		log.Fatalf("failed to initialize display: %v", err)
	}

	if err := dev.Clear(color.White); err != nil {
		log.Fatal(err)
	}
	if err := dev.Flush(otm8009a.Window{X0: 0, Y0: 0, X1: 479, Y1: 799}); err != nil {
		log.Fatal(err)
	}

	_ = dev.Halt()
}

// Example_text renders antialiased text into the framebuffer and pushes it
// to the panel.
func Example_text() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	b, err := spireg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer b.Close()

	t, err := dsihost.NewHost(b,
		gpioreg.ByName("GPIO25"),
		gpioreg.ByName("GPIO27"),
		gpioreg.ByName("GPIO24"),
		nil)
	if err != nil {
		log.Fatal(err)
	}
	fb, err := memfb.New(otm8009a.NativeHeight, otm8009a.NativeWidth, otm8009a.RGB565.BytesPerPixel())
	if err != nil {
		log.Fatal(err)
	}
	dev, err := otm8009a.New(t, &dsihost.Timing{}, fb, nil)
	if err != nil {
		log.Fatal(err)
	}
	if err := dev.Init(otm8009a.RGB565, otm8009a.Landscape); err != nil {
		log.Fatal(err)
	}

	bounds := dev.Bounds()
	dc := gg.NewContext(bounds.Dx(), bounds.Dy())
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0, 0, 0)
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		log.Fatal(err)
	}
	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: 48}))
	text := "Hello from periph!"
	tw, th := dc.MeasureString(text)
	dc.DrawRoundedRectangle(16, 16, tw+32, th+24, 10)
	dc.Stroke()
	dc.DrawString(text, 32, 24+th)

	if err := dev.Draw(bounds, dc.Image(), image.Point{}); err != nil {
		log.Fatal(err)
	}
	_ = dev.Halt()
}

// Example_basicfont draws bitmap font text without any truetype machinery.
func Example_basicfont() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	b, err := spireg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer b.Close()

	t, err := dsihost.NewHost(b,
		gpioreg.ByName("GPIO25"),
		gpioreg.ByName("GPIO27"),
		gpioreg.ByName("GPIO24"),
		nil)
	if err != nil {
		log.Fatal(err)
	}
	fb, err := memfb.New(otm8009a.NativeWidth, otm8009a.NativeHeight, otm8009a.RGB565.BytesPerPixel())
	if err != nil {
		log.Fatal(err)
	}
	dev, err := otm8009a.New(t, &dsihost.Timing{}, fb, nil)
	if err != nil {
		log.Fatal(err)
	}
	if err := dev.Init(otm8009a.RGB565, otm8009a.Portrait); err != nil {
		log.Fatal(err)
	}

	img := image.NewNRGBA(dev.Bounds())
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)
	face := basicfont.Face7x13
	drawer := font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{color.Black},
		Face: face,
		Dot:  fixed.P(0, img.Bounds().Dy()-1-face.Descent),
	}
	drawer.DrawString("Hello from periph!")

	if err := dev.Draw(dev.Bounds(), img, image.Point{}); err != nil {
		log.Fatal(err)
	}
	_ = dev.Halt()
}

// Example_terminal previews framebuffer contents in the terminal, no panel
// attached.
func Example_terminal() {
	fb, err := memfb.New(otm8009a.NativeWidth, otm8009a.NativeHeight, otm8009a.RGB565.BytesPerPixel())
	if err != nil {
		log.Fatal(err)
	}
	preview := termfb.New(fb, nil)

	red := memfb.RGB565From888(0xFF, 0x40, 0x40)
	w := otm8009a.Window{X0: 0, Y0: 0, X1: 479, Y1: 399}
	if err := preview.Fill(w, []byte{byte(red >> 8), byte(red)}); err != nil {
		log.Fatal(err)
	}
	_ = preview.Halt()
}
