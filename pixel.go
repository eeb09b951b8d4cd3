// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package otm8009a

import "image/color"

// encodePixel packs c into f's transmission layout. RGB565 is big endian;
// RGB666 occupies three bytes with the two low bits of each component
// dropped; RGB888 is plain R, G, B.
func encodePixel(f Format, c color.Color) []byte {
	r16, g16, b16, _ := c.RGBA()
	r := byte(r16 >> 8)
	g := byte(g16 >> 8)
	b := byte(b16 >> 8)
	switch f {
	case RGB565:
		v := uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
		return []byte{byte(v >> 8), byte(v)}
	case RGB666:
		return []byte{r &^ 0x03, g &^ 0x03, b &^ 0x03}
	default:
		return []byte{r, g, b}
	}
}

// decodePixel is the inverse of encodePixel, expanding truncated components
// back to 8 bits by bit replication.
func decodePixel(f Format, pix []byte) color.NRGBA {
	switch f {
	case RGB565:
		v := uint16(pix[0])<<8 | uint16(pix[1])
		r := byte(v >> 11)
		g := byte(v >> 5 & 0x3F)
		b := byte(v & 0x1F)
		return color.NRGBA{
			R: r<<3 | r>>2,
			G: g<<2 | g>>4,
			B: b<<3 | b>>2,
			A: 0xFF,
		}
	case RGB666:
		return color.NRGBA{
			R: pix[0] | pix[0]>>6,
			G: pix[1] | pix[1]>>6,
			B: pix[2] | pix[2]>>6,
			A: 0xFF,
		}
	default:
		return color.NRGBA{R: pix[0], G: pix[1], B: pix[2], A: 0xFF}
	}
}
