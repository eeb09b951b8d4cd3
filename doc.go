// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package otm8009a controls an OTM8009A TFT LCD controller over a MIPI-DSI
// display command set (DCS) link.
//
// The OTM8009A drives 480x800 panels such as the one on the
// STM32F769I-DISCO board. The driver is hardware independent: it talks to
// the panel exclusively through three capabilities supplied at construction
// time, a command transport, a display timing controller and a framebuffer.
// Concrete bindings live in the dsihost, memfb and termfb packages; test
// doubles implement the same interfaces.
//
// The driver is a strict state machine. A device starts Uninitialized,
// Init walks it through the panel power-on command sequence to Ready, and
// every later operation validates its arguments before any command is
// transmitted. A transport failure at any point after initialization moves
// the device to Faulted; the only way out of Faulted is a full Init.
//
// All methods are blocking and the Dev is not safe for concurrent use.
// Callers needing access from multiple goroutines must serialize externally.
//
// # Datasheet
//
// https://www.orientdisplay.com/wp-content/uploads/2020/02/OTM8009A.pdf
package otm8009a
