// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package otm8009a

// PanelState is the driver's view of the panel.
//
// It only changes through Dev methods; a fresh Dev starts at
// StateUninitialized and only a successful Init reaches StateReady.
type PanelState int

const (
	StateUninitialized PanelState = iota
	StatePoweringOn
	StateInitializing
	StateReady
	StateSleeping
	// StateFaulted is entered on any transport failure past construction.
	// Command ordering guarantees cannot be trusted after a failure at an
	// unknown point, so the only recovery is a full Init.
	StateFaulted
)

func (s PanelState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StatePoweringOn:
		return "powering-on"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateSleeping:
		return "sleeping"
	case StateFaulted:
		return "faulted"
	default:
		return "unknown"
	}
}
