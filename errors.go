// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package otm8009a

import (
	"errors"
	"fmt"
)

// The three failure classes reported by the driver. Match them with
// errors.Is; the returned errors additionally carry context and, for
// transport failures, the capability's own error as the unwrap chain.
var (
	// ErrTransport reports a capability level failure: a command write,
	// reset or timing configuration failed. Not recoverable at this layer.
	ErrTransport = errors.New("transport failure")
	// ErrInvalidArgument reports a caller supplied coordinate, format,
	// orientation or state outside the accepted domain. The panel was not
	// touched and the driver state is unchanged.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrTimeout reports that the readiness poll exceeded its attempt
	// bound during Init or Wake.
	ErrTimeout = errors.New("timeout")
)

// DriverError is the error type returned by all Dev methods. Kind is one of
// ErrTransport, ErrInvalidArgument or ErrTimeout; Cause, when non-nil, is
// the underlying capability error.
type DriverError struct {
	Kind  error
	Op    string
	Cause error
}

func (e *DriverError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("otm8009a: %s: %s: %s", e.Op, e.Kind, e.Cause)
	}
	return fmt.Sprintf("otm8009a: %s: %s", e.Op, e.Kind)
}

func (e *DriverError) Is(target error) bool {
	return target == e.Kind
}

func (e *DriverError) Unwrap() error {
	return e.Cause
}

func transportErr(op string, cause error) error {
	return &DriverError{Kind: ErrTransport, Op: op, Cause: cause}
}

func invalidArgErr(op string, cause error) error {
	return &DriverError{Kind: ErrInvalidArgument, Op: op, Cause: cause}
}

func timeoutErr(op string) error {
	return &DriverError{Kind: ErrTimeout, Op: op}
}
