// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package otm8009a

// sender transmits command tables through the transport capability with
// sticky error handling: after the first failure every further send is a
// no-op, so a table transmission aborts at the failing entry and the error
// surfaces once.
type sender struct {
	t   CommandTransport
	op  string
	err error
}

func (s *sender) send(c command) {
	if s.err != nil {
		return
	}
	if err := s.t.Send(c.addr, c.payload); err != nil {
		s.err = transportErr(s.op, err)
		return
	}
	if c.delayAfter > 0 {
		s.t.Wait(c.delayAfter)
	}
}

func (s *sender) sendAll(cmds []command) {
	for _, c := range cmds {
		s.send(c)
	}
}
