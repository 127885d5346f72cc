// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package machine implements the camera lifecycle machine: the coordinator
// between the capture UI and the hardware capture session.
//
// All public methods are safe for concurrent use. Hardware calls run on
// worker goroutines, one at a time, in request order. Every request bumps a
// per-machine version; an asynchronous result is applied only while its
// operation is still the pending one, so superseded work can never move the
// reported state. Observers receive immutable StateChange and ErrorRecord
// values strictly in commit order.
package machine
