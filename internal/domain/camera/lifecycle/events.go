// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package lifecycle

import "fmt"

// EventKind is a domain event in the camera lifecycle.
type EventKind int

const (
	EvUnknown EventKind = iota
	EvInitRequested
	EvSessionOpened
	EvOpenFailed
	EvPauseRequested
	EvSessionReleased
	EvResumeRequested
	EvRecreateRequested
	EvSwitchRequested
	EvFault
	EvDisposeRequested
	EvTimeout // Resolved by TimeoutOutcome, not the transitions table
)

var eventNames = map[EventKind]string{
	EvUnknown:           "unknown",
	EvInitRequested:     "init_requested",
	EvSessionOpened:     "session_opened",
	EvOpenFailed:        "open_failed",
	EvPauseRequested:    "pause_requested",
	EvSessionReleased:   "session_released",
	EvResumeRequested:   "resume_requested",
	EvRecreateRequested: "recreate_requested",
	EvSwitchRequested:   "switch_requested",
	EvFault:             "fault",
	EvDisposeRequested:  "dispose_requested",
	EvTimeout:           "timeout",
}

func (e EventKind) String() string {
	if n, ok := eventNames[e]; ok {
		return n
	}
	return fmt.Sprintf("event(%d)", int(e))
}

// AllEvents lists every event handled by Dispatch.
var AllEvents = []EventKind{
	EvInitRequested,
	EvSessionOpened,
	EvOpenFailed,
	EvPauseRequested,
	EvSessionReleased,
	EvResumeRequested,
	EvRecreateRequested,
	EvSwitchRequested,
	EvFault,
	EvDisposeRequested,
	EvTimeout,
}
