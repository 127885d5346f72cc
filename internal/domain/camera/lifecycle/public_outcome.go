// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package lifecycle

import "github.com/ManuGH/camlife/internal/domain/camera/model"

// View is the coarse screen the presentation layer should render.
type View string

const (
	ViewBlank   View = "blank"
	ViewLoading View = "loading"
	ViewPreview View = "preview"
	ViewError   View = "error"
)

// Presentation is the render input derived from one committed snapshot.
// Message is always one of the fixed public strings; raw platform text never reaches it.
type Presentation struct {
	View         View
	State        model.LifecycleState
	Reason       model.ReasonCode
	Message      string
	CanRetry     bool
	OpenSettings bool
}

var publicMessages = map[model.ReasonCode]string{
	model.RPermissionDenied:            "Camera access is needed to take photos.",
	model.RPermissionPermanentlyDenied: "Camera access is turned off. Enable it in Settings.",
	model.RPermissionRevoked:           "Camera access was turned off while in use.",
	model.RHardwareUnavailable:         "The camera could not be started.",
	model.RCameraInUse:                 "The camera is being used by another app.",
	model.RDeviceDisconnected:          "The camera was disconnected.",
	model.RCapabilityUnsupported:       "This feature is not available on this camera.",
	model.RLensUnavailable:             "That camera is not available on this device.",
	model.RTransitionTimeout:           "The camera took too long to respond.",
	model.RSwitchFailed:                "Could not switch cameras.",
}

// PublicMessage returns the user-facing text for a reason code.
func PublicMessage(reason model.ReasonCode) string {
	if msg, ok := publicMessages[reason]; ok {
		return msg
	}
	return "Something went wrong with the camera."
}

// PresentationFor derives the render input from a snapshot. It is pure.
// ERROR caused by a transition timeout renders blank with no message.
func PresentationFor(s model.Snapshot) Presentation {
	p := Presentation{View: ViewBlank, State: s.State, Reason: model.RNone}
	switch {
	case s.State.ShowsLoading():
		p.View = ViewLoading
	case s.State == model.StateReady:
		p.View = ViewPreview
	case s.State == model.StateError:
		reason := model.RUnknown
		if s.Err != nil {
			reason = s.Err.Reason
		}
		p.Reason = reason
		if reason == model.RTransitionTimeout {
			// Timeouts heal on their own; keep a quiet retry but no error screen.
			p.CanRetry = true
			return p
		}
		p.View = ViewError
		p.Message = PublicMessage(reason)
		p.OpenSettings = reason == model.RPermissionPermanentlyDenied
		p.CanRetry = s.Recoverable()
	}
	return p
}
