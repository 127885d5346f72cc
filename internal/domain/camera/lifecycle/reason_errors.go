// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package lifecycle

import (
	"context"
	"errors"
	"strings"

	"github.com/ManuGH/camlife/internal/domain/camera/model"
	"github.com/ManuGH/camlife/internal/domain/camera/ports"
)

type reasonError struct {
	reason model.ReasonCode
	detail string
	err    error
}

func (e *reasonError) Error() string {
	if e.err != nil {
		if e.detail != "" {
			return e.detail + ": " + e.err.Error()
		}
		return e.err.Error()
	}
	if e.detail != "" {
		return e.detail
	}
	return string(e.reason)
}

func (e *reasonError) Is(target error) bool {
	if target == nil {
		return false
	}
	class := ReasonErrorClass(e.reason)
	return class != nil && target == class
}

func (e *reasonError) Unwrap() error {
	return e.err
}

// NewReasonError builds a classified error. detail is debug-only and never shown to users.
func NewReasonError(reason model.ReasonCode, detail string, err error) error {
	return &reasonError{reason: reason, detail: sanitizeDetail(detail), err: err}
}

// WrapWithReasonClass classifies err unless it already carries a reason.
func WrapWithReasonClass(err error) error {
	return WrapWithDefault(err, model.RUnknown)
}

// WrapWithDefault classifies err, falling back to def for errors no rule recognises.
func WrapWithDefault(err error, def model.ReasonCode) error {
	if err == nil {
		return nil
	}
	var rerr *reasonError
	if errors.As(err, &rerr) {
		return err
	}
	reason, detail := ClassifyReason(err)
	if reason == model.RUnknown {
		reason = def
	}
	return &reasonError{reason: reason, detail: detail, err: err}
}

// ClassifyReason maps any error to a reason code and a sanitized debug detail.
func ClassifyReason(err error) (model.ReasonCode, string) {
	if err == nil {
		return model.RNone, ""
	}
	if reason, detail, ok := ReasonFromError(err); ok {
		return reason, sanitizeDetail(detail)
	}

	switch {
	case errors.Is(err, ports.ErrPermissionRevoked):
		return model.RPermissionRevoked, ""
	case errors.Is(err, ports.ErrDeviceDisconnected):
		return model.RDeviceDisconnected, ""
	case errors.Is(err, ports.ErrCameraInUse):
		return model.RCameraInUse, ""
	case errors.Is(err, ports.ErrHardwareUnavailable):
		return model.RHardwareUnavailable, ""
	case errors.Is(err, ports.ErrCapability):
		return model.RCapabilityUnsupported, sanitizeDetail(err.Error())
	case errors.Is(err, context.Canceled):
		return model.RCancelled, ""
	case errors.Is(err, context.DeadlineExceeded):
		return model.RTransitionTimeout, ""
	}

	return model.RUnknown, sanitizeDetail(err.Error())
}

// ReasonFromError extracts the reason carried by a classified error.
func ReasonFromError(err error) (model.ReasonCode, string, bool) {
	var rerr *reasonError
	if errors.As(err, &rerr) {
		detail := rerr.detail
		if detail == "" && rerr.err != nil {
			detail = rerr.err.Error()
		}
		return rerr.reason, detail, true
	}
	return "", "", false
}

// ReasonOf returns the reason code of err, classifying it if needed.
func ReasonOf(err error) model.ReasonCode {
	reason, _ := ClassifyReason(err)
	return reason
}

// CapabilityFromError returns the capability named by a *ports.CapabilityError in the chain.
func CapabilityFromError(err error) (model.Capability, bool) {
	var capErr *ports.CapabilityError
	if errors.As(err, &capErr) && capErr.Capability != "" {
		return capErr.Capability, true
	}
	return "", false
}

func sanitizeDetail(detail string) string {
	if detail == "" {
		return ""
	}
	const maxLen = 160
	clean := strings.ReplaceAll(detail, "\n", " ")
	clean = strings.ReplaceAll(clean, "\r", " ")
	if len(clean) > maxLen {
		return clean[:maxLen] + "..."
	}
	return clean
}
