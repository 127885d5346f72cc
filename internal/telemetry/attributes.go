// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Common attribute keys for consistent tracing across the application.
const (
	// Camera attributes
	CameraMachineIDKey   = "camera.machine_id"
	CameraOpKey          = "camera.op"
	CameraTokenKey       = "camera.token"
	CameraHardwareIDKey  = "camera.hardware_id"
	CameraFacingKey      = "camera.facing"
	CameraResolutionKey  = "camera.resolution"
	CameraOrientationKey = "camera.orientation"
	CameraStaleKey       = "camera.stale"

	// Lifecycle attributes
	LifecycleFromKey   = "lifecycle.from"
	LifecycleToKey     = "lifecycle.to"
	LifecycleReasonKey = "lifecycle.reason"

	// Error attributes
	ErrorKey     = "error"
	ErrorTypeKey = "error.type"
)

// OperationAttributes creates span attributes for a lifecycle operation.
func OperationAttributes(machineID, op string, token uint64) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(CameraMachineIDKey, machineID),
		attribute.String(CameraOpKey, op),
		attribute.Int64(CameraTokenKey, int64(token)),
	}
}

// SessionAttributes creates camera-session span attributes. Empty values are omitted.
func SessionAttributes(hardwareID, facing, resolution, orientation string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 4)
	if hardwareID != "" {
		attrs = append(attrs, attribute.String(CameraHardwareIDKey, hardwareID))
	}
	if facing != "" {
		attrs = append(attrs, attribute.String(CameraFacingKey, facing))
	}
	if resolution != "" {
		attrs = append(attrs, attribute.String(CameraResolutionKey, resolution))
	}
	if orientation != "" {
		attrs = append(attrs, attribute.String(CameraOrientationKey, orientation))
	}
	return attrs
}

// TransitionAttributes creates lifecycle transition span attributes.
func TransitionAttributes(from, to, reason string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String(LifecycleFromKey, from),
		attribute.String(LifecycleToKey, to),
	}
	if reason != "" {
		attrs = append(attrs, attribute.String(LifecycleReasonKey, reason))
	}
	return attrs
}

// ErrorAttributes creates error-related span attributes.
func ErrorAttributes(_ error, errorType string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Bool(ErrorKey, true),
		attribute.String(ErrorTypeKey, errorType),
	}
}
