// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package ports

import "context"

// Bus is the event fan-out used for state and media change notifications.
type Bus interface {
	Publish(ctx context.Context, topic string, event interface{}) error
}

// Topics published by this module.
const (
	TopicCameraState = "camera.state"
	TopicCameraError = "camera.error"
	TopicMediaChange = "media.change"
)
