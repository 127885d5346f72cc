// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package ports

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ManuGH/camlife/internal/domain/camera/model"
	"github.com/stretchr/testify/assert"
)

func TestCapabilityError_Unwrap(t *testing.T) {
	err := fmt.Errorf("apply: %w", &CapabilityError{Capability: model.CapabilityFlash})
	assert.ErrorIs(t, err, ErrCapability)

	var capErr *CapabilityError
	assert.True(t, errors.As(err, &capErr))
	assert.Equal(t, model.CapabilityFlash, capErr.Capability)
	assert.Equal(t, "capability unsupported: flash", capErr.Error())

	var empty *CapabilityError
	assert.Equal(t, ErrCapability.Error(), empty.Error())
}
