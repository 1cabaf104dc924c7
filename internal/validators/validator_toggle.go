// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/MKhiriev/go-toggle-sync/models"
)

const (
	FieldEntityID  = "entity_id"
	FieldCount     = "count"
	FieldActorID   = "actor_id"
	FieldTimestamp = "timestamp"
)

// MaxEntityIDLength bounds entity ids accepted from the local API. They end up
// in URLs and retry store keys.
const MaxEntityIDLength = 256

// EntityID is a bare entity id to validate.
type EntityID string

type ToggleValidator struct {
}

func NewToggleValidator() Validator {
	return &ToggleValidator{}
}

// Validate accepts [EntityID], [models.InitRequest] and [models.QueuedAction]
// values or pointers to them.
func (v *ToggleValidator) Validate(_ context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case EntityID:
		return validateEntityID(string(value))
	case *EntityID:
		return validateEntityID(string(*value))

	case models.InitRequest:
		return v.validateInitRequest(value, fields...)
	case *models.InitRequest:
		return v.validateInitRequest(*value, fields...)

	case models.QueuedAction:
		return v.validateQueuedAction(value, fields...)
	case *models.QueuedAction:
		return v.validateQueuedAction(*value, fields...)
	}

	return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
}

func (v *ToggleValidator) validateInitRequest(req models.InitRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldCount}
	}
	for _, field := range fields {
		switch field {
		case FieldCount:
			if req.Count < 0 {
				return ErrNegativeCount
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}
	return nil
}

func (v *ToggleValidator) validateQueuedAction(action models.QueuedAction, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEntityID, FieldActorID, FieldTimestamp}
	}
	for _, field := range fields {
		var err error
		switch field {
		case FieldEntityID:
			err = validateEntityID(action.EntityID)
		case FieldActorID:
			if strings.TrimSpace(action.ActorID) == "" {
				err = ErrEmptyActorID
			}
		case FieldTimestamp:
			if action.Timestamp <= 0 {
				err = ErrInvalidTimestamp
			}
		default:
			err = fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func validateEntityID(id string) error {
	if id == "" {
		return ErrEmptyEntityID
	}
	if len(id) > MaxEntityIDLength {
		return ErrEntityIDTooLong
	}
	if strings.IndexFunc(id, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r) || r == '/'
	}) >= 0 {
		return ErrInvalidEntityID
	}
	return nil
}
