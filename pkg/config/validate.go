// Zaparoo GameDB
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo GameDB.
//
// Zaparoo GameDB is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo GameDB is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo GameDB.  If not, see <http://www.gnu.org/licenses/>.

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZaparooProject/zaparoo-gamedb/pkg/gamedb"
	"github.com/go-playground/validator/v10"
)

// ValidationError wraps validation errors with formatted messages.
type ValidationError struct {
	Fields []FieldError
}

// FieldError represents a single field validation error.
type FieldError struct {
	Value   any
	Field   string
	Tag     string
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(e.Fields))
	for i, fe := range e.Fields {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, "; ")
}

func newValidationError(errs validator.ValidationErrors) *ValidationError {
	ve := &ValidationError{
		Fields: make([]FieldError, len(errs)),
	}
	for i, fe := range errs {
		ve.Fields[i] = FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Value:   fe.Value(),
			Message: formatValidationError(fe),
		}
	}
	return ve
}

func formatValidationError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "mode":
		return fmt.Sprintf("%s must be %q or %q, got %q",
			field, gamedb.ModeStrict, gamedb.ModePermissive, fe.Value())
	case "filename":
		return fmt.Sprintf("%s must be a plain file name, got %q", field, fe.Value())
	case "url":
		return fmt.Sprintf("%s must be a valid URL, got %q", field, fe.Value())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("mode", validateMode)
	_ = v.RegisterValidation("filename", validateFilename)
	return v
}

// Validate checks config values after they have been unmarshalled.
func Validate(vals *Values) error {
	if err := validate.Struct(vals); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return newValidationError(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

func validateMode(fl validator.FieldLevel) bool {
	_, err := gamedb.ParseMode(fl.Field().String())
	return err == nil
}

// validateFilename only allows names that stay inside the output directory.
func validateFilename(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if name == "" || name == "." || name == ".." {
		return false
	}
	return filepath.Base(name) == name && !strings.ContainsAny(name, `/\`)
}
