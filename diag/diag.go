// Copyright 2026 The Annuaire Authors
// SPDX-License-Identifier: Apache-2.0

// Package diag carries non-fatal pipeline diagnostics alongside payloads.
//
// The data pipeline never lets a transport or parse problem escape as an
// error to its consumers; it degrades to an empty or partial result and
// records what happened here. The presentation layer decides how, and
// whether, to surface the messages.
package diag

import "fmt"

// Level classifies a diagnostic.
type Level int

const (
	// Warning is a degraded-but-usable condition (cache fallback, skipped rows).
	Warning Level = iota
	// Error means the operation produced an empty result.
	Error
)

// String returns the lowercase name of the level.
func (l Level) String() string {
	switch l {
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Diagnostic is a single non-fatal event recorded by the pipeline.
type Diagnostic struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Warningf builds a warning-level diagnostic.
func Warningf(format string, args ...any) Diagnostic {
	return Diagnostic{Level: Warning, Message: fmt.Sprintf(format, args...)}
}

// Errorf builds an error-level diagnostic.
func Errorf(format string, args ...any) Diagnostic {
	return Diagnostic{Level: Error, Message: fmt.Sprintf(format, args...)}
}

// HasError reports whether any diagnostic in the list is error-level.
func HasError(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Level == Error {
			return true
		}
	}

	return false
}
