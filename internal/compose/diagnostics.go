package compose

import (
	"fmt"

	"github.com/Xemius/graphql-platform/internal/language"
)

// DiagnosticKind classifies a composition failure.
type DiagnosticKind string

const (
	DiagnosticInvalidSchema      DiagnosticKind = "INVALID_SCHEMA"
	DiagnosticDuplicateSubgraph  DiagnosticKind = "DUPLICATE_SUBGRAPH"
	DiagnosticFieldTypeConflict  DiagnosticKind = "FIELD_TYPE_CONFLICT"
	DiagnosticInvalidIsDirective DiagnosticKind = "INVALID_IS_DIRECTIVE"
	DiagnosticNoEntities         DiagnosticKind = "NO_ENTITIES"
)

// Diagnostic is one composition failure. Coordinate names the schema
// element the failure is about ("Type", "Type.field" or
// "Type.field(arg:)") when one applies.
type Diagnostic struct {
	Kind       DiagnosticKind `json:"kind"`
	Coordinate string         `json:"coordinate,omitempty"`
	Message    string         `json:"message"`
	File       string         `json:"file,omitempty"`
	Line       int            `json:"line,omitempty"`
	Column     int            `json:"column,omitempty"`
}

// CompositionError is the non-empty diagnostics list a failed run
// returns. Composition either fully succeeds or fails with one of
// these; no partial document is ever produced.
type CompositionError []*Diagnostic

func (e CompositionError) Error() string {
	msg := "composition failed:\n"
	for _, d := range e {
		line := "- " + string(d.Kind) + ": " + d.Message
		if d.File != "" {
			line += fmt.Sprintf(" %s:%d:%d", d.File, d.Line, d.Column)
		}
		msg += line + "\n"
	}
	return msg
}

// Core primitive used by all template helpers.
func diagnosticWithPosition(kind DiagnosticKind, coordinate, message string, pos *language.Position) *Diagnostic {
	d := &Diagnostic{Kind: kind, Coordinate: coordinate, Message: message}
	if pos != nil {
		if pos.Src != nil {
			d.File = pos.Src.Name
		}
		d.Line = pos.Line
		d.Column = pos.Column
	}
	return d
}
