package compose

import (
	"github.com/Xemius/graphql-platform/internal/language"
)

// Subgraph is one loaded subgraph schema reshaped for merging.
// Instances are immutable once built. Index is the subgraph's position
// in the name-sorted input list and is what makes every "first
// contributor wins" tie-break independent of caller argument order.
type Subgraph struct {
	Name  string
	Index int

	// Types in declaration order, keyed map alongside for lookup.
	Types       []*TypeDef
	typesByName map[string]*TypeDef

	// Query is the root query type named by the schema definition, or
	// the type literally named "Query" when no schema block exists.
	Query *TypeDef

	// renames maps a subgraph-local type name to its canonical
	// supergraph name, fed by @rename and by non-default root
	// operation type names.
	renames map[string]string
}

// Type returns the subgraph-local definition of name, or nil.
func (s *Subgraph) Type(name string) *TypeDef {
	return s.typesByName[name]
}

// CanonicalName maps a subgraph-local type name to the name it carries
// in the merged supergraph.
func (s *Subgraph) CanonicalName(local string) string {
	if canonical, ok := s.renames[local]; ok {
		return canonical
	}
	return local
}

// TypeDef is one named type as a single subgraph declares it, with all
// extensions already folded in.
type TypeDef struct {
	Name        string
	Kind        language.DefinitionKind
	Description string
	Interfaces  []string    // subgraph-local names
	Members     []string    // union members, subgraph-local names
	EnumValues  []*EnumValueDef
	Fields      []*FieldDef // declaration order
	Key         bool        // carries @key
	Position    *language.Position

	fieldsByName map[string]*FieldDef
}

// Field returns the named field definition, or nil.
func (t *TypeDef) Field(name string) *FieldDef {
	return t.fieldsByName[name]
}

type FieldDef struct {
	Name        string
	Description string
	Type        *language.Type // subgraph-local type reference
	Args        []*ArgDef      // declaration order
	Default     *language.Value
	Private     bool // carries @private
	Position    *language.Position
}

// ArgDef is one argument declaration. Is holds the @is(field:) path
// when the argument carries one, binding it to a field of the parent
// field's return type.
type ArgDef struct {
	Name     string
	Type     *language.Type
	Default  *language.Value
	Is       string
	IsPos    *language.Position
	Position *language.Position
}

type EnumValueDef struct {
	Name        string
	Description string
}
