package compose

import (
	"strings"

	"github.com/Xemius/graphql-platform/internal/language"
	"github.com/Xemius/graphql-platform/internal/supergraph"
)

// resolverCandidate is one subgraph's claim that a Query field can
// resolve an entity by key.
type resolverCandidate struct {
	subgraph  string
	fieldName string
	fieldArgs []*fieldArg   // every declared argument, declaration order
	bindings  []*keyBinding // the @is-annotated subset, declaration order
	kind      supergraph.ResolverKind
	private   bool
}

type fieldArg struct {
	name     string
	typeText string // subgraph-local declared type
}

type keyBinding struct {
	argName    string
	argType    string // subgraph-local declared type
	selectPath string
}

// extractEntities scans every subgraph's root Query fields for
// @is-annotated arguments and records at most one resolver candidate
// per (entity, subgraph) pair: the first qualifying field in
// declaration order wins.
func (b *builder) extractEntities() error {
	for _, sg := range b.subgraphs {
		if sg.Query == nil {
			continue
		}
		for _, field := range sg.Query.Fields {
			b.extractCandidate(sg, field)
		}
	}

	if len(b.diagnostics) > 0 {
		return CompositionError(b.diagnostics)
	}

	if len(b.entities) == 0 {
		b.addDiagnostic(diagnosticNoEntities())
		return CompositionError(b.diagnostics)
	}
	return nil
}

func (b *builder) extractCandidate(sg *Subgraph, field *FieldDef) {
	var keyArgs []*ArgDef
	for _, arg := range field.Args {
		if arg.IsPos != nil {
			keyArgs = append(keyArgs, arg)
		}
	}
	if len(keyArgs) == 0 {
		return
	}

	coordinate := "Query." + field.Name
	returnName := namedType(field.Type)
	local := sg.Type(returnName)
	if local == nil {
		if builtinScalars[returnName] {
			b.addDiagnostic(diagnosticIsOnNonEntityReturn(coordinate, typeString(field.Type), sg.Name, field.Position))
		} else {
			b.addDiagnostic(diagnosticIsUnknownReturnType(coordinate, returnName, sg.Name, field.Position))
		}
		return
	}
	if local.Kind != language.Object {
		b.addDiagnostic(diagnosticIsOnNonEntityReturn(coordinate, typeString(field.Type), sg.Name, field.Position))
		return
	}

	mt := b.merged[sg.CanonicalName(returnName)]
	for _, have := range mt.candidates {
		if have.subgraph == sg.Name {
			return
		}
	}

	resolved := true
	var bindings []*keyBinding
	for _, arg := range keyArgs {
		if !b.resolveIsPath(sg, local, field, arg) {
			resolved = false
			continue
		}
		bindings = append(bindings, &keyBinding{
			argName:    arg.Name,
			argType:    typeString(arg.Type),
			selectPath: arg.Is,
		})
	}
	if !resolved {
		return
	}

	kind := supergraph.ResolverKindFetch
	if isListType(keyArgs[0].Type) {
		kind = supergraph.ResolverKindBatch
	}
	candidate := &resolverCandidate{
		subgraph:  sg.Name,
		fieldName: field.Name,
		bindings:  bindings,
		kind:      kind,
		private:   field.Private,
	}
	for _, arg := range field.Args {
		candidate.fieldArgs = append(candidate.fieldArgs, &fieldArg{name: arg.Name, typeText: typeString(arg.Type)})
	}
	mt.candidates = append(mt.candidates, candidate)
	b.promote(mt)
}

// resolveIsPath walks a dotted @is path segment by segment against the
// subgraph's own definitions, starting from the entity type.
func (b *builder) resolveIsPath(sg *Subgraph, entity *TypeDef, field *FieldDef, arg *ArgDef) bool {
	coordinate := "Query." + field.Name + "(" + arg.Name + ":)"
	segments := strings.Split(arg.Is, ".")
	current := entity
	for i, segment := range segments {
		fd := current.Field(segment)
		if fd == nil {
			b.addDiagnostic(diagnosticIsPathNotFound(coordinate, arg.Is, entity.Name, sg.Name, arg.IsPos))
			return false
		}
		if i == len(segments)-1 {
			break
		}
		next := sg.Type(namedType(fd.Type))
		if next == nil || (next.Kind != language.Object && next.Kind != language.Interface) {
			b.addDiagnostic(diagnosticIsPathNotFound(coordinate, arg.Is, entity.Name, sg.Name, arg.IsPos))
			return false
		}
		current = next
	}
	return true
}

// promote marks a merged type as an entity, once.
func (b *builder) promote(mt *mergedType) {
	if mt.entity {
		return
	}
	mt.entity = true
	b.entities = append(b.entities, mt)
}

// namedType returns the innermost named type of a reference.
func namedType(t *language.Type) string {
	for t.Elem != nil {
		t = t.Elem
	}
	return t.NamedType
}

// builtinScalars are the GraphQL built-in scalar names no subgraph
// has to declare.
var builtinScalars = map[string]bool{
	"String":  true,
	"Int":     true,
	"Float":   true,
	"Boolean": true,
	"ID":      true,
}
