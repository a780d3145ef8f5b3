package compose

import (
	"github.com/Xemius/graphql-platform/internal/language"
	"github.com/Xemius/graphql-platform/internal/supergraph"
)

// mergedType accumulates one supergraph type across every subgraph
// that contributes to its canonical name.
type mergedType struct {
	name          string
	kind          language.DefinitionKind
	description   string
	firstSubgraph string
	interfaces    []string // canonical names
	members       []string // canonical names
	enumValues    []*supergraph.EnumValue
	fields        map[string]*mergedField

	sources    []*supergraph.Source
	variables  []*supergraph.Variable
	resolvers  []*supergraph.Resolver
	entity     bool
	candidates []*resolverCandidate
}

type mergedField struct {
	name          string
	description   string
	typ           *supergraph.TypeRef
	typeStr       string
	firstSubgraph string
	args          []*supergraph.Argument
	defaultVal    string

	sources   []*supergraph.Source
	resolvers []*supergraph.Resolver
}

// mergeTypes unions same-named types across subgraphs. Subgraphs are
// visited in name order and each type in declaration order, so first
// contributions (descriptions, argument lists) are stable.
func (b *builder) mergeTypes() error {
	for _, sg := range b.subgraphs {
		contributed := make(map[string]bool, len(sg.Types))
		for _, def := range sg.Types {
			canonical := sg.CanonicalName(def.Name)
			if contributed[canonical] {
				b.addDiagnostic(diagnosticDuplicateTypeDefinition(canonical, sg.Name, def.Position))
				continue
			}
			contributed[canonical] = true
			b.mergeType(sg, def, canonical)
		}
	}

	if len(b.diagnostics) > 0 {
		return CompositionError(b.diagnostics)
	}
	return nil
}

func (b *builder) mergeType(sg *Subgraph, def *TypeDef, canonical string) {
	mt := b.merged[canonical]
	if mt == nil {
		mt = &mergedType{
			name:          canonical,
			kind:          def.Kind,
			description:   def.Description,
			firstSubgraph: sg.Name,
			fields:        make(map[string]*mergedField),
		}
		b.merged[canonical] = mt
	} else {
		if mt.kind != def.Kind {
			b.addDiagnostic(diagnosticTypeKindConflict(canonical, mt.kind, mt.firstSubgraph, def.Kind, sg.Name, def.Position))
			return
		}
		if mt.description == "" {
			mt.description = def.Description
		}
	}
	if def.Key {
		b.promote(mt)
	}

	source := &supergraph.Source{Subgraph: sg.Name}
	if def.Name != canonical {
		source.Name = def.Name
	}
	mt.sources = append(mt.sources, source)

	for _, name := range def.Interfaces {
		mt.interfaces = appendUnique(mt.interfaces, sg.CanonicalName(name))
	}
	for _, name := range def.Members {
		mt.members = appendUnique(mt.members, sg.CanonicalName(name))
	}
	for _, val := range def.EnumValues {
		mt.mergeEnumValue(val)
	}

	isRootQuery := def == sg.Query
	for _, field := range def.Fields {
		if isRootQuery && field.Private {
			continue
		}
		b.mergeField(sg, mt, field)
	}
}

func (b *builder) mergeField(sg *Subgraph, mt *mergedType, field *FieldDef) {
	ref := typeRefFrom(field.Type, sg.CanonicalName)
	typeStr := ref.String()

	mf := mt.fields[field.Name]
	if mf == nil {
		mf = &mergedField{
			name:          field.Name,
			description:   field.Description,
			typ:           ref,
			typeStr:       typeStr,
			firstSubgraph: sg.Name,
			defaultVal:    valueString(field.Default),
		}
		for _, arg := range field.Args {
			mf.args = append(mf.args, &supergraph.Argument{
				Name:    arg.Name,
				Type:    typeRefFrom(arg.Type, sg.CanonicalName),
				Default: valueString(arg.Default),
			})
		}
		mt.fields[field.Name] = mf
	} else {
		if mf.typeStr != typeStr {
			b.addDiagnostic(diagnosticFieldTypeConflict(
				mt.name+"."+field.Name, mf.typeStr, mf.firstSubgraph, typeStr, sg.Name, field.Position))
			return
		}
		if mf.description == "" {
			mf.description = field.Description
		}
	}
	mf.sources = append(mf.sources, &supergraph.Source{Subgraph: sg.Name})
}

func (mt *mergedType) mergeEnumValue(val *EnumValueDef) {
	for _, have := range mt.enumValues {
		if have.Name == val.Name {
			if have.Description == "" {
				have.Description = val.Description
			}
			return
		}
	}
	mt.enumValues = append(mt.enumValues, &supergraph.EnumValue{Name: val.Name, Description: val.Description})
}

// typeRefFrom converts an AST type reference, mapping every named type
// through the subgraph's canonical naming.
func typeRefFrom(t *language.Type, canonical func(string) string) *supergraph.TypeRef {
	var ref *supergraph.TypeRef
	if t.Elem != nil {
		ref = supergraph.ListType(typeRefFrom(t.Elem, canonical))
	} else {
		ref = supergraph.NamedType(canonical(t.NamedType))
	}
	if t.NonNull {
		ref = supergraph.NonNullType(ref)
	}
	return ref
}

func appendUnique(list []string, value string) []string {
	for _, have := range list {
		if have == value {
			return list
		}
	}
	return append(list, value)
}
