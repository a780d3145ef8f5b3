package compose

import (
	"strings"

	"github.com/Xemius/graphql-platform/internal/language"
	"github.com/Xemius/graphql-platform/internal/supergraph"
)

// synthesize turns every resolver candidate into @variable bindings
// and @resolver operations on its entity type, and attaches a FETCH
// resolver to the originating Query field unless it is private.
func (b *builder) synthesize() {
	for _, mt := range b.entities {
		for _, candidate := range mt.candidates {
			for _, binding := range candidate.bindings {
				mt.variables = append(mt.variables, &supergraph.Variable{
					Name:     mt.name + "_" + binding.argName,
					Select:   binding.selectPath,
					Subgraph: candidate.subgraph,
				})
			}
			mt.resolvers = append(mt.resolvers, &supergraph.Resolver{
				Operation: entityOperation(mt.name, candidate),
				Kind:      candidate.kind,
				Subgraph:  candidate.subgraph,
			})
			if !candidate.private {
				b.attachQueryResolver(candidate)
			}
		}
	}
}

// entityOperation builds the operation the runtime executes to resolve
// the entity: variables carry synthesized entity-scoped names, the
// invoked field keeps its original argument names and types.
func entityOperation(entityName string, candidate *resolverCandidate) string {
	decls := make([]string, 0, len(candidate.bindings))
	args := make([]string, 0, len(candidate.bindings))
	for _, binding := range candidate.bindings {
		variable := "$" + entityName + "_" + binding.argName
		decls = append(decls, variable+": "+binding.argType)
		args = append(args, binding.argName+": "+variable)
	}
	return "query(" + strings.Join(decls, ", ") + ") { " + candidate.fieldName + "(" + strings.Join(args, ", ") + ") }"
}

// queryOperation builds the operation for calling the Query field
// directly, with every declared argument under its original name.
func queryOperation(candidate *resolverCandidate) string {
	decls := make([]string, 0, len(candidate.fieldArgs))
	args := make([]string, 0, len(candidate.fieldArgs))
	for _, arg := range candidate.fieldArgs {
		decls = append(decls, "$"+arg.name+": "+arg.typeText)
		args = append(args, arg.name+": $"+arg.name)
	}
	return "query(" + strings.Join(decls, ", ") + ") { " + candidate.fieldName + "(" + strings.Join(args, ", ") + ") }"
}

func (b *builder) attachQueryResolver(candidate *resolverCandidate) {
	query := b.merged["Query"]
	if query == nil {
		return
	}
	field := query.fields[candidate.fieldName]
	if field == nil {
		return
	}
	field.resolvers = append(field.resolvers, &supergraph.Resolver{
		Operation: queryOperation(candidate),
		Kind:      supergraph.ResolverKindFetch,
		Subgraph:  candidate.subgraph,
	})
}

// assemble emits the final document. Source annotations appear on a
// type and its fields when more than one subgraph contributes, when
// the type is an entity, or when any contribution was renamed.
func (b *builder) assemble() *supergraph.Document {
	doc := &supergraph.Document{Types: make(map[string]*supergraph.Type, len(b.merged))}
	for name, mt := range b.merged {
		doc.Types[name] = mt.toType()
	}
	return doc
}

func (mt *mergedType) toType() *supergraph.Type {
	t := &supergraph.Type{
		Name:          mt.name,
		Kind:          typeKind(mt.kind),
		Description:   mt.description,
		Interfaces:    mt.interfaces,
		PossibleTypes: mt.members,
		EnumValues:    mt.enumValues,
		Variables:     mt.variables,
		Resolvers:     mt.resolvers,
	}
	annotate := mt.entity || len(mt.sources) >= 2 || anyRenamed(mt.sources)
	if annotate {
		t.Sources = mt.sources
	}
	for _, mf := range mt.fields {
		field := &supergraph.Field{
			Name:        mf.name,
			Description: mf.description,
			Arguments:   mf.args,
			Type:        mf.typ,
			Default:     mf.defaultVal,
			Resolvers:   mf.resolvers,
		}
		if annotate {
			field.Sources = mf.sources
		}
		t.Fields = append(t.Fields, field)
	}
	return t
}

func anyRenamed(sources []*supergraph.Source) bool {
	for _, s := range sources {
		if s.Name != "" {
			return true
		}
	}
	return false
}

func typeKind(kind language.DefinitionKind) supergraph.TypeKind {
	switch kind {
	case language.Object:
		return supergraph.TypeKindObject
	case language.Interface:
		return supergraph.TypeKindInterface
	case language.Union:
		return supergraph.TypeKindUnion
	case language.Enum:
		return supergraph.TypeKindEnum
	case language.InputObject:
		return supergraph.TypeKindInputObject
	default:
		return supergraph.TypeKindScalar
	}
}
