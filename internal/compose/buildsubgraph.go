package compose

import (
	"github.com/Xemius/graphql-platform/internal/language"
)

// subgraphBuilder reshapes one parsed schema document into a Subgraph.
type subgraphBuilder struct {
	sg          *Subgraph
	diagnostics []*Diagnostic
}

func buildSubgraph(name string, index int, doc *language.SchemaDocument) (*Subgraph, []*Diagnostic) {
	b := &subgraphBuilder{
		sg: &Subgraph{
			Name:        name,
			Index:       index,
			typesByName: make(map[string]*TypeDef),
			renames:     make(map[string]string),
		},
	}
	b.populateTypes(doc)
	b.populateSchema(doc)
	return b.sg, b.diagnostics
}

func (b *subgraphBuilder) addDiagnostic(d ...*Diagnostic) {
	b.diagnostics = append(b.diagnostics, d...)
}

func (b *subgraphBuilder) populateTypes(doc *language.SchemaDocument) {
	for _, node := range doc.Definitions {
		if b.sg.typesByName[node.Name] != nil {
			b.addDiagnostic(diagnosticDuplicateTypeDefinition(node.Name, b.sg.Name, node.Position))
			continue
		}
		def := &TypeDef{
			Name:         node.Name,
			Kind:         node.Kind,
			Description:  node.Description,
			Position:     node.Position,
			fieldsByName: make(map[string]*FieldDef),
		}
		b.populateDefinition(def, node)
		b.sg.Types = append(b.sg.Types, def)
		b.sg.typesByName[node.Name] = def
	}

	// Extensions fold into their base definition; an extension without
	// a base stands alone as the definition.
	for _, node := range doc.Extensions {
		def := b.sg.typesByName[node.Name]
		if def == nil {
			def = &TypeDef{
				Name:         node.Name,
				Kind:         node.Kind,
				Description:  node.Description,
				Position:     node.Position,
				fieldsByName: make(map[string]*FieldDef),
			}
			b.sg.Types = append(b.sg.Types, def)
			b.sg.typesByName[node.Name] = def
		} else if def.Kind != node.Kind {
			b.addDiagnostic(diagnosticExtensionKindMismatch(node.Name, def.Kind, node.Kind, b.sg.Name, node.Position))
			continue
		}
		b.populateDefinition(def, node)
	}
}

func (b *subgraphBuilder) populateDefinition(def *TypeDef, node *language.Definition) {
	def.Interfaces = append(def.Interfaces, node.Interfaces...)
	def.Members = append(def.Members, node.Types...)
	for _, val := range node.EnumValues {
		def.EnumValues = append(def.EnumValues, &EnumValueDef{Name: val.Name, Description: val.Description})
	}
	for _, fieldNode := range node.Fields {
		b.addField(def, fieldNode)
	}
	b.applyTypeDirectives(def, node.Directives)
}

func (b *subgraphBuilder) addField(def *TypeDef, node *language.FieldDefinition) {
	if def.fieldsByName[node.Name] != nil {
		b.addDiagnostic(diagnosticDuplicateField(def.Name+"."+node.Name, b.sg.Name, node.Position))
		return
	}
	field := &FieldDef{
		Name:        node.Name,
		Description: node.Description,
		Type:        node.Type,
		Default:     node.DefaultValue,
		Position:    node.Position,
	}
	for _, argNode := range node.Arguments {
		field.Args = append(field.Args, b.convertArg(def.Name, node.Name, argNode))
	}
	for _, dir := range node.Directives {
		if dir.Name == "private" {
			field.Private = true
		}
	}
	def.Fields = append(def.Fields, field)
	def.fieldsByName[node.Name] = field
}

func (b *subgraphBuilder) convertArg(typeName, fieldName string, node *language.ArgumentDefinition) *ArgDef {
	arg := &ArgDef{
		Name:     node.Name,
		Type:     node.Type,
		Default:  node.DefaultValue,
		Position: node.Position,
	}
	for _, dir := range node.Directives {
		if dir.Name != "is" {
			continue
		}
		arg.IsPos = dir.Position
		coordinate := typeName + "." + fieldName + "(" + node.Name + ":)"
		if valNode := dir.Arguments.ForName("field"); valNode == nil {
			b.addDiagnostic(diagnosticIsMissingField(coordinate, dir.Position))
		} else if valNode.Value == nil || valNode.Value.Kind != language.StringValue {
			b.addDiagnostic(diagnosticIsExpectedString(coordinate, dir.Position))
		} else {
			arg.Is = valNode.Value.Raw
		}
	}
	return arg
}

func (b *subgraphBuilder) applyTypeDirectives(def *TypeDef, directives language.DirectiveList) {
	for _, dir := range directives {
		if dir.Name != "key" {
			continue
		}
		def.Key = true
		b.getStringArg(dir, "fields")
	}
}

func (b *subgraphBuilder) populateSchema(doc *language.SchemaDocument) {
	var queryName, mutationName, subscriptionName string
	seenSchema := false

	apply := func(schemaDef *language.SchemaDefinition, extension bool) {
		if !extension {
			if seenSchema {
				b.addDiagnostic(diagnosticSchemaRedefined(b.sg.Name, schemaDef.Position))
				return
			}
			seenSchema = true
		}
		b.applySchemaDirectives(schemaDef.Directives)
		for _, opType := range schemaDef.OperationTypes {
			switch opType.Operation {
			case language.Query:
				queryName = opType.Type
			case language.Mutation:
				mutationName = opType.Type
			case language.Subscription:
				subscriptionName = opType.Type
			}
		}
	}
	for _, schemaDef := range doc.Schema {
		apply(schemaDef, false)
	}
	for _, schemaDef := range doc.SchemaExtension {
		apply(schemaDef, true)
	}

	b.sg.Query = b.resolveRoot("query", queryName, "Query")
	b.resolveRoot("mutation", mutationName, "Mutation")
	b.resolveRoot("subscription", subscriptionName, "Subscription")
}

// resolveRoot looks up the declared root operation type and maps a
// non-default name onto the canonical one. A root, declared or
// default-named, must be an Object type.
func (b *subgraphBuilder) resolveRoot(operation, declared, canonical string) *TypeDef {
	if declared == "" {
		def := b.sg.typesByName[canonical]
		if def != nil && def.Kind != language.Object {
			b.addDiagnostic(diagnosticRootTypeNotObject(operation, canonical, b.sg.Name, def.Position))
			return nil
		}
		return def
	}
	def := b.sg.typesByName[declared]
	if def == nil {
		b.addDiagnostic(diagnosticRootTypeNotFound(operation, declared, b.sg.Name))
		return nil
	}
	if def.Kind != language.Object {
		b.addDiagnostic(diagnosticRootTypeNotObject(operation, declared, b.sg.Name, def.Position))
		return nil
	}
	if declared != canonical {
		b.addRename(declared, canonical, def.Position)
	}
	return def
}

func (b *subgraphBuilder) applySchemaDirectives(directives language.DirectiveList) {
	for _, dir := range directives {
		if dir.Name != "rename" {
			continue
		}
		coordinate, ok := b.getStringArg(dir, "coordinate")
		newName, ok2 := b.getStringArg(dir, "newName")
		if !ok || !ok2 {
			continue
		}
		if b.sg.typesByName[coordinate] == nil {
			b.addDiagnostic(diagnosticRenameUnknownType(coordinate, b.sg.Name, dir.Position))
			continue
		}
		b.addRename(coordinate, newName, dir.Position)
	}
}

func (b *subgraphBuilder) addRename(local, canonical string, pos *language.Position) {
	if existing, ok := b.sg.renames[local]; ok {
		if existing != canonical {
			b.addDiagnostic(diagnosticConflictingRename(local, existing, canonical, b.sg.Name, pos))
		}
		return
	}
	b.sg.renames[local] = canonical
}
