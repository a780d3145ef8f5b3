package supergraph

import (
	"sort"
	"strconv"
	"strings"
)

// Render serializes the document to SDL text.
// The output is a pure function of the document contents: type names,
// field names, and directive lines are each emitted in a canonical
// order so that identical documents always print identical bytes.
func Render(doc *Document) string {
	if doc == nil {
		return ""
	}
	var b strings.Builder

	typeNames := make([]string, 0, len(doc.Types))
	for name := range doc.Types {
		typeNames = append(typeNames, name)
	}
	sort.Strings(typeNames)

	for _, name := range typeNames {
		typ := doc.Types[name]
		switch typ.Kind {
		case TypeKindScalar:
			renderScalar(&b, typ)
		case TypeKindEnum:
			renderEnum(&b, typ)
		case TypeKindUnion:
			renderUnion(&b, typ)
		default:
			renderFieldedType(&b, typ)
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// ----- render helpers -----

func renderScalar(b *strings.Builder, typ *Type) {
	renderDescription(b, typ.Description, "")
	b.WriteString("scalar ")
	b.WriteString(typ.Name)
	for _, line := range typeDirectives(typ) {
		b.WriteString(" ")
		b.WriteString(line)
	}
	b.WriteString("\n\n")
}

func renderUnion(b *strings.Builder, typ *Type) {
	renderDescription(b, typ.Description, "")
	b.WriteString("union ")
	b.WriteString(typ.Name)
	for _, line := range typeDirectives(typ) {
		b.WriteString(" ")
		b.WriteString(line)
	}
	b.WriteString(" = ")
	b.WriteString(strings.Join(sortedNames(typ.PossibleTypes), " | "))
	b.WriteString("\n\n")
}

func renderEnum(b *strings.Builder, typ *Type) {
	renderDescription(b, typ.Description, "")
	b.WriteString("enum ")
	b.WriteString(typ.Name)
	if len(typ.EnumValues) == 0 {
		closeEmptyBlock(b, typ)
		return
	}
	openBlock(b, typ)
	values := append([]*EnumValue(nil), typ.EnumValues...)
	sort.Slice(values, func(i, j int) bool { return values[i].Name < values[j].Name })
	for _, val := range values {
		renderDescription(b, val.Description, "  ")
		b.WriteString("  ")
		b.WriteString(val.Name)
		b.WriteString("\n")
	}
	b.WriteString("}\n\n")
}

func renderFieldedType(b *strings.Builder, typ *Type) {
	renderDescription(b, typ.Description, "")
	switch typ.Kind {
	case TypeKindInterface:
		b.WriteString("interface ")
	case TypeKindInputObject:
		b.WriteString("input ")
	default:
		b.WriteString("type ")
	}
	b.WriteString(typ.Name)
	if len(typ.Interfaces) > 0 {
		b.WriteString(" implements ")
		b.WriteString(strings.Join(sortedNames(typ.Interfaces), " & "))
	}
	if len(typ.Fields) == 0 {
		closeEmptyBlock(b, typ)
		return
	}
	openBlock(b, typ)
	fields := append([]*Field(nil), typ.Fields...)
	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })
	for _, field := range fields {
		renderField(b, field)
	}
	b.WriteString("}\n\n")
}

// openBlock writes the type-level directive lines and the opening brace.
func openBlock(b *strings.Builder, typ *Type) {
	for _, line := range typeDirectives(typ) {
		b.WriteString("\n  ")
		b.WriteString(line)
	}
	b.WriteString(" {\n")
}

// closeEmptyBlock ends a type that has no members; SDL forbids empty
// braces, so the directives stand alone.
func closeEmptyBlock(b *strings.Builder, typ *Type) {
	for _, line := range typeDirectives(typ) {
		b.WriteString("\n  ")
		b.WriteString(line)
	}
	b.WriteString("\n\n")
}

func renderField(b *strings.Builder, field *Field) {
	renderDescription(b, field.Description, "  ")
	b.WriteString("  ")
	b.WriteString(field.Name)
	if len(field.Arguments) > 0 {
		b.WriteString("(")
		for i, arg := range field.Arguments {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(arg.Name)
			b.WriteString(": ")
			b.WriteString(arg.Type.String())
			if arg.Default != "" {
				b.WriteString(" = ")
				b.WriteString(arg.Default)
			}
		}
		b.WriteString(")")
	}
	b.WriteString(": ")
	b.WriteString(field.Type.String())
	if field.Default != "" {
		b.WriteString(" = ")
		b.WriteString(field.Default)
	}
	for _, line := range fieldDirectives(field) {
		b.WriteString("\n    ")
		b.WriteString(line)
	}
	b.WriteString("\n")
}

func renderDescription(b *strings.Builder, desc, indent string) {
	if desc == "" {
		return
	}
	escaped := strings.ReplaceAll(desc, `"""`, `\"""`)
	b.WriteString(indent)
	b.WriteString("\"\"\"\n")
	for _, line := range strings.Split(escaped, "\n") {
		b.WriteString(indent)
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(indent)
	b.WriteString("\"\"\"\n")
}

// typeDirectives renders a type's directive lines in class order:
// sources, then variables, then resolvers, each sorted by subgraph.
func typeDirectives(typ *Type) []string {
	var lines []string
	for _, s := range sortedSources(typ.Sources) {
		lines = append(lines, renderSource(s))
	}
	variables := append([]*Variable(nil), typ.Variables...)
	sort.Slice(variables, func(i, j int) bool {
		if variables[i].Subgraph != variables[j].Subgraph {
			return variables[i].Subgraph < variables[j].Subgraph
		}
		return variables[i].Name < variables[j].Name
	})
	for _, v := range variables {
		lines = append(lines, renderVariable(v))
	}
	for _, r := range sortedResolvers(typ.Resolvers) {
		lines = append(lines, renderResolver(r))
	}
	return lines
}

func fieldDirectives(field *Field) []string {
	var lines []string
	for _, s := range sortedSources(field.Sources) {
		lines = append(lines, renderSource(s))
	}
	for _, r := range sortedResolvers(field.Resolvers) {
		lines = append(lines, renderResolver(r))
	}
	return lines
}

func renderSource(s *Source) string {
	if s.Name != "" {
		return "@source(subgraph: " + strconv.Quote(s.Subgraph) + ", name: " + strconv.Quote(s.Name) + ")"
	}
	return "@source(subgraph: " + strconv.Quote(s.Subgraph) + ")"
}

func renderVariable(v *Variable) string {
	return "@variable(name: " + strconv.Quote(v.Name) +
		", select: " + strconv.Quote(v.Select) +
		", subgraph: " + strconv.Quote(v.Subgraph) + ")"
}

func renderResolver(r *Resolver) string {
	return "@resolver(operation: " + strconv.Quote(r.Operation) +
		", kind: " + string(r.Kind) +
		", subgraph: " + strconv.Quote(r.Subgraph) + ")"
}

func sortedSources(sources []*Source) []*Source {
	out := append([]*Source(nil), sources...)
	sort.Slice(out, func(i, j int) bool { return out[i].Subgraph < out[j].Subgraph })
	return out
}

func sortedResolvers(resolvers []*Resolver) []*Resolver {
	out := append([]*Resolver(nil), resolvers...)
	sort.Slice(out, func(i, j int) bool { return out[i].Subgraph < out[j].Subgraph })
	return out
}

func sortedNames(names []string) []string {
	out := append([]string(nil), names...)
	sort.Strings(out)
	return out
}
