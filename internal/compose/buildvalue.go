package compose

import (
	"strconv"
	"strings"

	"github.com/Xemius/graphql-platform/internal/language"
)

// getStringArg returns the named string argument of a directive use,
// reporting a diagnostic when it is absent or not a string.
func (b *subgraphBuilder) getStringArg(dir *language.Directive, arg string) (string, bool) {
	node := dir.Arguments.ForName(arg)
	if node == nil {
		b.addDiagnostic(diagnosticMissingDirectiveArgument(dir.Name, arg, dir.Position))
		return "", false
	}
	if node.Value == nil || node.Value.Kind != language.StringValue {
		b.addDiagnostic(diagnosticExpectedString(dir.Name, arg, dir.Position))
		return "", false
	}
	return node.Value.Raw, true
}

// typeString renders a type reference with its subgraph-local names.
func typeString(t *language.Type) string {
	var s string
	if t.Elem != nil {
		s = "[" + typeString(t.Elem) + "]"
	} else {
		s = t.NamedType
	}
	if t.NonNull {
		s += "!"
	}
	return s
}

// isListType reports whether the outermost wrapper of a type
// reference, ignoring Non-Null, is a list.
func isListType(t *language.Type) bool {
	return t != nil && t.Elem != nil
}

// valueString renders a GraphQL value node back to literal text.
func valueString(v *language.Value) string {
	if v == nil {
		return ""
	}
	switch v.Kind {
	case language.StringValue, language.BlockValue:
		return strconv.Quote(v.Raw)
	case language.NullValue:
		return "null"
	case language.Variable:
		return "$" + v.Raw
	case language.ListValue:
		parts := make([]string, 0, len(v.Children))
		for _, child := range v.Children {
			parts = append(parts, valueString(child.Value))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case language.ObjectValue:
		parts := make([]string, 0, len(v.Children))
		for _, child := range v.Children {
			parts = append(parts, child.Name+": "+valueString(child.Value))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return v.Raw
	}
}
