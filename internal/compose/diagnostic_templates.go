package compose

import (
	"fmt"

	"github.com/Xemius/graphql-platform/internal/language"
)

// Common reusable diagnostic constructors (template helpers)
// NOTE: Keep messages stable to avoid breaking snapshot tests.

func diagnosticParseFailure(subgraph, file string, err error) *Diagnostic {
	line, column := language.ErrorLocation(err)
	return &Diagnostic{
		Kind:    DiagnosticInvalidSchema,
		Message: fmt.Sprintf("Subgraph %q is not valid GraphQL: %s", subgraph, language.ErrorMessage(err)),
		File:    file,
		Line:    line,
		Column:  column,
	}
}

func diagnosticDuplicateSubgraph(name string) *Diagnostic {
	return &Diagnostic{
		Kind:       DiagnosticDuplicateSubgraph,
		Coordinate: name,
		Message:    fmt.Sprintf("Subgraph name %q is used more than once", name),
	}
}

func diagnosticDuplicateTypeDefinition(typeName, subgraph string, pos *language.Position) *Diagnostic {
	return diagnosticWithPosition(
		DiagnosticInvalidSchema,
		typeName,
		fmt.Sprintf("Type %q is defined more than once in subgraph %q", typeName, subgraph),
		pos,
	)
}

func diagnosticDuplicateField(coordinate, subgraph string, pos *language.Position) *Diagnostic {
	return diagnosticWithPosition(
		DiagnosticInvalidSchema,
		coordinate,
		fmt.Sprintf("Field %q is declared more than once in subgraph %q", coordinate, subgraph),
		pos,
	)
}

func diagnosticExtensionKindMismatch(typeName string, base, extension language.DefinitionKind, subgraph string, pos *language.Position) *Diagnostic {
	return diagnosticWithPosition(
		DiagnosticInvalidSchema,
		typeName,
		fmt.Sprintf("Extension of type %q in subgraph %q is declared as %s but the base type is %s",
			typeName, subgraph, extension, base),
		pos,
	)
}

func diagnosticSchemaRedefined(subgraph string, pos *language.Position) *Diagnostic {
	return diagnosticWithPosition(
		DiagnosticInvalidSchema,
		"",
		fmt.Sprintf("Subgraph %q defines more than one schema block", subgraph),
		pos,
	)
}

func diagnosticTypeKindConflict(typeName string, kindA language.DefinitionKind, subgraphA string, kindB language.DefinitionKind, subgraphB string, pos *language.Position) *Diagnostic {
	return diagnosticWithPosition(
		DiagnosticInvalidSchema,
		typeName,
		fmt.Sprintf("Type %q is declared as %s in subgraph %q but as %s in subgraph %q",
			typeName, kindA, subgraphA, kindB, subgraphB),
		pos,
	)
}

func diagnosticFieldTypeConflict(coordinate, typeA, subgraphA, typeB, subgraphB string, pos *language.Position) *Diagnostic {
	return diagnosticWithPosition(
		DiagnosticFieldTypeConflict,
		coordinate,
		fmt.Sprintf("Field %q is declared as %q in subgraph %q but as %q in subgraph %q",
			coordinate, typeA, subgraphA, typeB, subgraphB),
		pos,
	)
}

func diagnosticRootTypeNotFound(operation, typeName, subgraph string) *Diagnostic {
	return &Diagnostic{
		Kind:       DiagnosticInvalidSchema,
		Coordinate: typeName,
		Message:    fmt.Sprintf("Root %s type %q is not defined in subgraph %q", operation, typeName, subgraph),
	}
}

func diagnosticRootTypeNotObject(operation, typeName, subgraph string, pos *language.Position) *Diagnostic {
	return diagnosticWithPosition(
		DiagnosticInvalidSchema,
		typeName,
		fmt.Sprintf("Root %s type %q in subgraph %q must be an Object type", operation, typeName, subgraph),
		pos,
	)
}

func diagnosticMissingDirectiveArgument(directive, arg string, pos *language.Position) *Diagnostic {
	return diagnosticWithPosition(
		DiagnosticInvalidSchema,
		"",
		fmt.Sprintf("Directive @%s requires a %q argument", directive, arg),
		pos,
	)
}

func diagnosticExpectedString(directive, arg string, pos *language.Position) *Diagnostic {
	return diagnosticWithPosition(
		DiagnosticInvalidSchema,
		"",
		fmt.Sprintf("Argument %q of @%s must be a string value", arg, directive),
		pos,
	)
}

func diagnosticRenameUnknownType(typeName, subgraph string, pos *language.Position) *Diagnostic {
	return diagnosticWithPosition(
		DiagnosticInvalidSchema,
		typeName,
		fmt.Sprintf("@rename coordinate %q does not match any type in subgraph %q", typeName, subgraph),
		pos,
	)
}

func diagnosticConflictingRename(local, existing, proposed, subgraph string, pos *language.Position) *Diagnostic {
	return diagnosticWithPosition(
		DiagnosticInvalidSchema,
		local,
		fmt.Sprintf("Type %q in subgraph %q is renamed to both %q and %q", local, subgraph, existing, proposed),
		pos,
	)
}

func diagnosticIsMissingField(coordinate string, pos *language.Position) *Diagnostic {
	return diagnosticWithPosition(
		DiagnosticInvalidIsDirective,
		coordinate,
		fmt.Sprintf("@is on %s requires a \"field\" argument", coordinate),
		pos,
	)
}

func diagnosticIsExpectedString(coordinate string, pos *language.Position) *Diagnostic {
	return diagnosticWithPosition(
		DiagnosticInvalidIsDirective,
		coordinate,
		fmt.Sprintf("Argument \"field\" of @is on %s must be a string value", coordinate),
		pos,
	)
}

func diagnosticIsUnknownReturnType(coordinate, returnType, subgraph string, pos *language.Position) *Diagnostic {
	return diagnosticWithPosition(
		DiagnosticInvalidIsDirective,
		coordinate,
		fmt.Sprintf("@is on %s references return type %q which is not defined in subgraph %q",
			coordinate, returnType, subgraph),
		pos,
	)
}

func diagnosticIsOnNonEntityReturn(coordinate, returnType, subgraph string, pos *language.Position) *Diagnostic {
	return diagnosticWithPosition(
		DiagnosticInvalidIsDirective,
		coordinate,
		fmt.Sprintf("@is on %s requires the field to return an object type, but subgraph %q declares %q",
			coordinate, subgraph, returnType),
		pos,
	)
}

func diagnosticIsPathNotFound(coordinate, path, entityType, subgraph string, pos *language.Position) *Diagnostic {
	return diagnosticWithPosition(
		DiagnosticInvalidIsDirective,
		coordinate,
		fmt.Sprintf("@is(field: %q) on %s does not resolve to a field of type %q in subgraph %q",
			path, coordinate, entityType, subgraph),
		pos,
	)
}

func diagnosticNoEntities() *Diagnostic {
	return &Diagnostic{
		Kind:    DiagnosticNoEntities,
		Message: "No entity types found: no type carries @key and no Query field argument carries @is",
	}
}
