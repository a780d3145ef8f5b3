package language

import "github.com/vektah/gqlparser/v2/ast"

type (
	SchemaDocument      = ast.SchemaDocument
	SchemaDefinition    = ast.SchemaDefinition
	Definition          = ast.Definition
	DefinitionList      = ast.DefinitionList
	FieldDefinition     = ast.FieldDefinition
	ArgumentDefinition  = ast.ArgumentDefinition
	EnumValueDefinition = ast.EnumValueDefinition
	Directive           = ast.Directive
	DirectiveList       = ast.DirectiveList
	Argument            = ast.Argument
	ArgumentList        = ast.ArgumentList
	Value               = ast.Value
	ChildValue          = ast.ChildValue
	Type                = ast.Type
	Position            = ast.Position
	QueryDocument       = ast.QueryDocument
	OperationDefinition = ast.OperationDefinition
	VariableDefinition  = ast.VariableDefinition
)

type DefinitionKind = ast.DefinitionKind

type Operation = ast.Operation

type ValueKind = ast.ValueKind

const (
	Query        Operation = ast.Query
	Mutation     Operation = ast.Mutation
	Subscription Operation = ast.Subscription

	Object      DefinitionKind = ast.Object
	Interface   DefinitionKind = ast.Interface
	Union       DefinitionKind = ast.Union
	Scalar      DefinitionKind = ast.Scalar
	Enum        DefinitionKind = ast.Enum
	InputObject DefinitionKind = ast.InputObject

	Variable     ValueKind = ast.Variable
	IntValue     ValueKind = ast.IntValue
	FloatValue   ValueKind = ast.FloatValue
	StringValue  ValueKind = ast.StringValue
	BlockValue   ValueKind = ast.BlockValue
	BooleanValue ValueKind = ast.BooleanValue
	NullValue    ValueKind = ast.NullValue
	EnumValue    ValueKind = ast.EnumValue
	ListValue    ValueKind = ast.ListValue
	ObjectValue  ValueKind = ast.ObjectValue
)
