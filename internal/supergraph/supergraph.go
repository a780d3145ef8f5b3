package supergraph

// Document is a composed supergraph: every named type merged from the
// subgraph set, annotated with the resolution metadata the execution
// runtime consumes.
type Document struct {
	Types map[string]*Type
}

// Type is a merged named type together with its synthesized directives.
type Type struct {
	Name          string
	Kind          TypeKind
	Description   string
	Interfaces    []string     // For OBJECT and INTERFACE
	PossibleTypes []string     // For UNION
	EnumValues    []*EnumValue // For ENUM
	Fields        []*Field     // For OBJECT, INTERFACE and INPUT_OBJECT

	Sources   []*Source
	Variables []*Variable
	Resolvers []*Resolver
}

// TypeKind represents the kind of GraphQL type
type TypeKind string

const (
	TypeKindScalar      TypeKind = "SCALAR"
	TypeKindObject      TypeKind = "OBJECT"
	TypeKindInterface   TypeKind = "INTERFACE"
	TypeKindUnion       TypeKind = "UNION"
	TypeKindEnum        TypeKind = "ENUM"
	TypeKindInputObject TypeKind = "INPUT_OBJECT"
)

// Field is a merged field. Default carries the rendered GraphQL literal
// for input object fields and is empty otherwise.
type Field struct {
	Name        string
	Description string
	Arguments   []*Argument
	Type        *TypeRef
	Default     string

	Sources   []*Source
	Resolvers []*Resolver
}

type Argument struct {
	Name    string
	Type    *TypeRef
	Default string
}

type EnumValue struct {
	Name        string
	Description string
}

// Source records which subgraph contributed a type or field. Name is
// the subgraph-local name when it differs from the canonical one.
type Source struct {
	Subgraph string
	Name     string
}

// Variable is one @variable binding: the synthesized operation variable
// Name selects the Select field path on the owning entity in Subgraph.
type Variable struct {
	Name     string
	Select   string
	Subgraph string
}

// Resolver is one @resolver binding: a GraphQL operation the runtime
// executes against Subgraph to resolve the annotated type or field.
type Resolver struct {
	Operation string
	Kind      ResolverKind
	Subgraph  string
}

type ResolverKind string

const (
	ResolverKindFetch ResolverKind = "FETCH"
	ResolverKindBatch ResolverKind = "BATCH"
)

// TypeRef represents a reference to a type (can be wrapped)
type TypeRef struct {
	Kind   TypeRefKind
	OfType *TypeRef // For List and NonNull
	Named  string   // For named types
}

type TypeRefKind string

const (
	TypeRefKindNamed   TypeRefKind = "NAMED"
	TypeRefKindList    TypeRefKind = "LIST"
	TypeRefKindNonNull TypeRefKind = "NON_NULL"
)

func NamedType(name string) *TypeRef  { return &TypeRef{Kind: TypeRefKindNamed, Named: name} }
func ListType(t *TypeRef) *TypeRef    { return &TypeRef{Kind: TypeRefKindList, OfType: t} }
func NonNullType(t *TypeRef) *TypeRef { return &TypeRef{Kind: TypeRefKindNonNull, OfType: t} }

// String renders the reference in SDL notation.
func (t *TypeRef) String() string {
	if t == nil {
		return ""
	}
	switch t.Kind {
	case TypeRefKindList:
		return "[" + t.OfType.String() + "]"
	case TypeRefKindNonNull:
		return t.OfType.String() + "!"
	default:
		return t.Named
	}
}

// IsList reports whether the reference is a list type, looking through
// one layer of Non-Null wrapping.
func (t *TypeRef) IsList() bool {
	if t == nil {
		return false
	}
	if t.Kind == TypeRefKindList {
		return true
	}
	return t.Kind == TypeRefKindNonNull && t.OfType != nil && t.OfType.Kind == TypeRefKindList
}

// Unwrap removes one layer of Non-Null or List wrapping.
func (t *TypeRef) Unwrap() *TypeRef {
	if t.Kind == TypeRefKindNonNull || t.Kind == TypeRefKindList {
		return t.OfType
	}
	return t
}

// NamedTypeOf returns the innermost named type of the reference.
func (t *TypeRef) NamedTypeOf() string {
	current := t
	for current != nil {
		if current.Named != "" {
			return current.Named
		}
		current = current.OfType
	}
	return ""
}
