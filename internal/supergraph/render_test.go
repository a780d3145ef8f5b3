package supergraph

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRenderNil(t *testing.T) {
	if got := Render(nil); got != "" {
		t.Fatalf("expected empty output for nil document, got %q", got)
	}
}

func TestRender(t *testing.T) {
	type testCase struct {
		name  string
		types map[string]*Type
		want  string
	}

	for _, tc := range []testCase{
		{
			name: "types_sorted_by_name",
			types: map[string]*Type{
				"Beta":  {Name: "Beta", Kind: TypeKindScalar},
				"Alpha": {Name: "Alpha", Kind: TypeKindScalar},
			},
			want: `scalar Alpha

scalar Beta
`,
		},
		{
			name: "scalar_with_sources",
			types: map[string]*Type{
				"ISBN": {
					Name: "ISBN",
					Kind: TypeKindScalar,
					Sources: []*Source{
						{Subgraph: "media"},
						{Subgraph: "library"},
					},
				},
			},
			want: `scalar ISBN @source(subgraph: "library") @source(subgraph: "media")
`,
		},
		{
			name: "union_members_sorted",
			types: map[string]*Type{
				"SearchResult": {
					Name:          "SearchResult",
					Kind:          TypeKindUnion,
					PossibleTypes: []string{"Magazine", "Book"},
				},
			},
			want: `union SearchResult = Book | Magazine
`,
		},
		{
			name: "enum_with_description",
			types: map[string]*Type{
				"Format": {
					Name:        "Format",
					Kind:        TypeKindEnum,
					Description: "Printable media kinds.",
					EnumValues: []*EnumValue{
						{Name: "PDF"},
						{Name: "EPUB"},
					},
				},
			},
			want: `"""
Printable media kinds.
"""
enum Format {
  EPUB
  PDF
}
`,
		},
		{
			name: "object_with_arguments_and_default",
			types: map[string]*Type{
				"Query": {
					Name: "Query",
					Kind: TypeKindObject,
					Fields: []*Field{
						{
							Name: "topReviews",
							Arguments: []*Argument{
								{Name: "limit", Type: NamedType("Int"), Default: "10"},
							},
							Type: ListType(NonNullType(NamedType("Review"))),
						},
					},
				},
			},
			want: `type Query {
  topReviews(limit: Int = 10): [Review!]
}
`,
		},
		{
			name: "entity_directive_block",
			types: map[string]*Type{
				"Entity": {
					Name: "Entity",
					Kind: TypeKindObject,
					Fields: []*Field{
						{
							Name: "id",
							Type: NonNullType(NamedType("ID")),
							Sources: []*Source{
								{Subgraph: "beta"},
								{Subgraph: "alpha"},
							},
						},
					},
					Sources: []*Source{
						{Subgraph: "beta"},
						{Subgraph: "alpha"},
					},
					Variables: []*Variable{
						{Name: "Entity_id", Select: "id", Subgraph: "beta"},
						{Name: "Entity_id", Select: "id", Subgraph: "alpha"},
					},
					Resolvers: []*Resolver{
						{Operation: "query($Entity_id: ID!) { entity(id: $Entity_id) }", Kind: ResolverKindBatch, Subgraph: "beta"},
						{Operation: "query($Entity_id: ID!) { entity(id: $Entity_id) }", Kind: ResolverKindFetch, Subgraph: "alpha"},
					},
				},
			},
			want: `type Entity
  @source(subgraph: "alpha")
  @source(subgraph: "beta")
  @variable(name: "Entity_id", select: "id", subgraph: "alpha")
  @variable(name: "Entity_id", select: "id", subgraph: "beta")
  @resolver(operation: "query($Entity_id: ID!) { entity(id: $Entity_id) }", kind: FETCH, subgraph: "alpha")
  @resolver(operation: "query($Entity_id: ID!) { entity(id: $Entity_id) }", kind: BATCH, subgraph: "beta") {
  id: ID!
    @source(subgraph: "alpha")
    @source(subgraph: "beta")
}
`,
		},
		{
			name: "field_resolver_without_sources",
			types: map[string]*Type{
				"Query": {
					Name: "Query",
					Kind: TypeKindObject,
					Fields: []*Field{
						{
							Name: "user",
							Arguments: []*Argument{
								{Name: "id", Type: NonNullType(NamedType("ID"))},
							},
							Type: NonNullType(NamedType("User")),
							Resolvers: []*Resolver{
								{Operation: "query($id: ID!) { user(id: $id) }", Kind: ResolverKindFetch, Subgraph: "accounts"},
							},
						},
					},
				},
			},
			want: `type Query {
  user(id: ID!): User!
    @resolver(operation: "query($id: ID!) { user(id: $id) }", kind: FETCH, subgraph: "accounts")
}
`,
		},
		{
			name: "input_object_fields_sorted",
			types: map[string]*Type{
				"SearchFilter": {
					Name: "SearchFilter",
					Kind: TypeKindInputObject,
					Fields: []*Field{
						{Name: "text", Type: NonNullType(NamedType("String"))},
						{Name: "format", Type: NamedType("Format")},
					},
				},
			},
			want: `input SearchFilter {
  format: Format
  text: String!
}
`,
		},
		{
			name: "interface_with_implements",
			types: map[string]*Type{
				"Book": {
					Name:       "Book",
					Kind:       TypeKindObject,
					Interfaces: []string{"Publication", "Node"},
					Fields: []*Field{
						{Name: "isbn", Type: NonNullType(NamedType("ISBN"))},
					},
				},
			},
			want: `type Book implements Node & Publication {
  isbn: ISBN!
}
`,
		},
		{
			name: "empty_type_has_no_braces",
			types: map[string]*Type{
				"Empty": {
					Name: "Empty",
					Kind: TypeKindObject,
					Sources: []*Source{
						{Subgraph: "a"},
						{Subgraph: "b"},
					},
				},
			},
			want: `type Empty
  @source(subgraph: "a")
  @source(subgraph: "b")
`,
		},
		{
			name: "renamed_source_records_original_name",
			types: map[string]*Type{
				"Product": {
					Name: "Product",
					Kind: TypeKindObject,
					Fields: []*Field{
						{Name: "sku", Type: NonNullType(NamedType("ID")), Sources: []*Source{{Subgraph: "catalog"}}},
					},
					Sources: []*Source{
						{Subgraph: "catalog", Name: "CatalogProduct"},
					},
				},
			},
			want: `type Product
  @source(subgraph: "catalog", name: "CatalogProduct") {
  sku: ID!
    @source(subgraph: "catalog")
}
`,
		},
		{
			name: "description_escapes_triple_quote",
			types: map[string]*Type{
				"Weird": {
					Name:        "Weird",
					Kind:        TypeKindScalar,
					Description: "Uses \"\"\" inside.\nSecond line.",
				},
			},
			want: `"""
Uses \""" inside.
Second line.
"""
scalar Weird
`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := Render(&Document{Types: tc.types})
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("rendered SDL mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderDeterministic(t *testing.T) {
	doc := &Document{Types: map[string]*Type{
		"User": {
			Name: "User",
			Kind: TypeKindObject,
			Fields: []*Field{
				{Name: "name", Type: NamedType("String"), Sources: []*Source{{Subgraph: "b"}, {Subgraph: "a"}}},
				{Name: "id", Type: NonNullType(NamedType("ID")), Sources: []*Source{{Subgraph: "a"}, {Subgraph: "b"}}},
			},
			Sources: []*Source{{Subgraph: "b"}, {Subgraph: "a"}},
		},
		"Query": {Name: "Query", Kind: TypeKindObject, Fields: []*Field{
			{Name: "users", Type: ListType(NamedType("User"))},
		}},
	}}
	first := Render(doc)
	for range 20 {
		if got := Render(doc); got != first {
			t.Fatalf("rendering is not stable:\nfirst:\n%s\ngot:\n%s", first, got)
		}
	}
}

func TestTypeRef(t *testing.T) {
	ref := NonNullType(ListType(NonNullType(NamedType("Entity"))))

	if got := ref.String(); got != "[Entity!]!" {
		t.Errorf("String() = %q, want %q", got, "[Entity!]!")
	}
	if !ref.IsList() {
		t.Error("IsList() = false for non-null list")
	}
	if NamedType("ID").IsList() {
		t.Error("IsList() = true for named type")
	}
	if got := ref.NamedTypeOf(); got != "Entity" {
		t.Errorf("NamedTypeOf() = %q, want %q", got, "Entity")
	}
	if got := ref.Unwrap().String(); got != "[Entity!]" {
		t.Errorf("Unwrap().String() = %q, want %q", got, "[Entity!]")
	}
}
