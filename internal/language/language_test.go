package language_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Xemius/graphql-platform/internal/language"
)

func TestParseSchema(t *testing.T) {
	doc, err := language.ParseSchema("accounts.graphql", `
schema @rename(coordinate: "AccountUser", newName: "User") {
  query: Query
}

type Query {
  user(id: ID! @is(field: "id")): AccountUser! @private
}

type AccountUser @key(fields: "id") {
  id: ID!
}
`)
	require.NoError(t, err)
	require.Len(t, doc.Schema, 1)
	require.Len(t, doc.Schema[0].Directives, 1)
	require.Equal(t, "rename", doc.Schema[0].Directives[0].Name)
	require.Len(t, doc.Definitions, 2)

	query := doc.Definitions.ForName("Query")
	require.NotNil(t, query)
	require.Equal(t, language.Object, query.Kind)
	field := query.Fields.ForName("user")
	require.NotNil(t, field)
	require.NotNil(t, field.Directives.ForName("private"))
	arg := field.Arguments.ForName("id")
	require.NotNil(t, arg)
	is := arg.Directives.ForName("is")
	require.NotNil(t, is)
	require.Equal(t, "id", is.Arguments.ForName("field").Value.Raw)

	user := doc.Definitions.ForName("AccountUser")
	require.NotNil(t, user)
	require.NotNil(t, user.Directives.ForName("key"))
}

func TestParseSchemaError(t *testing.T) {
	_, err := language.ParseSchema("broken.graphql", "type {")
	require.Error(t, err)

	line, column := language.ErrorLocation(err)
	require.Equal(t, 1, line)
	require.Greater(t, column, 0)

	msg := language.ErrorMessage(err)
	require.NotEmpty(t, msg)
	require.NotContains(t, msg, "broken.graphql")
	require.Contains(t, err.Error(), msg)
}

func TestParseSchemaErrorLine(t *testing.T) {
	_, err := language.ParseSchema("multi.graphql", "type Query {\n  name String\n}")
	require.Error(t, err)

	line, _ := language.ErrorLocation(err)
	require.Equal(t, 2, line)
}

func TestParseQuery(t *testing.T) {
	doc, err := language.ParseQuery(`query($User_id: ID!) { user(id: $User_id) }`)
	require.NoError(t, err)
	require.Len(t, doc.Operations, 1)

	op := doc.Operations[0]
	require.Equal(t, language.Query, op.Operation)
	require.Len(t, op.VariableDefinitions, 1)
	require.Equal(t, "User_id", op.VariableDefinitions[0].Variable)

	_, err = language.ParseQuery("query {")
	require.Error(t, err)
}

func TestErrorHelpersPlainError(t *testing.T) {
	err := errors.New("disk unavailable")
	require.Equal(t, "disk unavailable", language.ErrorMessage(err))

	line, column := language.ErrorLocation(err)
	require.Zero(t, line)
	require.Zero(t, column)
}
