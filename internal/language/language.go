package language

import (
	"errors"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/parser"
)

func ParseSchema(name, source string) (*SchemaDocument, error) {
	doc, err := parser.ParseSchema(&ast.Source{Name: name, Input: source})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func ParseQuery(source string) (*QueryDocument, error) {
	doc, err := parser.ParseQuery(&ast.Source{Input: source})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ErrorMessage unwraps the bare parser message, without the
// "name:line:" prefix gqlerror renders.
func ErrorMessage(err error) string {
	var gqlErr *gqlerror.Error
	if errors.As(err, &gqlErr) {
		return gqlErr.Message
	}
	return err.Error()
}

// ErrorLocation reports the first source location attached to a parse
// error, or zeros when the error carries none.
func ErrorLocation(err error) (line, column int) {
	var gqlErr *gqlerror.Error
	if errors.As(err, &gqlErr) && len(gqlErr.Locations) > 0 {
		return gqlErr.Locations[0].Line, gqlErr.Locations[0].Column
	}
	return 0, 0
}
