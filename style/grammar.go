// Package style parses inline style declarations, as found in
// HTML style attributes, into layout properties.
package style

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	styleLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "Comment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "Color", Pattern: `#[0-9A-Fa-f]+`},
		{Name: "Number", Pattern: `[-+]?(?:\d+\.\d*|\.\d+|\d+)(?:[A-Za-z]+|%)?`},
		{Name: "String", Pattern: `"[^"]*"|'[^']*'`},
		{Name: "Ident", Pattern: `-?[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Punct", Pattern: `[;:,/()!]`},
	})

	declarationsParser = participle.MustBuild[Declarations](
		participle.Lexer(styleLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(2),
	)
)

// Declarations is the root node of a style attribute.
type Declarations struct {
	Items []*Declaration `parser:"';'* ( @@ ';'* )*"`
}

// Declaration is one `name: value` pair.
type Declaration struct {
	Pos       lexer.Position
	Name      string  `parser:"@Ident ':'"`
	Terms     []*Term `parser:"@@+"`
	Important bool    `parser:"@( '!' 'important' )?"`
}

// Term is one component of a value.
type Term struct {
	Func   *Function `parser:"  @@"`
	Number *string   `parser:"| @Number"`
	Color  *string   `parser:"| @Color"`
	Quoted *string   `parser:"| @String"`
	Ident  *string   `parser:"| @Ident"`
	Slash  bool      `parser:"| @'/'"`
	Comma  bool      `parser:"| @','"`
}

// Function is a functional notation like minmax(10pt, 1fr).
type Function struct {
	Name string  `parser:"@Ident '('"`
	Args []*Term `parser:"@@* ')'"`
}

func (t *Term) String() string {
	switch {
	case t.Func != nil:
		args := make([]string, len(t.Func.Args))
		for i, a := range t.Func.Args {
			args[i] = a.String()
		}
		return t.Func.Name + "(" + strings.Join(args, " ") + ")"
	case t.Number != nil:
		return *t.Number
	case t.Color != nil:
		return *t.Color
	case t.Quoted != nil:
		return *t.Quoted
	case t.Ident != nil:
		return *t.Ident
	case t.Slash:
		return "/"
	case t.Comma:
		return ","
	default:
		return ""
	}
}

func (d *Declaration) value() string {
	parts := make([]string, len(d.Terms))
	for i, t := range d.Terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

// ParseDeclarations returns the syntax tree of `input`.
func ParseDeclarations(input string) (*Declarations, error) {
	decls, err := declarationsParser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("invalid style %q: %w", input, err)
	}
	return decls, nil
}
