// Copyright 2026 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package types

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Parser parses type signatures sent by the coordinator.
type Parser interface {
	Parse(signature string) (Type, error)
}

// SignatureParser parses both Hive style signatures (array<int>,
// struct<a:string>) and Presto style signatures (array(integer),
// row(a varchar)).
type SignatureParser struct{}

var _ Parser = SignatureParser{}

// NewParser returns the default type parser.
func NewParser() SignatureParser {
	return SignatureParser{}
}

type typeNode struct {
	Array  *arrayNode  `  @@`
	Map    *mapNode    `| @@`
	Row    *rowNode    `| @@`
	Scalar *scalarNode `| @@`
}

type arrayNode struct {
	Open  string    `"array" @("<" | "(")`
	Elem  *typeNode `@@`
	Close string    `@(">" | ")")`
}

type mapNode struct {
	Open  string    `"map" @("<" | "(")`
	Key   *typeNode `@@ ","`
	Value *typeNode `@@`
	Close string    `@(">" | ")")`
}

type rowNode struct {
	Open   string       `("struct" | "row") @("<" | "(")`
	Fields []*fieldNode `( @@ ( "," @@ )* )?`
	Close  string       `@(">" | ")")`
}

type fieldNode struct {
	Name string    `@(Ident | Quoted)`
	Type *typeNode `":"? @@`
}

type scalarNode struct {
	Name   string `@Ident`
	Params []int  `( "(" @Int ( "," @Int )* ")" )?`
}

var (
	signatureLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_$]*`},
		{Name: "Quoted", Pattern: `"[^"]*"`},
		{Name: "Int", Pattern: `\d+`},
		{Name: "Punct", Pattern: `[<>(),:]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	signatureParser = participle.MustBuild[typeNode](
		participle.Lexer(signatureLexer),
		participle.Unquote("Quoted"),
		participle.CaseInsensitive("Ident"),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)
)

// Parse implements the Parser interface.
func (SignatureParser) Parse(signature string) (Type, error) {
	node, err := signatureParser.ParseString("", strings.TrimSpace(signature))
	if err != nil {
		return nil, ErrInvalidTypeSignature.Wrap(err, signature)
	}

	t, err := node.toType()
	if err != nil {
		return nil, ErrInvalidTypeSignature.Wrap(err, signature)
	}
	return t, nil
}

// MustParse parses the signature and panics on error.
func MustParse(signature string) Type {
	t, err := NewParser().Parse(signature)
	if err != nil {
		panic(err)
	}
	return t
}

var closing = map[string]string{"<": ">", "(": ")"}

func checkBrackets(open, close string) error {
	if closing[open] != close {
		return ErrInvalidTypeSignature.New(open + "..." + close)
	}
	return nil
}

func (n *typeNode) toType() (Type, error) {
	switch {
	case n.Array != nil:
		if err := checkBrackets(n.Array.Open, n.Array.Close); err != nil {
			return nil, err
		}
		elem, err := n.Array.Elem.toType()
		if err != nil {
			return nil, err
		}
		return Array(elem), nil
	case n.Map != nil:
		if err := checkBrackets(n.Map.Open, n.Map.Close); err != nil {
			return nil, err
		}
		key, err := n.Map.Key.toType()
		if err != nil {
			return nil, err
		}
		value, err := n.Map.Value.toType()
		if err != nil {
			return nil, err
		}
		return Map(key, value), nil
	case n.Row != nil:
		if err := checkBrackets(n.Row.Open, n.Row.Close); err != nil {
			return nil, err
		}
		names := make([]string, len(n.Row.Fields))
		fields := make([]Type, len(n.Row.Fields))
		for i, f := range n.Row.Fields {
			t, err := f.Type.toType()
			if err != nil {
				return nil, err
			}
			names[i] = f.Name
			fields[i] = t
		}
		return Row(names, fields), nil
	default:
		return n.Scalar.toType()
	}
}

func (n *scalarNode) toType() (Type, error) {
	name := strings.ToLower(n.Name)
	param := func(i, def int) int {
		if i < len(n.Params) {
			return n.Params[i]
		}
		return def
	}

	var t Type
	switch name {
	case "boolean":
		t = Boolean
	case "tinyint":
		t = TinyInt
	case "smallint":
		t = SmallInt
	case "int", "integer":
		t = Integer
	case "bigint":
		t = BigInt
	case "float", "real":
		t = Real
	case "double":
		t = Double
	case "string":
		t = Varchar(0)
	case "varchar":
		return Varchar(param(0, 0)), checkParams(n, 1)
	case "char":
		return Char(param(0, 1)), checkParams(n, 1)
	case "binary", "varbinary":
		t = Varbinary
	case "date":
		t = Date
	case "timestamp":
		t = Timestamp
	case "decimal":
		return Decimal(param(0, 10), param(1, 0)), checkParams(n, 2)
	default:
		return nil, ErrUnknownType.New(n.Name)
	}

	return t, checkParams(n, 0)
}

func checkParams(n *scalarNode, max int) error {
	if len(n.Params) > max {
		return ErrInvalidTypeSignature.New(n.Name)
	}
	return nil
}

// FieldNamesToLowerCase returns t with the field names of every nested row
// type lower cased.
func FieldNamesToLowerCase(t Type) Type {
	switch t := t.(type) {
	case *ArrayType:
		return Array(FieldNamesToLowerCase(t.Elem))
	case *MapType:
		return Map(FieldNamesToLowerCase(t.Key), FieldNamesToLowerCase(t.Value))
	case *RowType:
		lower := cases.Lower(language.Und)
		names := make([]string, len(t.Names))
		fields := make([]Type, len(t.Types))
		for i := range t.Names {
			names[i] = lower.String(t.Names[i])
			fields[i] = FieldNamesToLowerCase(t.Types[i])
		}
		return Row(names, fields)
	default:
		return t
	}
}
