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

// Package expression converts predicates sent by the coordinator into the
// typed expressions and subfield filters of the execution engine.
package expression

import (
	"fmt"
	"strings"

	"github.com/dolthub/go-native-worker/types"
)

// TypedExpr is an expression whose type is resolved.
type TypedExpr interface {
	fmt.Stringer
	Type() types.Type
}

// FieldAccess reads a column of the input row.
type FieldAccess struct {
	Name     string
	DataType types.Type
}

var _ TypedExpr = (*FieldAccess)(nil)

func (f *FieldAccess) Type() types.Type { return f.DataType }

func (f *FieldAccess) String() string { return f.Name }

// Constant is a literal value. A nil Value is null.
type Constant struct {
	DataType types.Type
	Value    interface{}
}

var _ TypedExpr = (*Constant)(nil)

func (c *Constant) Type() types.Type { return c.DataType }

func (c *Constant) String() string {
	if c.Value == nil {
		return "null:" + c.DataType.String()
	}
	return fmt.Sprintf("%v:%s", c.Value, c.DataType)
}

// Call applies a function or special form to its arguments.
type Call struct {
	Name       string
	ReturnType types.Type
	Args       []TypedExpr
}

var _ TypedExpr = (*Call)(nil)

func (c *Call) Type() types.Type { return c.ReturnType }

func (c *Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return c.Name + "(" + strings.Join(args, ", ") + ")"
}
