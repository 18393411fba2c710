// Copyright 2018 The CUE Authors
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

package ast

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/heimskr/mead/errors"
	"github.com/heimskr/mead/scope"
	"github.com/heimskr/mead/token"
	"github.com/heimskr/mead/types"
)

// TypeOf computes the static type of the expression rooted at n,
// looking up names through sc. It returns an error the first time a
// sub-expression fails to resolve or type-check, matching spec.md 7's
// "Resolution/Type errors ... surfaced immediately" (no error recovery
// within a single expression).
func (n *Node) TypeOf(sc *scope.Scope) (*types.Type, error) {
	switch n.Kind {
	case Identifier:
		// Identifiers denote l-values: typeOf wraps the variable's
		// declared type in an LReference.
		v, ok := sc.Variable(n.Tok.Lexeme)
		if !ok {
			return nil, errors.NewPosf(n.Tok.Pos, "undefined identifier %q", n.Tok.Lexeme)
		}
		return types.NewLReference(v.Type), nil

	case Number:
		return numberType(n)

	case String:
		return types.NewPointer(types.NewInt(8, false).SetConst(true)), nil

	case Binary:
		return binaryType(n, sc)

	case FunctionCall:
		return functionCallType(n, sc)

	case ConstructorCall:
		return n.Child(0).ToType(sc.Namespace)

	case Cast:
		return n.Child(0).ToType(sc.Namespace)

	case Sizeof:
		return types.NewInt(64, false), nil

	case Subscript:
		baseType, err := decayedBaseType(n.Child(0), sc)
		if err != nil {
			return nil, err
		}
		if baseType.Kind() != types.Pointer {
			return nil, errors.NewPosf(n.Tok.Pos, "cannot subscript a non-pointer type %s", baseType)
		}
		return baseType.Dereference(), nil

	case AccessMember:
		return accessMemberType(n, sc)

	case Deref:
		baseType, err := decayedBaseType(n.Child(0), sc)
		if err != nil {
			return nil, err
		}
		if baseType.Kind() != types.Pointer {
			return nil, errors.NewPosf(n.Tok.Pos, "cannot dereference a non-pointer type %s", baseType)
		}
		return baseType.Dereference(), nil

	case GetAddress:
		baseType, err := decayedBaseType(n.Child(0), sc)
		if err != nil {
			return nil, err
		}
		return types.NewPointer(baseType), nil

	case UnaryPlus, UnaryMinus, LogicalNot, BitwiseNot,
		PrefixInc, PrefixDec, PostfixInc, PostfixDec:
		return n.Child(0).TypeOf(sc)

	case SingleNew:
		sub, err := n.Child(0).ToType(sc.Namespace)
		if err != nil {
			return nil, err
		}
		return types.NewPointer(sub), nil

	case ArrayNew:
		sub, err := n.Child(0).ToType(sc.Namespace)
		if err != nil {
			return nil, err
		}
		return types.NewPointer(sub), nil

	case Delete:
		return types.NewVoid(), nil

	case Assign, CompoundAssign:
		return n.Child(0).TypeOf(sc)

	case ConditionalExpression:
		return conditionalType(n, sc)

	case Comma:
		return n.Children()[len(n.Children())-1].TypeOf(sc)

	case Block:
		return blockType(n, sc)
	}
	return nil, errors.NewPosf(n.Tok.Pos, "%s has no type", n.Kind)
}

// decayedBaseType computes n's type and strips any l-value reference
// wrapper, mirroring lvalue-to-rvalue decay: postfix operators like
// Subscript/Deref/GetAddress care about the underlying Pointer/Class
// shape, not whether the operand happens to be a bare identifier.
func decayedBaseType(n *Node, sc *scope.Scope) (*types.Type, error) {
	t, err := n.TypeOf(sc)
	if err != nil {
		return nil, err
	}
	return t.UnwrapLReference(), nil
}

func binaryType(n *Node, sc *scope.Scope) (*types.Type, error) {
	lhs, err := decayedBaseType(n.Child(0), sc)
	if err != nil {
		return nil, err
	}
	rhs, err := decayedBaseType(n.Child(1), sc)
	if err != nil {
		return nil, err
	}
	// Common-type algorithm grounded on original_source/src/node/Binary.cpp:
	// prefer the side the other can convert into; if neither converts,
	// the expression has no valid type.
	if rhs.IsConvertibleTo(lhs) {
		return lhs, nil
	}
	if lhs.IsConvertibleTo(rhs) {
		return rhs, nil
	}
	return nil, errors.NewPosf(n.Tok.Pos, "incompatible operand types %s and %s", lhs, rhs)
}

func functionCallType(n *Node, sc *scope.Scope) (*types.Type, error) {
	callee := n.Child(0)
	if callee.Kind != Identifier {
		return nil, errors.NewPosf(n.Tok.Pos, "function call target must be an identifier")
	}
	args := n.Children()[1:]
	overloads := sc.Namespace.Functions(callee.Tok.Lexeme)
	var matches []*scope.FunctionSignature
	for _, o := range overloads {
		if len(o.Params) == len(args) {
			matches = append(matches, o)
		}
	}
	switch len(matches) {
	case 0:
		return nil, errors.NewPosf(n.Tok.Pos, "no overload of %q takes %d argument(s)", callee.Tok.Lexeme, len(args))
	case 1:
		return matches[0].ReturnType, nil
	default:
		return nil, errors.NewPosf(n.Tok.Pos, "call to %q is ambiguous among %d overloads", callee.Tok.Lexeme, len(matches))
	}
}

func accessMemberType(n *Node, sc *scope.Scope) (*types.Type, error) {
	baseType, err := decayedBaseType(n.Child(0), sc)
	if err != nil {
		return nil, err
	}
	if baseType.Kind() != types.Class {
		return nil, errors.NewPosf(n.Tok.Pos, "cannot access member %q of non-class type %s", n.Tok.Lexeme, baseType)
	}
	field, ok := baseType.Fields()[n.Tok.Lexeme]
	if !ok {
		return nil, errors.NewPosf(n.Tok.Pos, "type %s has no field %q", baseType, n.Tok.Lexeme)
	}
	return field, nil
}

// numberType implements spec.md 4.2's rule for literal typing: the
// smallest signed int type that holds the literal's value, const
// qualified (superseding original_source's fixed i64-for-everything
// placeholder, flagged in spec.md 9 as likely unintentional).
func numberType(n *Node) (*types.Type, error) {
	switch n.Tok.Kind {
	case token.FloatLiteral:
		return nil, errors.NewPosf(n.Tok.Pos, "floating-point types are not part of the type model")
	case token.IntegerLiteral, token.CharLiteral:
		v, err := literalValue(n.Tok)
		if err != nil {
			return nil, err
		}
		return types.NewInt(smallestSignedWidth(v), true).SetConst(true), nil
	}
	return nil, errors.NewPosf(n.Tok.Pos, "%s is not a valid literal kind", n.Tok.Kind)
}

func smallestSignedWidth(v uint64) int {
	switch {
	case v <= 1<<7-1:
		return 8
	case v <= 1<<15-1:
		return 16
	case v <= 1<<31-1:
		return 32
	default:
		return 64
	}
}

// literalValue computes the numeric value of an IntegerLiteral or
// CharLiteral token's lexeme. Integer literals may use the hex ("0x"),
// octal ("0...") or decimal forms with "'" digit separators described
// in spec.md 4.1; char literals contribute the ordinal value of their
// (possibly escaped) single character.
func literalValue(tok token.Token) (uint64, error) {
	lex := tok.Lexeme
	if tok.Kind == token.CharLiteral {
		return charLiteralValue(tok)
	}
	clean := strings.ReplaceAll(lex, "'", "")
	var base int
	switch {
	case strings.HasPrefix(clean, "0x") || strings.HasPrefix(clean, "0X"):
		clean, base = clean[2:], 16
	case len(clean) > 1 && clean[0] == '0':
		clean, base = clean[1:], 8
	default:
		base = 10
	}
	v, err := strconv.ParseUint(clean, base, 64)
	if err != nil {
		return 0, errors.NewPosf(tok.Pos, "malformed integer literal %q", lex)
	}
	return v, nil
}

func charLiteralValue(tok token.Token) (uint64, error) {
	inner := tok.Lexeme
	if len(inner) >= 2 {
		inner = inner[1 : len(inner)-1]
	}
	if len(inner) == 0 {
		return 0, errors.NewPosf(tok.Pos, "empty char literal")
	}
	if inner[0] != '\\' {
		r, _ := utf8.DecodeRuneInString(inner)
		return uint64(r), nil
	}
	if len(inner) < 2 {
		return 0, errors.NewPosf(tok.Pos, "malformed char literal %q", tok.Lexeme)
	}
	switch inner[1] {
	case '0':
		return 0, nil
	case 'a':
		return 7, nil
	case 'b':
		return 8, nil
	case 'e':
		return 27, nil
	case 'f':
		return 12, nil
	case 'n':
		return 10, nil
	case 'r':
		return 13, nil
	case 't':
		return 9, nil
	case '\\', '\'':
		return uint64(inner[1]), nil
	case 'x':
		if len(inner) < 4 {
			return 0, errors.NewPosf(tok.Pos, "malformed \\x escape in %q", tok.Lexeme)
		}
		v, err := strconv.ParseUint(inner[2:4], 16, 8)
		if err != nil {
			return 0, errors.NewPosf(tok.Pos, "malformed \\x escape in %q", tok.Lexeme)
		}
		return v, nil
	}
	return 0, errors.NewPosf(tok.Pos, "unrecognized escape in %q", tok.Lexeme)
}

func conditionalType(n *Node, sc *scope.Scope) (*types.Type, error) {
	then, err := n.Child(1).TypeOf(sc)
	if err != nil {
		return nil, err
	}
	if len(n.Children()) < 3 {
		return types.NewVoid(), nil
	}
	els, err := n.Child(2).TypeOf(sc)
	if err != nil {
		return nil, err
	}
	if els.IsConvertibleTo(then) {
		return then, nil
	}
	if then.IsConvertibleTo(els) {
		return els, nil
	}
	return nil, errors.NewPosf(n.Tok.Pos, "if-expression branches have incompatible types %s and %s", then, els)
}

// blockType is a Block node's value when used as an expression (the
// then/else arms of a ConditionalExpression): the type of its final
// expression-statement, or void if empty or the final statement carries
// no value.
func blockType(n *Node, sc *scope.Scope) (*types.Type, error) {
	children := n.Children()
	if len(children) == 0 {
		return types.NewVoid(), nil
	}
	last := children[len(children)-1]
	if last.Kind != ExpressionStatement {
		return types.NewVoid(), nil
	}
	return last.Child(0).TypeOf(sc)
}

// IsConstant reports whether the expression rooted at n can be folded
// to a compile-time constant, matching original_source/src/node/
// Binary.cpp's rule that a binary expression is constant only if both
// operands are constant and the expression's type is valid.
func (n *Node) IsConstant(sc *scope.Scope) (bool, error) {
	switch n.Kind {
	case Number, String:
		return true, nil

	case Identifier:
		// Variable references are never themselves compile-time
		// constants; Mead has no const-evaluated variable bindings.
		return false, nil

	case Binary:
		lhsConst, err := n.Child(0).IsConstant(sc)
		if err != nil {
			return false, err
		}
		rhsConst, err := n.Child(1).IsConstant(sc)
		if err != nil {
			return false, err
		}
		if !lhsConst || !rhsConst {
			return false, nil
		}
		_, err = n.TypeOf(sc)
		return err == nil, nil

	case UnaryPlus, UnaryMinus, LogicalNot, BitwiseNot:
		return n.Child(0).IsConstant(sc)

	case Cast:
		return n.Child(1).IsConstant(sc)

	case Sizeof:
		return true, nil

	case Comma:
		for _, c := range n.Children() {
			ok, err := c.IsConstant(sc)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil

	case ConditionalExpression:
		cond, err := n.Child(0).IsConstant(sc)
		if err != nil || !cond {
			return false, err
		}
		then, err := n.Child(1).TypeOf(sc) // presence check only
		_ = then
		if err != nil {
			return false, err
		}
		if len(n.Children()) == 3 {
			if _, err := n.Child(2).TypeOf(sc); err != nil {
				return false, err
			}
		}
		return true, nil
	}
	return false, nil
}

// Render renders n back into Mead source-like text. Compile's textual
// code generation (see stmt.go) uses it for every emitted expression.
func Render(n *Node) string {
	if n == nil {
		return ""
	}
	switch n.Kind {
	case Identifier, Number, String:
		return n.Tok.Lexeme
	case Binary:
		return Render(n.Child(0)) + " " + n.Tok.Lexeme + " " + Render(n.Child(1))
	case FunctionCall, ConstructorCall:
		var args []string
		for _, c := range n.Children()[1:] {
			args = append(args, Render(c))
		}
		return Render(n.Child(0)) + "(" + strings.Join(args, ", ") + ")"
	case Cast:
		return "cast<" + renderType(n.Child(0)) + ">(" + Render(n.Child(1)) + ")"
	case Sizeof:
		return "sizeof(" + Render(n.Child(0)) + ")"
	case Subscript:
		return Render(n.Child(0)) + "[" + Render(n.Child(1)) + "]"
	case AccessMember:
		return Render(n.Child(0)) + "." + n.Tok.Lexeme
	case Deref:
		return Render(n.Child(0)) + ".*"
	case GetAddress:
		return Render(n.Child(0)) + ".&"
	case UnaryPlus:
		return "+" + Render(n.Child(0))
	case UnaryMinus:
		return "-" + Render(n.Child(0))
	case LogicalNot:
		return "!" + Render(n.Child(0))
	case BitwiseNot:
		return "~" + Render(n.Child(0))
	case PrefixInc:
		return "++" + Render(n.Child(0))
	case PrefixDec:
		return "--" + Render(n.Child(0))
	case PostfixInc:
		return Render(n.Child(0)) + "++"
	case PostfixDec:
		return Render(n.Child(0)) + "--"
	case SingleNew:
		var args []string
		for _, c := range n.Children()[1:] {
			args = append(args, Render(c))
		}
		return "new " + renderType(n.Child(0)) + "(" + strings.Join(args, ", ") + ")"
	case ArrayNew:
		return "new " + renderType(n.Child(0)) + "[" + Render(n.Child(1)) + "]"
	case Delete:
		return "delete " + Render(n.Child(0))
	case Assign:
		return Render(n.Child(0)) + " = " + Render(n.Child(1))
	case CompoundAssign:
		return Render(n.Child(0)) + " " + n.Tok.Lexeme + " " + Render(n.Child(1))
	case Comma:
		var parts []string
		for _, c := range n.Children() {
			parts = append(parts, Render(c))
		}
		return strings.Join(parts, ", ")
	case ConditionalExpression:
		s := "if " + Render(n.Child(0)) + " " + Render(n.Child(1))
		if len(n.Children()) == 3 {
			s += " else " + Render(n.Child(2))
		}
		return s
	case Block:
		var parts []string
		for _, c := range n.Children() {
			parts = append(parts, Render(c))
		}
		return "{ " + strings.Join(parts, " ") + " }"
	case ExpressionStatement:
		return Render(n.Child(0)) + ";"
	}
	return n.Tok.Lexeme
}
