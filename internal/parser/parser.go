// Package parser implements Wisdom's recursive-descent statement parser
// and its shunting-yard expression parser.
package parser

import (
	"strconv"
	"strings"

	"github.com/Stringy/wisdom/internal/ast"
	"github.com/Stringy/wisdom/internal/diag"
	"github.com/Stringy/wisdom/internal/lexer"
	"github.com/Stringy/wisdom/internal/token"
	"github.com/Stringy/wisdom/internal/value"
)

// Parser consumes a lexer.TokenStream and produces ast.Stmt trees.
type Parser struct {
	stream *lexer.TokenStream
}

// New creates a Parser over an already-constructed token stream.
func New(stream *lexer.TokenStream) *Parser {
	return &Parser{stream: stream}
}

// NewFromSource is a convenience constructor that tokenizes src first.
func NewFromSource(src string) *Parser {
	return New(lexer.NewTokenStream(src))
}

// IsEmpty reports whether the underlying stream has no more tokens.
func (p *Parser) IsEmpty() bool {
	return p.stream.IsEmpty()
}

var controlKeywords = map[string]bool{
	"while": true, "if": true, "return": true, "let": true,
	"break": true, "continue": true,
}

// ParseStmt parses a single statement: a function declaration (`fn ...`)
// or an expression, optionally followed by a trailing ';' which is
// tolerated but not required.
func (p *Parser) ParseStmt() (ast.Stmt, error) {
	if p.stream.IsEmpty() {
		return nil, diag.At(diag.UnexpectedEOL, p.stream.Position())
	}

	tok, _, err := p.stream.First()
	if err != nil {
		return nil, err
	}

	var stmt ast.Stmt
	if tok.Kind == token.Identifier && tok.Literal == "fn" {
		fn, err := p.parseFunction()
		if err != nil {
			return nil, err
		}
		stmt = &ast.FnStmt{StmtBase: base(fn.Position), Fn: fn}
	} else {
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		stmt = &ast.ExprStmt{StmtBase: base(expr.Pos()), Expr: expr}
	}

	if _, _, err := p.stream.Expect(token.SemiColon); err != nil {
		return nil, err
	}
	return stmt, nil
}

func base(pos token.Position) ast.StmtBase {
	return ast.StmtBase{NodeBase: ast.NodeBase{Position: pos}}
}

func ebase(pos token.Position) ast.ExprBase {
	return ast.ExprBase{NodeBase: ast.NodeBase{Position: pos}}
}

// parseFunction parses `fn name(arg[: type], ...) { ... }`.
func (p *Parser) parseFunction() (*ast.Function, error) {
	kw, ok, err := p.stream.ExpectIdent("fn")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, diag.New(diag.ExpectedIdent, p.stream.Position(), "expected \"fn\"")
	}

	nameTok, ok, err := p.stream.Expect(token.Identifier)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, diag.New(diag.ExpectedIdent, p.stream.Position(), "expected function name")
	}

	if _, ok, err := p.stream.Expect(token.LeftParen); err != nil {
		return nil, err
	} else if !ok {
		return nil, diag.New(diag.ExpectedTokens, p.stream.Position(), "expected '(' after function name")
	}

	var args []ast.ArgSpec
	for {
		tok, ok, err := p.stream.First()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, diag.At(diag.UnexpectedEOL, p.stream.Position())
		}
		if tok.Kind == token.RightParen {
			break
		}
		argTok, ok, err := p.stream.Expect(token.Identifier)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, diag.New(diag.ExpectedIdent, p.stream.Position(), "expected parameter name")
		}
		if _, ok, err := p.stream.Expect(token.Colon); err != nil {
			return nil, err
		} else if ok {
			if _, ok, err := p.stream.Expect(token.Identifier); err != nil {
				return nil, err
			} else if !ok {
				return nil, diag.New(diag.ExpectedIdent, p.stream.Position(), "expected type name after ':'")
			}
		}
		args = append(args, ast.ArgSpec{Name: argTok.Literal})

		if _, ok, err := p.stream.Expect(token.Comma); err != nil {
			return nil, err
		} else if !ok {
			break
		}
	}

	if _, ok, err := p.stream.Expect(token.RightParen); err != nil {
		return nil, err
	} else if !ok {
		return nil, diag.New(diag.ExpectedTokens, p.stream.Position(), "expected ')'")
	}

	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.Function{
		NodeBase: ast.NodeBase{Position: kw.Position},
		Name:     nameTok.Literal,
		Args:     args,
		Body:     block,
	}, nil
}

// parseBlock parses `{ stmt* }`.
func (p *Parser) parseBlock() (*ast.Block, error) {
	open, ok, err := p.stream.Expect(token.LeftBrace)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, diag.New(diag.ExpectedTokens, p.stream.Position(), "expected '{'")
	}

	block := &ast.Block{ExprBase: ebase(open.Position)}
	for {
		tok, ok, err := p.stream.First()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, diag.At(diag.UnexpectedEOL, p.stream.Position())
		}
		if tok.Kind == token.RightBrace {
			p.stream.Consume()
			return block, nil
		}
		stmt, err := p.ParseStmt()
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, stmt)
	}
}

// ---- expression parsing: a two-stack shunting yard ----

type opEntry struct {
	op  ast.BinOp
	pos token.Position
}

func isTerminator(k token.Kind) bool {
	switch k {
	case token.SemiColon, token.RightParen, token.RightBrace, token.Comma:
		return true
	default:
		return false
	}
}

// parseExpr parses one expression: literals, identifiers, parenthesized
// sub-expressions, calls, the keyword forms, and binary operators with
// the precedence table in internal/ast.
func (p *Parser) parseExpr() (ast.Expr, error) {
	var operands []ast.Expr
	var operators []opEntry

	fold := func() error {
		top := operators[len(operators)-1]
		if len(operands) < 2 {
			return diag.New(diag.UnmatchedExpr, top.pos, "operator %q has no left-hand operand", top.op)
		}
		rhs := operands[len(operands)-1]
		lhs := operands[len(operands)-2]
		operands = operands[:len(operands)-2]
		operators = operators[:len(operators)-1]
		operands = append(operands, &ast.BinOpExpr{
			ExprBase: ebase(lhs.Pos()),
			Op:       top.op,
			Left:     lhs,
			Right:    rhs,
		})
		return nil
	}

	expectOperand := true

	for {
		tok, ok, err := p.stream.First()
		if err != nil {
			return nil, err
		}
		if !ok || isTerminator(tok.Kind) {
			break
		}

		if expectOperand && (tok.Kind == token.Sub || tok.Kind == token.Not) {
			operand, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			operands = append(operands, operand)
			expectOperand = false
			continue
		}

		switch {
		case expectOperand && tok.Kind == token.LeftParen:
			p.stream.Consume()
			inner, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, ok, err := p.stream.Expect(token.RightParen); err != nil {
				return nil, err
			} else if !ok {
				return nil, diag.New(diag.ExpectedTokens, p.stream.Position(), "expected ')'")
			}
			operands = append(operands, inner)
			expectOperand = false

		case expectOperand && tok.Kind.IsLiteral():
			p.stream.Consume()
			v, err := literalToValue(tok)
			if err != nil {
				return nil, err
			}
			operands = append(operands, &ast.LiteralExpr{ExprBase: ebase(tok.Position), Value: v})
			expectOperand = false

		case expectOperand && tok.Kind == token.Identifier && controlKeywords[tok.Literal]:
			expr, err := p.parseKeywordForm(tok.Literal)
			if err != nil {
				return nil, err
			}
			// A keyword form is a complete expression on its own: no
			// further operator composition is attempted around it.
			if len(operands) == 0 && len(operators) == 0 {
				return expr, nil
			}
			operands = append(operands, expr)
			goto drain

		case expectOperand && tok.Kind == token.Identifier:
			p.stream.Consume()
			operand, err := p.parseIdentOrLiteralKeyword(tok)
			if err != nil {
				return nil, err
			}
			operands = append(operands, operand)
			expectOperand = false

		case !expectOperand:
			op, isOp := ast.BinOpFromKind(tok.Kind)
			if !isOp {
				// Any non-operator token after a complete operand (e.g. the
				// '{' after an if/while condition) ends the expression.
				goto drain
			}
			p.stream.Consume()
			for len(operators) > 0 && shouldFold(operators[len(operators)-1].op, op) {
				if err := fold(); err != nil {
					return nil, err
				}
			}
			operators = append(operators, opEntry{op: op, pos: tok.Position})
			expectOperand = true

		default:
			return nil, diag.New(diag.ExpectedOperator, tok.Position, "unexpected token %q", tok.Literal)
		}
	}

drain:
	for len(operators) > 0 {
		if err := fold(); err != nil {
			return nil, err
		}
	}

	if len(operands) != 1 {
		pos := p.stream.Position()
		if len(operands) > 0 {
			pos = operands[len(operands)-1].Pos()
		}
		return nil, diag.New(diag.UnmatchedExpr, pos, "malformed expression")
	}
	return operands[0], nil
}

// parseUnary consumes a prefix '-' or '!' and its operand: a primary
// atom, or (for chained prefixes like "--x" or "!!x") another unary
// expression. Unary operators are folded in ahead of the shunting-yard
// loop so "-a + b" still parses as "(-a) + b" rather than misreading
// '-' as the binary Sub operator with a missing left operand.
func (p *Parser) parseUnary() (ast.Expr, error) {
	tok, _, err := p.stream.Consume()
	if err != nil {
		return nil, err
	}
	operand, err := p.parseUnaryOperand()
	if err != nil {
		return nil, err
	}
	return &ast.UnaryExpr{ExprBase: ebase(tok.Position), Op: tok.Kind, Operand: operand}, nil
}

// parseUnaryOperand parses the single primary atom (or nested unary
// prefix) a unary operator applies to: a parenthesized expression, a
// literal, an identifier/call, or another unary expression.
func (p *Parser) parseUnaryOperand() (ast.Expr, error) {
	tok, ok, err := p.stream.First()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, diag.At(diag.UnexpectedEOL, p.stream.Position())
	}

	switch {
	case tok.Kind == token.Sub || tok.Kind == token.Not:
		return p.parseUnary()

	case tok.Kind == token.LeftParen:
		p.stream.Consume()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, ok, err := p.stream.Expect(token.RightParen); err != nil {
			return nil, err
		} else if !ok {
			return nil, diag.New(diag.ExpectedTokens, p.stream.Position(), "expected ')'")
		}
		return inner, nil

	case tok.Kind.IsLiteral():
		p.stream.Consume()
		v, err := literalToValue(tok)
		if err != nil {
			return nil, err
		}
		return &ast.LiteralExpr{ExprBase: ebase(tok.Position), Value: v}, nil

	case tok.Kind == token.Identifier:
		p.stream.Consume()
		return p.parseIdentOrLiteralKeyword(tok)

	default:
		return nil, diag.New(diag.ExpectedOperator, tok.Position, "unexpected token %q in unary operand", tok.Literal)
	}
}

// shouldFold reports whether the top-of-stack operator must fold before
// the new operator is pushed. Assignment is right-associative: it is
// never folded against another assignment in the loop, only at drain
// time, where stack LIFO order naturally yields right-association.
func shouldFold(top, newOp ast.BinOp) bool {
	if newOp == ast.OpAssign {
		return false
	}
	return top.Precedence() <= newOp.Precedence()
}

// parseKeywordForm handles the keyword-dispatched expression forms:
// while, if, return, let, break, continue. Each is a complete expression
// that returns immediately rather than feeding the operand stack.
func (p *Parser) parseKeywordForm(keyword string) (ast.Expr, error) {
	kw, _, err := p.stream.Consume()
	if err != nil {
		return nil, err
	}

	switch keyword {
	case "while":
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &ast.WhileExpr{ExprBase: ebase(kw.Position), Cond: cond, Body: body}, nil

	case "if":
		return p.parseIf(kw.Position)

	case "return":
		if tok, ok, err := p.stream.First(); err != nil {
			return nil, err
		} else if !ok || isTerminator(tok.Kind) {
			return &ast.RetExpr{ExprBase: ebase(kw.Position)}, nil
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.RetExpr{ExprBase: ebase(kw.Position), Value: val}, nil

	case "let":
		nameTok, ok, err := p.stream.Expect(token.Identifier)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, diag.New(diag.ExpectedIdent, p.stream.Position(), "expected identifier after 'let'")
		}
		var init ast.Expr
		if _, ok, err := p.stream.Expect(token.Eq); err != nil {
			return nil, err
		} else if ok {
			init, err = p.parseExpr()
			if err != nil {
				return nil, err
			}
		}
		return &ast.LetExpr{ExprBase: ebase(kw.Position), Name: nameTok.Literal, Value: init}, nil

	case "break":
		return &ast.BreakExpr{ExprBase: ebase(kw.Position)}, nil

	case "continue":
		return &ast.ContinueExpr{ExprBase: ebase(kw.Position)}, nil

	default:
		return nil, diag.New(diag.InvalidToken, kw.Position, "unhandled keyword %q", keyword)
	}
}

func (p *Parser) parseIf(pos token.Position) (ast.Expr, error) {
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	ifExpr := &ast.IfExpr{ExprBase: ebase(pos), Cond: cond, Then: then}

	tok, ok, err := p.stream.First()
	if err != nil {
		return nil, err
	}
	if !ok || tok.Kind != token.Identifier || tok.Literal != "else" {
		return ifExpr, nil
	}
	p.stream.Consume()

	next, ok, err := p.stream.First()
	if err != nil {
		return nil, err
	}
	if ok && next.Kind == token.Identifier && next.Literal == "if" {
		elseExpr, err := p.parseKeywordForm("if")
		if err != nil {
			return nil, err
		}
		ifExpr.Else = elseExpr
		return ifExpr, nil
	}

	elseBlock, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	ifExpr.Else = &ast.BlockExpr{ExprBase: ebase(elseBlock.Position), Block: elseBlock}
	return ifExpr, nil
}

// parseIdentOrLiteralKeyword builds the operand for a consumed,
// non-control-keyword identifier token: the literal keywords
// true/false/none, a call expression, or a plain identifier reference.
func (p *Parser) parseIdentOrLiteralKeyword(tok token.Token) (ast.Expr, error) {
	switch tok.Literal {
	case "true":
		return &ast.LiteralExpr{ExprBase: ebase(tok.Position), Value: value.Bool(true)}, nil
	case "false":
		return &ast.LiteralExpr{ExprBase: ebase(tok.Position), Value: value.Bool(false)}, nil
	case "none":
		return &ast.LiteralExpr{ExprBase: ebase(tok.Position), Value: value.None{}}, nil
	}

	next, ok, err := p.stream.First()
	if err != nil {
		return nil, err
	}
	if ok && next.Kind == token.LeftParen {
		p.stream.Consume()
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		if _, ok, err := p.stream.Expect(token.RightParen); err != nil {
			return nil, err
		} else if !ok {
			return nil, diag.New(diag.ExpectedTokens, p.stream.Position(), "expected ')'")
		}
		return &ast.CallExpr{
			ExprBase: ebase(tok.Position),
			Callee:   &ast.IdentExpr{ExprBase: ebase(tok.Position), Name: tok.Literal},
			Args:     args,
		}, nil
	}

	return &ast.IdentExpr{ExprBase: ebase(tok.Position), Name: tok.Literal}, nil
}

func (p *Parser) parseArgs() ([]ast.Expr, error) {
	var args []ast.Expr
	tok, ok, err := p.stream.First()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, diag.At(diag.UnexpectedEOL, p.stream.Position())
	}
	if tok.Kind == token.RightParen {
		return args, nil
	}
	for {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if _, ok, err := p.stream.Expect(token.Comma); err != nil {
			return nil, err
		} else if !ok {
			break
		}
	}
	return args, nil
}

// literalToValue converts a literal token to its eagerly-parsed Value.
func literalToValue(tok token.Token) (value.Value, error) {
	switch tok.Kind {
	case token.IntLit:
		n, err := strconv.ParseInt(tok.Literal, tok.Base.Radix(), 64)
		if err != nil {
			return nil, diag.New(diag.InvalidLit, tok.Position, "invalid %s integer literal %q", tok.Base, tok.Literal)
		}
		return value.Int(n), nil
	case token.FloatLit:
		f, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, diag.New(diag.InvalidLit, tok.Position, "invalid float literal %q", tok.Literal)
		}
		return value.Float(f), nil
	case token.StringLit:
		return value.String(unescapeString(tok.Literal)), nil
	default:
		return nil, diag.New(diag.InvalidLit, tok.Position, "unexpected literal kind")
	}
}

// unescapeString strips the surrounding quotes and removes every
// backslash, passing the escaped character through unchanged (only \"
// has special meaning; all other escapes simply drop the backslash).
func unescapeString(raw string) string {
	inner := raw
	if len(inner) >= 2 {
		inner = inner[1 : len(inner)-1]
	}
	var b strings.Builder
	escaped := false
	for i := 0; i < len(inner); i++ {
		ch := inner[i]
		if escaped {
			b.WriteByte(ch)
			escaped = false
			continue
		}
		if ch == '\\' {
			escaped = true
			continue
		}
		b.WriteByte(ch)
	}
	return b.String()
}
