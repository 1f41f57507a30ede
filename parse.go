package gandalf

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Parse converts source into a program, a statement list. Lexing runs
// concurrently; the parser consumes the token stream with one token of
// lookahead.
func Parse(source io.Reader) ([]Stmt, error) {
	tokens := make(chan token)
	go lex(bufio.NewReader(source), tokens)
	p := &parser{tokens: tokens}
	p.next()
	p.next()
	prog, err := p.parseProgram()
	if err != nil {
		// Unblock the lexer if we bailed before end of input.
		for range tokens {
		}
		return nil, err
	}
	return prog, nil
}

// ParseString parses source held in a string.
func ParseString(source string) ([]Stmt, error) {
	return Parse(strings.NewReader(source))
}

type parser struct {
	tokens <-chan token
	cur    token
	peek   token
}

func (p *parser) next() {
	p.cur = p.peek
	tok, ok := <-p.tokens
	if !ok {
		tok = token{Kind: eofToken, Line: p.cur.Line, Col: p.cur.Col}
	}
	p.peek = tok
}

func (p *parser) at(kind tokenKind) bool {
	return p.cur.Kind == kind
}

func (p *parser) advance() token {
	t := p.cur
	p.next()
	return t
}

// bad surfaces a lexer failure at the current token, if any.
func (p *parser) bad() error {
	if p.cur.Kind != badToken {
		return nil
	}
	if _, ok := p.cur.Err.(*LexError); ok {
		return p.cur.Err
	}
	return lexErrorf(p.cur.Line, p.cur.Col, "%v", p.cur.Err)
}

func (p *parser) expect(kind tokenKind) (token, error) {
	if err := p.bad(); err != nil {
		return p.cur, err
	}
	if p.cur.Kind != kind {
		return p.cur, parseErrorf(p.cur.Line, p.cur.Col, "Expected %s, got %s", kind, p.cur.Kind)
	}
	return p.advance(), nil
}

func (p *parser) skipNewlines() {
	for p.at(newlineToken) {
		p.next()
	}
}

func (p *parser) parseProgram() ([]Stmt, error) {
	var stmts []Stmt
	p.skipNewlines()
	for !p.at(eofToken) {
		if err := p.bad(); err != nil {
			return nil, err
		}
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
		p.skipNewlines()
	}
	return stmts, nil
}

// parseBlockUntil parses statements, skipping blank lines, until one of the
// terminator kinds appears. The terminator is left for the caller. End of
// input before a terminator is a parse error.
func (p *parser) parseBlockUntil(terminators ...tokenKind) ([]Stmt, error) {
	var body []Stmt
	p.skipNewlines()
	for {
		if err := p.bad(); err != nil {
			return nil, err
		}
		for _, t := range terminators {
			if p.at(t) {
				return body, nil
			}
		}
		if p.at(eofToken) {
			names := make([]string, len(terminators))
			for i, t := range terminators {
				names[i] = t.String()
			}
			return nil, parseErrorf(p.cur.Line, p.cur.Col, "Unexpected end of input; expected %s", strings.Join(names, " or "))
		}
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		body = append(body, s)
		p.skipNewlines()
	}
}

func (p *parser) parseStmt() (Stmt, error) {
	switch p.cur.Kind {
	case inscribeToken:
		p.next()
		name, err := p.expect(identToken)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(assignToken); err != nil {
			return nil, err
		}
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &Inscribe{Name: name.Value, Expr: expr}, nil

	case proclaimToken:
		p.next()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &Proclaim{Expr: expr}, nil

	case beToken:
		p.next()
		persona, err := p.expect(identToken)
		if err != nil {
			return nil, err
		}
		return &BePersona{Persona: persona.Value}, nil

	case inToken:
		p.next()
		region, err := p.expect(identToken)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(doToken); err != nil {
			return nil, err
		}
		body, err := p.parseBlockUntil(endToken)
		if err != nil {
			return nil, err
		}
		p.next() // end
		return &InRegion{Region: region.Value, Body: body}, nil

	case claimToken, bearToken, unbearToken, destroyToken:
		verb := artifactVerbFor(p.advance().Kind)
		artifact, err := p.expect(identToken)
		if err != nil {
			return nil, err
		}
		return &ArtifactStmt{Verb: verb, Artifact: artifact.Value}, nil

	case ifToken:
		p.next()
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(thenToken); err != nil {
			return nil, err
		}
		thenBody, err := p.parseBlockUntil(elseToken, endToken)
		if err != nil {
			return nil, err
		}
		var elseBody []Stmt
		if p.at(elseToken) {
			p.next()
			elseBody, err = p.parseBlockUntil(endToken)
			if err != nil {
				return nil, err
			}
		}
		p.next() // end
		return &If{Cond: cond, Then: thenBody, Else: elseBody}, nil

	case whileToken:
		p.next()
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(doToken); err != nil {
			return nil, err
		}
		body, err := p.parseBlockUntil(endToken)
		if err != nil {
			return nil, err
		}
		p.next() // end
		return &While{Cond: cond, Body: body}, nil

	case spellToken:
		p.next()
		name, err := p.expect(identToken)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lparenToken); err != nil {
			return nil, err
		}
		var params []string
		if !p.at(rparenToken) {
			for {
				param, err := p.expect(identToken)
				if err != nil {
					return nil, err
				}
				params = append(params, param.Value)
				if !p.at(commaToken) {
					break
				}
				p.next()
			}
		}
		if _, err := p.expect(rparenToken); err != nil {
			return nil, err
		}
		if _, err := p.expect(doToken); err != nil {
			return nil, err
		}
		body, err := p.parseBlockUntil(endToken)
		if err != nil {
			return nil, err
		}
		p.next() // end
		return &SpellDef{Name: name.Value, Params: params, Body: body}, nil

	case returnToken:
		p.next()
		if p.at(newlineToken) || p.at(endToken) || p.at(elseToken) || p.at(eofToken) {
			return &Return{}, nil
		}
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &Return{Expr: expr}, nil
	}

	// Anything else is a bare expression statement.
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ExprStmt{Expr: expr}, nil
}

func artifactVerbFor(kind tokenKind) ArtifactVerb {
	switch kind {
	case claimToken:
		return VerbClaim
	case bearToken:
		return VerbBear
	case unbearToken:
		return VerbUnbear
	}
	return VerbDestroy
}

// Expression grammar, loosest binding first. Every binary level is built by
// iterating while the current token belongs to the level's operator set,
// which makes each level left-associative.

func (p *parser) parseExpr() (Expr, error) {
	return p.parseEquality()
}

func (p *parser) parseEquality() (Expr, error) {
	expr, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.at(eqToken) || p.at(neToken) {
		op := p.advance().Kind
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		expr = &BinOp{Left: expr, Op: op, Right: right}
	}
	return expr, nil
}

func (p *parser) parseComparison() (Expr, error) {
	expr, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.at(ltToken) || p.at(gtToken) || p.at(leToken) || p.at(geToken) {
		op := p.advance().Kind
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		expr = &BinOp{Left: expr, Op: op, Right: right}
	}
	return expr, nil
}

func (p *parser) parseTerm() (Expr, error) {
	expr, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.at(plusToken) || p.at(minusToken) {
		op := p.advance().Kind
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		expr = &BinOp{Left: expr, Op: op, Right: right}
	}
	return expr, nil
}

func (p *parser) parseFactor() (Expr, error) {
	expr, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.at(starToken) || p.at(slashToken) {
		op := p.advance().Kind
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		expr = &BinOp{Left: expr, Op: op, Right: right}
	}
	return expr, nil
}

func (p *parser) parseUnary() (Expr, error) {
	if p.at(minusToken) {
		p.next()
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryNeg{Expr: inner}, nil
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() (Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.at(lbrackToken) {
		p.next()
		idx, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(rbrackToken); err != nil {
			return nil, err
		}
		expr = &Index{Target: expr, Index: idx}
	}
	return expr, nil
}

func (p *parser) parsePrimary() (Expr, error) {
	if err := p.bad(); err != nil {
		return nil, err
	}
	switch p.cur.Kind {
	case intToken:
		t := p.advance()
		n, err := strconv.ParseInt(t.Value, 10, 64)
		if err != nil {
			// Out of int64 range; fall back to a float like any other
			// large magnitude.
			f, _ := strconv.ParseFloat(t.Value, 64)
			return &FloatLit{Value: f}, nil
		}
		return &IntLit{Value: n}, nil

	case floatToken:
		t := p.advance()
		f, err := strconv.ParseFloat(t.Value, 64)
		if err != nil {
			return nil, parseErrorf(t.Line, t.Col, "Invalid number '%s'", t.Value)
		}
		return &FloatLit{Value: f}, nil

	case stringToken:
		return &StringLit{Value: p.advance().Value}, nil

	case trueToken:
		p.next()
		return &BoolLit{Value: true}, nil

	case falseToken:
		p.next()
		return &BoolLit{Value: false}, nil

	case nilToken:
		p.next()
		return &NilLit{}, nil

	case invokeToken:
		p.next()
		target, err := p.expect(stringToken)
		if err != nil {
			return nil, err
		}
		var args []Expr
		if p.at(withToken) {
			p.next()
			for {
				arg, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if !p.at(commaToken) {
					break
				}
				p.next()
			}
		}
		return &Invoke{Target: target.Value, Args: args}, nil

	case lbrackToken:
		p.next()
		var items []Expr
		if !p.at(rbrackToken) {
			for {
				item, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				items = append(items, item)
				if !p.at(commaToken) {
					break
				}
				p.next()
			}
		}
		if _, err := p.expect(rbrackToken); err != nil {
			return nil, err
		}
		return &ListLit{Items: items}, nil

	case lbraceToken:
		p.next()
		var entries []MapEntry
		if !p.at(rbraceToken) {
			for {
				key, err := p.parseMapKey()
				if err != nil {
					return nil, err
				}
				if _, err := p.expect(colonToken); err != nil {
					return nil, err
				}
				value, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				entries = append(entries, MapEntry{Key: key, Value: value})
				if !p.at(commaToken) {
					break
				}
				p.next()
			}
		}
		if _, err := p.expect(rbraceToken); err != nil {
			return nil, err
		}
		return &MapLit{Entries: entries}, nil

	case identToken:
		name := p.advance()
		if p.at(lparenToken) {
			p.next()
			var args []Expr
			if !p.at(rparenToken) {
				for {
					arg, err := p.parseExpr()
					if err != nil {
						return nil, err
					}
					args = append(args, arg)
					if !p.at(commaToken) {
						break
					}
					p.next()
				}
			}
			if _, err := p.expect(rparenToken); err != nil {
				return nil, err
			}
			return &Call{Name: name.Value, Args: args}, nil
		}
		return &Var{Name: name.Value}, nil

	case lparenToken:
		p.next()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(rparenToken); err != nil {
			return nil, err
		}
		return expr, nil
	}
	return nil, parseErrorf(p.cur.Line, p.cur.Col, "Unexpected token in expression: %s", p.cur.Kind)
}

// parseMapKey parses a map literal key: a bare identifier stands for its own
// text, or a string literal.
func (p *parser) parseMapKey() (Expr, error) {
	if err := p.bad(); err != nil {
		return nil, err
	}
	switch p.cur.Kind {
	case stringToken, identToken:
		return &StringLit{Value: p.advance().Value}, nil
	}
	return nil, parseErrorf(p.cur.Line, p.cur.Col, "Map key must be an identifier or string, got %s", p.cur.Kind)
}
