package gandalf

import (
	"bufio"
	"io"
	"strings"
)

// A token is a single lexical element.
type token struct {
	Kind  tokenKind
	Value string
	Err   error

	Line, Col int
}

type tokenKind int

const (
	badToken tokenKind = iota

	eofToken     // end of input
	newlineToken // newline statement separator
	identToken   // identifier
	intToken     // integer literal
	floatToken   // float literal
	stringToken  // "string", already unescaped

	// Keywords. Several surface spellings map onto each of these; see
	// keywords below.
	inscribeToken
	proclaimToken
	ifToken
	thenToken
	elseToken
	whileToken
	doToken
	endToken
	spellToken
	returnToken
	invokeToken
	withToken
	inToken
	beToken
	claimToken
	bearToken
	unbearToken
	destroyToken
	trueToken
	falseToken
	nilToken

	// Operators and delimiters.
	plusToken
	minusToken
	starToken
	slashToken
	lparenToken
	rparenToken
	lbrackToken
	rbrackToken
	lbraceToken
	rbraceToken
	ltToken
	gtToken
	leToken
	geToken
	assignToken
	eqToken
	neToken
	commaToken
	colonToken
)

var kindNames = [...]string{
	badToken:      "bad token",
	eofToken:      "end of input",
	newlineToken:  "newline",
	identToken:    "identifier",
	intToken:      "number",
	floatToken:    "number",
	stringToken:   "string",
	inscribeToken: "'inscribe'",
	proclaimToken: "'proclaim'",
	ifToken:       "'if'",
	thenToken:     "'then'",
	elseToken:     "'else'",
	whileToken:    "'while'",
	doToken:       "'do'",
	endToken:      "'end'",
	spellToken:    "'spell'",
	returnToken:   "'return'",
	invokeToken:   "'invoke'",
	withToken:     "'with'",
	inToken:       "'in'",
	beToken:       "'be'",
	claimToken:    "'claim'",
	bearToken:     "'bear'",
	unbearToken:   "'unbear'",
	destroyToken:  "'destroy'",
	trueToken:     "'true'",
	falseToken:    "'false'",
	nilToken:      "'nil'",
	plusToken:     "'+'",
	minusToken:    "'-'",
	starToken:     "'*'",
	slashToken:    "'/'",
	lparenToken:   "'('",
	rparenToken:   "')'",
	lbrackToken:   "'['",
	rbrackToken:   "']'",
	lbraceToken:   "'{'",
	rbraceToken:   "'}'",
	ltToken:       "'<'",
	gtToken:       "'>'",
	leToken:       "'<='",
	geToken:       "'>='",
	assignToken:   "'='",
	eqToken:       "'=='",
	neToken:       "'!='",
	commaToken:    "','",
	colonToken:    "':'",
}

func (k tokenKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "bad token"
	}
	return kindNames[k]
}

// keywords maps every surface spelling onto its canonical token kind. The
// alias groups let scripts vary their diction without growing the grammar.
var keywords = map[string]tokenKind{
	"inscribe":  inscribeToken,
	"bind":      inscribeToken,
	"proclaim":  proclaimToken,
	"say":       proclaimToken,
	"speak":     proclaimToken,
	"if":        ifToken,
	"when":      ifToken,
	"then":      thenToken,
	"upon":      thenToken,
	"else":      elseToken,
	"otherwise": elseToken,
	"while":     whileToken,
	"endure":    whileToken,
	"do":        doToken,
	"end":       endToken,
	"spell":     spellToken,
	"weave":     spellToken,
	"return":    returnToken,
	"yield":     returnToken,
	"invoke":    invokeToken,
	"summon":    invokeToken,
	"with":      withToken,
	"in":        inToken,
	"within":    inToken,
	"be":        beToken,
	"as":        beToken,
	"claim":     claimToken,
	"take":      claimToken,
	"bear":      bearToken,
	"wear":      bearToken,
	"unbear":    unbearToken,
	"remove":    unbearToken,
	"destroy":   destroyToken,
	"unmake":    destroyToken,
	"true":      trueToken,
	"false":     falseToken,
	"nil":       nilToken,
	"none":      nilToken,
}

// singleOps are the operator and delimiter characters that lex alone. The
// two-character operators ==, !=, <=, and >= are matched greedily before
// these in lexOp.
var singleOps = map[rune]tokenKind{
	'+': plusToken,
	'-': minusToken,
	'*': starToken,
	'/': slashToken,
	'(': lparenToken,
	')': rparenToken,
	'[': lbrackToken,
	']': rbrackToken,
	'{': lbraceToken,
	'}': rbraceToken,
	'<': ltToken,
	'>': gtToken,
	'=': assignToken,
	',': commaToken,
	':': colonToken,
}

// lexFn is a lexer state function. Each lexFn lexes a token, sends it on the
// supplied channel, and returns the next lexFn to use.
type lexFn func(src *bufio.Reader, tokens chan<- token, line, col int) (lexFn, int, int)

// lex converts a source into a stream of tokens, concluding with an eofToken.
func lex(src *bufio.Reader, tokens chan<- token) {
	state := eatSpace
	line, col := 1, 1
	for state != nil {
		state, line, col = state(src, tokens, line, col)
	}
	close(tokens)
}

// accept appends the next run of characters in src which satisfy the
// predicate to b. Returns b after appending, the first rune which did not
// satisfy the predicate, and any error that occurred. If there was no such
// error, the last rune is unread.
func accept(src *bufio.Reader, predicate func(rune) bool, b []byte) ([]byte, rune, error) {
	r, _, err := src.ReadRune()
	for {
		if err != nil {
			return b, r, err
		}
		if !predicate(r) {
			break
		}
		b = append(b, string(r)...)
		r, _, err = src.ReadRune()
	}
	src.UnreadRune()
	return b, r, nil
}

// lexsend is a shortcut for sending a token with error checking. It returns
// eatSpace as the default lexing function. EOF ends the lex after the token
// and the closing eofToken are sent; any other read error turns the token
// into a badToken.
func lexsend(err error, tokens chan<- token, good token, line, col int) lexFn {
	if err != nil && err != io.EOF {
		good.Kind = badToken
		good.Err = err
	}
	tokens <- good
	if err != nil {
		if err == io.EOF {
			tokens <- token{Kind: eofToken, Line: line, Col: col}
		}
		return nil
	}
	return eatSpace
}

func isDigit(r rune) bool  { return '0' <= r && r <= '9' }
func isLetter(r rune) bool { return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_' }

// eatSpace consumes insignificant whitespace and comments and decides the
// next lexFn to use.
func eatSpace(src *bufio.Reader, tokens chan<- token, line, col int) (lexFn, int, int) {
	eaten, r, err := accept(src, func(r rune) bool { return strings.ContainsRune(" \r\f\t\v", r) }, nil)
	col += len(eaten)
	if err != nil {
		if err != io.EOF {
			tokens <- token{Kind: badToken, Value: string(r), Err: err, Line: line, Col: col}
			return nil, line, col
		}
		tokens <- token{Kind: eofToken, Line: line, Col: col}
		return nil, line, col
	}
	switch {
	case r == '\n':
		src.ReadRune()
		tokens <- token{Kind: newlineToken, Value: "\n", Line: line, Col: col}
		return eatSpace, line + 1, 1
	case r == '#':
		// Comment to end of line. Discarded entirely.
		eaten, _, err = accept(src, func(r rune) bool { return r != '\n' }, nil)
		if err == io.EOF {
			tokens <- token{Kind: eofToken, Line: line, Col: col + len(eaten)}
			return nil, line, col
		}
		if err != nil {
			tokens <- token{Kind: badToken, Err: err, Line: line, Col: col}
			return nil, line, col
		}
		return eatSpace, line, col + len(eaten)
	case isLetter(r):
		return lexIdent, line, col
	case isDigit(r):
		return lexNumber, line, col
	case r == '"':
		return lexString, line, col
	case strings.ContainsRune("=!<>", r):
		return lexOp, line, col
	}
	if kind, ok := singleOps[r]; ok {
		src.ReadRune()
		tokens <- token{Kind: kind, Value: string(r), Line: line, Col: col}
		return eatSpace, line, col + 1
	}
	tokens <- token{
		Kind: badToken,
		Err:  lexErrorf(line, col, "Unexpected character %q", r),
		Line: line,
		Col:  col,
	}
	return nil, line, col
}

// lexIdent lexes an identifier or keyword.
func lexIdent(src *bufio.Reader, tokens chan<- token, line, col int) (lexFn, int, int) {
	b, _, err := accept(src, func(r rune) bool { return isLetter(r) || isDigit(r) }, nil)
	word := string(b)
	kind, ok := keywords[word]
	if !ok {
		kind = identToken
	}
	ncol := col + len(b)
	return lexsend(err, tokens, token{Kind: kind, Value: word, Line: line, Col: col}, line, ncol), line, ncol
}

// lexOp lexes the operators beginning with =, !, <, or >, matching the
// two-character forms greedily.
func lexOp(src *bufio.Reader, tokens chan<- token, line, col int) (lexFn, int, int) {
	r, _, _ := src.ReadRune()
	peek, _ := src.Peek(1)
	if len(peek) == 1 && peek[0] == '=' {
		src.ReadRune()
		var kind tokenKind
		switch r {
		case '=':
			kind = eqToken
		case '!':
			kind = neToken
		case '<':
			kind = leToken
		case '>':
			kind = geToken
		}
		tokens <- token{Kind: kind, Value: string(r) + "=", Line: line, Col: col}
		return eatSpace, line, col + 2
	}
	if r == '!' {
		// ! only appears as part of !=.
		tokens <- token{
			Kind: badToken,
			Err:  lexErrorf(line, col, "Unexpected character '!'"),
			Line: line,
			Col:  col,
		}
		return nil, line, col
	}
	tokens <- token{Kind: singleOps[r], Value: string(r), Line: line, Col: col}
	return eatSpace, line, col + 1
}

// lexNumber lexes an integer or float literal. A literal containing more
// than one decimal point is malformed.
func lexNumber(src *bufio.Reader, tokens chan<- token, line, col int) (lexFn, int, int) {
	b, r, err := accept(src, isDigit, nil)
	kind := intToken
	if err == nil && r == '.' {
		kind = floatToken
		b = append(b, '.')
		src.ReadRune()
		b, r, err = accept(src, isDigit, b)
		if err == nil && r == '.' {
			tokens <- token{
				Kind: badToken,
				Err:  lexErrorf(line, col, "Invalid number '%s.'", b),
				Line: line,
				Col:  col,
			}
			return nil, line, col
		}
	}
	ncol := col + len(b)
	return lexsend(err, tokens, token{Kind: kind, Value: string(b), Line: line, Col: col}, line, ncol), line, ncol
}

// lexString lexes a string literal, translating its escape sequences. The
// closing quote must appear on the same line.
func lexString(src *bufio.Reader, tokens chan<- token, line, col int) (lexFn, int, int) {
	src.ReadRune()
	ncol := col + 1
	var out []byte
	for {
		r, _, err := src.ReadRune()
		if err != nil {
			tokens <- token{
				Kind: badToken,
				Err:  lexErrorf(line, col, "Unterminated string literal"),
				Line: line,
				Col:  col,
			}
			return nil, line, ncol
		}
		ncol++
		switch r {
		case '"':
			return lexsend(nil, tokens, token{Kind: stringToken, Value: string(out), Line: line, Col: col}, line, ncol), line, ncol
		case '\n':
			tokens <- token{
				Kind: badToken,
				Err:  lexErrorf(line, col, "Unterminated string literal"),
				Line: line,
				Col:  col,
			}
			return nil, line, ncol
		case '\\':
			nxt, _, err := src.ReadRune()
			if err != nil {
				tokens <- token{
					Kind: badToken,
					Err:  lexErrorf(line, col, "Unterminated escape in string"),
					Line: line,
					Col:  col,
				}
				return nil, line, ncol
			}
			ncol++
			switch nxt {
			case 'n':
				out = append(out, '\n')
			case '"':
				out = append(out, '"')
			case '\\':
				out = append(out, '\\')
			default:
				// Unknown escapes pass the character through verbatim.
				out = append(out, string(nxt)...)
			}
		default:
			out = append(out, string(r)...)
		}
	}
}
