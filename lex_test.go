package gandalf

import (
	"bufio"
	"strings"
	"testing"
)

// lexAll collects every token lex produces for text, including the final
// eofToken or badToken.
func lexAll(text string) []token {
	tokens := make(chan token)
	go lex(bufio.NewReader(strings.NewReader(text)), tokens)
	var all []token
	for tok := range tokens {
		all = append(all, tok)
	}
	return all
}

// TestLexSingles tests that individual tokens have the correct kinds and
// values.
func TestLexSingles(t *testing.T) {
	cases := map[string]struct {
		text string
		kind tokenKind
		val  string
	}{
		"Ident":          {"frodo", identToken, "frodo"},
		"Ident-alnum":    {"elf7", identToken, "elf7"},
		"Ident-under":    {"you_shall_not_pass", identToken, "you_shall_not_pass"},
		"Int":            {"42", intToken, "42"},
		"Float":          {"3.14", floatToken, "3.14"},
		"Float-trailing": {"2.", floatToken, "2."},
		"String":         {`"mellon"`, stringToken, "mellon"},
		"String-empty":   {`""`, stringToken, ""},
		"String-escape":  {`"a\nb"`, stringToken, "a\nb"},
		"String-quote":   {`"say \"hi\""`, stringToken, `say "hi"`},
		"String-unknown": {`"a\qb"`, stringToken, "aqb"},
		"Newline":        {"\n", newlineToken, "\n"},
		"Kw-inscribe":    {"inscribe", inscribeToken, "inscribe"},
		"Kw-proclaim":    {"proclaim", proclaimToken, "proclaim"},
		"Kw-if":          {"if", ifToken, "if"},
		"Kw-then":        {"then", thenToken, "then"},
		"Kw-else":        {"else", elseToken, "else"},
		"Kw-while":       {"while", whileToken, "while"},
		"Kw-do":          {"do", doToken, "do"},
		"Kw-end":         {"end", endToken, "end"},
		"Kw-spell":       {"spell", spellToken, "spell"},
		"Kw-return":      {"return", returnToken, "return"},
		"Kw-invoke":      {"invoke", invokeToken, "invoke"},
		"Kw-with":        {"with", withToken, "with"},
		"Kw-in":          {"in", inToken, "in"},
		"Kw-be":          {"be", beToken, "be"},
		"Kw-claim":       {"claim", claimToken, "claim"},
		"Kw-bear":        {"bear", bearToken, "bear"},
		"Kw-unbear":      {"unbear", unbearToken, "unbear"},
		"Kw-destroy":     {"destroy", destroyToken, "destroy"},
		"Kw-true":        {"true", trueToken, "true"},
		"Kw-false":       {"false", falseToken, "false"},
		"Kw-nil":         {"nil", nilToken, "nil"},
		"Alias-bind":     {"bind", inscribeToken, "bind"},
		"Alias-say":      {"say", proclaimToken, "say"},
		"Alias-speak":    {"speak", proclaimToken, "speak"},
		"Alias-when":     {"when", ifToken, "when"},
		"Alias-upon":     {"upon", thenToken, "upon"},
		"Alias-otherw":   {"otherwise", elseToken, "otherwise"},
		"Alias-endure":   {"endure", whileToken, "endure"},
		"Alias-weave":    {"weave", spellToken, "weave"},
		"Alias-yield":    {"yield", returnToken, "yield"},
		"Alias-summon":   {"summon", invokeToken, "summon"},
		"Alias-within":   {"within", inToken, "within"},
		"Alias-as":       {"as", beToken, "as"},
		"Alias-take":     {"take", claimToken, "take"},
		"Alias-wear":     {"wear", bearToken, "wear"},
		"Alias-remove":   {"remove", unbearToken, "remove"},
		"Alias-unmake":   {"unmake", destroyToken, "unmake"},
		"Alias-none":     {"none", nilToken, "none"},
		"Op-plus":        {"+", plusToken, "+"},
		"Op-minus":       {"-", minusToken, "-"},
		"Op-star":        {"*", starToken, "*"},
		"Op-slash":       {"/", slashToken, "/"},
		"Op-lparen":      {"(", lparenToken, "("},
		"Op-rparen":      {")", rparenToken, ")"},
		"Op-lbrack":      {"[", lbrackToken, "["},
		"Op-rbrack":      {"]", rbrackToken, "]"},
		"Op-lbrace":      {"{", lbraceToken, "{"},
		"Op-rbrace":      {"}", rbraceToken, "}"},
		"Op-lt":          {"<", ltToken, "<"},
		"Op-gt":          {">", gtToken, ">"},
		"Op-le":          {"<=", leToken, "<="},
		"Op-ge":          {">=", geToken, ">="},
		"Op-assign":      {"=", assignToken, "="},
		"Op-eq":          {"==", eqToken, "=="},
		"Op-ne":          {"!=", neToken, "!="},
		"Op-comma":       {",", commaToken, ","},
		"Op-colon":       {":", colonToken, ":"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			all := lexAll(c.text)
			if len(all) < 1 {
				t.Fatalf("no tokens for %q", c.text)
			}
			tok := all[0]
			if tok.Kind != c.kind {
				t.Errorf("%q lexed to wrong kind: want %v, got %v", c.text, c.kind, tok.Kind)
			}
			if tok.Value != c.val {
				t.Errorf("%q lexed to wrong value: want %q, got %q", c.text, c.val, tok.Value)
			}
			last := all[len(all)-1]
			if last.Kind != eofToken {
				t.Errorf("%q did not end with eofToken: got %v", c.text, last.Kind)
			}
		})
	}
}

// TestLexErrors tests that malformed input produces a badToken carrying a
// lex error instead of looping or panicking.
func TestLexErrors(t *testing.T) {
	cases := map[string]string{
		"BadChar":      "inscribe x = 1 @ 2",
		"LoneBang":     "1 ! 2",
		"TwoDots":      "1.2.3",
		"Unterminated": `proclaim "mellon`,
		"NewlineInStr": "proclaim \"mel\nlon\"",
		"BadEscapeEOF": `proclaim "mellon\`,
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			all := lexAll(text)
			var bad *token
			for i := range all {
				if all[i].Kind == badToken {
					bad = &all[i]
					break
				}
			}
			if bad == nil {
				t.Fatalf("%q lexed without a badToken", text)
			}
			if bad.Err == nil {
				t.Errorf("badToken for %q carries no error", text)
			}
			if _, ok := bad.Err.(*LexError); !ok {
				t.Errorf("badToken for %q carries %T, not *LexError", text, bad.Err)
			}
		})
	}
}

// TestLexPositions tests line and column tracking across lines.
func TestLexPositions(t *testing.T) {
	all := lexAll("inscribe x = 1\nproclaim x\n")
	want := []struct {
		kind      tokenKind
		line, col int
	}{
		{inscribeToken, 1, 1},
		{identToken, 1, 10},
		{assignToken, 1, 12},
		{intToken, 1, 14},
		{newlineToken, 1, 15},
		{proclaimToken, 2, 1},
		{identToken, 2, 10},
		{newlineToken, 2, 11},
	}
	if len(all) < len(want) {
		t.Fatalf("too few tokens: want at least %d, got %d", len(want), len(all))
	}
	for i, w := range want {
		tok := all[i]
		if tok.Kind != w.kind || tok.Line != w.line || tok.Col != w.col {
			t.Errorf("token %d: want %v at %d:%d, got %v at %d:%d", i, w.kind, w.line, w.col, tok.Kind, tok.Line, tok.Col)
		}
	}
}

// TestLexComments tests that comments vanish from the token stream.
func TestLexComments(t *testing.T) {
	all := lexAll("inscribe x = 1 # the one ring\nproclaim x # again")
	for _, tok := range all {
		if tok.Kind == badToken {
			t.Fatalf("comment produced badToken: %v", tok.Err)
		}
		if strings.Contains(tok.Value, "ring") || strings.Contains(tok.Value, "again") {
			t.Errorf("comment text leaked into token %v %q", tok.Kind, tok.Value)
		}
	}
}
