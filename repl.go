package gandalf

import (
	"bufio"
	"strings"
)

// NeedsMore reports whether source looks like an unfinished block, for
// interactive front ends deciding whether to keep prompting. It counts
// block-opening keywords against 'end' keywords; aliases count the same as
// the canonical forms because the tally runs over lexed tokens.
func NeedsMore(source string) bool {
	tokens := make(chan token)
	go lex(bufio.NewReader(strings.NewReader(source)), tokens)
	opens, ends := 0, 0
	for tok := range tokens {
		switch tok.Kind {
		case ifToken, whileToken, spellToken, inToken:
			opens++
		case endToken:
			ends++
		case badToken:
			// Let the parse attempt surface the lex error.
			for range tokens {
			}
			return false
		}
	}
	return opens > ends
}
