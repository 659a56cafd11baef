package gymlog

import (
	"fmt"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// logLexer tokenizes the log. A date switches to the Name state so the
// exercise name after the next slash is taken verbatim, spaces included,
// up to the following slash or end of line. Blank lines fold into a single
// Newline token.
var logLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n(?:[ \t\r]*\n)*`},
		{Name: "Date", Pattern: `\d{2}\.\d{2}\.\d{4}`, Action: lexer.Push("Name")},
		{Name: "Int", Pattern: `\d+`},
		{Name: "Ident", Pattern: `[a-zA-Z]+`},
		{Name: "Punct", Pattern: `[^ \t\r\n]`},
	},
	"Name": {
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Name", Pattern: `/[^/\n]+`, Action: lexer.Pop()},
		{Name: "Punct", Pattern: `[^ \t\r]`, Action: lexer.Pop()},
	},
})

var logParser = participle.MustBuild[File](
	participle.Lexer(logLexer),
	participle.Elide("Whitespace"),
	participle.Map(stripNameSlash, "Name"),
	participle.UseLookahead(2),
)

// stripNameSlash drops the slash the Name token starts with.
func stripNameSlash(tok lexer.Token) (lexer.Token, error) {
	tok.Value = tok.Value[1:]
	tok.Pos.Offset++
	tok.Pos.Column++
	return tok, nil
}

// ParseTree matches text against the log grammar and returns the parse
// tree. Any mismatch fails the whole input with a *SyntaxError.
func ParseTree(text string) (*File, error) {
	if err := checkUTF8(text); err != nil {
		return nil, err
	}
	file, err := logParser.ParseString("", text)
	if err != nil {
		return nil, newSyntaxError(err)
	}
	return file, nil
}

// checkUTF8 rejects input that is not valid UTF-8, pointing at the first
// bad byte.
func checkUTF8(text string) error {
	if utf8.ValidString(text) {
		return nil
	}
	line, col := 1, 1
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && size == 1 {
			return &SyntaxError{
				Line:     line,
				Column:   col,
				Expected: []string{expUTF8},
				Found:    fmt.Sprintf("byte 0x%02x", text[i]),
			}
		}
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
		i += size
	}
	return nil
}
