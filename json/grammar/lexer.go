// Package grammar describes JSON text as an EBNF grammar and matches input
// against it.
//
// The matcher walks the grammar expressions directly and shares no code with
// package parser, so the two can be checked against each other.
package grammar

import (
	_ "embed"
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/exp/ebnf"
)

// Start is the production a complete JSON text must match.
const Start = "JSONText"

// Filename is the name used for positions in grammar errors.
const Filename = "json.ebnf"

//go:embed json.ebnf
var source string

// Source returns the EBNF text of the JSON grammar.
func Source() string {
	return source
}

var loadJSON = sync.OnceValues(func() (ebnf.Grammar, error) {
	return Parse(Filename, strings.NewReader(source), Start)
})

// Load returns the verified JSON grammar.
func Load() (ebnf.Grammar, error) {
	return loadJSON()
}

// Parse reads an EBNF grammar and, if start is not empty, verifies that every
// production is defined and reachable from start.
func Parse(filename string, r io.Reader, start string) (ebnf.Grammar, error) {
	g, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	if start == "" {
		return g, nil
	}
	if err := ebnf.Verify(g, start); err != nil {
		return nil, fmt.Errorf("verify grammar: %w", err)
	}
	return g, nil
}

// Position represents a location in the matched text. Offset and Column
// count code points.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token represents a lexical token with its position.
type Token struct {
	Kind     string
	Literal  string
	Position Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Position, t.Kind, t.Literal)
}

// Token kinds produced by NextToken besides the lexical productions.
const (
	KindPunct = "punct"
	KindError = "ERROR"
	KindEOF   = "EOF"
)

// tokenProductions are tried in order; the longest match wins.
var tokenProductions = []string{"ws", "string", "number", "literal"}

const noMatch = -1

// memoKey is used for memoization of match results.
type memoKey struct {
	name   string
	offset int
}

// Lexer matches input against a grammar.
type Lexer struct {
	grammar  ebnf.Grammar
	input    []rune
	pos      int
	line     int
	column   int
	memo     map[memoKey]int  // match length, noMatch when the production fails
	visiting map[memoKey]bool // cycle detection
}

// NewLexer creates a lexer for the given grammar and input.
func NewLexer(grammar ebnf.Grammar, input string) *Lexer {
	return &Lexer{
		grammar:  grammar,
		input:    []rune(input),
		pos:      0,
		line:     1,
		column:   1,
		memo:     make(map[memoKey]int),
		visiting: make(map[memoKey]bool),
	}
}

// Position returns the current position in the input.
func (l *Lexer) Position() Position {
	return Position{
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) advance() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

// NextToken returns the next token from the input, or io.EOF at the end.
// Whitespace, strings, numbers and literals are matched with their lexical
// productions; structural characters become punct tokens and anything else
// a one code point ERROR token.
func (l *Lexer) NextToken() (Token, error) {
	if l.pos >= len(l.input) {
		return Token{Kind: KindEOF, Position: l.Position()}, io.EOF
	}

	startPos := l.Position()
	startOffset := l.pos

	bestKind := ""
	bestLen := 0
	for _, name := range tokenProductions {
		n := l.tryMatchName(name, startOffset)
		if n > bestLen {
			bestLen = n
			bestKind = name
		}
	}

	if bestLen == 0 {
		ch := l.advance()
		kind := KindError
		if strings.ContainsRune("{}[]:,", ch) {
			kind = KindPunct
		}
		return Token{
			Kind:     kind,
			Literal:  string(ch),
			Position: startPos,
		}, nil
	}

	for i := 0; i < bestLen; i++ {
		l.advance()
	}

	return Token{
		Kind:     bestKind,
		Literal:  string(l.input[startOffset : startOffset+bestLen]),
		Position: startPos,
	}, nil
}

// Tokenize reads all tokens from input. The final token has kind EOF.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err == io.EOF {
			tokens = append(tokens, tok)
			break
		}
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// Match returns how many code points from the current position the named
// production matches, or -1 if it does not match. Repetitions are greedy and
// alternatives take the longest match.
func (l *Lexer) Match(production string) int {
	return l.tryMatchName(production, l.pos)
}

// tryMatch attempts to match an expression at the given offset.
func (l *Lexer) tryMatch(expr ebnf.Expression, offset int) int {
	switch e := expr.(type) {
	case nil:
		return 0

	case *ebnf.Token:
		return l.tryMatchToken(e.String, offset)

	case *ebnf.Range:
		return l.tryMatchRange(e.Begin.String, e.End.String, offset)

	case ebnf.Sequence:
		total := 0
		for _, item := range e {
			n := l.tryMatch(item, offset+total)
			if n == noMatch {
				return noMatch
			}
			total += n
		}
		return total

	case ebnf.Alternative:
		best := noMatch
		for _, alt := range e {
			if n := l.tryMatch(alt, offset); n > best {
				best = n
			}
		}
		return best

	case *ebnf.Repetition:
		total := 0
		for {
			n := l.tryMatch(e.Body, offset+total)
			if n <= 0 {
				break
			}
			total += n
		}
		return total

	case *ebnf.Option:
		if n := l.tryMatch(e.Body, offset); n > 0 {
			return n
		}
		return 0

	case *ebnf.Group:
		return l.tryMatch(e.Body, offset)

	case *ebnf.Name:
		return l.tryMatchName(e.String, offset)

	default:
		return noMatch
	}
}

// tryMatchName matches a named production with memoization and cycle detection.
func (l *Lexer) tryMatchName(name string, offset int) int {
	key := memoKey{name: name, offset: offset}

	if result, ok := l.memo[key]; ok {
		return result
	}

	// Left recursion: fail this branch instead of looping.
	if l.visiting[key] {
		return noMatch
	}

	prod, ok := l.grammar[name]
	if !ok {
		l.memo[key] = noMatch
		return noMatch
	}

	l.visiting[key] = true
	result := l.tryMatch(prod.Expr, offset)
	delete(l.visiting, key)

	l.memo[key] = result
	return result
}

// tryMatchToken matches a literal token.
func (l *Lexer) tryMatchToken(token string, offset int) int {
	n := 0
	for _, want := range token {
		if offset+n >= len(l.input) || l.input[offset+n] != want {
			return noMatch
		}
		n++
	}
	return n
}

// tryMatchRange matches a character range (e.g., "a"…"z").
func (l *Lexer) tryMatchRange(begin, end string, offset int) int {
	if offset >= len(l.input) {
		return noMatch
	}
	lo, hi := []rune(begin), []rune(end)
	if len(lo) != 1 || len(hi) != 1 {
		return noMatch
	}
	ch := l.input[offset]
	if ch >= lo[0] && ch <= hi[0] {
		return 1
	}
	return noMatch
}

// Recognize reports whether text as a whole is a JSON text according to the
// EBNF grammar.
func Recognize(text string) (bool, error) {
	g, err := Load()
	if err != nil {
		return false, err
	}
	l := NewLexer(g, text)
	return l.Match(Start) == len(l.input), nil
}
