// Package outline implements phase 2 of the pipeline: it translates the
// indent structure of the scanned lines into an explicit block stream of
// START, STOP, TEXT and BREAK tokens.
package outline

import (
	"fmt"

	"github.com/yay-lang/yay/runtime/scanner"
)

// Kind is an outline token kind.
type Kind int

const (
	Start Kind = iota // opens a list-item block; carries the leader
	Stop              // closes the most recently opened block
	Text              // content of a non-empty line
	Break             // one blank line; runs of blanks collapse
)

var kindNames = [...]string{
	Start: "START",
	Stop:  "STOP",
	Text:  "TEXT",
	Break: "BREAK",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && int(k) >= 0 {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is one element of the block stream. Line and Col are 0-based;
// for TEXT tokens Col equals the indent.
type Token struct {
	Kind   Kind
	Text   string
	Indent int
	Line   int
	Col    int
}

// Lex converts scan lines to the block stream. The indent stack is
// driven by list leaders only: a plain indented line never opens a
// block, so STOPs appear only when list nesting unwinds. Lexing cannot
// fail; indentation mistakes surface later as parse errors.
func Lex(lines []scanner.Line) []Token {
	toks := make([]Token, 0, len(lines)+8)
	stack := make([]int, 1, 16) // bottom is always indent 0
	top := 0
	broken := false

	for _, ln := range lines {
		for ln.Indent < top {
			toks = append(toks, Token{Kind: Stop})
			stack = stack[:len(stack)-1]
			top = stack[len(stack)-1]
		}

		if ln.Leader != "" {
			if ln.Indent > top {
				toks = append(toks, Token{Kind: Start, Text: ln.Leader, Indent: ln.Indent, Line: ln.Num, Col: ln.Indent})
				stack = append(stack, ln.Indent)
				top = ln.Indent
				broken = false
			} else if ln.Indent == top {
				// Sibling list item: close the previous one first.
				toks = append(toks,
					Token{Kind: Stop},
					Token{Kind: Start, Text: ln.Leader, Indent: ln.Indent, Line: ln.Num, Col: ln.Indent})
				broken = false
			}
		}

		if ln.Text != "" {
			toks = append(toks, Token{Kind: Text, Text: ln.Text, Indent: ln.Indent, Line: ln.Num, Col: ln.Indent})
			broken = false
		} else if !broken {
			toks = append(toks, Token{Kind: Break, Indent: ln.Indent, Line: ln.Num})
			broken = true
		}
	}

	for len(stack) > 1 {
		toks = append(toks, Token{Kind: Stop})
		stack = stack[:len(stack)-1]
	}

	return toks
}
