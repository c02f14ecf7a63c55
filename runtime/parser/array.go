package parser

import (
	"github.com/yay-lang/yay/core/value"
	"github.com/yay-lang/yay/runtime/outline"
)

// isInlineBullet reports whether a TEXT line begins a compact nested
// bullet: "- " after optional leading spaces.
func isInlineBullet(text string) bool {
	i := 0
	for i < len(text) && text[i] == ' ' {
		i++
	}
	return i+1 < len(text) && text[i] == '-' && text[i+1] == ' '
}

// validateInlineBullet rejects a bullet dash followed by two spaces.
func (p *Parser) validateInlineBullet(text string, line, col int) bool {
	i := 0
	for i < len(text) && text[i] == ' ' {
		i++
	}
	if i+2 < len(text) && text[i] == '-' && text[i+1] == ' ' && text[i+2] == ' ' {
		p.failf(line, col+i+2, `Unexpected space after "-"`)
		return false
	}
	return true
}

// inlineBulletValue extracts the content after a compact "- " bullet.
func inlineBulletValue(text string) string {
	i := 0
	for i < len(text) && text[i] == ' ' {
		i++
	}
	if i+1 < len(text) && text[i] == '-' && text[i+1] == ' ' {
		return text[i+2:]
	}
	return text
}

// parseNestedInlineBullet unwraps "- - - value" one bullet at a time,
// wrapping each level in a single-element array.
func (p *Parser) parseNestedInlineBullet(text string, line, col int) *value.Value {
	if isInlineBullet(text) {
		inner := p.parseNestedInlineBullet(inlineBulletValue(text), line, col+2)
		if p.err != nil {
			return nil
		}
		return value.ArrayOf(inner)
	}
	return p.parseScalar(text, line, col)
}

// parseMultilineArray consumes a run of sibling "- " STARTs into an
// array. minIndent, when non-negative, stops iteration as soon as a
// START appears at a shallower indent; named arrays use it so items
// below the property's level end the array.
func (p *Parser) parseMultilineArray(minIndent int) *value.Value {
	arr := value.NewArray()

	for p.pos < len(p.toks) && p.toks[p.pos].Kind == outline.Start && p.toks[p.pos].Text == "- " {
		listIndent := p.toks[p.pos].Indent
		if minIndent >= 0 && listIndent < minIndent {
			break
		}
		p.pos++

		p.pos = p.skipBreaks(p.pos)
		if p.pos >= len(p.toks) {
			break
		}
		next := p.toks[p.pos]

		switch {
		case next.Kind == outline.Start && next.Text == "- ":
			nested := p.parseMultilineArray(-1)
			if p.err != nil {
				return nil
			}
			arr.Push(nested)

		case next.Kind == outline.Text && isInlineBullet(next.Text):
			if !p.validateInlineBullet(next.Text, next.Line, next.Col) {
				return nil
			}

			nested := value.NewArray()

			// Collect every compact bullet line at this level.
			for p.pos < len(p.toks) && p.toks[p.pos].Kind == outline.Text &&
				isInlineBullet(p.toks[p.pos].Text) {
				bt := p.toks[p.pos]
				if !p.validateInlineBullet(bt.Text, bt.Line, bt.Col) {
					return nil
				}
				item := p.parseNestedInlineBullet(inlineBulletValue(bt.Text), bt.Line, bt.Col+2)
				if p.err != nil {
					return nil
				}
				nested.Push(item)
				p.pos++
			}

			// Deeper START items continue the same nested array.
			for p.pos < len(p.toks) && p.toks[p.pos].Kind == outline.Start &&
				p.toks[p.pos].Text == "- " && p.toks[p.pos].Indent > listIndent {
				p.pos++
				p.pos = p.skipBreaks(p.pos)
				if p.pos >= len(p.toks) {
					break
				}
				sub := p.parseValue()
				if p.err != nil {
					return nil
				}
				nested.Push(sub)
				p.pos = p.skipStops(p.pos)
			}

			arr.Push(nested)

		case next.Kind == outline.Text && next.Text[0] != '{' && next.Text[0] != '[' &&
			findColonOutsideQuotes(next.Text) >= 0:
			// Object item (not an inline container): sibling properties
			// key off the list indent.
			obj := p.parseNestedObject(listIndent)
			if p.err != nil {
				return nil
			}
			arr.Push(obj)

		case next.Kind == outline.Text:
			s := next.Text
			if s == "`" || (len(s) >= 2 && s[0] == '`' && s[1] == ' ') {
				firstLine := ""
				if len(s) > 2 {
					firstLine = s[2:]
				}
				v := p.parseBlockString(firstLine, listIndent)
				if p.err != nil {
					return nil
				}
				arr.Push(v)
			} else {
				v := p.parseValue()
				if p.err != nil {
					return nil
				}
				arr.Push(v)
			}

		default:
			p.pos++
		}

		p.pos = p.skipBreaksAndStops(p.pos)
	}

	return arr
}
