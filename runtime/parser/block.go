package parser

import (
	"strings"

	"github.com/yay-lang/yay/core/value"
	"github.com/yay-lang/yay/runtime/outline"
)

// blockLine is one collected body line of a block scalar. indent is -1
// for inline content on the leader line and -2 for a blank line.
type blockLine struct {
	text   string
	indent int
}

// parseBlockString parses a backtick block. baseIndent is -1 in free
// context (the cursor is on the leader token) and the property's indent
// in property context (the cursor is on the property token). Body lines
// are stripped to the least indent among them; leading and trailing
// blank lines drop, and a single newline is appended.
func (p *Parser) parseBlockString(firstLine string, baseIndent int) *value.Value {
	i := p.pos + 1
	isProperty := baseIndent >= 0

	var lines []blockLine
	if firstLine != "" {
		lines = append(lines, blockLine{firstLine, -1})
	}

	for i < len(p.toks) && (p.toks[i].Kind == outline.Text || p.toks[i].Kind == outline.Break) {
		if isProperty && p.toks[i].Kind == outline.Text && p.toks[i].Indent <= baseIndent {
			break
		}
		if p.toks[i].Kind == outline.Break {
			lines = append(lines, blockLine{"", -2})
		} else {
			lines = append(lines, blockLine{p.toks[i].Text, p.toks[i].Indent})
		}
		i++
	}
	p.pos = i

	const unset = int(^uint(0) >> 1)
	minIndent := unset
	for _, ln := range lines {
		if ln.indent >= 0 && ln.indent < minIndent {
			minIndent = ln.indent
		}
	}
	if minIndent == unset {
		minIndent = 0
	}

	// A bare leader on its own line contributes a leading newline, but
	// only outside property context.
	leadingNewline := firstLine == "" && len(lines) > 0 && !isProperty

	start := 0
	if firstLine == "" {
		for start < len(lines) && lines[start].text == "" {
			start++
		}
	}
	end := len(lines)
	for end > start && lines[end-1].text == "" {
		end--
	}

	var sb strings.Builder
	if leadingNewline && end > start {
		sb.WriteByte('\n')
	}
	for j := start; j < end; j++ {
		if j > start {
			sb.WriteByte('\n')
		}
		if lines[j].indent >= 0 {
			for k := lines[j].indent - minIndent; k > 0; k-- {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(lines[j].text)
	}
	if end > start {
		sb.WriteByte('\n')
	}

	if sb.Len() == 0 {
		p.failBare(`Empty block string not allowed (use "" or "\n" explicitly)`)
		return nil
	}
	return value.NewString(sb.String())
}

// parseBlockBytes parses a > hex block in free context: the cursor is
// on the leader token, whose line may carry hex and/or a comment.
// Uppercase hex is rejected here.
func (p *Parser) parseBlockBytes() *value.Value {
	t := p.toks[p.pos]
	s := t.Text
	baseIndent := t.Indent

	hexStart, hexColOffset := 1, 1
	if len(s) > 1 && s[1] == ' ' {
		hexStart, hexColOffset = 2, 2
	}

	firstHex := s[hexStart:]
	hasComment := false
	if ci := strings.IndexByte(firstHex, '#'); ci >= 0 {
		firstHex = firstHex[:ci]
		hasComment = true
	}

	if strings.Trim(firstHex, " ") == "" && !hasComment {
		p.failBare("Expected hex or comment in hex block")
		return nil
	}

	var hex []byte
	for i := 0; i < len(firstHex); i++ {
		c := firstHex[i]
		if c == ' ' {
			continue
		}
		if c >= 'A' && c <= 'F' {
			p.failf(t.Line, t.Col+hexColOffset+i, "Uppercase hex digit (use lowercase)")
			return nil
		}
		hex = append(hex, c)
	}
	p.pos++

	for p.pos < len(p.toks) && p.toks[p.pos].Kind == outline.Text && p.toks[p.pos].Indent > baseIndent {
		lt := p.toks[p.pos]
		line := lt.Text
		if ci := strings.IndexByte(line, '#'); ci >= 0 {
			line = line[:ci]
		}
		for i := 0; i < len(line); i++ {
			c := line[i]
			if c == ' ' {
				continue
			}
			if c >= 'A' && c <= 'F' {
				p.failf(lt.Line, lt.Col+i, "Uppercase hex digit (use lowercase)")
				return nil
			}
			hex = append(hex, c)
		}
		p.pos++
	}

	if len(hex)%2 != 0 {
		p.failf(t.Line, t.Col, "Odd number of hex digits in byte literal")
		return nil
	}
	return value.BytesFromHex(string(hex))
}

// parsePropertyBlockBytes parses "key: >" block bytes. The property
// path folds hex case instead of rejecting uppercase; the strict rule
// applies to free-standing blocks only.
func (p *Parser) parsePropertyBlockBytes(vPart string) *value.Value {
	t := p.toks[p.pos]
	baseIndent := t.Indent

	s := vPart[1:]
	if len(s) > 0 && s[0] == ' ' {
		s = s[1:]
	}
	if ci := strings.IndexByte(s, '#'); ci >= 0 {
		s = s[:ci]
	}

	var hex []byte
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' {
			hex = append(hex, lowerHex(s[i]))
		}
	}
	p.pos++

	for p.pos < len(p.toks) && p.toks[p.pos].Kind == outline.Text && p.toks[p.pos].Indent > baseIndent {
		line := p.toks[p.pos].Text
		if ci := strings.IndexByte(line, '#'); ci >= 0 {
			line = line[:ci]
		}
		for i := 0; i < len(line); i++ {
			if line[i] != ' ' {
				hex = append(hex, lowerHex(line[i]))
			}
		}
		p.pos++
	}

	if len(hex)%2 != 0 {
		p.failf(t.Line, t.Col, "Odd number of hex digits in byte literal")
		return nil
	}
	return value.BytesFromHex(string(hex))
}
