// Package parser implements phase 3 of the pipeline: a recursive
// descent value builder over the outline token stream. It consumes the
// stream with an index cursor and never backtracks; disambiguation
// between nested object, multi-line array and concatenated strings is
// decided from the next non-trivial token.
package parser

import (
	"log/slog"
	"math"
	"strings"

	"github.com/yay-lang/yay/core/diag"
	"github.com/yay-lang/yay/core/value"
	"github.com/yay-lang/yay/runtime/outline"
)

// Parser holds the cursor state of one parse. A Parser is used for a
// single token stream and is not safe for concurrent use; parse
// independent documents with independent Parsers.
type Parser struct {
	toks     []outline.Token
	pos      int
	filename string
	logger   *slog.Logger
	err      *diag.Error
}

// Parse builds a value tree from the token stream. The first violation
// aborts the parse; partially built values are dropped.
func Parse(toks []outline.Token, opts ...Option) (*value.Value, *diag.Error) {
	p := &Parser{toks: toks}
	for _, opt := range opts {
		opt(p)
	}
	v := p.parseRoot()
	if p.err != nil {
		return nil, p.err
	}
	return v, nil
}

// failf records the first error. Positions are 0-based here; diag.New
// shifts them to 1-based.
func (p *Parser) failf(line, col int, format string, args ...any) {
	if p.err == nil {
		p.err = diag.New(line, col, format, args...)
	}
}

// failBare records a first error that carries no location.
func (p *Parser) failBare(format string, args ...any) {
	if p.err == nil {
		p.err = diag.Bare(format, args...)
	}
}

func (p *Parser) debug(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}

func (p *Parser) skipBreaksAndStops(i int) int {
	for i < len(p.toks) && (p.toks[i].Kind == outline.Stop || p.toks[i].Kind == outline.Break) {
		i++
	}
	return i
}

func (p *Parser) skipBreaks(i int) int {
	for i < len(p.toks) && p.toks[i].Kind == outline.Break {
		i++
	}
	return i
}

func (p *Parser) skipStops(i int) int {
	for i < len(p.toks) && p.toks[i].Kind == outline.Stop {
		i++
	}
	return i
}

// parseRoot dispatches on the first non-trivial token: an indent-0
// property list parses as the root object, anything else as a single
// value followed by nothing.
func (p *Parser) parseRoot() *value.Value {
	i := p.skipBreaksAndStops(0)

	if i >= len(p.toks) {
		if p.filename != "" {
			p.failBare("No value found in document <%s>", p.filename)
		} else {
			p.failBare("No value found in document")
		}
		return nil
	}

	t := p.toks[i]

	if t.Kind == outline.Text && t.Indent > 0 {
		p.failf(t.Line, 0, "Unexpected indent")
		return nil
	}

	// Root object: a top-level colon outside quotes, not an inline
	// object or array, at indent 0.
	if t.Kind == outline.Text && t.Text[0] != '{' && t.Text[0] != '[' &&
		findColonOutsideQuotes(t.Text) >= 0 && t.Indent == 0 {
		p.debug("root dispatch", "shape", "object", "line", t.Line)
		p.pos = i
		v := p.parseRootObject()
		if p.err != nil {
			return nil
		}
		if j := p.skipBreaksAndStops(p.pos); j < len(p.toks) {
			extra := p.toks[j]
			p.failf(extra.Line, extra.Col, "Unexpected extra content")
			return nil
		}
		return v
	}

	p.debug("root dispatch", "shape", "value", "line", t.Line)
	p.pos = i
	v := p.parseValue()
	if p.err != nil {
		return nil
	}
	if j := p.skipBreaksAndStops(p.pos); j < len(p.toks) {
		extra := p.toks[j]
		p.failf(extra.Line, extra.Col, "Unexpected extra content")
		return nil
	}
	return v
}

// parseRootObject consumes the rest of the stream as an indent-0
// property list. Tokens that are not indent-0 properties are stray
// leftovers of already-consumed nested values and are skipped.
func (p *Parser) parseRootObject() *value.Value {
	obj := value.NewObject()

	for p.pos < len(p.toks) {
		t := p.toks[p.pos]

		if t.Kind == outline.Stop || t.Kind == outline.Break {
			p.pos++
			continue
		}
		if t.Kind != outline.Text || t.Indent != 0 {
			p.pos++
			continue
		}

		colonIdx := findColonOutsideQuotes(t.Text)
		if colonIdx < 0 {
			p.pos++
			continue
		}

		if !p.validateObjectProperty(t.Text, colonIdx, t.Line, t.Col) {
			return nil
		}

		key := p.parseKeyName(t.Text[:colonIdx], t.Line, t.Col)
		if p.err != nil {
			return nil
		}

		vPart, vCol := propertyValuePart(t.Text, colonIdx, t.Col)

		val := p.parseObjectPropertyValue(t, vPart, vCol)
		if p.err != nil {
			return nil
		}
		obj.Set(key, val)
	}

	return obj
}

// parseNestedObject consumes sibling properties at or beyond baseIndent.
func (p *Parser) parseNestedObject(baseIndent int) *value.Value {
	obj := value.NewObject()

	for p.pos < len(p.toks) {
		t := p.toks[p.pos]

		if t.Kind == outline.Stop || t.Kind == outline.Break {
			p.pos++
			continue
		}
		if t.Kind != outline.Text {
			// A START opens a new list item; the object ends here.
			break
		}

		colonIdx := findColonOutsideQuotes(t.Text)
		if colonIdx < 0 || t.Indent < baseIndent {
			break
		}

		if !p.validateObjectProperty(t.Text, colonIdx, t.Line, t.Col) {
			return nil
		}

		key := p.parseKeyName(t.Text[:colonIdx], t.Line, t.Col)
		if p.err != nil {
			return nil
		}

		vPart, vCol := propertyValuePart(t.Text, colonIdx, t.Col)

		if key == "" {
			p.pos++
			continue
		}

		val := p.parseObjectPropertyValue(t, vPart, vCol)
		if p.err != nil {
			return nil
		}
		obj.Set(key, val)
	}

	return obj
}

// propertyValuePart extracts the value text after the colon, skipping
// the separating spaces, and reports the 0-based column it starts at.
func propertyValuePart(text string, colonIdx, col int) (string, int) {
	vPart := text[colonIdx+1:]
	vCol := col + colonIdx + 1
	for len(vPart) > 0 && vPart[0] == ' ' {
		vPart = vPart[1:]
		vCol++
	}
	return vPart, vCol
}

// parseObjectPropertyValue parses the value of one property. vPart is
// the text after "key: " (possibly empty); t is the property's TEXT
// token, still at the cursor.
func (p *Parser) parseObjectPropertyValue(t outline.Token, vPart string, vCol int) *value.Value {
	if vPart == "{}" {
		p.pos++
		return value.NewObject()
	}

	// Block string: the leader must stand alone after the colon.
	if len(vPart) > 0 && vPart[0] == '`' {
		if len(vPart) > 1 {
			p.failBare("Expected newline after block leader in property")
			return nil
		}
		return p.parseBlockString("", t.Indent)
	}

	// Block bytes: the leader may be followed by a comment, not hex.
	if len(vPart) > 0 && vPart[0] == '>' && !strings.ContainsRune(vPart, '<') {
		if len(vPart) > 1 {
			after := strings.TrimLeft(vPart[1:], " ")
			if after != "" && after[0] != '#' {
				p.failBare("Expected newline after block leader in property")
				return nil
			}
		}
		return p.parsePropertyBlockBytes(vPart)
	}

	if len(vPart) > 0 {
		p.pos++
		v := p.parseScalar(vPart, t.Line, vCol)
		if p.err != nil {
			return nil
		}
		return v
	}

	// Empty value part: the value is the following indented block.
	colonIdx := findColonOutsideQuotes(t.Text)
	p.pos++
	j := p.skipBreaksAndStops(p.pos)

	if j >= len(p.toks) {
		p.failf(t.Line, t.Col+colonIdx+1, "Expected value after property")
		return nil
	}

	next := p.toks[j]

	if next.Kind == outline.Start && next.Text == "- " {
		p.pos = j
		return p.parseMultilineArray(next.Indent)
	}

	// Block leaders must share the property's line.
	if next.Kind == outline.Text && next.Text == "`" {
		p.failf(next.Line, 0, "Unexpected indent")
		return nil
	}
	if next.Kind == outline.Text && len(next.Text) > 0 && next.Text[0] == '>' &&
		!strings.ContainsRune(next.Text, '<') {
		p.failf(next.Line, 0, "Unexpected indent")
		return nil
	}

	if next.Kind == outline.Text && next.Indent > t.Indent {
		trimmed := strings.TrimLeft(next.Text, " ")
		if len(trimmed) > 0 {
			// Inline containers and numbers belong on the property
			// line, not on their own indented line.
			c0 := trimmed[0]
			if c0 == '[' || c0 == '{' || c0 == '<' {
				p.failf(next.Line, 0, "Unexpected indent")
				return nil
			}
			if isDigit(c0) ||
				(c0 == '-' && len(trimmed) > 1 && isDigit(trimmed[1])) ||
				(c0 == '.' && len(trimmed) > 1 && isDigit(trimmed[1])) {
				p.failf(next.Line, 0, "Unexpected indent")
				return nil
			}
		}

		if isQuotedLine(trimmed) {
			p.pos = j
			v := p.parseConcatenatedStrings(next.Indent)
			if p.err != nil {
				return nil
			}
			if v != nil {
				return v
			}
			// A single quoted string alone on its own line is invalid;
			// the inline form must be used.
			p.failf(next.Line, 0, "Unexpected indent")
			return nil
		}

		p.pos = j
		return p.parseNestedObject(next.Indent)
	}

	p.failf(t.Line, t.Col+colonIdx+1, "Expected value after property")
	return nil
}

// validateObjectProperty enforces the key and colon discipline of a
// block property line.
func (p *Parser) validateObjectProperty(text string, colonIdx, line, col int) bool {
	if colonIdx > 0 && text[colonIdx-1] == ' ' {
		p.failf(line, col+colonIdx-1, `Unexpected space before ":"`)
		return false
	}

	after := text[colonIdx+1:]
	switch {
	case after == "":
		// Colon at end of line: a block value follows.
	case after[0] != ' ':
		p.failf(line, col+colonIdx, `Expected space after ":"`)
		return false
	case len(after) >= 2 && after[1] == ' ':
		p.failf(line, col+colonIdx+2, `Unexpected space after ":"`)
		return false
	}

	if text[0] != '"' && text[0] != '\'' {
		for ki := 0; ki < colonIdx; ki++ {
			kc := text[ki]
			if !isAlnumByte(kc) && kc != '_' && kc != '-' {
				p.failf(line, col+ki, "Invalid key character")
				return false
			}
		}
	}

	return true
}

// parseKeyName unquotes a property key. Double-quoted keys are
// processed with the double-quoted string rules; single-quoted keys are
// taken verbatim.
func (p *Parser) parseKeyName(s string, line, col int) string {
	s = strings.TrimLeft(s, " ")
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		v := p.parseDoubleQuotedString(s, line, col)
		if p.err != nil {
			return ""
		}
		return v.Str()
	}
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return s[1 : len(s)-1]
	}
	return strings.TrimRight(s, " ")
}

// isQuotedLine reports whether a trimmed line is entirely one quoted
// string.
func isQuotedLine(trimmed string) bool {
	n := len(trimmed)
	if n < 2 {
		return false
	}
	return (trimmed[0] == '"' && trimmed[n-1] == '"') ||
		(trimmed[0] == '\'' && trimmed[n-1] == '\'')
}

// parseConcatenatedStrings collects successive quoted-string lines at
// or beyond baseIndent and concatenates their payloads with no
// separator. It returns nil without an error when fewer than two lines
// qualify; the caller rejects that shape.
func (p *Parser) parseConcatenatedStrings(baseIndent int) *value.Value {
	var parts []string

	for p.pos < len(p.toks) {
		t := p.toks[p.pos]

		if t.Kind == outline.Break || t.Kind == outline.Stop {
			p.pos++
			continue
		}
		if t.Kind != outline.Text || t.Indent < baseIndent {
			break
		}

		trimmed := strings.TrimLeft(t.Text, " ")
		if !isQuotedLine(trimmed) {
			break
		}

		var parsed *value.Value
		if trimmed[0] == '"' {
			parsed = p.parseDoubleQuotedString(trimmed, t.Line, t.Col)
		} else {
			parsed = parseSingleQuotedString(trimmed)
		}
		if p.err != nil {
			return nil
		}

		parts = append(parts, parsed.Str())
		p.pos++
	}

	if len(parts) < 2 {
		return nil
	}
	return value.NewString(strings.Join(parts, ""))
}

// parseValue parses a single value at the cursor.
func (p *Parser) parseValue() *value.Value {
	if p.pos >= len(p.toks) {
		return value.NewNull()
	}

	t := p.toks[p.pos]

	if t.Kind == outline.Text {
		if len(t.Text) > 0 && t.Text[0] == ' ' {
			p.failf(t.Line, t.Col, "Unexpected leading space")
			return nil
		}
		if t.Text == "$" {
			p.failf(t.Line, t.Col, `Unexpected character "$"`)
			return nil
		}
	}

	if t.Kind == outline.Start && t.Text == "- " {
		return p.parseMultilineArray(-1)
	}

	if t.Kind == outline.Text {
		s := t.Text

		switch s {
		case "null":
			p.pos++
			return value.NewNull()
		case "true":
			p.pos++
			return value.NewBool(true)
		case "false":
			p.pos++
			return value.NewBool(false)
		case "nan":
			p.pos++
			return value.NewFloat(math.NaN())
		case "infinity":
			p.pos++
			return value.NewFloat(math.Inf(1))
		case "-infinity":
			p.pos++
			return value.NewFloat(math.Inf(-1))
		}

		if isFloatStr(s) || isIntegerStr(s) {
			v := p.parseNumberWithValidation(s, t.Line, t.Col)
			if p.err != nil {
				return nil
			}
			p.pos++
			return v
		}

		if s == "`" || (len(s) >= 2 && s[0] == '`' && s[1] == ' ') {
			firstLine := ""
			if len(s) > 2 {
				firstLine = s[2:]
			}
			return p.parseBlockString(firstLine, -1)
		}

		if s[0] == '>' && !strings.ContainsRune(s, '<') {
			return p.parseBlockBytes()
		}

		if len(s) > 1 && s[0] == '"' {
			if s[len(s)-1] != '"' {
				p.failf(t.Line, t.Col+len(s)-1, "Unterminated string")
				return nil
			}
			p.pos++
			return p.parseDoubleQuotedString(s, t.Line, t.Col)
		}
		if len(s) > 1 && s[0] == '\'' {
			if s[len(s)-1] != '\'' {
				p.failf(t.Line, t.Col+len(s)-1, "Unterminated string")
				return nil
			}
			p.pos++
			return parseSingleQuotedString(s)
		}

		if s[0] == '[' {
			if !strings.ContainsRune(s, ']') {
				p.failf(t.Line, t.Col, "Unexpected newline in inline array")
				return nil
			}
			p.pos++
			v, _ := p.parseInlineValue(s, t.Line, t.Col)
			if p.err != nil {
				return nil
			}
			return v
		}
		if s[0] == '{' {
			if !strings.ContainsRune(s, '}') {
				p.failf(t.Line, t.Col, "Unexpected newline in inline object")
				return nil
			}
			p.pos++
			v, _ := p.parseInlineValue(s, t.Line, t.Col)
			if p.err != nil {
				return nil
			}
			return v
		}
		if s[0] == '<' {
			p.pos++
			v := p.parseAngleBytes(s, t.Line, t.Col)
			if p.err != nil {
				return nil
			}
			return v
		}

		if colonIdx := findColonOutsideQuotes(s); colonIdx >= 0 {
			key := p.parseKeyName(s[:colonIdx], t.Line, t.Col)
			if p.err != nil {
				return nil
			}
			vPart, vCol := propertyValuePart(s, colonIdx, t.Col)

			obj := value.NewObject()
			val := p.parseObjectPropertyValue(t, vPart, vCol)
			if p.err != nil {
				return nil
			}
			return obj.Set(key, val)
		}

		p.pos++
		v := p.parseScalar(s, t.Line, t.Col)
		if p.err != nil {
			return nil
		}
		return v
	}

	p.pos++
	return value.NewNull()
}

// findColonOutsideQuotes locates the first colon outside any quoted
// substring, or -1.
func findColonOutsideQuotes(s string) int {
	inDouble, inSingle, escape := false, false, false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if escape {
			escape = false
			continue
		}
		if c == '\\' && (inDouble || inSingle) {
			escape = true
			continue
		}

		switch {
		case c == '"' && !inSingle:
			inDouble = !inDouble
		case c == '\'' && !inDouble:
			inSingle = !inSingle
		case c == ':' && !inDouble && !inSingle:
			return i
		}
	}

	return -1
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlnumByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || isDigit(c)
}

func isIdentStart(c byte) bool { return isAlnumByte(c) || c == '_' }

func isIdentPart(c byte) bool { return isAlnumByte(c) || c == '_' || c == '-' }

func lowerHex(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
