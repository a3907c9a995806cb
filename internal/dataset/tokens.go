package dataset

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ParseTokenField parses a serialized list of strings such as
// ['data', "analyst", 'python'] into its elements.
//
// Elements may use single or double quotes and backslash escapes. A trailing
// comma and the empty list [] are accepted. A blank cell yields no tokens.
func ParseTokenField(s string) ([]string, error) {
	p := &tokenParser{src: []rune(strings.TrimSpace(s))}
	if len(p.src) == 0 {
		return nil, nil
	}
	return p.parse()
}

type tokenParser struct {
	src []rune
	pos int
}

func (p *tokenParser) parse() ([]string, error) {
	if !p.consume('[') {
		return nil, p.errorf("expected '['")
	}

	tokens := []string{}
	for {
		p.skipSpace()
		if p.consume(']') {
			break
		}

		tok, err := p.quoted()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)

		p.skipSpace()
		if p.consume(',') {
			continue
		}
		if p.consume(']') {
			break
		}
		return nil, p.errorf("expected ',' or ']'")
	}

	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, p.errorf("unexpected trailing input")
	}
	return tokens, nil
}

func (p *tokenParser) quoted() (string, error) {
	if p.pos >= len(p.src) {
		return "", p.errorf("unexpected end of input")
	}
	quote := p.src[p.pos]
	if quote != '\'' && quote != '"' {
		return "", p.errorf("expected quoted string")
	}
	p.pos++

	var b strings.Builder
	for p.pos < len(p.src) {
		r := p.src[p.pos]
		p.pos++
		switch {
		case r == quote:
			return b.String(), nil
		case r == '\\':
			if err := p.escape(&b); err != nil {
				return "", err
			}
		default:
			b.WriteRune(r)
		}
	}
	return "", p.errorf("unterminated string")
}

// escape decodes the escape sequence following a backslash. Unknown
// sequences keep their backslash.
func (p *tokenParser) escape(b *strings.Builder) error {
	if p.pos >= len(p.src) {
		return p.errorf("dangling escape")
	}
	r := p.src[p.pos]
	p.pos++

	switch r {
	case 'n':
		b.WriteRune('\n')
	case 't':
		b.WriteRune('\t')
	case 'r':
		b.WriteRune('\r')
	case 'a':
		b.WriteRune('\a')
	case 'b':
		b.WriteRune('\b')
	case 'f':
		b.WriteRune('\f')
	case 'v':
		b.WriteRune('\v')
	case '\\', '\'', '"':
		b.WriteRune(r)
	case 'x':
		return p.hexEscape(b, 2)
	case 'u':
		return p.hexEscape(b, 4)
	case 'U':
		return p.hexEscape(b, 8)
	default:
		b.WriteRune('\\')
		b.WriteRune(r)
	}
	return nil
}

func (p *tokenParser) hexEscape(b *strings.Builder, digits int) error {
	if p.pos+digits > len(p.src) {
		return p.errorf("truncated escape")
	}
	v, err := strconv.ParseUint(string(p.src[p.pos:p.pos+digits]), 16, 32)
	if err != nil || v > unicode.MaxRune {
		return p.errorf("invalid escape")
	}
	p.pos += digits
	b.WriteRune(rune(v))
	return nil
}

func (p *tokenParser) consume(r rune) bool {
	if p.pos < len(p.src) && p.src[p.pos] == r {
		p.pos++
		return true
	}
	return false
}

func (p *tokenParser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *tokenParser) errorf(msg string) error {
	return fmt.Errorf("%s at offset %d", msg, p.pos)
}
