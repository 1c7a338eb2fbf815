package render

import (
	"strings"
)

const (
	leftDelim  = "{{"
	rightDelim = "}}"

	// escapedDelim renders as a literal leftDelim.
	escapedDelim = "{{{{"
)

type tokenKind int

const (
	tokenText  tokenKind = iota // literal text
	tokenVar                    // {{path}}
	tokenOpen                   // {{#path}}
	tokenClose                  // {{/path}}
)

func (k tokenKind) String() string {
	switch k {
	case tokenText:
		return "text"
	case tokenVar:
		return "var"
	case tokenOpen:
		return "open"
	case tokenClose:
		return "close"
	default:
		return "unknown"
	}
}

// token is a lexical item. For tag tokens val holds the trimmed dot path;
// for text tokens it holds the literal text. off is the byte offset of the
// token in the source.
type token struct {
	kind tokenKind
	val  string
	off  int
}

// lex splits src into text and tag tokens. "{{{{" yields a literal "{{",
// and a substitution tag whose body is not a dot path (such as
// "{{ .Values.image }}") is kept as literal text. It fails on an
// unterminated "{{" and on block tags without a valid path.
func lex(name, src string) ([]token, error) {
	var tokens []token
	pos := 0
	for pos < len(src) {
		start := strings.Index(src[pos:], leftDelim)
		if start < 0 {
			tokens = append(tokens, token{kind: tokenText, val: src[pos:], off: pos})
			break
		}
		start += pos
		if start > pos {
			tokens = append(tokens, token{kind: tokenText, val: src[pos:start], off: pos})
		}

		if strings.HasPrefix(src[start:], escapedDelim) {
			tokens = append(tokens, token{kind: tokenText, val: leftDelim, off: start})
			pos = start + len(escapedDelim)
			continue
		}

		end := strings.Index(src[start+len(leftDelim):], rightDelim)
		if end < 0 {
			return nil, newSyntaxError(name, src, start,
				"unclosed action: missing %q (write %q for a literal %q)", rightDelim, escapedDelim, leftDelim)
		}
		end += start + len(leftDelim)
		pos = end + len(rightDelim)

		tok, err := lexTag(name, src, start, src[start+len(leftDelim):end])
		if err != nil {
			return nil, err
		}
		if tok.kind == tokenText {
			tok.val = src[start:pos]
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// lexTag classifies the body of a tag. Substitution tags without a valid
// path come back as text tokens for the caller to fill in.
func lexTag(name, src string, off int, inner string) (token, error) {
	inner = strings.TrimSpace(inner)
	kind := tokenVar
	switch {
	case strings.HasPrefix(inner, "#"):
		kind = tokenOpen
		inner = strings.TrimSpace(inner[1:])
	case strings.HasPrefix(inner, "/"):
		kind = tokenClose
		inner = strings.TrimSpace(inner[1:])
	}

	if kind == tokenVar && !validPath(inner) {
		return token{kind: tokenText, off: off}, nil
	}
	if inner == "" {
		return token{}, newSyntaxError(name, src, off, "empty %s tag", kind)
	}
	if !validPath(inner) {
		return token{}, newSyntaxError(name, src, off, "invalid key %q", inner)
	}
	return token{kind: kind, val: inner, off: off}, nil
}

// validPath reports whether p is a non-empty dot path whose segments are
// non-empty and free of whitespace and braces.
func validPath(p string) bool {
	for _, seg := range strings.Split(p, ".") {
		if seg == "" {
			return false
		}
		if strings.ContainsAny(seg, " \t\r\n{}#/") {
			return false
		}
	}
	return true
}
