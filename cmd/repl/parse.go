package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/SferaDev/kysely/nodes"
)

// token is a single argument word. quoted is set when any part of the word
// came from a quoted string, which forces the value to stay a string.
type token struct {
	text   string
	quoted bool
}

// tokenize splits command arguments on whitespace and commas, keeping quoted
// strings together. Quotes may be single or double and are stripped, so
// name='Ada Lovelace' comes back as one token.
func tokenize(s string) []token {
	var (
		tokens  []token
		cur     strings.Builder
		quote   byte
		quoted  bool
		inToken bool
	)
	flush := func() {
		if inToken {
			tokens = append(tokens, token{text: cur.String(), quoted: quoted})
			cur.Reset()
			quoted = false
			inToken = false
		}
	}
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			} else {
				cur.WriteByte(ch)
			}
		case ch == '\'' || ch == '"':
			quote = ch
			quoted = true
			inToken = true
		case ch == ' ' || ch == '\t' || ch == ',':
			flush()
		default:
			cur.WriteByte(ch)
			inToken = true
		}
	}
	flush()
	return tokens
}

// parseValue interprets a literal token. Quoted text stays a string; the
// null, true, false, generated and default keywords map to their values;
// anything numeric parses as int or float64. Everything else is a bare
// string.
func parseValue(t token) any {
	if t.quoted {
		return t.text
	}
	switch strings.ToLower(t.text) {
	case "null":
		return nil
	case "true":
		return true
	case "false":
		return false
	case "generated", "default":
		return nodes.Generated
	}
	if n, err := strconv.Atoi(t.text); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(t.text, 64); err == nil {
		return f
	}
	return t.text
}

// parseCondition parses "column op value" for where clauses. Multi-word
// operators (not in, not like, is not) are stitched back together, and the
// in and not in operators collect every remaining token into a value slice.
func parseCondition(args string) (column, op string, value any, err error) {
	toks := tokenize(args)
	if len(toks) < 2 {
		return "", "", nil, errors.New("usage: where <column> <op> <value>")
	}
	column = toks[0].text
	op = strings.ToLower(toks[1].text)
	rest := toks[2:]

	switch op {
	case "not":
		if len(rest) == 0 {
			return "", "", nil, fmt.Errorf("incomplete operator %q", "not")
		}
		op = "not " + strings.ToLower(rest[0].text)
		rest = rest[1:]
	case "is":
		if len(rest) > 0 && strings.EqualFold(rest[0].text, "not") {
			op = "is not"
			rest = rest[1:]
		}
	}

	switch op {
	case "in", "not in":
		if len(rest) == 0 {
			return "", "", nil, fmt.Errorf("%s needs at least one value", op)
		}
		vals := make([]any, len(rest))
		for i, t := range rest {
			vals[i] = parseValue(t)
		}
		return column, op, vals, nil
	}

	if len(rest) != 1 {
		return "", "", nil, fmt.Errorf("expected a single value after %q", op)
	}
	return column, op, parseValue(rest[0]), nil
}

// assignment is one column=value pair from a set or do update clause.
type assignment struct {
	column string
	value  any
}

// parseAssignments reads column=value pairs. Both the compact form a=1 and
// the spaced form a = 1 are accepted.
func parseAssignments(toks []token) ([]assignment, error) {
	var out []assignment
	for i := 0; i < len(toks); {
		t := toks[i]
		if name, raw, ok := strings.Cut(t.text, "="); ok && name != "" {
			if raw == "" && !t.quoted {
				return nil, fmt.Errorf("missing value for %q", name)
			}
			out = append(out, assignment{column: name, value: parseValue(token{text: raw, quoted: t.quoted})})
			i++
			continue
		}
		if i+2 < len(toks) && toks[i+1].text == "=" {
			out = append(out, assignment{column: t.text, value: parseValue(toks[i+2])})
			i += 3
			continue
		}
		return nil, fmt.Errorf("expected <column>=<value>, got %q", t.text)
	}
	if len(out) == 0 {
		return nil, errors.New("no assignments given")
	}
	return out, nil
}

// parseNames splits a comma or space separated list of bare names.
func parseNames(args string) []string {
	toks := tokenize(args)
	names := make([]string, len(toks))
	for i, t := range toks {
		names[i] = t.text
	}
	return names
}

// cutFold is strings.Cut with a case-insensitive separator.
func cutFold(s, sep string) (before, after string, found bool) {
	idx := strings.Index(strings.ToLower(s), strings.ToLower(sep))
	if idx < 0 {
		return s, "", false
	}
	return s[:idx], s[idx+len(sep):], true
}
