package main

import (
	"sort"
	"strings"
)

// completionKind says what a command's argument completes to.
type completionKind int

const (
	completeNone completionKind = iota
	completeDialect
	completePlugin
)

var dialectNames = []string{"mysql", "postgres", "sqlite"}
var pluginNames = []string{"off", "snakecase", "softdelete", "tableprefix"}

// replCompleter implements readline's AutoCompleter against the session's
// command registry.
type replCompleter struct {
	sess *Session
}

// Do returns the suffixes that complete the text before the cursor, plus
// the length of the prefix being completed.
func (c *replCompleter) Do(line []rune, pos int) ([][]rune, int) {
	typed := string(line[:pos])
	lower := strings.ToLower(typed)

	for _, cmd := range c.sess.commands {
		if !strings.HasSuffix(cmd.prefix, " ") || cmd.completion == completeNone {
			continue
		}
		if !strings.HasPrefix(lower, cmd.prefix) {
			continue
		}
		arg := strings.TrimLeft(lower[len(cmd.prefix):], " ")
		switch cmd.completion {
		case completeDialect:
			return suffixes(filterPrefix(dialectNames, arg), arg)
		case completePlugin:
			if rest, ok := strings.CutPrefix(arg, "off "); ok {
				rest = strings.TrimLeft(rest, " ")
				return suffixes(filterPrefix(c.sess.enabledPluginNames(), rest), rest)
			}
			return suffixes(filterPrefix(pluginNames, arg), arg)
		}
	}

	names := c.sess.commandNames()
	sort.Strings(names)
	return suffixes(filterPrefix(names, lower), lower)
}

// suffixes converts candidates into readline's expected form: the text to
// append after the prefix, with a trailing space for convenience.
func suffixes(candidates []string, prefix string) ([][]rune, int) {
	var out [][]rune
	for _, cand := range candidates {
		out = append(out, []rune(cand[len(prefix):]+" "))
	}
	return out, len([]rune(prefix))
}

// filterPrefix keeps the items starting with prefix, case-insensitively.
func filterPrefix(items []string, prefix string) []string {
	if prefix == "" {
		out := make([]string, len(items))
		copy(out, items)
		return out
	}
	lower := strings.ToLower(prefix)
	var out []string
	for _, item := range items {
		if strings.HasPrefix(strings.ToLower(item), lower) {
			out = append(out, item)
		}
	}
	return out
}
