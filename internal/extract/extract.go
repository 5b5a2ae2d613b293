// Package extract pulls structured data out of free-form model responses.
//
// Models wrap JSON in markdown fences, surround it with prose, or skip it
// entirely. Extract tries a fixed list of strategies in order and falls back
// to a raw-text payload, so callers always get something to normalize.
package extract

import "strings"

// Strategy names the rule that produced a payload.
type Strategy string

const (
	StrategyFenced Strategy = "fenced-json"
	StrategyBraces Strategy = "brace-span"
	StrategyWhole  Strategy = "whole-text"
	StrategyRaw    Strategy = "raw"
	StrategyNone   Strategy = "none"
)

type strategy struct {
	name Strategy
	find func(raw string) (string, bool)
}

// strategies run in priority order; the first candidate that parses wins.
var strategies = []strategy{
	{name: StrategyFenced, find: fencedJSON},
	{name: StrategyBraces, find: braceSpan},
	{name: StrategyWhole, find: wholeText},
}

// Extract returns the structured payload embedded in raw, or a raw payload
// wrapping raw unchanged when no strategy yields a JSON object or array.
func Extract(raw string) Payload {
	p, _ := ExtractStrategy(raw)
	return p
}

// ExtractStrategy is Extract that also reports which strategy matched.
func ExtractStrategy(raw string) (Payload, Strategy) {
	for _, s := range strategies {
		candidate, ok := s.find(raw)
		if !ok {
			continue
		}
		if v, ok := parseDocument(candidate); ok {
			return Structured(v), s.name
		}
	}
	return Raw(raw), StrategyRaw
}

// FromParts extracts from the first text-bearing part of a response.
// A response with no text yields the empty structured payload.
func FromParts(parts []string) (Payload, Strategy) {
	for _, part := range parts {
		if part == "" {
			continue
		}
		return ExtractStrategy(part)
	}
	return Empty(), StrategyNone
}

const fenceOpen = "```json"

// fencedJSON returns the body of the first ```json fence. An unterminated
// fence does not match.
func fencedJSON(raw string) (string, bool) {
	start := strings.Index(raw, fenceOpen)
	if start < 0 {
		return "", false
	}
	rest := raw[start+len(fenceOpen):]
	end := strings.Index(rest, "```")
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}

// braceSpan returns everything from the first '{' to the last '}'.
func braceSpan(raw string) (string, bool) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return "", false
	}
	end := strings.LastIndexByte(raw, '}')
	if end < start {
		return "", false
	}
	return raw[start : end+1], true
}

func wholeText(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	return s, s != ""
}

// parseDocument accepts only objects and arrays; a bare string or number is
// not a usable structure.
func parseDocument(s string) (any, bool) {
	v, err := decodeOrdered([]byte(s))
	if err != nil {
		return nil, false
	}
	switch v.(type) {
	case *Object, []any:
		return v, true
	default:
		return nil, false
	}
}
