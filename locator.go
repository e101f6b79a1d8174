package scribe

import "time"

// Locator is one locator expression: a structural/attribute query plus
// optional filters applied to its matches.
type Locator struct {
	// Name labels the locator in logs. Defaults to CSS.
	Name string

	// CSS is evaluated within the scope's subtree.
	CSS string

	// Text keeps only matches whose rendered text contains it.
	Text string

	// OwnText matches Text against the element's own text nodes instead of
	// its rendered text, so ancestors of a matching node do not match too.
	OwnText bool

	// Parent replaces each match with its parent element. Parents shared by
	// several matches appear once, in first-occurrence order.
	Parent bool

	// Visible keeps only matches that can currently receive input.
	Visible bool

	// Fallback marks a low-confidence, last-resort locator. Callers log
	// when a chain resolves through it.
	Fallback bool
}

// String returns the locator's label.
func (l Locator) String() string {
	if l.Name != "" {
		return l.Name
	}
	return l.CSS
}

// Chain is an ordered list of candidate locators, most specific first.
// The first candidate with a match wins; later candidates are never tried.
type Chain struct {
	Name     string
	Locators []Locator

	// Wait, when positive, polls each candidate for up to Wait before moving
	// on to the next one.
	Wait time.Duration
}

// WithWait returns a copy of the chain that polls each candidate for d.
func (c Chain) WithWait(d time.Duration) Chain {
	c.Wait = d
	return c
}

// Resolution is the outcome of resolving a Chain. A resolution without
// elements is a miss, whatever its other fields hold.
type Resolution struct {
	// Elements holds the winning candidate's matches.
	Elements []Element

	// Locator is the winning candidate.
	Locator Locator

	// Index is the winning candidate's position in the chain.
	Index int
}

// NotFound is the resolution of a chain whose candidates all failed.
var NotFound = Resolution{Index: -1}

// Found reports whether any candidate matched.
func (r Resolution) Found() bool {
	return len(r.Elements) > 0
}

// First returns the first matched element, or nil when not found.
func (r Resolution) First() Element {
	if len(r.Elements) == 0 {
		return nil
	}
	return r.Elements[0]
}
