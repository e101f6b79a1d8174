// Package extract implements the transcript extraction engine: prioritized
// locator chains, the click fallback chain, the two-tier segment parser and
// the per-page pipeline that ties them together.
package extract

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/scribe"
)

// PollInterval is the delay between probes of a waiting chain candidate.
const PollInterval = 250 * time.Millisecond

// Resolve tries chain's candidates in order against scope and returns the
// first candidate's matches. A nil scope searches the whole document.
//
// A candidate that matches nothing, or whose lookup fails, advances the
// chain. Once a candidate matches, later candidates are not consulted, so
// chains must be ordered most specific first. Resolve returns
// scribe.NotFound when every candidate fails or ctx is done.
func Resolve(ctx context.Context, s scribe.Session, scope scribe.Element, chain scribe.Chain) scribe.Resolution {
	for i, loc := range chain.Locators {
		if ctx.Err() != nil {
			return scribe.NotFound
		}

		var els []scribe.Element
		if chain.Wait > 0 {
			els = poll(ctx, s, scope, loc, chain.Wait)
		} else {
			els = locate(ctx, s, scope, loc)
		}

		if len(els) > 0 {
			return scribe.Resolution{Elements: els, Locator: loc, Index: i}
		}
	}
	return scribe.NotFound
}

// ResolveFirst is like Resolve but returns only the first matched element.
func ResolveFirst(ctx context.Context, s scribe.Session, scope scribe.Element, chain scribe.Chain) (scribe.Element, bool) {
	res := Resolve(ctx, s, scope, chain)
	return res.First(), res.Found()
}

// poll probes loc until it matches or wait elapses.
func poll(ctx context.Context, s scribe.Session, scope scribe.Element, loc scribe.Locator, wait time.Duration) []scribe.Element {
	deadline := time.Now().Add(wait)
	for {
		if els := locate(ctx, s, scope, loc); len(els) > 0 {
			return els
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil
		}
		if err := sleep(ctx, min(PollInterval, remaining)); err != nil {
			return nil
		}
	}
}

// locate evaluates a single locator, applying its filters and parent step.
func locate(ctx context.Context, s scribe.Session, scope scribe.Element, loc scribe.Locator) []scribe.Element {
	els, err := s.Elements(ctx, scope, loc.CSS)
	if err != nil || len(els) == 0 {
		return nil
	}

	var out []scribe.Element
	seen := make(map[string]bool)
	for _, el := range els {
		if !matches(el, loc) {
			continue
		}

		if loc.Parent {
			parent, err := el.Parent()
			if err != nil || parent == nil {
				continue
			}
			el = parent
		}

		key := el.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, el)
	}
	return out
}

// matches applies the locator's filters to one candidate element.
func matches(el scribe.Element, loc scribe.Locator) bool {
	if loc.Visible {
		visible, err := el.Visible()
		if err != nil || !visible {
			return false
		}
	}

	if loc.Text != "" {
		text, err := elementText(el, loc.OwnText)
		if err != nil || !strings.Contains(text, loc.Text) {
			return false
		}
	}

	return true
}

func elementText(el scribe.Element, own bool) (string, error) {
	if own {
		return el.OwnText()
	}
	return el.Text()
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
