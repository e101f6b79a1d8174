package extract

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/scribe"
)

// maxTimestampLen bounds the length of a timestamp recovered by splitting a
// segment's whole text.
const maxTimestampLen = 20

// SegmentParser recovers a timestamp and text from one transcript segment node.
//
// Structured lookup (Timestamp and Text chains inside the node) is precise
// but breaks when the markup changes. Splitting the node's whole text is
// robust but can misfire on unrelated colon-bearing text, so it only fills
// fields the structured lookup left empty.
type SegmentParser struct {
	Timestamp scribe.Chain
	Text      scribe.Chain
}

// NewSegmentParser returns a parser using the default segment locators.
func NewSegmentParser() *SegmentParser {
	l := DefaultLocators()
	return &SegmentParser{Timestamp: l.Timestamp, Text: l.Text}
}

// Parse returns the record for node, or false if either field is still
// missing after both tiers.
func (p *SegmentParser) Parse(ctx context.Context, s scribe.Session, url string, node scribe.Element) (scribe.Record, bool) {
	f := p.structured(ctx, s, node)
	if !f.complete() {
		f = f.merge(splitText(node))
	}
	if !f.complete() {
		return scribe.Record{}, false
	}

	rec, err := scribe.NewRecord(url, f.timestamp, f.text)
	if err != nil {
		return scribe.Record{}, false
	}
	return rec, true
}

// fields is a partial record produced by one parsing tier.
type fields struct {
	timestamp string
	text      string
}

func (f fields) complete() bool {
	return f.timestamp != "" && f.text != ""
}

// merge keeps f's values and takes only the fields f is missing from o.
func (f fields) merge(o fields) fields {
	if f.timestamp == "" {
		f.timestamp = o.timestamp
	}
	if f.text == "" {
		f.text = o.text
	}
	return f
}

// structured looks up the timestamp and text sub-elements of node.
func (p *SegmentParser) structured(ctx context.Context, s scribe.Session, node scribe.Element) fields {
	var f fields
	f.timestamp = firstAccepted(ctx, s, node, p.Timestamp, func(v string) bool {
		return v != "" && strings.Contains(v, ":")
	})
	f.text = firstAccepted(ctx, s, node, p.Text, func(v string) bool {
		// Guards against a text locator matching the timestamp element.
		return v != "" && v != f.timestamp
	})
	return f
}

// firstAccepted walks chain's candidates and returns the trimmed text of the
// first candidate whose first match passes accept.
func firstAccepted(ctx context.Context, s scribe.Session, node scribe.Element, chain scribe.Chain, accept func(string) bool) string {
	for _, loc := range chain.Locators {
		single := scribe.Chain{Name: chain.Name, Locators: []scribe.Locator{loc}}
		el, ok := ResolveFirst(ctx, s, node, single)
		if !ok {
			continue
		}
		text, err := el.Text()
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if accept(text) {
			return text
		}
	}
	return ""
}

// splitText splits node's rendered text into a timestamp line and the rest.
func splitText(node scribe.Element) fields {
	whole, err := node.Text()
	if err != nil {
		return fields{}
	}
	whole = strings.TrimSpace(whole)
	if whole == "" || !strings.Contains(whole, ":") {
		return fields{}
	}

	parts := strings.SplitN(whole, "\n", 2)
	if len(parts) != 2 {
		return fields{}
	}

	timestamp := strings.TrimSpace(parts[0])
	text := strings.TrimSpace(parts[1])
	if !strings.Contains(timestamp, ":") || utf8.RuneCountInString(timestamp) >= maxTimestampLen {
		return fields{}
	}
	return fields{timestamp: timestamp, text: text}
}
