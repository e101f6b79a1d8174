// Package goquery provides a static, script-free implementation of
// scribe.Session. Pages are fetched as raw HTML and queried with CSS
// selectors; clicks and scripts have no effect, so whatever the fetched
// markup contains is what the extraction engine sees.
package goquery

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/scribe"
	"golang.org/x/net/html"
)

// Ensure Session implements scribe.Session at compile time.
var _ scribe.Session = (*Session)(nil)

// Session serves documents fetched by a scribe.Fetcher.
type Session struct {
	fetcher scribe.Fetcher
	doc     *goquery.Document
}

// NewSession creates a Session that loads pages through fetcher.
func NewSession(fetcher scribe.Fetcher) *Session {
	return &Session{fetcher: fetcher}
}

// Navigate fetches url and parses it as the current document.
func (s *Session) Navigate(ctx context.Context, url string) error {
	body, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return err
	}
	return s.SetHTML(body)
}

// SetHTML replaces the current document.
func (s *Session) SetHTML(body string) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return scribe.Errorf(scribe.EINVALID, "failed to parse HTML: %v", err)
	}
	s.doc = doc
	return nil
}

// Elements returns the elements matching selector within scope.
func (s *Session) Elements(ctx context.Context, scope scribe.Element, selector string) ([]scribe.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.doc == nil {
		return nil, scribe.Errorf(scribe.EINVALID, "no document loaded")
	}

	if scope == nil {
		return find(s.doc.Selection, selector)
	}
	el, ok := scope.(*Element)
	if !ok {
		return nil, scribe.Errorf(scribe.EINVALID, "foreign element %T", scope)
	}
	return find(el.sel, selector)
}

// Click accepts every click; a static document has no behavior to trigger.
func (s *Session) Click(ctx context.Context, el scribe.Element, method scribe.ClickMethod) error {
	if _, ok := el.(*Element); !ok {
		return scribe.Errorf(scribe.EINVALID, "foreign element %T", el)
	}
	return ctx.Err()
}

// Eval is a no-op; static documents do not run scripts.
func (s *Session) Eval(ctx context.Context, el scribe.Element, script string) error {
	return ctx.Err()
}

// Close drops the current document.
func (s *Session) Close() error {
	s.doc = nil
	return nil
}

// Ensure Element implements scribe.Element at compile time.
var _ scribe.Element = (*Element)(nil)

// Element wraps a single node of a parsed document.
type Element struct {
	sel *goquery.Selection
}

// Text returns the element's text as a browser would render it: block
// elements and <br> start new lines, whitespace within a line collapses.
func (e *Element) Text() (string, error) {
	return RenderText(e.node()), nil
}

// OwnText returns the element's direct text node children, concatenated.
func (e *Element) OwnText() (string, error) {
	var b strings.Builder
	for c := e.node().FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String(), nil
}

// Attribute returns the named attribute.
func (e *Element) Attribute(name string) (string, bool, error) {
	v, ok := e.sel.Attr(name)
	return v, ok, nil
}

// Parent returns the parent element.
func (e *Element) Parent() (scribe.Element, error) {
	p := e.sel.Parent()
	if p.Length() == 0 {
		return nil, scribe.Errorf(scribe.ENOTFOUND, "element has no parent")
	}
	return &Element{sel: p.First()}, nil
}

// Elements returns the descendants matching selector.
func (e *Element) Elements(selector string) ([]scribe.Element, error) {
	return find(e.sel, selector)
}

// Visible reports false when the element or an ancestor is hidden by the
// hidden attribute or an inline display/visibility style.
func (e *Element) Visible() (bool, error) {
	for n := e.node(); n != nil; n = n.Parent {
		if n.Type == html.ElementNode && hidden(n) {
			return false, nil
		}
	}
	return true, nil
}

// Key identifies the underlying node.
func (e *Element) Key() string {
	return fmt.Sprintf("%p", e.node())
}

func (e *Element) node() *html.Node {
	return e.sel.Get(0)
}

// find matches selector below sel. Invalid selectors are reported rather
// than silently matching nothing.
func find(sel *goquery.Selection, selector string) ([]scribe.Element, error) {
	m, err := cascadia.Compile(selector)
	if err != nil {
		return nil, scribe.Errorf(scribe.EINVALID, "invalid selector %q: %v", selector, err)
	}

	found := sel.FindMatcher(m)
	els := make([]scribe.Element, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		els = append(els, &Element{sel: s})
	})
	return els, nil
}

func hidden(n *html.Node) bool {
	for _, a := range n.Attr {
		switch strings.ToLower(a.Key) {
		case "hidden":
			return true
		case "style":
			style := strings.ToLower(strings.ReplaceAll(a.Val, " ", ""))
			if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
				return true
			}
		}
	}
	return false
}
