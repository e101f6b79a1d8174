package mock

import (
	"context"

	"github.com/fwojciec/scribe"
)

var _ scribe.Session = (*Session)(nil)

// Session is a mock implementation of scribe.Session.
type Session struct {
	NavigateFn func(ctx context.Context, url string) error
	ElementsFn func(ctx context.Context, scope scribe.Element, selector string) ([]scribe.Element, error)
	ClickFn    func(ctx context.Context, el scribe.Element, method scribe.ClickMethod) error
	EvalFn     func(ctx context.Context, el scribe.Element, script string) error
	CloseFn    func() error
}

func (s *Session) Navigate(ctx context.Context, url string) error {
	return s.NavigateFn(ctx, url)
}

func (s *Session) Elements(ctx context.Context, scope scribe.Element, selector string) ([]scribe.Element, error) {
	return s.ElementsFn(ctx, scope, selector)
}

func (s *Session) Click(ctx context.Context, el scribe.Element, method scribe.ClickMethod) error {
	return s.ClickFn(ctx, el, method)
}

func (s *Session) Eval(ctx context.Context, el scribe.Element, script string) error {
	return s.EvalFn(ctx, el, script)
}

func (s *Session) Close() error {
	return s.CloseFn()
}

var _ scribe.Element = (*Element)(nil)

// Element is a mock implementation of scribe.Element.
type Element struct {
	TextFn      func() (string, error)
	OwnTextFn   func() (string, error)
	AttributeFn func(name string) (string, bool, error)
	ParentFn    func() (scribe.Element, error)
	ElementsFn  func(selector string) ([]scribe.Element, error)
	VisibleFn   func() (bool, error)
	KeyFn       func() string
}

func (e *Element) Text() (string, error) {
	return e.TextFn()
}

func (e *Element) OwnText() (string, error) {
	return e.OwnTextFn()
}

func (e *Element) Attribute(name string) (string, bool, error) {
	return e.AttributeFn(name)
}

func (e *Element) Parent() (scribe.Element, error) {
	return e.ParentFn()
}

func (e *Element) Elements(selector string) ([]scribe.Element, error) {
	return e.ElementsFn(selector)
}

func (e *Element) Visible() (bool, error) {
	return e.VisibleFn()
}

func (e *Element) Key() string {
	return e.KeyFn()
}
