// Package rod implements scribe.Session on a Chrome browser driven by go-rod.
package rod

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/fwojciec/scribe"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultNavigateTimeout bounds page navigation and the load event.
const DefaultNavigateTimeout = 30 * time.Second

// DefaultClickTimeout bounds a direct click, including rod's wait for the
// element to become enabled.
const DefaultClickTimeout = 5 * time.Second

// Ensure Session implements scribe.Session at compile time.
var _ scribe.Session = (*Session)(nil)

// Session drives one browser tab at a time. Each Navigate closes the
// previous tab and opens a fresh one, which lets the BrowserManager recycle
// Chrome between pages. Session is not safe for concurrent use.
type Session struct {
	manager         *BrowserManager
	page            *rod.Page
	navigateTimeout time.Duration
	clickTimeout    time.Duration
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithNavigateTimeout bounds navigation and the load event.
// Defaults to DefaultNavigateTimeout.
func WithNavigateTimeout(d time.Duration) SessionOption {
	return func(s *Session) {
		s.navigateTimeout = d
	}
}

// WithClickTimeout bounds each direct click.
// Defaults to DefaultClickTimeout.
func WithClickTimeout(d time.Duration) SessionOption {
	return func(s *Session) {
		s.clickTimeout = d
	}
}

// NewSession returns a Session on manager's browser. Closing the Session
// closes the manager.
func NewSession(manager *BrowserManager, opts ...SessionOption) *Session {
	s := &Session{
		manager:         manager,
		navigateTimeout: DefaultNavigateTimeout,
		clickTimeout:    DefaultClickTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Navigate opens url in a new tab and waits for its load event.
func (s *Session) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.closePage()

	page, err := s.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return fmt.Errorf("opening tab: %w", err)
	}
	s.page = page
	s.manager.IncrementPageCount()

	p := page.Context(ctx).Timeout(s.navigateTimeout)
	if err := p.Navigate(url); err != nil {
		return err
	}
	return p.WaitLoad()
}

// Elements returns the elements matching selector within scope.
func (s *Session) Elements(ctx context.Context, scope scribe.Element, selector string) ([]scribe.Element, error) {
	var (
		found rod.Elements
		err   error
	)
	if scope == nil {
		if s.page == nil {
			return nil, scribe.Errorf(scribe.EINVALID, "no page loaded")
		}
		found, err = s.page.Context(ctx).Elements(selector)
	} else {
		el, ok := scope.(*Element)
		if !ok {
			return nil, scribe.Errorf(scribe.EINVALID, "foreign element %T", scope)
		}
		found, err = el.el.Context(ctx).Elements(selector)
	}
	if err != nil {
		return nil, err
	}

	els := make([]scribe.Element, 0, len(found))
	for _, el := range found {
		els = append(els, &Element{el: el})
	}
	return els, nil
}

// Click delivers a click to el using method.
func (s *Session) Click(ctx context.Context, el scribe.Element, method scribe.ClickMethod) error {
	e, ok := el.(*Element)
	if !ok {
		return scribe.Errorf(scribe.EINVALID, "foreign element %T", el)
	}
	target := e.el.Context(ctx)

	switch method {
	case scribe.ClickDirect:
		return s.clickDirect(ctx, e.el)
	case scribe.ClickScript:
		_, err := target.Eval(`() => this.click()`)
		return err
	case scribe.ClickPointer:
		shape, err := target.Shape()
		if err != nil {
			return err
		}
		pt := shape.OnePointInside()
		if pt == nil {
			return scribe.Errorf(scribe.ECONFLICT, "element has no visible area")
		}
		mouse := target.Page().Mouse
		if err := mouse.MoveTo(*pt); err != nil {
			return err
		}
		return mouse.Click(proto.InputMouseButtonLeft, 1)
	default:
		return scribe.Errorf(scribe.EINVALID, "unknown click method %d", method)
	}
}

// Eval runs script with el bound as this.
func (s *Session) Eval(ctx context.Context, el scribe.Element, script string) error {
	e, ok := el.(*Element)
	if !ok {
		return scribe.Errorf(scribe.EINVALID, "foreign element %T", el)
	}
	_, err := e.el.Context(ctx).Eval(script)
	return err
}

// Close closes the open tab and the browser.
func (s *Session) Close() error {
	s.closePage()
	return s.manager.Close()
}

func (s *Session) closePage() {
	if s.page != nil {
		_ = s.page.Close()
		s.page = nil
	}
}

// clickDirect checks hit-testing once before clicking. rod's own Click waits
// for a covered element to be uncovered, and for a disabled one to be
// enabled, until its context ends.
func (s *Session) clickDirect(ctx context.Context, el *rod.Element) error {
	cctx, cancel := context.WithTimeout(ctx, s.clickTimeout)
	defer cancel()
	target := el.Context(cctx)

	if err := target.ScrollIntoView(); err != nil {
		return s.timeoutError(ctx, err)
	}
	if _, err := target.Interactable(); err != nil {
		return s.timeoutError(ctx, clickError(err))
	}
	disabled, err := target.Disabled()
	if err != nil {
		return s.timeoutError(ctx, err)
	}
	if disabled {
		return scribe.Errorf(scribe.ECONFLICT, "element is disabled")
	}
	return s.timeoutError(ctx, clickError(target.Click(proto.InputMouseButtonLeft, 1)))
}

// timeoutError reports an expired click timeout as a conflict, leaving
// cancellation of the caller's ctx untouched.
func (s *Session) timeoutError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		return scribe.Errorf(scribe.ECONFLICT, "click timed out after %s", s.clickTimeout)
	}
	return err
}

// clickError reports an intercepted click as a conflict.
func clickError(err error) error {
	var covered *rod.CoveredError
	if errors.As(err, &covered) {
		return scribe.Errorf(scribe.ECONFLICT, "click intercepted by another element")
	}
	var invisible *rod.InvisibleShapeError
	if errors.As(err, &invisible) {
		return scribe.Errorf(scribe.ECONFLICT, "element is not interactable")
	}
	var noPointer *rod.NoPointerEventsError
	if errors.As(err, &noPointer) {
		return scribe.Errorf(scribe.ECONFLICT, "element ignores pointer events")
	}
	return err
}

// Ensure Element implements scribe.Element at compile time.
var _ scribe.Element = (*Element)(nil)

// Element wraps a remote DOM element.
type Element struct {
	el  *rod.Element
	key string
}

// Text returns the element's innerText.
func (e *Element) Text() (string, error) {
	return e.el.Text()
}

// OwnText returns the element's direct text node children, concatenated.
func (e *Element) OwnText() (string, error) {
	res, err := e.el.Eval(`() => Array.from(this.childNodes)
		.filter((n) => n.nodeType === Node.TEXT_NODE)
		.map((n) => n.textContent)
		.join("")`)
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}

// Attribute returns the named attribute.
func (e *Element) Attribute(name string) (string, bool, error) {
	v, err := e.el.Attribute(name)
	if err != nil {
		return "", false, err
	}
	if v == nil {
		return "", false, nil
	}
	return *v, true, nil
}

// Parent returns the parent element.
func (e *Element) Parent() (scribe.Element, error) {
	p, err := e.el.Parent()
	if err != nil {
		return nil, err
	}
	return &Element{el: p}, nil
}

// Elements returns the descendants matching selector.
func (e *Element) Elements(selector string) ([]scribe.Element, error) {
	found, err := e.el.Elements(selector)
	if err != nil {
		return nil, err
	}
	els := make([]scribe.Element, 0, len(found))
	for _, el := range found {
		els = append(els, &Element{el: el})
	}
	return els, nil
}

// Visible reports whether the element is rendered.
func (e *Element) Visible() (bool, error) {
	return e.el.Visible()
}

// Key returns the element's backend node ID, which is stable across
// remote object handles.
func (e *Element) Key() string {
	if e.key != "" {
		return e.key
	}
	node, err := e.el.Describe(0, false)
	if err != nil {
		e.key = "object:" + string(e.el.Object.ObjectID)
		return e.key
	}
	e.key = "node:" + strconv.Itoa(int(node.BackendNodeID))
	return e.key
}
