package scribe

import "context"

// ClickMethod identifies a technique for delivering a click to an element.
type ClickMethod int

// Click methods, in the order the interaction fallback chain tries them.
const (
	// ClickDirect is a native click that respects hit-testing. It fails when
	// another element covers the target.
	ClickDirect ClickMethod = iota

	// ClickScript calls the element's click() from script, bypassing hit-testing.
	ClickScript

	// ClickPointer moves a simulated pointer onto the element and presses it.
	ClickPointer
)

// String returns the method name used in logs.
func (m ClickMethod) String() string {
	switch m {
	case ClickDirect:
		return "direct"
	case ClickScript:
		return "script"
	case ClickPointer:
		return "pointer"
	default:
		return "unknown"
	}
}

// Element is a handle to one node of an interactive document.
type Element interface {
	// Text returns the element's rendered text, with line breaks between
	// block-level children.
	Text() (string, error)

	// OwnText returns the concatenated text nodes that are direct children
	// of the element.
	OwnText() (string, error)

	// Attribute returns the named attribute and whether it is present.
	Attribute(name string) (value string, ok bool, err error)

	// Parent returns the element's parent element.
	// Returns ENOTFOUND for the document root.
	Parent() (Element, error)

	// Elements returns the descendants matching a CSS selector, in document order.
	Elements(selector string) ([]Element, error)

	// Visible reports whether the element is rendered and can receive input.
	Visible() (bool, error)

	// Key identifies the underlying node. Two handles to the same node
	// return the same key.
	Key() string
}

// Session is the interactive-document capability the extraction engine
// drives. A Session is created once per run, handed explicitly to every
// component, and closed once at the end.
type Session interface {
	// Navigate loads url and makes it the current document.
	Navigate(ctx context.Context, url string) error

	// Elements returns the elements matching selector within scope, in
	// document order. A nil scope searches the whole document.
	Elements(ctx context.Context, scope Element, selector string) ([]Element, error)

	// Click delivers a click to el using method.
	Click(ctx context.Context, el Element, method ClickMethod) error

	// Eval runs a script with el bound as this. The script is a function
	// expression, e.g. "() => this.scrollIntoView()".
	Eval(ctx context.Context, el Element, script string) error

	// Close releases the session's resources.
	Close() error
}
