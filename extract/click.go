package extract

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fwojciec/scribe"
)

// clickMethods is the order in which Click tries to deliver a click.
var clickMethods = []scribe.ClickMethod{
	scribe.ClickDirect,
	scribe.ClickScript,
	scribe.ClickPointer,
}

// Click delivers a click to el, falling back from a direct click to a
// script click and then to a simulated pointer click. It stops at the first
// method that succeeds and reports false only if all of them fail. Failures,
// including panics raised by the session, never escape.
//
// The click may open or close parts of the page; the caller waits for that.
func Click(ctx context.Context, s scribe.Session, el scribe.Element, logger *slog.Logger) bool {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	for _, method := range clickMethods {
		err := guard(func() error {
			return s.Click(ctx, el, method)
		})
		if err == nil {
			logger.Debug("click delivered", "method", method.String())
			return true
		}
		logger.Debug("click failed", "method", method.String(), "err", err)
	}
	return false
}

// guard runs fn and converts a panic into an error.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = scribe.Errorf(scribe.EINTERNAL, "%s", fmt.Sprint(r))
		}
	}()
	return fn()
}
