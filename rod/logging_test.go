package rod_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/scribe"
	"github.com/fwojciec/scribe/mock"
	"github.com/fwojciec/scribe/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingSession_Navigate(t *testing.T) {
	t.Parallel()

	// Given a session whose navigation fails
	var buf bytes.Buffer
	next := &mock.Session{
		NavigateFn: func(ctx context.Context, url string) error {
			return errors.New("net::ERR_NAME_NOT_RESOLVED")
		},
	}
	s := rod.NewLoggingSession(next, debugLogger(&buf))

	// When navigating
	err := s.Navigate(context.Background(), "https://www.youtube.com/watch?v=abc")

	// Then the error is passed through and logged with the URL
	require.Error(t, err)
	out := buf.String()
	assert.Contains(t, out, "msg=navigate")
	assert.Contains(t, out, `url="https://www.youtube.com/watch?v=abc"`)
	assert.Contains(t, out, "net::ERR_NAME_NOT_RESOLVED")
}

func TestLoggingSession_Click(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	var got scribe.ClickMethod
	next := &mock.Session{
		ClickFn: func(ctx context.Context, el scribe.Element, method scribe.ClickMethod) error {
			got = method
			return nil
		},
	}
	s := rod.NewLoggingSession(next, debugLogger(&buf))

	err := s.Click(context.Background(), &mock.Element{}, scribe.ClickPointer)

	require.NoError(t, err)
	assert.Equal(t, scribe.ClickPointer, got)
	assert.Contains(t, buf.String(), "method="+scribe.ClickPointer.String())
}

func TestLoggingSession_Delegates(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	el := &mock.Element{}
	var closed, evaluated bool
	next := &mock.Session{
		ElementsFn: func(ctx context.Context, scope scribe.Element, selector string) ([]scribe.Element, error) {
			return []scribe.Element{el}, nil
		},
		EvalFn: func(ctx context.Context, el scribe.Element, script string) error {
			evaluated = true
			return nil
		},
		CloseFn: func() error {
			closed = true
			return nil
		},
	}
	s := rod.NewLoggingSession(next, debugLogger(&buf))

	els, err := s.Elements(context.Background(), nil, "button")
	require.NoError(t, err)
	assert.Equal(t, []scribe.Element{el}, els)

	require.NoError(t, s.Eval(context.Background(), el, "() => {}"))
	require.NoError(t, s.Close())
	assert.True(t, evaluated)
	assert.True(t, closed)
	assert.Empty(t, buf.String())
}
