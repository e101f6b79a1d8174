package extract_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/scribe"
	"github.com/fwojciec/scribe/extract"
	"github.com/fwojciec/scribe/mock"
	"github.com/stretchr/testify/assert"
)

// clickSession returns a session whose clicks fail for the methods in
// failing and records every attempted method.
func clickSession(attempts *[]scribe.ClickMethod, failing map[scribe.ClickMethod]error) *mock.Session {
	return &mock.Session{
		ClickFn: func(ctx context.Context, el scribe.Element, method scribe.ClickMethod) error {
			*attempts = append(*attempts, method)
			return failing[method]
		},
	}
}

func TestClick(t *testing.T) {
	t.Parallel()

	el := &mock.Element{}
	covered := scribe.Errorf(scribe.ECONFLICT, "element covered")

	t.Run("direct click succeeds first", func(t *testing.T) {
		t.Parallel()

		var attempts []scribe.ClickMethod
		s := clickSession(&attempts, nil)

		ok := extract.Click(context.Background(), s, el, nil)

		assert.True(t, ok)
		assert.Equal(t, []scribe.ClickMethod{scribe.ClickDirect}, attempts)
	})

	t.Run("covered element falls back to script click", func(t *testing.T) {
		t.Parallel()

		var attempts []scribe.ClickMethod
		s := clickSession(&attempts, map[scribe.ClickMethod]error{scribe.ClickDirect: covered})

		ok := extract.Click(context.Background(), s, el, nil)

		assert.True(t, ok)
		assert.Equal(t, []scribe.ClickMethod{scribe.ClickDirect, scribe.ClickScript}, attempts)
	})

	t.Run("pointer click is the last resort", func(t *testing.T) {
		t.Parallel()

		var attempts []scribe.ClickMethod
		s := clickSession(&attempts, map[scribe.ClickMethod]error{
			scribe.ClickDirect: covered,
			scribe.ClickScript: errors.New("script blocked"),
		})

		ok := extract.Click(context.Background(), s, el, nil)

		assert.True(t, ok)
		assert.Equal(t, []scribe.ClickMethod{scribe.ClickDirect, scribe.ClickScript, scribe.ClickPointer}, attempts)
	})

	t.Run("all methods failing reports false", func(t *testing.T) {
		t.Parallel()

		var attempts []scribe.ClickMethod
		boom := errors.New("detached")
		s := clickSession(&attempts, map[scribe.ClickMethod]error{
			scribe.ClickDirect:  boom,
			scribe.ClickScript:  boom,
			scribe.ClickPointer: boom,
		})
		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

		ok := extract.Click(context.Background(), s, el, logger)

		assert.False(t, ok)
		assert.Len(t, attempts, 3)
		assert.Contains(t, logs.String(), "method=pointer")
	})

	t.Run("panic in a method is contained", func(t *testing.T) {
		t.Parallel()

		var attempts []scribe.ClickMethod
		s := &mock.Session{
			ClickFn: func(ctx context.Context, el scribe.Element, method scribe.ClickMethod) error {
				attempts = append(attempts, method)
				if method == scribe.ClickDirect {
					panic("stale element")
				}
				return nil
			},
		}

		ok := extract.Click(context.Background(), s, el, nil)

		assert.True(t, ok)
		assert.Equal(t, []scribe.ClickMethod{scribe.ClickDirect, scribe.ClickScript}, attempts)
	})
}
