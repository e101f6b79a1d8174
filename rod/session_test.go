//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/scribe"
	"github.com/fwojciec/scribe/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const coveredPage = `<!doctype html>
<html><body>
<button id="reveal" onclick="document.getElementById('out').textContent='clicked'">Show transcript</button>
<div id="overlay" style="position:fixed;top:0;left:0;width:100%;height:100%;background:rgba(0,0,0,0.1)"></div>
<div id="out"></div>
<p class="hidden" style="display:none">hidden</p>
</body></html>`

const disabledPage = `<!doctype html>
<html><body>
<button id="reveal" disabled>Show transcript</button>
</body></html>`

func newSession(t *testing.T, opts ...rod.SessionOption) *rod.Session {
	t.Helper()
	manager, err := rod.NewBrowserManager()
	require.NoError(t, err)
	s := rod.NewSession(manager, opts...)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func serve(t *testing.T, body string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestSession_CoveredButton(t *testing.T) {
	t.Parallel()

	// Given a button hidden under a full-page overlay
	ctx := context.Background()
	s := newSession(t)
	require.NoError(t, s.Navigate(ctx, serve(t, coveredPage)))
	els, err := s.Elements(ctx, nil, "#reveal")
	require.NoError(t, err)
	require.Len(t, els, 1)

	// When clicking directly with a context that never expires
	begin := time.Now()
	err = s.Click(ctx, els[0], scribe.ClickDirect)

	// Then the click is reported as intercepted without waiting for the overlay to go away
	assert.Equal(t, scribe.ECONFLICT, scribe.ErrorCode(err))
	assert.Less(t, time.Since(begin), rod.DefaultClickTimeout)

	// When clicking from script
	require.NoError(t, s.Click(ctx, els[0], scribe.ClickScript))

	// Then the handler ran
	out, err := s.Elements(ctx, nil, "#out")
	require.NoError(t, err)
	text, err := out[0].Text()
	require.NoError(t, err)
	assert.Equal(t, "clicked", text)
}

func TestSession_DisabledButton(t *testing.T) {
	t.Parallel()

	// Given a disabled button
	ctx := context.Background()
	s := newSession(t, rod.WithClickTimeout(500*time.Millisecond))
	require.NoError(t, s.Navigate(ctx, serve(t, disabledPage)))
	els, err := s.Elements(ctx, nil, "#reveal")
	require.NoError(t, err)
	require.Len(t, els, 1)

	// When clicking directly
	begin := time.Now()
	err = s.Click(ctx, els[0], scribe.ClickDirect)

	// Then the click fails as a conflict instead of waiting for the button to be enabled
	assert.Equal(t, scribe.ECONFLICT, scribe.ErrorCode(err))
	assert.Less(t, time.Since(begin), 5*time.Second)
}

func TestSession_Elements(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newSession(t)
	require.NoError(t, s.Navigate(ctx, serve(t, coveredPage)))

	hidden, err := s.Elements(ctx, nil, "p.hidden")
	require.NoError(t, err)
	require.Len(t, hidden, 1)
	visible, err := hidden[0].Visible()
	require.NoError(t, err)
	assert.False(t, visible)

	parent, err := hidden[0].Parent()
	require.NoError(t, err)
	buttons, err := parent.Elements("button")
	require.NoError(t, err)
	assert.Len(t, buttons, 1)

	id, ok, err := buttons[0].Attribute("id")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "reveal", id)

	again, err := s.Elements(ctx, nil, "#reveal")
	require.NoError(t, err)
	assert.Equal(t, buttons[0].Key(), again[0].Key())
}

func TestSession_ElementsBeforeNavigate(t *testing.T) {
	t.Parallel()

	s := newSession(t)

	_, err := s.Elements(context.Background(), nil, "body")

	assert.Equal(t, scribe.EINVALID, scribe.ErrorCode(err))
}
