package extract

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fwojciec/scribe"
)

// Ensure Extractor implements scribe.PageExtractor at compile time.
var _ scribe.PageExtractor = (*Extractor)(nil)

// DefaultTimeout bounds every polling wait for an element.
const DefaultTimeout = 10 * time.Second

// maxLoggedSegments limits per-segment debug output for one page.
const maxLoggedSegments = 5

// Waits is the fixed timing policy between pipeline steps.
type Waits struct {
	// Load is slept after navigation.
	Load time.Duration

	// Expand is slept after clicking the description expander.
	Expand time.Duration

	// Scroll is slept after scrolling the reveal control into view.
	Scroll time.Duration

	// Reveal is slept after clicking the reveal control, while the
	// transcript panel fills in.
	Reveal time.Duration

	// Timeout bounds each polling wait (ready signal, expander, reveal control).
	Timeout time.Duration
}

// DefaultWaits returns the timing policy used against live pages.
func DefaultWaits() Waits {
	return Waits{
		Load:    3 * time.Second,
		Expand:  2 * time.Second,
		Scroll:  1 * time.Second,
		Reveal:  8 * time.Second,
		Timeout: DefaultTimeout,
	}
}

// Extractor runs the per-page pipeline:
// load, expand description (optional), reveal transcript, locate container,
// locate segments, parse segments.
//
// Every missing element or failed click ends the page with an empty result.
// Extractor is not safe for concurrent use; it drives a single session.
type Extractor struct {
	session        scribe.Session
	locators       Locators
	waits          Waits
	navigateDelays []time.Duration
	logger         *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithWaits sets the timing policy. Defaults to DefaultWaits().
func WithWaits(w Waits) Option {
	return func(e *Extractor) {
		e.waits = w
	}
}

// WithLocators replaces the locator chains. Defaults to DefaultLocators().
func WithLocators(l Locators) Option {
	return func(e *Extractor) {
		e.locators = l
	}
}

// WithNavigateDelays sets the delays between navigation retries.
// Defaults to DefaultNavigateDelays().
func WithNavigateDelays(delays []time.Duration) Option {
	return func(e *Extractor) {
		e.navigateDelays = delays
	}
}

// WithLogger sets the logger for step-level diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// NewExtractor returns an Extractor driving session.
func NewExtractor(session scribe.Session, opts ...Option) *Extractor {
	e := &Extractor{
		session:        session,
		locators:       DefaultLocators(),
		waits:          DefaultWaits(),
		navigateDelays: DefaultNavigateDelays(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	return e
}

// Extract returns the transcript records of the page at url in document
// order. Any failure, including a panic in the session, yields an empty
// result; the error is logged.
func (e *Extractor) Extract(ctx context.Context, url string) (records []scribe.Record) {
	log := e.logger.With("url", url)

	defer func() {
		if r := recover(); r != nil {
			log.Error("extraction aborted", "err", fmt.Sprint(r))
			records = nil
		}
	}()

	records, err := e.extract(ctx, log, url)
	if err != nil {
		log.Error("extraction failed", "err", err)
		return nil
	}
	return records
}

func (e *Extractor) extract(ctx context.Context, log *slog.Logger, url string) ([]scribe.Record, error) {
	if err := e.load(ctx, log, url); err != nil {
		return nil, err
	}

	e.expandDescription(ctx, log)

	revealed, err := e.revealTranscript(ctx, log)
	if err != nil || !revealed {
		return nil, err
	}

	if err := sleep(ctx, e.waits.Reveal); err != nil {
		return nil, err
	}

	container := Resolve(ctx, e.session, nil, e.locators.Container)
	if !container.Found() {
		log.Warn("transcript container not found")
		e.diagnose(ctx, log)
		return nil, nil
	}
	log.Debug("transcript container found",
		"locator", container.Locator.String(),
		"candidate", container.Index+1,
	)

	segments := Resolve(ctx, e.session, container.First(), e.locators.Segments)
	if !segments.Found() {
		log.Warn("transcript segments not found")
		return nil, nil
	}
	if segments.Locator.Fallback {
		log.Warn("transcript segments found by last-resort locator",
			"locator", segments.Locator.String(),
			"count", len(segments.Elements),
		)
	} else {
		log.Debug("transcript segments found",
			"locator", segments.Locator.String(),
			"candidate", segments.Index+1,
			"count", len(segments.Elements),
		)
	}

	return e.parseSegments(ctx, log, url, segments.Elements), nil
}

// load navigates to url and waits for the ready signal.
func (e *Extractor) load(ctx context.Context, log *slog.Logger, url string) error {
	if err := navigateWithRetry(ctx, e.session, url, e.navigateDelays, log); err != nil {
		return fmt.Errorf("navigating: %w", err)
	}

	if err := sleep(ctx, e.waits.Load); err != nil {
		return err
	}

	ready := e.locators.Ready.WithWait(e.waits.Timeout)
	if !Resolve(ctx, e.session, nil, ready).Found() {
		return scribe.Errorf(scribe.ENOTFOUND, "page not ready after %s", e.waits.Timeout)
	}
	return nil
}

// expandDescription opens the description panel when the page has one.
func (e *Extractor) expandDescription(ctx context.Context, log *slog.Logger) {
	expand := e.locators.Expand.WithWait(e.waits.Timeout)
	el, ok := ResolveFirst(ctx, e.session, nil, expand)
	if !ok {
		log.Debug("description expander not found")
		return
	}

	if !Click(ctx, e.session, el, log) {
		log.Debug("description expander not clickable")
		return
	}
	_ = sleep(ctx, e.waits.Expand)
	log.Debug("description expanded")
}

// revealTranscript opens the transcript panel. It reports false when the
// page has no reveal control or the control cannot be clicked.
func (e *Extractor) revealTranscript(ctx context.Context, log *slog.Logger) (bool, error) {
	reveal := e.locators.Reveal.WithWait(e.waits.Timeout)
	res := Resolve(ctx, e.session, nil, reveal)
	if !res.Found() {
		log.Warn("transcript control not found")
		return false, nil
	}
	el := res.First()

	if err := e.session.Eval(ctx, el, scrollIntoViewJS); err != nil {
		log.Debug("scroll into view failed", "err", err)
	}
	if err := sleep(ctx, e.waits.Scroll); err != nil {
		return false, err
	}

	if !Click(ctx, e.session, el, log) {
		log.Warn("transcript control not clickable", "locator", res.Locator.String())
		return false, nil
	}
	log.Debug("transcript control clicked", "locator", res.Locator.String())
	return true, nil
}

const scrollIntoViewJS = `() => this.scrollIntoView({behavior: 'smooth', block: 'center'})`

// parseSegments parses every node, dropping the ones that yield no record.
func (e *Extractor) parseSegments(ctx context.Context, log *slog.Logger, url string, nodes []scribe.Element) []scribe.Record {
	parser := &SegmentParser{Timestamp: e.locators.Timestamp, Text: e.locators.Text}

	records := make([]scribe.Record, 0, len(nodes))
	for i, node := range nodes {
		var (
			rec scribe.Record
			ok  bool
		)
		err := guard(func() error {
			rec, ok = parser.Parse(ctx, e.session, url, node)
			return nil
		})
		if err != nil || !ok {
			if i < maxLoggedSegments {
				log.Debug("segment dropped", "index", i+1, "text", segmentPreview(node), "err", err)
			}
			continue
		}
		records = append(records, rec)
	}
	return records
}

// diagnose logs how many transcript-related elements the page holds.
func (e *Extractor) diagnose(ctx context.Context, log *slog.Logger) {
	res := Resolve(ctx, e.session, nil, e.locators.Diagnostic)
	log.Debug("transcript diagnostics", "related_elements", len(res.Elements))
}

func segmentPreview(node scribe.Element) string {
	text, err := node.Text()
	if err != nil {
		return ""
	}
	return scribe.Truncate(text, 100)
}
