package rod

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the number of watch pages opened before Chrome is
// restarted.
const DefaultMaxPages = 75

const windowSize = "1366,900"

// BrowserManager owns the Chrome process behind a Session. Watch pages run
// heavy players and comment widgets, and Chrome does not give that memory
// back when a tab closes, so a long URL list is processed by a series of
// browsers: after maxPages tabs the next Browser call starts a fresh Chrome
// and kills the old one.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	opened   atomic.Int64
	maxPages int64
	headless bool
	logger   *slog.Logger
	mu       sync.Mutex
	closed   atomic.Bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets how many tabs a browser serves before it is restarted.
// Defaults to DefaultMaxPages.
func WithMaxPages(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxPages = n
	}
}

// WithHeadless controls whether Chrome runs without a window.
// Defaults to true.
func WithHeadless(headless bool) ManagerOption {
	return func(bm *BrowserManager) {
		bm.headless = headless
	}
}

// WithManagerLogger reports restarts and failed restarts.
func WithManagerLogger(logger *slog.Logger) ManagerOption {
	return func(bm *BrowserManager) {
		bm.logger = logger
	}
}

// NewBrowserManager launches Chrome. Close must be called to stop it.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{
		maxPages: DefaultMaxPages,
		headless: true,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(bm)
	}

	browser, lnchr, err := bm.launch()
	if err != nil {
		return nil, err
	}
	bm.browser, bm.launcher = browser, lnchr
	return bm, nil
}

// Browser returns the browser to open the next tab in, restarting Chrome
// first when the current one has served maxPages tabs.
func (bm *BrowserManager) Browser() *rod.Browser {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.opened.Load() >= bm.maxPages {
		bm.restart()
	}
	return bm.browser
}

// IncrementPageCount records that a tab was opened.
func (bm *BrowserManager) IncrementPageCount() {
	bm.opened.Add(1)
}

// Close stops Chrome. Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	if !bm.closed.CompareAndSwap(false, true) {
		return nil
	}

	bm.mu.Lock()
	defer bm.mu.Unlock()

	err := stop(bm.browser, bm.launcher)
	bm.browser, bm.launcher = nil, nil
	return err
}

// launch starts Chrome with a desktop-sized window and English UI so watch
// pages render their desktop layout and English control labels. The
// throttling flags keep timers running in background tabs while the
// pipeline sleeps between steps.
func (bm *BrowserManager) launch() (*rod.Browser, *launcher.Launcher, error) {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Set("disable-extensions").
		Set("window-size", windowSize).
		Set("lang", "en-US").
		NoSandbox(true).
		Leakless(true).
		Headless(bm.headless)

	u, err := lnchr.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return nil, nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return browser, lnchr, nil
}

// restart swaps in a fresh Chrome. When the launch fails the old browser
// keeps serving and the restart is tried again on the next tab.
// Must be called with mu held.
func (bm *BrowserManager) restart() {
	browser, lnchr, err := bm.launch()
	if err != nil {
		bm.logger.Warn("browser restart failed", "pages", bm.opened.Load(), "err", err)
		return
	}

	_ = stop(bm.browser, bm.launcher)
	bm.browser, bm.launcher = browser, lnchr
	bm.logger.Debug("browser restarted", "pages", bm.opened.Swap(0))
}

func stop(browser *rod.Browser, lnchr *launcher.Launcher) error {
	var err error
	if browser != nil {
		err = browser.Close()
	}
	if lnchr != nil {
		lnchr.Kill()
	}
	return err
}

// LauncherPID returns the process ID of the running Chrome, or 0 after
// Close.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.launcher == nil {
		return 0
	}
	return bm.launcher.PID()
}
