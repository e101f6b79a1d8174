package extract

import "github.com/fwojciec/scribe"

// Locators holds every chain the page pipeline resolves.
type Locators struct {
	// Ready signals a minimally loaded page.
	Ready scribe.Chain

	// Expand opens the description panel. Optional.
	Expand scribe.Chain

	// Reveal opens the transcript panel.
	Reveal scribe.Chain

	// Container is the transcript panel's segment list.
	Container scribe.Chain

	// Segments are resolved inside Container.
	Segments scribe.Chain

	// Timestamp and Text are resolved inside each segment.
	Timestamp scribe.Chain
	Text      scribe.Chain

	// Diagnostic counts transcript-related elements when Container misses.
	Diagnostic scribe.Chain
}

// DefaultLocators returns chains for YouTube watch pages.
func DefaultLocators() Locators {
	return Locators{
		Ready: scribe.Chain{
			Name:     "ready",
			Locators: []scribe.Locator{{CSS: "body"}},
		},
		Expand: scribe.Chain{
			Name: "expand",
			Locators: []scribe.Locator{
				{CSS: "tp-yt-paper-button#expand", Visible: true},
			},
		},
		Reveal: scribe.Chain{
			Name: "reveal",
			Locators: []scribe.Locator{
				{CSS: "button[aria-label*='Show transcript']", Visible: true},
				{Name: "button text", CSS: "button", Text: "Show transcript", Visible: true},
				{Name: "button shape text", CSS: "yt-button-shape > button", Text: "Show transcript", Visible: true},
				{CSS: "ytd-button-renderer button[aria-label*='transcript']", Visible: true},
			},
		},
		Container: scribe.Chain{
			Name: "container",
			Locators: []scribe.Locator{
				{CSS: "ytd-transcript-segment-list-renderer#body"},
				{CSS: "ytd-transcript-segment-list-renderer"},
				{CSS: "div[class*='ytd-transcript-segment-list-renderer']"},
				{CSS: "#segments-container"},
				{CSS: "[class*='segment-list']"},
				{Name: "transcript segment parent", CSS: "div[class*='transcript'] div[class*='segment']", Parent: true},
			},
		},
		Segments: scribe.Chain{
			Name: "segments",
			Locators: []scribe.Locator{
				{CSS: "ytd-transcript-segment-renderer"},
				{CSS: "div[class*='segment']"},
				{CSS: "div[class*='transcript-segment']"},
				{Name: "segment timestamp parent", CSS: "[class*='segment-timestamp']", Parent: true},
				{Name: "colon text parent", CSS: "*", Text: ":", OwnText: true, Parent: true, Fallback: true},
			},
		},
		Timestamp: scribe.Chain{
			Name: "timestamp",
			Locators: []scribe.Locator{
				{CSS: "div[class*='segment-timestamp']"},
				{CSS: "span[class*='segment-timestamp']"},
				{CSS: "[class*='timestamp']"},
				{CSS: "div[class*='time']"},
			},
		},
		Text: scribe.Chain{
			Name: "text",
			Locators: []scribe.Locator{
				{CSS: "div[class*='segment-text']"},
				{CSS: "span[class*='segment-text']"},
				{CSS: "[class*='text']"},
				{CSS: "div:not([class*='timestamp']):not([class*='time'])"},
			},
		},
		Diagnostic: scribe.Chain{
			Name: "diagnostic",
			Locators: []scribe.Locator{
				{CSS: "[class*='transcript'], [id*='transcript']"},
			},
		},
	}
}
