// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package places

import "time"

// Default pacing against the shared upstream rate budget. These are tuning
// constants, not protocol requirements.
const (
	DefaultCallDelay = 200 * time.Millisecond
	DefaultPageDelay = 2 * time.Second
)

// Pacer enforces best-effort wall-clock delays between outbound calls. The
// pipeline is strictly sequential, so a single pacing policy covers the whole
// run: CallDelay before every call, PageDelay additionally before each
// continuation page of the same search.
type Pacer struct {
	CallDelay time.Duration
	PageDelay time.Duration

	// sleep is swapped out by tests to avoid real waits.
	sleep func(time.Duration)
}

// NewPacer returns a Pacer with the given delays. Negative values mean the
// defaults; zero disables the corresponding delay.
func NewPacer(callDelay, pageDelay time.Duration) *Pacer {
	if callDelay < 0 {
		callDelay = DefaultCallDelay
	}
	if pageDelay < 0 {
		pageDelay = DefaultPageDelay
	}
	return &Pacer{CallDelay: callDelay, PageDelay: pageDelay, sleep: time.Sleep}
}

// BeforeCall waits the inter-call delay.
func (p *Pacer) BeforeCall() {
	if p.CallDelay > 0 {
		p.sleep(p.CallDelay)
	}
}

// BeforePage waits the longer inter-page delay. Applied only between
// consecutive pages of the same paginated search, never after the final page.
func (p *Pacer) BeforePage() {
	if p.PageDelay > 0 {
		p.sleep(p.PageDelay)
	}
}
