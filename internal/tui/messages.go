package tui

import (
	"github.com/jeremynwa/automated-tech-newsletter/internal/speech"
)

// applyTickMsg fires after the short transition delay and triggers the
// actual filter pass.
type applyTickMsg struct{}

// resyncTickMsg fires after the pass has settled; it is always scheduled
// from the apply handler, never independently, so ordering holds.
type resyncTickMsg struct{}

type narrationMsg struct {
	ev speech.Event
}

type exportDoneMsg struct {
	path string
	err  error
}

type noticeMsg struct {
	text string
}

type clearNoticeMsg struct{}

type errMsg struct {
	err error
}
