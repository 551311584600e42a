package speech

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jeremynwa/automated-tech-newsletter/internal/digest"
)

// ControllerState is the narration state machine state.
type ControllerState int

const (
	Idle ControllerState = iota
	Playing
	Paused
)

// Item is one narration queue entry, rebuilt from the visible articles each
// time narration starts.
type Item struct {
	Title   string
	Content string
	Article *digest.Article
}

// Event reports a controller transition for display: the new state, the
// current position, and the article to scroll into view.
type Event struct {
	State   ControllerState
	Index   int
	Total   int
	Status  string
	Article *digest.Article
}

// ReadingWPM is the narration pace the reading-time estimate assumes.
const ReadingWPM = 150

// Controller is a sequential reader over the narration queue. Completion
// callbacks arrive from speaker goroutines, so all state is mutex-guarded;
// a generation counter discards callbacks that raced a stop or skip.
type Controller struct {
	mu        sync.Mutex
	speaker   Speaker
	state     ControllerState
	queue     []Item
	index     int
	gen       int
	voice     Voice
	preferred string

	events chan Event
}

func NewController(sp Speaker) *Controller {
	return &Controller{
		speaker: sp,
		events:  make(chan Event, 16),
	}
}

// SetPreferredVoice names a voice to use when available, overriding the
// ranked default selection.
func (c *Controller) SetPreferredVoice(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.preferred = name
}

// Events delivers state transitions for the UI to render. Slow consumers
// lose events rather than blocking narration.
func (c *Controller) Events() <-chan Event {
	return c.events
}

func (c *Controller) State() ControllerState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// BuildQueue collects the currently visible articles into narration items.
func BuildQueue(days []*digest.Day) []Item {
	var items []Item
	for _, d := range days {
		for _, a := range d.VisibleArticles() {
			if a.Title == "" && a.Summary == "" {
				continue
			}
			items = append(items, Item{Title: a.Title, Content: a.Summary, Article: a})
		}
	}
	return items
}

// ReadingTime estimates whole minutes to narrate the visible articles.
func ReadingTime(days []*digest.Day) int {
	words := 0
	for _, d := range days {
		for _, a := range d.VisibleArticles() {
			words += a.WordCount()
		}
	}
	minutes := (words + ReadingWPM - 1) / ReadingWPM
	if words > 0 && minutes < 1 {
		minutes = 1
	}
	return minutes
}

// Start begins narration from the first queue item. It is valid only from
// Idle and fails with a user-facing error when there is nothing to read or
// no voice to read with.
func (c *Controller) Start(items []Item) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Idle {
		return fmt.Errorf("narration already running")
	}
	if len(items) == 0 {
		return fmt.Errorf("no articles to read")
	}

	voices, err := c.speaker.Voices()
	if err != nil || len(voices) == 0 {
		return fmt.Errorf("text-to-speech is not available")
	}
	c.voice, _ = ChooseVoice(voices)
	if c.preferred != "" {
		for _, v := range voices {
			if strings.EqualFold(v.Name, c.preferred) {
				c.voice = v
				break
			}
		}
	}

	c.queue = items
	c.index = 0
	c.state = Playing
	c.speakCurrent()
	return nil
}

// Pause cancels the in-flight utterance and remembers the current index.
// The platform speakers cannot pause mid-utterance reliably, so Resume
// re-speaks the current article from its start.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Playing {
		return
	}
	c.gen++
	c.speaker.Cancel()
	c.state = Paused
	c.emit("Paused")
}

// Resume re-speaks the current item from its start.
func (c *Controller) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Paused {
		return
	}
	c.state = Playing
	c.speakCurrent()
}

// Skip cancels the current utterance and advances to the next item; past
// the end it behaves like Stop.
func (c *Controller) Skip() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Idle {
		return
	}
	c.gen++
	c.speaker.Cancel()
	c.index++
	if c.index >= len(c.queue) {
		c.stopLocked()
		return
	}
	c.state = Playing
	c.speakCurrent()
}

// Stop cancels any in-flight utterance, clears the queue, and returns to
// Idle. Valid from any state; filter changes and shutdown route here.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *Controller) stopLocked() {
	c.gen++
	c.speaker.Cancel()
	c.queue = nil
	c.index = 0
	c.state = Idle
	c.emit("")
}

// speakCurrent issues the current item. Callers hold the lock.
func (c *Controller) speakCurrent() {
	item := c.queue[c.index]
	text := item.Title + ". " + item.Content
	gen := c.gen

	c.emit(fmt.Sprintf("Reading %d of %d", c.index+1, len(c.queue)))

	err := c.speaker.Speak(text, c.voice, func(err error) {
		c.completed(gen, err)
	})
	if err != nil {
		// Could not even issue the utterance; skip forward rather than stall.
		c.advanceLocked()
	}
}

// completed handles a speaker callback. Stale generations and callbacks
// arriving outside Playing are ignored; interrupted errors are expected
// noise from cancellation; any other error skips forward.
func (c *Controller) completed(gen int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen || c.state != Playing {
		return
	}
	if errors.Is(err, ErrInterrupted) {
		return
	}
	c.advanceLocked()
}

func (c *Controller) advanceLocked() {
	c.index++
	if c.index >= len(c.queue) {
		c.stopLocked()
		return
	}
	c.speakCurrent()
}

func (c *Controller) emit(status string) {
	var article *digest.Article
	if c.state != Idle && c.index < len(c.queue) {
		article = c.queue[c.index].Article
	}
	ev := Event{
		State:   c.state,
		Index:   c.index,
		Total:   len(c.queue),
		Status:  status,
		Article: article,
	}
	select {
	case c.events <- ev:
	default:
	}
}
