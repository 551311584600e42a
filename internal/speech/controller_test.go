package speech

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jeremynwa/automated-tech-newsletter/internal/digest"
)

// fakeSpeaker records utterances and lets the test drive completions.
type fakeSpeaker struct {
	mu       sync.Mutex
	spoken   []string
	done     func(error)
	canceled int
	voices   []Voice
	speakErr error
}

func newFakeSpeaker() *fakeSpeaker {
	return &fakeSpeaker{voices: []Voice{{Name: "Samantha", Lang: "en-US"}}}
}

func (f *fakeSpeaker) Voices() ([]Voice, error) {
	return f.voices, nil
}

func (f *fakeSpeaker) Speak(text string, voice Voice, done func(error)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.speakErr != nil {
		return f.speakErr
	}
	f.spoken = append(f.spoken, text)
	f.done = done
	return nil
}

func (f *fakeSpeaker) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.canceled++
}

// complete finishes the in-flight utterance from a separate goroutine, the
// way a real speaker would.
func (f *fakeSpeaker) complete(err error) {
	f.mu.Lock()
	done := f.done
	f.mu.Unlock()
	if done != nil {
		go done(err)
	}
}

func (f *fakeSpeaker) spokenCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.spoken)
}

func (f *fakeSpeaker) lastSpoken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.spoken) == 0 {
		return ""
	}
	return f.spoken[len(f.spoken)-1]
}

func testQueue(n int) []Item {
	var items []Item
	for i := 0; i < n; i++ {
		items = append(items, Item{
			Title:   "Title " + string(rune('A'+i)),
			Content: "Content " + string(rune('A'+i)),
		})
	}
	return items
}

func waitState(t *testing.T, c *Controller, want ControllerState) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if c.State() == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("state never reached %v, still %v", want, c.State())
}

func waitSpoken(t *testing.T, f *fakeSpeaker, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if f.spokenCount() == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("expected %d utterances, got %d", want, f.spokenCount())
}

func TestStartWithEmptyQueueFails(t *testing.T) {
	c := NewController(newFakeSpeaker())
	if err := c.Start(nil); err == nil {
		t.Error("expected error starting with empty queue")
	}
	if c.State() != Idle {
		t.Errorf("expected Idle after failed start, got %v", c.State())
	}
}

func TestStartWithoutVoicesFails(t *testing.T) {
	f := newFakeSpeaker()
	f.voices = nil
	c := NewController(f)
	if err := c.Start(testQueue(2)); err == nil {
		t.Error("expected error starting without voices")
	}
}

func TestStartSpeaksFirstItem(t *testing.T) {
	f := newFakeSpeaker()
	c := NewController(f)

	if err := c.Start(testQueue(2)); err != nil {
		t.Fatalf("start: %v", err)
	}
	if c.State() != Playing {
		t.Errorf("expected Playing, got %v", c.State())
	}
	if got := f.lastSpoken(); got != "Title A. Content A" {
		t.Errorf("expected title and content joined, got %q", got)
	}
}

func TestStartWhilePlayingFails(t *testing.T) {
	c := NewController(newFakeSpeaker())
	if err := c.Start(testQueue(2)); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := c.Start(testQueue(1)); err == nil {
		t.Error("expected error starting while already playing")
	}
}

func TestCompletionAdvancesQueue(t *testing.T) {
	f := newFakeSpeaker()
	c := NewController(f)
	c.Start(testQueue(2))

	f.complete(nil)
	waitSpoken(t, f, 2)
	if got := f.lastSpoken(); got != "Title B. Content B" {
		t.Errorf("expected second item, got %q", got)
	}

	f.complete(nil)
	waitState(t, c, Idle)
}

func TestPauseAndResume(t *testing.T) {
	f := newFakeSpeaker()
	c := NewController(f)
	c.Start(testQueue(2))

	c.Pause()
	if c.State() != Paused {
		t.Errorf("expected Paused, got %v", c.State())
	}
	if f.canceled != 1 {
		t.Errorf("expected 1 cancel, got %d", f.canceled)
	}

	// Resume re-speaks the current item from its start.
	c.Resume()
	if c.State() != Playing {
		t.Errorf("expected Playing after resume, got %v", c.State())
	}
	waitSpoken(t, f, 2)
	if got := f.lastSpoken(); got != "Title A. Content A" {
		t.Errorf("expected current item re-spoken, got %q", got)
	}
}

func TestPauseOutsidePlayingIsNoop(t *testing.T) {
	f := newFakeSpeaker()
	c := NewController(f)

	c.Pause()
	if c.State() != Idle {
		t.Errorf("expected Idle, got %v", c.State())
	}

	c.Start(testQueue(1))
	c.Pause()
	c.Pause()
	if f.canceled != 1 {
		t.Errorf("expected a single cancel, got %d", f.canceled)
	}
}

func TestSkipAdvances(t *testing.T) {
	f := newFakeSpeaker()
	c := NewController(f)
	c.Start(testQueue(3))

	c.Skip()
	if got := f.lastSpoken(); got != "Title B. Content B" {
		t.Errorf("expected skip to second item, got %q", got)
	}
	if c.State() != Playing {
		t.Errorf("expected Playing after skip, got %v", c.State())
	}
}

func TestSkipPastEndStops(t *testing.T) {
	f := newFakeSpeaker()
	c := NewController(f)
	c.Start(testQueue(1))

	c.Skip()
	if c.State() != Idle {
		t.Errorf("expected Idle after skipping past end, got %v", c.State())
	}
}

func TestSkipWhilePaused(t *testing.T) {
	f := newFakeSpeaker()
	c := NewController(f)
	c.Start(testQueue(2))

	c.Pause()
	c.Skip()
	if c.State() != Playing {
		t.Errorf("expected skip from paused to play, got %v", c.State())
	}
	if got := f.lastSpoken(); got != "Title B. Content B" {
		t.Errorf("expected second item, got %q", got)
	}
}

func TestStopResetsFromAnyState(t *testing.T) {
	f := newFakeSpeaker()
	c := NewController(f)

	c.Stop() // Idle: stays Idle
	if c.State() != Idle {
		t.Errorf("expected Idle, got %v", c.State())
	}

	c.Start(testQueue(2))
	c.Stop()
	if c.State() != Idle {
		t.Errorf("expected Idle after stop from Playing, got %v", c.State())
	}

	c.Start(testQueue(2))
	c.Pause()
	c.Stop()
	if c.State() != Idle {
		t.Errorf("expected Idle after stop from Paused, got %v", c.State())
	}
}

func TestCompletionAfterStopIsIgnored(t *testing.T) {
	f := newFakeSpeaker()
	c := NewController(f)
	c.Start(testQueue(2))

	before := f.spokenCount()
	c.Stop()
	f.complete(nil)

	time.Sleep(20 * time.Millisecond)
	if f.spokenCount() != before {
		t.Error("expected stale completion to be discarded")
	}
	if c.State() != Idle {
		t.Errorf("expected Idle, got %v", c.State())
	}
}

func TestInterruptedErrorDoesNotAdvance(t *testing.T) {
	f := newFakeSpeaker()
	c := NewController(f)
	c.Start(testQueue(3))

	f.complete(ErrInterrupted)
	time.Sleep(20 * time.Millisecond)
	if f.spokenCount() != 1 {
		t.Errorf("expected no advance on interrupt, got %d utterances", f.spokenCount())
	}
	if c.State() != Playing {
		t.Errorf("expected still Playing, got %v", c.State())
	}
}

func TestErrorCompletionSkipsForward(t *testing.T) {
	f := newFakeSpeaker()
	c := NewController(f)
	c.Start(testQueue(2))

	f.complete(errors.New("audio device busy"))
	waitSpoken(t, f, 2)
	if got := f.lastSpoken(); got != "Title B. Content B" {
		t.Errorf("expected error to skip forward, got %q", got)
	}
}

func TestBuildQueueCollectsVisibleArticles(t *testing.T) {
	days := []*digest.Day{
		{
			Sections: []*digest.Section{
				{
					Class: digest.ClassTech,
					Articles: []*digest.Article{
						{Title: "Visible", Summary: "text"},
						{Title: "Hidden", Summary: "text", Visibility: digest.HiddenByFilter},
						{}, // no content, skipped
					},
				},
			},
		},
		{
			Visibility: digest.HiddenByDate,
			Sections: []*digest.Section{
				{Class: digest.ClassTech, Articles: []*digest.Article{{Title: "Also hidden"}}},
			},
		},
	}

	items := BuildQueue(days)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Title != "Visible" {
		t.Errorf("expected visible article, got %q", items[0].Title)
	}
}

func TestReadingTime(t *testing.T) {
	words := func(n int) string {
		out := ""
		for i := 0; i < n; i++ {
			out += "word "
		}
		return out
	}

	days := []*digest.Day{
		{
			Sections: []*digest.Section{
				{Class: digest.ClassTech, Articles: []*digest.Article{{Summary: words(300)}}},
			},
		},
	}
	if got := ReadingTime(days); got != 2 {
		t.Errorf("expected 2 minutes for 300 words, got %d", got)
	}

	if got := ReadingTime(nil); got != 0 {
		t.Errorf("expected 0 minutes for no articles, got %d", got)
	}

	short := []*digest.Day{
		{
			Sections: []*digest.Section{
				{Class: digest.ClassTech, Articles: []*digest.Article{{Summary: "just a few words"}}},
			},
		},
	}
	if got := ReadingTime(short); got != 1 {
		t.Errorf("expected estimate rounded up to 1 minute, got %d", got)
	}
}

func TestPreferredVoiceOverridesRanking(t *testing.T) {
	f := newFakeSpeaker()
	f.voices = []Voice{
		{Name: "Samantha", Lang: "en-US"},
		{Name: "Moira", Lang: "en-IE"},
	}
	c := NewController(f)
	c.SetPreferredVoice("moira")

	if err := c.Start(testQueue(1)); err != nil {
		t.Fatalf("start: %v", err)
	}
	c.mu.Lock()
	got := c.voice.Name
	c.mu.Unlock()
	if got != "Moira" {
		t.Errorf("expected preferred voice Moira, got %s", got)
	}
}

func TestEventsCarryProgress(t *testing.T) {
	f := newFakeSpeaker()
	c := NewController(f)
	c.Start(testQueue(2))

	select {
	case ev := <-c.Events():
		if ev.State != Playing {
			t.Errorf("expected Playing event, got %v", ev.State)
		}
		if ev.Status != "Reading 1 of 2" {
			t.Errorf("expected progress status, got %q", ev.Status)
		}
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}
