package speech

import (
	"errors"
	"strings"
)

// ErrInterrupted is reported by a Speaker when an utterance was canceled
// mid-flight. It is expected noise during pause/stop/skip and is never
// treated as a failure.
var ErrInterrupted = errors.New("utterance interrupted")

// Voice identifies one speech voice offered by the platform.
type Voice struct {
	Name string
	Lang string
}

// Speaker is the capability the narration controller drives. At most one
// utterance is in flight at a time; the controller enforces this by always
// canceling before issuing a new one.
//
// Speak returns once the utterance has been issued; done is called exactly
// once from another goroutine when it finishes, fails, or is canceled (with
// ErrInterrupted).
type Speaker interface {
	Voices() ([]Voice, error)
	Speak(text string, voice Voice, done func(error)) error
	Cancel()
}

// voicePriority is the ranked list of known good voices tried first.
var voicePriority = []string{
	"Samantha",
	"Karen",
	"Alex",
	"Daniel",
	"Zira",
}

// ChooseVoice picks the best available voice: the ranked preference list
// first, then any English voice, then whatever is available.
func ChooseVoice(voices []Voice) (Voice, bool) {
	if len(voices) == 0 {
		return Voice{}, false
	}
	for _, preferred := range voicePriority {
		for _, v := range voices {
			if strings.Contains(strings.ToLower(v.Name), strings.ToLower(preferred)) {
				return v, true
			}
		}
	}
	for _, v := range voices {
		if strings.HasPrefix(v.Lang, "en") {
			return v, true
		}
	}
	return voices[0], true
}
