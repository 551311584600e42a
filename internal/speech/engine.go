package speech

import (
	"bufio"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"github.com/jeremynwa/automated-tech-newsletter/internal/logging"
)

// CommandSpeaker drives the platform speech command: say on macOS, espeak on
// Linux, PowerShell speech synthesis on Windows.
type CommandSpeaker struct {
	mu       sync.Mutex
	current  *exec.Cmd
	canceled bool
	rate     int
}

// NewCommandSpeaker returns a speaker using the platform speech command.
// rate is words per minute; zero keeps the platform default.
func NewCommandSpeaker(rate int) *CommandSpeaker {
	return &CommandSpeaker{rate: rate}
}

// Voices lists the voices the platform command offers. On platforms without
// a queryable voice list a single default voice is reported, provided the
// speech command exists at all.
func (s *CommandSpeaker) Voices() ([]Voice, error) {
	switch runtime.GOOS {
	case "darwin":
		return parseSayVoices()
	case "windows":
		if _, err := exec.LookPath("powershell"); err != nil {
			return nil, fmt.Errorf("speech command not found: %w", err)
		}
		return []Voice{{Name: "Microsoft Zira", Lang: "en-US"}}, nil
	default:
		if _, err := exec.LookPath("espeak"); err != nil {
			return nil, fmt.Errorf("speech command not found: %w", err)
		}
		return []Voice{{Name: "espeak", Lang: "en"}}, nil
	}
}

func parseSayVoices() ([]Voice, error) {
	out, err := exec.Command("say", "-v", "?").Output()
	if err != nil {
		return nil, fmt.Errorf("listing voices: %w", err)
	}

	var voices []Voice
	sc := bufio.NewScanner(strings.NewReader(string(out)))
	for sc.Scan() {
		// Lines look like: "Samantha            en_US    # Hello! ..."
		line := sc.Text()
		idx := strings.Index(line, "#")
		if idx > 0 {
			line = line[:idx]
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		lang := strings.ReplaceAll(fields[len(fields)-1], "_", "-")
		voices = append(voices, Voice{
			Name: strings.Join(fields[:len(fields)-1], " "),
			Lang: lang,
		})
	}
	return voices, nil
}

// Speak issues one utterance and calls done when the command exits. A
// cancellation surfaces as ErrInterrupted.
func (s *CommandSpeaker) Speak(text string, voice Voice, done func(error)) error {
	cmd := s.buildCommand(text, voice)

	s.mu.Lock()
	if s.current != nil {
		s.mu.Unlock()
		s.Cancel()
		s.mu.Lock()
	}
	if err := cmd.Start(); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("starting speech command: %w", err)
	}
	s.current = cmd
	s.canceled = false
	s.mu.Unlock()

	go func() {
		err := cmd.Wait()

		s.mu.Lock()
		interrupted := s.canceled
		if s.current == cmd {
			s.current = nil
		}
		s.mu.Unlock()

		if interrupted {
			done(ErrInterrupted)
			return
		}
		if err != nil {
			logging.L().Warn().Err(err).Msg("speech command failed")
		}
		done(err)
	}()
	return nil
}

// Cancel kills any in-flight utterance. The pending done callback fires with
// ErrInterrupted.
func (s *CommandSpeaker) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || s.current.Process == nil {
		return
	}
	s.canceled = true
	s.current.Process.Kill()
}

func (s *CommandSpeaker) buildCommand(text string, voice Voice) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		args := []string{}
		if voice.Name != "" {
			args = append(args, "-v", voice.Name)
		}
		if s.rate > 0 {
			args = append(args, "-r", fmt.Sprint(s.rate))
		}
		args = append(args, text)
		return exec.Command("say", args...)
	case "windows":
		script := fmt.Sprintf(
			"Add-Type -AssemblyName System.Speech; (New-Object System.Speech.Synthesis.SpeechSynthesizer).Speak(%q)",
			text,
		)
		return exec.Command("powershell", "-NoProfile", "-Command", script)
	default:
		args := []string{}
		if s.rate > 0 {
			args = append(args, "-s", fmt.Sprint(s.rate))
		}
		args = append(args, text)
		return exec.Command("espeak", args...)
	}
}
