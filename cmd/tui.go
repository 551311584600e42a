package cmd

import (
	"fmt"
	"time"

	"github.com/jeremynwa/automated-tech-newsletter/internal/config"
	"github.com/jeremynwa/automated-tech-newsletter/internal/digest"
	"github.com/jeremynwa/automated-tech-newsletter/internal/filter"
	"github.com/jeremynwa/automated-tech-newsletter/internal/logging"
	"github.com/jeremynwa/automated-tech-newsletter/internal/speech"
	"github.com/jeremynwa/automated-tech-newsletter/internal/store"
	"github.com/jeremynwa/automated-tech-newsletter/internal/tui"
	"github.com/spf13/cobra"
)

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := logging.Init(config.LogPath()); err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer logging.Close()

	days, err := loadDigest(cfg)
	if err != nil {
		return err
	}

	db, err := store.Open(config.StorePath())
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer db.Close()

	state := filter.NewState()
	engine := filter.New(state, days, time.Now())

	speaker := speech.NewCommandSpeaker(cfg.SpeechRate)
	narrator := speech.NewController(speaker)
	if cfg.Voice != "" {
		narrator.SetPreferredVoice(cfg.Voice)
	}

	return tui.Run(tui.RunOpts{
		Cfg:      cfg,
		DB:       db,
		Days:     days,
		Engine:   engine,
		Narrator: narrator,
	})
}

func loadDigest(cfg *config.Config) ([]*digest.Day, error) {
	path := flagDigest
	if path == "" {
		path = cfg.DigestPath
	}
	if path == "" {
		return nil, fmt.Errorf("no digest file: pass --digest or set digest_path in config")
	}

	days, err := digest.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading digest: %w", err)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("no digest days found in %s", path)
	}
	return days, nil
}
