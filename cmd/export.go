package cmd

import (
	"fmt"
	"time"

	"github.com/jeremynwa/automated-tech-newsletter/internal/config"
	"github.com/jeremynwa/automated-tech-newsletter/internal/digest"
	"github.com/jeremynwa/automated-tech-newsletter/internal/export"
	"github.com/jeremynwa/automated-tech-newsletter/internal/filter"
	"github.com/spf13/cobra"
)

var (
	flagExportRange   string
	flagExportDate    string
	flagExportKeyword string
	flagExportHide    []string
	flagExportOut     string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the digest to a paginated text file",
	Long: `Export the digest as plain text, paginated with form feeds, applying the
same filters the TUI offers. The file lands in the export directory from
config (default: Downloads) unless --out is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		days, err := loadDigest(cfg)
		if err != nil {
			return err
		}

		state := filter.NewState()
		if err := applyExportFlags(state); err != nil {
			return err
		}

		engine := filter.New(state, days, time.Now())
		engine.Apply()

		dir := flagExportOut
		if dir == "" {
			dir = cfg.ResolveExportDir()
		}

		path, err := export.File(days, dir, export.Options{
			Width:      cfg.PageWidth,
			PageHeight: cfg.PageHeight,
		})
		if err != nil {
			return fmt.Errorf("exporting: %w", err)
		}

		fmt.Printf("Exported to %s\n", path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&flagExportRange, "range", "all", "date range: all, today, 3days, week, month")
	exportCmd.Flags().StringVar(&flagExportDate, "date", "", "exact date (YYYY-MM-DD), overrides --range")
	exportCmd.Flags().StringVar(&flagExportKeyword, "keyword", "", "keyword filter over title and summary")
	exportCmd.Flags().StringSliceVar(&flagExportHide, "hide", nil, "section types to hide: tech, hn, research")
	exportCmd.Flags().StringVar(&flagExportOut, "out", "", "output directory")
}

func applyExportFlags(state *filter.State) error {
	rng, err := parseRange(flagExportRange)
	if err != nil {
		return err
	}
	state.SetRange(rng)

	if flagExportDate != "" {
		d, err := time.Parse("2006-01-02", flagExportDate)
		if err != nil {
			return fmt.Errorf("invalid --date %q (want YYYY-MM-DD)", flagExportDate)
		}
		state.SetCustomDate(d)
	}

	state.SetKeyword(flagExportKeyword)

	for _, name := range flagExportHide {
		c, err := parseClass(name)
		if err != nil {
			return err
		}
		if state.TypeEnabled(c) {
			state.ToggleType(c)
		}
	}
	return nil
}

func parseRange(s string) (filter.Range, error) {
	switch s {
	case "all", "":
		return filter.RangeAll, nil
	case "today":
		return filter.RangeToday, nil
	case "3days":
		return filter.Range3Days, nil
	case "week":
		return filter.RangeWeek, nil
	case "month":
		return filter.RangeMonth, nil
	default:
		return filter.RangeAll, fmt.Errorf("invalid --range %q (want all, today, 3days, week or month)", s)
	}
}

func parseClass(s string) (digest.Class, error) {
	switch s {
	case "tech":
		return digest.ClassTech, nil
	case "hn":
		return digest.ClassHN, nil
	case "research":
		return digest.ClassResearch, nil
	default:
		return digest.ClassNone, fmt.Errorf("invalid type %q (want tech, hn or research)", s)
	}
}
