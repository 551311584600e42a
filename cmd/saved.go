package cmd

import (
	"fmt"

	"github.com/jeremynwa/automated-tech-newsletter/internal/config"
	"github.com/jeremynwa/automated-tech-newsletter/internal/store"
	"github.com/spf13/cobra"
)

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "List saved articles",
	Long:  "Print the saved articles in the order they were saved, oldest first.",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.Open(config.StorePath())
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer db.Close()

		list, err := db.List()
		if err != nil {
			return fmt.Errorf("listing saved articles: %w", err)
		}

		if len(list) == 0 {
			fmt.Println("No saved articles.")
			return nil
		}

		for i, item := range list {
			fmt.Printf("%2d. %s\n", i+1, item.Title)
			fmt.Printf("    %s · saved %s\n", item.OriginDate, item.SavedAt.Format("2006-01-02"))
			if item.Link != "" {
				fmt.Printf("    %s\n", item.Link)
			}
		}
		fmt.Printf("\n%d saved article(s).\n", len(list))
		return nil
	},
}

var savedRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove one saved article by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.Open(config.StorePath())
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer db.Close()

		if err := db.Remove(args[0]); err != nil {
			return fmt.Errorf("removing %s: %w", args[0], err)
		}
		fmt.Println("Removed.")
		return nil
	},
}

var savedClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all saved articles",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.Open(config.StorePath())
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer db.Close()

		count, err := db.Count()
		if err != nil {
			return fmt.Errorf("counting saved articles: %w", err)
		}
		if count == 0 {
			fmt.Println("Nothing to clear.")
			return nil
		}

		if err := db.Clear(); err != nil {
			return fmt.Errorf("clearing saved articles: %w", err)
		}
		fmt.Printf("Cleared %d saved article(s).\n", count)
		return nil
	},
}

func init() {
	savedCmd.AddCommand(savedRemoveCmd)
	savedCmd.AddCommand(savedClearCmd)
}
