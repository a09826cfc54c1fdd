package commands

import (
	"context"
	"fmt"

	"github.com/mvarma/portfolio-api/internal/config"
	"github.com/spf13/cobra"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent subscribers",
		Long:  "List the most recently subscribed addresses, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeDB, err := openRepository()
			if err != nil {
				return err
			}
			defer closeDB()

			subscribers, err := repo.ListRecent(context.Background(), limit)
			if err != nil {
				return fmt.Errorf("failed to list subscribers: %w", err)
			}

			if len(subscribers) == 0 {
				fmt.Println("No subscribers found")
				return nil
			}

			for _, sub := range subscribers {
				status := "active"
				if !sub.IsActive {
					status = "inactive"
				}
				fmt.Printf("  - %s (%s)\n", sub.Email, status)
				fmt.Printf("    Subscribed: %s\n", sub.SubscribedAt.Format("2006-01-02 15:04:05 MST"))
				fmt.Println()
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of subscribers to list")

	return cmd
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}
	return cfg, nil
}
