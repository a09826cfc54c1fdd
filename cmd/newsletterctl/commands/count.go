package commands

import (
	"context"
	"fmt"

	"github.com/mvarma/portfolio-api/internal/database"
	"github.com/spf13/cobra"
)

// NewCountCmd creates the count command
func NewCountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count",
		Short: "Show the number of active subscribers",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeDB, err := openRepository()
			if err != nil {
				return err
			}
			defer closeDB()

			count, err := repo.CountActive(context.Background())
			if err != nil {
				return fmt.Errorf("failed to count subscribers: %w", err)
			}

			fmt.Printf("Active subscribers: %d\n", count)
			return nil
		},
	}

	return cmd
}

// openRepository connects to the configured database and returns a
// subscriber repository plus a cleanup function.
func openRepository() (*database.SubscriberRepository, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	closeDB := func() {
		_ = db.Close()
	}

	return database.NewSubscriberRepository(db), closeDB, nil
}
