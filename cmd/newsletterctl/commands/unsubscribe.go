package commands

import (
	"context"
	"fmt"

	"github.com/mvarma/portfolio-api/internal/emailutil"
	"github.com/spf13/cobra"
)

// NewUnsubscribeCmd creates the unsubscribe command
func NewUnsubscribeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unsubscribe <email>",
		Short: "Deactivate a subscriber by email address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			identity, err := emailutil.Normalize(args[0])
			if err != nil {
				return fmt.Errorf("invalid email address: %w", err)
			}

			repo, closeDB, err := openRepository()
			if err != nil {
				return err
			}
			defer closeDB()

			affected, err := repo.Deactivate(context.Background(), identity.Normalized)
			if err != nil {
				return fmt.Errorf("failed to unsubscribe: %w", err)
			}

			if affected == 0 {
				fmt.Printf("No active subscription found for %s\n", identity.Normalized)
				return nil
			}

			fmt.Printf("Unsubscribed %s (%d record(s) deactivated)\n", identity.Normalized, affected)
			return nil
		},
	}

	return cmd
}
