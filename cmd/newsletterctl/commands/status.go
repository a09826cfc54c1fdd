package commands

import (
	"context"
	"fmt"

	"github.com/mvarma/portfolio-api/internal/emailutil"
	"github.com/spf13/cobra"
)

// NewStatusCmd creates the status command
func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <email>",
		Short: "Show the subscription status of an email address",
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

			sub, err := repo.GetByNormalizedEmail(context.Background(), identity.Normalized)
			if err != nil {
				return fmt.Errorf("failed to look up subscriber: %w", err)
			}

			if sub == nil {
				fmt.Printf("No active subscription for %s\n", identity.Normalized)
				return nil
			}

			fmt.Printf("Email: %s\n", sub.Email)
			fmt.Printf("Normalized: %s\n", sub.NormalizedEmail)
			fmt.Printf("Subscribed: %s\n", sub.SubscribedAt.Format("2006-01-02 15:04:05 MST"))
			return nil
		},
	}

	return cmd
}
