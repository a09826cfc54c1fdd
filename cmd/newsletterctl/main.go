package main

import (
	"fmt"
	"os"

	"github.com/mvarma/portfolio-api/cmd/newsletterctl/commands"
	"github.com/spf13/cobra"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "newsletterctl",
		Short: "Admin tool for the portfolio newsletter",
		Long:  "CLI tool for inspecting and managing newsletter subscribers",
	}

	rootCmd.AddCommand(commands.NewCountCmd())
	rootCmd.AddCommand(commands.NewListCmd())
	rootCmd.AddCommand(commands.NewStatusCmd())
	rootCmd.AddCommand(commands.NewUnsubscribeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
