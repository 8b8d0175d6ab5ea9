package main

import (
	"github.com/spf13/cobra"
)

var leaderboardFrom int

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show team standings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showLeaderboard(cmd.Context(), cmd.OutOrStdout(), leaderboardFrom)
	},
}

func init() {
	leaderboardCmd.Flags().IntVar(&leaderboardFrom, "from", 1, "stage just completed, selects the back and continue targets")
}
