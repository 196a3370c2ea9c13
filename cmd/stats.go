package cmd

import (
	"fmt"

	"github.com/snapvote/snapvote/internal/config"
	"github.com/snapvote/snapvote/internal/database"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show contest statistics",
	Long:  `Display counts of users, photos per moderation status and votes.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		db, err := database.New(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close() //nolint: errcheck

		ctx := cmd.Context()

		users, err := db.GetAllUsers(ctx)
		if err != nil {
			return fmt.Errorf("failed to get users: %w", err)
		}
		photos, err := db.GetAllPhotos(ctx)
		if err != nil {
			return fmt.Errorf("failed to get photos: %w", err)
		}
		votes, err := db.GetAllVotes(ctx)
		if err != nil {
			return fmt.Errorf("failed to get votes: %w", err)
		}
		state, err := db.GetContestState(ctx)
		if err != nil {
			return fmt.Errorf("failed to get contest state: %w", err)
		}

		var pending, approved, rejected int
		for _, p := range photos {
			switch p.Status {
			case database.PhotoStatusPending:
				pending++
			case database.PhotoStatusApproved:
				approved++
			case database.PhotoStatusRejected:
				rejected++
			}
		}

		fmt.Println("Contest Statistics:")
		fmt.Printf("Users: %d\n", len(users))
		fmt.Printf("Photos: %d (pending: %d, approved: %d, rejected: %d)\n",
			len(photos), pending, approved, rejected)
		fmt.Printf("Votes: %d\n", len(votes))
		fmt.Printf("Voting Phase Enabled: %t\n", state.VotingPhaseEnabled)
		fmt.Printf("Voting Ended: %t\n", state.VotingEnded)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
