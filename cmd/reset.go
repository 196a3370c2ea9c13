package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/snapvote/snapvote/internal/config"
	"github.com/snapvote/snapvote/internal/database"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the contest back to the upload phase",
	Long:  `Reset clears both phase flags so the contest returns to the upload phase. Photos, votes and users are untouched.`,
	Run:   runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	state, err := db.GetContestState(ctx)
	if err != nil {
		log.Fatalf("failed to load contest state: %v", err)
	}

	state.VotingPhaseEnabled = false
	state.VotingEnded = false
	if err := db.SaveContestState(ctx, state); err != nil {
		log.Fatalf("failed to save contest state: %v", err)
	}

	log.Info("contest reset to upload phase")
}
