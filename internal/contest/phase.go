package contest

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/snapvote/snapvote/internal/database"
)

// Phase is the contest's current mode, derived from the two persisted
// flags.
type Phase string

const (
	PhaseUpload Phase = "upload"
	PhaseVoting Phase = "voting"
	PhaseEnded  Phase = "ended"
)

// PhaseFromState maps the persisted flags onto a phase.
func PhaseFromState(state *database.ContestState) Phase {
	switch {
	case state.VotingPhaseEnabled && state.VotingEnded:
		return PhaseEnded
	case state.VotingPhaseEnabled:
		return PhaseVoting
	default:
		return PhaseUpload
	}
}

// CurrentPhase returns the contest's current phase.
func (e *Engine) CurrentPhase(ctx context.Context) (Phase, error) {
	state, err := e.db.GetContestState(ctx)
	if err != nil {
		return "", err
	}
	return PhaseFromState(state), nil
}

// EnableVoting transitions Upload -> Voting.
func (e *Engine) EnableVoting(ctx context.Context) error {
	return e.transition(ctx, PhaseUpload, func(state *database.ContestState) {
		state.VotingPhaseEnabled = true
	})
}

// DisableVoting transitions Voting -> Upload and force-clears the
// ended flag.
func (e *Engine) DisableVoting(ctx context.Context) error {
	return e.transition(ctx, PhaseVoting, func(state *database.ContestState) {
		state.VotingPhaseEnabled = false
		state.VotingEnded = false
	})
}

// EndVoting transitions Voting -> Ended.
func (e *Engine) EndVoting(ctx context.Context) error {
	return e.transition(ctx, PhaseVoting, func(state *database.ContestState) {
		state.VotingEnded = true
	})
}

// ResetContest transitions Ended -> Upload, clearing both flags.
func (e *Engine) ResetContest(ctx context.Context) error {
	return e.transition(ctx, PhaseEnded, func(state *database.ContestState) {
		state.VotingPhaseEnabled = false
		state.VotingEnded = false
	})
}

func (e *Engine) transition(ctx context.Context, from Phase, apply func(*database.ContestState)) error {
	state, err := e.db.GetContestState(ctx)
	if err != nil {
		return err
	}

	current := PhaseFromState(state)
	if current != from {
		return ErrInvalidTransition
	}

	apply(state)
	if err := e.db.SaveContestState(ctx, state); err != nil {
		return err
	}

	log.Info("contest phase changed", "from", current, "to", PhaseFromState(state))
	return nil
}
