package database

import (
	"context"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// ContestState is the singleton contest configuration record.
// VotingEnded is only meaningful while VotingPhaseEnabled is true;
// disabling the voting phase always clears it.
type ContestState struct {
	gorm.Model
	VotingPhaseEnabled bool `gorm:"not null;default:false"`
	VotingEnded        bool `gorm:"not null;default:false"`
}

// GetContestState returns the singleton state row, creating it with
// both flags false on first run.
func (c *Client) GetContestState(ctx context.Context) (*ContestState, error) {
	var state ContestState
	err := c.db.WithContext(ctx).First(&state).Error
	if err == gorm.ErrRecordNotFound {
		state = ContestState{}
		if err := c.db.WithContext(ctx).Create(&state).Error; err != nil {
			log.Error("failed to create contest state", "error", err)
			return nil, err
		}
		return &state, nil
	} else if err != nil {
		log.Error("failed to get contest state", "error", err)
		return nil, err
	}
	return &state, nil
}

func (c *Client) SaveContestState(ctx context.Context, state *ContestState) error {
	// ending voting is only reachable from the voting phase
	if !state.VotingPhaseEnabled {
		state.VotingEnded = false
	}
	if err := c.db.WithContext(ctx).Save(state).Error; err != nil {
		log.Error("failed to save contest state", "error", err)
		return err
	}
	return nil
}
