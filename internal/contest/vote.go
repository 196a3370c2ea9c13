package contest

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/snapvote/snapvote/internal/database"
	"gorm.io/gorm"
)

// Vote records the user's single vote for an approved photo, replacing
// any vote they cast before. The voting phase itself is not enforced
// here; which actions are offered is route-level policy.
func (e *Engine) Vote(ctx context.Context, voter, photoID string) error {
	photo, err := e.getPhoto(ctx, photoID)
	if err != nil {
		return err
	}
	if photo.Status != database.PhotoStatusApproved {
		return ErrNotApproved
	}

	if err := e.db.ReplaceVote(ctx, voter, photoID); err != nil {
		return err
	}

	e.invalidateCaches(ctx)
	log.Debug("vote recorded", "voter", database.NormalizeEmployeeID(voter), "photo", photoID)
	return nil
}

// CurrentVote returns the voter's current vote, or nil if they have
// not voted.
func (e *Engine) CurrentVote(ctx context.Context, voter string) (*database.Vote, error) {
	vote, err := e.db.GetVoteByVoter(ctx, voter)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return vote, nil
}
