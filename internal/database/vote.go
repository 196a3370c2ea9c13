package database

import (
	"context"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// Vote represents a single vote by a voter for a photo.
// A voter holds at most one vote at any time; casting again replaces
// the previous vote. Rating is always 1 and exists only for
// extensibility.
type Vote struct {
	gorm.Model
	PhotoID string `gorm:"index;not null"`
	Voter   string `gorm:"uniqueIndex;not null"`
	Rating  int    `gorm:"not null;default:1"`
}

// ReplaceVote removes any existing vote by the voter and inserts the
// new one in a single transaction.
func (c *Client) ReplaceVote(ctx context.Context, voter, photoID string) error {
	voter = NormalizeEmployeeID(voter)
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("voter = ?", voter).Delete(&Vote{}).Error; err != nil {
			return err
		}
		return tx.Create(&Vote{
			PhotoID: photoID,
			Voter:   voter,
			Rating:  1,
		}).Error
	})
}

func (c *Client) GetAllVotes(ctx context.Context) ([]Vote, error) {
	var votes []Vote
	if err := c.db.WithContext(ctx).Find(&votes).Error; err != nil {
		log.Error("failed to get all votes", "error", err)
		return nil, err
	}
	return votes, nil
}

func (c *Client) GetVoteByVoter(ctx context.Context, voter string) (*Vote, error) {
	var vote Vote
	if err := c.db.WithContext(ctx).Where("voter = ?", NormalizeEmployeeID(voter)).First(&vote).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Error("failed to get vote by voter", "error", err)
		}
		return nil, err
	}
	return &vote, nil
}

// CountVotesByPhoto returns the number of votes per photo id. Photos
// without votes are absent from the map.
func (c *Client) CountVotesByPhoto(ctx context.Context) (map[string]int, error) {
	type row struct {
		PhotoID string
		Count   int
	}
	var rows []row
	err := c.db.WithContext(ctx).Model(&Vote{}).
		Select("photo_id, count(*) as count").
		Group("photo_id").
		Scan(&rows).Error
	if err != nil {
		log.Error("failed to count votes", "error", err)
		return nil, err
	}
	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.PhotoID] = r.Count
	}
	return counts, nil
}
