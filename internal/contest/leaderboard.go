package contest

import (
	"context"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"github.com/snapvote/snapvote/internal/database"
)

// LeaderboardRow is one ranked entry. Uploader is withheld unless the
// caller asked for uploader names, to keep voting anonymous.
type LeaderboardRow struct {
	Rank     int    `json:"rank"`
	PhotoID  string `json:"photoId"`
	Title    string `json:"title"`
	Theme    string `json:"theme,omitempty"`
	Uploader string `json:"uploader,omitempty"`
	Votes    int    `json:"votes"`
}

// ComputeLeaderboard ranks approved photos by vote count descending,
// tie-broken by upload timestamp ascending. Ranks are 1-based
// positions after sorting; ties do not share a rank.
func (e *Engine) ComputeLeaderboard(ctx context.Context, showUploader bool) ([]LeaderboardRow, error) {
	key := "anonymous"
	if showUploader {
		key = "with-uploaders"
	}

	if rows, err := e.leaderboardCache.Get(ctx, key); err == nil {
		return rows, nil
	}

	photos, err := e.db.GetPhotosByStatus(ctx, database.PhotoStatusApproved)
	if err != nil {
		return nil, err
	}

	counts, err := e.db.CountVotesByPhoto(ctx)
	if err != nil {
		return nil, err
	}

	rows := lo.Map(photos, func(p database.Photo, _ int) LeaderboardRow {
		row := LeaderboardRow{
			PhotoID: p.PhotoID,
			Title:   p.Title,
			Theme:   p.Theme,
			Votes:   counts[p.PhotoID],
		}
		if showUploader {
			row.Uploader = p.Uploader
		}
		return row
	})

	// photos arrive ordered by upload time ascending; the stable sort
	// keeps that order within equal vote counts
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Votes > rows[j].Votes
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}

	if err := e.leaderboardCache.Set(ctx, key, rows); err != nil {
		log.Debug("failed to cache leaderboard", "error", err)
	}
	return rows, nil
}
