package contest

import (
	"github.com/snapvote/snapvote/internal/database"
)

// TestContestLifecycle walks one full contest: submissions, moderation,
// the phase transitions, voting with replacement and the final ranking.
func (s *EngineTestSuite) TestContestLifecycle() {
	phase, err := s.engine.CurrentPhase(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal(PhaseUpload, phase)

	sunset, err := s.submit("E1", "Sunset", "Theme One")
	s.Require().NoError(err)
	harbor, err := s.submit("E2", "Harbor", "Theme One")
	s.Require().NoError(err)
	blurry, err := s.submit("E3", "Blurry", "Theme Two")
	s.Require().NoError(err)

	// moderation: two in, one out
	s.Require().NoError(s.engine.Approve(s.ctx, sunset.PhotoID))
	s.Require().NoError(s.engine.Approve(s.ctx, harbor.PhotoID))
	s.Require().NoError(s.engine.Reject(s.ctx, blurry.PhotoID, "out of focus"))

	// the rejected slot is free again
	retry, err := s.submit("E3", "Sharper", "Theme Two")
	s.Require().NoError(err)
	s.Require().NoError(s.engine.Approve(s.ctx, retry.PhotoID))

	s.Require().NoError(s.engine.EnableVoting(s.ctx))
	phase, err = s.engine.CurrentPhase(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal(PhaseVoting, phase)

	s.Require().NoError(s.engine.Vote(s.ctx, "E1", harbor.PhotoID))
	s.Require().NoError(s.engine.Vote(s.ctx, "E2", harbor.PhotoID))
	s.Require().NoError(s.engine.Vote(s.ctx, "E3", sunset.PhotoID))

	// E3 changes their mind; the old vote is replaced
	s.Require().NoError(s.engine.Vote(s.ctx, "E3", retry.PhotoID))

	votes, err := s.db.GetAllVotes(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(votes, 3)

	s.Require().NoError(s.engine.EndVoting(s.ctx))
	phase, err = s.engine.CurrentPhase(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal(PhaseEnded, phase)

	rows, err := s.engine.ComputeLeaderboard(s.ctx, true)
	s.Require().NoError(err)
	s.Require().Len(rows, 3)

	s.Equal("Harbor", rows[0].Title)
	s.Equal(2, rows[0].Votes)
	s.Equal(1, rows[0].Rank)
	s.Equal("E2", rows[0].Uploader)

	s.Equal("Sharper", rows[1].Title)
	s.Equal(1, rows[1].Votes)
	s.Equal(2, rows[1].Rank)

	s.Equal("Sunset", rows[2].Title)
	s.Equal(0, rows[2].Votes)
	s.Equal(3, rows[2].Rank)

	// reset clears the flags for the next round
	s.Require().NoError(s.engine.ResetContest(s.ctx))
	phase, err = s.engine.CurrentPhase(s.ctx)
	s.Require().NoError(err)
	s.Equal(PhaseUpload, phase)

	state, err := s.db.GetContestState(s.ctx)
	s.Require().NoError(err)
	s.False(state.VotingPhaseEnabled)
	s.False(state.VotingEnded)
}

func (s *EngineTestSuite) TestStatsCountsByStatus() {
	s.submitApproved("E1", "Approved", "Theme One")
	_, err := s.submit("E2", "Pending", "Theme One")
	s.Require().NoError(err)
	rejected, err := s.submit("E3", "Rejected", "Theme One")
	s.Require().NoError(err)
	s.Require().NoError(s.engine.Reject(s.ctx, rejected.PhotoID, ""))

	stats, err := s.engine.GetStats(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, stats.PendingPhotos)
	s.Equal(1, stats.ApprovedPhotos)
	s.Equal(1, stats.RejectedPhotos)
}

func (s *EngineTestSuite) TestUserPhotosIncludeAllStatuses() {
	s.submitApproved("E1", "Approved", "Theme One")
	rejected, err := s.submit("E1", "Rejected", "Theme Two")
	s.Require().NoError(err)
	s.Require().NoError(s.engine.Reject(s.ctx, rejected.PhotoID, "dup"))

	photos, err := s.engine.UserPhotos(s.ctx, "e1")
	s.Require().NoError(err)
	s.Require().Len(photos, 2)
	s.Equal(database.PhotoStatusApproved, photos[0].Status)
	s.Equal(database.PhotoStatusRejected, photos[1].Status)
}
