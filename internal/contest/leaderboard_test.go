package contest

func (s *EngineTestSuite) TestLeaderboardOrdersByVotes() {
	first := s.submitApproved("E1", "Sunset", "Theme One")
	second := s.submitApproved("E2", "Harbor", "Theme One")
	third := s.submitApproved("E3", "Forest", "Theme One")

	s.Require().NoError(s.engine.Vote(s.ctx, "V1", second.PhotoID))
	s.Require().NoError(s.engine.Vote(s.ctx, "V2", second.PhotoID))
	s.Require().NoError(s.engine.Vote(s.ctx, "V3", third.PhotoID))

	rows, err := s.engine.ComputeLeaderboard(s.ctx, false)
	s.Require().NoError(err)
	s.Require().Len(rows, 3)

	s.Equal(second.PhotoID, rows[0].PhotoID)
	s.Equal(2, rows[0].Votes)
	s.Equal(third.PhotoID, rows[1].PhotoID)
	s.Equal(1, rows[1].Votes)
	s.Equal(first.PhotoID, rows[2].PhotoID)
	s.Equal(0, rows[2].Votes)
}

func (s *EngineTestSuite) TestLeaderboardTieBreaksByUploadTime() {
	earlier := s.submitApproved("E1", "Sunset", "Theme One")
	later := s.submitApproved("E2", "Harbor", "Theme One")

	s.Require().NoError(s.engine.Vote(s.ctx, "V1", earlier.PhotoID))
	s.Require().NoError(s.engine.Vote(s.ctx, "V2", later.PhotoID))

	rows, err := s.engine.ComputeLeaderboard(s.ctx, false)
	s.Require().NoError(err)
	s.Require().Len(rows, 2)

	// equal vote counts keep upload order
	s.Equal(earlier.PhotoID, rows[0].PhotoID)
	s.Equal(later.PhotoID, rows[1].PhotoID)
}

func (s *EngineTestSuite) TestLeaderboardRanksAreSequential() {
	s.submitApproved("E1", "Sunset", "Theme One")
	s.submitApproved("E2", "Harbor", "Theme One")
	s.submitApproved("E3", "Forest", "Theme One")

	rows, err := s.engine.ComputeLeaderboard(s.ctx, false)
	s.Require().NoError(err)
	s.Require().Len(rows, 3)

	for i, row := range rows {
		s.Equal(i+1, row.Rank)
	}
}

func (s *EngineTestSuite) TestLeaderboardExcludesUnapprovedPhotos() {
	approved := s.submitApproved("E1", "Sunset", "Theme One")
	_, err := s.submit("E2", "Pending", "Theme One")
	s.Require().NoError(err)
	rejected, err := s.submit("E3", "Rejected", "Theme One")
	s.Require().NoError(err)
	s.Require().NoError(s.engine.Reject(s.ctx, rejected.PhotoID, ""))

	rows, err := s.engine.ComputeLeaderboard(s.ctx, false)
	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	s.Equal(approved.PhotoID, rows[0].PhotoID)
}

func (s *EngineTestSuite) TestLeaderboardWithholdsUploader() {
	s.submitApproved("E1", "Sunset", "Theme One")

	rows, err := s.engine.ComputeLeaderboard(s.ctx, false)
	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	s.Empty(rows[0].Uploader)

	named, err := s.engine.ComputeLeaderboard(s.ctx, true)
	s.Require().NoError(err)
	s.Require().Len(named, 1)
	s.Equal("E1", named[0].Uploader)
}

func (s *EngineTestSuite) TestLeaderboardReflectsVoteChanges() {
	first := s.submitApproved("E1", "Sunset", "Theme One")
	second := s.submitApproved("E2", "Harbor", "Theme One")

	s.Require().NoError(s.engine.Vote(s.ctx, "V1", first.PhotoID))

	rows, err := s.engine.ComputeLeaderboard(s.ctx, false)
	s.Require().NoError(err)
	s.Equal(first.PhotoID, rows[0].PhotoID)

	// moving the vote must invalidate the cached ranking
	s.Require().NoError(s.engine.Vote(s.ctx, "V1", second.PhotoID))

	rows, err = s.engine.ComputeLeaderboard(s.ctx, false)
	s.Require().NoError(err)
	s.Equal(second.PhotoID, rows[0].PhotoID)
	s.Equal(1, rows[0].Votes)
	s.Equal(0, rows[1].Votes)
}
