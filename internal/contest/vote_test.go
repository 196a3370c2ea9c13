package contest

func (s *EngineTestSuite) TestVoteRecordsSingleRow() {
	photo := s.submitApproved("E1", "Sunset", "Theme One")

	s.Require().NoError(s.engine.Vote(s.ctx, "E2", photo.PhotoID))

	vote, err := s.engine.CurrentVote(s.ctx, "E2")
	s.Require().NoError(err)
	s.Require().NotNil(vote)
	s.Equal(photo.PhotoID, vote.PhotoID)
	s.Equal("E2", vote.Voter)
	s.Equal(1, vote.Rating)
}

func (s *EngineTestSuite) TestVoteReplacesPreviousVote() {
	first := s.submitApproved("E1", "Sunset", "Theme One")
	second := s.submitApproved("E2", "Harbor", "Theme One")

	s.Require().NoError(s.engine.Vote(s.ctx, "E3", first.PhotoID))
	s.Require().NoError(s.engine.Vote(s.ctx, "E3", second.PhotoID))

	vote, err := s.engine.CurrentVote(s.ctx, "E3")
	s.Require().NoError(err)
	s.Require().NotNil(vote)
	s.Equal(second.PhotoID, vote.PhotoID)

	votes, err := s.db.GetAllVotes(s.ctx)
	s.Require().NoError(err)
	s.Len(votes, 1)
}

func (s *EngineTestSuite) TestVoteForSamePhotoIsIdempotent() {
	photo := s.submitApproved("E1", "Sunset", "Theme One")

	s.Require().NoError(s.engine.Vote(s.ctx, "E2", photo.PhotoID))
	s.Require().NoError(s.engine.Vote(s.ctx, "E2", photo.PhotoID))

	votes, err := s.db.GetAllVotes(s.ctx)
	s.Require().NoError(err)
	s.Len(votes, 1)
}

func (s *EngineTestSuite) TestVoterIdentityIsCaseInsensitive() {
	first := s.submitApproved("E1", "Sunset", "Theme One")
	second := s.submitApproved("E2", "Harbor", "Theme One")

	s.Require().NoError(s.engine.Vote(s.ctx, "e3", first.PhotoID))
	s.Require().NoError(s.engine.Vote(s.ctx, "E3", second.PhotoID))

	votes, err := s.db.GetAllVotes(s.ctx)
	s.Require().NoError(err)
	s.Len(votes, 1)
}

func (s *EngineTestSuite) TestVoteForUnknownPhoto() {
	s.ErrorIs(s.engine.Vote(s.ctx, "E1", "missing"), ErrPhotoNotFound)
}

func (s *EngineTestSuite) TestVoteForPendingPhotoFails() {
	photo, err := s.submit("E1", "Sunset", "Theme One")
	s.Require().NoError(err)

	s.ErrorIs(s.engine.Vote(s.ctx, "E2", photo.PhotoID), ErrNotApproved)
}

func (s *EngineTestSuite) TestVoteForRejectedPhotoFails() {
	photo, err := s.submit("E1", "Sunset", "Theme One")
	s.Require().NoError(err)
	s.Require().NoError(s.engine.Reject(s.ctx, photo.PhotoID, ""))

	s.ErrorIs(s.engine.Vote(s.ctx, "E2", photo.PhotoID), ErrNotApproved)
}

func (s *EngineTestSuite) TestCurrentVoteWithoutVote() {
	vote, err := s.engine.CurrentVote(s.ctx, "E1")
	s.Require().NoError(err)
	s.Nil(vote)
}

func (s *EngineTestSuite) TestUsersCanVoteForOwnPhoto() {
	photo := s.submitApproved("E1", "Sunset", "Theme One")

	s.NoError(s.engine.Vote(s.ctx, "E1", photo.PhotoID))
}
