package contest

func (s *EngineTestSuite) TestInitialPhaseIsUpload() {
	phase, err := s.engine.CurrentPhase(s.ctx)
	s.Require().NoError(err)
	s.Equal(PhaseUpload, phase)
}

func (s *EngineTestSuite) TestEnableVoting() {
	s.Require().NoError(s.engine.EnableVoting(s.ctx))

	phase, err := s.engine.CurrentPhase(s.ctx)
	s.Require().NoError(err)
	s.Equal(PhaseVoting, phase)
}

func (s *EngineTestSuite) TestEnableVotingTwiceIsInvalid() {
	s.Require().NoError(s.engine.EnableVoting(s.ctx))
	s.ErrorIs(s.engine.EnableVoting(s.ctx), ErrInvalidTransition)
}

func (s *EngineTestSuite) TestEndVotingOnlyFromVotingPhase() {
	s.ErrorIs(s.engine.EndVoting(s.ctx), ErrInvalidTransition)

	s.Require().NoError(s.engine.EnableVoting(s.ctx))
	s.Require().NoError(s.engine.EndVoting(s.ctx))

	phase, err := s.engine.CurrentPhase(s.ctx)
	s.Require().NoError(err)
	s.Equal(PhaseEnded, phase)

	// already ended
	s.ErrorIs(s.engine.EndVoting(s.ctx), ErrInvalidTransition)
}

func (s *EngineTestSuite) TestDisableVotingClearsEndedFlag() {
	s.Require().NoError(s.engine.EnableVoting(s.ctx))
	s.Require().NoError(s.engine.DisableVoting(s.ctx))

	state, err := s.db.GetContestState(s.ctx)
	s.Require().NoError(err)
	s.False(state.VotingPhaseEnabled)
	s.False(state.VotingEnded)
}

func (s *EngineTestSuite) TestDisableVotingFromUploadIsInvalid() {
	s.ErrorIs(s.engine.DisableVoting(s.ctx), ErrInvalidTransition)
}

func (s *EngineTestSuite) TestResetOnlyFromEnded() {
	s.ErrorIs(s.engine.ResetContest(s.ctx), ErrInvalidTransition)

	s.Require().NoError(s.engine.EnableVoting(s.ctx))
	s.ErrorIs(s.engine.ResetContest(s.ctx), ErrInvalidTransition)

	s.Require().NoError(s.engine.EndVoting(s.ctx))
	s.Require().NoError(s.engine.ResetContest(s.ctx))

	phase, err := s.engine.CurrentPhase(s.ctx)
	s.Require().NoError(err)
	s.Equal(PhaseUpload, phase)

	state, err := s.db.GetContestState(s.ctx)
	s.Require().NoError(err)
	s.False(state.VotingPhaseEnabled)
	s.False(state.VotingEnded)
}
