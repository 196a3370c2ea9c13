package contest

import (
	"github.com/snapvote/snapvote/internal/database"
)

func (s *EngineTestSuite) TestApprovePendingPhoto() {
	photo, err := s.submit("E1", "Sunset", "Theme One")
	s.Require().NoError(err)

	s.Require().NoError(s.engine.Approve(s.ctx, photo.PhotoID))

	got, err := s.engine.GetPhoto(s.ctx, photo.PhotoID)
	s.Require().NoError(err)
	s.Equal(database.PhotoStatusApproved, got.Status)
	s.Nil(got.RejectionReason)
}

func (s *EngineTestSuite) TestApproveIsPendingOnly() {
	photo := s.submitApproved("E1", "Sunset", "Theme One")

	s.ErrorIs(s.engine.Approve(s.ctx, photo.PhotoID), ErrNotPending)
}

func (s *EngineTestSuite) TestApproveUnknownPhoto() {
	s.ErrorIs(s.engine.Approve(s.ctx, "missing"), ErrPhotoNotFound)
}

func (s *EngineTestSuite) TestRejectStoresReason() {
	photo, err := s.submit("E1", "Sunset", "Theme One")
	s.Require().NoError(err)

	s.Require().NoError(s.engine.Reject(s.ctx, photo.PhotoID, "  out of focus  "))

	got, err := s.engine.GetPhoto(s.ctx, photo.PhotoID)
	s.Require().NoError(err)
	s.Equal(database.PhotoStatusRejected, got.Status)
	s.Require().NotNil(got.RejectionReason)
	s.Equal("out of focus", *got.RejectionReason)
}

func (s *EngineTestSuite) TestRejectWithoutReason() {
	photo, err := s.submit("E1", "Sunset", "Theme One")
	s.Require().NoError(err)

	s.Require().NoError(s.engine.Reject(s.ctx, photo.PhotoID, ""))

	got, err := s.engine.GetPhoto(s.ctx, photo.PhotoID)
	s.Require().NoError(err)
	s.Equal(database.PhotoStatusRejected, got.Status)
	s.Nil(got.RejectionReason)
}

func (s *EngineTestSuite) TestRejectApprovedPhotoFails() {
	photo := s.submitApproved("E1", "Sunset", "Theme One")

	s.ErrorIs(s.engine.Reject(s.ctx, photo.PhotoID, "too late"), ErrNotPending)
}

func (s *EngineTestSuite) TestDeleteRemovesPhotoAndVotes() {
	photo := s.submitApproved("E1", "Sunset", "Theme One")
	s.Require().NoError(s.engine.Vote(s.ctx, "E2", photo.PhotoID))
	s.Require().NoError(s.engine.Vote(s.ctx, "E3", photo.PhotoID))

	s.Require().NoError(s.engine.Delete(s.ctx, photo.PhotoID))

	_, err := s.engine.GetPhoto(s.ctx, photo.PhotoID)
	s.ErrorIs(err, ErrPhotoNotFound)

	votes, err := s.db.GetAllVotes(s.ctx)
	s.Require().NoError(err)
	s.Empty(votes)
}

func (s *EngineTestSuite) TestDeleteUnknownPhoto() {
	s.ErrorIs(s.engine.Delete(s.ctx, "missing"), ErrPhotoNotFound)
}

func (s *EngineTestSuite) TestGalleryShowsApprovedOnly() {
	s.submitApproved("E1", "Approved", "Theme One")
	_, err := s.submit("E2", "Pending", "Theme Two")
	s.Require().NoError(err)
	rejected, err := s.submit("E3", "Rejected", "Theme Three")
	s.Require().NoError(err)
	s.Require().NoError(s.engine.Reject(s.ctx, rejected.PhotoID, ""))

	photos, err := s.engine.Gallery(s.ctx, false)
	s.Require().NoError(err)
	s.Require().Len(photos, 1)
	s.Equal("Approved", photos[0].Title)

	all, err := s.engine.Gallery(s.ctx, true)
	s.Require().NoError(err)
	s.Len(all, 3)
}

func (s *EngineTestSuite) TestGalleryReflectsModeration() {
	photo, err := s.submit("E1", "Sunset", "Theme One")
	s.Require().NoError(err)

	photos, err := s.engine.Gallery(s.ctx, false)
	s.Require().NoError(err)
	s.Empty(photos)

	// approval must invalidate the cached gallery
	s.Require().NoError(s.engine.Approve(s.ctx, photo.PhotoID))

	photos, err = s.engine.Gallery(s.ctx, false)
	s.Require().NoError(err)
	s.Len(photos, 1)
}

func (s *EngineTestSuite) TestPendingPhotosQueue() {
	s.submitApproved("E1", "Approved", "Theme One")
	_, err := s.submit("E2", "Queued", "Theme One")
	s.Require().NoError(err)

	pending, err := s.engine.PendingPhotos(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(pending, 1)
	s.Equal("Queued", pending[0].Title)
}
