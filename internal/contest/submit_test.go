package contest

import (
	"github.com/snapvote/snapvote/internal/database"
)

func (s *EngineTestSuite) TestSubmitCreatesPendingPhoto() {
	photo, err := s.submit("E1", "Sunset", "Theme One")
	s.Require().NoError(err)

	s.Equal(database.PhotoStatusPending, photo.Status)
	s.Equal("E1", photo.Uploader)
	s.Equal("Sunset", photo.Title)
	s.NotEmpty(photo.PhotoID)
	s.NotEmpty(photo.Filename)
	s.NotNil(photo.InlineImage)
	s.Positive(photo.SizeBytes)
}

func (s *EngineTestSuite) TestSubmitValidation() {
	img := testImage(s.T())

	_, err := s.engine.Submit(s.ctx, SubmitRequest{EmployeeID: "E1", Title: "  ", Theme: "Theme One", Image: img})
	s.ErrorIs(err, ErrTitleRequired)

	_, err = s.engine.Submit(s.ctx, SubmitRequest{EmployeeID: "E1", Title: "Sunset", Image: img})
	s.ErrorIs(err, ErrThemeRequired)

	_, err = s.engine.Submit(s.ctx, SubmitRequest{EmployeeID: "E1", Title: "Sunset", Theme: "Nope", Image: img})
	s.ErrorIs(err, ErrUnknownTheme)

	_, err = s.engine.Submit(s.ctx, SubmitRequest{EmployeeID: "E1", Title: "Sunset", Theme: "Theme One"})
	s.ErrorIs(err, ErrImageRequired)

	_, err = s.engine.Submit(s.ctx, SubmitRequest{EmployeeID: "E1", Title: "Sunset", Theme: "Theme One", Image: []byte("not an image")})
	s.ErrorIs(err, ErrImageInvalid)

	// nothing was persisted
	photos, err := s.db.GetAllPhotos(s.ctx)
	s.Require().NoError(err)
	s.Empty(photos)
}

func (s *EngineTestSuite) TestQuotaEnforced() {
	_, err := s.submit("E1", "One", "Theme One")
	s.Require().NoError(err)
	_, err = s.submit("E1", "Two", "Theme Two")
	s.Require().NoError(err)

	_, err = s.submit("E1", "Three", "Theme Three")
	s.ErrorIs(err, ErrQuotaExceeded)

	count, err := s.engine.CountNonRejected(s.ctx, "E1")
	s.Require().NoError(err)
	s.Equal(2, count)
}

func (s *EngineTestSuite) TestQuotaIsCaseInsensitive() {
	_, err := s.submit("e1", "One", "Theme One")
	s.Require().NoError(err)
	_, err = s.submit("E1", "Two", "Theme Two")
	s.Require().NoError(err)

	_, err = s.submit("e1", "Three", "Theme Three")
	s.ErrorIs(err, ErrQuotaExceeded)
}

func (s *EngineTestSuite) TestRejectedPhotoFreesQuotaSlot() {
	one, err := s.submit("E1", "One", "Theme One")
	s.Require().NoError(err)
	_, err = s.submit("E1", "Two", "Theme Two")
	s.Require().NoError(err)

	_, err = s.submit("E1", "Three", "Theme Three")
	s.ErrorIs(err, ErrQuotaExceeded)

	s.Require().NoError(s.engine.Reject(s.ctx, one.PhotoID, "blurry"))

	_, err = s.submit("E1", "Three", "Theme Three")
	s.NoError(err)
}

func (s *EngineTestSuite) TestOnePhotoPerTheme() {
	_, err := s.submit("E1", "One", "Theme One")
	s.Require().NoError(err)

	_, err = s.submit("E1", "Another", "Theme One")
	s.ErrorIs(err, ErrThemeTaken)
}

func (s *EngineTestSuite) TestRejectedPhotoFreesTheme() {
	one, err := s.submit("E1", "One", "Theme One")
	s.Require().NoError(err)

	s.Require().NoError(s.engine.Reject(s.ctx, one.PhotoID, ""))

	_, err = s.submit("E1", "Retry", "Theme One")
	s.NoError(err)
}

func (s *EngineTestSuite) TestOtherUsersDoNotShareQuota() {
	_, err := s.submit("E1", "One", "Theme One")
	s.Require().NoError(err)

	_, err = s.submit("E2", "Mine", "Theme One")
	s.NoError(err)
}
