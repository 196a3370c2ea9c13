package database

import "context"

// DB defines the persistence operations the contest engine depends on.
// It exists so the storage medium stays swappable without touching
// contest logic.
type DB interface {
	// Users
	UpsertUser(ctx context.Context, employeeID, name, postingDetails string, isAdmin bool) (*User, error)
	GetUserByEmployeeID(ctx context.Context, employeeID string) (*User, error)
	GetAllUsers(ctx context.Context) ([]User, error)

	// Photos
	CreatePhoto(ctx context.Context, photo *Photo) error
	GetPhotoByID(ctx context.Context, photoID string) (*Photo, error)
	GetAllPhotos(ctx context.Context) ([]Photo, error)
	GetPhotosByStatus(ctx context.Context, status PhotoStatus) ([]Photo, error)
	GetPhotosByUploader(ctx context.Context, employeeID string) ([]Photo, error)
	CountNonRejectedByUploader(ctx context.Context, employeeID string) (int64, error)
	HasNonRejectedForTheme(ctx context.Context, employeeID, theme string) (bool, error)
	SetPhotoStatus(ctx context.Context, photoID string, status PhotoStatus, rejectionReason *string) error
	DeletePhotoWithVotes(ctx context.Context, photoID string) error

	// Votes
	ReplaceVote(ctx context.Context, voter, photoID string) error
	GetAllVotes(ctx context.Context) ([]Vote, error)
	GetVoteByVoter(ctx context.Context, voter string) (*Vote, error)
	CountVotesByPhoto(ctx context.Context) (map[string]int, error)

	// Contest state
	GetContestState(ctx context.Context) (*ContestState, error)
	SaveContestState(ctx context.Context, state *ContestState) error

	// Utility
	Close() error
}
