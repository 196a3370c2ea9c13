// Package models holds the API-facing view types and their converters
// from the database models.
package models

import "time"

// User is the authenticated user as stored in the session.
type User struct {
	EmployeeID     string `json:"employeeId"`
	Name           string `json:"name"`
	PostingDetails string `json:"postingDetails,omitempty"`
	IsAdmin        bool   `json:"isAdmin"`
}

// PhotoItem is a photo as presented in listings. Uploader is only
// populated for admin views.
type PhotoItem struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Theme           string    `json:"theme,omitempty"`
	Status          string    `json:"status"`
	RejectionReason string    `json:"rejectionReason,omitempty"`
	Uploader        string    `json:"uploader,omitempty"`
	UploadedAt      time.Time `json:"uploadedAt"`
	Uploaded        string    `json:"uploaded"`
	Size            string    `json:"size,omitempty"`
	ImageURL        string    `json:"imageUrl"`
}

// ContestStateResponse reports the contest phase to clients.
type ContestStateResponse struct {
	Phase              string `json:"phase"`
	VotingPhaseEnabled bool   `json:"votingPhaseEnabled"`
	VotingEnded        bool   `json:"votingEnded"`
}

// VoteRequest is the payload for casting or moving a vote.
type VoteRequest struct {
	PhotoID string `json:"photoId" binding:"required"`
}

// RejectRequest is the payload for rejecting a pending photo.
type RejectRequest struct {
	Reason string `json:"reason"`
}

// LoginRequest is the payload for the registration-free login.
type LoginRequest struct {
	EmployeeID     string `json:"employeeId" binding:"required"`
	Name           string `json:"name" binding:"required"`
	PostingDetails string `json:"postingDetails"`
}
