package model

import (
	"time"

	"github.com/google/uuid"
)

// Role values
const (
	RoleRegular = "regular"
	RoleAdmin   = "admin"
)

// Status values
const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
)

// Listing status values
const (
	ListingListed   = "listed"
	ListingUnlisted = "unlisted"
)

// Visibility values
const (
	VisibilityVisible = "visible"
	VisibilityHidden  = "hidden"
)

// MaxPostsPerAuthor caps how many posts a regular author may create.
// Admins are unlimited.
const MaxPostsPerAuthor = 10

type Author struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Handle        string    `json:"handle" db:"handle"`
	Name          string    `json:"name" db:"name"`
	Email         string    `json:"email" db:"email"`
	Bio           *string   `json:"bio" db:"bio"`
	Website       *string   `json:"website" db:"website"`
	Role          string    `json:"role" db:"role"`
	Status        string    `json:"status" db:"status"`
	ListingStatus string    `json:"listing_status" db:"listing_status"`
	Visibility    string    `json:"visibility" db:"visibility"`
	APIToken      string    `json:"-" db:"api_token"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// JoinRequest is a pending application from the public join form. The api
// token is pre-generated; approval copies it onto the created author.
type JoinRequest struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Handle    string    `json:"handle" db:"handle"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Bio       *string   `json:"bio" db:"bio"`
	Website   *string   `json:"website" db:"website"`
	APIToken  string    `json:"-" db:"api_token"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Join request status values (approved/rejected are terminal)
const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)

type CreateAuthorRequest struct {
	Handle  string  `json:"handle" binding:"required"`
	Name    string  `json:"name" binding:"required"`
	Email   string  `json:"email" binding:"required"`
	Bio     *string `json:"bio,omitempty"`
	Website *string `json:"website,omitempty"`
	Role    string  `json:"role,omitempty"`
}

type UpdateAuthorRequest struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Bio     *string `json:"bio,omitempty"`
	Website *string `json:"website,omitempty"`
}

// TransitionRequest mutates exactly one of the enum columns.
type TransitionRequest struct {
	Role          *string `json:"role,omitempty"`
	Status        *string `json:"status,omitempty"`
	ListingStatus *string `json:"listing_status,omitempty"`
	Visibility    *string `json:"visibility,omitempty"`
}

type JoinFormRequest struct {
	Handle  string  `json:"handle" binding:"required"`
	Name    string  `json:"name" binding:"required"`
	Email   string  `json:"email" binding:"required"`
	Bio     *string `json:"bio,omitempty"`
	Website *string `json:"website,omitempty"`
}

type AuthorFilter struct {
	Limit         int
	Offset        int
	IncludeHidden bool // admin listing sees everything
}

// QuotaResult distinguishes "over quota" from "query failed": a repository
// error never produces a QuotaResult, it produces an error.
type QuotaResult struct {
	WithinQuota    bool `json:"withinQuota"`
	Unlimited      bool `json:"unlimited"`
	PostsRemaining int  `json:"postsRemaining"`
}

type AuthorResponse struct {
	Handle        string  `json:"handle"`
	Name          string  `json:"name"`
	Bio           *string `json:"bio,omitempty"`
	Website       *string `json:"website,omitempty"`
	Role          string  `json:"role"`
	Status        string  `json:"status"`
	ListingStatus string  `json:"listing_status"`
	Visibility    string  `json:"visibility"`
}

// ToResponse converts Author to its public payload. Email and api token
// never leave through this path.
func (a *Author) ToResponse() *AuthorResponse {
	return &AuthorResponse{
		Handle:        a.Handle,
		Name:          a.Name,
		Bio:           a.Bio,
		Website:       a.Website,
		Role:          a.Role,
		Status:        a.Status,
		ListingStatus: a.ListingStatus,
		Visibility:    a.Visibility,
	}
}

// AdminAuthorResponse includes the contact email for admin listings.
type AdminAuthorResponse struct {
	AuthorResponse
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Author) ToAdminResponse() *AdminAuthorResponse {
	return &AdminAuthorResponse{
		AuthorResponse: *a.ToResponse(),
		ID:             a.ID,
		Email:          a.Email,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
