package models

import "time"

// Pagination defaults
const (
	PollPageSize     = 10
	PollMaxPageSize  = 100
	VoterPageSize    = 20
	VoterMaxPageSize = 200

	NotificationPageSize    = 10
	NotificationMaxPageSize = 100
	FollowPageSize          = 50
	FollowMaxPageSize       = 1000
	RequestPageSize         = 30
	RequestMaxPageSize      = 150
	BlockedPageSize         = 20
	BlockedMaxPageSize      = 100
)

// Notification verbs
const (
	VerbVoteOnYourPoll = "vote-on-your-poll"
	VerbFollowRequest  = "follow-request"
	VerbFollow         = "follow"
	VerbFollowAccept   = "follow-accept"
)

// Request types

type ChoiceRequest struct {
	Order   int    `json:"order"`
	Context string `json:"context"`
}

type CreatePollRequest struct {
	Question          string          `json:"question"`
	Description       string          `json:"description"`
	Choices           []ChoiceRequest `json:"choices"`
	MinChoiceCanVote  *int            `json:"min_choice_can_vote,omitempty"`
	MaxChoiceCanVote  *int            `json:"max_choice_can_vote,omitempty"`
	VisibilityStatus  string          `json:"visibility_status,omitempty"`
	IsVoteRetractable *bool           `json:"is_vote_retractable,omitempty"`
	IsPublic          *bool           `json:"is_public,omitempty"`
	IsCommentable     *bool           `json:"is_commentable,omitempty"`
	AttachedHTTPLink  string          `json:"attached_http_link,omitempty"`
	ImageID           *string         `json:"image_id,omitempty"`
	FileID            *string         `json:"file_id,omitempty"`
}

type CastVoteRequest struct {
	Selected []int `json:"selected"`
}

type UpdateProfileRequest struct {
	IsPublic *bool `json:"is_public"`
}

// Response types

type UserSummary struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	IsPublic  bool   `json:"is_public"`
}

// VoteCount is nil when the viewer may not see results.
type ChoiceResponse struct {
	Order     int    `json:"order"`
	Context   string `json:"context"`
	VoteCount *int64 `json:"vote_count"`
}

type PollResponse struct {
	ID                string           `json:"id"`
	Creator           UserSummary      `json:"creator"`
	CreatedAt         time.Time        `json:"created_at"`
	Question          string           `json:"question"`
	Description       string           `json:"description"`
	Choices           []ChoiceResponse `json:"choices"`
	MinChoiceCanVote  int              `json:"min_choice_can_vote"`
	MaxChoiceCanVote  int              `json:"max_choice_can_vote"`
	VisibilityStatus  VisibilityStatus `json:"visibility_status"`
	IsVoteRetractable bool             `json:"is_vote_retractable"`
	IsPublic          bool             `json:"is_public"`
	IsCommentable     bool             `json:"is_commentable"`
	AttachedHTTPLink  string           `json:"attached_http_link,omitempty"`
	ImageID           *string          `json:"image_id,omitempty"`
	FileID            *string          `json:"file_id,omitempty"`
	CanSeeResults     bool             `json:"can_see_results"`
	AllVotes          *int64           `json:"all_votes"`
	VotedChoices      []int            `json:"voted_choices"`
}

type CastVoteResponse struct {
	Selected []int `json:"selected"`
}

type ChoiceCount struct {
	Order   int    `json:"order"`
	Context string `json:"context"`
	Count   int64  `json:"count"`
}

type DayCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type FollowResponse struct {
	FollowerID string `json:"follower_id"`
	FolloweeID string `json:"followee_id"`
	Pending    bool   `json:"pending"`
}

type NotificationResponse struct {
	ID        uint      `json:"id"`
	Actor     string    `json:"actor_id"`
	Verb      string    `json:"verb"`
	PollID    *string   `json:"poll_id,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

// Page is the envelope for paginated listings.
type Page[T any] struct {
	Count    int64 `json:"count"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Results  []T   `json:"results"`
}

// Error response

type ErrorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}
