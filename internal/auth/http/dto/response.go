package dto

import "time"

// IssueTokenResponse carries the plain token returned once at issuance.
type IssueTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
