package model

import "time"

// Actor is the cached enrichment profile for one platform login.
// Profiles are created lazily the first time a login is tagged on an
// ingested event and are never refreshed once present.
type Actor struct {
	Login       string    `json:"login"`
	Name        string    `json:"name"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	IsOrgMember bool      `json:"is_org_member"`
	CreatedAt   time.Time `json:"created_at"`
}
