package models

import "time"

// Role is the closed set of account roles the backend assigns at signup.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleAuthor Role = "author"
	RoleReader Role = "reader"
)

// Capability names an action a role may perform in this client. Handlers
// check capabilities instead of comparing role strings inline.
type Capability string

const (
	CapCreatePost       Capability = "post:create"
	CapViewDrafts       Capability = "post:drafts"
	CapViewAuthorStats  Capability = "stats:author"
	CapViewAdminStats   Capability = "stats:admin"
	CapManageUsers      Capability = "users:manage"
	CapModerateComments Capability = "comments:moderate"
	CapUseAIHelpers     Capability = "ai:use"
)

var roleCapabilities = map[Role]map[Capability]bool{
	RoleAdmin: {
		CapCreatePost:       true,
		CapViewDrafts:       true,
		CapViewAuthorStats:  true,
		CapViewAdminStats:   true,
		CapManageUsers:      true,
		CapModerateComments: true,
		CapUseAIHelpers:     true,
	},
	RoleAuthor: {
		CapCreatePost:      true,
		CapViewDrafts:      true,
		CapViewAuthorStats: true,
		CapUseAIHelpers:    true,
	},
	RoleReader: {},
}

// Can reports whether the role is allowed to perform the given action.
// Unknown roles have no capabilities.
func (r Role) Can(cap Capability) bool {
	return roleCapabilities[r][cap]
}

func (r Role) Valid() bool {
	_, ok := roleCapabilities[r]
	return ok
}

// User mirrors the backend user document. Token is only populated on
// login/register responses.
type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	Bio       string    `json:"bio"`
	Role      Role      `json:"role"`
	Token     string    `json:"token,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
