package models

import (
	"time"
)

type Organization struct {
	BaseModel

	Name        string `json:"name"`
	Slug        string `json:"slug" gorm:"uniqueIndex"`
	Description string `json:"description"`
	OwnerEmail  string `json:"owner_email"`

	Members []OrganizationMember `json:"members,omitempty"`
	Invites []OrganizationInvite `json:"invites,omitempty"`
}

type OrgRole = string

const (
	OrgRoleOwner     = OrgRole("owner")
	OrgRoleModerator = OrgRole("moderator")
	OrgRoleMember    = OrgRole("member")
)

type OrganizationMember struct {
	BaseModel

	Email string  `json:"email"`
	Name  string  `json:"name"`
	Role  OrgRole `json:"role"`

	Organization   Organization `json:"organization"`
	OrganizationID uint         `json:"organization_id"`
}

type OrganizationInvite struct {
	BaseModel

	Email     string    `json:"email"`
	Role      OrgRole   `json:"role"`
	Token     string    `json:"token" gorm:"uniqueIndex"`
	ExpiredAt time.Time `json:"expired_at"`

	Organization   Organization `json:"organization"`
	OrganizationID uint         `json:"organization_id"`
}
