package models

import (
	"net/url"
	"strings"
)

const (
	defaultDisplayName = "Usuário"
	avatarBaseURL      = "https://api.dicebear.com/7.x/avataaars/svg"
)

// Identity is the display identity derived from an authenticated account.
type Identity struct {
	Name   string
	Email  string
	Avatar string
}

// DeriveIdentity builds the display identity for email: the name is the part
// before '@', the avatar a seeded dicebear image. Identical emails always
// produce identical identities.
func DeriveIdentity(email string) Identity {
	name, _, _ := strings.Cut(email, "@")
	if name == "" {
		name = defaultDisplayName
	}
	return Identity{
		Name:   name,
		Email:  email,
		Avatar: avatarBaseURL + "?seed=" + url.QueryEscape(email),
	}
}
