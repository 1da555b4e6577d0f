package model

import (
	"errors"
	"strings"
)

// ErrInvalidAvatar is returned for avatars outside AvatarOptions.
var ErrInvalidAvatar = errors.New("avatar must be one of the available options")

// ErrEmptyName is returned for a blank profile name.
var ErrEmptyName = errors.New("profile name cannot be empty")

// AvatarOptions is the palette of glyphs a profile may use.
var AvatarOptions = []string{
	"👤", "👩", "👨", "🧑", "👵", "👴",
	"👩‍💼", "👨‍💼", "🕵️", "👷", "👸", "🤴",
	"🦁", "🐶", "🐱", "🐼", "🦊", "🐸",
	"🚀", "⭐", "💎", "💰", "🎩", "🎧",
}

// UserProfile is the display identity of the single local user.
type UserProfile struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// DefaultProfile is used until the user saves their own.
func DefaultProfile() UserProfile {
	return UserProfile{Name: "Visitante", Avatar: "👤"}
}

// Validate checks the profile fields. It trims the name in place.
func (p *UserProfile) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return ErrEmptyName
	}
	for _, a := range AvatarOptions {
		if a == p.Avatar {
			return nil
		}
	}
	return ErrInvalidAvatar
}
