package domain

import "time"

// User mirrors the persisted representation in the users table.
// PasswordHash is the Argon2id digest; the plaintext never leaves the
// registration and login flows.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Identity is the result of resolving the session cookie on an inbound
// request. Every failure mode along the way (missing cookie, bad signature,
// malformed payload, expired token, deleted account) collapses to the
// anonymous identity; callers only ever check Anonymous().
type Identity struct {
	User *User
}

// Anonymous reports whether the request carries no usable identity.
func (i Identity) Anonymous() bool {
	return i.User == nil
}

// Identified wraps a live user row into an identity.
func Identified(user *User) Identity {
	return Identity{User: user}
}
