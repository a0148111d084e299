package model

import "time"

// Tier is a subscription level.
type Tier string

const (
	TierFree Tier = "free"
	TierPro  Tier = "pro"
)

// User represents a registered account. ID is the unique login.
type User struct {
	ID           string
	PasswordHash string
	Pro          bool
	ProSince     *time.Time
	CreatedAt    time.Time
}

// Tier reports subscription level derived from the pro flag.
func (u *User) Tier() Tier {
	if u.Pro {
		return TierPro
	}
	return TierFree
}

// Profile is a user together with the optional wallet.
type Profile struct {
	User   User
	Wallet *Wallet
}
