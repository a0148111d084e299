package dto

import "time"

// AuthRequest describes login/password payload.
type AuthRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// ProfileResponse describes the caller's account.
type ProfileResponse struct {
	Login    string          `json:"login"`
	Tier     string          `json:"tier"`
	ProSince *time.Time      `json:"pro_since,omitempty"`
	Wallet   *WalletResponse `json:"wallet,omitempty"`
}
