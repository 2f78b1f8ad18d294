package models

// Account is a registered player: identity, credential hash and balance.
// PasswordHash never leaves the server.
type Account struct {
	ID           int64  `json:"id"`
	UserName     string `json:"username"`
	PasswordHash string `json:"-"`
	Balance      int64  `json:"balance"`
}

// ProfileView is the read-only projection of an Account joined with its Stats.
type ProfileView struct {
	ID       int64  `json:"id"`
	UserName string `json:"username"`
	Balance  int64  `json:"balance"`
	Kills    int64  `json:"kills"`
	Deaths   int64  `json:"deaths"`
	Wins     int64  `json:"wins"`
	Losses   int64  `json:"losses"`
}
