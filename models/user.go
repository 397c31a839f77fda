package models

type User struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	LineID      string `json:"-"`
	CreatedAt   int64  `json:"created_at"`
	LastLoginAt int64  `json:"last_login_at"`
}

type VerifyInput struct {
	IDToken string `json:"id_token"`
}

type Friend struct {
	FriendID  string `json:"friend_id"`
	CreatedAt int64  `json:"created_at"`
}

type AddFriendInput struct {
	UserID   string `json:"user_id"`
	FriendID string `json:"friend_id"`
}
