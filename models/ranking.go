package models

type RankingEntry struct {
	Rank        int    `json:"rank"`
	UserID      string `json:"user_id"`
	StampCount  int    `json:"stamp_count"`
	DisplayName string `json:"display_name"`
	IsSelf      bool   `json:"is_self,omitempty"`
}

type UserComparison struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	StampCount  int    `json:"stamp_count"`
}
