package models

// StampMaster is immutable catalog data. Type is optional: an empty value
// means the stamp can be collected by either method. Location fields are
// only present for GPS stamps.
type StampMaster struct {
	StampID   string    `json:"stamp_id"`
	Name      string    `json:"name"`
	Type      string    `json:"type,omitempty"`
	ValidFrom int64     `json:"valid_from,omitempty"`
	ValidTo   int64     `json:"valid_to,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	Location  *Location `json:"location,omitempty"`
}

type Location struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	RadiusM float64 `json:"radius_m"`
}

type UserStamp struct {
	UserID      string `json:"user_id"`
	StampID     string `json:"stamp_id"`
	CollectedAt int64  `json:"collected_at"`
	Method      string `json:"method"`
}

type AwardInput struct {
	UserID  string `json:"user_id"`
	StampID string `json:"stamp_id"`
	Method  string `json:"method"`
}

type GPSVerifyInput struct {
	UserID   string   `json:"user_id"`
	SpotID   string   `json:"spot_id"`
	Lat      *float64 `json:"lat"`
	Lon      *float64 `json:"lon"`
	Accuracy float64  `json:"accuracy"`
}
