package model

import "time"

// SiteSetting is a key-value override for site content, e.g. hero statistics.
type SiteSetting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
