package models

import "time"

// Setting is one key/value configuration entry. Value holds the JSON encoding
// of any value; the store never interprets it.
type Setting struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"` // JSON document
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
