package models

// GeneratedFact is one LLM-produced joke kept in the append-only fact log.
type GeneratedFact struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Text      string `gorm:"type:text;not null" json:"text"`
	Icon      string `json:"icon"`
	Provider  string `gorm:"index;not null" json:"provider"`
	Timestamp int64  `gorm:"index" json:"timestamp"` // epoch milliseconds
}
