package models

import (
	"time"

	"gorm.io/datatypes"
)

// Strategy is a published educational write-up with an ordered list of
// image URLs. Strategies are created once and only ever deleted.
type Strategy struct {
	ID      string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title   string `gorm:"type:varchar(200);not null" json:"title"`
	Content string `gorm:"type:text;not null" json:"content"`

	// Images is the domain view; the store round-trips it through ImagesRaw.
	Images    []string       `gorm:"-" json:"images"`
	ImagesRaw datatypes.JSON `gorm:"column:images;type:json" json:"-"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

func (Strategy) TableName() string {
	return "strategies"
}
