package models

import "time"

const (
	DirectionBuy  = "buy"
	DirectionSell = "sell"

	StatusActive    = "active"
	StatusCompleted = "completed"

	ResultWin  = "win"
	ResultLoss = "loss"
)

// Signal is a directional trade call on a currency pair. It is created
// active and transitions exactly once to completed with a win/loss result.
type Signal struct {
	ID        string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Pair      string `gorm:"type:varchar(50);not null" json:"pair"`
	Direction string `gorm:"type:varchar(10);not null" json:"direction"`
	// Duration is the call window in minutes.
	Duration int `gorm:"not null" json:"duration"`

	Status string  `gorm:"type:varchar(20);not null;index" json:"status"`
	Result *string `gorm:"type:varchar(10)" json:"result"`

	CreatedAt  time.Time  `gorm:"not null;index" json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at"`
}

func (Signal) TableName() string {
	return "signals"
}
