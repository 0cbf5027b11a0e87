package model

import "time"

// 購入記録
// 単価は購入時点のスナップショット。
type Purchase struct {
	ID                string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	ISBN              string    `gorm:"type:varchar(32);not null;index" json:"isbn"`
	UnitPriceSnapshot int64     `gorm:"not null;column:unit_price_snapshot" json:"unit_price"`
	Quantity          int64     `gorm:"not null" json:"quantity"`
	CreatedAt         time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
