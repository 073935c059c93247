package model

import "time"

// HeatmapData is one geotagged temperature sample submitted by a user.
type HeatmapData struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      UserID    `json:"user_id" gorm:"not null;index"`
	Latitude    float64   `json:"latitude" gorm:"not null"`
	Longitude   float64   `json:"longitude" gorm:"not null"`
	Temperature *float64  `json:"temperature"`
	Timestamp   time.Time `json:"timestamp" gorm:"autoCreateTime"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

// TableName keeps the table name used by existing deployments.
func (HeatmapData) TableName() string {
	return "heatmap_data"
}

// BoundingBox restricts a heatmap listing to a rectangle, inclusive.
type BoundingBox struct {
	LatMin, LatMax float64
	LonMin, LonMax float64
}

// HeatmapQuery filters and pages a heatmap listing. A zero value lists
// everything.
type HeatmapQuery struct {
	Bounds *BoundingBox
	Limit  int
	Offset int
}
