package repository

import (
	"context"

	"gorm.io/gorm"

	"heatshield/internal/model"
)

// HeatmapRepository defines heatmap sample persistence operations.
type HeatmapRepository interface {
	Create(ctx context.Context, sample *model.HeatmapData) error
	List(ctx context.Context, q model.HeatmapQuery) ([]model.HeatmapData, error)
}

type heatmapRepository struct {
	db *gorm.DB
}

// NewHeatmapRepository builds a GORM-backed repository.
func NewHeatmapRepository(db *gorm.DB) HeatmapRepository {
	return &heatmapRepository{db: db}
}

func (r *heatmapRepository) Create(ctx context.Context, sample *model.HeatmapData) error {
	return r.db.WithContext(ctx).Omit("User").Create(sample).Error
}

// List returns samples matching q. Without paging no order is imposed.
func (r *heatmapRepository) List(ctx context.Context, q model.HeatmapQuery) ([]model.HeatmapData, error) {
	tx := r.db.WithContext(ctx).Model(&model.HeatmapData{})
	if b := q.Bounds; b != nil {
		tx = tx.Where("latitude BETWEEN ? AND ? AND longitude BETWEEN ? AND ?",
			b.LatMin, b.LatMax, b.LonMin, b.LonMax)
	}
	if q.Limit > 0 {
		tx = tx.Order("id").Limit(q.Limit).Offset(q.Offset)
	}

	samples := make([]model.HeatmapData, 0)
	if err := tx.Find(&samples).Error; err != nil {
		return nil, err
	}
	return samples, nil
}
