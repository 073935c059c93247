package service

import (
	"context"
	"fmt"

	"heatshield/internal/db"
	apperrors "heatshield/internal/errors"
	"heatshield/internal/model"
	"heatshield/internal/repository"
)

// DefaultHeatmapMaxLimit caps a page when no limit is configured.
const DefaultHeatmapMaxLimit = 1000

// Sample is a location report. Latitude and Longitude are pointers so a
// missing coordinate can be told apart from zero.
type Sample struct {
	Latitude    *float64
	Longitude   *float64
	Temperature *float64
}

// HeatmapService stores and lists heatmap samples.
type HeatmapService interface {
	SaveLocation(ctx context.Context, userID model.UserID, sample Sample) (*model.HeatmapData, error)
	ListHeatmapData(ctx context.Context, q model.HeatmapQuery) ([]model.HeatmapData, error)
}

type heatmapService struct {
	repo     repository.HeatmapRepository
	maxLimit int
}

// NewHeatmapService creates a heatmap service. maxLimit bounds paginated
// listings.
func NewHeatmapService(repo repository.HeatmapRepository, maxLimit int) HeatmapService {
	if maxLimit <= 0 {
		maxLimit = DefaultHeatmapMaxLimit
	}
	return &heatmapService{repo: repo, maxLimit: maxLimit}
}

func (s *heatmapService) SaveLocation(ctx context.Context, userID model.UserID, sample Sample) (*model.HeatmapData, error) {
	if sample.Latitude == nil || sample.Longitude == nil {
		return nil, apperrors.ErrMissingCoordinates
	}
	if !validLatitude(*sample.Latitude) || !validLongitude(*sample.Longitude) {
		return nil, apperrors.ErrInvalidCoordinates
	}

	data := &model.HeatmapData{
		UserID:      userID,
		Latitude:    *sample.Latitude,
		Longitude:   *sample.Longitude,
		Temperature: sample.Temperature,
	}
	if err := s.repo.Create(ctx, data); err != nil {
		// The caller's row was deleted after the token was issued.
		if db.IsForeignKeyViolation(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("save location: %w", err)
	}
	return data, nil
}

// ListHeatmapData returns every sample for a zero query. Pagination is only
// applied when a limit or offset is given.
func (s *heatmapService) ListHeatmapData(ctx context.Context, q model.HeatmapQuery) ([]model.HeatmapData, error) {
	if q.Limit < 0 || q.Offset < 0 {
		return nil, apperrors.Validation("limit and offset must not be negative")
	}
	if q.Offset > 0 && q.Limit == 0 {
		q.Limit = s.maxLimit
	}
	if q.Limit > s.maxLimit {
		q.Limit = s.maxLimit
	}
	if b := q.Bounds; b != nil {
		if !validLatitude(b.LatMin) || !validLatitude(b.LatMax) ||
			!validLongitude(b.LonMin) || !validLongitude(b.LonMax) ||
			b.LatMin > b.LatMax || b.LonMin > b.LonMax {
			return nil, apperrors.ErrInvalidQuery
		}
	}

	samples, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list heatmap data: %w", err)
	}
	if samples == nil {
		samples = []model.HeatmapData{}
	}
	return samples, nil
}

func validLatitude(v float64) bool {
	return v >= -90 && v <= 90
}

func validLongitude(v float64) bool {
	return v >= -180 && v <= 180
}
