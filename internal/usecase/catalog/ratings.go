package catalog

import (
	"context"
	"math"

	domain "github.com/BruksfildServices01/barber-slots/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-slots/internal/models"
)

type RatingSummary struct {
	Average float64         `json:"average"`
	Count   int             `json:"count"`
	Entries []models.Rating `json:"entries"`
}

type Ratings struct {
	repo domain.Repository
}

func NewRatings(repo domain.Repository) *Ratings {
	return &Ratings{repo: repo}
}

// Summary averages the numeric ratings; review-only entries are listed
// but not counted.
func (uc *Ratings) Summary(ctx context.Context, barberID string) (*RatingSummary, error) {
	rows, err := uc.repo.ListRatings(ctx, barberID)
	if err != nil {
		return nil, err
	}

	out := &RatingSummary{Entries: rows}
	sum := 0
	for _, r := range rows {
		if r.Rating != nil {
			sum += *r.Rating
			out.Count++
		}
	}
	if out.Count > 0 {
		out.Average = math.Round(float64(sum)/float64(out.Count)*100) / 100
	}
	return out, nil
}
