package service

import (
	"context"

	"github.com/Densingh-123/Home-Services/directory-svc/internal/domain"
)

type SliderService struct {
	repo SliderRepository
}

func NewSliderService(repo SliderRepository) *SliderService {
	return &SliderService{repo: repo}
}

// List returns every banner. Slides without an image are left out.
func (s *SliderService) List(ctx context.Context) ([]domain.Slide, error) {
	slides, err := s.repo.ListSlides(ctx)
	if err != nil {
		return nil, storeError("list slides", err)
	}
	out := slides[:0]
	for _, slide := range slides {
		if slide.ImageURL != "" {
			out = append(out, slide)
		}
	}
	return out, nil
}
