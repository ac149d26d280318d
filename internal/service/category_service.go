package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"taskmanager/internal/domain"
	"unicode/utf8"
)

const maxCategoryNameLen = 255

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type CategoryInput struct {
	Name        string
	Color       string
	Description string
}

func (s *TaskService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.ListCategories(ctx)
}

func (s *TaskService) CreateCategory(ctx context.Context, in CategoryInput) (domain.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Category{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > maxCategoryNameLen {
		return domain.Category{}, fmt.Errorf("%w: name exceeds %d characters", ErrInvalidInput, maxCategoryNameLen)
	}

	color := strings.TrimSpace(in.Color)
	if color != "" && !hexColor.MatchString(color) {
		return domain.Category{}, fmt.Errorf("%w: color must look like #RRGGBB", ErrInvalidInput)
	}

	created, err := s.categories.CreateCategory(ctx, domain.Category{
		Name:        name,
		Color:       color,
		Description: strings.TrimSpace(in.Description),
	})
	if err != nil {
		return domain.Category{}, fmt.Errorf("create category: %w", err)
	}
	return created, nil
}

// SeedDefaultCategories inserts the default categories when none exist yet
// and returns the categories present afterwards.
func (s *TaskService) SeedDefaultCategories(ctx context.Context) ([]domain.Category, error) {
	existing, err := s.categories.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if len(existing) > 0 {
		return existing, nil
	}

	seeded := make([]domain.Category, 0, len(domain.DefaultCategories()))
	for _, c := range domain.DefaultCategories() {
		created, err := s.categories.CreateCategory(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("seed category %q: %w", c.Name, err)
		}
		seeded = append(seeded, created)
	}

	s.logger.Info("seeded default categories", "count", len(seeded))

	return seeded, nil
}
