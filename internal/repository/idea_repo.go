package repository

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IdeaRepo struct {
	db *gorm.DB
}

func NewIdeaRepo(db *gorm.DB) *IdeaRepo {
	return &IdeaRepo{db: db}
}

func (r *IdeaRepo) Create(ctx context.Context, idea *models.Idea) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(idea).Error)
}

// FindByID loads the idea with its author.
func (r *IdeaRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Idea, error) {
	var idea models.Idea
	if err := r.db.WithContext(ctx).Preload("Author").First(&idea, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &idea, nil
}

// Update writes the author-editable columns only, leaving ai_analysis alone.
func (r *IdeaRepo) Update(ctx context.Context, idea *models.Idea) error {
	result := r.db.WithContext(ctx).Model(idea).
		Omit(clause.Associations).
		Select("Title", "Description", "Tags", "Phase", "PhaseIndex", "UpdatedAt").
		Updates(idea)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *IdeaRepo) SetAnalysis(ctx context.Context, id uuid.UUID, analysis *models.Analysis) error {
	idea := models.Idea{ID: id, AIAnalysis: analysis}
	result := r.db.WithContext(ctx).Model(&idea).
		Omit(clause.Associations).
		Select("AIAnalysis", "UpdatedAt").
		Updates(&idea)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns ideas newest first with authors preloaded.
func (r *IdeaRepo) List(ctx context.Context, filter IdeaFilter) ([]models.Idea, error) {
	query := r.db.WithContext(ctx).Preload("Author").Order("created_at DESC")
	if filter.PublicOnly {
		query = query.Where("is_public = ?", true)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var ideas []models.Idea
	if err := query.Find(&ideas).Error; err != nil {
		return nil, err
	}
	return ideas, nil
}

func (r *IdeaRepo) CountByPhase(ctx context.Context) (map[string]int64, error) {
	var rows []countRow
	err := r.db.WithContext(ctx).Model(&models.Idea{}).
		Select("phase AS group_key, COUNT(*) AS count").
		Group("phase").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return countMap(rows), nil
}
