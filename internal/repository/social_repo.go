package repository

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ideaCountRow struct {
	IdeaID uuid.UUID
	Count  int64
}

func ideaCountMap(rows []ideaCountRow) map[uuid.UUID]int64 {
	result := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		result[row.IdeaID] = row.Count
	}
	return result
}

type LikeRepo struct {
	db *gorm.DB
}

func NewLikeRepo(db *gorm.DB) *LikeRepo {
	return &LikeRepo{db: db}
}

// Create returns ErrDuplicate when the pair already has a like.
func (r *LikeRepo) Create(ctx context.Context, like *models.Like) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(like).Error)
}

// Delete reports whether a like row was removed.
func (r *LikeRepo) Delete(ctx context.Context, ideaID, userID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("idea_id = ? AND user_id = ?", ideaID, userID).
		Delete(&models.Like{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *LikeRepo) CountByIdeas(ctx context.Context, ideaIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	if len(ideaIDs) == 0 {
		return map[uuid.UUID]int64{}, nil
	}
	var rows []ideaCountRow
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Select("idea_id, COUNT(*) AS count").
		Where("idea_id IN ?", ideaIDs).
		Group("idea_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return ideaCountMap(rows), nil
}

// LikedByUser returns the subset of ideaIDs the user has liked.
func (r *LikeRepo) LikedByUser(ctx context.Context, userID uuid.UUID, ideaIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	result := make(map[uuid.UUID]bool)
	if len(ideaIDs) == 0 {
		return result, nil
	}
	var liked []uuid.UUID
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND idea_id IN ?", userID, ideaIDs).
		Pluck("idea_id", &liked).Error
	if err != nil {
		return nil, err
	}
	for _, id := range liked {
		result[id] = true
	}
	return result, nil
}

func (r *LikeRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).Count(&count).Error
	return count, err
}

type CommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db: db}
}

func (r *CommentRepo) CountByIdeas(ctx context.Context, ideaIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	if len(ideaIDs) == 0 {
		return map[uuid.UUID]int64{}, nil
	}
	var rows []ideaCountRow
	err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Select("idea_id, COUNT(*) AS count").
		Where("idea_id IN ?", ideaIDs).
		Group("idea_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return ideaCountMap(rows), nil
}

type CollaborationRepo struct {
	db *gorm.DB
}

func NewCollaborationRepo(db *gorm.DB) *CollaborationRepo {
	return &CollaborationRepo{db: db}
}

// Create returns ErrDuplicate when the pair already has a request.
func (r *CollaborationRepo) Create(ctx context.Context, req *models.CollaborationRequest) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(req).Error)
}

func (r *CollaborationRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.CollaborationRequest, error) {
	var req models.CollaborationRequest
	if err := r.db.WithContext(ctx).Preload("Idea").First(&req, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &req, nil
}

func (r *CollaborationRepo) FindByPair(ctx context.Context, ideaID, userID uuid.UUID) (*models.CollaborationRequest, error) {
	var req models.CollaborationRequest
	err := r.db.WithContext(ctx).
		Where("idea_id = ? AND user_id = ?", ideaID, userID).
		First(&req).Error
	if err != nil {
		return nil, translate(err)
	}
	return &req, nil
}

// UpdateStatus moves a request from one status to another and reports whether
// the row was still in the from status.
func (r *CollaborationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.CollaborationRequest{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// AcceptedNames returns collaborator display names per idea in request order.
func (r *CollaborationRepo) AcceptedNames(ctx context.Context, ideaIDs []uuid.UUID) (map[uuid.UUID][]string, error) {
	result := make(map[uuid.UUID][]string)
	if len(ideaIDs) == 0 {
		return result, nil
	}
	var rows []struct {
		IdeaID uuid.UUID
		Name   string
	}
	err := r.db.WithContext(ctx).Table("collaboration_requests AS cr").
		Select("cr.idea_id, u.name").
		Joins("JOIN users u ON u.id = cr.user_id").
		Where("cr.idea_id IN ? AND cr.status = ?", ideaIDs, models.CollabAccepted).
		Order("cr.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.IdeaID] = append(result[row.IdeaID], row.Name)
	}
	return result, nil
}

func (r *CollaborationRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CollaborationRequest{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

type NotificationRepo struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) *NotificationRepo {
	return &NotificationRepo{db: db}
}

func (r *NotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(n).Error)
}
