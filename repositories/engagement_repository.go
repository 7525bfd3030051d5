package repositories

import (
	"gorm.io/gorm"

	"github.com/michael123610/codesnippet-hub/models"
)

// EngagementRepository manages like/favorite rows. Each call is one
// statement; toggle composition happens in the service and is an
// accepted check-then-write race.
type EngagementRepository interface {
	HasLike(userID, snippetID uint) (bool, error)
	AddLike(userID, snippetID uint) error
	RemoveLike(userID, snippetID uint) error
	HasFavorite(userID, snippetID uint) (bool, error)
	AddFavorite(userID, snippetID uint) error
	RemoveFavorite(userID, snippetID uint) error
}

type engagementRepository struct {
	db *gorm.DB
}

func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

func (r *engagementRepository) HasLike(userID, snippetID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("user_id = ? AND snippet_id = ?", userID, snippetID).
		Count(&count).Error
	return count > 0, err
}

func (r *engagementRepository) AddLike(userID, snippetID uint) error {
	return r.db.Create(&models.Like{UserID: userID, SnippetID: snippetID}).Error
}

func (r *engagementRepository) RemoveLike(userID, snippetID uint) error {
	return r.db.Where("user_id = ? AND snippet_id = ?", userID, snippetID).
		Delete(&models.Like{}).Error
}

func (r *engagementRepository) HasFavorite(userID, snippetID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Favorite{}).
		Where("user_id = ? AND snippet_id = ?", userID, snippetID).
		Count(&count).Error
	return count > 0, err
}

func (r *engagementRepository) AddFavorite(userID, snippetID uint) error {
	return r.db.Create(&models.Favorite{UserID: userID, SnippetID: snippetID}).Error
}

func (r *engagementRepository) RemoveFavorite(userID, snippetID uint) error {
	return r.db.Where("user_id = ? AND snippet_id = ?", userID, snippetID).
		Delete(&models.Favorite{}).Error
}
