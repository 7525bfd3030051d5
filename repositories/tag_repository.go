package repositories

import (
	"gorm.io/gorm"

	"github.com/michael123610/codesnippet-hub/models"
)

type TagRepository interface {
	GetAll() ([]models.Tag, error)
	GetPopular(limit int) ([]models.Tag, error)
	GetByName(name string) (*models.Tag, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) GetAll() ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.Order("name asc").Find(&tags).Error
	return tags, err
}

func (r *tagRepository) GetPopular(limit int) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.Where("usage_count > 0").
		Order("usage_count desc, name asc").
		Limit(limit).
		Find(&tags).Error
	return tags, err
}

func (r *tagRepository) GetByName(name string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.Where("name = ?", name).First(&tag).Error
	return &tag, err
}
