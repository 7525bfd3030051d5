package repositories

import (
	"gorm.io/gorm"

	"github.com/michael123610/codesnippet-hub/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	ExistsByEmailOrUsername(email, username string) (bool, error)
	CountPublicSnippets(userID uint) (int64, error)
	CountLikesReceived(userID uint) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	return &user, err
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *userRepository) ExistsByEmailOrUsername(email, username string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("email = ? OR username = ?", email, username).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) CountPublicSnippets(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Snippet{}).
		Where("user_id = ? AND is_public = TRUE", userID).
		Count(&count).Error
	return count, err
}

func (r *userRepository) CountLikesReceived(userID uint) (int64, error) {
	var count int64
	err := r.db.Raw(
		"SELECT COUNT(*) FROM likes l JOIN snippets s ON l.snippet_id = s.id WHERE s.user_id = ?",
		userID,
	).Scan(&count).Error
	return count, err
}
