package services

import (
	"errors"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/michael123610/codesnippet-hub/models"
	"github.com/michael123610/codesnippet-hub/repositories"
)

type UserService interface {
	GetProfile(id uint) (*models.UserProfile, error)
	GetUserSnippets(userID uint, page, limit int) (*models.SnippetList, error)
	GetOwnSnippets(userID uint, page, limit int) (*models.SnippetList, error)
	GetFavorites(userID uint, page, limit int) (*models.SnippetList, error)
}

type userService struct {
	userRepo    repositories.UserRepository
	snippetRepo repositories.SnippetRepository
}

func NewUserService(userRepo repositories.UserRepository, snippetRepo repositories.SnippetRepository) UserService {
	return &userService{
		userRepo:    userRepo,
		snippetRepo: snippetRepo,
	}
}

func (s *userService) GetProfile(id uint) (*models.UserProfile, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "user not found"}
		}
		log.WithError(err).WithField("user_id", id).Error("failed to load user")
		return nil, models.ErrorInternalServer{Message: "failed to load user"}
	}

	snippetsCount, err := s.userRepo.CountPublicSnippets(id)
	if err != nil {
		log.WithError(err).WithField("user_id", id).Error("failed to count snippets")
		return nil, models.ErrorInternalServer{Message: "failed to load user"}
	}

	likesReceived, err := s.userRepo.CountLikesReceived(id)
	if err != nil {
		log.WithError(err).WithField("user_id", id).Error("failed to count likes")
		return nil, models.ErrorInternalServer{Message: "failed to load user"}
	}

	return &models.UserProfile{
		ID:        user.ID,
		Username:  user.Username,
		Avatar:    user.Avatar,
		Bio:       user.Bio,
		GithubURL: user.GithubURL,
		CreatedAt: user.CreatedAt,
		Stats: models.UserStats{
			SnippetsCount: snippetsCount,
			LikesReceived: likesReceived,
		},
	}, nil
}

func clampPaging(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 12
	}
	return page, limit
}

func (s *userService) GetUserSnippets(userID uint, page, limit int) (*models.SnippetList, error) {
	page, limit = clampPaging(page, limit)

	items, total, err := s.snippetRepo.ListByUser(userID, page, limit)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("failed to list user snippets")
		return nil, models.ErrorInternalServer{Message: "failed to list snippets"}
	}

	return &models.SnippetList{
		Snippets:   items,
		Pagination: buildPagination(page, limit, total),
	}, nil
}

func (s *userService) GetOwnSnippets(userID uint, page, limit int) (*models.SnippetList, error) {
	page, limit = clampPaging(page, limit)

	items, total, err := s.snippetRepo.ListOwn(userID, page, limit)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("failed to list own snippets")
		return nil, models.ErrorInternalServer{Message: "failed to list snippets"}
	}

	return &models.SnippetList{
		Snippets:   items,
		Pagination: buildPagination(page, limit, total),
	}, nil
}

func (s *userService) GetFavorites(userID uint, page, limit int) (*models.SnippetList, error) {
	page, limit = clampPaging(page, limit)

	items, total, err := s.snippetRepo.ListFavorites(userID, page, limit)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("failed to list favorites")
		return nil, models.ErrorInternalServer{Message: "failed to list favorites"}
	}

	return &models.SnippetList{
		Snippets:   items,
		Pagination: buildPagination(page, limit, total),
	}, nil
}
