package services

import (
	"errors"
	"math"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/michael123610/codesnippet-hub/cache"
	"github.com/michael123610/codesnippet-hub/models"
	"github.com/michael123610/codesnippet-hub/repositories"
)

type SnippetService interface {
	ListSnippets(params models.SnippetListParams) (*models.SnippetList, error)
	// GetSnippet returns the snippet detail. viewerID 0 means anonymous;
	// a known viewer gets is_liked/is_favorited attached on the miss
	// path only - cached responses never carry viewer state.
	GetSnippet(id uint, viewerID uint) (*models.SnippetDetail, error)
	CreateSnippet(userID uint, req models.CreateSnippetRequest) (uint, error)
	DeleteSnippet(requesterID, id uint) error
}

type snippetService struct {
	snippetRepo    repositories.SnippetRepository
	engagementRepo repositories.EngagementRepository
	cache          cache.SnippetCache
}

func NewSnippetService(snippetRepo repositories.SnippetRepository, engagementRepo repositories.EngagementRepository, snippetCache cache.SnippetCache) SnippetService {
	return &snippetService{
		snippetRepo:    snippetRepo,
		engagementRepo: engagementRepo,
		cache:          snippetCache,
	}
}

func buildPagination(page, limit int, total int64) models.Pagination {
	return models.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}
}

func (s *snippetService) ListSnippets(params models.SnippetListParams) (*models.SnippetList, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = 12
	}

	key := cache.ListKey(params)
	if list, ok := s.cache.GetList(key); ok {
		return list, nil
	}

	items, total, err := s.snippetRepo.List(params)
	if err != nil {
		log.WithError(err).Error("failed to list snippets")
		return nil, models.ErrorInternalServer{Message: "failed to list snippets"}
	}

	list := &models.SnippetList{
		Snippets:   items,
		Pagination: buildPagination(params.Page, params.Limit, total),
	}
	s.cache.SetList(key, list)

	return list, nil
}

func (s *snippetService) GetSnippet(id uint, viewerID uint) (*models.SnippetDetail, error) {
	if detail, ok := s.cache.GetSnippet(id); ok {
		// View bump happens off the request path on a hit; a failure
		// is logged and never surfaced.
		go func() {
			if err := s.snippetRepo.IncrementViews(id); err != nil {
				log.WithError(err).WithField("snippet_id", id).Error("failed to bump view count")
			}
		}()
		return detail, nil
	}

	detail, err := s.snippetRepo.GetDetail(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "snippet not found"}
		}
		log.WithError(err).WithField("snippet_id", id).Error("failed to load snippet")
		return nil, models.ErrorInternalServer{Message: "failed to load snippet"}
	}

	// Cache the viewer-neutral payload before attaching viewer state so
	// one viewer's engagement never leaks into another's response.
	s.cache.SetSnippet(id, detail)

	if viewerID > 0 {
		liked, err := s.engagementRepo.HasLike(viewerID, id)
		if err != nil {
			log.WithError(err).WithField("snippet_id", id).Error("failed to check like state")
			return nil, models.ErrorInternalServer{Message: "failed to load snippet"}
		}
		favorited, err := s.engagementRepo.HasFavorite(viewerID, id)
		if err != nil {
			log.WithError(err).WithField("snippet_id", id).Error("failed to check favorite state")
			return nil, models.ErrorInternalServer{Message: "failed to load snippet"}
		}
		detail.IsLiked = &liked
		detail.IsFavorited = &favorited
	}

	if err := s.snippetRepo.IncrementViews(id); err != nil {
		log.WithError(err).WithField("snippet_id", id).Error("failed to bump view count")
	}

	return detail, nil
}

func (s *snippetService) CreateSnippet(userID uint, req models.CreateSnippetRequest) (uint, error) {
	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	snippet := &models.Snippet{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Code:        req.Code,
		Language:    req.Language,
		IsPublic:    isPublic,
	}

	if err := s.snippetRepo.CreateWithTags(snippet, req.Tags); err != nil {
		log.WithError(err).WithField("user_id", userID).Error("failed to create snippet")
		return 0, models.ErrorInternalServer{Message: "failed to create snippet"}
	}

	// Any listing result may now be stale; the whole class goes.
	s.cache.InvalidateLists()

	return snippet.ID, nil
}

func (s *snippetService) DeleteSnippet(requesterID, id uint) error {
	snippet, err := s.snippetRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrorNotFound{Message: "snippet not found"}
		}
		log.WithError(err).WithField("snippet_id", id).Error("failed to load snippet")
		return models.ErrorInternalServer{Message: "failed to delete snippet"}
	}

	if snippet.UserID != requesterID {
		return models.ErrorForbidden{Message: "only the owner can delete a snippet"}
	}

	if err := s.snippetRepo.Delete(id); err != nil {
		log.WithError(err).WithField("snippet_id", id).Error("failed to delete snippet")
		return models.ErrorInternalServer{Message: "failed to delete snippet"}
	}

	s.cache.DeleteSnippet(id)
	s.cache.InvalidateLists()

	return nil
}
