package services

import (
	log "github.com/sirupsen/logrus"

	"github.com/michael123610/codesnippet-hub/cache"
	"github.com/michael123610/codesnippet-hub/models"
	"github.com/michael123610/codesnippet-hub/repositories"
)

type TagService interface {
	GetTags() ([]models.Tag, error)
	GetPopularTags(limit int) ([]models.Tag, error)
}

type tagService struct {
	tagRepo repositories.TagRepository
	cache   cache.SnippetCache
}

func NewTagService(tagRepo repositories.TagRepository, snippetCache cache.SnippetCache) TagService {
	return &tagService{
		tagRepo: tagRepo,
		cache:   snippetCache,
	}
}

// Tag caches are only ever expired by TTL. Usage counts can be stale
// for up to one TTL window after snippet creation, which is accepted.
func (s *tagService) GetTags() ([]models.Tag, error) {
	if tags, ok := s.cache.GetTags(); ok {
		return tags, nil
	}

	tags, err := s.tagRepo.GetAll()
	if err != nil {
		log.WithError(err).Error("failed to list tags")
		return nil, models.ErrorInternalServer{Message: "failed to list tags"}
	}

	s.cache.SetTags(tags)
	return tags, nil
}

func (s *tagService) GetPopularTags(limit int) ([]models.Tag, error) {
	if limit < 1 {
		limit = 20
	}

	if tags, ok := s.cache.GetPopularTags(limit); ok {
		return tags, nil
	}

	tags, err := s.tagRepo.GetPopular(limit)
	if err != nil {
		log.WithError(err).Error("failed to list popular tags")
		return nil, models.ErrorInternalServer{Message: "failed to list popular tags"}
	}

	s.cache.SetPopularTags(limit, tags)
	return tags, nil
}
