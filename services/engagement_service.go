package services

import (
	log "github.com/sirupsen/logrus"

	"github.com/michael123610/codesnippet-hub/cache"
	"github.com/michael123610/codesnippet-hub/models"
	"github.com/michael123610/codesnippet-hub/repositories"
)

// EngagementService toggles like/favorite rows. Toggles are a single
// existence check followed by one write; two concurrent toggles from
// the same user may race, which is accepted and not retried.
type EngagementService interface {
	ToggleLike(userID, snippetID uint) (bool, error)
	ToggleFavorite(userID, snippetID uint) (bool, error)
}

type engagementService struct {
	engagementRepo repositories.EngagementRepository
	cache          cache.SnippetCache
}

func NewEngagementService(engagementRepo repositories.EngagementRepository, snippetCache cache.SnippetCache) EngagementService {
	return &engagementService{
		engagementRepo: engagementRepo,
		cache:          snippetCache,
	}
}

func (s *engagementService) ToggleLike(userID, snippetID uint) (bool, error) {
	liked, err := s.engagementRepo.HasLike(userID, snippetID)
	if err != nil {
		log.WithError(err).WithField("snippet_id", snippetID).Error("failed to check like")
		return false, models.ErrorInternalServer{Message: "failed to toggle like"}
	}

	if liked {
		if err := s.engagementRepo.RemoveLike(userID, snippetID); err != nil {
			log.WithError(err).WithField("snippet_id", snippetID).Error("failed to remove like")
			return false, models.ErrorInternalServer{Message: "failed to toggle like"}
		}
		// likes_count appears in the cached detail, so the entry goes.
		s.cache.DeleteSnippet(snippetID)
		return false, nil
	}

	if err := s.engagementRepo.AddLike(userID, snippetID); err != nil {
		log.WithError(err).WithField("snippet_id", snippetID).Error("failed to add like")
		return false, models.ErrorInternalServer{Message: "failed to toggle like"}
	}
	s.cache.DeleteSnippet(snippetID)
	return true, nil
}

func (s *engagementService) ToggleFavorite(userID, snippetID uint) (bool, error) {
	favorited, err := s.engagementRepo.HasFavorite(userID, snippetID)
	if err != nil {
		log.WithError(err).WithField("snippet_id", snippetID).Error("failed to check favorite")
		return false, models.ErrorInternalServer{Message: "failed to toggle favorite"}
	}

	// Favorite state is never part of any cached payload, so no
	// invalidation here.
	if favorited {
		if err := s.engagementRepo.RemoveFavorite(userID, snippetID); err != nil {
			log.WithError(err).WithField("snippet_id", snippetID).Error("failed to remove favorite")
			return false, models.ErrorInternalServer{Message: "failed to toggle favorite"}
		}
		return false, nil
	}

	if err := s.engagementRepo.AddFavorite(userID, snippetID); err != nil {
		log.WithError(err).WithField("snippet_id", snippetID).Error("failed to add favorite")
		return false, models.ErrorInternalServer{Message: "failed to toggle favorite"}
	}
	return true, nil
}
