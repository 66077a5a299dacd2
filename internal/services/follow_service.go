package services

import (
	"gigwork_backend/internal/appErrors"
	"gigwork_backend/internal/models"
	"gigwork_backend/internal/repositories"
)

// FollowService covers category follows (newsletter subscriptions) and
// job favorites. Both are idempotent toggles.
type FollowService interface {
	FollowCategory(userID, categoryID string) error
	UnfollowCategory(userID, categoryID string) error
	ListFollowedCategories(userID string) ([]string, error)

	FavoriteJob(userID, jobID string) error
	UnfavoriteJob(userID, jobID string) error
	ListFavoriteJobs(userID string) ([]string, error)
}

type followService struct {
	followRepo    repositories.FollowRepository
	referenceRepo repositories.ReferenceRepository
	jobRepo       repositories.JobRepository
}

func NewFollowService(
	followRepo repositories.FollowRepository,
	referenceRepo repositories.ReferenceRepository,
	jobRepo repositories.JobRepository,
) FollowService {
	return &followService{
		followRepo:    followRepo,
		referenceRepo: referenceRepo,
		jobRepo:       jobRepo,
	}
}

func (s *followService) FollowCategory(userID, categoryID string) error {
	if _, err := s.referenceRepo.FindCategoryByID(categoryID); err != nil {
		return appErrors.ErrUnknownCategory
	}
	if err := s.followRepo.UpsertFollow(&models.CategoryFollow{
		UserID:     userID,
		CategoryID: categoryID,
	}); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

func (s *followService) UnfollowCategory(userID, categoryID string) error {
	if err := s.followRepo.DeleteFollow(userID, categoryID); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

func (s *followService) ListFollowedCategories(userID string) ([]string, error) {
	follows, err := s.followRepo.FindFollowsByUser(userID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	ids := make([]string, 0, len(follows))
	for _, follow := range follows {
		ids = append(ids, follow.CategoryID)
	}
	return ids, nil
}

func (s *followService) FavoriteJob(userID, jobID string) error {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		return appErrors.ErrJobNotFound
	}
	if job.Status != models.JobStatusPublished && job.Status != models.JobStatusClosed {
		return appErrors.ErrJobNotFound
	}
	if err := s.followRepo.UpsertFavorite(&models.Favorite{
		UserID: userID,
		JobID:  jobID,
	}); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

func (s *followService) UnfavoriteJob(userID, jobID string) error {
	if err := s.followRepo.DeleteFavorite(userID, jobID); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

func (s *followService) ListFavoriteJobs(userID string) ([]string, error) {
	favorites, err := s.followRepo.FindFavoritesByUser(userID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	ids := make([]string, 0, len(favorites))
	for _, favorite := range favorites {
		ids = append(ids, favorite.JobID)
	}
	return ids, nil
}
