package service

import (
	"context"
	"strings"

	"skillswap/internal/cache"
	"skillswap/internal/models"
	"skillswap/internal/repository"
)

// UserService provides profile and browse business logic.
type UserService struct {
	userRepo    repository.UserRepository
	assocRepo   repository.UserSkillRepository
	skillRepo   repository.SkillRepository
	ratingRepo  repository.RatingRepository
	invalidator *cache.Invalidator
}

// NewUserService returns a new UserService.
func NewUserService(
	userRepo repository.UserRepository,
	assocRepo repository.UserSkillRepository,
	skillRepo repository.SkillRepository,
	ratingRepo repository.RatingRepository,
	invalidator *cache.Invalidator,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		assocRepo:   assocRepo,
		skillRepo:   skillRepo,
		ratingRepo:  ratingRepo,
		invalidator: invalidator,
	}
}

// UpdateProfileInput carries the editable profile fields. Skill lists are
// full replacements of the user's offered and wanted sets.
type UpdateProfileInput struct {
	Name          string
	Location      string
	ProfilePhoto  string
	Availability  string
	IsPublic      *bool
	OfferedSkills []string
	WantedSkills  []string
}

// UpdateProfile writes the profile fields and replaces the skill
// associations, then evicts the staled cache entries.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	const maxFieldLen = 120
	for _, field := range []string{in.Name, in.Location, in.Availability} {
		if len(field) > maxFieldLen {
			return nil, models.NewValidationError("Profile fields must not exceed 120 characters")
		}
	}

	user.Name = strings.TrimSpace(in.Name)
	user.Location = strings.TrimSpace(in.Location)
	user.Availability = strings.TrimSpace(in.Availability)
	if in.ProfilePhoto != "" {
		user.ProfilePhoto = in.ProfilePhoto
	}
	if in.IsPublic != nil {
		user.IsPublic = *in.IsPublic
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	if err := s.assocRepo.ReplaceForUser(ctx, userID, in.OfferedSkills, in.WantedSkills); err != nil {
		return nil, err
	}

	s.invalidator.UserChanged(ctx, userID)
	s.invalidator.AssociationsChanged(ctx, userID)

	return user, nil
}

// BrowseResult is one page of the public user directory.
type BrowseResult struct {
	Users      []models.User `json:"users"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	TotalPages int           `json:"total_pages"`
}

// Browse searches public, non-banned profiles by free text and availability.
func (s *UserService) Browse(ctx context.Context, query, availability string, page int) (*BrowseResult, error) {
	if page < 1 {
		page = 1
	}
	users, total, err := s.userRepo.Browse(ctx, query, availability, page)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + repository.BrowsePageSize - 1) / repository.BrowsePageSize)
	return &BrowseResult{
		Users:      users,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

// ProfileDetail is a public profile view with skills and received ratings.
type ProfileDetail struct {
	User    *models.User          `json:"user"`
	Skills  *models.SkillSummary  `json:"skills"`
	Ratings []models.Rating       `json:"ratings"`
	Rating  *models.RatingSummary `json:"rating_summary"`
}

// GetProfile returns the full profile view. Private and banned profiles are
// visible only to their owner; everyone else gets not found, so visibility
// leaks nothing.
func (s *UserService) GetProfile(ctx context.Context, viewerID, targetID uint) (*ProfileDetail, error) {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if viewerID != targetID && (!user.IsPublic || user.IsBanned) {
		return nil, models.NewNotFoundError("User", targetID)
	}

	skills, err := s.assocRepo.SummaryForUser(ctx, targetID)
	if err != nil {
		return nil, err
	}
	ratings, err := s.ratingRepo.ReceivedByUser(ctx, targetID, 0)
	if err != nil {
		return nil, err
	}
	summary, err := s.ratingRepo.SummaryForUser(ctx, targetID)
	if err != nil {
		return nil, err
	}

	return &ProfileDetail{
		User:    user,
		Skills:  skills,
		Ratings: ratings,
		Rating:  summary,
	}, nil
}

// GetUserByID returns the bare identity record through the cache.
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// AvailabilityOptions returns the distinct availability values for the
// browse filter.
func (s *UserService) AvailabilityOptions(ctx context.Context) ([]string, error) {
	return s.userRepo.AvailabilityOptions(ctx)
}

// SkillCatalog returns the approved skill catalog.
func (s *UserService) SkillCatalog(ctx context.Context) ([]models.SkillRef, error) {
	return s.skillRepo.ApprovedCatalog(ctx)
}

// SkillsForUser returns the target user's offered and wanted skills, under
// the same visibility rule as the profile view.
func (s *UserService) SkillsForUser(ctx context.Context, viewerID, targetID uint) (*models.SkillSummary, error) {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if viewerID != targetID && (!user.IsPublic || user.IsBanned) {
		return nil, models.NewNotFoundError("User", targetID)
	}
	return s.assocRepo.SummaryForUser(ctx, targetID)
}
