package service

import (
	"context"
	"strings"

	"skillswap/internal/cache"
	"skillswap/internal/models"
	"skillswap/internal/repository"
)

// AdminService provides moderation and dashboard business logic.
type AdminService struct {
	userRepo     repository.UserRepository
	swapRepo     repository.SwapRepository
	skillRepo    repository.SkillRepository
	announceRepo repository.AdminMessageRepository
	invalidator  *cache.Invalidator
}

// NewAdminService returns a new AdminService.
func NewAdminService(
	userRepo repository.UserRepository,
	swapRepo repository.SwapRepository,
	skillRepo repository.SkillRepository,
	announceRepo repository.AdminMessageRepository,
	invalidator *cache.Invalidator,
) *AdminService {
	return &AdminService{
		userRepo:     userRepo,
		swapRepo:     swapRepo,
		skillRepo:    skillRepo,
		announceRepo: announceRepo,
		invalidator:  invalidator,
	}
}

// Dashboard aggregates the admin landing view.
type Dashboard struct {
	TotalUsers       int64                `json:"total_users"`
	BannedUsers      int64                `json:"banned_users"`
	TotalSwaps       int64                `json:"total_swaps"`
	PendingSwaps     int64                `json:"pending_swaps"`
	RecentUsers      []models.User        `json:"recent_users"`
	RecentSwaps      []models.SwapRequest `json:"recent_swaps"`
	UnapprovedSkills []models.Skill       `json:"unapproved_skills"`
}

const dashboardRecentLimit = 5

// GetDashboard returns the cached admin aggregate. The short TTL keeps the
// view fresh enough without recomputing five queries per page load.
func (s *AdminService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	var dash Dashboard

	err := cache.Aside(ctx, cache.AdminDashboardKey, &dash, cache.DashboardTTL, func() error {
		totalUsers, banned, err := s.userRepo.Counts(ctx)
		if err != nil {
			return err
		}
		totalSwaps, pending, err := s.swapRepo.Counts(ctx)
		if err != nil {
			return err
		}
		recentUsers, err := s.userRepo.Recent(ctx, dashboardRecentLimit)
		if err != nil {
			return err
		}
		recentSwaps, err := s.swapRepo.Recent(ctx, dashboardRecentLimit)
		if err != nil {
			return err
		}
		unapproved, err := s.skillRepo.Unapproved(ctx, 20)
		if err != nil {
			return err
		}

		dash = Dashboard{
			TotalUsers:       totalUsers,
			BannedUsers:      banned,
			TotalSwaps:       totalSwaps,
			PendingSwaps:     pending,
			RecentUsers:      recentUsers,
			RecentSwaps:      recentSwaps,
			UnapprovedSkills: unapproved,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &dash, nil
}

// ToggleBan flips the target's ban flag. Admin accounts cannot be banned.
// Ban state cuts across every cached view, so the whole cache is flushed.
func (s *AdminService) ToggleBan(ctx context.Context, targetID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin {
		return nil, models.NewForbiddenError("Admin accounts cannot be banned")
	}

	user.IsBanned = !user.IsBanned
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.invalidator.UserBanned(ctx)
	return user, nil
}

// ApproveSkill marks a user-submitted skill as approved for the catalog.
func (s *AdminService) ApproveSkill(ctx context.Context, skillID uint) error {
	if err := s.skillRepo.Approve(ctx, skillID); err != nil {
		return err
	}
	s.invalidator.SkillCatalogChanged(ctx)
	return nil
}

// DeleteSkill removes a skill and all associations referencing it.
func (s *AdminService) DeleteSkill(ctx context.Context, skillID uint) error {
	if err := s.skillRepo.Delete(ctx, skillID); err != nil {
		return err
	}
	s.invalidator.SkillCatalogChanged(ctx)
	return nil
}

// CreateAnnouncement publishes a platform-wide announcement.
func (s *AdminService) CreateAnnouncement(ctx context.Context, adminID uint, title, content string) (*models.AdminMessage, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return nil, models.NewValidationError("Title and content are required")
	}

	msg := &models.AdminMessage{
		Title:       title,
		Content:     content,
		CreatedByID: adminID,
	}
	if err := s.announceRepo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// ListAnnouncements returns recent announcements, newest first.
func (s *AdminService) ListAnnouncements(ctx context.Context, limit int) ([]models.AdminMessage, error) {
	return s.announceRepo.List(ctx, limit)
}
