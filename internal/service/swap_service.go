// Package service implements the business logic layer of the application.
package service

import (
	"context"
	"strings"

	"skillswap/internal/cache"
	"skillswap/internal/middleware"
	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/validation"
)

// SwapService provides swap-request lifecycle business logic, including the
// ratings and messages that hang off a swap.
type SwapService struct {
	swapRepo    repository.SwapRepository
	userRepo    repository.UserRepository
	assocRepo   repository.UserSkillRepository
	ratingRepo  repository.RatingRepository
	messageRepo repository.MessageRepository
	invalidator *cache.Invalidator
}

// NewSwapService returns a new SwapService.
func NewSwapService(
	swapRepo repository.SwapRepository,
	userRepo repository.UserRepository,
	assocRepo repository.UserSkillRepository,
	ratingRepo repository.RatingRepository,
	messageRepo repository.MessageRepository,
	invalidator *cache.Invalidator,
) *SwapService {
	return &SwapService{
		swapRepo:    swapRepo,
		userRepo:    userRepo,
		assocRepo:   assocRepo,
		ratingRepo:  ratingRepo,
		messageRepo: messageRepo,
		invalidator: invalidator,
	}
}

// CreateSwapInput carries the request body for creating a swap request.
type CreateSwapInput struct {
	ReceiverID     uint
	OfferedSkillID uint
	WantedSkillID  uint
	Message        string
}

// CreateSwap proposes an exchange: the requester teaches the offered skill,
// the receiver teaches the wanted skill. Both sides must actually offer the
// skill attributed to them, and an identical pending proposal blocks a
// duplicate.
func (s *SwapService) CreateSwap(ctx context.Context, requesterID uint, in CreateSwapInput) (*models.SwapRequest, error) {
	if in.ReceiverID == requesterID {
		return nil, models.NewValidationError("Cannot send a swap request to yourself")
	}

	receiver, err := s.userRepo.GetByID(ctx, in.ReceiverID)
	if err != nil {
		return nil, err
	}
	if receiver.IsBanned {
		return nil, models.NewNotFoundError("User", in.ReceiverID)
	}

	offers, err := s.assocRepo.HasSkill(ctx, requesterID, in.OfferedSkillID, models.SkillRoleOffered)
	if err != nil {
		return nil, err
	}
	if !offers {
		return nil, models.NewValidationError("You can only offer a skill you have listed")
	}

	teaches, err := s.assocRepo.HasSkill(ctx, in.ReceiverID, in.WantedSkillID, models.SkillRoleOffered)
	if err != nil {
		return nil, err
	}
	if !teaches {
		return nil, models.NewValidationError("The recipient does not offer that skill")
	}

	dup, err := s.swapRepo.HasPendingDuplicate(ctx, requesterID, in.ReceiverID, in.OfferedSkillID, in.WantedSkillID)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, models.NewConflictError("An identical swap request is already pending")
	}

	req := &models.SwapRequest{
		RequesterID:    requesterID,
		ReceiverID:     in.ReceiverID,
		OfferedSkillID: in.OfferedSkillID,
		WantedSkillID:  in.WantedSkillID,
		Message:        strings.TrimSpace(in.Message),
		Status:         models.SwapStatusPending,
	}
	if err := s.swapRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.invalidator.SwapChanged(ctx)
	middleware.SwapTransitions.WithLabelValues(string(models.SwapStatusPending)).Inc()

	return s.swapRepo.GetByID(ctx, req.ID)
}

// ReceivedSwaps returns one page of requests addressed to the user, with an
// optional status filter.
func (s *SwapService) ReceivedSwaps(ctx context.Context, userID uint, status models.SwapStatus, page int) ([]models.SwapRequest, int64, error) {
	switch status {
	case "", models.SwapStatusPending, models.SwapStatusAccepted, models.SwapStatusRejected, models.SwapStatusCompleted:
	default:
		return nil, 0, models.NewValidationError("Unknown status filter")
	}
	return s.swapRepo.Received(ctx, userID, status, page)
}

// SentSwaps returns the requests the user has sent, newest first.
func (s *SwapService) SentSwaps(ctx context.Context, userID uint) ([]models.SwapRequest, error) {
	return s.swapRepo.Sent(ctx, userID)
}

// AcceptSwap moves a pending request to accepted. Receiver only.
func (s *SwapService) AcceptSwap(ctx context.Context, userID, swapID uint) (*models.SwapRequest, error) {
	return s.respond(ctx, userID, swapID, models.SwapStatusAccepted)
}

// RejectSwap moves a pending request to rejected. Receiver only.
func (s *SwapService) RejectSwap(ctx context.Context, userID, swapID uint) (*models.SwapRequest, error) {
	return s.respond(ctx, userID, swapID, models.SwapStatusRejected)
}

func (s *SwapService) respond(ctx context.Context, userID, swapID uint, to models.SwapStatus) (*models.SwapRequest, error) {
	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if swap.ReceiverID != userID {
		return nil, models.NewForbiddenError("You can only respond to requests sent to you")
	}
	if swap.Status != models.SwapStatusPending {
		return nil, models.NewConflictError("This request has already been handled")
	}

	// The repository re-checks pending inside the update, so a concurrent
	// responder gets a conflict rather than a double transition.
	if err := s.swapRepo.TransitionFromPending(ctx, swapID, to); err != nil {
		return nil, err
	}

	s.invalidator.SwapChanged(ctx)
	middleware.SwapTransitions.WithLabelValues(string(to)).Inc()

	return s.swapRepo.GetByID(ctx, swapID)
}

// DeleteSwap withdraws a request. Requester only, and never once accepted.
func (s *SwapService) DeleteSwap(ctx context.Context, userID, swapID uint) error {
	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return err
	}
	if swap.RequesterID != userID {
		return models.NewForbiddenError("You can only delete your own requests")
	}
	if swap.Status == models.SwapStatusAccepted {
		return models.NewConflictError("Accepted swaps cannot be deleted")
	}

	if err := s.swapRepo.Delete(ctx, swapID); err != nil {
		return err
	}

	s.invalidator.SwapChanged(ctx)
	return nil
}

// RateSwapInput carries a rating submission.
type RateSwapInput struct {
	Score    int
	Feedback string
}

// RateSwap records the caller's rating of their counterpart on an accepted
// swap. Resubmitting replaces the earlier rating.
func (s *SwapService) RateSwap(ctx context.Context, userID, swapID uint, in RateSwapInput) (*models.Rating, error) {
	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if !swap.IsParty(userID) {
		return nil, models.NewForbiddenError("You are not part of this swap")
	}
	if swap.Status != models.SwapStatusAccepted {
		return nil, models.NewValidationError("You can only rate an accepted swap")
	}
	if err := validation.ValidateScore(in.Score); err != nil {
		return nil, models.NewValidationError("Score must be between 1 and 5")
	}

	rating := &models.Rating{
		SwapRequestID: swapID,
		RaterID:       userID,
		RatedID:       swap.Counterpart(userID),
		Score:         in.Score,
		Feedback:      strings.TrimSpace(in.Feedback),
	}
	if err := s.ratingRepo.Upsert(ctx, rating); err != nil {
		return nil, err
	}

	s.invalidator.RatingChanged(ctx, rating.RatedID)
	return rating, nil
}

// GetOwnRating returns the caller's existing rating for the swap, or nil when
// none has been submitted yet.
func (s *SwapService) GetOwnRating(ctx context.Context, userID, swapID uint) (*models.Rating, error) {
	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if !swap.IsParty(userID) {
		return nil, models.NewForbiddenError("You are not part of this swap")
	}
	return s.ratingRepo.GetBySwapAndRater(ctx, swapID, userID)
}

// Messages returns the swap's thread oldest-first and marks everything
// addressed to the caller as read.
func (s *SwapService) Messages(ctx context.Context, userID, swapID uint) ([]models.Message, error) {
	if _, err := s.messagingSwap(ctx, userID, swapID); err != nil {
		return nil, err
	}

	if err := s.messageRepo.MarkRead(ctx, swapID, userID); err != nil {
		return nil, err
	}
	return s.messageRepo.ForSwap(ctx, swapID)
}

// SendMessage appends a message to an accepted swap's thread.
func (s *SwapService) SendMessage(ctx context.Context, userID, swapID uint, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if err := validation.ValidateMessageContent(content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	swap, err := s.messagingSwap(ctx, userID, swapID)
	if err != nil {
		return nil, err
	}

	msg := &models.Message{
		SwapRequestID: swapID,
		SenderID:      userID,
		ReceiverID:    swap.Counterpart(userID),
		Content:       content,
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// messagingSwap loads the swap and enforces the messaging guards: party only,
// and only once accepted.
func (s *SwapService) messagingSwap(ctx context.Context, userID, swapID uint) (*models.SwapRequest, error) {
	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if !swap.IsParty(userID) {
		return nil, models.NewForbiddenError("You are not part of this swap")
	}
	if swap.Status != models.SwapStatusAccepted {
		return nil, models.NewValidationError("Messaging is available once the swap is accepted")
	}
	return swap, nil
}

// UnreadCount returns the user's total unread message count across swaps.
func (s *SwapService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.messageRepo.UnreadCount(ctx, userID)
}
