package service

import (
	"context"
	"errors"
	"testing"

	"skillswap/internal/models"
)

func newSwapService(swapRepo *swapRepoStub, userRepo *userRepoStub, assocRepo *userSkillRepoStub, ratingRepo *ratingRepoStub, messageRepo *messageRepoStub) *SwapService {
	return NewSwapService(swapRepo, userRepo, assocRepo, ratingRepo, messageRepo, testInvalidator())
}

func assertAppErrCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != code {
		t.Fatalf("expected %s app error, got %#v", code, err)
	}
}

func TestSwapServiceCreateSelf(t *testing.T) {
	svc := newSwapService(noopSwapRepo(), noopUserRepo(), noopUserSkillRepo(), noopRatingRepo(), noopMessageRepo())
	_, err := svc.CreateSwap(context.Background(), 3, CreateSwapInput{ReceiverID: 3, OfferedSkillID: 1, WantedSkillID: 2})
	assertAppErrCode(t, err, "VALIDATION_ERROR")
}

func TestSwapServiceCreateRequesterMissingSkill(t *testing.T) {
	assoc := noopUserSkillRepo()
	assoc.hasSkillFn = func(_ context.Context, userID, skillID uint, _ models.SkillRole) (bool, error) {
		return userID != 1, nil // requester 1 does not offer anything
	}

	svc := newSwapService(noopSwapRepo(), noopUserRepo(), assoc, noopRatingRepo(), noopMessageRepo())
	_, err := svc.CreateSwap(context.Background(), 1, CreateSwapInput{ReceiverID: 2, OfferedSkillID: 5, WantedSkillID: 6})
	assertAppErrCode(t, err, "VALIDATION_ERROR")
}

func TestSwapServiceCreateReceiverMissingSkill(t *testing.T) {
	assoc := noopUserSkillRepo()
	assoc.hasSkillFn = func(_ context.Context, userID, skillID uint, _ models.SkillRole) (bool, error) {
		return userID == 1, nil // only the requester offers skills
	}

	svc := newSwapService(noopSwapRepo(), noopUserRepo(), assoc, noopRatingRepo(), noopMessageRepo())
	_, err := svc.CreateSwap(context.Background(), 1, CreateSwapInput{ReceiverID: 2, OfferedSkillID: 5, WantedSkillID: 6})
	assertAppErrCode(t, err, "VALIDATION_ERROR")
}

func TestSwapServiceCreateDuplicatePending(t *testing.T) {
	swapRepo := noopSwapRepo()
	swapRepo.hasPendingDuplicateFn = func(context.Context, uint, uint, uint, uint) (bool, error) {
		return true, nil
	}

	svc := newSwapService(swapRepo, noopUserRepo(), noopUserSkillRepo(), noopRatingRepo(), noopMessageRepo())
	_, err := svc.CreateSwap(context.Background(), 1, CreateSwapInput{ReceiverID: 2, OfferedSkillID: 5, WantedSkillID: 6})
	assertAppErrCode(t, err, "CONFLICT")
}

func TestSwapServiceCreateBannedReceiver(t *testing.T) {
	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(context.Context, uint) (*models.User, error) {
		return &models.User{ID: 2, IsBanned: true}, nil
	}

	svc := newSwapService(noopSwapRepo(), userRepo, noopUserSkillRepo(), noopRatingRepo(), noopMessageRepo())
	_, err := svc.CreateSwap(context.Background(), 1, CreateSwapInput{ReceiverID: 2, OfferedSkillID: 5, WantedSkillID: 6})
	assertAppErrCode(t, err, "NOT_FOUND")
}

func TestSwapServiceCreateSuccess(t *testing.T) {
	var created *models.SwapRequest
	swapRepo := noopSwapRepo()
	swapRepo.createFn = func(_ context.Context, req *models.SwapRequest) error {
		req.ID = 42
		created = req
		return nil
	}
	swapRepo.getByIDFn = func(_ context.Context, id uint) (*models.SwapRequest, error) {
		return &models.SwapRequest{ID: id, Status: models.SwapStatusPending}, nil
	}

	svc := newSwapService(swapRepo, noopUserRepo(), noopUserSkillRepo(), noopRatingRepo(), noopMessageRepo())
	swap, err := svc.CreateSwap(context.Background(), 1, CreateSwapInput{
		ReceiverID: 2, OfferedSkillID: 5, WantedSkillID: 6, Message: "  let's trade  ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if swap.ID != 42 {
		t.Fatalf("expected reloaded swap 42, got %d", swap.ID)
	}
	if created.Status != models.SwapStatusPending {
		t.Fatalf("new swaps must start pending, got %s", created.Status)
	}
	if created.Message != "let's trade" {
		t.Fatalf("message should be trimmed, got %q", created.Message)
	}
}

func TestSwapServiceAcceptNotReceiver(t *testing.T) {
	swapRepo := noopSwapRepo()
	swapRepo.getByIDFn = func(context.Context, uint) (*models.SwapRequest, error) {
		return &models.SwapRequest{ID: 7, RequesterID: 1, ReceiverID: 2, Status: models.SwapStatusPending}, nil
	}

	svc := newSwapService(swapRepo, noopUserRepo(), noopUserSkillRepo(), noopRatingRepo(), noopMessageRepo())
	_, err := svc.AcceptSwap(context.Background(), 1, 7)
	assertAppErrCode(t, err, "FORBIDDEN")
}

func TestSwapServiceAcceptNotPending(t *testing.T) {
	swapRepo := noopSwapRepo()
	swapRepo.getByIDFn = func(context.Context, uint) (*models.SwapRequest, error) {
		return &models.SwapRequest{ID: 7, RequesterID: 1, ReceiverID: 2, Status: models.SwapStatusRejected}, nil
	}

	svc := newSwapService(swapRepo, noopUserRepo(), noopUserSkillRepo(), noopRatingRepo(), noopMessageRepo())
	_, err := svc.AcceptSwap(context.Background(), 2, 7)
	assertAppErrCode(t, err, "CONFLICT")
}

func TestSwapServiceAcceptSuccess(t *testing.T) {
	var transitioned models.SwapStatus
	swapRepo := noopSwapRepo()
	swapRepo.getByIDFn = func(context.Context, uint) (*models.SwapRequest, error) {
		return &models.SwapRequest{ID: 7, RequesterID: 1, ReceiverID: 2, Status: models.SwapStatusPending}, nil
	}
	swapRepo.transitionFromPendingFn = func(_ context.Context, id uint, to models.SwapStatus) error {
		transitioned = to
		return nil
	}

	svc := newSwapService(swapRepo, noopUserRepo(), noopUserSkillRepo(), noopRatingRepo(), noopMessageRepo())
	if _, err := svc.AcceptSwap(context.Background(), 2, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if transitioned != models.SwapStatusAccepted {
		t.Fatalf("expected transition to accepted, got %s", transitioned)
	}
}

func TestSwapServiceRejectSuccess(t *testing.T) {
	var transitioned models.SwapStatus
	swapRepo := noopSwapRepo()
	swapRepo.getByIDFn = func(context.Context, uint) (*models.SwapRequest, error) {
		return &models.SwapRequest{ID: 7, RequesterID: 1, ReceiverID: 2, Status: models.SwapStatusPending}, nil
	}
	swapRepo.transitionFromPendingFn = func(_ context.Context, id uint, to models.SwapStatus) error {
		transitioned = to
		return nil
	}

	svc := newSwapService(swapRepo, noopUserRepo(), noopUserSkillRepo(), noopRatingRepo(), noopMessageRepo())
	if _, err := svc.RejectSwap(context.Background(), 2, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if transitioned != models.SwapStatusRejected {
		t.Fatalf("expected transition to rejected, got %s", transitioned)
	}
}

func TestSwapServiceDeleteNotRequester(t *testing.T) {
	swapRepo := noopSwapRepo()
	swapRepo.getByIDFn = func(context.Context, uint) (*models.SwapRequest, error) {
		return &models.SwapRequest{ID: 7, RequesterID: 1, ReceiverID: 2, Status: models.SwapStatusPending}, nil
	}

	svc := newSwapService(swapRepo, noopUserRepo(), noopUserSkillRepo(), noopRatingRepo(), noopMessageRepo())
	err := svc.DeleteSwap(context.Background(), 2, 7)
	assertAppErrCode(t, err, "FORBIDDEN")
}

func TestSwapServiceDeleteAccepted(t *testing.T) {
	swapRepo := noopSwapRepo()
	swapRepo.getByIDFn = func(context.Context, uint) (*models.SwapRequest, error) {
		return &models.SwapRequest{ID: 7, RequesterID: 1, ReceiverID: 2, Status: models.SwapStatusAccepted}, nil
	}

	svc := newSwapService(swapRepo, noopUserRepo(), noopUserSkillRepo(), noopRatingRepo(), noopMessageRepo())
	err := svc.DeleteSwap(context.Background(), 1, 7)
	assertAppErrCode(t, err, "CONFLICT")
}

func TestSwapServiceDeleteRejectedAllowed(t *testing.T) {
	deleted := false
	swapRepo := noopSwapRepo()
	swapRepo.getByIDFn = func(context.Context, uint) (*models.SwapRequest, error) {
		return &models.SwapRequest{ID: 7, RequesterID: 1, ReceiverID: 2, Status: models.SwapStatusRejected}, nil
	}
	swapRepo.deleteFn = func(context.Context, uint) error {
		deleted = true
		return nil
	}

	svc := newSwapService(swapRepo, noopUserRepo(), noopUserSkillRepo(), noopRatingRepo(), noopMessageRepo())
	if err := svc.DeleteSwap(context.Background(), 1, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Fatal("expected delete to be called")
	}
}

func TestSwapServiceRateNotParty(t *testing.T) {
	swapRepo := noopSwapRepo()
	swapRepo.getByIDFn = func(context.Context, uint) (*models.SwapRequest, error) {
		return &models.SwapRequest{ID: 7, RequesterID: 1, ReceiverID: 2, Status: models.SwapStatusAccepted}, nil
	}

	svc := newSwapService(swapRepo, noopUserRepo(), noopUserSkillRepo(), noopRatingRepo(), noopMessageRepo())
	_, err := svc.RateSwap(context.Background(), 3, 7, RateSwapInput{Score: 5})
	assertAppErrCode(t, err, "FORBIDDEN")
}

func TestSwapServiceRateNotAccepted(t *testing.T) {
	swapRepo := noopSwapRepo()
	swapRepo.getByIDFn = func(context.Context, uint) (*models.SwapRequest, error) {
		return &models.SwapRequest{ID: 7, RequesterID: 1, ReceiverID: 2, Status: models.SwapStatusPending}, nil
	}

	svc := newSwapService(swapRepo, noopUserRepo(), noopUserSkillRepo(), noopRatingRepo(), noopMessageRepo())
	_, err := svc.RateSwap(context.Background(), 1, 7, RateSwapInput{Score: 5})
	assertAppErrCode(t, err, "VALIDATION_ERROR")
}

func TestSwapServiceRateBadScore(t *testing.T) {
	swapRepo := noopSwapRepo()
	swapRepo.getByIDFn = func(context.Context, uint) (*models.SwapRequest, error) {
		return &models.SwapRequest{ID: 7, RequesterID: 1, ReceiverID: 2, Status: models.SwapStatusAccepted}, nil
	}

	svc := newSwapService(swapRepo, noopUserRepo(), noopUserSkillRepo(), noopRatingRepo(), noopMessageRepo())
	for _, score := range []int{0, 6, -1} {
		_, err := svc.RateSwap(context.Background(), 1, 7, RateSwapInput{Score: score})
		assertAppErrCode(t, err, "VALIDATION_ERROR")
	}
}

func TestSwapServiceRateDerivesCounterpart(t *testing.T) {
	swapRepo := noopSwapRepo()
	swapRepo.getByIDFn = func(context.Context, uint) (*models.SwapRequest, error) {
		return &models.SwapRequest{ID: 7, RequesterID: 1, ReceiverID: 2, Status: models.SwapStatusAccepted}, nil
	}

	var stored *models.Rating
	ratingRepo := noopRatingRepo()
	ratingRepo.upsertFn = func(_ context.Context, r *models.Rating) error {
		stored = r
		return nil
	}

	svc := newSwapService(swapRepo, noopUserRepo(), noopUserSkillRepo(), ratingRepo, noopMessageRepo())
	rating, err := svc.RateSwap(context.Background(), 2, 7, RateSwapInput{Score: 4, Feedback: " patient teacher "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.RatedID != 1 {
		t.Fatalf("receiver rating must target the requester, got %d", stored.RatedID)
	}
	if rating.Feedback != "patient teacher" {
		t.Fatalf("feedback should be trimmed, got %q", rating.Feedback)
	}
}

func TestSwapServiceMessagesNotAccepted(t *testing.T) {
	swapRepo := noopSwapRepo()
	swapRepo.getByIDFn = func(context.Context, uint) (*models.SwapRequest, error) {
		return &models.SwapRequest{ID: 7, RequesterID: 1, ReceiverID: 2, Status: models.SwapStatusPending}, nil
	}

	svc := newSwapService(swapRepo, noopUserRepo(), noopUserSkillRepo(), noopRatingRepo(), noopMessageRepo())
	_, err := svc.Messages(context.Background(), 1, 7)
	assertAppErrCode(t, err, "VALIDATION_ERROR")
}

func TestSwapServiceMessagesMarksRead(t *testing.T) {
	swapRepo := noopSwapRepo()
	swapRepo.getByIDFn = func(context.Context, uint) (*models.SwapRequest, error) {
		return &models.SwapRequest{ID: 7, RequesterID: 1, ReceiverID: 2, Status: models.SwapStatusAccepted}, nil
	}

	var markedSwap, markedReceiver uint
	messageRepo := noopMessageRepo()
	messageRepo.markReadFn = func(_ context.Context, swapID, receiverID uint) error {
		markedSwap, markedReceiver = swapID, receiverID
		return nil
	}

	svc := newSwapService(swapRepo, noopUserRepo(), noopUserSkillRepo(), noopRatingRepo(), messageRepo)
	if _, err := svc.Messages(context.Background(), 2, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if markedSwap != 7 || markedReceiver != 2 {
		t.Fatalf("expected mark-read on swap 7 for user 2, got swap %d user %d", markedSwap, markedReceiver)
	}
}

func TestSwapServiceSendMessageBlank(t *testing.T) {
	svc := newSwapService(noopSwapRepo(), noopUserRepo(), noopUserSkillRepo(), noopRatingRepo(), noopMessageRepo())
	_, err := svc.SendMessage(context.Background(), 1, 7, "   ")
	assertAppErrCode(t, err, "VALIDATION_ERROR")
}

func TestSwapServiceSendMessageDerivesReceiver(t *testing.T) {
	swapRepo := noopSwapRepo()
	swapRepo.getByIDFn = func(context.Context, uint) (*models.SwapRequest, error) {
		return &models.SwapRequest{ID: 7, RequesterID: 1, ReceiverID: 2, Status: models.SwapStatusAccepted}, nil
	}

	var stored *models.Message
	messageRepo := noopMessageRepo()
	messageRepo.createFn = func(_ context.Context, m *models.Message) error {
		stored = m
		return nil
	}

	svc := newSwapService(swapRepo, noopUserRepo(), noopUserSkillRepo(), noopRatingRepo(), messageRepo)
	msg, err := svc.SendMessage(context.Background(), 1, 7, "see you saturday")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.ReceiverID != 2 {
		t.Fatalf("requester's message must go to the receiver, got %d", stored.ReceiverID)
	}
	if msg.SenderID != 1 {
		t.Fatalf("expected sender 1, got %d", msg.SenderID)
	}
}

func TestSwapServiceReceivedUnknownStatus(t *testing.T) {
	svc := newSwapService(noopSwapRepo(), noopUserRepo(), noopUserSkillRepo(), noopRatingRepo(), noopMessageRepo())
	_, _, err := svc.ReceivedSwaps(context.Background(), 1, "weird", 1)
	assertAppErrCode(t, err, "VALIDATION_ERROR")
}
