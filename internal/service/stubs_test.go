package service

import (
	"context"

	"skillswap/internal/cache"
	"skillswap/internal/models"
)

type userRepoStub struct {
	getByIDFn             func(context.Context, uint) (*models.User, error)
	getByUsernameFn       func(context.Context, string) (*models.User, error)
	createFn              func(context.Context, *models.User) error
	updateFn              func(context.Context, *models.User) error
	browseFn              func(context.Context, string, string, int) ([]models.User, int64, error)
	availabilityOptionsFn func(context.Context) ([]string, error)
	countsFn              func(context.Context) (int64, int64, error)
	recentFn              func(context.Context, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Browse(ctx context.Context, query, availability string, page int) ([]models.User, int64, error) {
	return s.browseFn(ctx, query, availability, page)
}
func (s *userRepoStub) AvailabilityOptions(ctx context.Context) ([]string, error) {
	return s.availabilityOptionsFn(ctx)
}
func (s *userRepoStub) Counts(ctx context.Context) (int64, int64, error) {
	return s.countsFn(ctx)
}
func (s *userRepoStub) Recent(ctx context.Context, limit int) ([]models.User, error) {
	return s.recentFn(ctx, limit)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:             func(context.Context, uint) (*models.User, error) { return &models.User{IsPublic: true}, nil },
		getByUsernameFn:       func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:              func(context.Context, *models.User) error { return nil },
		updateFn:              func(context.Context, *models.User) error { return nil },
		browseFn:              func(context.Context, string, string, int) ([]models.User, int64, error) { return nil, 0, nil },
		availabilityOptionsFn: func(context.Context) ([]string, error) { return nil, nil },
		countsFn:              func(context.Context) (int64, int64, error) { return 0, 0, nil },
		recentFn:              func(context.Context, int) ([]models.User, error) { return nil, nil },
	}
}

type swapRepoStub struct {
	createFn                func(context.Context, *models.SwapRequest) error
	getByIDFn               func(context.Context, uint) (*models.SwapRequest, error)
	hasPendingDuplicateFn   func(context.Context, uint, uint, uint, uint) (bool, error)
	receivedFn              func(context.Context, uint, models.SwapStatus, int) ([]models.SwapRequest, int64, error)
	sentFn                  func(context.Context, uint) ([]models.SwapRequest, error)
	transitionFromPendingFn func(context.Context, uint, models.SwapStatus) error
	deleteFn                func(context.Context, uint) error
	countsFn                func(context.Context) (int64, int64, error)
	recentFn                func(context.Context, int) ([]models.SwapRequest, error)
}

func (s *swapRepoStub) Create(ctx context.Context, req *models.SwapRequest) error {
	return s.createFn(ctx, req)
}
func (s *swapRepoStub) GetByID(ctx context.Context, id uint) (*models.SwapRequest, error) {
	return s.getByIDFn(ctx, id)
}
func (s *swapRepoStub) HasPendingDuplicate(ctx context.Context, requesterID, receiverID, offeredSkillID, wantedSkillID uint) (bool, error) {
	return s.hasPendingDuplicateFn(ctx, requesterID, receiverID, offeredSkillID, wantedSkillID)
}
func (s *swapRepoStub) Received(ctx context.Context, userID uint, status models.SwapStatus, page int) ([]models.SwapRequest, int64, error) {
	return s.receivedFn(ctx, userID, status, page)
}
func (s *swapRepoStub) Sent(ctx context.Context, userID uint) ([]models.SwapRequest, error) {
	return s.sentFn(ctx, userID)
}
func (s *swapRepoStub) TransitionFromPending(ctx context.Context, id uint, to models.SwapStatus) error {
	return s.transitionFromPendingFn(ctx, id, to)
}
func (s *swapRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *swapRepoStub) Counts(ctx context.Context) (int64, int64, error) {
	return s.countsFn(ctx)
}
func (s *swapRepoStub) Recent(ctx context.Context, limit int) ([]models.SwapRequest, error) {
	return s.recentFn(ctx, limit)
}

func noopSwapRepo() *swapRepoStub {
	return &swapRepoStub{
		createFn:  func(context.Context, *models.SwapRequest) error { return nil },
		getByIDFn: func(context.Context, uint) (*models.SwapRequest, error) { return &models.SwapRequest{}, nil },
		hasPendingDuplicateFn: func(context.Context, uint, uint, uint, uint) (bool, error) {
			return false, nil
		},
		receivedFn: func(context.Context, uint, models.SwapStatus, int) ([]models.SwapRequest, int64, error) {
			return nil, 0, nil
		},
		sentFn:                  func(context.Context, uint) ([]models.SwapRequest, error) { return nil, nil },
		transitionFromPendingFn: func(context.Context, uint, models.SwapStatus) error { return nil },
		deleteFn:                func(context.Context, uint) error { return nil },
		countsFn:                func(context.Context) (int64, int64, error) { return 0, 0, nil },
		recentFn:                func(context.Context, int) ([]models.SwapRequest, error) { return nil, nil },
	}
}

type userSkillRepoStub struct {
	replaceForUserFn func(context.Context, uint, []string, []string) error
	summaryForUserFn func(context.Context, uint) (*models.SkillSummary, error)
	hasSkillFn       func(context.Context, uint, uint, models.SkillRole) (bool, error)
	offeredByUserFn  func(context.Context, uint) ([]models.Skill, error)
}

func (s *userSkillRepoStub) ReplaceForUser(ctx context.Context, userID uint, offered, wanted []string) error {
	return s.replaceForUserFn(ctx, userID, offered, wanted)
}
func (s *userSkillRepoStub) SummaryForUser(ctx context.Context, userID uint) (*models.SkillSummary, error) {
	return s.summaryForUserFn(ctx, userID)
}
func (s *userSkillRepoStub) HasSkill(ctx context.Context, userID, skillID uint, role models.SkillRole) (bool, error) {
	return s.hasSkillFn(ctx, userID, skillID, role)
}
func (s *userSkillRepoStub) OfferedByUser(ctx context.Context, userID uint) ([]models.Skill, error) {
	return s.offeredByUserFn(ctx, userID)
}

func noopUserSkillRepo() *userSkillRepoStub {
	return &userSkillRepoStub{
		replaceForUserFn: func(context.Context, uint, []string, []string) error { return nil },
		summaryForUserFn: func(context.Context, uint) (*models.SkillSummary, error) {
			return &models.SkillSummary{Offered: []models.SkillRef{}, Wanted: []models.SkillRef{}}, nil
		},
		hasSkillFn:      func(context.Context, uint, uint, models.SkillRole) (bool, error) { return true, nil },
		offeredByUserFn: func(context.Context, uint) ([]models.Skill, error) { return nil, nil },
	}
}

type skillRepoStub struct {
	getByIDFn         func(context.Context, uint) (*models.Skill, error)
	findOrCreateFn    func(context.Context, string) (*models.Skill, error)
	approvedCatalogFn func(context.Context) ([]models.SkillRef, error)
	allNamesFn        func(context.Context) ([]string, error)
	unapprovedFn      func(context.Context, int) ([]models.Skill, error)
	approveFn         func(context.Context, uint) error
	deleteFn          func(context.Context, uint) error
}

func (s *skillRepoStub) GetByID(ctx context.Context, id uint) (*models.Skill, error) {
	return s.getByIDFn(ctx, id)
}
func (s *skillRepoStub) FindOrCreate(ctx context.Context, name string) (*models.Skill, error) {
	return s.findOrCreateFn(ctx, name)
}
func (s *skillRepoStub) ApprovedCatalog(ctx context.Context) ([]models.SkillRef, error) {
	return s.approvedCatalogFn(ctx)
}
func (s *skillRepoStub) AllNames(ctx context.Context) ([]string, error) {
	return s.allNamesFn(ctx)
}
func (s *skillRepoStub) Unapproved(ctx context.Context, limit int) ([]models.Skill, error) {
	return s.unapprovedFn(ctx, limit)
}
func (s *skillRepoStub) Approve(ctx context.Context, id uint) error {
	return s.approveFn(ctx, id)
}
func (s *skillRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopSkillRepo() *skillRepoStub {
	return &skillRepoStub{
		getByIDFn:         func(context.Context, uint) (*models.Skill, error) { return &models.Skill{}, nil },
		findOrCreateFn:    func(context.Context, string) (*models.Skill, error) { return &models.Skill{}, nil },
		approvedCatalogFn: func(context.Context) ([]models.SkillRef, error) { return nil, nil },
		allNamesFn:        func(context.Context) ([]string, error) { return nil, nil },
		unapprovedFn:      func(context.Context, int) ([]models.Skill, error) { return nil, nil },
		approveFn:         func(context.Context, uint) error { return nil },
		deleteFn:          func(context.Context, uint) error { return nil },
	}
}

type ratingRepoStub struct {
	getBySwapAndRaterFn func(context.Context, uint, uint) (*models.Rating, error)
	upsertFn            func(context.Context, *models.Rating) error
	receivedByUserFn    func(context.Context, uint, int) ([]models.Rating, error)
	summaryForUserFn    func(context.Context, uint) (*models.RatingSummary, error)
}

func (s *ratingRepoStub) GetBySwapAndRater(ctx context.Context, swapID, raterID uint) (*models.Rating, error) {
	return s.getBySwapAndRaterFn(ctx, swapID, raterID)
}
func (s *ratingRepoStub) Upsert(ctx context.Context, rating *models.Rating) error {
	return s.upsertFn(ctx, rating)
}
func (s *ratingRepoStub) ReceivedByUser(ctx context.Context, userID uint, limit int) ([]models.Rating, error) {
	return s.receivedByUserFn(ctx, userID, limit)
}
func (s *ratingRepoStub) SummaryForUser(ctx context.Context, userID uint) (*models.RatingSummary, error) {
	return s.summaryForUserFn(ctx, userID)
}

func noopRatingRepo() *ratingRepoStub {
	return &ratingRepoStub{
		getBySwapAndRaterFn: func(context.Context, uint, uint) (*models.Rating, error) { return nil, nil },
		upsertFn:            func(context.Context, *models.Rating) error { return nil },
		receivedByUserFn:    func(context.Context, uint, int) ([]models.Rating, error) { return nil, nil },
		summaryForUserFn:    func(context.Context, uint) (*models.RatingSummary, error) { return &models.RatingSummary{}, nil },
	}
}

type messageRepoStub struct {
	createFn      func(context.Context, *models.Message) error
	forSwapFn     func(context.Context, uint) ([]models.Message, error)
	markReadFn    func(context.Context, uint, uint) error
	unreadCountFn func(context.Context, uint) (int64, error)
}

func (s *messageRepoStub) Create(ctx context.Context, msg *models.Message) error {
	return s.createFn(ctx, msg)
}
func (s *messageRepoStub) ForSwap(ctx context.Context, swapID uint) ([]models.Message, error) {
	return s.forSwapFn(ctx, swapID)
}
func (s *messageRepoStub) MarkRead(ctx context.Context, swapID, receiverID uint) error {
	return s.markReadFn(ctx, swapID, receiverID)
}
func (s *messageRepoStub) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.unreadCountFn(ctx, userID)
}

func noopMessageRepo() *messageRepoStub {
	return &messageRepoStub{
		createFn:      func(context.Context, *models.Message) error { return nil },
		forSwapFn:     func(context.Context, uint) ([]models.Message, error) { return nil, nil },
		markReadFn:    func(context.Context, uint, uint) error { return nil },
		unreadCountFn: func(context.Context, uint) (int64, error) { return 0, nil },
	}
}

type adminMessageRepoStub struct {
	createFn func(context.Context, *models.AdminMessage) error
	listFn   func(context.Context, int) ([]models.AdminMessage, error)
}

func (s *adminMessageRepoStub) Create(ctx context.Context, msg *models.AdminMessage) error {
	return s.createFn(ctx, msg)
}
func (s *adminMessageRepoStub) List(ctx context.Context, limit int) ([]models.AdminMessage, error) {
	return s.listFn(ctx, limit)
}

func noopAdminMessageRepo() *adminMessageRepoStub {
	return &adminMessageRepoStub{
		createFn: func(context.Context, *models.AdminMessage) error { return nil },
		listFn:   func(context.Context, int) ([]models.AdminMessage, error) { return nil, nil },
	}
}

func testInvalidator() *cache.Invalidator {
	return cache.NewInvalidator()
}
