package cache

import "context"

// Invalidator maps entity writes to the cache keys they stale. Write paths
// call exactly one method here instead of enumerating keys at each call
// site, so the eviction policy lives in one place. Evictions run
// synchronously, before the write's response is returned.
type Invalidator struct{}

// NewInvalidator returns the shared invalidation policy.
func NewInvalidator() *Invalidator {
	return &Invalidator{}
}

func (inv *Invalidator) del(ctx context.Context, keys ...string) {
	if client == nil {
		return
	}
	client.Del(ctx, keys...)
}

// UserChanged evicts state staled by a profile write (name, location,
// availability, visibility).
func (inv *Invalidator) UserChanged(ctx context.Context, userID uint) {
	inv.del(ctx, UserKey(userID), AvailabilityKey)
}

// AssociationsChanged evicts state staled by a skill-association replacement.
// The catalog view is included because replacement may create new skills.
func (inv *Invalidator) AssociationsChanged(ctx context.Context, userID uint) {
	inv.del(ctx, UserKey(userID), SkillCatalogKey)
}

// SkillCatalogChanged evicts catalog views after skill moderation.
func (inv *Invalidator) SkillCatalogChanged(ctx context.Context) {
	inv.del(ctx, SkillCatalogKey, AdminDashboardKey)
}

// SwapChanged evicts aggregates staled by a swap lifecycle transition.
func (inv *Invalidator) SwapChanged(ctx context.Context) {
	inv.del(ctx, AdminDashboardKey)
}

// RatingChanged evicts the rated user's aggregate score.
func (inv *Invalidator) RatingChanged(ctx context.Context, ratedUserID uint) {
	inv.del(ctx, UserRatingKey(ratedUserID), AdminDashboardKey)
}

// UserBanned clears the whole cache. Ban state touches browse results,
// identity lookups, and admin views at once; enumerating keys precisely is
// impractical and over-invalidation is acceptable here.
func (inv *Invalidator) UserBanned(ctx context.Context) {
	if client == nil {
		return
	}
	client.FlushAll(ctx)
}
