package purchase

import (
	"context"

	"lms-server/internal/utils/platformerrors"
)

// Ledger answers entitlement questions against completed purchases.
type Ledger struct {
	repo Repository
}

func NewLedger(repo Repository) *Ledger {
	return &Ledger{repo: repo}
}

// HasCompletedPurchase reports whether the user holds a completed purchase
// for the course. Pending, failed and refunded purchases do not count.
func (l *Ledger) HasCompletedPurchase(ctx context.Context, userID, courseID uint) (bool, error) {
	p, err := l.repo.FindCompleted(ctx, userID, courseID)
	if err != nil {
		return false, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to check purchase")
	}
	return p != nil, nil
}

// CompletedByUser returns every completed purchase of the user, newest first.
func (l *Ledger) CompletedByUser(ctx context.Context, userID uint) ([]*Purchase, error) {
	purchases, err := l.repo.ListCompletedByUser(ctx, userID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list purchases")
	}
	return purchases, nil
}
