package service

import (
	"context"
	"errors"

	"cosmetics-store-api/internal/logger"
	"cosmetics-store-api/internal/metrics"
	"cosmetics-store-api/internal/model"
	"cosmetics-store-api/internal/repository"

	log "github.com/sirupsen/logrus"
)

// Ledger operation names, used as metric labels.
const (
	opPurchase = "purchase"
	opRefund   = "refund"
	opBundle   = "bundle"
)

var reasonMessages = map[model.LedgerReason]string{
	model.ReasonUserNotFound:        "User not found",
	model.ReasonAlreadyOwned:        "Cosmetic already owned",
	model.ReasonInsufficientBalance: "Insufficient balance",
	model.ReasonNotOwned:            "Cosmetic not owned",
	model.ReasonEmptyBundle:         "Bundle has no items",
	model.ReasonDuplicateItem:       "Bundle lists a cosmetic more than once",
	model.ReasonInvalidPrice:        "Price is invalid",
}

// LedgerService applies purchases, refunds and bundle purchases.
// Business refusals are reported in the result; only storage faults are errors.
type LedgerService struct {
	repo repository.LedgerRepository
	log  *log.Entry
}

// NewLedgerService creates a ledger service.
func NewLedgerService(repo repository.LedgerRepository) *LedgerService {
	return &LedgerService{repo: repo, log: logger.Component("LedgerService")}
}

// Purchase buys one cosmetic at price.
func (s *LedgerService) Purchase(ctx context.Context, userID int64, cosmeticID, cosmeticName string, price int64) (model.LedgerResult, error) {
	if price <= 0 || price > model.MaxPrice {
		return s.refuse(opPurchase, model.ReasonInvalidPrice), nil
	}

	balance, err := s.repo.Purchase(ctx, userID, cosmeticID, nameOr(cosmeticName, cosmeticID), price)
	res, err := s.settle(opPurchase, balance, err)
	if err == nil && res.Success {
		s.log.WithFields(log.Fields{"user_id": userID, "cosmetic_id": cosmeticID, "price": price}).Info("Purchase")
	}
	return res, err
}

// Refund returns an owned cosmetic for its recorded purchase price.
func (s *LedgerService) Refund(ctx context.Context, userID int64, cosmeticID, cosmeticName string) (model.LedgerResult, error) {
	balance, err := s.repo.Refund(ctx, userID, cosmeticID, nameOr(cosmeticName, cosmeticID))
	res, err := s.settle(opRefund, balance, err)
	if err == nil && res.Success {
		s.log.WithFields(log.Fields{"user_id": userID, "cosmetic_id": cosmeticID}).Info("Refund")
	}
	return res, err
}

// PurchaseBundle buys every item at its own price, or nothing.
func (s *LedgerService) PurchaseBundle(ctx context.Context, userID int64, items []model.BundleLine) (model.LedgerResult, error) {
	lines := make([]model.BundleLine, len(items))
	for i, item := range items {
		if item.Price < 0 || item.Price > model.MaxPrice {
			return s.refuse(opBundle, model.ReasonInvalidPrice), nil
		}
		item.CosmeticName = nameOr(item.CosmeticName, item.CosmeticID)
		lines[i] = item
	}

	balance, err := s.repo.PurchaseBundle(ctx, userID, lines)
	res, err := s.settle(opBundle, balance, err)
	if err == nil && res.Success {
		s.log.WithFields(log.Fields{"user_id": userID, "items": len(lines)}).Info("Bundle purchase")
	}
	return res, err
}

// Balance returns the user's balance. An unknown user yields a failed result with balance 0.
func (s *LedgerService) Balance(ctx context.Context, userID int64) (model.LedgerResult, error) {
	balance, err := s.repo.Balance(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return failure(model.ReasonUserNotFound), nil
	}
	if err != nil {
		return model.LedgerResult{}, err
	}
	return model.LedgerResult{Success: true, Balance: balance}, nil
}

// OwnedIDs returns the ids the user owns.
func (s *LedgerService) OwnedIDs(ctx context.Context, userID int64) ([]string, error) {
	return s.repo.OwnedIDs(ctx, userID)
}

// Inventory returns a page of the user's ownership records, newest first.
func (s *LedgerService) Inventory(ctx context.Context, userID int64, limit, offset int) ([]model.OwnedCosmetic, int, error) {
	return s.repo.Inventory(ctx, userID, limit, offset)
}

// History returns the user's transactions, newest first.
func (s *LedgerService) History(ctx context.Context, userID int64) ([]model.Transaction, error) {
	return s.repo.History(ctx, userID)
}

func (s *LedgerService) settle(op string, balance int64, err error) (model.LedgerResult, error) {
	if err == nil {
		metrics.RecordLedgerOperation(op, "success")
		return model.LedgerResult{Success: true, Balance: balance}, nil
	}

	if reason, ok := reasonFor(err); ok {
		return s.refuse(op, reason), nil
	}

	metrics.RecordLedgerOperation(op, "error")
	s.log.WithError(err).WithField("operation", op).Error("Ledger operation failed")
	return model.LedgerResult{}, err
}

func (s *LedgerService) refuse(op string, reason model.LedgerReason) model.LedgerResult {
	metrics.RecordLedgerOperation(op, string(reason))
	return failure(reason)
}

func failure(reason model.LedgerReason) model.LedgerResult {
	return model.LedgerResult{Reason: reason, Message: reasonMessages[reason]}
}

func reasonFor(err error) (model.LedgerReason, bool) {
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		return model.ReasonUserNotFound, true
	case errors.Is(err, repository.ErrAlreadyOwned):
		return model.ReasonAlreadyOwned, true
	case errors.Is(err, repository.ErrInsufficientBalance):
		return model.ReasonInsufficientBalance, true
	case errors.Is(err, repository.ErrNotOwned):
		return model.ReasonNotOwned, true
	case errors.Is(err, repository.ErrEmptyBundle):
		return model.ReasonEmptyBundle, true
	case errors.Is(err, repository.ErrDuplicateBundleItem):
		return model.ReasonDuplicateItem, true
	case errors.Is(err, repository.ErrInvalidPrice):
		return model.ReasonInvalidPrice, true
	default:
		return model.ReasonNone, false
	}
}

func nameOr(name, id string) string {
	if name == "" {
		return id
	}
	return name
}
