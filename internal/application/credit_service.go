package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/listinker/listinker-api/internal/apperror"
	"github.com/listinker/listinker-api/internal/domain/entity"
	repo "github.com/listinker/listinker-api/internal/domain/repository"
)

// CreditService manages the per-user, per-department posting credit
// pools. Every user holds one free and one paid pool for each top-level
// department.
type CreditService struct {
	Credits    repo.CreditRepository
	Categories repo.CategoryRepository
	Logger     *logrus.Logger
}

func NewCreditService(credits repo.CreditRepository, categories repo.CategoryRepository, logger *logrus.Logger) *CreditService {
	return &CreditService{Credits: credits, Categories: categories, Logger: logger}
}

// Initialize seeds the credit records for a user across every top-level
// department. Existing records are left untouched, so calling it on
// every login is safe.
func (s *CreditService) Initialize(ctx context.Context, uid string) error {
	cats, err := s.Categories.TopLevel(ctx)
	if err != nil {
		return err
	}
	for _, cat := range cats {
		if err := s.Credits.EnsureRecord(ctx, repo.FreePool, uid, cat.NumbID, entity.InitialFreeCredits); err != nil {
			return err
		}
		if err := s.Credits.EnsureRecord(ctx, repo.PaidPool, uid, cat.NumbID, entity.InitialPaidCredits); err != nil {
			return err
		}
	}
	return nil
}

// Consume spends one credit for the given department, preferring the
// free pool and falling back to the paid one. The returned pool names
// which was charged, so a later Refund can target it.
func (s *CreditService) Consume(ctx context.Context, uid string, category int) (repo.Pool, error) {
	ok, err := s.Credits.ConsumeOne(ctx, repo.FreePool, uid, category)
	if err != nil {
		return "", err
	}
	if ok {
		return repo.FreePool, nil
	}
	ok, err = s.Credits.ConsumeOne(ctx, repo.PaidPool, uid, category)
	if err != nil {
		return "", err
	}
	if ok {
		return repo.PaidPool, nil
	}
	return "", apperror.InsufficientCredits(category)
}

// Refund returns one credit to the pool it was consumed from. Failures
// are logged and swallowed because a refund already runs on an error
// path.
func (s *CreditService) Refund(ctx context.Context, pool repo.Pool, uid string, category int) {
	if err := s.Credits.Refund(ctx, pool, uid, category); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{
			"uid":      uid,
			"category": category,
			"pool":     pool,
		}).Warn("credit refund failed")
	}
}

// Balance reports the remaining credits in one pool for a department.
func (s *CreditService) Balance(ctx context.Context, pool repo.Pool, uid string, category int) (int, error) {
	rec, err := s.Credits.Get(ctx, pool, uid, category)
	if err != nil {
		return 0, err
	}
	return rec.Credits, nil
}
