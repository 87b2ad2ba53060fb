package mocks

import (
	"context"

	"github.com/foodcourt/shopfront/internal/models"
	"github.com/stretchr/testify/mock"
)

// SessionService is a testify mock of service.SessionService for handler tests.
type SessionService struct {
	mock.Mock
}

func (m *SessionService) Create(ctx context.Context) (*models.SessionView, error) {
	args := m.Called(ctx)

	return viewOrNil(args.Get(0)), args.Error(1)
}

func (m *SessionService) Get(ctx context.Context, id string) (*models.SessionView, error) {
	args := m.Called(ctx, id)

	return viewOrNil(args.Get(0)), args.Error(1)
}

func (m *SessionService) SelectTenant(ctx context.Context, id string, tenantID int64) (*models.SessionView, error) {
	args := m.Called(ctx, id, tenantID)

	return viewOrNil(args.Get(0)), args.Error(1)
}

func (m *SessionService) AddItem(ctx context.Context, id string, productID int64) (*models.SessionView, error) {
	args := m.Called(ctx, id, productID)

	return viewOrNil(args.Get(0)), args.Error(1)
}

func (m *SessionService) RemoveItem(ctx context.Context, id string, productID int64) (*models.SessionView, error) {
	args := m.Called(ctx, id, productID)

	return viewOrNil(args.Get(0)), args.Error(1)
}

func (m *SessionService) ApplyVoucher(ctx context.Context, id string, code string) (*models.VoucherNotice, error) {
	args := m.Called(ctx, id, code)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.VoucherNotice), args.Error(1)
}

func (m *SessionService) Checkout(ctx context.Context, id string) (*models.CheckoutNotice, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CheckoutNotice), args.Error(1)
}

func viewOrNil(value any) *models.SessionView {
	if value == nil {
		return nil
	}

	return value.(*models.SessionView)
}
