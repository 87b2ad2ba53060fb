package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/foodcourt/shopfront/internal/backend"
	appErrors "github.com/foodcourt/shopfront/internal/errors"
	"github.com/foodcourt/shopfront/internal/models"
	"github.com/foodcourt/shopfront/internal/session"
	"github.com/foodcourt/shopfront/internal/store"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

// SessionService owns the shopping-session lifecycle: it loads sessions
// from the store, applies the cart mutations and drives the four backend
// round trips.
type SessionService interface {
	Create(ctx context.Context) (*models.SessionView, error)
	Get(ctx context.Context, id string) (*models.SessionView, error)
	SelectTenant(ctx context.Context, id string, tenantID int64) (*models.SessionView, error)
	AddItem(ctx context.Context, id string, productID int64) (*models.SessionView, error)
	RemoveItem(ctx context.Context, id string, productID int64) (*models.SessionView, error)
	ApplyVoucher(ctx context.Context, id string, code string) (*models.VoucherNotice, error)
	Checkout(ctx context.Context, id string) (*models.CheckoutNotice, error)
}

type sessionService struct {
	store     store.Store
	backend   backend.Client
	sanitizer *bluemonday.Policy
}

func NewSessionService(sessionStore store.Store, backendClient backend.Client) SessionService {
	return &sessionService{
		store:     sessionStore,
		backend:   backendClient,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Create starts an empty session and loads the tenant list. A tenant-list
// fetch failure is logged only; the user sees an empty list, not an error.
func (s *sessionService) Create(ctx context.Context) (*models.SessionView, error) {

	sess := session.New(uuid.NewString())

	tenants, err := s.backend.ListTenants(ctx)
	if err != nil {
		slog.Warn("Failed to fetch tenant list",
			slog.String("sessionId", sess.ID),
			slog.String("error", err.Error()))
	}

	sess.SetTenants(tenants)

	if err := s.store.Save(ctx, sess); err != nil {
		return nil, appErrors.InternalError("Failed to save session").WithError(err)
	}

	return sess.View(), nil
}

func (s *sessionService) Get(ctx context.Context, id string) (*models.SessionView, error) {

	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	return sess.View(), nil
}

// SelectTenant switches the session's tenant and refreshes the catalog.
// The generation token returned by the mutation guards against a late
// product response overwriting the list for a newer selection. A product
// fetch failure is logged only.
func (s *sessionService) SelectTenant(ctx context.Context, id string, tenantID int64) (*models.SessionView, error) {

	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	gen := sess.SelectTenant(tenantID)

	if sess.Tenant != nil {
		products, err := s.backend.ListProducts(ctx, sess.Tenant.ID)
		if err != nil {
			slog.Warn("Failed to fetch product list",
				slog.String("sessionId", sess.ID),
				slog.Int64("tenantId", sess.Tenant.ID),
				slog.String("error", err.Error()))
		} else {
			sess.SetProducts(gen, products)
		}
	}

	if err := s.store.Save(ctx, sess); err != nil {
		return nil, appErrors.InternalError("Failed to save session").WithError(err)
	}

	return sess.View(), nil
}

func (s *sessionService) AddItem(ctx context.Context, id string, productID int64) (*models.SessionView, error) {

	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := sess.AddToCart(productID); err != nil {
		if errors.Is(err, session.ErrUnknownProduct) {
			return nil, appErrors.NotFoundError("Product not found in the current catalog")
		}

		return nil, appErrors.InternalError("Failed to add item").WithError(err)
	}

	if err := s.store.Save(ctx, sess); err != nil {
		return nil, appErrors.InternalError("Failed to save session").WithError(err)
	}

	return sess.View(), nil
}

func (s *sessionService) RemoveItem(ctx context.Context, id string, productID int64) (*models.SessionView, error) {

	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	sess.RemoveFromCart(productID)

	if err := s.store.Save(ctx, sess); err != nil {
		return nil, appErrors.InternalError("Failed to save session").WithError(err)
	}

	return sess.View(), nil
}

// ApplyVoucher validates the code against the backend and maps the outcome
// to a user-visible notice. Server-provided messages are sanitized before
// they reach the user; a transport failure with an unusable error body
// falls back to a generic message.
func (s *sessionService) ApplyVoucher(ctx context.Context, id string, code string) (*models.VoucherNotice, error) {

	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	sess.SetVoucherCode(code)

	notice := &models.VoucherNotice{}

	result, err := s.backend.ValidateVoucher(ctx, code)

	switch {
	case err != nil:
		notice.Status = models.NoticeFailed
		notice.Message = "Voucher check failed. Please try again."

		var upstreamErr *backend.UpstreamError
		if errors.As(err, &upstreamErr) && upstreamErr.Message != "" {
			notice.Message = s.sanitizer.Sanitize(upstreamErr.Message)
		}

		slog.Warn("Voucher validation call failed",
			slog.String("sessionId", sess.ID),
			slog.String("error", err.Error()))

	case !result.Success:
		notice.Status = models.NoticeRejected
		notice.Message = s.sanitizer.Sanitize(result.Message)

	case result.Voucher == nil:
		// Success without a voucher payload is a contract violation.
		notice.Status = models.NoticeFailed
		notice.Message = "Voucher check failed. Please try again."

		slog.Error("Voucher validation succeeded without voucher payload",
			slog.String("sessionId", sess.ID))

	case !sess.ApplyVoucher(*result.Voucher):
		notice.Status = models.NoticeAlreadyApplied
		notice.Message = "Voucher has already been applied."

	default:
		notice.Status = models.NoticeApplied
		notice.Message = fmt.Sprintf("Voucher %s applied.", result.Voucher.VoucherCode)
	}

	if err := s.store.Save(ctx, sess); err != nil {
		return nil, appErrors.InternalError("Failed to save session").WithError(err)
	}

	notice.Session = sess.View()

	return notice, nil
}

// Checkout submits the cart. The session is reset on success and failure
// alike; only the tenant selection and the catalog survive. The user gets
// a generic failure notice with no distinction between validation and
// transport failures.
func (s *sessionService) Checkout(ctx context.Context, id string) (*models.CheckoutNotice, error) {

	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if sess.Tenant == nil {
		return nil, appErrors.BadRequestError("No tenant selected")
	}

	payload := &models.CheckoutRequest{
		Cart:     sess.Cart,
		TenantID: sess.Tenant.ID,
	}
	// An empty cart still goes out as [] on the wire, never null.
	if payload.Cart == nil {
		payload.Cart = []models.CartLine{}
	}

	if len(sess.AppliedVouchers) > 0 {
		payload.Vouchers = sess.AppliedVouchers
	}

	result, err := s.backend.Checkout(ctx, payload)

	// Unconditional finalization: the session is reset whatever the outcome.
	sess.Reset()

	if saveErr := s.store.Save(ctx, sess); saveErr != nil {
		slog.Error("Failed to save session after checkout",
			slog.String("sessionId", sess.ID),
			slog.String("error", saveErr.Error()))
	}

	notice := &models.CheckoutNotice{Session: sess.View()}

	if err != nil {
		slog.Warn("Checkout call failed",
			slog.String("sessionId", sess.ID),
			slog.String("error", err.Error()))

		notice.Status = models.NoticeFailed
		notice.Message = "Something went wrong during checkout."

		return notice, nil
	}

	notice.Status = models.NoticeSuccess

	if len(result.Vouchers) > 0 {
		notice.RewardVouchers = result.Vouchers
		notice.Message = fmt.Sprintf("Checkout successful. You earned %d voucher(s): %s",
			len(result.Vouchers), strings.Join(result.Vouchers, ", "))
	} else {
		notice.Message = "Checkout successful."
	}

	return notice, nil
}

func (s *sessionService) load(ctx context.Context, id string) (*session.Session, error) {

	sess, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, appErrors.SessionExpiredError("Session not found or expired")
		}

		return nil, appErrors.InternalError("Failed to load session").WithError(err)
	}

	return sess, nil
}
