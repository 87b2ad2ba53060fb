package session

import (
	"errors"
	"time"

	"github.com/foodcourt/shopfront/internal/models"
)

// UnitDiscount is the flat amount every applied voucher takes off the
// subtotal. It is not tied to voucher-specific amounts.
const UnitDiscount int64 = 10000

// ErrUnknownProduct is returned when a cart mutation references a product
// that is not part of the currently loaded catalog.
var ErrUnknownProduct = errors.New("product not in current catalog")

// Session holds all state for one shopping session. The mutating methods
// are the only entry points; Discount and Payable are recomputed
// synchronously after every cart or voucher mutation, discount first
// because payable depends on it.
type Session struct {
	ID              string            `json:"id"`
	Tenants         []models.Tenant   `json:"tenants"`
	Tenant          *models.Tenant    `json:"tenant,omitempty"`
	Products        []models.Product  `json:"products"`
	Cart            []models.CartLine `json:"cart"`
	AppliedVouchers []models.Voucher  `json:"applied_vouchers"`
	VoucherCode     string            `json:"voucher_code"`
	Discount        int64             `json:"discount"`
	Payable         int64             `json:"payable"`
	ProductGen      uint64            `json:"product_gen"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

func New(id string) *Session {
	now := time.Now()

	return &Session{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetTenants stores the tenant list loaded at session start.
func (s *Session) SetTenants(tenants []models.Tenant) {
	s.Tenants = tenants
	s.touch()
}

// SelectTenant replaces the selected tenant and unconditionally clears the
// cart. An id with no match in the loaded tenant list yields an empty
// selection, not an error. The returned generation must accompany the
// matching SetProducts call so that a late-arriving product response for an
// older selection is discarded.
func (s *Session) SelectTenant(tenantID int64) uint64 {
	s.Tenant = nil

	for i := range s.Tenants {
		if s.Tenants[i].ID == tenantID {
			s.Tenant = &s.Tenants[i]
			break
		}
	}

	s.Cart = nil
	s.ProductGen++
	s.recompute()
	s.touch()

	return s.ProductGen
}

// SetProducts installs the catalog fetched for the given generation.
// Responses belonging to a superseded tenant selection are dropped.
func (s *Session) SetProducts(gen uint64, products []models.Product) bool {
	if gen != s.ProductGen {
		return false
	}

	s.Products = products
	s.touch()

	return true
}

// AddToCart adds one unit of the given catalog product: an existing line
// gets its quantity bumped, otherwise a new line starts at quantity 1.
// There is no upper bound on quantity and no stock check.
func (s *Session) AddToCart(productID int64) error {
	var product *models.Product

	for i := range s.Products {
		if s.Products[i].ID == productID {
			product = &s.Products[i]
			break
		}
	}

	if product == nil {
		return ErrUnknownProduct
	}

	for i := range s.Cart {
		if s.Cart[i].ID == productID {
			s.Cart[i].Quantity++
			s.recompute()
			s.touch()

			return nil
		}
	}

	s.Cart = append(s.Cart, models.CartLine{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		Quantity: 1,
	})
	s.recompute()
	s.touch()

	return nil
}

// RemoveFromCart deletes the whole line for the product, not a decrement.
// An absent id is a no-op, not an error.
func (s *Session) RemoveFromCart(productID int64) {
	for i := range s.Cart {
		if s.Cart[i].ID == productID {
			s.Cart = append(s.Cart[:i], s.Cart[i+1:]...)
			break
		}
	}

	s.recompute()
	s.touch()
}

// ApplyVoucher adds a validated voucher to the applied set. It returns
// false when the voucher id is already applied; the set never shrinks
// until Reset.
func (s *Session) ApplyVoucher(v models.Voucher) bool {
	for _, applied := range s.AppliedVouchers {
		if applied.ID == v.ID {
			return false
		}
	}

	s.AppliedVouchers = append(s.AppliedVouchers, v)
	s.recompute()
	s.touch()

	return true
}

func (s *Session) SetVoucherCode(code string) {
	s.VoucherCode = code
	s.touch()
}

// Reset clears the cart, the applied vouchers and the voucher-code input
// after a checkout attempt resolves, on success and failure alike. Tenant
// selection and the product catalog survive.
func (s *Session) Reset() {
	s.Cart = nil
	s.AppliedVouchers = nil
	s.VoucherCode = ""
	s.recompute()
	s.touch()
}

// Subtotal is the cart sum before discount.
func (s *Session) Subtotal() int64 {
	var total int64

	for _, line := range s.Cart {
		total += line.Price * int64(line.Quantity)
	}

	return total
}

// recompute derives discount from the applied-voucher count, then payable
// from cart and discount. Payable is not clamped at zero; enough vouchers
// can push it negative.
func (s *Session) recompute() {
	s.Discount = int64(len(s.AppliedVouchers)) * UnitDiscount
	s.Payable = s.Subtotal() - s.Discount
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now()
}

// Clone returns a deep copy. Callers may mutate the copy without the
// receiver observing it.
func (s *Session) Clone() *Session {
	clone := *s

	clone.Tenants = append([]models.Tenant(nil), s.Tenants...)
	clone.Products = append([]models.Product(nil), s.Products...)
	clone.Cart = append([]models.CartLine(nil), s.Cart...)
	clone.AppliedVouchers = append([]models.Voucher(nil), s.AppliedVouchers...)

	if s.Tenant != nil {
		tenant := *s.Tenant
		clone.Tenant = &tenant
	}

	return &clone
}

// View renders the session for the presentation layer.
func (s *Session) View() *models.SessionView {
	return &models.SessionView{
		ID:              s.ID,
		Tenants:         s.Tenants,
		Tenant:          s.Tenant,
		Products:        s.Products,
		Cart:            s.Cart,
		AppliedVouchers: s.AppliedVouchers,
		VoucherCode:     s.VoucherCode,
		Subtotal:        s.Subtotal(),
		Discount:        s.Discount,
		Payable:         s.Payable,
	}
}
