package models

// CartLine is one product entry in the session cart. Lines are unique by
// product id; repeat adds bump the quantity.
type CartLine struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// Voucher is a discount voucher as returned by the backend validator.
// Applied vouchers are unique by id within a session.
type Voucher struct {
	ID          int64  `json:"id"`
	VoucherCode string `json:"voucher_code"`
}

type SelectTenantRequest struct {
	TenantID int64 `json:"tenant_id" validate:"required"`
}

type AddItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required"`
}

type ApplyVoucherRequest struct {
	Code string `json:"code" validate:"required,min=1,max=64"`
}

// SessionView is the read model handed to the presentation layer. Totals
// are derived values, never stored independently of their inputs.
type SessionView struct {
	ID              string     `json:"id"`
	Tenants         []Tenant   `json:"tenants"`
	Tenant          *Tenant    `json:"tenant,omitempty"`
	Products        []Product  `json:"products"`
	Cart            []CartLine `json:"cart"`
	AppliedVouchers []Voucher  `json:"applied_vouchers"`
	VoucherCode     string     `json:"voucher_code"`
	Subtotal        int64      `json:"subtotal"`
	Discount        int64      `json:"discount"`
	Payable         int64      `json:"payable"`
}

// Notice statuses surfaced to the user after voucher and checkout calls.
const (
	NoticeApplied        = "applied"
	NoticeAlreadyApplied = "already_applied"
	NoticeRejected       = "rejected"
	NoticeSuccess        = "success"
	NoticeFailed         = "failed"
)

// VoucherNotice is the user-visible outcome of a voucher validation call.
type VoucherNotice struct {
	Status  string       `json:"status"`
	Message string       `json:"message"`
	Session *SessionView `json:"session"`
}

// CheckoutNotice is the user-visible outcome of a checkout attempt. The
// session in it is always the post-reset state.
type CheckoutNotice struct {
	Status         string       `json:"status"`
	Message        string       `json:"message"`
	RewardVouchers []string     `json:"reward_vouchers,omitempty"`
	Session        *SessionView `json:"session"`
}
