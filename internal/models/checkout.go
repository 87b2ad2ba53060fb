package models

// CheckoutRequest is the wire payload for the backend checkout processor.
// Vouchers is omitted entirely (not sent as an empty array) when no
// voucher has been applied.
type CheckoutRequest struct {
	Cart     []CartLine `json:"cart"`
	TenantID int64      `json:"tenantId"`
	Vouchers []Voucher  `json:"vouchers,omitempty"`
}

// CheckoutResult is the backend's success response. Vouchers carries the
// codes of any newly earned reward vouchers.
type CheckoutResult struct {
	Vouchers []string `json:"vouchers,omitempty"`
}

// VoucherValidation is the backend validator's response shape. Success
// false means the code was rejected by business rules; Message then holds
// the server-provided reason.
type VoucherValidation struct {
	Success bool     `json:"success"`
	Voucher *Voucher `json:"voucher,omitempty"`
	Message string   `json:"message,omitempty"`
}
