package models

// Tenant is a merchant in the multi-vendor catalog, as served by the
// commerce backend.
type Tenant struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Product is a catalog entry scoped to a tenant. Read-only from this
// service's perspective.
type Product struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}
