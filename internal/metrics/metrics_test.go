package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoutePattern(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{
			name: "Non Session Path Unchanged",
			path: "/health",
			want: "/health",
		},
		{
			name: "Session Collection Unchanged",
			path: "/api/v1/sessions",
			want: "/api/v1/sessions",
		},
		{
			name: "Session Id Collapsed",
			path: "/api/v1/sessions/9f2c41d6-0b1a-4c70-8a3e-5d1f2e3a4b5c",
			want: "/api/v1/sessions/{id}",
		},
		{
			name: "Tenant Route",
			path: "/api/v1/sessions/9f2c41d6-0b1a-4c70-8a3e-5d1f2e3a4b5c/tenant",
			want: "/api/v1/sessions/{id}/tenant",
		},
		{
			name: "Cart Items Collection",
			path: "/api/v1/sessions/9f2c41d6-0b1a-4c70-8a3e-5d1f2e3a4b5c/cart/items",
			want: "/api/v1/sessions/{id}/cart/items",
		},
		{
			name: "Product Id Collapsed",
			path: "/api/v1/sessions/9f2c41d6-0b1a-4c70-8a3e-5d1f2e3a4b5c/cart/items/42",
			want: "/api/v1/sessions/{id}/cart/items/{productID}",
		},
		{
			name: "Voucher Route",
			path: "/api/v1/sessions/9f2c41d6-0b1a-4c70-8a3e-5d1f2e3a4b5c/vouchers",
			want: "/api/v1/sessions/{id}/vouchers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, routePattern(tt.path))
		})
	}
}
