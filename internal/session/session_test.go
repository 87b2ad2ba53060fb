package session_test

import (
	"testing"

	"github.com/foodcourt/shopfront/internal/models"
	"github.com/foodcourt/shopfront/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoadedSession(t *testing.T) *session.Session {
	t.Helper()

	sess := session.New("sess-1")
	sess.SetTenants([]models.Tenant{
		{ID: 1, Name: "Warung A"},
		{ID: 2, Name: "Warung B"},
	})

	gen := sess.SelectTenant(1)
	require.NotNil(t, sess.Tenant)
	require.True(t, sess.SetProducts(gen, []models.Product{
		{ID: 10, Name: "Nasi Goreng", Price: 5000},
		{ID: 11, Name: "Es Teh", Price: 3000},
	}))

	return sess
}

func TestSelectTenant(t *testing.T) {
	t.Run("Known Tenant", func(t *testing.T) {
		sess := session.New("sess-1")
		sess.SetTenants([]models.Tenant{{ID: 1, Name: "Warung A"}})

		gen := sess.SelectTenant(1)

		require.NotNil(t, sess.Tenant)
		assert.Equal(t, int64(1), sess.Tenant.ID)
		assert.Equal(t, uint64(1), gen)
	})

	t.Run("Unknown Tenant Yields Empty Selection", func(t *testing.T) {
		sess := session.New("sess-1")
		sess.SetTenants([]models.Tenant{{ID: 1, Name: "Warung A"}})

		sess.SelectTenant(99)

		assert.Nil(t, sess.Tenant)
		assert.Empty(t, sess.Cart)
	})

	t.Run("Always Clears Cart", func(t *testing.T) {
		sess := newLoadedSession(t)
		require.NoError(t, sess.AddToCart(10))
		require.NotEmpty(t, sess.Cart)

		sess.SelectTenant(2)

		assert.Empty(t, sess.Cart)
		assert.Equal(t, int64(0), sess.Payable)
	})
}

func TestSetProducts(t *testing.T) {
	t.Run("Stale Generation Discarded", func(t *testing.T) {
		sess := session.New("sess-1")
		sess.SetTenants([]models.Tenant{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}})

		staleGen := sess.SelectTenant(1)
		currentGen := sess.SelectTenant(2)

		// The response for the first selection arrives after the second.
		assert.False(t, sess.SetProducts(staleGen, []models.Product{{ID: 10, Price: 5000}}))
		assert.Empty(t, sess.Products)

		assert.True(t, sess.SetProducts(currentGen, []models.Product{{ID: 20, Price: 7000}}))
		assert.Len(t, sess.Products, 1)
		assert.Equal(t, int64(20), sess.Products[0].ID)
	})
}

func TestAddToCart(t *testing.T) {
	t.Run("Quantity Accumulates Per Call", func(t *testing.T) {
		sess := newLoadedSession(t)

		for range 3 {
			require.NoError(t, sess.AddToCart(10))
		}

		require.Len(t, sess.Cart, 1)
		assert.Equal(t, 3, sess.Cart[0].Quantity)
		assert.Equal(t, int64(15000), sess.Subtotal())
	})

	t.Run("Distinct Products Get Distinct Lines", func(t *testing.T) {
		sess := newLoadedSession(t)

		require.NoError(t, sess.AddToCart(10))
		require.NoError(t, sess.AddToCart(11))

		assert.Len(t, sess.Cart, 2)
		assert.Equal(t, int64(8000), sess.Subtotal())
	})

	t.Run("Unknown Product Rejected", func(t *testing.T) {
		sess := newLoadedSession(t)

		err := sess.AddToCart(999)

		assert.ErrorIs(t, err, session.ErrUnknownProduct)
		assert.Empty(t, sess.Cart)
	})
}

func TestRemoveFromCart(t *testing.T) {
	t.Run("Removes Whole Line", func(t *testing.T) {
		sess := newLoadedSession(t)
		require.NoError(t, sess.AddToCart(10))
		require.NoError(t, sess.AddToCart(10))

		sess.RemoveFromCart(10)

		assert.Empty(t, sess.Cart)
		assert.Equal(t, int64(0), sess.Payable)
	})

	t.Run("Absent Id Is A NoOp", func(t *testing.T) {
		sess := newLoadedSession(t)
		require.NoError(t, sess.AddToCart(10))

		sess.RemoveFromCart(999)

		assert.Len(t, sess.Cart, 1)
	})

	t.Run("ReAdd After Remove Starts At One", func(t *testing.T) {
		sess := newLoadedSession(t)
		require.NoError(t, sess.AddToCart(10))
		require.NoError(t, sess.AddToCart(10))

		sess.RemoveFromCart(10)
		require.NoError(t, sess.AddToCart(10))

		require.Len(t, sess.Cart, 1)
		assert.Equal(t, 1, sess.Cart[0].Quantity)
	})
}

func TestApplyVoucher(t *testing.T) {
	t.Run("Duplicate Id Rejected", func(t *testing.T) {
		sess := newLoadedSession(t)
		voucher := models.Voucher{ID: 5, VoucherCode: "X10"}

		assert.True(t, sess.ApplyVoucher(voucher))
		assert.False(t, sess.ApplyVoucher(voucher))
		assert.Len(t, sess.AppliedVouchers, 1)
	})

	t.Run("Discount Tracks Applied Count", func(t *testing.T) {
		sess := newLoadedSession(t)

		sess.ApplyVoucher(models.Voucher{ID: 5, VoucherCode: "X10"})
		assert.Equal(t, session.UnitDiscount, sess.Discount)

		sess.ApplyVoucher(models.Voucher{ID: 6, VoucherCode: "X20"})
		assert.Equal(t, 2*session.UnitDiscount, sess.Discount)
	})
}

func TestDerivedTotals(t *testing.T) {
	t.Run("Payable Recomputed After Every Mutation", func(t *testing.T) {
		sess := newLoadedSession(t)

		require.NoError(t, sess.AddToCart(10))
		require.NoError(t, sess.AddToCart(10))
		assert.Equal(t, int64(10000), sess.Payable)

		sess.ApplyVoucher(models.Voucher{ID: 5, VoucherCode: "X10"})
		assert.Equal(t, int64(10000), sess.Discount)
		assert.Equal(t, int64(0), sess.Payable)
	})

	t.Run("Payable Can Go Negative", func(t *testing.T) {
		sess := newLoadedSession(t)
		require.NoError(t, sess.AddToCart(11))

		sess.ApplyVoucher(models.Voucher{ID: 5, VoucherCode: "X10"})

		assert.Equal(t, int64(3000-10000), sess.Payable)
	})
}

func TestClone(t *testing.T) {
	sess := newLoadedSession(t)
	require.NoError(t, sess.AddToCart(10))

	clone := sess.Clone()
	require.NoError(t, clone.AddToCart(10))
	clone.Tenants[0].Name = "changed"
	clone.Tenant.Name = "changed"

	// The original is untouched by mutations of the clone.
	assert.Equal(t, 1, sess.Cart[0].Quantity)
	assert.Equal(t, 2, clone.Cart[0].Quantity)
	assert.Equal(t, "Warung A", sess.Tenants[0].Name)
	assert.Equal(t, "Warung A", sess.Tenant.Name)
}

func TestReset(t *testing.T) {
	sess := newLoadedSession(t)
	require.NoError(t, sess.AddToCart(10))
	sess.ApplyVoucher(models.Voucher{ID: 5, VoucherCode: "X10"})
	sess.SetVoucherCode("X10")

	sess.Reset()

	assert.Empty(t, sess.Cart)
	assert.Empty(t, sess.AppliedVouchers)
	assert.Empty(t, sess.VoucherCode)
	assert.Equal(t, int64(0), sess.Discount)
	assert.Equal(t, int64(0), sess.Payable)

	// Tenant selection and catalog are kept.
	assert.NotNil(t, sess.Tenant)
	assert.NotEmpty(t, sess.Products)
}
