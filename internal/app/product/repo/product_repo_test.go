package repo

import (
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	domain "github.com/murkotick/product-pricing-service/internal/app/product/domain"
	"github.com/murkotick/product-pricing-service/internal/models/m_price_history"
	"github.com/murkotick/product-pricing-service/internal/models/m_product"
)

func TestInsertMut_EncodesPriceAsNumeric(t *testing.T) {
	r := NewProductRepo()

	p, err := domain.NewProduct("prod-1", "Test Product", "a description", "electronics", "SKU-1",
		domain.MustMoney("19.99"), time.Now().UTC())
	require.NoError(t, err)

	values := buildInsertValues(p)
	require.NotNil(t, values)

	assert.Equal(t, "prod-1", values[m_product.ColProductID])
	assert.Equal(t, "SKU-1", values[m_product.ColSku])

	price, ok := values[m_product.ColPrice].(spanner.NullNumeric)
	require.True(t, ok, "price must be bound as NullNumeric")
	assert.True(t, price.Valid)
	assert.True(t, domain.MoneyFromRat(&price.Numeric).Equal(domain.MustMoney("19.99")))

	require.NotNil(t, r.InsertMut(p))
	assert.Nil(t, r.InsertMut(nil))
}

func TestUpdateValues_OmitKeyColumn(t *testing.T) {
	p, err := domain.ReviseProduct("prod-1", "Renamed", "d", "c", "SKU-2", domain.MustMoney("5"), time.Now())
	require.NoError(t, err)

	values := buildUpdateValues(p)

	_, hasKey := values[m_product.ColProductID]
	assert.False(t, hasKey)
	assert.Equal(t, "Renamed", values[m_product.ColName])
	assert.Len(t, values, len(m_product.AllColumns)-1)
}

func TestUpdateAndDeleteMut_RequireID(t *testing.T) {
	r := NewProductRepo()
	p := domain.ReconstructProduct("prod-1", "n", "d", "c", "s", domain.Zero())

	assert.Nil(t, r.UpdateMut("", p))
	assert.Nil(t, r.DeleteMut(""))
	assert.NotNil(t, r.UpdateMut("prod-1", p))
	assert.NotNil(t, r.DeleteMut("prod-1"))
}

func TestHistoryValues_StoreUTCAndAction(t *testing.T) {
	local := time.Date(2024, 2, 1, 10, 0, 0, 0, time.FixedZone("X", 3600))
	h := domain.NewChange("h-1", "prod-1", domain.MustMoney("10"), domain.MustMoney("12"), local)

	values := buildHistoryValues(h)

	assert.Equal(t, "Increased", values[m_price_history.ColAction])
	assert.Equal(t, local.UTC(), values[m_price_history.ColChangedAt])
	assert.NotNil(t, NewPriceHistoryRepo().InsertMut(h))
}

func TestTranslateCommitError(t *testing.T) {
	dup := status.Error(codes.AlreadyExists, "Unique index violation on index products_by_sku at index key [W-1]")
	assert.ErrorIs(t, translateCommitError(dup), domain.ErrDuplicateSku)

	pk := status.Error(codes.AlreadyExists, "Row [prod-1] in table products already exists")
	assert.False(t, errors.Is(translateCommitError(pk), domain.ErrDuplicateSku))

	assert.NoError(t, translateCommitError(nil))
}

func TestIsRowNotFound(t *testing.T) {
	assert.True(t, isRowNotFound(status.Error(codes.NotFound, "row not found")))
	assert.False(t, isRowNotFound(errors.New("boom")))
	assert.False(t, isRowNotFound(nil))
}
