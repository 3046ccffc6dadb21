package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/sipworks/brewadmin/internal/inventory/domain"
	productdomain "github.com/sipworks/brewadmin/internal/product/domain"
	productrepo "github.com/sipworks/brewadmin/internal/product/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setup(t *testing.T) (domain.Service, *gorm.DB, productdomain.Product) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&productdomain.Product{},
		&domain.StockLevel{},
		&domain.StockMovement{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	product := productdomain.Product{
		ID:        node.Generate(),
		SKU:       "BRW-LAGER-500",
		Name:      "拉格啤酒 500ml",
		Category:  "beer",
		UnitPrice: decimal.RequireFromString("8.00"),
		Currency:  "CNY",
		Active:    true,
	}
	require.NoError(t, db.Create(&product).Error)

	svc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		ProductRepo: productrepo.Provide(),
	})
	return svc, db, product
}

func TestAdjust_InThenOut(t *testing.T) {
	svc, db, product := setup(t)
	ctx := context.Background()

	level, err := svc.Adjust(ctx, domain.AdjustRequest{
		ProductID: product.ID.String(),
		Kind:      domain.MovementIn,
		Delta:     120,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(120), level.Quantity)

	level, err = svc.Adjust(ctx, domain.AdjustRequest{
		ProductID: product.ID.String(),
		Kind:      domain.MovementOut,
		Delta:     -50,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(70), level.Quantity)

	var movements int64
	require.NoError(t, db.Model(&domain.StockMovement{}).Count(&movements).Error)
	assert.Equal(t, int64(2), movements)
}

func TestAdjust_NeverGoesNegative(t *testing.T) {
	svc, db, product := setup(t)
	ctx := context.Background()

	_, err := svc.Adjust(ctx, domain.AdjustRequest{
		ProductID: product.ID.String(),
		Kind:      domain.MovementIn,
		Delta:     10,
	})
	require.NoError(t, err)

	_, err = svc.Adjust(ctx, domain.AdjustRequest{
		ProductID: product.ID.String(),
		Kind:      domain.MovementOut,
		Delta:     -11,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// the rejected movement must not reach the journal
	var movements int64
	require.NoError(t, db.Model(&domain.StockMovement{}).Count(&movements).Error)
	assert.Equal(t, int64(1), movements)

	level, err := svc.Level(ctx, product.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(10), level.Quantity)
}

func TestAdjust_KindAndDeltaValidation(t *testing.T) {
	svc, _, product := setup(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		kind  domain.MovementKind
		delta int64
		want  error
	}{
		{"unknown kind", domain.MovementKind("transfer"), 5, domain.ErrInvalidKind},
		{"zero delta", domain.MovementAdjust, 0, domain.ErrInvalidDelta},
		{"inbound negative", domain.MovementIn, -5, domain.ErrInvalidDelta},
		{"outbound positive", domain.MovementOut, 5, domain.ErrInvalidDelta},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Adjust(ctx, domain.AdjustRequest{
				ProductID: product.ID.String(),
				Kind:      tc.kind,
				Delta:     tc.delta,
			})
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestAdjust_UnknownProduct(t *testing.T) {
	svc, _, _ := setup(t)

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)

	_, err = svc.Adjust(context.Background(), domain.AdjustRequest{
		ProductID: node.Generate().String(),
		Kind:      domain.MovementIn,
		Delta:     1,
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestLevel_ZeroWhenNoMovements(t *testing.T) {
	svc, _, product := setup(t)

	level, err := svc.Level(context.Background(), product.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(0), level.Quantity)
	assert.Equal(t, product.ID, level.ProductID)
}

func TestMovements_FilterAndOrder(t *testing.T) {
	svc, _, product := setup(t)
	ctx := context.Background()

	reason := "monthly count"
	for _, delta := range []int64{30, -10, 4} {
		kind := domain.MovementAdjust
		req := domain.AdjustRequest{ProductID: product.ID.String(), Kind: kind, Delta: delta, Reason: &reason}
		_, err := svc.Adjust(ctx, req)
		require.NoError(t, err)
	}

	movements, err := svc.Movements(ctx, domain.MovementsRequest{ProductID: product.ID.String()})
	require.NoError(t, err)
	require.Len(t, movements, 3)
	for _, m := range movements {
		assert.Equal(t, product.ID, m.ProductID)
		require.NotNil(t, m.Reason)
		assert.Equal(t, reason, *m.Reason)
	}
}
