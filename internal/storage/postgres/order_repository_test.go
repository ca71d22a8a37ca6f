package postgres_test

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/LucasSiw/apetrecho-core/internal/domain/cart"
	"github.com/LucasSiw/apetrecho-core/internal/domain/order"
	"github.com/LucasSiw/apetrecho-core/internal/storage/postgres"
)

type orderRepositorySuite struct {
	suite.Suite

	repo *postgres.OrderRepository
	pool *pgxpool.Pool
}

func TestOrderRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	suite.Run(t, new(orderRepositorySuite))
}

func (s *orderRepositorySuite) SetupSuite() {
	ctx := s.T().Context()

	_, pool, err := startPostgres(ctx)
	s.Require().NoError(err)

	s.pool = pool
	s.repo = postgres.NewOrderRepository(pool)
}

func (s *orderRepositorySuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *orderRepositorySuite) deleteAll() {
	_, err := s.pool.Exec(s.T().Context(), "DELETE FROM orders")
	s.Require().NoError(err)
}

func randomOrder(userID string) *order.Order {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &order.Order{
		ID:     uuid.NewString(),
		UserID: userID,
		Items: []cart.LineItem{{
			ProductID: gofakeit.UUID(),
			Name:      gofakeit.ProductName(),
			UnitPrice: decimal.NewFromFloat(gofakeit.Price(1, 200)).Round(2),
			Quantity:  gofakeit.Number(1, 5),
		}},
		Address: order.Address{
			Name:       gofakeit.Name(),
			Street:     gofakeit.Street(),
			City:       gofakeit.City(),
			State:      gofakeit.StateAbr(),
			PostalCode: gofakeit.Zip(),
		},
		Payment:           order.Payment{Method: "pix", Label: "Pix"},
		Subtotal:          decimal.NewFromFloat(gofakeit.Price(10, 300)).Round(2),
		Discount:          decimal.NewFromFloat(gofakeit.Price(0, 10)).Round(2),
		Shipping:          decimal.NewFromInt(15),
		Total:             decimal.NewFromFloat(gofakeit.Price(10, 300)).Round(2),
		CouponCode:        "DESCONTO10",
		Status:            order.StatusConfirmed,
		CreatedAt:         now,
		EstimatedDelivery: now.Add(order.DeliveryEstimate),
	}
}

func assertOrderEqual(t *testing.T, want, got *order.Order) {
	t.Helper()

	require.Equal(t, want.ID, got.ID)
	require.Equal(t, want.UserID, got.UserID)
	require.Equal(t, want.Address, got.Address)
	require.Equal(t, want.Payment, got.Payment)
	require.Equal(t, want.CouponCode, got.CouponCode)
	require.Equal(t, want.Status, got.Status)

	require.Len(t, got.Items, len(want.Items))
	for i := range want.Items {
		require.Equal(t, want.Items[i].ProductID, got.Items[i].ProductID)
		require.Equal(t, want.Items[i].Quantity, got.Items[i].Quantity)
		require.True(t, want.Items[i].UnitPrice.Equal(got.Items[i].UnitPrice),
			"item %d unit price: want %s, got %s", i, want.Items[i].UnitPrice, got.Items[i].UnitPrice)
	}

	require.True(t, want.Subtotal.Equal(got.Subtotal), "subtotal: want %s, got %s", want.Subtotal, got.Subtotal)
	require.True(t, want.Discount.Equal(got.Discount), "discount: want %s, got %s", want.Discount, got.Discount)
	require.True(t, want.Shipping.Equal(got.Shipping), "shipping: want %s, got %s", want.Shipping, got.Shipping)
	require.True(t, want.Total.Equal(got.Total), "total: want %s, got %s", want.Total, got.Total)

	require.WithinDuration(t, want.CreatedAt, got.CreatedAt, time.Millisecond)
	require.WithinDuration(t, want.EstimatedDelivery, got.EstimatedDelivery, time.Millisecond)
}

func (s *orderRepositorySuite) TestCreateGet() {
	defer s.deleteAll()
	t := s.T()
	ctx := t.Context()

	o := randomOrder(gofakeit.UUID())
	require.NoError(t, s.repo.Create(ctx, o))

	got, err := s.repo.Get(ctx, o.ID)
	require.NoError(t, err)
	assertOrderEqual(t, o, got)
}

func (s *orderRepositorySuite) TestGet_NotFound() {
	t := s.T()

	_, err := s.repo.Get(t.Context(), uuid.NewString())
	require.ErrorIs(t, err, order.ErrNotFound)
}

func (s *orderRepositorySuite) TestDelete() {
	defer s.deleteAll()
	t := s.T()
	ctx := t.Context()

	o := randomOrder(gofakeit.UUID())
	require.NoError(t, s.repo.Create(ctx, o))
	require.NoError(t, s.repo.Delete(ctx, o.ID))

	_, err := s.repo.Get(ctx, o.ID)
	require.ErrorIs(t, err, order.ErrNotFound)

	// Deleting an absent order is a no-op.
	require.NoError(t, s.repo.Delete(ctx, uuid.NewString()))
}

func (s *orderRepositorySuite) TestListByUser() {
	defer s.deleteAll()
	t := s.T()
	ctx := t.Context()

	userID := gofakeit.UUID()

	first := randomOrder(userID)
	first.CreatedAt = time.Now().UTC().Truncate(time.Microsecond).Add(-time.Hour)
	require.NoError(t, s.repo.Create(ctx, first))

	second := randomOrder(userID)
	require.NoError(t, s.repo.Create(ctx, second))

	other := randomOrder(gofakeit.UUID())
	require.NoError(t, s.repo.Create(ctx, other))

	got, err := s.repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Most recently created first.
	require.Equal(t, second.ID, got[0].ID)
	require.Equal(t, first.ID, got[1].ID)
}

func (s *orderRepositorySuite) TestUpdateStatus() {
	defer s.deleteAll()
	t := s.T()
	ctx := t.Context()

	o := randomOrder(gofakeit.UUID())
	require.NoError(t, s.repo.Create(ctx, o))

	require.NoError(t, s.repo.UpdateStatus(ctx, o.ID, order.StatusConfirmed, order.StatusProcessing))

	got, err := s.repo.Get(ctx, o.ID)
	require.NoError(t, err)
	require.Equal(t, order.StatusProcessing, got.Status)

	// The guard on the expected current status makes a stale advance fail.
	err = s.repo.UpdateStatus(ctx, o.ID, order.StatusConfirmed, order.StatusProcessing)
	require.ErrorIs(t, err, order.ErrNotFound)

	err = s.repo.UpdateStatus(ctx, uuid.NewString(), order.StatusConfirmed, order.StatusProcessing)
	require.ErrorIs(t, err, order.ErrNotFound)
}
