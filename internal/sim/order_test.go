package sim_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/freshmall/shopsim/internal/kvstore"
	"github.com/freshmall/shopsim/internal/models"
)

type submitData struct {
	OrderNo string             `json:"orderNo"`
	Items   []models.OrderItem `json:"items"`
}

func TestOrderSubmitSnapshotsAndConsumesLines(t *testing.T) {
	s, kv, cat := newTestSim(t)
	lineA := addToCart(t, s, 1, 2)
	lineB := addToCart(t, s, 2, 1)

	env, err := s.Post(context.Background(), "/api/order/submit", map[string]any{
		"addressId": 1,
		"items":     []map[string]string{{"id": lineA.ID}},
	})
	require.NoError(t, err)
	require.Equal(t, 200, env.Code)

	data := decode[submitData](t, env)
	require.Len(t, data.OrderNo, 16)
	require.Len(t, data.Items, 1)

	p1, _ := cat.ProductByID(1)
	item := data.Items[0]
	require.Equal(t, p1.Title, item.Title)
	require.Equal(t, p1.Image, item.Thumb)
	require.InDelta(t, p1.Price, item.Price, 1e-9)
	require.Equal(t, 2, item.Quantity)
	require.Equal(t, models.OrderStatusAwaitingShipment, item.Status)

	// The consumed line is gone; the other one stays.
	lines := cartLines(t, s)
	require.Len(t, lines, 1)
	require.Equal(t, lineB.ID, lines[0].ID)

	// The order landed in durable storage, newest first.
	var orders []models.Order
	ok, err := kvstore.GetJSON(context.Background(), kv, kvstore.KeyOrders, &orders)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, orders, 1)
	require.Equal(t, data.OrderNo, orders[0].OrderNo)
	require.Len(t, orders[0].Items, 1)
}

func TestOrderSubmitDropsUnresolvedIDs(t *testing.T) {
	s, _, _ := newTestSim(t)
	lineA := addToCart(t, s, 1, 1)

	env, err := s.Post(context.Background(), "/api/order/submit", map[string]any{
		"addressId": 1,
		"items": []map[string]string{
			{"id": lineA.ID},
			{"id": "no-longer-in-cart"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 200, env.Code)

	data := decode[submitData](t, env)
	require.Len(t, data.Items, 1)
}

func TestOrderSubmitPrependsToExistingList(t *testing.T) {
	s, kv, _ := newTestSim(t)

	lineA := addToCart(t, s, 1, 1)
	_, err := s.Post(context.Background(), "/api/order/submit", map[string]any{
		"addressId": 1,
		"items":     []map[string]string{{"id": lineA.ID}},
	})
	require.NoError(t, err)

	lineB := addToCart(t, s, 2, 1)
	env, err := s.Post(context.Background(), "/api/order/submit", map[string]any{
		"addressId": 1,
		"items":     []map[string]string{{"id": lineB.ID}},
	})
	require.NoError(t, err)
	second := decode[submitData](t, env)

	var orders []models.Order
	_, err = kvstore.GetJSON(context.Background(), kv, kvstore.KeyOrders, &orders)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.Equal(t, second.OrderNo, orders[0].OrderNo)
}

func TestOrdersSampleFallback(t *testing.T) {
	s, kv, _ := newTestSim(t)

	env, err := s.Get(context.Background(), "/api/orders")
	require.NoError(t, err)
	require.Equal(t, 200, env.Code)

	orders := decode[[]models.Order](t, env)
	require.Len(t, orders, 3)
	statuses := []int{orders[0].Status, orders[1].Status, orders[2].Status}
	require.ElementsMatch(t, []int{
		models.OrderStatusAwaitingShipment,
		models.OrderStatusShipped,
		models.OrderStatusCompleted,
	}, statuses)

	// The sample is never persisted.
	_, ok, err := kv.Get(context.Background(), kvstore.KeyOrders)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestOrdersReturnsPersistedList(t *testing.T) {
	s, _, _ := newTestSim(t)

	line := addToCart(t, s, 3, 2)
	_, err := s.Post(context.Background(), "/api/order/submit", map[string]any{
		"addressId": 1,
		"items":     []map[string]string{{"id": line.ID}},
	})
	require.NoError(t, err)

	env, err := s.Get(context.Background(), "/api/orders")
	require.NoError(t, err)
	orders := decode[[]models.Order](t, env)
	require.Len(t, orders, 1)
}
