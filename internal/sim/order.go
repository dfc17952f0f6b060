package sim

import (
	"context"

	"github.com/google/uuid"

	"github.com/freshmall/shopsim/internal/kvstore"
	"github.com/freshmall/shopsim/internal/models"
)

// sampleOrders is what the orders route serves when nothing has been
// persisted yet. The sample is regenerated per call and never written
// to the durable store.
func (s *Simulator) sampleOrders() []models.Order {
	ts := s.timestamp()
	sample := []struct {
		title string
		thumb string
		price float64
		qty   int
		state int
	}{
		{"Lamb Chops 1000g", "https://fastly.jsdelivr.net/npm/@vant/assets/ipad.jpeg", 120.00, 2, models.OrderStatusAwaitingShipment},
		{"Lean Pork", "https://fastly.jsdelivr.net/npm/@vant/assets/apple-1.jpeg", 80.00, 4, models.OrderStatusShipped},
		{"Lobster", "https://fastly.jsdelivr.net/npm/@vant/assets/apple-2.jpeg", 160.00, 3, models.OrderStatusCompleted},
	}

	orders := make([]models.Order, 0, len(sample))
	for _, it := range sample {
		orders = append(orders, models.Order{
			OrderID:    uuid.NewString(),
			OrderNo:    s.orderNo(),
			CreateTime: ts,
			Status:     it.state,
			Items: []models.OrderItem{{
				ID:         uuid.NewString(),
				Title:      it.title,
				Thumb:      it.thumb,
				Price:      it.price,
				Quantity:   it.qty,
				Status:     it.state,
				CreateTime: ts,
			}},
		})
	}
	return orders
}

func (s *Simulator) handleOrders(ctx context.Context, _ Request) (Envelope, error) {
	var orders []models.Order
	ok, err := kvstore.GetJSON(ctx, s.store, kvstore.KeyOrders, &orders)
	if err != nil {
		return Envelope{}, err
	}
	if !ok || len(orders) == 0 {
		return OK(s.sampleOrders(), "ok"), nil
	}
	return OK(orders, "ok"), nil
}

type submitResponse struct {
	OrderNo string             `json:"orderNo"`
	Items   []models.OrderItem `json:"items"`
}

// handleOrderSubmit snapshots the referenced cart lines into a durable
// order and removes them from the cart. Line ids that no longer resolve
// are dropped silently; checkout stays resilient to partial state.
func (s *Simulator) handleOrderSubmit(ctx context.Context, req Request) (Envelope, error) {
	var body struct {
		AddressID int `json:"addressId"`
		Items     []struct {
			ID string `json:"id"`
		} `json:"items"`
	}
	if err := req.Decode(&body); err != nil {
		return Invalid("invalid body"), nil
	}

	ts := s.timestamp()
	items := make([]models.OrderItem, 0, len(body.Items))
	consumed := make([]string, 0, len(body.Items))
	for _, it := range body.Items {
		line := s.cart.find(it.ID)
		if line == nil {
			continue
		}
		items = append(items, models.OrderItem{
			ID:         uuid.NewString(),
			Title:      line.Product.Title,
			Thumb:      line.Product.Image,
			Price:      line.Product.Price,
			Quantity:   line.Quantity,
			Status:     models.OrderStatusAwaitingShipment,
			CreateTime: ts,
		})
		consumed = append(consumed, it.ID)
	}

	order := models.Order{
		OrderID:    uuid.NewString(),
		OrderNo:    s.orderNo(),
		CreateTime: ts,
		Status:     models.OrderStatusAwaitingShipment,
		Items:      items,
	}

	var orders []models.Order
	if _, err := kvstore.GetJSON(ctx, s.store, kvstore.KeyOrders, &orders); err != nil {
		return Envelope{}, err
	}
	orders = append([]models.Order{order}, orders...)
	if err := kvstore.SetJSON(ctx, s.store, kvstore.KeyOrders, orders); err != nil {
		return Envelope{}, err
	}

	for _, id := range consumed {
		s.cart.Remove(id)
	}

	return OK(submitResponse{OrderNo: order.OrderNo, Items: items}, "order placed"), nil
}
