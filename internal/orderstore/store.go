package orderstore

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/freshmall/shopsim/internal/kvstore"
	"github.com/freshmall/shopsim/internal/models"
	"github.com/freshmall/shopsim/internal/sim"
)

// CacheTTL is how long a fetched order list is served from memory
// without touching storage or the API.
const CacheTTL = time.Minute

// API is the slice of the request simulator the order store consumes.
type API interface {
	Get(ctx context.Context, rawURL string) (sim.Envelope, error)
	Post(ctx context.Context, rawURL string, body any) (sim.Envelope, error)
}

// Store caches the order list with a TTL, falls back to durable
// storage when the API fails, and writes every mutation back to durable
// storage before reporting success. Failures never escape the store;
// they degrade to fallbacks and are logged.
type Store struct {
	mu sync.Mutex

	api API
	kv  kvstore.Store
	log *slog.Logger

	now func() time.Time

	orders    []models.Order
	lastFetch time.Time
}

func New(api API, kv kvstore.Store, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		api: api,
		kv:  kv,
		log: log,
		now: time.Now,
	}
}

func (s *Store) loadFromStorage(ctx context.Context) bool {
	var orders []models.Order
	ok, err := kvstore.GetJSON(ctx, s.kv, kvstore.KeyOrders, &orders)
	if err != nil {
		s.log.Error("load orders from storage failed", "error", err)
		return false
	}
	if !ok {
		return false
	}
	s.orders = orders
	return true
}

func (s *Store) saveToStorage(ctx context.Context) {
	if err := kvstore.SetJSON(ctx, s.kv, kvstore.KeyOrders, s.orders); err != nil {
		s.log.Error("save orders to storage failed", "error", err)
	}
}

// FetchOrders returns the order list through three read paths tried in
// order: fresh in-memory cache, durable storage, then the orders route.
// force skips the first two; an API failure falls back to storage
// without stamping the fetch time, so the next call retries the API.
func (s *Store) FetchOrders(ctx context.Context, force bool) []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if !force && len(s.orders) > 0 && now.Sub(s.lastFetch) < CacheTTL {
		return s.snapshot()
	}

	if !force && s.loadFromStorage(ctx) {
		s.lastFetch = now
		return s.snapshot()
	}

	env, err := s.api.Get(ctx, "/api/orders")
	if err != nil {
		s.log.Error("fetch orders failed", "error", err)
		s.loadFromStorage(ctx)
		return s.snapshot()
	}
	if env.Code == 200 {
		orders, err := sim.DecodeData[[]models.Order](env)
		if err != nil {
			s.log.Error("decode orders failed", "error", err)
			s.loadFromStorage(ctx)
			return s.snapshot()
		}
		s.orders = orders
		s.saveToStorage(ctx)
		s.lastFetch = now
	}
	return s.snapshot()
}

// Refresh forces a fetch through the API.
func (s *Store) Refresh(ctx context.Context) []models.Order {
	return s.FetchOrders(ctx, true)
}

type submitPayload struct {
	AddressID int               `json:"addressId"`
	Items     []models.CartLine `json:"items"`
}

// SubmitResult is a discriminated success/failure outcome; SubmitOrder
// never lets an error escape as a panic or a bare return.
type SubmitResult struct {
	Success bool
	Order   models.Order
	Err     error
}

// SubmitOrder posts the selected cart lines, then builds the full
// order record locally (with its own human-readable timestamp) and
// prepends it to the cached list before persisting.
func (s *Store) SubmitOrder(ctx context.Context, addressID int, lines []models.CartLine) SubmitResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	env, err := s.api.Post(ctx, "/api/order/submit", submitPayload{AddressID: addressID, Items: lines})
	if err != nil {
		s.log.Error("submit order failed", "error", err)
		return SubmitResult{Err: err}
	}
	if env.Code != 200 {
		err := fmt.Errorf("order submit rejected: %s", env.Message)
		s.log.Error("submit order rejected", "code", env.Code, "message", env.Message)
		return SubmitResult{Err: err}
	}

	data, err := sim.DecodeData[struct {
		OrderNo string `json:"orderNo"`
	}](env)
	if err != nil {
		s.log.Error("decode submit response failed", "error", err)
		return SubmitResult{Err: err}
	}

	now := s.now()
	createTime := now.Format("2006-01-02 15:04:05")

	orderID := data.OrderNo
	if orderID == "" {
		orderID = strconv.FormatInt(now.UnixMilli(), 10)
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.OrderItem{
			ID:         uuid.NewString(),
			Title:      line.Product.Title,
			Thumb:      line.Product.Image,
			Price:      line.Product.Price,
			Quantity:   line.Quantity,
			Status:     models.OrderStatusAwaitingShipment,
			CreateTime: createTime,
		})
	}

	order := models.Order{
		OrderID:    orderID,
		OrderNo:    data.OrderNo,
		CreateTime: createTime,
		Status:     models.OrderStatusAwaitingShipment,
		Items:      items,
	}

	s.orders = append([]models.Order{order}, s.orders...)
	s.saveToStorage(ctx)

	return SubmitResult{Success: true, Order: order}
}

// UpdateOrderStatus is a no-op for an unknown id.
func (s *Store) UpdateOrderStatus(ctx context.Context, orderID string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].OrderID == orderID {
			s.orders[i].Status = status
			s.saveToStorage(ctx)
			return
		}
	}
}

// DeleteOrder is a no-op for an unknown id.
func (s *Store) DeleteOrder(ctx context.Context, orderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].OrderID == orderID {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			s.saveToStorage(ctx)
			return
		}
	}
}

// ClearOrders empties the cache and erases the durable record.
func (s *Store) ClearOrders(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders = nil
	if err := s.kv.Delete(ctx, kvstore.KeyOrders); err != nil {
		s.log.Error("clear orders failed", "error", err)
	}
}

func (s *Store) OrderByID(orderID string) (models.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.orders {
		if o.OrderID == orderID {
			return o, true
		}
	}
	return models.Order{}, false
}

func (s *Store) OrderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

// TotalOrderAmount sums price×quantity across every cached order.
func (s *Store) TotalOrderAmount() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0.0
	for _, o := range s.orders {
		for _, it := range o.Items {
			total += it.Price * float64(it.Quantity)
		}
	}
	return total
}

// CalculateOrderTotal renders one order's sum fixed to two decimals.
func CalculateOrderTotal(items []models.OrderItem) string {
	total := 0.0
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return strconv.FormatFloat(total, 'f', 2, 64)
}

func (s *Store) snapshot() []models.Order {
	out := make([]models.Order, len(s.orders))
	copy(out, s.orders)
	return out
}
