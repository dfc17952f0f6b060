package sim

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/freshmall/shopsim/internal/catalog"
	"github.com/freshmall/shopsim/internal/kvstore"
	"github.com/freshmall/shopsim/internal/session"
)

// Simulator answers conventional REST calls in-process from synthetic
// and durably persisted data. Dispatch is serialized: one request runs
// to completion before the next starts, so handlers need no locking of
// their own.
type Simulator struct {
	mu sync.Mutex

	router   *Router
	catalog  *catalog.Catalog
	cart     *CartEngine
	store    kvstore.Store
	sessions *session.Manager
	log      *slog.Logger

	latency time.Duration
	now     func() time.Time
	rng     *rand.Rand
}

type Options struct {
	// Latency is a fixed delay added to every call; zero means none.
	Latency time.Duration

	// Clock overrides time.Now, for tests.
	Clock func() time.Time
}

func New(cat *catalog.Catalog, store kvstore.Store, sessions *session.Manager, log *slog.Logger, opts Options) *Simulator {
	if log == nil {
		log = slog.Default()
	}
	now := opts.Clock
	if now == nil {
		now = time.Now
	}

	s := &Simulator{
		router:   &Router{},
		catalog:  cat,
		cart:     NewCartEngine(),
		store:    store,
		sessions: sessions,
		log:      log,
		latency:  opts.Latency,
		now:      now,
		rng:      rand.New(rand.NewSource(now().UnixNano())),
	}
	s.registerRoutes()
	return s
}

func (s *Simulator) registerRoutes() {
	r := s.router

	r.Handle(http.MethodGet, "/api/search", s.handleSearch)
	r.Handle(http.MethodGet, "/api/categories", s.handleCategories)
	r.Handle(http.MethodGet, "/api/banners", s.handleBanners)
	r.Handle(http.MethodGet, "/api/products", s.handleProducts)
	r.Handle(http.MethodGet, "/api/products/:id", s.handleProductByID)

	r.Handle(http.MethodPost, "/api/cart/add", s.handleCartAdd)
	r.Handle(http.MethodGet, "/api/cart", s.handleCartGet)
	r.Handle(http.MethodPost, "/api/cart/update", s.handleCartUpdate)
	r.Handle(http.MethodPost, "/api/cart/select", s.handleCartSelect)
	r.Handle(http.MethodPost, "/api/cart/remove", s.handleCartRemove)
	r.Handle(http.MethodPost, "/api/cart/checkout", s.handleCartCheckout)

	r.Handle(http.MethodGet, "/api/addresses", s.handleAddresses)

	r.Handle(http.MethodGet, "/api/orders", s.handleOrders)
	r.Handle(http.MethodPost, "/api/order/submit", s.handleOrderSubmit)

	r.Handle(http.MethodGet, "/api/user/check-login", s.handleCheckLoginState)
	r.Handle(http.MethodPost, "/api/user/check-login", s.handleLogin)
	r.Handle(http.MethodPost, "/api/user/register", s.handleRegister)
	r.Handle(http.MethodPost, "/api/user/check-username", s.handleCheckUsername)
	r.Handle(http.MethodPost, "/api/user/check-nickname", s.handleCheckNickname)
	r.Handle(http.MethodGet, "/api/user/info", s.handleUserInfo)
	r.Handle(http.MethodPost, "/api/user/update", s.handleUserUpdate)
	r.Handle(http.MethodPost, "/api/user/upload-avatar", s.handleUploadAvatar)
}

// Do dispatches one simulated call. Business failures come back inside
// the envelope; the error return carries only transport-level faults
// (no route, storage failure, malformed URL).
func (s *Simulator) Do(ctx context.Context, req Request) (Envelope, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.latency > 0 {
		select {
		case <-time.After(s.latency):
		case <-ctx.Done():
			return Envelope{}, ctx.Err()
		}
	}

	env, err := s.router.Dispatch(ctx, req)
	if err != nil {
		s.log.Error("simulated call failed", "method", req.Method, "path", req.Path, "error", err)
		return Envelope{}, err
	}
	return env, nil
}

// Get issues a GET the way an HTTP client would.
func (s *Simulator) Get(ctx context.Context, rawURL string) (Envelope, error) {
	req, err := NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return Envelope{}, err
	}
	return s.Do(ctx, req)
}

// Post issues a POST with a JSON-encoded body.
func (s *Simulator) Post(ctx context.Context, rawURL string, body any) (Envelope, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode body: %w", err)
	}
	req, err := NewRequest(http.MethodPost, rawURL, raw)
	if err != nil {
		return Envelope{}, err
	}
	return s.Do(ctx, req)
}

// orderNo builds a 16-digit order number.
func (s *Simulator) orderNo() string {
	digits := make([]byte, 16)
	for i := range digits {
		digits[i] = byte('0' + s.rng.Intn(10))
	}
	return string(digits)
}

func (s *Simulator) timestamp() string {
	return s.now().Format("2006-01-02 15:04:05")
}
