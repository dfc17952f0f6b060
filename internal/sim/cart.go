package sim

import (
	"context"

	"github.com/google/uuid"

	"github.com/freshmall/shopsim/internal/models"
)

// CartEngine owns the in-memory cart lines. It is mutated only through
// the simulator's handlers, which run serialized.
type CartEngine struct {
	lines []models.CartLine
}

func NewCartEngine() *CartEngine {
	return &CartEngine{}
}

// Lines returns a copy so callers cannot mutate cart state behind the
// engine's back.
func (e *CartEngine) Lines() []models.CartLine {
	out := make([]models.CartLine, len(e.lines))
	copy(out, e.lines)
	return out
}

func (e *CartEngine) find(id string) *models.CartLine {
	for i := range e.lines {
		if e.lines[i].ID == id {
			return &e.lines[i]
		}
	}
	return nil
}

// Add upserts a line: an existing line for the same product gets its
// quantity bumped, otherwise a new selected line is created.
func (e *CartEngine) Add(product models.Product, quantity int) models.CartLine {
	for i := range e.lines {
		if e.lines[i].ProductID == product.ID {
			e.lines[i].Quantity += quantity
			return e.lines[i]
		}
	}
	line := models.CartLine{
		ID:        uuid.NewString(),
		ProductID: product.ID,
		Product:   product,
		Quantity:  quantity,
		Selected:  true,
	}
	e.lines = append(e.lines, line)
	return line
}

func (e *CartEngine) UpdateQuantity(id string, quantity int) (models.CartLine, bool) {
	line := e.find(id)
	if line == nil {
		return models.CartLine{}, false
	}
	line.Quantity = quantity
	return *line, true
}

func (e *CartEngine) Select(id string, selected bool) (models.CartLine, bool) {
	line := e.find(id)
	if line == nil {
		return models.CartLine{}, false
	}
	line.Selected = selected
	return *line, true
}

func (e *CartEngine) SelectAll(selected bool) {
	for i := range e.lines {
		e.lines[i].Selected = selected
	}
}

func (e *CartEngine) Remove(id string) bool {
	for i := range e.lines {
		if e.lines[i].ID == id {
			e.lines = append(e.lines[:i], e.lines[i+1:]...)
			return true
		}
	}
	return false
}

// Checkout removes every selected line and returns them with their
// summed amount. Unselected lines stay in the cart untouched.
func (e *CartEngine) Checkout() ([]models.CartLine, float64) {
	selected := make([]models.CartLine, 0)
	remaining := e.lines[:0]
	total := 0.0
	for _, line := range e.lines {
		if line.Selected {
			total += line.Product.Price * float64(line.Quantity)
			selected = append(selected, line)
		} else {
			remaining = append(remaining, line)
		}
	}
	e.lines = remaining
	return selected, total
}

func (s *Simulator) handleCartAdd(_ context.Context, req Request) (Envelope, error) {
	var body struct {
		ProductID int `json:"productId"`
		Quantity  int `json:"quantity"`
	}
	if err := req.Decode(&body); err != nil {
		return Invalid("invalid body"), nil
	}

	product, ok := s.catalog.ProductByID(body.ProductID)
	if !ok {
		return NotFound("product not found"), nil
	}
	if body.Quantity < 1 {
		body.Quantity = 1
	}

	line := s.cart.Add(product, body.Quantity)
	return OK(line, "added to cart"), nil
}

func (s *Simulator) handleCartGet(context.Context, Request) (Envelope, error) {
	return OK(s.cart.Lines(), "ok"), nil
}

func (s *Simulator) handleCartUpdate(_ context.Context, req Request) (Envelope, error) {
	var body struct {
		ID       string `json:"id"`
		Quantity int    `json:"quantity"`
	}
	if err := req.Decode(&body); err != nil {
		return Invalid("invalid body"), nil
	}

	line, ok := s.cart.UpdateQuantity(body.ID, body.Quantity)
	if !ok {
		return NotFound("cart item not found"), nil
	}
	return OK(line, "updated"), nil
}

func (s *Simulator) handleCartSelect(_ context.Context, req Request) (Envelope, error) {
	var body struct {
		ID       string `json:"id"`
		Selected bool   `json:"selected"`
	}
	if err := req.Decode(&body); err != nil {
		return Invalid("invalid body"), nil
	}

	// "all" is a sentinel: apply to every line.
	if body.ID == "all" {
		s.cart.SelectAll(body.Selected)
		return OK(s.cart.Lines(), "updated"), nil
	}

	line, ok := s.cart.Select(body.ID, body.Selected)
	if !ok {
		return NotFound("cart item not found"), nil
	}
	return OK(line, "updated"), nil
}

func (s *Simulator) handleCartRemove(_ context.Context, req Request) (Envelope, error) {
	var body struct {
		ID string `json:"id"`
	}
	if err := req.Decode(&body); err != nil {
		return Invalid("invalid body"), nil
	}

	if !s.cart.Remove(body.ID) {
		return NotFound("cart item not found"), nil
	}
	return OK(nil, "removed"), nil
}

type checkoutResponse struct {
	OrderNo     string            `json:"orderNo"`
	TotalAmount float64           `json:"totalAmount"`
	Items       []models.CartLine `json:"items"`
}

// handleCartCheckout settles the selected lines without creating a
// persisted order; order/submit is the separate persistence step.
func (s *Simulator) handleCartCheckout(context.Context, Request) (Envelope, error) {
	selected, total := s.cart.Checkout()
	return OK(checkoutResponse{
		OrderNo:     s.orderNo(),
		TotalAmount: total,
		Items:       selected,
	}, "checkout complete"), nil
}
