package sim

import (
	"context"
	"strconv"
	"strings"

	"github.com/freshmall/shopsim/internal/models"
)

// handleSearch filters products by title substring. An empty keyword
// returns the first ten products instead of everything.
func (s *Simulator) handleSearch(_ context.Context, req Request) (Envelope, error) {
	keyword := req.Query.Get("keyword")
	if keyword == "" {
		n := 10
		if len(s.catalog.Products) < n {
			n = len(s.catalog.Products)
		}
		return OK(s.catalog.Products[:n], "ok"), nil
	}

	matched := make([]models.Product, 0)
	for _, p := range s.catalog.Products {
		if strings.Contains(p.Title, keyword) {
			matched = append(matched, p)
		}
	}
	return OK(matched, "search complete"), nil
}

func (s *Simulator) handleCategories(context.Context, Request) (Envelope, error) {
	return OK(s.catalog.Categories, "ok"), nil
}

func (s *Simulator) handleBanners(context.Context, Request) (Envelope, error) {
	return OK(s.catalog.Banners, "ok"), nil
}

func (s *Simulator) handleProducts(context.Context, Request) (Envelope, error) {
	return OK(s.catalog.Products, "ok"), nil
}

func (s *Simulator) handleProductByID(_ context.Context, req Request) (Envelope, error) {
	id, err := strconv.Atoi(req.Params["id"])
	if err != nil {
		return NotFound("product not found"), nil
	}
	product, ok := s.catalog.ProductByID(id)
	if !ok {
		return NotFound("product not found"), nil
	}
	return OK(product, "ok"), nil
}

var addresses = []models.Address{
	{
		ID:            1,
		Name:          "Alice Zhang",
		Phone:         "13800138000",
		Province:      "Guangdong",
		City:          "Shenzhen",
		County:        "Nanshan",
		AddressDetail: "Tech Park South Rd, Tower A",
		IsDefault:     true,
	},
	{
		ID:            2,
		Name:          "Ben Li",
		Phone:         "13900139000",
		Province:      "Beijing",
		City:          "Beijing",
		County:        "Chaoyang",
		AddressDetail: "East 3rd Ring Rd, No. 42",
		IsDefault:     false,
	},
}

func (s *Simulator) handleAddresses(context.Context, Request) (Envelope, error) {
	return OK(addresses, "ok"), nil
}
