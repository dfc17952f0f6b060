package catalog

import (
	"fmt"
	"math/rand"

	"github.com/freshmall/shopsim/internal/models"
)

const ProductCount = 30

var categories = []models.Category{
	{ID: 1, Name: "Food & Dining", Icon: "/icons/food-dining.svg"},
	{ID: 2, Name: "Dairy & Bakery", Icon: "/icons/dairy-bakery.svg"},
	{ID: 3, Name: "Beauty & Household", Icon: "/icons/beauty-household.svg"},
	{ID: 4, Name: "Drinks & Spirits", Icon: "/icons/drinks-spirits.svg"},
	{ID: 5, Name: "Grain & Seasoning", Icon: "/icons/grain-seasoning.svg"},
	{ID: 6, Name: "Frozen & Pastry", Icon: "/icons/frozen-pastry.svg"},
	{ID: 7, Name: "Seafood", Icon: "/icons/seafood.svg"},
	{ID: 8, Name: "Meat & Eggs", Icon: "/icons/meat-eggs.svg"},
	{ID: 9, Name: "Fresh Vegetables", Icon: "/icons/fresh-vegetables.svg"},
	{ID: 10, Name: "Seasonal Fruit", Icon: "/icons/seasonal-fruit.svg"},
}

var banners = []models.Banner{
	{ID: 1, Image: "https://img01.yzcdn.cn/vant/apple-1.jpg", URL: "#"},
	{ID: 2, Image: "https://img01.yzcdn.cn/vant/apple-2.jpg", URL: "#"},
	{ID: 3, Image: "https://img01.yzcdn.cn/vant/apple-3.jpg", URL: "#"},
}

const productImage = "https://img01.yzcdn.cn/vant/ipad.jpeg"

var adjectives = []string{
	"Fresh", "Organic", "Premium", "Select", "Farmhouse", "Golden",
	"Crispy", "Tender", "Wild", "Sweet", "Classic", "Daily",
}

var nouns = []string{
	"Lamb Chops", "Pork Loin", "Lobster", "Strawberries", "Whole Milk",
	"Sourdough Loaf", "Green Tea", "Soy Sauce", "Dumplings", "Shrimp",
	"Free-Range Eggs", "Baby Spinach", "Mangoes", "Rice Crackers",
	"Yogurt", "Craft Beer",
}

var blurbs = []string{
	"Sourced from trusted local farms and delivered the same day.",
	"A store favorite, restocked every morning.",
	"Carefully inspected for freshness before it ships.",
	"Pairs well with everything already in your basket.",
	"Limited daily supply, popular with returning customers.",
}

// Catalog is the synthetic data set the simulator serves. Content is
// randomized per seed but the shape is fixed: ten categories, three
// banners, ProductCount products with monotonically increasing ids.
type Catalog struct {
	Categories []models.Category
	Banners    []models.Banner
	Products   []models.Product
}

func Generate(seed int64) *Catalog {
	rng := rand.New(rand.NewSource(seed))

	products := make([]models.Product, 0, ProductCount)
	for i := 0; i < ProductCount; i++ {
		products = append(products, models.Product{
			ID:          i + 1,
			Title:       title(rng),
			Price:       float64(rng.Intn(9901)+100) / 100,
			Image:       productImage,
			CategoryID:  rng.Intn(len(categories)) + 1,
			Sales:       rng.Intn(471) + 30,
			Stock:       rng.Intn(91) + 10,
			Description: description(rng),
		})
	}

	return &Catalog{
		Categories: categories,
		Banners:    banners,
		Products:   products,
	}
}

func (c *Catalog) ProductByID(id int) (models.Product, bool) {
	for _, p := range c.Products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

func title(rng *rand.Rand) string {
	return fmt.Sprintf("%s %s %dg",
		adjectives[rng.Intn(len(adjectives))],
		nouns[rng.Intn(len(nouns))],
		(rng.Intn(20)+1)*50,
	)
}

func description(rng *rand.Rand) string {
	n := rng.Intn(3) + 1
	out := ""
	for i := 0; i < n; i++ {
		if i > 0 {
			out += " "
		}
		out += blurbs[rng.Intn(len(blurbs))]
	}
	return out
}
