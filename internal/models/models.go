package models

// Product is generated once at startup and never mutated afterwards;
// orders carry their own snapshots instead of referencing it.
type Product struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	CategoryID  int     `json:"categoryId"`
	Sales       int     `json:"sales"`
	Stock       int     `json:"stock"`
	Description string  `json:"description"`
}

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type Banner struct {
	ID    int    `json:"id"`
	Image string `json:"image"`
	URL   string `json:"url"`
}

// CartLine holds a denormalized product snapshot so the cart keeps
// rendering the price the buyer saw when the line was added.
type CartLine struct {
	ID        string  `json:"id"`
	ProductID int     `json:"productId"`
	Product   Product `json:"product"`
	Quantity  int     `json:"quantity"`
	Selected  bool    `json:"selected"`
}

const (
	OrderStatusAwaitingShipment = 1
	OrderStatusShipped          = 2
	OrderStatusCompleted        = 3
)

type OrderItem struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Thumb      string  `json:"thumb"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	Status     int     `json:"status"`
	CreateTime string  `json:"createTime"`
}

type Order struct {
	OrderID    string      `json:"orderId"`
	OrderNo    string      `json:"orderNo"`
	CreateTime string      `json:"createTime"`
	Status     int         `json:"status"`
	Items      []OrderItem `json:"items"`
}

type User struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Gender   string `json:"gender"`
}

type Address struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Province      string `json:"province"`
	City          string `json:"city"`
	County        string `json:"county"`
	AddressDetail string `json:"addressDetail"`
	IsDefault     bool   `json:"isDefault"`
}
