package upstream

import (
	"github.com/smartshop/storefront-gateway/pkg/enums"
)

// Identity is the authenticated principal returned by the commerce API.
type Identity struct {
	ID       int64      `json:"id"`
	Username string     `json:"username"`
	Role     enums.Role `json:"role"`
}

// Credentials is the login payload forwarded verbatim to the commerce API.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ClientAccount is the commerce-side client record tied to an identity.
type ClientAccount struct {
	ID            int64   `json:"id"`
	Username      string  `json:"username"`
	Email         string  `json:"email"`
	Password      string  `json:"password,omitempty"`
	FidelityLevel string  `json:"fidelityLevel,omitempty"`
	TotalOrders   int     `json:"totalOrders"`
	TotalSpent    float64 `json:"totalSpent"`
}

// Product is a catalog entry as served by the commerce API.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}

// OrderItem is one line of an order, priced at submission time.
type OrderItem struct {
	ID        int64   `json:"id,omitempty"`
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	TotalLine float64 `json:"totalLine"`
}

// Order is the commerce API's order record.
type Order struct {
	ID              int64             `json:"id"`
	ClientID        int64             `json:"clientId"`
	ClientUsername  string            `json:"clientUsername,omitempty"`
	OrderDate       string            `json:"orderDate"`
	Subtotal        float64           `json:"subtotal"`
	Discount        float64           `json:"discount,omitempty"`
	TVA             float64           `json:"tva"`
	Total           float64           `json:"total"`
	Status          enums.OrderStatus `json:"status"`
	Items           []OrderItem       `json:"items"`
	PromoCode       string            `json:"promoCode,omitempty"`
	RemainingAmount float64           `json:"remainingAmount,omitempty"`
}

// OrderDraft is the payload sent to create an order. Field names follow the
// commerce API contract, including the French "tva" for the tax line.
type OrderDraft struct {
	ClientID  int64             `json:"clientId"`
	OrderDate string            `json:"orderDate"`
	Subtotal  float64           `json:"subtotal"`
	TVA       float64           `json:"tva"`
	Total     float64           `json:"total"`
	Status    enums.OrderStatus `json:"status"`
	Items     []OrderItem       `json:"items"`
}
