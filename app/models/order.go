package models

import "time"

// CartLine is one item selection: a menu item plus quantity. It lives in
// the cart while the customer shops and is frozen into Order.Items at
// checkout, so a later catalog price change never touches a placed order.
type CartLine struct {
	ItemID    string  `bson:"itemId" json:"itemId"`
	Name      string  `bson:"name" json:"name"`
	UnitPrice float64 `bson:"unitPrice" json:"unitPrice"`
	Quantity  int     `bson:"quantity" json:"quantity"`
}

// Order is a placed purchase, stored in the Mongo "orders" collection.
// Status and UpdatedAt are the only fields mutated after creation.
type Order struct {
	ID                   string     `bson:"_id,omitempty" json:"id"`
	CustomerID           uint       `bson:"customerId" json:"customerId"`
	CustomerName         string     `bson:"customerName" json:"customerName"`
	CustomerEmail        string     `bson:"customerEmail" json:"customerEmail"`
	CustomerPhone        string     `bson:"customerPhone" json:"customerPhone"`
	Items                []CartLine `bson:"items" json:"items"`
	Subtotal             float64    `bson:"subtotal" json:"subtotal"`
	DeliveryFee          float64    `bson:"deliveryFee" json:"deliveryFee"`
	Tax                  float64    `bson:"tax" json:"tax"`
	Total                float64    `bson:"total" json:"total"`
	Status               string     `bson:"status" json:"status"`
	PaymentStatus        string     `bson:"paymentStatus" json:"paymentStatus"`
	PaymentMethod        string     `bson:"paymentMethod" json:"paymentMethod"`
	DeliveryAddress      string     `bson:"deliveryAddress" json:"deliveryAddress"`
	City                 string     `bson:"city" json:"city"`
	PostalCode           string     `bson:"postalCode" json:"postalCode"`
	DeliveryInstructions string     `bson:"deliveryInstructions" json:"deliveryInstructions"`
	EstimatedDelivery    string     `bson:"estimatedDelivery" json:"estimatedDelivery"`
	CreatedAt            time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time  `bson:"updatedAt" json:"updatedAt"`
}
