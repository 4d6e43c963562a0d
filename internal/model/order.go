package model

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderOpen     OrderStatus = "Open"
	OrderClosed   OrderStatus = "Closed"
	OrderCanceled OrderStatus = "Canceled"
)

// Order is a confirmed customer order.
type Order struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Customer     string      `json:"customer"`
	Product      string      `json:"product"`
	Amount       float64     `json:"amount"`
	Status       OrderStatus `json:"status"`
	CreatedAt    time.Time   `json:"createdAt"`
	DeliveryDate time.Time   `json:"deliveryDate"`
	SalesRepID   string      `json:"salesRepId"`
}
