package domain

import "time"

// CustomerInfo carries the checkout form fields. All fields are
// required and validated for presence only.
type CustomerInfo struct {
	Name     string `json:"name" form:"name"`
	LastName string `json:"lastName" form:"lastName"`
	Phone    string `json:"phone" form:"phone"`
	City     string `json:"city" form:"city"`
	Address  string `json:"address" form:"address"`
}

// OrderDetail is one line of the submitted order breakdown.
type OrderDetail struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Total    float64 `json:"total"`
}

// OrderRecord is the local journal entry written after a successful
// submission to the order sink. ID doubles as the client idempotency
// reference sent with the request.
type OrderRecord struct {
	ID          int64         `json:"id,string"`
	Customer    CustomerInfo  `json:"customer"`
	Details     []OrderDetail `json:"orderDetails"`
	TotalAmount float64       `json:"totalAmount"`
	OrderDate   time.Time     `json:"orderDate"`
}
