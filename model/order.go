// model/order.go
package model

import "time"

// Order is the basket aggregate. Status false means the order is still an
// open basket; true means it has been placed and is frozen.
type Order struct {
	ID        int64     `json:"id"`
	Status    bool      `json:"status"`
	FirstName string    `json:"firstname"`
	Surname   string    `json:"surname"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	TotalCost float64   `json:"totalcost"`
	Date      time.Time `json:"date"`
}
