package model

import "time"

// Principal is an identity verified by the external identity provider.
type Principal struct {
	ID    string
	Name  string
	Phone string
}

// User is the local record of a principal that has placed or listed orders.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}
