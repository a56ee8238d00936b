package domain

import "time"

// Plan is a subscription tier users can pick for filing assistance.
type Plan struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Currency    string
	Features    []string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
