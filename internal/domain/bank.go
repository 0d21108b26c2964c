package domain

import "time"

// Bank represents a banking institution.
type Bank struct {
	ID        string
	Name      string
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Branch represents a physical branch of a bank.
type Branch struct {
	ID        string
	Name      string
	BankID    string
	ManagerID string
	CreatedAt time.Time
	UpdatedAt time.Time
}
