package models

import "time"

// PackageStatus is the internal lifecycle state of a package
type PackageStatus string

const (
	PackageStatusReceived  PackageStatus = "Received"
	PackageStatusDelivered PackageStatus = "Delivered"
)

// Package represents a parcel held at the front desk for a resident
type Package struct {
	BaseModel
	ResidentID    uint          `gorm:"not null;index" json:"resident_id"`
	ReceivedByID  uint          `gorm:"not null;index" json:"received_by_id"`
	ReceivedAt    time.Time     `gorm:"not null;index" json:"received_at"`
	Quantity      int           `gorm:"not null;default:1" json:"quantity"`
	Notes         string        `gorm:"type:text" json:"notes"`
	Status        PackageStatus `gorm:"type:varchar(20);not null;default:'Received';index" json:"status"`
	DeliveredAt   *time.Time    `json:"delivered_at"`
	DeliveredByID *uint         `gorm:"index" json:"delivered_by_id"`
	RetrievedBy   *string       `gorm:"type:varchar(120)" json:"retrieved_by"`
	DeliveryNotes string        `gorm:"type:text" json:"delivery_notes"`

	// Relations
	Resident    *Resident `gorm:"foreignKey:ResidentID" json:"-"`
	ReceivedBy  *User     `gorm:"foreignKey:ReceivedByID" json:"-"`
	DeliveredBy *User     `gorm:"foreignKey:DeliveredByID" json:"-"`
}

// PackageView is a package row joined with the names the screens display
type PackageView struct {
	ID              uint          `json:"id"`
	ResidentID      uint          `json:"resident_id"`
	ResidentName    string        `json:"resident_name"`
	Street          string        `json:"street"`
	Number          string        `json:"number"`
	Block           string        `json:"block"`
	Unit            string        `json:"unit"`
	ReceivedByID    uint          `json:"received_by_id"`
	ReceivedByName  string        `json:"received_by_name"`
	ReceivedAt      time.Time     `json:"received_at"`
	Quantity        int           `json:"quantity"`
	Notes           string        `json:"notes"`
	Status          PackageStatus `json:"status"`
	DeliveredAt     *time.Time    `json:"delivered_at"`
	DeliveredByID   *uint         `json:"delivered_by_id"`
	DeliveredByName *string       `json:"delivered_by_name"`
	RetrievedBy     *string       `json:"retrieved_by"`
	DeliveryNotes   string        `json:"delivery_notes"`
}
