package models

import (
	"strings"

	"gorm.io/gorm"
)

// Resident represents a building occupant who receives packages
type Resident struct {
	BaseModel
	Name string `gorm:"type:varchar(120);not null;index" json:"name"`
	// NameKey is the case-folded name used for matching; sqlite's LOWER only folds ASCII
	NameKey string `gorm:"type:varchar(120);index" json:"-"`
	Street  string `gorm:"type:varchar(120)" json:"street"`
	Number  string `gorm:"type:varchar(20)" json:"number"`
	Block   string `gorm:"type:varchar(20)" json:"block"`
	Unit    string `gorm:"type:varchar(20)" json:"unit"`
	Phone   string `gorm:"type:varchar(30)" json:"phone"`
	Notes   string `gorm:"type:text" json:"notes"`
}

// BeforeSave keeps NameKey in step with Name on creates and full saves
func (r *Resident) BeforeSave(tx *gorm.DB) error {
	r.NameKey = NameKey(r.Name)
	return nil
}

// NameKey folds a name for case-insensitive comparison, accents included
func NameKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// ResidentSuggestion is a resident name ranked by how many packages it received
type ResidentSuggestion struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Block        string `json:"block"`
	Unit         string `json:"unit"`
	PackageCount int64  `json:"package_count"`
}
