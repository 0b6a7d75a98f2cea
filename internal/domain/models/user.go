package models

// AccessLevel is the internal role of a staff account
type AccessLevel string

const (
	AccessLevelAdmin  AccessLevel = "admin"
	AccessLevelPorter AccessLevel = "porter"
)

// Valid reports whether the level is a known role
func (a AccessLevel) Valid() bool {
	return a == AccessLevelAdmin || a == AccessLevelPorter
}

// UserStatus is the internal activation state of a staff account
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// Valid reports whether the status is known
func (s UserStatus) Valid() bool {
	return s == UserStatusActive || s == UserStatusInactive
}

// User represents a staff account (admin or porter)
type User struct {
	BaseModel
	Login        string      `gorm:"type:varchar(50);uniqueIndex;not null" json:"login"`
	FullName     string      `gorm:"type:varchar(120);not null" json:"full_name"`
	Email        string      `gorm:"type:varchar(120)" json:"email"`
	AccessLevel  AccessLevel `gorm:"type:varchar(20);not null;default:'porter'" json:"access_level"`
	Status       UserStatus  `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	PasswordHash string      `gorm:"type:varchar(100);not null" json:"-"`
}

// IsActivePorter reports whether the account may receive or deliver packages
func (u *User) IsActivePorter() bool {
	return u.Status == UserStatusActive && u.AccessLevel == AccessLevelPorter
}
