package models

import "strings"

// ExternalStatus is the package status in the mobile wire vocabulary.
// Only the two values below are ever produced.
type ExternalStatus string

const (
	ExternalStatusPending   ExternalStatus = "pending"
	ExternalStatusDelivered ExternalStatus = "delivered"
)

// ToExternal maps an internal status onto the wire vocabulary
func (s PackageStatus) ToExternal() ExternalStatus {
	if s == PackageStatusDelivered {
		return ExternalStatusDelivered
	}
	return ExternalStatusPending
}

// ToInternal maps a wire status back onto the internal vocabulary
func (s ExternalStatus) ToInternal() (PackageStatus, bool) {
	switch s {
	case ExternalStatusPending:
		return PackageStatusReceived, true
	case ExternalStatusDelivered:
		return PackageStatusDelivered, true
	}
	return "", false
}

// ExternalRole is the staff role in the wire vocabulary
type ExternalRole string

const (
	ExternalRoleAdmin  ExternalRole = "admin"
	ExternalRolePorter ExternalRole = "porteiro"
)

// ToExternal maps an access level onto the wire vocabulary
func (a AccessLevel) ToExternal() ExternalRole {
	if a == AccessLevelAdmin {
		return ExternalRoleAdmin
	}
	return ExternalRolePorter
}

// ParseExternalRole accepts the wire role (and the internal spelling) case-insensitively
func ParseExternalRole(value string) (AccessLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(ExternalRoleAdmin):
		return AccessLevelAdmin, true
	case string(ExternalRolePorter), string(AccessLevelPorter):
		return AccessLevelPorter, true
	}
	return "", false
}

// ExternalUserStatus is the account status in the wire vocabulary
type ExternalUserStatus string

const (
	ExternalUserStatusActive   ExternalUserStatus = "ativo"
	ExternalUserStatusInactive ExternalUserStatus = "inativo"
)

// ToExternal maps an account status onto the wire vocabulary
func (s UserStatus) ToExternal() ExternalUserStatus {
	if s == UserStatusActive {
		return ExternalUserStatusActive
	}
	return ExternalUserStatusInactive
}

// ParseExternalUserStatus accepts the wire status (and the internal spelling) case-insensitively
func ParseExternalUserStatus(value string) (UserStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(ExternalUserStatusActive), string(UserStatusActive):
		return UserStatusActive, true
	case string(ExternalUserStatusInactive), string(UserStatusInactive):
		return UserStatusInactive, true
	}
	return "", false
}
