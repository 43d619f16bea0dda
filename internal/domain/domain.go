package domain

import "time"

type Role string

const (
	RoleDoctor     Role = "doctor"
	RoleNurse      Role = "nurse"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleDoctor, RoleNurse, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// CanManageStaff reports whether the role may create or modify staff accounts.
func (r Role) CanManageStaff() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

type AuditAction string

const (
	ActionCreate AuditAction = "create"
	ActionRead   AuditAction = "read"
	ActionUpdate AuditAction = "update"
	ActionDelete AuditAction = "delete"
	ActionLogin  AuditAction = "login"
)

type AuditLog struct {
	ID         uint      `gorm:"primaryKey"`
	OccurredAt time.Time `gorm:"autoCreateTime;index"`

	// Who
	Username   string `gorm:"column:username;type:varchar(50);not null;index"`
	HospitalID uint   `gorm:"column:hospital_id;index"`
	UserRole   Role   `gorm:"column:user_role;type:varchar(30);not null"`
	IPAddress  string `gorm:"column:ip_address;type:varchar(45)"` // Supports IPv6

	// What
	Action       AuditAction `gorm:"column:action;type:varchar(20);not null;index"`
	ResourceType string      `gorm:"column:resource_type;type:varchar(50);not null;index"`
	ResourceID   string      `gorm:"column:resource_id;type:varchar(100);index"`

	RequestID string `gorm:"column:request_id;type:varchar(50);index"`
	Changes   string `gorm:"column:changes;type:jsonb"`
}

func (AuditLog) TableName() string {
	return "audit.logs"
}

type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	TokenType    string    `json:"token_type"` // Always "Bearer"
}

// Claims is the identity the transport layer establishes before any core
// operation runs. Core services trust it and only perform hospital scoping.
type Claims struct {
	Username   string `json:"sub"`
	HospitalID uint   `json:"hospital_id"`
	Role       Role   `json:"role"`
}
