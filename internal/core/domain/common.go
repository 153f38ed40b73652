package domain

import "time"

// AuditFields holds the optional timestamps the ledger reports for an entity.
type AuditFields struct {
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}
