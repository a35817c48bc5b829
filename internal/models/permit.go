package models

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PermitType string

const (
	PermitGeneral    PermitType = "General"
	PermitHeight     PermitType = "Height"
	PermitConfined   PermitType = "Confined"
	PermitExcavation PermitType = "Excavation"
	PermitCivil      PermitType = "Civil"
	PermitHot        PermitType = "Hot"
)

var PermitTypes = []PermitType{PermitGeneral, PermitHeight, PermitConfined, PermitExcavation, PermitCivil, PermitHot}

func (t PermitType) Valid() bool { return slices.Contains(PermitTypes, t) }

// PermitStatus is a closed set of labels; transitions between them are not restricted.
type PermitStatus string

const (
	StatusPending  PermitStatus = "Pending"
	StatusApproved PermitStatus = "Approved"
	StatusRejected PermitStatus = "Rejected"
	StatusClosed   PermitStatus = "Closed"
)

var PermitStatuses = []PermitStatus{StatusPending, StatusApproved, StatusRejected, StatusClosed}

func (s PermitStatus) Valid() bool { return slices.Contains(PermitStatuses, s) }

type Permit struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey"      json:"id"`
	PermitNumber string       `gorm:"uniqueIndex;not null"      json:"permitNumber"`
	PONumber     string       `gorm:"column:po_number;not null" json:"poNumber"`
	EmployeeName string       `gorm:"not null"                  json:"employeeName"`
	PermitType   PermitType   `gorm:"type:varchar(16);not null" json:"permitType"`
	PermitStatus PermitStatus `gorm:"type:varchar(16);not null;default:Pending" json:"permitStatus"`
	Location     string       `gorm:"not null"                  json:"location"`
	Remarks      string       `json:"remarks,omitempty"`
	IssueDate    time.Time    `gorm:"not null;index"            json:"issueDate"`
	ExpiryDate   time.Time    `gorm:"not null"                  json:"expiryDate"`
	CreatedByID  uuid.UUID    `gorm:"type:uuid;not null;index"  json:"-"`
	CreatedBy    *Account     `gorm:"foreignKey:CreatedByID"    json:"-"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

func (p *Permit) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.PermitStatus == "" {
		p.PermitStatus = StatusPending
	}
	return nil
}

// MarshalJSON renders createdBy as the creator's public fields when loaded,
// otherwise as the bare account id.
func (p Permit) MarshalJSON() ([]byte, error) {
	type plain Permit
	var createdBy any = p.CreatedByID
	if p.CreatedBy != nil {
		createdBy = p.CreatedBy.Public()
	}
	return json.Marshal(struct {
		plain
		CreatedBy any `json:"createdBy"`
	}{plain: plain(p), CreatedBy: createdBy})
}
