// Package filter describes permit search predicates independently of storage.
package filter

import (
	"strings"
	"time"
)

// TextField and TimeField name the permit columns a predicate may target.
type TextField string

type TimeField string

const (
	PONumber     TextField = "po_number"
	PermitNumber TextField = "permit_number"
	PermitStatus TextField = "permit_status"

	IssueDate TimeField = "issue_date"
)

// Predicate is one constraint on one field. Only the variants in this package implement it.
type Predicate interface {
	Column() string
	predicate()
}

// ContainsFold matches when Substr occurs in the field, ignoring case.
type ContainsFold struct {
	Field  TextField
	Substr string
}

func (p ContainsFold) Column() string { return string(p.Field) }
func (ContainsFold) predicate() {}

// TimeRange is an inclusive range; a nil bound is open.
type TimeRange struct {
	Field TimeField
	From  *time.Time
	To    *time.Time
}

func (p TimeRange) Column() string { return string(p.Field) }
func (TimeRange) predicate() {}

// Filter is a conjunction. The empty Filter matches everything.
type Filter []Predicate

// StatusAll leaves the status unconstrained.
const StatusAll = "ALL"

type Criteria struct {
	PONumber     string
	PermitNumber string
	PermitStatus string
	StartDate    *time.Time
	EndDate      *time.Time
}

// Build omits every criterion that was not supplied.
func (c Criteria) Build() Filter {
	var f Filter
	if s := strings.TrimSpace(c.PONumber); s != "" {
		f = append(f, ContainsFold{Field: PONumber, Substr: s})
	}
	if s := strings.TrimSpace(c.PermitNumber); s != "" {
		f = append(f, ContainsFold{Field: PermitNumber, Substr: s})
	}
	if s := strings.TrimSpace(c.PermitStatus); s != "" && s != StatusAll {
		f = append(f, ContainsFold{Field: PermitStatus, Substr: s})
	}
	if c.StartDate != nil || c.EndDate != nil {
		f = append(f, TimeRange{Field: IssueDate, From: c.StartDate, To: c.EndDate})
	}
	return f
}

// EscapeLike escapes LIKE wildcards with a backslash so Substr matches literally.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
