package transport

import "time"

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AccountResponse struct {
	Message string `json:"message"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Role    string `json:"role,omitempty"`
}

// CreatePermitRequest carries dates as strings so that both "2006-01-02" and
// RFC 3339 timestamps are accepted.
type CreatePermitRequest struct {
	PermitNumber string `json:"permitNumber"`
	PONumber     string `json:"poNumber"`
	EmployeeName string `json:"employeeName"`
	PermitType   string `json:"permitType"`
	PermitStatus string `json:"permitStatus"`
	Location     string `json:"location"`
	Remarks      string `json:"remarks"`
	IssueDate    string `json:"issueDate"`
	ExpiryDate   string `json:"expiryDate"`
}

// PatchPermitRequest has no id or creator fields; "_id", "id" and "createdBy"
// in a request body are dropped while decoding.
type PatchPermitRequest struct {
	PermitNumber *string `json:"permitNumber"`
	PONumber     *string `json:"poNumber"`
	EmployeeName *string `json:"employeeName"`
	PermitType   *string `json:"permitType"`
	PermitStatus *string `json:"permitStatus"`
	Location     *string `json:"location"`
	Remarks      *string `json:"remarks"`
	IssueDate    *string `json:"issueDate"`
	ExpiryDate   *string `json:"expiryDate"`
}

type SearchQuery struct {
	PONumber     string `query:"poNumber"`
	PermitNumber string `query:"permitNumber"`
	PermitStatus string `query:"permitStatus"`
	StartDate    string `query:"startDate"`
	EndDate      string `query:"endDate"`
}

type PermitResponse struct {
	Message string `json:"message"`
	Permit  any    `json:"permit"`
}

type PermitsResponse struct {
	Message string `json:"message"`
	Permits any    `json:"permits"`
}

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04", "2006-01-02"}

// ParseDate accepts a calendar date or an RFC 3339 timestamp and returns it in UTC.
// A bare date is midnight UTC.
func ParseDate(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}
