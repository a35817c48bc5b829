package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCriteria_Build(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   Criteria
		want Filter
	}{
		{name: "empty", in: Criteria{}, want: nil},
		{name: "blank strings", in: Criteria{PONumber: "  ", PermitNumber: ""}, want: nil},
		{name: "status ALL is unconstrained", in: Criteria{PermitStatus: "ALL"}, want: nil},
		{
			name: "status substring",
			in:   Criteria{PermitStatus: "pending"},
			want: Filter{ContainsFold{Field: PermitStatus, Substr: "pending"}},
		},
		{
			name: "numbers trimmed",
			in:   Criteria{PONumber: " PO-7 ", PermitNumber: "PN"},
			want: Filter{
				ContainsFold{Field: PONumber, Substr: "PO-7"},
				ContainsFold{Field: PermitNumber, Substr: "PN"},
			},
		},
		{
			name: "open ended start",
			in:   Criteria{StartDate: &start},
			want: Filter{TimeRange{Field: IssueDate, From: &start}},
		},
		{
			name: "closed range",
			in:   Criteria{StartDate: &start, EndDate: &end},
			want: Filter{TimeRange{Field: IssueDate, From: &start, To: &end}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.in.Build())
		})
	}
}

func TestPredicate_Columns(t *testing.T) {
	t.Parallel()

	f := Criteria{PONumber: "a", PermitStatus: "b", EndDate: &time.Time{}}.Build()
	require.Len(t, f, 3)
	assert.Equal(t, "po_number", f[0].Column())
	assert.Equal(t, "permit_status", f[1].Column())
	assert.Equal(t, "issue_date", f[2].Column())
}

func TestEscapeLike(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `100\%\_a\\b`, EscapeLike(`100%_a\b`))
	assert.Equal(t, "PN-1", EscapeLike("PN-1"))
}
