package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/permit_tracker/internal/events"
	"github.com/Skotchmaster/permit_tracker/internal/filter"
	"github.com/Skotchmaster/permit_tracker/internal/models"
	"github.com/Skotchmaster/permit_tracker/internal/repo"
	"github.com/Skotchmaster/permit_tracker/internal/transport"
	"github.com/Skotchmaster/permit_tracker/pkg/identity"
	"github.com/Skotchmaster/permit_tracker/pkg/logging"
)

// PermitService performs no ownership checks: any authenticated account may
// edit or delete any permit.
type PermitService struct {
	Permits   PermitStore
	Publisher Publisher
	Indexer   Indexer
}

func (s *PermitService) Create(ctx context.Context, req transport.CreatePermitRequest) (*models.Permit, error) {
	l := logging.FromContext(ctx).With("svc", "permit.create")

	creator, err := accountFromContext(ctx)
	if err != nil {
		return nil, err
	}

	permit, err := newPermit(req)
	if err != nil {
		l.Warn("create_permit_failed", "status", 400, "error", err)
		return nil, err
	}
	permit.CreatedByID = creator

	if err := s.Permits.Insert(ctx, permit); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			l.Warn("create_permit_failed", "status", 409, "permit_number", permit.PermitNumber)
			return nil, ErrDuplicatePermitNumber
		}
		l.Error("create_permit_failed", "status", 500, "error", err)
		return nil, internalErr("insert permit", err)
	}

	s.afterWrite(ctx, events.PermitCreated, permit)
	l.Info("create_permit_success", "permit_id", permit.ID)
	return permit, nil
}

func (s *PermitService) List(ctx context.Context) ([]models.Permit, error) {
	permits, err := s.Permits.Find(ctx, nil)
	if err != nil {
		return nil, internalErr("list permits", err)
	}
	return permits, nil
}

func (s *PermitService) Update(ctx context.Context, id string, req transport.PatchPermitRequest) (*models.Permit, error) {
	l := logging.FromContext(ctx).With("svc", "permit.update", "permit_id", id)

	if _, err := accountFromContext(ctx); err != nil {
		return nil, err
	}
	permitID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}

	patch, err := patchColumns(req)
	if err != nil {
		l.Warn("update_permit_failed", "status", 400, "error", err)
		return nil, err
	}

	updated, err := s.Permits.UpdateByID(ctx, permitID, patch)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		l.Warn("update_permit_failed", "status", 404)
		return nil, ErrNotFound
	case errors.Is(err, repo.ErrDuplicate):
		l.Warn("update_permit_failed", "status", 409)
		return nil, ErrDuplicatePermitNumber
	case err != nil:
		l.Error("update_permit_failed", "status", 500, "error", err)
		return nil, internalErr("update permit", err)
	}

	s.afterWrite(ctx, events.PermitUpdated, updated)
	l.Info("update_permit_success")
	return updated, nil
}

func (s *PermitService) Delete(ctx context.Context, id string) (*models.Permit, error) {
	l := logging.FromContext(ctx).With("svc", "permit.delete", "permit_id", id)

	if _, err := accountFromContext(ctx); err != nil {
		return nil, err
	}
	permitID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}

	deleted, err := s.Permits.DeleteByID(ctx, permitID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("delete_permit_failed", "status", 404)
			return nil, ErrNotFound
		}
		l.Error("delete_permit_failed", "status", 500, "error", err)
		return nil, internalErr("delete permit", err)
	}

	publish(ctx, s.Publisher, events.TopicPermits, deleted.ID.String(), map[string]any{
		"type":     events.PermitDeleted,
		"permitID": deleted.ID,
	})
	unindex(ctx, s.Indexer, deleted.ID)
	l.Info("delete_permit_success")
	return deleted, nil
}

func (s *PermitService) Search(ctx context.Context, c filter.Criteria) ([]models.Permit, error) {
	if _, err := accountFromContext(ctx); err != nil {
		return nil, err
	}
	permits, err := s.Permits.Find(ctx, c.Build())
	if err != nil {
		logging.FromContext(ctx).Error("search_permits_failed", "status", 500, "error", err)
		return nil, internalErr("search permits", err)
	}
	return permits, nil
}

func (s *PermitService) afterWrite(ctx context.Context, kind string, p *models.Permit) {
	publish(ctx, s.Publisher, events.TopicPermits, p.ID.String(), map[string]any{
		"type":         kind,
		"permitID":     p.ID,
		"permitNumber": p.PermitNumber,
		"permitStatus": p.PermitStatus,
		"accountID":    p.CreatedByID,
	})
	index(ctx, s.Indexer, p)
}

func accountFromContext(ctx context.Context) (uuid.UUID, error) {
	id, ok := identity.FromContext(ctx)
	if !ok {
		return uuid.Nil, ErrUnauthenticated
	}
	accountID, err := uuid.Parse(id.AccountID)
	if err != nil {
		return uuid.Nil, ErrUnauthenticated
	}
	return accountID, nil
}

func newPermit(req transport.CreatePermitRequest) (*models.Permit, error) {
	p := &models.Permit{
		PermitNumber: strings.TrimSpace(req.PermitNumber),
		PONumber:     strings.TrimSpace(req.PONumber),
		EmployeeName: strings.TrimSpace(req.EmployeeName),
		PermitType:   models.PermitType(req.PermitType),
		PermitStatus: models.PermitStatus(req.PermitStatus),
		Location:     strings.TrimSpace(req.Location),
		Remarks:      req.Remarks,
	}

	for _, f := range []struct{ name, value string }{
		{"permitNumber", p.PermitNumber},
		{"poNumber", p.PONumber},
		{"employeeName", p.EmployeeName},
		{"location", p.Location},
	} {
		if f.value == "" {
			return nil, invalid(f.name + " is required")
		}
	}
	if !p.PermitType.Valid() {
		return nil, invalid("invalid permitType " + req.PermitType)
	}
	if p.PermitStatus == "" {
		p.PermitStatus = models.StatusPending
	}
	if !p.PermitStatus.Valid() {
		return nil, invalid("invalid permitStatus " + req.PermitStatus)
	}

	var err error
	if p.IssueDate, err = requiredDate("issueDate", req.IssueDate); err != nil {
		return nil, err
	}
	if p.ExpiryDate, err = requiredDate("expiryDate", req.ExpiryDate); err != nil {
		return nil, err
	}
	return p, nil
}

// patchColumns validates the supplied fields and maps them to column names.
func patchColumns(req transport.PatchPermitRequest) (map[string]any, error) {
	patch := map[string]any{}

	text := []struct {
		field  string
		column string
		value  *string
	}{
		{"permitNumber", "permit_number", req.PermitNumber},
		{"poNumber", "po_number", req.PONumber},
		{"employeeName", "employee_name", req.EmployeeName},
		{"location", "location", req.Location},
	}
	for _, t := range text {
		if t.value == nil {
			continue
		}
		v := strings.TrimSpace(*t.value)
		if v == "" {
			return nil, invalid(t.field + " is required")
		}
		patch[t.column] = v
	}

	if req.PermitType != nil {
		if !models.PermitType(*req.PermitType).Valid() {
			return nil, invalid("invalid permitType " + *req.PermitType)
		}
		patch["permit_type"] = *req.PermitType
	}
	if req.PermitStatus != nil {
		if !models.PermitStatus(*req.PermitStatus).Valid() {
			return nil, invalid("invalid permitStatus " + *req.PermitStatus)
		}
		patch["permit_status"] = *req.PermitStatus
	}
	if req.Remarks != nil {
		patch["remarks"] = *req.Remarks
	}
	if req.IssueDate != nil {
		d, err := requiredDate("issueDate", *req.IssueDate)
		if err != nil {
			return nil, err
		}
		patch["issue_date"] = d
	}
	if req.ExpiryDate != nil {
		d, err := requiredDate("expiryDate", *req.ExpiryDate)
		if err != nil {
			return nil, err
		}
		patch["expiry_date"] = d
	}
	return patch, nil
}

func requiredDate(field, value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, invalid(field + " is required")
	}
	d, err := transport.ParseDate(strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, invalid("invalid " + field)
	}
	return d, nil
}
