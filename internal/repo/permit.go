package repo

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/permit_tracker/internal/filter"
	"github.com/Skotchmaster/permit_tracker/internal/models"
)

type PermitRepo struct {
	DB *gorm.DB
}

func (r *PermitRepo) FindOne(ctx context.Context, id uuid.UUID) (*models.Permit, error) {
	var permit models.Permit
	if err := r.DB.WithContext(ctx).Preload("CreatedBy").Where("id = ?", id).First(&permit).Error; err != nil {
		return nil, classify(err)
	}
	return &permit, nil
}

// Find returns every permit matching f, oldest first, with the creator loaded.
func (r *PermitRepo) Find(ctx context.Context, f filter.Filter) ([]models.Permit, error) {
	inSQL, inMemory := r.split(f)
	q := apply(r.DB.WithContext(ctx).Model(&models.Permit{}), inSQL)

	permits := make([]models.Permit, 0)
	if err := q.Preload("CreatedBy").Order("created_at ASC, id ASC").Find(&permits).Error; err != nil {
		return nil, classify(err)
	}
	if len(inMemory) == 0 {
		return permits, nil
	}

	kept := permits[:0]
	for _, p := range permits {
		if matchesAll(&p, inMemory) {
			kept = append(kept, p)
		}
	}
	return kept, nil
}

// split moves substring matches with non-ASCII needles out of the query on
// sqlite, whose LOWER() folds ASCII only.
func (r *PermitRepo) split(f filter.Filter) (inSQL filter.Filter, inMemory []filter.ContainsFold) {
	if r.DB.Dialector.Name() != "sqlite" {
		return f, nil
	}
	for _, p := range f {
		if cf, ok := p.(filter.ContainsFold); ok && !isASCII(cf.Substr) {
			inMemory = append(inMemory, cf)
			continue
		}
		inSQL = append(inSQL, p)
	}
	return inSQL, inMemory
}

func matchesAll(p *models.Permit, preds []filter.ContainsFold) bool {
	for _, cf := range preds {
		if !strings.Contains(strings.ToLower(textValue(p, cf.Field)), strings.ToLower(cf.Substr)) {
			return false
		}
	}
	return true
}

func textValue(p *models.Permit, f filter.TextField) string {
	switch f {
	case filter.PONumber:
		return p.PONumber
	case filter.PermitNumber:
		return p.PermitNumber
	case filter.PermitStatus:
		return string(p.PermitStatus)
	default:
		return ""
	}
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func (r *PermitRepo) Insert(ctx context.Context, permit *models.Permit) error {
	return classify(r.DB.WithContext(ctx).Omit("CreatedBy").Create(permit).Error)
}

// UpdateByID applies patch (column -> value) and returns the stored record.
func (r *PermitRepo) UpdateByID(ctx context.Context, id uuid.UUID, patch map[string]any) (*models.Permit, error) {
	var updated models.Permit
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Permit
		if err := tx.Where("id = ?", id).First(&current).Error; err != nil {
			return err
		}
		if len(patch) > 0 {
			if err := tx.Model(&current).Omit("CreatedBy").Updates(patch).Error; err != nil {
				return err
			}
		}
		return tx.Preload("CreatedBy").Where("id = ?", id).First(&updated).Error
	})
	if err != nil {
		return nil, classify(err)
	}
	return &updated, nil
}

// DeleteByID removes the permit and returns it as it was before deletion.
func (r *PermitRepo) DeleteByID(ctx context.Context, id uuid.UUID) (*models.Permit, error) {
	var deleted models.Permit
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("CreatedBy").Where("id = ?", id).First(&deleted).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Permit{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	return &deleted, nil
}

// apply only interpolates column names owned by the filter package; values are bound.
func apply(q *gorm.DB, f filter.Filter) *gorm.DB {
	for _, p := range f {
		switch p := p.(type) {
		case filter.ContainsFold:
			pattern := "%" + filter.EscapeLike(strings.ToLower(p.Substr)) + "%"
			q = q.Where(fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, p.Column()), pattern)
		case filter.TimeRange:
			if p.From != nil {
				q = q.Where(p.Column()+" >= ?", p.From.UTC())
			}
			if p.To != nil {
				q = q.Where(p.Column()+" <= ?", p.To.UTC())
			}
		}
	}
	return q
}
