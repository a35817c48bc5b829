package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/permit_tracker/internal/models"
)

type AccountRepo struct {
	DB *gorm.DB
}

func (r *AccountRepo) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&account).Error; err != nil {
		return nil, classify(err)
	}
	return &account, nil
}

func (r *AccountRepo) FindByRole(ctx context.Context, role models.Role) (*models.Account, error) {
	var account models.Account
	if err := r.DB.WithContext(ctx).Where("role = ?", string(role)).Order("created_at ASC").First(&account).Error; err != nil {
		return nil, classify(err)
	}
	return &account, nil
}

// Insert fails with ErrDuplicate when the email or the privileged slot is taken.
func (r *AccountRepo) Insert(ctx context.Context, account *models.Account) error {
	return classify(r.DB.WithContext(ctx).Create(account).Error)
}

func (r *AccountRepo) List(ctx context.Context) ([]models.Account, error) {
	accounts := make([]models.Account, 0)
	if err := r.DB.WithContext(ctx).Order("created_at ASC").Find(&accounts).Error; err != nil {
		return nil, classify(err)
	}
	return accounts, nil
}
