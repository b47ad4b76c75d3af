package repository

import (
	"context"
	"errors"
	"time"

	"flower-storefront/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const AdminCredential = "admin"

type CredentialRepository interface {
	Upsert(ctx context.Context, credential *model.Credential) error
	Get(ctx context.Context, name string) (*model.Credential, error)
	Delete(ctx context.Context, name string) error
}

type credentialRepoImpl struct {
	db *gorm.DB
}

func NewCredentialRepository(db *gorm.DB) CredentialRepository {
	return &credentialRepoImpl{
		db: db,
	}
}

func (r *credentialRepoImpl) Upsert(ctx context.Context, credential *model.Credential) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"uid":        credential.UID,
			"token":      credential.Token,
			"expires_at": credential.ExpiresAt,
			"updated_at": time.Now(),
		}),
	}).Create(credential).Error
}

// Get returns nil, nil when no credential is stored.
func (r *credentialRepoImpl) Get(ctx context.Context, name string) (*model.Credential, error) {
	var credential model.Credential
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&credential).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &credential, nil
}

func (r *credentialRepoImpl) Delete(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).
		Where("name = ?", name).
		Delete(&model.Credential{}).Error
}
