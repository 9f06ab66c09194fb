package agent

import (
	"context"

	"gorm.io/gorm"

	"github.com/bookflow-labs/bookflow-server/internal/models"
)

// TenantDirectory is the read surface the loop needs each turn: tenant
// persona, service catalogue, authorization roster, turn logging.
type TenantDirectory interface {
	GetTenant(ctx context.Context, id uint) (*models.Tenant, error)
	ListActiveServices(ctx context.Context, tenantID uint) ([]models.Service, error)
	ActiveBossProfiles(ctx context.Context, tenantID uint) ([]models.BossProfile, error)
	LogTurn(ctx context.Context, entry *models.CallLog) error
}

type GormDirectory struct {
	db *gorm.DB
}

func NewGormDirectory(db *gorm.DB) *GormDirectory {
	return &GormDirectory{db: db}
}

func (d *GormDirectory) GetTenant(ctx context.Context, id uint) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := d.db.WithContext(ctx).First(&tenant, id).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (d *GormDirectory) ListActiveServices(ctx context.Context, tenantID uint) ([]models.Service, error) {
	var services []models.Service
	if err := d.db.WithContext(ctx).
		Where("tenant_id = ? AND active = true", tenantID).
		Order("id ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (d *GormDirectory) ActiveBossProfiles(ctx context.Context, tenantID uint) ([]models.BossProfile, error) {
	var profiles []models.BossProfile
	if err := d.db.WithContext(ctx).
		Where("tenant_id = ? AND active = true", tenantID).
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (d *GormDirectory) LogTurn(ctx context.Context, entry *models.CallLog) error {
	return d.db.WithContext(ctx).Create(entry).Error
}

var _ TenantDirectory = (*GormDirectory)(nil)
