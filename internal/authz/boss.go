package authz

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/bookflow-labs/bookflow-server/internal/models"
)

var whitespace = regexp.MustCompile(`\s+`)

// GenerateCode builds an authorization code from a holder name:
// UPPER(SNAKE(name))-#### with a 4-digit random suffix. Uniqueness is
// probabilistic, not enforced.
func GenerateCode(holderName string) string {
	base := whitespace.ReplaceAllString(strings.TrimSpace(holderName), "-")
	suffix := 1000 + rand.Intn(9000)
	return fmt.Sprintf("%s-%04d", strings.ToUpper(base), suffix)
}

// NormalizeCode prepares a spoken/typed code for comparison.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// FindCodeIn scans free-form text for any of the given active codes,
// case-insensitively. Used by the gate to authorize a session from the
// caller's own words rather than from model self-report.
func FindCodeIn(text string, profiles []models.BossProfile) *models.BossProfile {
	upper := strings.ToUpper(text)
	for i := range profiles {
		if !profiles[i].Active {
			continue
		}
		code := NormalizeCode(profiles[i].BossCode)
		if code != "" && strings.Contains(upper, code) {
			return &profiles[i]
		}
	}
	return nil
}

// Gate resolves boss-mode state for a tenant.
type Gate struct {
	db *gorm.DB
}

func NewGate(db *gorm.DB) *Gate {
	return &Gate{db: db}
}

// ActiveProfiles lists the tenant's active authorization code holders.
func (g *Gate) ActiveProfiles(ctx context.Context, tenantID uint) ([]models.BossProfile, error) {
	var profiles []models.BossProfile
	if err := g.db.WithContext(ctx).
		Where("tenant_id = ? AND active = true", tenantID).
		Order("created_at DESC").
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// Authorize checks whether the user message contains a valid code for
// the tenant. Returns the matched profile or nil.
func (g *Gate) Authorize(ctx context.Context, tenantID uint, userText string) (*models.BossProfile, error) {
	profiles, err := g.ActiveProfiles(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return FindCodeIn(userText, profiles), nil
}

// Lookup resolves a code to its active profile, trimmed and
// case-insensitive, across tenants.
func (g *Gate) Lookup(ctx context.Context, code string) (*models.BossProfile, error) {
	var profile models.BossProfile
	if err := g.db.WithContext(ctx).
		Where("boss_code = ? AND active = true", NormalizeCode(code)).
		First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}
