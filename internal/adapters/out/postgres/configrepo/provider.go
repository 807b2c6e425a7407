// Package configrepo stores accounting settings per scope (currency or company)
// and serves them as the ConfigurationProvider of the core.
package configrepo

import (
	"context"
	"strings"

	"fulfillment/internal/core/domain/services"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingDTO is one configuration value. An empty scope holds the value used by
// every scope without its own.
type SettingDTO struct {
	Key   string `gorm:"type:varchar(64);primaryKey"`
	Scope string `gorm:"type:varchar(64);primaryKey"`
	Value string `gorm:"type:varchar(255);not null"`
}

func (SettingDTO) TableName() string {
	return "configuration"
}

// GormConfigurationProvider reads settings from the configuration table and falls
// back to a process-wide default.
type GormConfigurationProvider struct {
	db                      *gorm.DB
	defaultRoundDownAccount string
}

func NewGormConfigurationProvider(db *gorm.DB, defaultRoundDownAccount string) *GormConfigurationProvider {
	return &GormConfigurationProvider{
		db:                      db,
		defaultRoundDownAccount: strings.TrimSpace(defaultRoundDownAccount),
	}
}

// RoundDownAccount resolves the account of the scope, then the global one, then
// the default. "" means not configured.
func (p *GormConfigurationProvider) RoundDownAccount(ctx context.Context, scope string) (string, error) {
	value, err := p.lookup(ctx, services.RoundDownAccountSetting, scope)
	if err != nil {
		return "", err
	}
	if value == "" {
		value = p.defaultRoundDownAccount
	}
	return value, nil
}

func (p *GormConfigurationProvider) lookup(ctx context.Context, key, scope string) (string, error) {
	var settings []SettingDTO
	err := p.db.WithContext(ctx).
		Where("key = ? AND scope IN ?", key, []string{scope, ""}).
		Find(&settings).Error
	if err != nil {
		return "", err
	}

	value := ""
	for _, s := range settings {
		if s.Scope == scope {
			return s.Value, nil
		}
		value = s.Value
	}
	return value, nil
}

// Set stores a setting, replacing the previous value of the scope. An empty value
// removes the setting.
func (p *GormConfigurationProvider) Set(ctx context.Context, key, scope, value string) error {
	db := p.db.WithContext(ctx)
	value = strings.TrimSpace(value)
	if value == "" {
		return db.Where("key = ? AND scope = ?", key, scope).Delete(&SettingDTO{}).Error
	}

	setting := SettingDTO{Key: key, Scope: scope, Value: value}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}, {Name: "scope"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&setting).Error
}
