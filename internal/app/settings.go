package app

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gorm.io/gorm"

	"github.com/Mustagiz/Aleen/internal/domain"
	"github.com/Mustagiz/Aleen/internal/invoice"
)

// ConfigShop is the settings category holding shop presentation
// configuration consumed by invoice rendering.
const ConfigShop = "shop"

// SettingsManager reads and writes sys_config rows. Values are stored as
// strings and cast on read.
type SettingsManager struct {
	db *gorm.DB
}

func NewSettingsManager(db *gorm.DB) *SettingsManager {
	return &SettingsManager{db: db}
}

func (m *SettingsManager) GetString(category, name string) string {
	var cfg domain.SysConfig
	err := m.db.Where("type = ? and name = ?", category, name).First(&cfg).Error
	if err != nil {
		return ""
	}
	return cfg.Value
}

func (m *SettingsManager) GetInt64(category, name string) int64 {
	return cast.ToInt64(m.GetString(category, name))
}

func (m *SettingsManager) GetBool(category, name string) bool {
	return cast.ToBool(m.GetString(category, name))
}

func (m *SettingsManager) GetFloat64(category, name string) float64 {
	return cast.ToFloat64(m.GetString(category, name))
}

// Set upserts one settings row.
func (m *SettingsManager) Set(category, name, value string) error {
	var cfg domain.SysConfig
	err := m.db.Where("type = ? and name = ?", category, name).First(&cfg).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return m.db.Create(&domain.SysConfig{
			Type:  category,
			Name:  name,
			Value: value,
		}).Error
	case err != nil:
		return errors.Wrap(err, "query settings")
	}
	return m.db.Model(&domain.SysConfig{}).Where("id = ?", cfg.ID).Updates(map[string]interface{}{
		"value":      value,
		"updated_at": time.Now(),
	}).Error
}

// AllByCategory returns every name/value pair under a category.
func (m *SettingsManager) AllByCategory(category string) (map[string]string, error) {
	var rows []domain.SysConfig
	if err := m.db.Where("type = ?", category).Order("sort ASC").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "query settings")
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Name] = row.Value
	}
	return out, nil
}

// ShopInfo assembles the shop configuration object threaded into the
// invoice renderers.
func (m *SettingsManager) ShopInfo() invoice.ShopInfo {
	return invoice.ShopInfo{
		Name:      m.GetString(ConfigShop, "shop_name"),
		Owner:     m.GetString(ConfigShop, "owner_name"),
		Phone:     m.GetString(ConfigShop, "phone"),
		Email:     m.GetString(ConfigShop, "email"),
		Address:   m.GetString(ConfigShop, "address"),
		City:      m.GetString(ConfigShop, "city"),
		State:     m.GetString(ConfigShop, "state"),
		Pincode:   m.GetString(ConfigShop, "pincode"),
		GstNumber: m.GetString(ConfigShop, "gst_number"),
		UpiID:     m.GetString(ConfigShop, "upi_id"),
		Logo:      m.GetString(ConfigShop, "logo"),
		Tagline:   m.GetString(ConfigShop, "tagline"),
	}
}
