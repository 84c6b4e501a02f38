package app

import (
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Mustagiz/Aleen/internal/domain"
	"github.com/Mustagiz/Aleen/pkg/common"
)

const (
	superEmail      = "admin@aleen.com"
	defaultPassword = "admin123"
)

func (a *Application) checkSuper() {
	hashed, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		zap.L().Error("failed to hash default password", zap.Error(err))
		return
	}

	var operator domain.SysOpr
	err = a.gormDB.Where("email = ?", superEmail).First(&operator).Error
	switch {
	case err == nil:
		return
	case err != gorm.ErrRecordNotFound:
		zap.L().Error("failed to query super admin", zap.Error(err))
		return
	}

	if err := a.gormDB.Create(&domain.SysOpr{
		ID:        common.UUIDint64(),
		Realname:  "Admin",
		Mobile:    "0000",
		Email:     superEmail,
		Username:  "admin",
		Password:  string(hashed),
		Level:     "super",
		Status:    common.ENABLED,
		Remark:    "super",
		LastLogin: time.Now(),
	}).Error; err != nil {
		zap.L().Error("failed to create default super admin", zap.Error(err))
		return
	}
	zap.L().Info("initialized default super admin account", zap.String("email", superEmail))
}

// defaultShopSettings mirror the frontend defaults so a fresh install
// renders sensible invoices before the owner edits anything.
var defaultShopSettings = []struct {
	Name   string
	Value  string
	Remark string
}{
	{"shop_name", "Aleen Clothing", "Shop display name"},
	{"owner_name", "", "Owner name"},
	{"phone", "+91 98765 43210", "Shop contact phone"},
	{"email", "", "Shop contact email"},
	{"address", "Baba Jaan Chawk, Pune", "Street address"},
	{"city", "Pune", "City"},
	{"state", "Maharashtra", "State"},
	{"pincode", "", "Postal code"},
	{"gst_number", "", "GST registration number"},
	{"upi_id", "aleenclothing@paytm", "UPI collect address"},
	{"logo", "", "Logo URL"},
	{"tagline", "Empowering Indian Women", "Invoice tagline"},
}

func (a *Application) checkSettings() {
	for sortid, s := range defaultShopSettings {
		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", ConfigShop, s.Name).
			Count(&count)
		if count == 0 {
			a.gormDB.Create(&domain.SysConfig{
				Sort:   sortid,
				Type:   ConfigShop,
				Name:   s.Name,
				Value:  s.Value,
				Remark: s.Remark,
			})
			zap.L().Info("initialized shop setting",
				zap.String("name", s.Name),
				zap.String("default", s.Value))
		}
	}
}

// checkProducts seeds a small demo catalog when demo data is enabled.
func (a *Application) checkProducts() {
	defaultProducts := []domain.Product{
		{Name: "Banarasi Silk Saree", Category: "Saree", Size: "Free", Color: "Red", CostPrice: 1200, SellingPrice: 1899, Stock: 12},
		{Name: "Cotton Anarkali Kurti", Category: "Kurti", Size: "M", Color: "Blue", CostPrice: 450, SellingPrice: 799, Stock: 20},
		{Name: "Bridal Lehenga", Category: "Lehenga", Size: "L", Color: "Maroon", CostPrice: 3500, SellingPrice: 5999, Stock: 3},
		{Name: "Chiffon Dupatta", Category: "Dupatta", Size: "Free", Color: "Green", CostPrice: 150, SellingPrice: 299, Stock: 30},
	}

	for _, p := range defaultProducts {
		var count int64
		a.gormDB.Model(&domain.Product{}).Where("name = ?", p.Name).Count(&count)
		if count == 0 {
			p.ID = common.UUIDint64()
			if err := a.gormDB.Create(&p).Error; err != nil {
				zap.L().Error("failed to create default product", zap.String("name", p.Name), zap.Error(err))
			} else {
				zap.L().Info("initialized default product", zap.String("name", p.Name))
			}
		}
	}
}
