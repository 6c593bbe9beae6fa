package app

import (
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lahorisamosa/lahorisamosa/internal/domain"
	"github.com/lahorisamosa/lahorisamosa/pkg/common"
)

// checkAdmin ensures the admin operator exists with the configured PIN.
// The PIN is verified server-side only; no plaintext or client-side copy
// is kept anywhere.
func (a *Application) checkAdmin() {
	const adminUsername = "admin"

	pin := strings.TrimSpace(a.appConfig.Admin.Pin)
	if pin == "" {
		zap.L().Warn("admin PIN not configured, admin login disabled until ADMIN_PIN is set")
		return
	}
	hashed := common.Pbkdf2Hash(pin, common.GetSecretSalt())

	var operator domain.SysOpr
	err := a.gormDB.Where("username = ?", adminUsername).First(&operator).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := a.gormDB.Create(&domain.SysOpr{
			ID:        common.UUIDint64(),
			Realname:  "administrator",
			Username:  adminUsername,
			Password:  hashed,
			Level:     "super",
			Status:    common.ENABLED,
			Remark:    "super",
			LastLogin: time.Now(),
		}).Error; err != nil {
			zap.L().Error("failed to create admin operator", zap.Error(err))
		} else {
			zap.L().Info("initialized admin operator", zap.String("username", adminUsername))
		}
		return
	case err != nil:
		zap.L().Error("failed to query admin operator", zap.Error(err))
		return
	}

	if operator.Password != hashed {
		if err := a.gormDB.Model(&domain.SysOpr{}).Where("id = ?", operator.ID).
			Updates(map[string]interface{}{
				"password":   hashed,
				"updated_at": time.Now(),
			}).Error; err != nil {
			zap.L().Error("failed to update admin PIN hash", zap.Error(err))
			return
		}
		zap.L().Info("admin PIN updated from configuration")
	}
}

type settingSchema struct {
	Key         string
	Default     string
	Description string
}

var settingSchemas = []settingSchema{
	{CheckoutDeliveryFee, "100", "Flat delivery fee added at checkout, in rupees"},
	{CheckoutTransferDiscount, "0.10", "Discount fraction for manual transfer payments"},
	{StoreCurrency, "Rs.", "Currency prefix shown in emails"},
	{StoreName, "Lahori Samosa", "Store display name"},
	{StoreOwnerEmail, "info.lahorisamosa@gmail.com", "Store contact email"},
	{StorePhone, "+92 324 4060113", "Store contact phone"},
	{StoreWhatsappURL, "https://wa.me/923244060113", "WhatsApp chat link used in emails"},
	{PaymentJazzcashNumber, "+92 324 4060113", "JazzCash account number"},
	{PaymentJazzcashTitle, "Lahori Samosa", "JazzCash account title"},
	{PaymentRaastID, "+92 324 4060113", "Raast ID"},
	{PaymentRaastTitle, "Lahori Samosa", "Raast account title"},
}

func (a *Application) checkSettings() {
	for sortid, schema := range settingSchemas {
		parts := strings.SplitN(schema.Key, ".", 2)
		if len(parts) != 2 {
			zap.L().Warn("invalid config key format", zap.String("key", schema.Key))
			continue
		}
		category, name := parts[0], parts[1]

		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", category, name).
			Count(&count)
		if count == 0 {
			a.gormDB.Create(&domain.SysConfig{
				ID:     common.UUIDint64(),
				Sort:   sortid,
				Type:   category,
				Name:   name,
				Value:  schema.Default,
				Remark: schema.Description,
			})
			zap.L().Info("initialized config",
				zap.String("key", schema.Key),
				zap.String("default", schema.Default))
		}
	}
}

// catalogSeed is the storefront product list
var catalogSeed = []domain.Product{
	{ID: 1, Name: "Pizza Samosa (12p)", Price: 650, Image: "/images/products/pizza.jpg",
		Description: "Delicious pizza-flavored samosas with melted cheese and savory toppings."},
	{ID: 2, Name: "Bar.B.Q Samosa (12p)", Price: 600, Image: "/images/products/bbq.jpg",
		Description: "Smoky barbecue flavored samosas with tender meat and aromatic spices."},
	{ID: 3, Name: "Malai Boti Samosa (12p)", Price: 480, Image: "/images/products/boti.jpg",
		Description: "Creamy malai boti samosas with rich, flavorful filling."},
	{ID: 4, Name: "Macaroni Samosa (12p)", Price: 350, Image: "/images/products/mac.png",
		Description: "Unique macaroni-filled samosas with cheesy goodness."},
	{ID: 5, Name: "Potato Samosa (12p)", Price: 300, Image: "/images/products/potato.jpg",
		Description: "Classic potato samosas with perfectly spiced filling."},
	{ID: 6, Name: "Chicken Qeema Samosa", Price: 450, Image: "/images/products/chickenqeema.jpeg",
		Description: "Tender chicken qeema samosas with authentic Pakistani flavors."},
	{ID: 7, Name: "Chicken Vegetable Roll", Price: 560, Image: "/images/products/vegchicroll.jpg",
		Description: "Chicken and vegetable rolls perfect for any occasion."},
}

func (a *Application) checkProducts() {
	var count int64
	a.gormDB.Model(&domain.Product{}).Count(&count)
	if count > 0 {
		return
	}
	for i, p := range catalogSeed {
		p.Sort = i
		if err := a.gormDB.Create(&p).Error; err != nil {
			zap.L().Error("failed to seed product", zap.String("name", p.Name), zap.Error(err))
		}
	}
	zap.L().Info("seeded product catalog", zap.Int("count", len(catalogSeed)))
}
