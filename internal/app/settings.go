package app

import (
	"sync"
	"time"

	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/lahorisamosa/lahorisamosa/internal/domain"
)

// Settings keys, grouped by category
const (
	CheckoutDeliveryFee      = "checkout.delivery_fee"
	CheckoutTransferDiscount = "checkout.transfer_discount"
	StoreCurrency            = "store.currency"
	StoreName                = "store.name"
	StoreOwnerEmail          = "store.owner_email"
	StorePhone               = "store.phone"
	StoreWhatsappURL         = "store.whatsapp_url"
	PaymentJazzcashNumber    = "payment.jazzcash_number"
	PaymentJazzcashTitle     = "payment.jazzcash_title"
	PaymentRaastID           = "payment.raast_id"
	PaymentRaastTitle        = "payment.raast_title"
)

const settingsCacheTTL = 30 * time.Second

// ConfigManager reads runtime settings from the sys_config table with a
// short-lived in-process cache.
type ConfigManager struct {
	app      *Application
	mu       sync.RWMutex
	cache    map[string]string
	loadedAt time.Time
}

func NewConfigManager(app *Application) *ConfigManager {
	return &ConfigManager{app: app, cache: map[string]string{}}
}

func (m *ConfigManager) load() map[string]string {
	m.mu.RLock()
	if time.Since(m.loadedAt) < settingsCacheTTL {
		defer m.mu.RUnlock()
		return m.cache
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if time.Since(m.loadedAt) < settingsCacheTTL {
		return m.cache
	}

	var rows []domain.SysConfig
	if err := m.app.DB().Find(&rows).Error; err != nil {
		zap.L().Warn("failed to load settings, serving cached values", zap.Error(err))
		return m.cache
	}
	cache := make(map[string]string, len(rows))
	for _, row := range rows {
		cache[row.Type+"."+row.Name] = row.Value
	}
	m.cache = cache
	m.loadedAt = time.Now()
	return m.cache
}

// Invalidate forces the next read to hit the database
func (m *ConfigManager) Invalidate() {
	m.mu.Lock()
	m.loadedAt = time.Time{}
	m.mu.Unlock()
}

func (m *ConfigManager) GetString(category, name string) string {
	return m.load()[category+"."+name]
}

func (m *ConfigManager) GetInt64(category, name string) int64 {
	return cast.ToInt64(m.GetString(category, name))
}

func (m *ConfigManager) GetBool(category, name string) bool {
	return cast.ToBool(m.GetString(category, name))
}

func (m *ConfigManager) GetFloat64(category, name string) float64 {
	return cast.ToFloat64(m.GetString(category, name))
}

// SaveSetting updates one settings row and drops the cache
func (m *ConfigManager) SaveSetting(category, name, value string) error {
	err := m.app.DB().Model(&domain.SysConfig{}).
		Where("type = ? and name = ?", category, name).
		Update("value", value).Error
	if err != nil {
		return err
	}
	m.Invalidate()
	return nil
}

// GetSettingsStringValue retrieves a string configuration value
func (a *Application) GetSettingsStringValue(category, key string) string {
	return a.configManager.GetString(category, key)
}

// GetSettingsInt64Value retrieves an int64 configuration value
func (a *Application) GetSettingsInt64Value(category, key string) int64 {
	return a.configManager.GetInt64(category, key)
}

// GetSettingsBoolValue retrieves a boolean configuration value
func (a *Application) GetSettingsBoolValue(category, key string) bool {
	return a.configManager.GetBool(category, key)
}

// GetSettingsFloat64Value retrieves a float configuration value
func (a *Application) GetSettingsFloat64Value(category, key string) float64 {
	return a.configManager.GetFloat64(category, key)
}

// checkout.Settings implementation

func (a *Application) DeliveryFee() int {
	if v := a.configManager.GetInt64("checkout", "delivery_fee"); v > 0 {
		return int(v)
	}
	return 100
}

func (a *Application) TransferDiscount() float64 {
	if v := a.configManager.GetFloat64("checkout", "transfer_discount"); v > 0 {
		return v
	}
	return 0.10
}

func (a *Application) Currency() string {
	if v := a.configManager.GetString("store", "currency"); v != "" {
		return v
	}
	return "Rs."
}

func (a *Application) StoreName() string {
	if v := a.configManager.GetString("store", "name"); v != "" {
		return v
	}
	return "Lahori Samosa"
}

func (a *Application) WhatsappURL() string {
	return a.configManager.GetString("store", "whatsapp_url")
}

func (a *Application) JazzCashAccount() (string, string) {
	return a.configManager.GetString("payment", "jazzcash_number"),
		a.configManager.GetString("payment", "jazzcash_title")
}

func (a *Application) RaastAccount() (string, string) {
	return a.configManager.GetString("payment", "raast_id"),
		a.configManager.GetString("payment", "raast_title")
}
