package app

import (
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/tilazone/tilazone/config"
	"github.com/tilazone/tilazone/internal/cart"
	"github.com/tilazone/tilazone/internal/catalog"
	"github.com/tilazone/tilazone/internal/checkout"
	"github.com/tilazone/tilazone/internal/domain"
	"github.com/tilazone/tilazone/internal/orders"
)

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// CatalogProvider provides the product catalog repository
type CatalogProvider interface {
	Catalog() catalog.Repository
}

// CartProvider provides the session cart manager
type CartProvider interface {
	Carts() *cart.Manager
}

// OrderStoreProvider provides the local order journal
type OrderStoreProvider interface {
	Orders() orders.Store
}

// CheckoutProvider provides the order submitter
type CheckoutProvider interface {
	Submitter() *checkout.Submitter
}

// SettingsProvider provides storefront settings access
type SettingsProvider interface {
	StoreInfo(lang string) domain.StoreInfo
	SaveStoreInfo(lang string, info domain.StoreInfo) error
	GetSettingsStringValue(category, key string) string
	GetSettingsInt64Value(category, key string) int64
	GetSettingsBoolValue(category, key string) bool
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// DBProvider provides database access when the postgres backend is
// configured; DB returns nil on bolt-only deployments.
type DBProvider interface {
	DB() *gorm.DB
}

// AppContext combines all provider interfaces for full application
// context. Handlers should depend on the narrowest provider they need.
type AppContext interface {
	ConfigProvider
	CatalogProvider
	CartProvider
	OrderStoreProvider
	CheckoutProvider
	SettingsProvider
	SchedulerProvider
	DBProvider
}
