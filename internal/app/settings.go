package app

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/tilazone/tilazone/internal/domain"
	"github.com/tilazone/tilazone/internal/i18n"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var settingsBucket = []byte("settings")

// SettingsManager stores operator-editable storefront settings in the
// node-local data store: the per-language store contact block plus
// free-form category.key values read by background jobs.
type SettingsManager struct {
	db *bolt.DB
}

func NewSettingsManager(db *bolt.DB) (*SettingsManager, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(settingsBucket)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "settings: create bucket")
	}
	return &SettingsManager{db: db}, nil
}

func (m *SettingsManager) get(key string) []byte {
	var out []byte
	_ = m.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(settingsBucket).Get([]byte(key))
		if v != nil {
			out = make([]byte, len(v))
			copy(out, v)
		}
		return nil
	})
	return out
}

func (m *SettingsManager) put(key string, value []byte) error {
	err := m.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(settingsBucket).Put([]byte(key), value)
	})
	return errors.Wrap(err, "settings: write value")
}

// StoreInfo returns the store contact block for a language, falling
// back to the built-in defaults until an operator saves one.
func (m *SettingsManager) StoreInfo(lang string) domain.StoreInfo {
	raw := m.get("storeinfo." + lang)
	if raw == nil {
		return i18n.DefaultStoreInfo(lang)
	}
	var info domain.StoreInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		zap.L().Warn("corrupt store info setting, using defaults", zap.String("lang", lang), zap.Error(err))
		return i18n.DefaultStoreInfo(lang)
	}
	return info
}

func (m *SettingsManager) SaveStoreInfo(lang string, info domain.StoreInfo) error {
	raw, err := json.Marshal(info)
	if err != nil {
		return errors.Wrap(err, "settings: encode store info")
	}
	return m.put("storeinfo."+lang, raw)
}

// GetSettingsStringValue retrieves a string configuration value
func (m *SettingsManager) GetSettingsStringValue(category, key string) string {
	return cast.ToString(string(m.get(category + "." + key)))
}

// GetSettingsInt64Value retrieves an int64 configuration value
func (m *SettingsManager) GetSettingsInt64Value(category, key string) int64 {
	return cast.ToInt64(string(m.get(category + "." + key)))
}

// GetSettingsBoolValue retrieves a boolean configuration value
func (m *SettingsManager) GetSettingsBoolValue(category, key string) bool {
	return cast.ToBool(string(m.get(category + "." + key)))
}

// SetSettingsValue stores a configuration value as a string.
func (m *SettingsManager) SetSettingsValue(category, key string, value interface{}) error {
	return m.put(category+"."+key, []byte(cast.ToString(value)))
}

func (a *Application) StoreInfo(lang string) domain.StoreInfo {
	return a.settings.StoreInfo(lang)
}

func (a *Application) SaveStoreInfo(lang string, info domain.StoreInfo) error {
	return a.settings.SaveStoreInfo(lang, info)
}

func (a *Application) GetSettingsStringValue(category, key string) string {
	return a.settings.GetSettingsStringValue(category, key)
}

func (a *Application) GetSettingsInt64Value(category, key string) int64 {
	return a.settings.GetSettingsInt64Value(category, key)
}

func (a *Application) GetSettingsBoolValue(category, key string) bool {
	return a.settings.GetSettingsBoolValue(category, key)
}
