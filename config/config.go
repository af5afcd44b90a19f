package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

// SysConfig holds base system settings.
type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

// WebConfig holds HTTP server settings.
type WebConfig struct {
	Host   string `yaml:"host" json:"host"`
	Port   int    `yaml:"port" json:"port"`
	Secret string `yaml:"secret" json:"secret"`
}

// DBConfig holds database settings. Type selects the catalog slot
// backend: "bolt" keeps everything in a local file under workdir,
// "postgres" stores the slot in a key-value table.
type DBConfig struct {
	Type   string `yaml:"type" json:"type"`
	Host   string `yaml:"host" json:"host"`
	Port   int    `yaml:"port" json:"port"`
	Name   string `yaml:"name" json:"name"`
	User   string `yaml:"user" json:"user"`
	Passwd string `yaml:"passwd" json:"passwd"`
	Debug  bool   `yaml:"debug" json:"debug"`
}

// StorefrontConfig holds storefront behaviour settings.
type StorefrontConfig struct {
	// OrderEndpoint is the external order intake sink. Checkout posts the
	// order payload there and only inspects the response status.
	OrderEndpoint string `yaml:"order_endpoint" json:"order_endpoint"`
	// CartTTLMinutes is the idle lifetime of a session cart before the
	// eviction job discards it.
	CartTTLMinutes int `yaml:"cart_ttl_minutes" json:"cart_ttl_minutes"`
	// MediaWorkers caps concurrent media upload conversions.
	MediaWorkers int `yaml:"media_workers" json:"media_workers"`
}

// SmtpConfig holds optional order notification mail settings. Mail is
// disabled when Host is empty.
type SmtpConfig struct {
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Sender   string `yaml:"sender" json:"sender"`
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System     SysConfig        `yaml:"system" json:"system"`
	Web        WebConfig        `yaml:"web" json:"web"`
	Database   DBConfig         `yaml:"database" json:"database"`
	Storefront StorefrontConfig `yaml:"storefront" json:"storefront"`
	Smtp       SmtpConfig       `yaml:"smtp" json:"smtp"`
	Logger     LogConfig        `yaml:"logger" json:"logger"`
}

func (c *AppConfig) GetLogDir() string {
	return filepath.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return filepath.Join(c.System.Workdir, "data")
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "Tilazone",
		Location: "Africa/Casablanca",
		Workdir:  "/var/tilazone",
		Debug:    true,
	},
	Web: WebConfig{
		Host:   "0.0.0.0",
		Port:   1816,
		Secret: "",
	},
	Database: DBConfig{
		Type:   "bolt",
		Host:   "127.0.0.1",
		Port:   5432,
		Name:   "tilazone",
		User:   "postgres",
		Passwd: "",
		Debug:  false,
	},
	Storefront: StorefrontConfig{
		OrderEndpoint:  "https://script.google.com/macros/s/AKfycbwi_j4j2AF09x05iz1ZRp_k1m5pmUzbcK9czxb3Nzo1B2XpbKI8C1xQEvThUrVys-s/exec",
		CartTTLMinutes: 120,
		MediaWorkers:   4,
	},
	Smtp: SmtpConfig{
		Host:   "",
		Port:   587,
		Sender: "",
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/tilazone/tilazone.log",
	},
}

func setEnvValue(name string, val *string) {
	if evalue := os.Getenv(name); evalue != "" {
		*val = evalue
	}
}

func setEnvIntValue(name string, val *int) {
	if evalue := os.Getenv(name); evalue != "" {
		*val = cast.ToInt(evalue)
	}
}

func setEnvBoolValue(name string, val *bool) {
	if evalue := os.Getenv(name); evalue != "" {
		*val = cast.ToBool(evalue)
	}
}

// LoadConfig reads configuration from file and applies TILAZONE_*
// environment overrides. A missing or empty path yields the defaults.
func LoadConfig(cfile string) *AppConfig {
	cfg := DefaultAppConfig
	if cfile != "" {
		if _, err := os.Stat(cfile); err == nil {
			data, err := os.ReadFile(cfile)
			if err != nil {
				panic(err)
			}
			cfg = new(AppConfig)
			if err := yaml.Unmarshal(data, cfg); err != nil {
				panic(fmt.Errorf("config %s parse error: %v", cfile, err))
			}
		}
	}

	setEnvValue("TILAZONE_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvBoolValue("TILAZONE_SYSTEM_DEBUG", &cfg.System.Debug)

	setEnvValue("TILAZONE_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("TILAZONE_WEB_PORT", &cfg.Web.Port)
	setEnvValue("TILAZONE_WEB_SECRET", &cfg.Web.Secret)

	setEnvValue("TILAZONE_DB_TYPE", &cfg.Database.Type)
	setEnvValue("TILAZONE_DB_HOST", &cfg.Database.Host)
	setEnvIntValue("TILAZONE_DB_PORT", &cfg.Database.Port)
	setEnvValue("TILAZONE_DB_NAME", &cfg.Database.Name)
	setEnvValue("TILAZONE_DB_USER", &cfg.Database.User)
	setEnvValue("TILAZONE_DB_PWD", &cfg.Database.Passwd)

	setEnvValue("TILAZONE_ORDER_ENDPOINT", &cfg.Storefront.OrderEndpoint)
	setEnvIntValue("TILAZONE_CART_TTL_MINUTES", &cfg.Storefront.CartTTLMinutes)

	setEnvValue("TILAZONE_SMTP_HOST", &cfg.Smtp.Host)
	setEnvIntValue("TILAZONE_SMTP_PORT", &cfg.Smtp.Port)
	setEnvValue("TILAZONE_SMTP_SENDER", &cfg.Smtp.Sender)
	setEnvValue("TILAZONE_SMTP_USERNAME", &cfg.Smtp.Username)
	setEnvValue("TILAZONE_SMTP_PASSWORD", &cfg.Smtp.Password)

	return cfg
}
