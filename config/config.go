/*
Package config loads service configuration with cleanenv.

PURPOSE:
  One place for everything tunable: HTTP server settings, the database
  path, and the business constants (hourly rate, 6-hour bonus, tolerance,
  shift maximum, surcharge options). The business constants are converted
  into shift.Rules and passed explicitly to the calculator; nothing reads
  them as globals.

LOADING:
  CONFIG_PATH set   -> read that yaml file, env vars override
  CONFIG_PATH unset -> env vars with defaults only

SEE ALSO:
  - shift/payment.go: Rules, the injected form of the business block
  - cmd/server/main.go: calls MustLoad at startup
*/
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/shopspring/decimal"

	"github.com/turno/shift-engine/shift"
)

// Config is the full service configuration.
type Config struct {
	Env         string `yaml:"env" env:"APP_ENV" env-default:"local"`
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH" env-default:"shifts.db"`
	HTTPServer  `yaml:"http_server"`
	Business    `yaml:"business"`
}

// HTTPServer holds server settings.
type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	Timeout     time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"15s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// Business holds the pay-calculation constants.
type Business struct {
	RatePerHour      int64   `yaml:"rate_per_hour" env:"RATE_PER_HOUR" env-default:"15500"`
	Bonus6h          int64   `yaml:"bonus_6h" env:"BONUS_6H" env-default:"100000"`
	ToleranceMinutes int     `yaml:"tolerance_minutes" env:"TOLERANCE_MINUTES" env-default:"1"`
	MaxShiftHours    int     `yaml:"max_shift_hours" env:"MAX_SHIFT_HOURS" env-default:"16"`
	Surcharges       []int64 `yaml:"surcharges" env:"SURCHARGES" env-default:"0,5000,10000,15000,20000,25000,30000,35000,40000"`
}

// MustLoad loads configuration or exits. CONFIG_PATH selects an optional
// yaml file; environment variables always apply.
func MustLoad() *Config {
	var cfg Config

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			log.Fatalf("config file %s does not exist", configPath)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			log.Fatalf("cannot read config: %s", err)
		}
		return &cfg
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("cannot read config from environment: %s", err)
	}
	return &cfg
}

// Rules converts the business block into the calculator's parameter struct.
func (c *Config) Rules() shift.Rules {
	surcharges := make([]decimal.Decimal, len(c.Surcharges))
	for i, v := range c.Surcharges {
		surcharges[i] = decimal.NewFromInt(v)
	}
	return shift.Rules{
		RatePerHour:      decimal.NewFromInt(c.RatePerHour),
		Bonus6h:          decimal.NewFromInt(c.Bonus6h),
		ToleranceMinutes: c.ToleranceMinutes,
		MaxShiftHours:    c.MaxShiftHours,
		Surcharges:       surcharges,
	}
}
