package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/angas/solarvalue-go/logging"
	"github.com/spf13/viper"
)

type AppConfigApi struct {
	Address string
	Port    int16
	// If not assigned, the server will serve embedded files.
	// If assigned, the server will serve files from the directory,
	// that must contain a "static" and "templates" directory.
	// This is useful for development.
	WwwDir *string `mapstructure:"www_dir"`
}

type AppConfigDatabase struct {
	Path string
	// How many days data should be stored in database before it gets purged
	DataRetentionDays *int `mapstructure:"data_retention_days"`
	// How many days daily backup files should be stored before they gets deleted
	BackupRetentionDays *int `mapstructure:"backup_retention_days"`
}

func (d AppConfigDatabase) GetDataRetentionDays() int {
	if d.DataRetentionDays == nil {
		return 365
	}
	return *d.DataRetentionDays
}

func (d AppConfigDatabase) GetBackupRetentionDays() int {
	if d.BackupRetentionDays == nil {
		return 90
	}
	return *d.BackupRetentionDays
}

type AppConfigEnergyPrice struct {
	// Page carrying the weekly day-ahead hourly price table
	Url   *string `mapstructure:"url"`
	RunAt string  `mapstructure:"run_at"`
}

func (p AppConfigEnergyPrice) GetUrl() string {
	if p.Url == nil {
		return "https://hupx.hu/en/market-data/dam/weekly-data"
	}
	return *p.Url
}

func (p AppConfigEnergyPrice) GetRunAt() string {
	if p.RunAt == "" {
		// Day-ahead results are published early afternoon CET
		return "15 14 * * *"
	}
	return p.RunAt
}

type AppConfigInverter struct {
	Host string
	// MQTT broker for the live telemetry feed, usually the device itself
	MqttPort  *int16  `mapstructure:"mqtt_port"`
	MqttTopic *string `mapstructure:"mqtt_topic"`
	RunAt     string  `mapstructure:"run_at"`
	// How many past days to backfill on each run (today is always fetched)
	BackfillDays *int `mapstructure:"backfill_days"`
}

func (i AppConfigInverter) GetMqttPort() int16 {
	if i.MqttPort == nil {
		return 1883
	}
	return *i.MqttPort
}

func (i AppConfigInverter) GetMqttTopic() string {
	if i.MqttTopic == nil {
		return "inverter/telemetry"
	}
	return *i.MqttTopic
}

func (i AppConfigInverter) GetRunAt() string {
	if i.RunAt == "" {
		return "@hourly"
	}
	return i.RunAt
}

func (i AppConfigInverter) GetBackfillDays() int {
	if i.BackfillDays == nil {
		return 1
	}
	return *i.BackfillDays
}

type AppConfigGui struct {
	// Timezone for displaying times in the GUI, default: UTC
	Timezone *string `mapstructure:"timezone"`
}

func (g AppConfigGui) GetTimezone() string {
	if g.Timezone == nil {
		return "UTC"
	}
	return *g.Timezone
}

type AppConfigLogging struct {
	// Min log level for database : "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	DbLevel *string `mapstructure:"db_level"`
	// Log attributes format: "TEXT", "JSON", default: "JSON"
	DbAttrsFormat *string `mapstructure:"db_attrs_format"`
	// Maximum number of log entries in the database, default: 10000
	DbMaxEntries *int `mapstructure:"db_max_entries"`
	// Min log level for console: "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	ConsoleLevel *string `mapstructure:"console_level"`
}

func (l AppConfigLogging) GetDbLevel() slog.Level {
	return logging.LevelFromString(l.DbLevel)
}

func (l AppConfigLogging) GetDbAttrsFormat() logging.LogAttrFormat {
	if l.DbAttrsFormat == nil {
		return "JSON"
	}
	if strings.EqualFold(*l.DbAttrsFormat, "text") {
		return "TEXT"
	}
	return "JSON"
}

func (l AppConfigLogging) GetDbMaxEntries() int {
	if l.DbMaxEntries == nil {
		return 10000
	}
	return *l.DbMaxEntries
}

func (l AppConfigLogging) GetConsoleLevel() slog.Level {
	return logging.LevelFromString(l.ConsoleLevel)
}

type AppConfig struct {
	Api         AppConfigApi
	Database    AppConfigDatabase
	EnergyPrice AppConfigEnergyPrice `mapstructure:"energy_price"`
	Inverter    AppConfigInverter
	Gui         AppConfigGui
	Logging     AppConfigLogging
}

func Load(path string) (*AppConfig, error) {
	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.AddConfigPath("config")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var c AppConfig

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("unable to read config file: %w", err)
	}

	if err := viper.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config file: %w", err)
	}

	return &c, nil
}
