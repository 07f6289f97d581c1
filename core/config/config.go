package config

import (
	"reflect"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/darrenhoch/DualogOutlook/core/database"
	"github.com/darrenhoch/DualogOutlook/core/logger"
	"github.com/darrenhoch/DualogOutlook/core/reconcile"
	"github.com/darrenhoch/DualogOutlook/core/report"
	"github.com/darrenhoch/DualogOutlook/core/storage"
	"github.com/darrenhoch/DualogOutlook/feature/mailbox"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Mailbox holds configuration for the live IMAP store.
	Mailbox mailbox.Config `mapstructure:"mailbox"`
	// Archive holds configuration for the archive container database.
	Archive database.Config `mapstructure:"archive"`
	// Reconcile holds configuration for the reconciliation engine.
	Reconcile reconcile.Config `mapstructure:"reconcile"`
	// Report holds configuration for report output.
	Report report.Config `mapstructure:"report"`
	// Storage holds configuration for the report mirror bucket.
	Storage storage.Config `mapstructure:"storage"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if the file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. MAILBOX_SERVER -> mailbox.server)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set the default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
