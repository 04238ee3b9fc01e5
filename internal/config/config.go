package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory.
const FileName = "geodraw.cfg.json"

// ViewConfig holds the initial map view.
type ViewConfig struct {
	CenterLon float64 `json:"centerLon" mapstructure:"centerLon"`
	CenterLat float64 `json:"centerLat" mapstructure:"centerLat"`
	Zoom      float64 `json:"zoom" mapstructure:"zoom"`
	MinZoom   float64 `json:"minZoom" mapstructure:"minZoom"`
	MaxZoom   float64 `json:"maxZoom" mapstructure:"maxZoom"`
}

// TileConfig holds base tile layer settings.
type TileConfig struct {
	Enabled   bool          `json:"enabled" mapstructure:"enabled"`
	URL       string        `json:"url" mapstructure:"url"`
	UserAgent string        `json:"userAgent" mapstructure:"userAgent"`
	Timeout   time.Duration `json:"timeout" mapstructure:"timeout"`
	CacheSize int           `json:"cacheSize" mapstructure:"cacheSize"`
}

// DrawConfig holds interaction settings.
type DrawConfig struct {
	Mode          string  `json:"mode" mapstructure:"mode"`
	SnapTolerance float64 `json:"snapTolerance" mapstructure:"snapTolerance"`
	HitTolerance  float64 `json:"hitTolerance" mapstructure:"hitTolerance"`
}

// Load reads configuration from the JSON file in configDir and sets default
// values. A missing file leaves the defaults in place.
func Load(configDir string) error {
	viper.SetDefault("title", "OpenLayers Map Example")
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logFile", "geodraw.log")

	viper.SetDefault("view.centerLon", 0.0)
	viper.SetDefault("view.centerLat", 0.0)
	viper.SetDefault("view.zoom", 2.0)
	viper.SetDefault("view.minZoom", 0.0)
	viper.SetDefault("view.maxZoom", 19.0)

	viper.SetDefault("tiles.enabled", true)
	viper.SetDefault("tiles.url", "https://tile.openstreetmap.org/{z}/{x}/{y}.png")
	viper.SetDefault("tiles.userAgent", "geodraw/1.0 (+https://www.openstreetmap.org/copyright)")
	viper.SetDefault("tiles.timeout", "10s")
	viper.SetDefault("tiles.cacheSize", 256)

	viper.SetDefault("draw.mode", "Point")
	viper.SetDefault("draw.snapTolerance", 4.0)
	viper.SetDefault("draw.hitTolerance", 4.0)

	viper.SetEnvPrefix("GEODRAW")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(FileName)
	viper.SetConfigType("json")
	if configDir != "" {
		viper.AddConfigPath(configDir)
	}
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// Used returns the config file that was read, or "" when running on defaults.
func Used() string {
	return viper.ConfigFileUsed()
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetViewConfig returns the initial view settings.
func GetViewConfig() ViewConfig {
	return ViewConfig{
		CenterLon: viper.GetFloat64("view.centerLon"),
		CenterLat: viper.GetFloat64("view.centerLat"),
		Zoom:      viper.GetFloat64("view.zoom"),
		MinZoom:   viper.GetFloat64("view.minZoom"),
		MaxZoom:   viper.GetFloat64("view.maxZoom"),
	}
}

// GetTileConfig returns the base layer settings.
func GetTileConfig() TileConfig {
	return TileConfig{
		Enabled:   viper.GetBool("tiles.enabled"),
		URL:       viper.GetString("tiles.url"),
		UserAgent: viper.GetString("tiles.userAgent"),
		Timeout:   viper.GetDuration("tiles.timeout"),
		CacheSize: viper.GetInt("tiles.cacheSize"),
	}
}

// GetDrawConfig returns the interaction settings.
func GetDrawConfig() DrawConfig {
	return DrawConfig{
		Mode:          viper.GetString("draw.mode"),
		SnapTolerance: viper.GetFloat64("draw.snapTolerance"),
		HitTolerance:  viper.GetFloat64("draw.hitTolerance"),
	}
}

// flagKeys maps command line flags to config keys.
var flagKeys = map[string]string{
	"log-level": "logLevel",
	"log-file":  "logFile",
}

// BindFlags lets flags set on the command line override the config file.
// Flags missing from fs are skipped.
func BindFlags(fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}
