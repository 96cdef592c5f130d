// Package config holds the user-editable settings persisted to a YAML
// file in the user scope. Environment variables are read-only overrides
// applied at load time.
//
// config_version: bump when the structure changes in a
// backward-incompatible way. Unknown fields in the file are ignored on
// unmarshal.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// EditorConfig tunes gesture and overlay behavior.
type EditorConfig struct {
	SnapEnabled   bool    `yaml:"snap_enabled"`
	SnapThreshold float64 `yaml:"snap_threshold"`
	AllowOutside  bool    `yaml:"allow_outside"`
	ShowThirds    bool    `yaml:"show_thirds"`
	GuideColor    string  `yaml:"guide_color"`
	AspectPreset  string  `yaml:"aspect_preset"`
	CustomAspect  float64 `yaml:"custom_aspect"`
}

// ExportConfig sets the default output encoding.
type ExportConfig struct {
	Format  string `yaml:"format"`
	Quality int    `yaml:"quality"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type Config struct {
	ConfigVersion int           `yaml:"config_version"`
	Editor        EditorConfig  `yaml:"editor"`
	Export        ExportConfig  `yaml:"export"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() Config {
	return Config{
		ConfigVersion: 1,
		Editor: EditorConfig{
			SnapEnabled:   true,
			SnapThreshold: 8,
			AllowOutside:  false,
			ShowThirds:    true,
			GuideColor:    "#ffffff",
			AspectPreset:  "free",
		},
		Export:  ExportConfig{Format: "image/png", Quality: 90},
		Logging: LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvSnapEnabled   = "CROPD_SNAP_ENABLED"
	EnvSnapThreshold = "CROPD_SNAP_THRESHOLD"
	EnvAllowOutside  = "CROPD_ALLOW_OUTSIDE"
	EnvGuideColor    = "CROPD_GUIDE_COLOR"
	EnvExportFormat  = "CROPD_EXPORT_FORMAT"
	EnvExportQuality = "CROPD_EXPORT_QUALITY"
	EnvLogLevel      = "CROPD_LOG_LEVEL"
	EnvLogFormat     = "CROPD_LOG_FORMAT"
	EnvLogSource     = "CROPD_LOG_SOURCE"
	EnvLogFile       = "CROPD_LOG_FILE"
)

// Path returns the per-user config file path.
func Path() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "cropd")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "cropd")
	default:
		base = filepath.Join(os.Getenv("HOME"), ".config", "cropd")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and
// merges environment overrides.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Defaults(), err
	}
	return LoadFile(path)
}

// LoadFile is Load against an explicit path. A missing file is not an
// error; the defaults plus env overrides are returned.
func LoadFile(path string) (Config, error) {
	cfg := Defaults()
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the user config YAML, creating the directory if needed.
func Save(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *Config, src *Config) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	// booleans: copy directly from the file so user preferences persist
	dst.Editor.SnapEnabled = src.Editor.SnapEnabled
	dst.Editor.AllowOutside = src.Editor.AllowOutside
	dst.Editor.ShowThirds = src.Editor.ShowThirds
	if src.Editor.SnapThreshold > 0 {
		dst.Editor.SnapThreshold = src.Editor.SnapThreshold
	}
	if strings.TrimSpace(src.Editor.GuideColor) != "" {
		dst.Editor.GuideColor = strings.TrimSpace(src.Editor.GuideColor)
	}
	if strings.TrimSpace(src.Editor.AspectPreset) != "" {
		dst.Editor.AspectPreset = strings.ToLower(strings.TrimSpace(src.Editor.AspectPreset))
	}
	if src.Editor.CustomAspect > 0 {
		dst.Editor.CustomAspect = src.Editor.CustomAspect
	}
	if strings.TrimSpace(src.Export.Format) != "" {
		dst.Export.Format = strings.ToLower(strings.TrimSpace(src.Export.Format))
	}
	if src.Export.Quality != 0 {
		dst.Export.Quality = src.Export.Quality
	}
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvSnapEnabled)); v != "" {
		cfg.Editor.SnapEnabled = envBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvSnapThreshold)); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil && n > 0 {
			cfg.Editor.SnapThreshold = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvAllowOutside)); v != "" {
		cfg.Editor.AllowOutside = envBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvGuideColor)); v != "" {
		cfg.Editor.GuideColor = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvExportFormat)); v != "" {
		cfg.Export.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvExportQuality)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Export.Quality = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = envBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

func envBool(v string) bool {
	lv := strings.ToLower(v)
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}
