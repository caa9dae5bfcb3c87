package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// SetDefaults registers Defaults() on v so unset keys resolve.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("vim.enabled", d.Vim.Enabled)
	v.SetDefault("vim.show_mode_indicator", d.Vim.ShowModeIndicator)
	v.SetDefault("vim.auto_indent", d.Vim.AutoIndent)
	v.SetDefault("vim.expand_tab", d.Vim.ExpandTab)
	v.SetDefault("vim.tab_width", d.Vim.TabWidth)
	v.SetDefault("vim.smart_case", d.Vim.SmartCase)
	v.SetDefault("vim.lang", d.Vim.Lang)
	v.SetDefault("vim.idle_timeout", d.Vim.IdleTimeout)
	v.SetDefault("vim.clipboard", d.Vim.Clipboard)
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("keys.quit", d.Keys.Quit)
	v.SetDefault("keys.save", d.Keys.Save)
	v.SetDefault("keys.help", d.Keys.Help)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("debug", false)
	v.SetDefault("log_path", "debug.log")
}

// Decode unmarshals v into a validated Config.
func Decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the YAML file at path layered over the defaults.
func Load(path string) (Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return Decode(v)
}
