package config

import (
	"github.com/tacogips/fsflash/internal/target"
	"github.com/tacogips/fsflash/internal/tool"
)

// Validate validates the configuration using the default loader.
func Validate(config *Config) error {
	return NewLoader().Validate(config)
}

// Validate validates the configuration.
func (l *FileLoader) Validate(config *Config) error {
	required := []struct {
		field string
		value string
	}{
		{"partition_table", config.PartitionTable},
		{"partition_label", config.PartitionLabel},
		{"output", config.Output},
		{"target", config.Target},
		{"staging.dir", config.Staging.Dir},
		{"staging.file", config.Staging.File},
		{"blufi.dir", config.Blufi.Dir},
	}
	for _, r := range required {
		if r.value == "" {
			return NewConfigErrorWithField(ConfigValidationFailed, "", r.field, "value is required", nil)
		}
	}

	if _, err := tool.ParseNumber(config.Blufi.Address); err != nil {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "blufi.address", "invalid address", err)
	}
	if _, err := tool.ParseToolset(config.Tools.Generator, config.Tools.Flasher); err != nil {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "tools", "invalid command", err)
	}

	builtin := target.DefaultTable()
	for chip, p := range config.Profiles {
		if chip == "" {
			return NewConfigErrorWithField(ConfigValidationFailed, "", "profiles", "empty chip identifier", nil)
		}
		if _, ok := builtin[chip]; ok {
			if p.Template == "" && p.Firmware == "" {
				return NewConfigErrorWithField(ConfigValidationFailed, "", "profiles."+chip,
					"profile must set template or firmware", nil)
			}
			continue
		}
		if p.Template == "" || p.Firmware == "" {
			return NewConfigErrorWithField(ConfigValidationFailed, "", "profiles."+chip,
				"new profile must set both template and firmware", nil)
		}
	}
	return nil
}
