package config

import "github.com/tacogips/fsflash/internal/target"

// Config represents the fsflash configuration file (fsflash.yaml).
type Config struct {
	// PartitionTable is the partition table CSV used when --size or
	// --write-at is omitted.
	PartitionTable string `yaml:"partition_table" json:"partition_table"`
	// PartitionLabel is the partition name looked up in the table.
	PartitionLabel string `yaml:"partition_label" json:"partition_label"`
	// Output is the default image path.
	Output string `yaml:"output" json:"output"`
	// Target is the default chip identifier.
	Target string `yaml:"target" json:"target"`
	// Staging configures the directory seeded from the chip template when
	// no input directory is given.
	Staging StagingConfig `yaml:"staging" json:"staging"`
	// Tools configures the external commands.
	Tools ToolsConfig `yaml:"tools" json:"tools"`
	// Blufi configures the provisioning firmware flash.
	Blufi BlufiConfig `yaml:"blufi" json:"blufi"`
	// Profiles adds or overrides chip profiles.
	Profiles target.Table `yaml:"profiles,omitempty" json:"profiles,omitempty"`
}

// StagingConfig represents the bootstrap input directory settings.
type StagingConfig struct {
	// Dir is the staging directory.
	Dir string `yaml:"dir" json:"dir"`
	// File is the name the template is copied to.
	File string `yaml:"file" json:"file"`
}

// ToolsConfig holds the external tool command lines. They are split with
// shell quoting rules.
type ToolsConfig struct {
	Generator string `yaml:"generator" json:"generator"`
	Flasher   string `yaml:"flasher" json:"flasher"`
}

// BlufiConfig represents provisioning firmware settings.
type BlufiConfig struct {
	// Address is the flash address, hex or decimal.
	Address string `yaml:"address" json:"address"`
	// Dir is the directory holding the per-chip firmware images.
	Dir string `yaml:"dir" json:"dir"`
}

// TargetTable returns the built-in profiles with the configured overrides
// applied.
func (c *Config) TargetTable() target.Table {
	return target.DefaultTable().Merge(c.Profiles)
}
