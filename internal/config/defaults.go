package config

import (
	"github.com/tacogips/fsflash/internal/partition"
	"github.com/tacogips/fsflash/internal/target"
	"github.com/tacogips/fsflash/internal/tool"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "fsflash.yaml"

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		PartitionTable: "partitions/v1/16m.csv",
		PartitionLabel: partition.DefaultLabel,
		Output:         "config.bin",
		Target:         target.Default,
		Staging: StagingConfig{
			Dir:  "local_config",
			File: "config.json",
		},
		Tools: ToolsConfig{
			Generator: tool.DefaultGenerator,
			Flasher:   tool.DefaultFlasher,
		},
		Blufi: BlufiConfig{
			Address: "0x5B0000",
			Dir:     "third_party/blufi_app/bin",
		},
	}
}
