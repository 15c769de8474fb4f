package cli

import (
	"github.com/spf13/cobra"

	"github.com/tacogips/fsflash/internal/config"
)

// Common flag names and descriptions
const (
	FlagPort           = "port"
	FlagBuild          = "build"
	FlagFlash          = "flash"
	FlagBlufi          = "blufi"
	FlagOutput         = "output"
	FlagInput          = "input"
	FlagSize           = "size"
	FlagWriteAt        = "write-at"
	FlagTarget         = "target"
	FlagPartitionTable = "partition-table"
	FlagConfig         = "config"
	FlagDryRun         = "dry-run"
	FlagSelectPort     = "select-port"
	FlagNoColor        = "no-color"
	FlagQuiet          = "quiet"
	FlagDebug          = "debug"

	DescPort           = "Serial port (e.g. /dev/ttyUSB0), required for --flash and --blufi"
	DescBuild          = "Build the filesystem image"
	DescFlash          = "Flash the image to the custom partition"
	DescBlufi          = "Flash the blufi firmware for Bluetooth provisioning"
	DescOutput         = "Output path of the image"
	DescInput          = "Input directory for the build (default: seeded from the target's config template)"
	DescSize           = "Image size, hex or decimal (default: from the partition table)"
	DescWriteAt        = "Flash write address, hex or decimal (default: from the partition table)"
	DescTarget         = "Target chip (e.g. esp32-s3, esp32-c3)"
	DescPartitionTable = "Partition table used when --size or --write-at is omitted"
	DescConfig         = "Path to config file"
	DescDryRun         = "Show commands without running them"
	DescSelectPort     = "Choose the serial port interactively when --port is not given"
	DescNoColor        = "Disable colored output"
	DescQuiet          = "Suppress non-error output"
	DescDebug          = "Enable debug logging"
)

// rootFlags holds the values bound to the root command's flags.
type rootFlags struct {
	port           string
	build          bool
	flash          bool
	blufi          bool
	output         string
	input          string
	size           string
	writeAt        string
	target         string
	partitionTable string
	configPath     string
	dryRun         bool
	selectPort     bool
}

func (f *rootFlags) register(cmd *cobra.Command) {
	def := config.DefaultConfig()

	flags := cmd.Flags()
	flags.StringVarP(&f.port, FlagPort, "p", "", DescPort)
	flags.BoolVar(&f.build, FlagBuild, false, DescBuild)
	flags.BoolVar(&f.flash, FlagFlash, false, DescFlash)
	flags.BoolVar(&f.blufi, FlagBlufi, false, DescBlufi)
	flags.StringVarP(&f.output, FlagOutput, "o", def.Output, DescOutput)
	flags.StringVarP(&f.input, FlagInput, "i", "", DescInput)
	flags.StringVar(&f.size, FlagSize, "", DescSize)
	flags.StringVar(&f.writeAt, FlagWriteAt, "", DescWriteAt)
	flags.BoolVar(&f.dryRun, FlagDryRun, false, DescDryRun)
	flags.BoolVar(&f.selectPort, FlagSelectPort, false, DescSelectPort)

	// Shared with the targets subcommand.
	persistent := cmd.PersistentFlags()
	persistent.StringVar(&f.target, FlagTarget, def.Target, DescTarget)
	persistent.StringVar(&f.partitionTable, FlagPartitionTable, def.PartitionTable, DescPartitionTable)
	persistent.StringVarP(&f.configPath, FlagConfig, "c", config.DefaultPath, DescConfig)
}

// loadConfig reads the config file and applies the flags the user set
// explicitly. A missing file is only an error when --config was given.
func (f *rootFlags) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	loader := config.NewLoader()
	var cfg *config.Config
	var err error
	if cmd.Flags().Changed(FlagConfig) {
		cfg, err = loader.Load(f.configPath)
	} else {
		cfg, err = loader.LoadOrDefault(f.configPath)
	}
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed(FlagOutput) {
		cfg.Output = f.output
	}
	if changed(FlagTarget) {
		cfg.Target = f.target
	}
	if changed(FlagPartitionTable) {
		cfg.PartitionTable = f.partitionTable
	}
	return cfg, loader.Validate(cfg)
}
