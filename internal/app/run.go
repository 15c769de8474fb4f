package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tacogips/fsflash/internal/config"
	"github.com/tacogips/fsflash/internal/debug"
	"github.com/tacogips/fsflash/internal/partition"
	"github.com/tacogips/fsflash/internal/target"
	"github.com/tacogips/fsflash/internal/tool"
)

// Options is the caller's request for one invocation. It is built once by
// the CLI and not modified afterwards.
type Options struct {
	// Build generates the filesystem image.
	Build bool
	// Flash writes the image to the custom partition.
	Flash bool
	// Blufi writes the provisioning firmware.
	Blufi bool
	// Size and WriteAt are textual overrides; empty means use the table.
	Size    string
	WriteAt string
	// Output is the image path. Empty means the configured default.
	Output string
	// Input is the build input directory. Empty means seed the staging
	// directory from the target's config template.
	Input string
	// Port is the serial port for flashing.
	Port string
	// Target is the chip identifier. Empty means the configured default.
	Target string
	// DryRun skips seeding the staging directory. Pair it with a
	// tool.DryRunner to print commands without running them.
	DryRun bool
}

// Orchestrator runs the requested operations in the fixed order build,
// flash, blufi. The first failure stops the run.
type Orchestrator struct {
	Config *config.Config
	Reader partition.Reader
	Runner tool.Runner
	// Info and Warn receive progress lines for the user. Either may be nil.
	Info func(msg string)
	Warn func(msg string)
}

// NewOrchestrator creates an Orchestrator reading partition tables from disk.
func NewOrchestrator(cfg *config.Config, runner tool.Runner) *Orchestrator {
	return &Orchestrator{
		Config: cfg,
		Reader: partition.FileReader{},
		Runner: runner,
	}
}

// run holds the values resolved for one invocation.
type run struct {
	opts    Options
	tools   tool.Toolset
	profile target.Profile
	params  Params
}

// Run executes opts.
func (o *Orchestrator) Run(ctx context.Context, opts Options) error {
	debug.DebugSection("[app] Run")
	cfg := o.Config
	if opts.Output == "" {
		opts.Output = cfg.Output
	}
	if opts.Target == "" {
		opts.Target = cfg.Target
	}
	debug.DebugJSON("[app] Options", opts)

	if !opts.Build && !opts.Flash && !opts.Blufi {
		o.warn("Nothing to do: use --build, --flash or --blufi")
		return nil
	}
	if opts.Flash {
		if err := requirePort(opts, "--flash"); err != nil {
			return err
		}
	}
	if opts.Blufi {
		if err := requirePort(opts, "--blufi"); err != nil {
			return err
		}
	}

	tools, err := tool.ParseToolset(cfg.Tools.Generator, cfg.Tools.Flasher)
	if err != nil {
		return NewValidationError("invalid tool configuration", err)
	}

	profile, known := cfg.TargetTable().Lookup(opts.Target)
	if !known {
		o.warn(fmt.Sprintf("Unknown target %s, using the %s profile", opts.Target, target.Fallback))
	}
	debug.DebugJSON("[app] Profile", profile)

	r := &run{opts: opts, tools: tools, profile: profile}
	if opts.Build || opts.Flash {
		r.params, err = ResolveParams(o.Reader, cfg.PartitionTable, cfg.PartitionLabel, opts.Size, opts.WriteAt)
		if err != nil {
			return err
		}
		debug.DebugValue("[app] Size", tool.Hex(r.params.Size))
		debug.DebugValue("[app] WriteAt", tool.Hex(r.params.WriteAt))
	}

	if opts.Build {
		if err := o.build(ctx, r); err != nil {
			return err
		}
	}
	if opts.Flash {
		if err := o.flash(ctx, r); err != nil {
			return err
		}
	}
	if opts.Blufi {
		if err := o.flashBlufi(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

func (o *Orchestrator) build(ctx context.Context, r *run) error {
	debug.DebugSection("[app] build")
	input := r.opts.Input
	staged := input == ""
	if staged {
		input = o.Config.Staging.Dir
		if r.opts.DryRun {
			o.info(fmt.Sprintf("Would copy %s to %s", r.profile.Template,
				filepath.Join(input, o.Config.Staging.File)))
		} else {
			dir, err := target.Bootstrap(r.profile, input, o.Config.Staging.File)
			if err != nil {
				return NewBootstrapError("failed to prepare default input directory", err)
			}
			input = dir
		}
	}

	if !(staged && r.opts.DryRun) {
		fi, err := os.Stat(input)
		if err != nil || !fi.IsDir() {
			return NewPreconditionError(fmt.Sprintf("directory '%s' does not exist", input), err)
		}
	}

	cmd := r.tools.Build(r.params.Size, input, r.opts.Output)
	o.info(fmt.Sprintf("Running build command for target %s: %s", r.opts.Target, cmd))
	if err := o.Runner.Run(ctx, cmd); err != nil {
		return NewToolError("failed to build bin file", err)
	}
	return nil
}

func (o *Orchestrator) flash(ctx context.Context, r *run) error {
	debug.DebugSection("[app] flash")
	if err := requirePort(r.opts, "--flash"); err != nil {
		return err
	}
	cmd := r.tools.Flash("flash", r.opts.Target, r.opts.Port, r.params.WriteAt, r.opts.Output)
	o.info(fmt.Sprintf("Running flash command for target %s: %s", r.opts.Target, cmd))
	if err := o.Runner.Run(ctx, cmd); err != nil {
		return NewToolError("failed to flash bin file", err)
	}
	return nil
}

func (o *Orchestrator) flashBlufi(ctx context.Context, r *run) error {
	debug.DebugSection("[app] blufi")
	if err := requirePort(r.opts, "--blufi"); err != nil {
		return err
	}
	addr, err := tool.ParseNumber(o.Config.Blufi.Address)
	if err != nil {
		return NewValidationError("invalid blufi address", err)
	}
	firmware := filepath.Join(o.Config.Blufi.Dir, r.profile.Firmware)
	cmd := r.tools.Flash("blufi", r.opts.Target, r.opts.Port, addr, firmware)
	o.info(fmt.Sprintf("Running blufi flash command: %s", cmd))
	if err := o.Runner.Run(ctx, cmd); err != nil {
		return NewToolError("failed to flash blufi firmware", err)
	}
	return nil
}

func requirePort(opts Options, flag string) error {
	if opts.Port == "" {
		return NewValidationError(flag+" requires -p/--port to specify the serial port", nil)
	}
	return nil
}

func (o *Orchestrator) info(msg string) {
	debug.Debug("[app] %s", msg)
	if o.Info != nil {
		o.Info(msg)
	}
}

func (o *Orchestrator) warn(msg string) {
	debug.Debug("[app] %s", msg)
	if o.Warn != nil {
		o.Warn(msg)
	}
}
