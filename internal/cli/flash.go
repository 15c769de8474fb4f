package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tacogips/fsflash/internal/app"
	"github.com/tacogips/fsflash/internal/tool"
)

// newRunner returns the tool runner for a run. Tests replace it.
var newRunner = func(dryRun bool) tool.Runner {
	if dryRun {
		return &tool.DryRunner{}
	}
	return tool.ExecRunner{}
}

func runRoot(cmd *cobra.Command, f *rootFlags) error {
	cfg, err := f.loadConfig(cmd)
	if err != nil {
		return err
	}

	port := f.port
	if port == "" && f.selectPort && (f.flash || f.blufi) {
		port, err = promptForPort(serialPortPatterns)
		if err != nil {
			return app.NewValidationError("no serial port selected", err)
		}
	}

	opts := app.Options{
		Build:   f.build,
		Flash:   f.flash,
		Blufi:   f.blufi,
		Size:    f.size,
		WriteAt: f.writeAt,
		Output:  cfg.Output,
		Input:   f.input,
		Port:    port,
		Target:  cfg.Target,
		DryRun:  f.dryRun,
	}

	if f.dryRun {
		printWarning("Dry run - commands are printed, not executed")
	}

	orch := app.NewOrchestrator(cfg, newRunner(f.dryRun))
	orch.Info = printProgress
	orch.Warn = printWarning
	if err := orch.Run(cmd.Context(), opts); err != nil {
		return err
	}

	if f.dryRun {
		return nil
	}
	if f.build {
		if fi, err := os.Stat(opts.Output); err == nil {
			printSuccess(fmt.Sprintf("Built %s (%s)", opts.Output, formatBytes(fi.Size())))
		} else {
			printSuccess(fmt.Sprintf("Built %s", opts.Output))
		}
	}
	if f.flash {
		printSuccess(fmt.Sprintf("Flashed %s to %s", opts.Output, port))
	}
	if f.blufi {
		printSuccess(fmt.Sprintf("Flashed blufi firmware to %s", port))
	}
	return nil
}
