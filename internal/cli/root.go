package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tacogips/fsflash/internal/app"
	"github.com/tacogips/fsflash/internal/build"
	"github.com/tacogips/fsflash/internal/debug"
)

// Global flags
var (
	globalNoColor bool
	globalQuiet   bool
	globalDebug   bool
)

// Execute runs the root command and exits with the code matching the
// returned error. This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		printError(err)
		os.Exit(ExitCode(err))
	}
}

// ExitCode maps an error to the process exit status: 2 for input
// validation errors, 1 for everything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var appErr *app.AppError
	if errors.As(err, &appErr) && appErr.Type == app.ValidationFailed {
		return 2
	}
	return 1
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "fsflash",
		Short: "Build and flash the custom filesystem partition",
		Long: `fsflash builds a filesystem image sized to the "custom" partition and
writes it, or the Bluetooth provisioning (blufi) firmware, to the device.

The image size and flash address come from the partition table unless
both --size and --write-at are given. Without --input the chip's default
config template is copied to local_config/config.json and built from there.

Operations run in the order build, flash, blufi and stop at the first
failure.

Examples:
  fsflash --build
  fsflash --build --flash -p /dev/ttyUSB0
  fsflash --build --flash --blufi -p /dev/ttyUSB0 --target esp32-c3
  fsflash --flash -p COM3 --write-at 0x9000 -o my_config.bin
  fsflash --build --flash --select-port --dry-run`,
		Args:          cobra.NoArgs,
		Version:       build.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if !cmd.Flags().Changed(FlagNoColor) && !stdoutIsTerminal() {
				globalNoColor = true
			}
			debug.SetDebug(globalDebug)
			debug.SetNoColor(globalNoColor)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, f)
		},
	}

	cmd.PersistentFlags().BoolVar(&globalNoColor, FlagNoColor, false, DescNoColor)
	cmd.PersistentFlags().BoolVarP(&globalQuiet, FlagQuiet, "q", false, DescQuiet)
	cmd.PersistentFlags().BoolVar(&globalDebug, FlagDebug, false, DescDebug)
	f.register(cmd)

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return app.NewValidationError(fmt.Sprintf("%v (see %s --help)", err, c.CommandPath()), nil)
	})

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newTargetsCmd(f))
	return cmd
}

// printError prints the single diagnostic line for a failed run. It is
// printed even with --quiet.
func printError(err error) {
	printErrorMsg(fmt.Sprintf("Error: %v", err))
}
