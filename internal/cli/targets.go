package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newTargetsCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List the known target chips",
		Long: `List the chip profiles: the config template copied for --build and the
blufi firmware written by --blufi. Profiles from the config file are
included. Unknown chips use the esp32-c3 profile.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.loadConfig(cmd)
			if err != nil {
				return err
			}
			table := cfg.TargetTable()
			for _, chip := range table.Chips() {
				p := table[chip]
				name := chip
				if chip == cfg.Target {
					name += " (default)"
				}
				printInfo(name)
				printDetail(fmt.Sprintf("template: %s", p.Template))
				printDetail(fmt.Sprintf("firmware: %s", filepath.Join(cfg.Blufi.Dir, p.Firmware)))
			}
			return nil
		},
	}
}
