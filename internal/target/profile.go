// Package target maps chip identifiers to the files each chip family needs:
// the default config template used to seed a build, and the Bluetooth
// provisioning (blufi) firmware image.
package target

import (
	"sort"
)

const (
	// ChipS3 is the primary supported family and the default target.
	ChipS3 = "esp32-s3"
	// ChipC3 is the alternate family. Unknown chips fall back to it.
	ChipC3 = "esp32-c3"

	// Default is the chip used when --target is not given.
	Default = ChipS3
	// Fallback is the profile selected for unknown chip identifiers.
	Fallback = ChipC3
)

// Profile holds the per-family defaults.
type Profile struct {
	// Chip is the identifier the profile is registered under.
	Chip string `json:"chip" yaml:"-"`
	// Template is the config template copied into the staging directory.
	Template string `json:"template" yaml:"template"`
	// Firmware is the blufi firmware file name.
	Firmware string `json:"firmware" yaml:"firmware"`
}

// Table is a chip identifier to profile mapping.
type Table map[string]Profile

// DefaultTable returns the built-in profiles.
func DefaultTable() Table {
	return Table{
		ChipS3: {
			Chip:     ChipS3,
			Template: "create_local_config/config.json.s3",
			Firmware: "blufi_app.bin",
		},
		ChipC3: {
			Chip:     ChipC3,
			Template: "create_local_config/config.json.c3",
			Firmware: "blufi_app_c3.bin",
		},
	}
}

// Merge returns a copy of t with the entries of overrides applied on top.
// Empty fields in an override keep the existing value.
func (t Table) Merge(overrides Table) Table {
	out := make(Table, len(t)+len(overrides))
	for chip, p := range t {
		out[chip] = p
	}
	for chip, o := range overrides {
		p := out[chip]
		p.Chip = chip
		if o.Template != "" {
			p.Template = o.Template
		}
		if o.Firmware != "" {
			p.Firmware = o.Firmware
		}
		out[chip] = p
	}
	return out
}

// Lookup returns the profile for chip. Unknown identifiers get the Fallback
// profile and known is false. The returned profile always carries the
// requested chip identifier.
func (t Table) Lookup(chip string) (p Profile, known bool) {
	p, known = t[chip]
	if !known {
		p = t[Fallback]
	}
	p.Chip = chip
	return p, known
}

// Chips returns the registered chip identifiers in sorted order.
func (t Table) Chips() []string {
	chips := make([]string, 0, len(t))
	for chip := range t {
		chips = append(chips, chip)
	}
	sort.Strings(chips)
	return chips
}
