package app

import (
	"fmt"

	"github.com/tacogips/fsflash/internal/debug"
	"github.com/tacogips/fsflash/internal/partition"
	"github.com/tacogips/fsflash/internal/tool"
)

// Params is the effective image size and flash write address.
type Params struct {
	Size    uint64 `json:"size"`
	WriteAt uint64 `json:"write_at"`
	// FromTable is set when at least one value came from the partition table.
	FromTable bool `json:"from_table"`
}

// ResolveParams returns the size and write address for a run. Explicit
// values win. When either is missing the table at tablePath is consulted
// once and both missing values are taken from that single entry.
func ResolveParams(r partition.Reader, tablePath, label, size, writeAt string) (Params, error) {
	var p Params
	var err error

	if size != "" {
		if p.Size, err = tool.ParseNumber(size); err != nil {
			return Params{}, NewValidationError(fmt.Sprintf("invalid --size %q", size), err)
		}
	}
	if writeAt != "" {
		if p.WriteAt, err = tool.ParseNumber(writeAt); err != nil {
			return Params{}, NewValidationError(fmt.Sprintf("invalid --write-at %q", writeAt), err)
		}
	}
	if size != "" && writeAt != "" {
		debug.Debug("[app] Using explicit size and write address")
		return p, nil
	}

	debug.Debug("[app] Looking up %q in %s", label, tablePath)
	e, err := r.Lookup(tablePath, label)
	if err != nil {
		return Params{}, NewTableParseError("error parsing partition table", err)
	}
	if size == "" {
		p.Size = e.Size
	}
	if writeAt == "" {
		p.WriteAt = e.Offset
	}
	p.FromTable = true
	return p, nil
}
