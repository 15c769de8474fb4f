package tool

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
)

// Default command prefixes. The image generator receives
// "<size> <input dir> <output>" and the flasher receives
// "--chip <chip> [-p <port>] write_flash <address> <image>".
const (
	DefaultGenerator = "python create_local_config/spiffsgen.py"
	DefaultFlasher   = "python -m esptool"
)

// Toolset holds the command prefixes of both external tools.
type Toolset struct {
	Generator []string
	Flasher   []string
}

// ParseToolset splits the configured command lines using shell quoting
// rules.
func ParseToolset(generator, flasher string) (Toolset, error) {
	gen, err := shellquote.Split(generator)
	if err != nil {
		return Toolset{}, fmt.Errorf("invalid generator command %q: %w", generator, err)
	}
	fl, err := shellquote.Split(flasher)
	if err != nil {
		return Toolset{}, fmt.Errorf("invalid flasher command %q: %w", flasher, err)
	}
	if len(gen) == 0 {
		return Toolset{}, fmt.Errorf("generator command is empty")
	}
	if len(fl) == 0 {
		return Toolset{}, fmt.Errorf("flasher command is empty")
	}
	return Toolset{Generator: gen, Flasher: fl}, nil
}

// Hex formats an address or size the way both tools expect it.
func Hex(v uint64) string {
	return fmt.Sprintf("%#x", v)
}

// Build returns the image generator invocation.
func (t Toolset) Build(size uint64, inputDir, output string) Command {
	argv := append(clone(t.Generator), Hex(size), inputDir, output)
	return Command{Name: "build", Argv: argv}
}

// Flash returns the flashing tool invocation writing image at addr.
// An empty port lets the flasher auto-detect the device.
func (t Toolset) Flash(name, chip, port string, addr uint64, image string) Command {
	argv := append(clone(t.Flasher), "--chip", chip)
	if port != "" {
		argv = append(argv, "-p", port)
	}
	argv = append(argv, "write_flash", Hex(addr), image)
	return Command{Name: name, Argv: argv}
}

func clone(s []string) []string {
	return append(make([]string, 0, len(s)+6), s...)
}

// ParseNumber parses a hex (0x prefix) or decimal unsigned integer.
func ParseNumber(s string) (uint64, error) {
	return strconv.ParseUint(strings.TrimSpace(s), 0, 64)
}
