package cli

import (
	"errors"
	"path/filepath"
	"sort"

	"github.com/AlecAivazis/survey/v2"
)

// serialPortPatterns are the device names USB serial adapters show up as
// on Linux and macOS.
var serialPortPatterns = []string{
	"/dev/ttyUSB*",
	"/dev/ttyACM*",
	"/dev/cu.usbserial*",
	"/dev/cu.usbmodem*",
	"/dev/cu.SLAB_USBtoUART*",
	"/dev/cu.wchusbserial*",
}

// listSerialPorts returns the sorted, de-duplicated paths matching patterns.
func listSerialPorts(patterns []string) []string {
	seen := make(map[string]bool)
	var ports []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			continue
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				ports = append(ports, m)
			}
		}
	}
	sort.Strings(ports)
	return ports
}

// askOne is survey.AskOne, replaced in tests.
var askOne = survey.AskOne

// promptForPort asks the user to pick one of the detected serial ports.
// A single candidate is returned without asking.
func promptForPort(patterns []string) (string, error) {
	ports := listSerialPorts(patterns)
	switch len(ports) {
	case 0:
		return "", errors.New("no serial devices found")
	case 1:
		printInfo("Using serial port " + ports[0])
		return ports[0], nil
	}

	var port string
	prompt := &survey.Select{
		Message: "Serial port:",
		Options: ports,
	}
	if err := askOne(prompt, &port); err != nil {
		return "", err
	}
	return port, nil
}
