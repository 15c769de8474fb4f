// Package partition reads ESP-IDF style partition table CSV files.
//
// A row looks like
//
//	# Name,   Type, SubType, Offset,   Size,     Flags
//	custom,   data, spiffs,  0x9000,   0x6000,
//
// Only the name, offset and size columns are interpreted.
package partition

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// DefaultLabel is the partition that holds the filesystem image.
const DefaultLabel = "custom"

const (
	colName   = 0
	colOffset = 3
	colSize   = 4
	minCols   = 5
)

// Entry is a named region of a partition table.
type Entry struct {
	Name   string `json:"name"`
	Offset uint64 `json:"offset"`
	Size   uint64 `json:"size"`
}

// Reader looks up a single partition entry in a table file.
type Reader interface {
	Lookup(path, label string) (Entry, error)
}

// FileReader implements Reader against partition table files on disk.
type FileReader struct{}

// Lookup implements Reader.
func (FileReader) Lookup(path, label string) (Entry, error) {
	return Find(path, label)
}

// Find opens the table at path and returns the first row named label.
func Find(path, label string) (Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return Entry{}, newError(TableUnreadable, path, label, "cannot open table", err)
	}
	defer f.Close()

	e, err := Parse(f, label)
	if err != nil {
		var pe *Error
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return Entry{}, err
	}
	return e, nil
}

// Parse scans CSV rows from r in order and returns the first one whose
// first column equals label. Rows shorter than five columns are skipped.
func Parse(r io.Reader, label string) (Entry, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Entry{}, newError(TableUnreadable, "", label, "invalid CSV", err)
		}
		if len(row) < minCols || strings.TrimSpace(row[colName]) != label {
			continue
		}
		offset, err := parseHex(row[colOffset])
		if err != nil {
			return Entry{}, newError(EntryMalformed, "", label,
				fmt.Sprintf("bad offset for partition %q", label), err)
		}
		size, err := parseHex(row[colSize])
		if err != nil {
			return Entry{}, newError(EntryMalformed, "", label,
				fmt.Sprintf("bad size for partition %q", label), err)
		}
		return Entry{Name: label, Offset: offset, Size: size}, nil
	}
	return Entry{}, newError(EntryNotFound, "", label,
		fmt.Sprintf("could not find %q partition", label), nil)
}

// parseHex parses a base-16 field; the 0x prefix is optional.
func parseHex(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	return strconv.ParseUint(s, 16, 64)
}
