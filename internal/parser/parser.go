// Package parser reads relevé tables from files into rows of raw cells, ready
// to be pasted into a grid.
package parser

import (
	"fmt"
	"os"

	"github.com/KaramelBytes/releve-cli/internal/matrix"
)

// Options tune how a file is read.
type Options struct {
	// Delimiter for CSV. If 0, sniffed from the first line among ';', ',', '\t'.
	Delimiter rune
	// Sheet selects an XLSX sheet by name; empty means the first sheet.
	Sheet string
}

// Reader is one file format.
type Reader interface {
	CanParse(filename string) bool
	Read(path string, opt Options) ([][]string, error)
}

var registry []Reader

// Register adds a reader implementation to the registry.
func Register(r Reader) {
	registry = append(registry, r)
}

// ReadFile picks a reader by filename and returns the table it holds. Files
// no reader claims are read as clipboard text (tabs and newlines).
func ReadFile(path string, opt Options) ([][]string, error) {
	for _, r := range registry {
		if r.CanParse(path) {
			return r.Read(path, opt)
		}
	}
	return readText(path)
}

func readText(path string) ([][]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return matrix.SplitBlock(string(b)), nil
}

func init() {
	Register(textReader{})
	Register(csvReader{})
	Register(xlsxReader{})
}
