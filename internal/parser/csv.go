package parser

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

type csvReader struct{}

func (csvReader) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".csv")
}

func (csvReader) Read(path string, opt Options) ([][]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	b = bytes.TrimPrefix(b, []byte("\xef\xbb\xbf"))
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(b)
	}
	r := csv.NewReader(bytes.NewReader(b))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.Comma = delim
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rows, nil
}

// sniffDelimiter picks the most frequent of ';', ',' and tab on the first
// line. Ties prefer ';', the usual separator of French exports.
func sniffDelimiter(b []byte) rune {
	sc := bufio.NewScanner(bytes.NewReader(b))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	if !sc.Scan() {
		return ','
	}
	line := sc.Text()
	best, bestN := ',', 0
	for _, d := range []rune{';', ',', '\t'} {
		if n := strings.Count(line, string(d)); n > bestN {
			best, bestN = d, n
		}
	}
	return best
}
