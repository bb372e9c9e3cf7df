package rows

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Header aliases seen across the historical asset sheets. Matching is
// case-insensitive on the trimmed header cell.
var (
	nameHeaders        = []string{"product name", "name"}
	symbolHeaders      = []string{"token symbol", "symbol"}
	addressHeaders     = []string{"evm address", "solana address", "bsc deployed address", "token address", "address"}
	coingeckoIDHeaders = []string{"coingecko api id", "coingecko id", "coingecko_id"}
)

// ErrNoAddressColumn is returned when the header row has no recognizable
// address column.
var ErrNoAddressColumn = errors.New("no address column in header")

// CSVSource reads rows from a header-keyed CSV file.
type CSVSource struct {
	path string
}

// NewCSVSource creates a source over a CSV file. The file is not opened
// until Rows is called.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// Rows reads the whole file. Data lines are numbered from 2, matching what
// a spreadsheet shows below the header.
func (s *CSVSource) Rows(ctx context.Context) ([]Row, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := newColumnIndex(header)
	if cols.address < 0 {
		return nil, fmt.Errorf("%w: %v", ErrNoAddressColumn, header)
	}

	var out []Row
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		out = append(out, Row{
			Line:        line,
			Name:        cols.get(record, cols.name),
			Symbol:      cols.get(record, cols.symbol),
			Address:     cols.get(record, cols.address),
			CoingeckoID: cols.get(record, cols.coingeckoID),
		})
	}
}

type columnIndex struct {
	name        int
	symbol      int
	address     int
	coingeckoID int
}

func newColumnIndex(header []string) columnIndex {
	cols := columnIndex{name: -1, symbol: -1, address: -1, coingeckoID: -1}
	for i, cell := range header {
		key := strings.ToLower(strings.TrimSpace(cell))
		switch {
		case cols.name < 0 && matches(key, nameHeaders):
			cols.name = i
		case cols.symbol < 0 && matches(key, symbolHeaders):
			cols.symbol = i
		case cols.address < 0 && matches(key, addressHeaders):
			cols.address = i
		case cols.coingeckoID < 0 && matches(key, coingeckoIDHeaders):
			cols.coingeckoID = i
		}
	}
	return cols
}

func (columnIndex) get(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func matches(key string, aliases []string) bool {
	for _, a := range aliases {
		if key == a {
			return true
		}
	}
	return false
}
