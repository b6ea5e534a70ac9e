package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/okian/sisu/internal/domain/model"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ctxCheckEvery is how many rows are read between cancellation checks.
const ctxCheckEvery = 4096

// Load reads the delimited file at path.
func Load(ctx context.Context, path string, opts ...Option) (*Dataset, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenDataset, err)
	}
	defer func() { _ = f.Close() }()

	return Read(ctx, f, opts...)
}

// Read parses a delimited table from r. The header must contain every
// required column; any row with a field count different from the header
// fails the whole read.
func Read(ctx context.Context, r io.Reader, opts ...Option) (*Dataset, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	src, err := decodeReader(r, o.encoding)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(src)
	cr.Comma = o.delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &SchemaValidationError{Missing: o.columns.Required(), Expected: o.columns.Required()}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrMalformedRow, err)
	}
	idx, err := resolveColumns(header, o.columns)
	if err != nil {
		return nil, err
	}
	width := len(header)

	var records []model.Record
	for n := 0; ; n++ {
		if n%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedRow, err)
		}
		if len(row) != width {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("%w: line %d: expected %d fields, got %d", ErrMalformedRow, line, width, len(row))
		}

		rec := model.Record{
			Course:      strings.TrimSpace(row[idx.course]),
			State:       strings.TrimSpace(row[idx.state]),
			Institution: strings.TrimSpace(row[idx.institution]),
			Score:       math.NaN(),
		}
		if v, ok := parseNumber(row[idx.score], o.decimal); ok {
			rec.Score = v.InexactFloat64()
		}
		if v, ok := parseNumber(row[idx.seats], o.decimal); ok && v.IsInteger() {
			rec.Seats = v.IntPart()
			rec.HasSeats = true
		}
		records = append(records, rec)
	}

	return New(o.columns, records), nil
}

type columnIndex struct {
	course, state, institution, seats, score int
}

// resolveColumns maps required names to header positions.
func resolveColumns(header []string, c Columns) (columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if _, dup := pos[name]; !dup {
			pos[name] = i
		}
	}

	var missing []string
	lookup := func(name string) int {
		i, ok := pos[name]
		if !ok {
			missing = append(missing, name)
		}
		return i
	}
	idx := columnIndex{
		course:      lookup(c.Course),
		state:       lookup(c.State),
		institution: lookup(c.Institution),
		seats:       lookup(c.Seats),
		score:       lookup(c.Score),
	}
	if len(missing) > 0 {
		return columnIndex{}, &SchemaValidationError{Missing: missing, Expected: c.Required()}
	}
	return idx, nil
}

// parseNumber reads a numeric cell written with the given decimal mark.
func parseNumber(cell string, decimalMark rune) (decimal.Decimal, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return decimal.Decimal{}, false
	}
	if decimalMark != '.' {
		if strings.ContainsRune(s, '.') {
			return decimal.Decimal{}, false
		}
		s = strings.ReplaceAll(s, string(decimalMark), ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// decodeReader wraps r so it yields UTF-8.
func decodeReader(r io.Reader, name string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return transform.NewReader(r, unicode.UTF8BOM.NewDecoder()), nil
	case "iso-8859-1", "latin1":
		return charmap.ISO8859_1.NewDecoder().Reader(r), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder().Reader(r), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, name)
	}
}
