package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"

	"github.com/anyulbade/card-fee-simulator/internal/model"
)

// ErrSourceNotFound is returned when a rate source locator points nowhere.
var ErrSourceNotFound = errors.New("rate source not found")

// RateSourceRepository reads rate tables from semicolon separated Latin-1 files.
type RateSourceRepository struct {
	baseDir string
}

// NewRateSourceRepository resolves relative locators against baseDir.
func NewRateSourceRepository(baseDir string) *RateSourceRepository {
	return &RateSourceRepository{baseDir: baseDir}
}

func (r *RateSourceRepository) Read(ctx context.Context, src model.RateSource) (model.RateTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := r.resolve(src.Locator)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return ParseRateTable(charmap.ISO8859_1.NewDecoder().Reader(f))
}

func (r *RateSourceRepository) resolve(locator string) (string, error) {
	path := locator
	if strings.Contains(locator, "://") {
		u, err := url.Parse(locator)
		if err != nil {
			return "", fmt.Errorf("parse locator %q: %w", locator, err)
		}
		if u.Scheme != "file" {
			return "", fmt.Errorf("unsupported locator scheme %q", u.Scheme)
		}
		path = u.Path
	}
	if path == "" {
		return "", fmt.Errorf("empty locator")
	}
	if !filepath.IsAbs(path) && r.baseDir != "" {
		path = filepath.Join(r.baseDir, path)
	}
	return path, nil
}

// ParseRateTable reads "installments;rate" rows, skipping the header row.
func ParseRateTable(in io.Reader) (model.RateTable, error) {
	reader := csv.NewReader(in)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("missing header row")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	table := model.RateTable{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		line, _ := reader.FieldPos(0)
		if len(record) != 2 {
			return nil, fmt.Errorf("line %d: expected 2 columns, got %d", line, len(record))
		}

		n, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil {
			return nil, fmt.Errorf("line %d: installments %q is not an integer", line, record[0])
		}
		if n <= 0 {
			return nil, fmt.Errorf("line %d: installments must be positive, got %d", line, n)
		}
		if _, dup := table[n]; dup {
			return nil, fmt.Errorf("line %d: duplicate installment count %d", line, n)
		}

		rate, err := ParseRate(record[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if rate.IsNegative() {
			return nil, fmt.Errorf("line %d: rate must not be negative, got %s", line, rate)
		}
		table[n] = rate.InexactFloat64()
	}

	return table, nil
}

// ParseRate normalizes "3,50%" style strings: trailing percent sign dropped,
// decimal comma turned into a point.
func ParseRate(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimSpace(strings.TrimSuffix(cleaned, "%"))
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	rate, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("rate %q is not a number", s)
	}
	return rate, nil
}
