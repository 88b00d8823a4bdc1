package importer

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/frahmantamala/budget-tracker/internal"
	"github.com/frahmantamala/budget-tracker/internal/history"
)

// ErsteConfig selects the delimiter, day layout and columns of a statement.
type ErsteConfig = internal.StatementConfig

// DefaultErsteConfig matches the CSV export of Erste Bank accounts.
func DefaultErsteConfig() ErsteConfig {
	return ErsteConfig{
		Delimiter: ";",
		DayLayout: "02.01.2006",
		Columns: internal.StatementColumns{
			Day:       0,
			Source:    1,
			Amount:    6,
			Notes:     8,
			Reference: 9,
		},
	}
}

// Erste reads Erste Bank statement exports. The first line is a header and
// is skipped.
type Erste struct {
	cfg ErsteConfig
}

func NewErste(cfg ErsteConfig) *Erste {
	return &Erste{cfg: cfg}
}

func (e *Erste) Import(ctx context.Context, source string) ([]history.TransactionRecord, error) {
	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("open statement: %w", err)
	}
	defer f.Close()

	return e.Read(ctx, f)
}

// Read parses a statement from r.
func (e *Erste) Read(ctx context.Context, r io.Reader) ([]history.TransactionRecord, error) {
	delimiter, _ := utf8.DecodeRuneInString(e.cfg.Delimiter)

	br := bufio.NewReader(r)
	if _, err := br.ReadString('\n'); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read statement header: %w", err)
	}

	reader := csv.NewReader(br)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records []history.TransactionRecord
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read statement line %d: %w", line, err)
		}

		record, err := e.record(row)
		if err != nil {
			return nil, fmt.Errorf("statement line %d: %w", line, err)
		}
		records = append(records, record)
	}
	return records, nil
}

func (e *Erste) record(row []string) (history.TransactionRecord, error) {
	cols := e.cfg.Columns
	for _, col := range []int{cols.Day, cols.Source, cols.Amount, cols.Notes, cols.Reference} {
		if col >= len(row) {
			return history.TransactionRecord{}, fmt.Errorf("expected at least %d columns, got %d", col+1, len(row))
		}
	}

	day, err := time.Parse(e.cfg.DayLayout, strings.TrimSpace(row[cols.Day]))
	if err != nil {
		return history.TransactionRecord{}, fmt.Errorf("parse day %q: %w", row[cols.Day], err)
	}

	return history.TransactionRecord{
		Reference: row[cols.Reference],
		Day:       day.Format(history.DayLayout),
		Source:    row[cols.Source],
		Amount:    strings.ReplaceAll(row[cols.Amount], ",", ""),
		Notes:     row[cols.Notes],
		Category:  "",
		Month:     strconv.Itoa(int(day.Month())),
		Comments:  "",
		Exclude:   strconv.FormatBool(false),
	}, nil
}
