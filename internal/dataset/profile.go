// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset profiles uploaded tabular data. A CSV file is loaded into
// an in-memory SQLite table and every statistic is computed with SQL, so no
// raw rows ever leave the process.
package dataset

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/draftwise/pkg/types"
)

const (
	tableName = "data"

	// maxColumns is SQLite's default column limit.
	maxColumns = 2000

	// idMinRows and idUniqueRatio decide when a column looks like an identifier.
	idMinRows     = 50
	idUniqueRatio = 0.98

	topMissingLimit = 15
)

// ErrNoColumns is returned for input without a header row.
var ErrNoColumns = errors.New("no columns to parse from file")

// naTokens are cell values read as missing.
var naTokens = map[string]bool{
	"": true, "#N/A": true, "#N/A N/A": true, "#NA": true, "-1.#IND": true,
	"-1.#QNAN": true, "-NaN": true, "-nan": true, "1.#IND": true, "1.#QNAN": true,
	"<NA>": true, "N/A": true, "NA": true, "NULL": true, "NaN": true,
	"None": true, "n/a": true, "nan": true, "null": true,
}

// ProfileFile opens path and profiles it.
func ProfileFile(ctx context.Context, path string) (*types.DatasetProfile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return Profile(ctx, f)
}

// Profile reads CSV from r and computes row and column counts, duplicate
// rows, missingness per column, likely identifier columns and the numeric
// versus categorical split. A column is numeric when it holds at least one
// row and none of its present values is text.
func Profile(ctx context.Context, r io.Reader) (*types.DatasetProfile, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoColumns
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	names := columnNames(header)
	if len(names) > maxColumns {
		return nil, fmt.Errorf("CSV has %d columns, limit is %d", len(names), maxColumns)
	}

	t, err := newTable(ctx, len(names))
	if err != nil {
		return nil, err
	}
	defer t.close()

	if err := t.load(ctx, cr); err != nil {
		return nil, err
	}
	return t.profile(ctx, names)
}

// columnNames fills blank headers and disambiguates repeats ("a", "a.1").
func columnNames(header []string) []string {
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	seen := make(map[string]int, len(header))
	names := make([]string, len(header))
	for i, h := range header {
		if strings.TrimSpace(h) == "" {
			h = "Unnamed: " + strconv.Itoa(i)
		}
		name := h
		for seen[name] > 0 {
			name = h + "." + strconv.Itoa(seen[h])
			seen[h]++
		}
		seen[name]++
		names[i] = name
	}
	return names
}

// table is a single-connection in-memory SQLite table with columns c0..cN.
type table struct {
	db   *sql.DB
	cols []string
}

func newTable(ctx context.Context, n int) (*table, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening profiling database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	t := &table{db: db, cols: make([]string, n)}
	defs := make([]string, n)
	for i := range t.cols {
		t.cols[i] = "c" + strconv.Itoa(i)
		defs[i] = t.cols[i] + " NUMERIC"
	}
	stmt := "CREATE TABLE " + tableName + " (" + strings.Join(defs, ", ") + ")"
	if _, err := db.ExecContext(ctx, stmt); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating profiling table: %w", err)
	}
	return t, nil
}

func (t *table) close() error { return t.db.Close() }

// load inserts every remaining record. Short rows are padded with NULL;
// rows with more fields than the header are an error.
func (t *table) load(ctx context.Context, cr *csv.Reader) error {
	placeholders := make([]any, len(t.cols))
	query, _, err := sq.Insert(tableName).Columns(t.cols...).Values(placeholders...).ToSql()
	if err != nil {
		return fmt.Errorf("building insert: %w", err)
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning load: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(t.cols))
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("reading CSV: %w", err)
		}
		if len(rec) > len(t.cols) {
			return fmt.Errorf("CSV line %d: expected %d fields, saw %d", line, len(t.cols), len(rec))
		}
		for i := range args {
			args[i] = nil
			if i < len(rec) && !naTokens[rec[i]] {
				args[i] = rec[i]
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("loading CSV line %d: %w", line, err)
		}
	}
	return tx.Commit()
}

type columnStats struct {
	nonNull  int64
	distinct int64
	text     int64
}

func (t *table) profile(ctx context.Context, names []string) (*types.DatasetProfile, error) {
	var rows int64
	if err := sq.Select("COUNT(*)").From(tableName).
		RunWith(t.db).QueryRowContext(ctx).Scan(&rows); err != nil {
		return nil, fmt.Errorf("counting rows: %w", err)
	}

	dups, err := t.duplicateRows(ctx)
	if err != nil {
		return nil, err
	}

	p := &types.DatasetProfile{
		Rows:          int(rows),
		Columns:       len(names),
		DuplicateRows: int(dups),
		LikelyID:      []string{},
		NumericCols:   []string{},
		CategoryCols:  []string{},
	}

	missing := make([]types.MissingColumn, len(names))
	for i, col := range t.cols {
		st, err := t.columnStats(ctx, col)
		if err != nil {
			return nil, fmt.Errorf("profiling column %q: %w", names[i], err)
		}
		missing[i] = types.MissingColumn{Column: names[i], MissingPct: missingPct(rows, st.nonNull)}

		if st.text == 0 && rows > 0 {
			p.NumericCols = append(p.NumericCols, names[i])
		} else {
			p.CategoryCols = append(p.CategoryCols, names[i])
		}
		if rows >= idMinRows && float64(st.distinct) >= idUniqueRatio*float64(rows) {
			p.LikelyID = append(p.LikelyID, names[i])
		}
	}

	sort.SliceStable(missing, func(a, b int) bool { return missing[a].MissingPct > missing[b].MissingPct })
	if len(missing) > topMissingLimit {
		missing = missing[:topMissingLimit]
	}
	p.TopMissing = missing
	return p, nil
}

func (t *table) columnStats(ctx context.Context, col string) (columnStats, error) {
	var st columnStats
	err := sq.Select(
		"COUNT("+col+")",
		"COUNT(DISTINCT "+col+")",
		"COALESCE(SUM(typeof("+col+") = 'text'), 0)",
	).From(tableName).RunWith(t.db).QueryRowContext(ctx).Scan(&st.nonNull, &st.distinct, &st.text)
	return st, err
}

// duplicateRows counts rows identical to an earlier row. NULLs compare equal.
func (t *table) duplicateRows(ctx context.Context) (int64, error) {
	groups := sq.Select("COUNT(*) AS n").From(tableName).GroupBy(t.cols...)
	var dups int64
	err := sq.Select("COALESCE(SUM(n - 1), 0)").FromSelect(groups, "g").
		RunWith(t.db).QueryRowContext(ctx).Scan(&dups)
	if err != nil {
		return 0, fmt.Errorf("counting duplicate rows: %w", err)
	}
	return dups, nil
}

// missingPct is the missing share as a percentage rounded to two decimals.
func missingPct(rows, nonNull int64) float64 {
	if rows == 0 {
		return 0
	}
	pct := float64(rows-nonNull) / float64(rows) * 100
	return math.Round(pct*100) / 100
}
