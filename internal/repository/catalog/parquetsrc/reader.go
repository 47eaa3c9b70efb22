// Package parquetsrc loads a catalog snapshot from a parquet file.
package parquetsrc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/parquet-go/parquet-go"
	"go.uber.org/zap"

	"github.com/kailas-cloud/tagsim/internal/domain/catalog"
	"github.com/kailas-cloud/tagsim/internal/domain/item"
)

const readBatchSize = 1000

// Columns names the parquet columns holding item fields.
type Columns struct {
	ID   string
	Name string
	Tags string
}

// DefaultColumns matches the processed anime dataset layout.
func DefaultColumns() Columns {
	return Columns{ID: "anime_id", Name: "name", Tags: "genre"}
}

// LoadStats reports what happened to the rows of a file.
type LoadStats struct {
	Rows    int
	Loaded  int
	Skipped int
}

// Reader reads catalog rows from parquet files.
type Reader struct {
	columns Columns
	logger  *zap.Logger
}

// New creates a Reader. Empty column names fall back to DefaultColumns.
func New(columns Columns, logger *zap.Logger) *Reader {
	def := DefaultColumns()
	if columns.ID == "" {
		columns.ID = def.ID
	}
	if columns.Name == "" {
		columns.Name = def.Name
	}
	if columns.Tags == "" {
		columns.Tags = def.Tags
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reader{columns: columns, logger: logger}
}

// Load reads every row of the file at path into an immutable catalog.
// Rows with a null or malformed id, a null name, or an id seen before are skipped.
// A null tag value becomes an empty tag string.
func (r *Reader) Load(ctx context.Context, path string) (*catalog.Catalog, LoadStats, error) {
	var stats LoadStats

	h, err := openParquet(path)
	if err != nil {
		return nil, stats, err
	}
	defer h.Close()

	cols, err := r.resolveColumns(h.pf)
	if err != nil {
		return nil, stats, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	items := make([]item.Item, 0, h.pf.NumRows())
	seen := make(map[int64]struct{}, h.pf.NumRows())

	for _, rg := range h.pf.RowGroups() {
		if err := ctx.Err(); err != nil {
			return nil, stats, fmt.Errorf("load catalog: %w", err)
		}
		if err := r.readRowGroup(rg, cols, seen, &items, &stats); err != nil {
			return nil, stats, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
	}

	cat, err := catalog.New(items)
	if err != nil {
		return nil, stats, fmt.Errorf("build catalog: %w", err)
	}

	r.logger.Info("Catalog loaded from parquet",
		zap.String("path", path),
		zap.Int("rows", stats.Rows),
		zap.Int("loaded", stats.Loaded),
		zap.Int("skipped", stats.Skipped),
	)
	return cat, stats, nil
}

// itemColumns holds leaf column indexes.
type itemColumns struct {
	id   int
	name int
	tags int
}

func (r *Reader) resolveColumns(pf *parquet.File) (itemColumns, error) {
	cols := itemColumns{id: -1, name: -1, tags: -1}
	for i, path := range pf.Schema().Columns() {
		if len(path) == 0 {
			continue
		}
		switch path[0] {
		case r.columns.ID:
			cols.id = i
		case r.columns.Name:
			cols.name = i
		case r.columns.Tags:
			cols.tags = i
		}
	}
	switch {
	case cols.id < 0:
		return cols, fmt.Errorf("column %q not found in parquet schema", r.columns.ID)
	case cols.name < 0:
		return cols, fmt.Errorf("column %q not found in parquet schema", r.columns.Name)
	case cols.tags < 0:
		return cols, fmt.Errorf("column %q not found in parquet schema", r.columns.Tags)
	}
	return cols, nil
}

func (r *Reader) readRowGroup(
	rg parquet.RowGroup,
	cols itemColumns,
	seen map[int64]struct{},
	items *[]item.Item,
	stats *LoadStats,
) error {
	rows := parquet.NewRowGroupReader(rg)
	buf := make([]parquet.Row, readBatchSize)

	for {
		n, readErr := rows.ReadRows(buf)
		for i := 0; i < n; i++ {
			stats.Rows++
			it, ok := r.rowToItem(buf[i], cols)
			if !ok {
				stats.Skipped++
				continue
			}
			if _, dup := seen[it.ID()]; dup {
				r.logger.Warn("Duplicate item id skipped",
					zap.Int64("id", it.ID()), zap.String("name", it.Name()))
				stats.Skipped++
				continue
			}
			seen[it.ID()] = struct{}{}
			*items = append(*items, it)
			stats.Loaded++
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			return fmt.Errorf("read rows: %w", readErr)
		}
	}
}

func (r *Reader) rowToItem(row parquet.Row, cols itemColumns) (item.Item, bool) {
	var (
		id             int64
		name, tags     string
		hasID, hasName bool
	)
	for _, v := range row {
		switch v.Column() {
		case cols.id:
			if v.IsNull() {
				continue
			}
			parsed, err := valueToInt64(v)
			if err != nil {
				r.logger.Debug("Malformed item id", zap.String("value", v.String()), zap.Error(err))
				continue
			}
			id, hasID = parsed, true
		case cols.name:
			if !v.IsNull() {
				name, hasName = v.String(), true
			}
		case cols.tags:
			if !v.IsNull() {
				tags = v.String()
			}
		}
	}
	if !hasID || !hasName {
		return item.Item{}, false
	}
	return item.New(id, name, tags), true
}

func valueToInt64(v parquet.Value) (int64, error) {
	switch v.Kind() {
	case parquet.Int32:
		return int64(v.Int32()), nil
	case parquet.Int64:
		return v.Int64(), nil
	case parquet.Double:
		f := v.Double()
		if f != math.Trunc(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("non-integral id %v", f)
		}
		return int64(f), nil
	case parquet.ByteArray, parquet.FixedLenByteArray:
		n, err := strconv.ParseInt(strings.TrimSpace(v.String()), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse id: %w", err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("unsupported id kind %s", v.Kind())
	}
}

// parquetHandle wraps parquet.File + underlying os.File for proper cleanup.
type parquetHandle struct {
	pf   *parquet.File
	file *os.File
}

func (h *parquetHandle) Close() {
	_ = h.file.Close()
}

func openParquet(path string) (*parquetHandle, error) {
	cleanPath := filepath.Clean(path)
	f, err := os.Open(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("open parquet: %w", err)
	}
	return &parquetHandle{pf: pf, file: f}, nil
}
