// Package xlsx is the spreadsheet host: an .xlsx workbook on disk whose
// active worksheet receives profile fields.
package xlsx

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/alnah/go-profilestamp/internal/host"
)

// maxColumnWidth is the widest column Excel accepts.
const maxColumnWidth = 255

// columnPadding is added to the longest cell when fitting a column.
const columnPadding = 2

// Workbook is a spreadsheet host backed by an .xlsx file.
// Mutations are queued and applied to the file on Sync.
type Workbook struct {
	path  string
	file  *excelize.File
	sheet string

	mu      sync.Mutex
	pending []func() error
}

// Open opens the workbook at path, or starts a new one if it does not exist.
// The active worksheet is the write target.
func Open(path string) (*Workbook, error) {
	var (
		f   *excelize.File
		err error
	)
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		f = excelize.NewFile()
	} else {
		f, err = excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("open workbook: %w", err)
		}
	}

	return &Workbook{
		path:  path,
		file:  f,
		sheet: f.GetSheetName(f.GetActiveSheetIndex()),
	}, nil
}

// SetValues queues a write of values into the range at address.
// values must have one row per range row and one cell per range column.
func (w *Workbook) SetValues(_ context.Context, address string, values [][]string) error {
	r, err := parseRange(address)
	if err != nil {
		return err
	}
	if len(values) != r.rows() {
		return fmt.Errorf("%w: %d rows for %s", ErrShapeMismatch, len(values), address)
	}
	for i, row := range values {
		if len(row) != r.cols() {
			return fmt.Errorf("%w: row %d has %d cells for %s", ErrShapeMismatch, i, len(row), address)
		}
	}

	w.enqueue(func() error {
		for i, row := range values {
			for j, v := range row {
				cell, err := excelize.CoordinatesToCellName(r.startCol+j, r.startRow+i)
				if err != nil {
					return err
				}
				if err := w.file.SetCellValue(w.sheet, cell, v); err != nil {
					return err
				}
			}
		}
		return nil
	})
	return nil
}

// AutofitColumns queues a width fit for every column touched by address.
// The fit considers all cells of the column, not only those in the range.
func (w *Workbook) AutofitColumns(_ context.Context, address string) error {
	r, err := parseRange(address)
	if err != nil {
		return err
	}

	w.enqueue(func() error {
		cols, err := w.file.GetCols(w.sheet)
		if err != nil {
			return err
		}
		for c := r.startCol; c <= r.endCol; c++ {
			name, err := excelize.ColumnNumberToName(c)
			if err != nil {
				return err
			}
			widest := 0
			if c-1 < len(cols) {
				for _, v := range cols[c-1] {
					widest = max(widest, utf8.RuneCountInString(v))
				}
			}
			width := min(float64(widest+columnPadding), maxColumnWidth)
			if err := w.file.SetColWidth(w.sheet, name, name, width); err != nil {
				return err
			}
		}
		return nil
	})
	return nil
}

// Sync applies queued mutations and saves the workbook.
func (w *Workbook) Sync(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	w.mu.Lock()
	ops := w.pending
	w.pending = nil
	w.mu.Unlock()

	for _, op := range ops {
		if err := op(); err != nil {
			return fmt.Errorf("apply workbook change: %w", err)
		}
	}
	if err := w.file.SaveAs(w.path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// Close releases the workbook.
func (w *Workbook) Close() error {
	return w.file.Close()
}

func (w *Workbook) enqueue(op func() error) {
	w.mu.Lock()
	w.pending = append(w.pending, op)
	w.mu.Unlock()
}

// cellRange is a rectangular range in 1-based coordinates.
type cellRange struct {
	startCol, startRow int
	endCol, endRow     int
}

func (r cellRange) rows() int { return r.endRow - r.startRow + 1 }
func (r cellRange) cols() int { return r.endCol - r.startCol + 1 }

// parseRange parses "B5:B7" or a single cell "B5".
func parseRange(address string) (cellRange, error) {
	first, last, found := strings.Cut(address, ":")
	if !found {
		last = first
	}

	c1, r1, err := excelize.CellNameToCoordinates(first)
	if err != nil {
		return cellRange{}, fmt.Errorf("%w: %q", ErrInvalidRange, address)
	}
	c2, r2, err := excelize.CellNameToCoordinates(last)
	if err != nil {
		return cellRange{}, fmt.Errorf("%w: %q", ErrInvalidRange, address)
	}
	if c2 < c1 || r2 < r1 {
		return cellRange{}, fmt.Errorf("%w: %q is reversed", ErrInvalidRange, address)
	}
	return cellRange{startCol: c1, startRow: r1, endCol: c2, endRow: r2}, nil
}

var _ host.SpreadsheetHost = (*Workbook)(nil)
