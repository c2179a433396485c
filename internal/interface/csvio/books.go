// Package csvio moves catalog and registry data in and out as CSV. Imports
// run through the regular use cases, so validation, identifier assignment
// and uniqueness hold exactly as they do for the API; a CSV row cannot
// smuggle in state the API would reject.
package csvio

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	appinventory "github.com/pkozlowski/bookstore/internal/application/inventory"
	"github.com/pkozlowski/bookstore/internal/domain/book"
	apperrors "github.com/pkozlowski/bookstore/pkg/errors"
)

// RowError reports why one row was skipped.
type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ImportResult summarizes an import run. Skipped rows (duplicates, bad
// values) do not abort the run.
type ImportResult struct {
	Imported int        `json:"imported"`
	Skipped  int        `json:"skipped"`
	Failures []RowError `json:"failures,omitempty"`
}

var bookHeader = []string{"id", "title", "author", "genre", "price", "stock"}

// BookCSV imports and exports the catalog.
type BookCSV struct {
	addBook *appinventory.AddBookUseCase
	bookSvc book.Service
}

// NewBookCSV creates the catalog CSV codec.
func NewBookCSV(addBook *appinventory.AddBookUseCase, bookSvc book.Service) *BookCSV {
	return &BookCSV{addBook: addBook, bookSvc: bookSvc}
}

// Export writes the whole catalog. Price is in cents.
func (b *BookCSV) Export(ctx context.Context, w io.Writer) error {
	books, _, err := b.bookSvc.ListBooks(ctx, book.ListParams{Page: 1, PageSize: exportPageSize})
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(bookHeader); err != nil {
		return apperrors.Wrap(err, "writing csv header failed")
	}
	for _, entry := range books {
		record := []string{
			strconv.FormatUint(uint64(entry.ID), 10),
			entry.Title,
			entry.Author,
			entry.Genre,
			strconv.FormatInt(entry.Price, 10),
			strconv.Itoa(entry.Stock),
		}
		if err := cw.Write(record); err != nil {
			return apperrors.Wrap(err, "writing csv row failed")
		}
	}
	cw.Flush()
	return cw.Error()
}

// Import reads rows through AddBook. The id column is ignored on import;
// identifiers are always assigned by the store.
func (b *BookCSV) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	result := &ImportResult{}
	line := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.Wrap(err, "reading csv failed")
		}
		line++

		if line == 1 && isHeader(record, bookHeader) {
			continue
		}
		if len(record) < 6 {
			result.skip(line, fmt.Sprintf("expected 6 columns, got %d", len(record)))
			continue
		}

		price, err := strconv.ParseInt(record[4], 10, 64)
		if err != nil {
			result.skip(line, "price must be an integer amount in cents")
			continue
		}
		stock, err := strconv.Atoi(record[5])
		if err != nil {
			result.skip(line, "stock must be an integer")
			continue
		}

		_, err = b.addBook.Execute(ctx, appinventory.AddBookRequest{
			Title:  record[1],
			Author: record[2],
			Genre:  record[3],
			Price:  price,
			Stock:  stock,
		})
		if err != nil {
			result.skip(line, apperrors.GetAppError(err).Message)
			continue
		}
		result.Imported++
	}
	return result, nil
}

// exportPageSize bounds a single export. Catalogs in this system are small;
// a streaming cursor is not worth the ceremony yet.
const exportPageSize = 10000

func (r *ImportResult) skip(line int, reason string) {
	r.Skipped++
	r.Failures = append(r.Failures, RowError{Line: line, Reason: reason})
}

func isHeader(record, header []string) bool {
	if len(record) != len(header) {
		return false
	}
	for i := range header {
		if record[i] != header[i] {
			return false
		}
	}
	return true
}
