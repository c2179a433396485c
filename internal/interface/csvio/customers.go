package csvio

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	appcustomer "github.com/pkozlowski/bookstore/internal/application/customer"
	"github.com/pkozlowski/bookstore/internal/domain/customer"
	apperrors "github.com/pkozlowski/bookstore/pkg/errors"
)

var customerHeader = []string{"id", "name", "email", "phone", "street", "city", "country"}

// CustomerCSV imports and exports the customer registry.
type CustomerCSV struct {
	register    *appcustomer.RegisterUseCase
	customerSvc customer.Service
}

// NewCustomerCSV creates the registry CSV codec.
func NewCustomerCSV(register *appcustomer.RegisterUseCase, customerSvc customer.Service) *CustomerCSV {
	return &CustomerCSV{register: register, customerSvc: customerSvc}
}

// Export writes the whole registry.
func (c *CustomerCSV) Export(ctx context.Context, w io.Writer) error {
	customers, _, err := c.customerSvc.ListCustomers(ctx, 1, exportPageSize)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(customerHeader); err != nil {
		return apperrors.Wrap(err, "writing csv header failed")
	}
	for _, entry := range customers {
		record := []string{
			strconv.FormatUint(uint64(entry.ID), 10),
			entry.Name,
			entry.Email,
			entry.Phone,
			entry.Street,
			entry.City,
			entry.Country,
		}
		if err := cw.Write(record); err != nil {
			return apperrors.Wrap(err, "writing csv row failed")
		}
	}
	cw.Flush()
	return cw.Error()
}

// Import reads rows through Register. Duplicate emails are counted as
// skipped, never overwritten; the id column is ignored.
func (c *CustomerCSV) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
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

		if line == 1 && isHeader(record, customerHeader) {
			continue
		}
		if len(record) < 7 {
			result.skip(line, fmt.Sprintf("expected 7 columns, got %d", len(record)))
			continue
		}

		_, err = c.register.Execute(ctx, appcustomer.RegisterRequest{
			Name:    record[1],
			Email:   record[2],
			Phone:   record[3],
			Street:  record[4],
			City:    record[5],
			Country: record[6],
		})
		if err != nil {
			result.skip(line, apperrors.GetAppError(err).Message)
			continue
		}
		result.Imported++
	}
	return result, nil
}
