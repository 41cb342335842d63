// Package importer implements the CSV bulk loaders for centers, catalog
// items and center assignments. Rows are applied one by one: a failing row
// is reported with its line number and skipped, it never rolls back the rows
// already applied.
package importer

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/orderdesk/orderdesk-api/internal/application/dto"
	"github.com/orderdesk/orderdesk-api/internal/domain"
	"github.com/orderdesk/orderdesk-api/internal/domain/repository"
)

// Importer loads CSV files into a company's master data.
type Importer struct {
	companies     repository.CompanyRepository
	customers     repository.CustomerRepository
	items         repository.ItemRepository
	manufacturers repository.ManufacturerRepository
	profiles      repository.UserProfileRepository
	log           zerolog.Logger
}

// New builds the importer.
func New(
	companies repository.CompanyRepository,
	customers repository.CustomerRepository,
	items repository.ItemRepository,
	manufacturers repository.ManufacturerRepository,
	profiles repository.UserProfileRepository,
	log zerolog.Logger,
) *Importer {
	return &Importer{
		companies:     companies,
		customers:     customers,
		items:         items,
		manufacturers: manufacturers,
		profiles:      profiles,
		log:           log,
	}
}

// csvRows reads the whole file and returns the header-indexed rows. The
// header is line 1; the first data row is line 2.
type csvRow struct {
	line   int
	fields map[string]string
}

func readRows(r io.Reader, required []string) ([]csvRow, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			var ve domain.ValidationError
			ve.Add("file", "missing required column: "+col)
			return nil, ve.ErrOrNil()
		}
	}

	var rows []csvRow
	line := 1
	for {
		record, err := cr.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			var ve domain.ValidationError
			ve.Add("file", "malformed CSV")
			return nil, ve.ErrOrNil()
		}
		fields := make(map[string]string, len(idx))
		for col, i := range idx {
			if i < len(record) {
				fields[col] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, csvRow{line: line, fields: fields})
	}
	return rows, nil
}

func rowError(errs *[]dto.RowError, line int, err error) {
	if ve, ok := domain.AsValidation(err); ok {
		for _, f := range ve.Fields {
			*errs = append(*errs, dto.RowError{Line: line, Message: f.Field + " " + f.Message})
		}
		return
	}
	*errs = append(*errs, dto.RowError{Line: line, Message: err.Error()})
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}
