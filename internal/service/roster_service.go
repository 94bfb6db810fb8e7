package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/student-records-api/internal/models"
	appErrors "github.com/noah-isme/student-records-api/pkg/errors"
	"github.com/noah-isme/student-records-api/pkg/export"
)

// RosterFormat selects the rendering of a roster export.
type RosterFormat string

const (
	RosterCSV RosterFormat = "csv"
	RosterPDF RosterFormat = "pdf"
)

// ParseRosterFormat accepts "csv" (the default when empty) or "pdf", case-insensitively.
func ParseRosterFormat(raw string) (RosterFormat, error) {
	switch RosterFormat(strings.ToLower(strings.TrimSpace(raw))) {
	case "", RosterCSV:
		return RosterCSV, nil
	case RosterPDF:
		return RosterPDF, nil
	}
	return "", appErrors.Clone(appErrors.ErrBadRequest, fmt.Sprintf("unsupported export format %q", raw))
}

// RosterFile is a rendered roster ready to be served.
type RosterFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type rosterStudents interface {
	List(ctx context.Context) ([]models.Student, error)
}

type rosterAddresses interface {
	List(ctx context.Context) ([]models.Address, error)
}

type tableRenderer interface {
	Render(table export.Table) ([]byte, error)
}

var rosterColumns = []string{"Student ID", "Student No", "Name", "Active", "Addresses"}

// RosterService exports every student with its addresses as a document.
type RosterService struct {
	students  rosterStudents
	addresses rosterAddresses
	csv       tableRenderer
	pdf       tableRenderer
	logger    *zap.Logger
}

// NewRosterService constructs a RosterService; nil renderers fall back to the package exporters.
func NewRosterService(students rosterStudents, addresses rosterAddresses, csv, pdf tableRenderer, logger *zap.Logger) *RosterService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{students: students, addresses: addresses, csv: csv, pdf: pdf, logger: logger}
}

// Export renders the roster in the requested format.
func (s *RosterService) Export(ctx context.Context, format RosterFormat) (*RosterFile, error) {
	table, err := s.table(ctx)
	if err != nil {
		return nil, err
	}

	file := &RosterFile{}
	switch format {
	case RosterPDF:
		file.Filename = "students.pdf"
		file.ContentType = "application/pdf"
		file.Data, err = s.pdf.Render(table)
	default:
		file.Filename = "students.csv"
		file.ContentType = "text/csv; charset=utf-8"
		file.Data, err = s.csv.Render(table)
	}
	if err != nil {
		return nil, appErrors.Internal(err, "failed to render roster")
	}
	s.logger.Info("roster exported", zap.String("format", string(format)), zap.Int("students", len(table.Rows)))
	return file, nil
}

func (s *RosterService) table(ctx context.Context) (export.Table, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return export.Table{}, appErrors.Internal(err, "failed to list students")
	}
	addresses, err := s.addresses.List(ctx)
	if err != nil {
		return export.Table{}, appErrors.Internal(err, "failed to list addresses")
	}

	byStudent := make(map[int64][]string, len(students))
	for _, a := range addresses {
		byStudent[a.StudentID] = append(byStudent[a.StudentID], formatAddress(a))
	}

	rows := make([][]string, 0, len(students))
	for _, st := range students {
		active := "no"
		if st.Active {
			active = "yes"
		}
		rows = append(rows, []string{
			strconv.FormatInt(st.ID, 10),
			st.StudentNo,
			st.Name,
			active,
			strings.Join(byStudent[st.ID], "; "),
		})
	}
	return export.Table{Title: "Student roster", Columns: rosterColumns, Rows: rows}, nil
}

func formatAddress(a models.Address) string {
	return fmt.Sprintf("%s, %s, %s %s, %s", a.Street, a.City, a.Province, a.PostalCode, a.Country)
}
