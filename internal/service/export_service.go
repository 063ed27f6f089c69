package service

import (
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/uniplan/uniplan-api/internal/dto"
	"github.com/uniplan/uniplan-api/internal/models"
	"github.com/uniplan/uniplan-api/internal/timetable"
	appErrors "github.com/uniplan/uniplan-api/pkg/errors"
	"github.com/uniplan/uniplan-api/pkg/export"
)

// ExportFormat names a supported export format.
type ExportFormat string

// Supported export formats.
const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
)

// ExportResult bundles rendered bytes with transport metadata.
type ExportResult struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ExportService renders a working timetable into downloadable documents.
// The table is the consolidated view: one row per session, ordered by
// weekday and then start time so the document reads like a week view.
type ExportService struct {
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewExportService constructs an export service. pdfFontPath may be empty;
// see PDFExporter for how non-latin text is handled without a font file.
func NewExportService(validate *validator.Validate, logger *zap.Logger, pdfFontPath string) *ExportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(pdfFontPath),
		validator: validate,
		logger:    logger,
	}
}

// Export renders the submitted timetable in the requested format.
func (s *ExportService) Export(format ExportFormat, req dto.CourseListRequest) (*ExportResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export payload")
	}

	type sessionRow struct {
		course  models.ConsolidatedCourse
		session models.ScheduleTime
	}
	sessions := make([]sessionRow, 0, len(req.Courses))
	for _, course := range timetable.Consolidate(req.Courses) {
		for _, session := range course.ScheduleTimes {
			sessions = append(sessions, sessionRow{course: course, session: session})
		}
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		a, b := sessions[i].session, sessions[j].session
		if ai, bi := weekdayIndex(a.Day), weekdayIndex(b.Day); ai != bi {
			return ai < bi
		}
		return timetable.MinutesOf(a.StartTime) < timetable.MinutesOf(b.StartTime)
	})

	table := export.Table{
		Headers: []string{"Code", "Name", "Credit", "Day", "Start", "End", "Location"},
	}
	for _, s := range sessions {
		table.Rows = append(table.Rows, []string{
			s.course.Code,
			s.course.Name,
			fmt.Sprintf("%d", s.course.Credit),
			s.session.Day,
			s.session.StartTime,
			s.session.EndTime,
			s.course.Location,
		})
	}

	switch format {
	case FormatCSV:
		data, err := s.csv.Render(table)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportResult{FileName: "timetable.csv", ContentType: "text/csv", Data: data}, nil
	case FormatPDF:
		data, err := s.pdf.Render(table, "Timetable")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportResult{FileName: "timetable.pdf", ContentType: "application/pdf", Data: data}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

// weekdayIndex orders canonical day codes mon through fri; anything else
// sorts last.
func weekdayIndex(day string) int {
	for i, d := range models.Weekdays {
		if d == day {
			return i
		}
	}
	return len(models.Weekdays)
}
