package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dirm02/course-admin-api/internal/models"
	appErrors "github.com/dirm02/course-admin-api/pkg/errors"
	"github.com/dirm02/course-admin-api/pkg/export"
)

type coursePager interface {
	ListCourses(ctx context.Context, page int, query string) (*models.CoursePage, error)
}

// ExportResult is a rendered catalog download.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders the full filtered catalog as CSV or PDF by walking
// every upstream page for the query.
type ExportService struct {
	upstream coursePager
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	maxPages int
	logger   *zap.Logger
}

// NewExportService creates an export service. maxPages caps the page walk so
// a pathological upstream total cannot stall the request forever.
func NewExportService(upstream coursePager, maxPages int, logger *zap.Logger) *ExportService {
	if maxPages <= 0 {
		maxPages = 100
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		upstream: upstream,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		maxPages: maxPages,
		logger:   logger,
	}
}

var exportHeaders = []string{"Course", "Institution", "City", "Country", "Start", "End", "Days", "Price"}

// Export walks all pages matching query and renders them in the requested
// format ("csv" or "pdf").
func (s *ExportService) Export(ctx context.Context, format, query string) (*ExportResult, error) {
	format = strings.ToLower(format)
	if format != "csv" && format != "pdf" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	courses, err := s.collect(ctx, query)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{Headers: exportHeaders, Rows: make([][]string, 0, len(courses))}
	for _, course := range courses {
		dataset.Rows = append(dataset.Rows, []string{
			course.CourseName,
			course.University,
			course.City,
			course.Country,
			course.StartDate,
			course.EndDate,
			fmt.Sprintf("%d", course.LengthDays),
			fmt.Sprintf("%s%.2f", course.CurrencySymbol, course.Price),
		})
	}

	stamp := time.Now().Format("20060102")
	switch format {
	case "pdf":
		content, err := s.pdf.Render(dataset, "Course Catalog")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render pdf export")
		}
		return &ExportResult{Content: content, ContentType: "application/pdf", Filename: "courses-" + stamp + ".pdf"}, nil
	default:
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render csv export")
		}
		return &ExportResult{Content: content, ContentType: "text/csv; charset=utf-8", Filename: "courses-" + stamp + ".csv"}, nil
	}
}

func (s *ExportService) collect(ctx context.Context, query string) ([]models.Course, error) {
	var courses []models.Course
	totalPages := 1
	for page := 1; page <= totalPages && page <= s.maxPages; page++ {
		resp, err := s.upstream.ListCourses(ctx, page, query)
		if err != nil {
			return nil, err
		}
		for i := range resp.Courses {
			Decorate(&resp.Courses[i])
		}
		courses = append(courses, resp.Courses...)
		if resp.TotalPages > 0 {
			totalPages = resp.TotalPages
		}
		if len(resp.Courses) == 0 {
			break
		}
	}
	if totalPages > s.maxPages {
		s.logger.Warn("export truncated", zap.Int("total_pages", totalPages), zap.Int("max_pages", s.maxPages))
	}
	return courses, nil
}
