package service

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/dirm02/course-admin-api/internal/cache"
	"github.com/dirm02/course-admin-api/internal/dto"
	"github.com/dirm02/course-admin-api/internal/models"
	appErrors "github.com/dirm02/course-admin-api/pkg/errors"
)

// PageSize is the upstream's fixed page size.
const PageSize = 10

type courseClient interface {
	ListCourses(ctx context.Context, page int, query string) (*models.CoursePage, error)
	CreateCourse(ctx context.Context, payload dto.CoursePayload) (json.RawMessage, error)
	UpdateCourse(ctx context.Context, id string, payload dto.CoursePayload) (json.RawMessage, error)
	DeleteCourse(ctx context.Context, id string) error
}

// CourseService orchestrates the catalog workflows: paged listing with
// search, cached single-record reads, and create/update/delete delegated to
// the upstream API.
type CourseService struct {
	upstream courseClient
	lookups  *LookupService
	cache    *cache.CourseCache
	metrics  *MetricsService
	validate *validator.Validate
	logger   *zap.Logger

	// listSeq orders concurrent list requests so a slow response for a
	// superseded request cannot overwrite fresher cache state.
	listSeq     atomic.Uint64
	lastApplied atomic.Uint64
}

// NewCourseService creates a course service.
func NewCourseService(upstream courseClient, lookups *LookupService, courses *cache.CourseCache, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{
		upstream: upstream,
		lookups:  lookups,
		cache:    courses,
		metrics:  metrics,
		validate: validate,
		logger:   logger,
	}
}

// List fetches one page of courses, derives length and currency symbol for
// each, refreshes the cache and returns the page with its window. Paging
// counters always come from the upstream response.
func (s *CourseService) List(ctx context.Context, page int, query string) (*dto.ListCoursesResult, error) {
	if page < 1 {
		page = 1
	}
	seq := s.listSeq.Add(1)

	resp, err := s.upstream.ListCourses(ctx, page, query)
	if err != nil {
		return nil, err
	}

	for i := range resp.Courses {
		Decorate(&resp.Courses[i])
	}

	if s.applyListSeq(seq) {
		s.cache.PutPage(resp.Courses)
	} else {
		s.logger.Debug("discarding stale list response", zap.Uint64("seq", seq))
	}

	return &dto.ListCoursesResult{
		Courses: resp.Courses,
		Pagination: models.Pagination{
			CurrentPage: resp.CurrentPage,
			PageSize:    PageSize,
			TotalPages:  resp.TotalPages,
		},
		PageWindow: PageWindow(resp.CurrentPage, resp.TotalPages),
	}, nil
}

// applyListSeq reports whether a response with the given sequence number is
// still the freshest and records it when so.
func (s *CourseService) applyListSeq(seq uint64) bool {
	for {
		last := s.lastApplied.Load()
		if seq < last {
			return false
		}
		if s.lastApplied.CompareAndSwap(last, seq) {
			return true
		}
	}
}

// Get is a pure cache lookup: it returns the course only if a prior list
// fetch or mutation put it there, and never reaches for the network on a
// miss.
func (s *CourseService) Get(id string) (*models.Course, error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "course id is required")
	}
	course, ok := s.cache.Get(id)
	if !ok {
		if s.metrics != nil {
			s.metrics.CacheMiss()
		}
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not loaded; fetch the list first")
	}
	if s.metrics != nil {
		s.metrics.CacheHit()
	}
	return &course, nil
}

// Create submits a new course. Reference names are resolved to identifiers;
// an unresolvable name is logged and omitted, never a blocker.
func (s *CourseService) Create(ctx context.Context, req dto.SaveCourseRequest) (json.RawMessage, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	payload, err := s.buildPayload(ctx, req)
	if err != nil {
		return nil, err
	}

	ack, err := s.upstream.CreateCourse(ctx, payload)
	if err != nil {
		return nil, err
	}
	return ack, nil
}

// Update submits changed fields for an existing course and shallow-merges
// them into the cached copy, preserving fields the payload does not carry.
func (s *CourseService) Update(ctx context.Context, id string, req dto.SaveCourseRequest) (json.RawMessage, error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "course id is required")
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	payload, err := s.buildPayload(ctx, req)
	if err != nil {
		return nil, err
	}

	ack, err := s.upstream.UpdateCourse(ctx, id, payload)
	if err != nil {
		return nil, err
	}

	if existing, ok := s.cache.Get(id); ok {
		existing.CourseName = payload.CourseName
		existing.CourseDescription = payload.CourseDescription
		existing.StartDate = payload.StartDate
		existing.EndDate = payload.EndDate
		existing.Price = payload.Price
		if req.University != "" {
			existing.University = req.University
		}
		if req.Country != "" {
			existing.Country = req.Country
		}
		if req.City != "" {
			existing.City = req.City
		}
		if req.Currency != "" {
			existing.Currency = req.Currency
		}
		Decorate(&existing)
		s.cache.Put(existing)
	}

	return ack, nil
}

// Delete removes the remote record and evicts the cached copy.
func (s *CourseService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "course id is required")
	}
	if err := s.upstream.DeleteCourse(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(id)
	return nil
}

// buildPayload maps the form request to the upstream wire shape: dates
// normalised to YYYY-MM-DD and reference names resolved to identifiers.
// Resolution failures downgrade to a warning; upstream lookup-list failures
// abort.
func (s *CourseService) buildPayload(ctx context.Context, req dto.SaveCourseRequest) (dto.CoursePayload, error) {
	payload := dto.CoursePayload{
		CourseName:        req.CourseName,
		CourseDescription: req.Description,
		StartDate:         FormatDate(req.StartDate),
		EndDate:           FormatDate(req.EndDate),
		Price:             req.Price,
	}

	var err error
	if payload.UniversityID, err = s.resolveRef(ctx, "university", req.University, s.lookups.ResolveUniversityID); err != nil {
		return dto.CoursePayload{}, err
	}
	if payload.CountryID, err = s.resolveRef(ctx, "country", req.Country, s.lookups.ResolveCountryID); err != nil {
		return dto.CoursePayload{}, err
	}
	if payload.CityID, err = s.resolveRef(ctx, "city", req.City, s.lookups.ResolveCityID); err != nil {
		return dto.CoursePayload{}, err
	}
	if payload.CurrencyID, err = s.resolveRef(ctx, "currency", req.Currency, s.lookups.ResolveCurrencyID); err != nil {
		return dto.CoursePayload{}, err
	}

	return payload, nil
}

func (s *CourseService) resolveRef(ctx context.Context, field, name string, resolve func(context.Context, string) (*int, error)) (*int, error) {
	id, err := resolve(ctx, name)
	if err == nil {
		return id, nil
	}
	appErr := appErrors.FromError(err)
	if appErr.Code == appErrors.ErrUnresolvedRef.Code {
		// Submission proceeds with the identifier omitted.
		s.logger.Warn("unresolved reference", zap.String("field", field), zap.String("value", name))
		return nil, nil
	}
	return nil, err
}
