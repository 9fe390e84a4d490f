package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dirm02/course-admin-api/internal/dto"
	"github.com/dirm02/course-admin-api/internal/models"
	"github.com/dirm02/course-admin-api/internal/service"
	appErrors "github.com/dirm02/course-admin-api/pkg/errors"
	"github.com/dirm02/course-admin-api/pkg/response"
)

type courseService interface {
	List(ctx context.Context, page int, query string) (*dto.ListCoursesResult, error)
	Get(id string) (*models.Course, error)
	Create(ctx context.Context, req dto.SaveCourseRequest) (json.RawMessage, error)
	Update(ctx context.Context, id string, req dto.SaveCourseRequest) (json.RawMessage, error)
	Delete(ctx context.Context, id string) error
}

type exportService interface {
	Export(ctx context.Context, format, query string) (*service.ExportResult, error)
}

// CourseHandler exposes the catalog endpoints.
type CourseHandler struct {
	service courseService
	export  exportService
}

// NewCourseHandler constructs a course handler. The export service may be
// nil when the export endpoint is disabled.
func NewCourseHandler(svc courseService, exportSvc exportService) *CourseHandler {
	return &CourseHandler{service: svc, export: exportSvc}
}

// List godoc
// @Summary List courses
// @Description One page of courses with derived fields, paging counters and the page window
// @Tags Courses
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param query query string false "Free-text search"
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	page := 1
	if parsed, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		page = parsed
	}
	query := c.Query("query")

	result, err := h.service.List(c.Request.Context(), page, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result.Courses, &result.Pagination, map[string]interface{}{
		"page_window": result.PageWindow,
	})
}

// Get godoc
// @Summary Get a cached course
// @Description Serves the edit-form preload from the local cache; 404 when the course was never listed
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.service.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// Create godoc
// @Summary Create course
// @Tags Courses
// @Accept json
// @Produce json
// @Param payload body dto.SaveCourseRequest true "Course form"
// @Success 201 {object} response.Envelope
// @Router /courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	var req dto.SaveCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	ack, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, ack)
}

// Update godoc
// @Summary Update course
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body dto.SaveCourseRequest true "Course form"
// @Success 200 {object} response.Envelope
// @Router /courses/{id} [put]
func (h *CourseHandler) Update(c *gin.Context) {
	var req dto.SaveCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	ack, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ack, nil)
}

// Delete godoc
// @Summary Delete course
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 204
// @Router /courses/{id} [delete]
func (h *CourseHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Export godoc
// @Summary Export the catalog
// @Description Streams the full filtered catalog as CSV or PDF
// @Tags Courses
// @Produce text/csv
// @Param format query string false "csv or pdf" default(csv)
// @Param query query string false "Free-text search"
// @Success 200 {file} byte
// @Router /courses/export [get]
func (h *CourseHandler) Export(c *gin.Context) {
	if h.export == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "export is disabled"))
		return
	}
	result, err := h.export.Export(c.Request.Context(), c.DefaultQuery("format", "csv"), c.Query("query"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
