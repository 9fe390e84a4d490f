package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dirm02/course-admin-api/internal/dto"
	"github.com/dirm02/course-admin-api/internal/models"
	"github.com/dirm02/course-admin-api/internal/service"
	appErrors "github.com/dirm02/course-admin-api/pkg/errors"
	"github.com/dirm02/course-admin-api/pkg/response"
)

type courseServiceMock struct {
	listResult *dto.ListCoursesResult
	listErr    error
	listPage   int
	listQuery  string
	course     *models.Course
	getErr     error
	createErr  error
	updateID   string
	deleteID   string
	deleteErr  error
}

func (m *courseServiceMock) List(ctx context.Context, page int, query string) (*dto.ListCoursesResult, error) {
	m.listPage = page
	m.listQuery = query
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.listResult, nil
}

func (m *courseServiceMock) Get(id string) (*models.Course, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.course, nil
}

func (m *courseServiceMock) Create(ctx context.Context, req dto.SaveCourseRequest) (json.RawMessage, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	return json.RawMessage(`{"acknowledged":true}`), nil
}

func (m *courseServiceMock) Update(ctx context.Context, id string, req dto.SaveCourseRequest) (json.RawMessage, error) {
	m.updateID = id
	return json.RawMessage(`{"acknowledged":true}`), nil
}

func (m *courseServiceMock) Delete(ctx context.Context, id string) error {
	m.deleteID = id
	return m.deleteErr
}

type exportServiceMock struct {
	result *service.ExportResult
	err    error
	format string
	query  string
}

func (m *exportServiceMock) Export(ctx context.Context, format, query string) (*service.ExportResult, error) {
	m.format = format
	m.query = query
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func TestCourseHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &courseServiceMock{listResult: &dto.ListCoursesResult{
		Courses:    []models.Course{{ID: "c1", CourseName: "Algorithms"}},
		Pagination: models.Pagination{CurrentPage: 2, PageSize: 10, TotalPages: 5},
		PageWindow: []int{1, 2, 3, 4, 5},
	}}
	handler := NewCourseHandler(mock, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/courses?page=2&query=algo", nil)
	c.Request = req

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, mock.listPage)
	assert.Equal(t, "algo", mock.listQuery)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Pagination)
	assert.Equal(t, 5, envelope.Pagination.TotalPages)
	assert.Equal(t, []interface{}{1.0, 2.0, 3.0, 4.0, 5.0}, envelope.Meta["page_window"])
}

func TestCourseHandlerListDefaultsPage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &courseServiceMock{listResult: &dto.ListCoursesResult{}}
	handler := NewCourseHandler(mock, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/courses", nil)
	c.Request = req

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, mock.listPage)
}

func TestCourseHandlerListUpstreamFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &courseServiceMock{listErr: appErrors.Clone(appErrors.ErrUpstream, "down")}
	handler := NewCourseHandler(mock, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/courses", nil)
	c.Request = req

	handler.List(c)
	require.Equal(t, http.StatusBadGateway, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrUpstream.Code, envelope.Error.Code)
}

func TestCourseHandlerGetCacheMiss(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &courseServiceMock{getErr: appErrors.Clone(appErrors.ErrNotFound, "course not loaded")}
	handler := NewCourseHandler(mock, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/courses/missing", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.Get(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCourseHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewCourseHandler(&courseServiceMock{}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(dto.SaveCourseRequest{CourseName: "Algorithms", University: "MIT"})
	req, _ := http.NewRequest(http.MethodPost, "/courses", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestCourseHandlerCreateInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewCourseHandler(&courseServiceMock{}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/courses", bytes.NewReader([]byte(`not json`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCourseHandlerUpdatePassesID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &courseServiceMock{}
	handler := NewCourseHandler(mock, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(dto.SaveCourseRequest{CourseName: "Algorithms"})
	req, _ := http.NewRequest(http.MethodPut, "/courses/c9", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "c9"}}

	handler.Update(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "c9", mock.updateID)
}

func TestCourseHandlerDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &courseServiceMock{}
	handler := NewCourseHandler(mock, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/courses/c9", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "c9"}}

	handler.Delete(c)
	// Flush gin's buffered status: with no response body, the status set by
	// c.Status is only written to the recorder when the header is flushed,
	// which the engine normally does at the end of a request.
	c.Writer.WriteHeaderNow()
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "c9", mock.deleteID)
}

func TestCourseHandlerExport(t *testing.T) {
	gin.SetMode(gin.TestMode)
	exportMock := &exportServiceMock{result: &service.ExportResult{
		Content:     []byte("Course,Institution\n"),
		ContentType: "text/csv; charset=utf-8",
		Filename:    "courses-20240901.csv",
	}}
	handler := NewCourseHandler(&courseServiceMock{}, exportMock)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/courses/export?format=csv&query=algo", nil)
	c.Request = req

	handler.Export(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "csv", exportMock.format)
	assert.Equal(t, "algo", exportMock.query)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "courses-20240901.csv")
}

func TestCourseHandlerExportDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewCourseHandler(&courseServiceMock{}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/courses/export", nil)
	c.Request = req

	handler.Export(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
