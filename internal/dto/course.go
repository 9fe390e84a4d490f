package dto

import "github.com/dirm02/course-admin-api/internal/models"

// SaveCourseRequest carries the course form as the admin UI submits it:
// institution, country, city and currency arrive as display strings and are
// resolved to identifiers server-side. Only the course name is required;
// an unresolvable reference never blocks submission.
type SaveCourseRequest struct {
	CourseName  string  `json:"courseName" validate:"required"`
	University  string  `json:"university"`
	Country     string  `json:"country"`
	City        string  `json:"city"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	Description string  `json:"description"`
}

// CoursePayload is the wire shape the upstream catalog API accepts for
// create and update. Reference fields hold resolved identifiers and are
// omitted entirely when resolution failed.
type CoursePayload struct {
	CourseName        string  `json:"CourseName"`
	CourseDescription string  `json:"CourseDescription"`
	StartDate         string  `json:"StartDate"`
	EndDate           string  `json:"EndDate"`
	Price             float64 `json:"Price"`
	CurrencyID        *int    `json:"CurrencyID,omitempty"`
	UniversityID      *int    `json:"UniversityID,omitempty"`
	CountryID         *int    `json:"CountryID,omitempty"`
	CityID            *int    `json:"CityID,omitempty"`
}

// ListCoursesResult bundles one decorated page with the metadata the list
// view renders: upstream paging counters plus the page window.
type ListCoursesResult struct {
	Courses    []models.Course
	Pagination models.Pagination
	PageWindow []int
}
