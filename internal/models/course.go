package models

// Course is the primary catalog record as the upstream API ships it.
// LengthDays and CurrencySymbol are derived on every load and never
// trusted from a prior computation.
type Course struct {
	ID                string  `json:"_id"`
	CourseName        string  `json:"CourseName"`
	CourseDescription string  `json:"CourseDescription"`
	StartDate         string  `json:"StartDate"`
	EndDate           string  `json:"EndDate"`
	Price             float64 `json:"Price"`
	CreatedAt         string  `json:"createdAt"`
	University        string  `json:"University"`
	City              string  `json:"City"`
	Country           string  `json:"Country"`
	Currency          string  `json:"Currency"`
	LengthDays        int     `json:"Length"`
	CurrencySymbol    string  `json:"CurrencySymbol"`
}

// CoursePage is one page of courses together with the paging metadata the
// upstream reports. Total and current page always come from the upstream
// response, never from local arithmetic.
type CoursePage struct {
	Courses     []Course `json:"courses"`
	TotalPages  int      `json:"total_pages"`
	CurrentPage int      `json:"current_page"`
}

// Pagination is the paging metadata echoed in list responses.
type Pagination struct {
	CurrentPage int `json:"current_page"`
	PageSize    int `json:"page_size"`
	TotalPages  int `json:"total_pages"`
}
