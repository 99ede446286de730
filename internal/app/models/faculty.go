package models

// Department represents one of the university's academic units.
type Department struct {
	ID   int64  `json:"id" db:"id" example:"1"`
	Name string `json:"name" db:"name" example:"School of Allied Medicine"`
	Code string `json:"code" db:"code" example:"SAM"`
}

// FacultyMember defines a person who can serve on defense panels, based on the
// 'faculty_members' table. HistoricalAppearances is the appearance count
// accumulated before the current request, scoped by the configured reset
// boundary; it is loaded by the repository, never entered by hand.
type FacultyMember struct {
	ID                    int64  `json:"id" db:"id" example:"1"`
	FullName              string `json:"fullName" db:"full_name" example:"Maria L. Santos"`
	DepartmentID          int64  `json:"departmentId" db:"department_id" example:"2"`
	HistoricalAppearances int    `json:"historicalAppearances" example:"7"`

	// Relation (populated when needed)
	Department *Department `json:"department,omitempty"`
}
