package employee

import "time"

type Employee struct {
	ID               int64      `json:"id"`
	Code             string     `json:"employeeCode"`
	FirstName        string     `json:"firstName"`
	LastName         string     `json:"lastName"`
	Email            string     `json:"email"`
	PasswordHash     string     `json:"-"`
	Phone            *string    `json:"phone"`
	DateOfBirth      *time.Time `json:"dateOfBirth"`
	Gender           *string    `json:"gender"`
	JobTitle         *string    `json:"jobTitle"`
	DepartmentID     *int64     `json:"departmentId"`
	ReportsTo        *int64     `json:"reportsTo"`
	EmploymentType   *string    `json:"employmentType"`
	StartDate        *time.Time `json:"startDate"`
	Salary           *float64   `json:"salary"`
	PayFrequency     *string    `json:"payFrequency"`
	Address          *string    `json:"address"`
	City             *string    `json:"city"`
	Country          *string    `json:"country"`
	Photo            *string    `json:"photo"`
	Status           string     `json:"status"`
	PerformanceScore int        `json:"performanceScore"`
	Role             string     `json:"role"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`

	DepartmentName   *string `json:"departmentName,omitempty"`
	DepartmentColor  *string `json:"departmentColor,omitempty"`
	ManagerFirstName *string `json:"managerFirstName,omitempty"`
	ManagerLastName  *string `json:"managerLastName,omitempty"`
}

// NewEmployee carries a validated create payload. Password is the plaintext
// to hash; callers must never persist it.
type NewEmployee struct {
	FirstName      string
	LastName       string
	Email          string
	Password       string
	Phone          *string
	DateOfBirth    *time.Time
	Gender         *string
	JobTitle       *string
	DepartmentID   *int64
	ReportsTo      *int64
	EmploymentType *string
	StartDate      *time.Time
	Salary         *float64
	PayFrequency   *string
	Address        *string
	City           *string
	Country        *string
	Role           string
}

// Patch is the typed partial update: nil means "not provided". Its fields
// are the complete update allow-list for employees; unknown payload fields
// never reach the store.
type Patch struct {
	FirstName        *string  `json:"firstName"`
	LastName         *string  `json:"lastName"`
	Email            *string  `json:"email"`
	Phone            *string  `json:"phone"`
	DateOfBirth      *string  `json:"dateOfBirth"`
	Gender           *string  `json:"gender"`
	JobTitle         *string  `json:"jobTitle"`
	DepartmentID     *int64   `json:"departmentId"`
	ReportsTo        *int64   `json:"reportsTo"`
	EmploymentType   *string  `json:"employmentType"`
	StartDate        *string  `json:"startDate"`
	Salary           *float64 `json:"salary"`
	PayFrequency     *string  `json:"payFrequency"`
	Address          *string  `json:"address"`
	City             *string  `json:"city"`
	Country          *string  `json:"country"`
	Status           *string  `json:"status"`
	PerformanceScore *int     `json:"performanceScore"`
	Role             *string  `json:"role"`
	Photo            *string  `json:"photo"`
}

type Subordinate struct {
	ID        int64   `json:"id"`
	Code      string  `json:"employeeCode"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	JobTitle  *string `json:"jobTitle"`
	Email     string  `json:"email"`
}

type Filter struct {
	Status     string
	Department string
	Search     string
	SortBy     string
	Order      string
}

type TopPerformer struct {
	ID               int64   `json:"id"`
	Code             string  `json:"employeeCode"`
	FirstName        string  `json:"firstName"`
	LastName         string  `json:"lastName"`
	JobTitle         *string `json:"jobTitle"`
	PerformanceScore int     `json:"performanceScore"`
	Department       *string `json:"department"`
	DepartmentColor  *string `json:"departmentColor"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type DepartmentCount struct {
	Department string `json:"department"`
	Count      int    `json:"count"`
}

type TypeCount struct {
	EmploymentType *string `json:"employmentType"`
	Count          int     `json:"count"`
}

type GenderCount struct {
	Gender string `json:"gender"`
	Count  int    `json:"count"`
}

type DepartmentSalary struct {
	Department string  `json:"department"`
	AvgSalary  float64 `json:"avgSalary"`
}

type Statistics struct {
	ByStatus              []StatusCount      `json:"byStatus"`
	ByDepartment          []DepartmentCount  `json:"byDepartment"`
	ByEmploymentType      []TypeCount        `json:"byEmploymentType"`
	ByGender              []GenderCount      `json:"byGender"`
	AvgSalaryByDepartment []DepartmentSalary `json:"avgSalaryByDepartment"`
}
