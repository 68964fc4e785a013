package department

import "time"

type Department struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description"`
	ManagerID     *int64    `json:"managerId"`
	Budget        *float64  `json:"budget"`
	Location      *string   `json:"location"`
	Color         *string   `json:"color"`
	EmployeeCount int       `json:"employeeCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	ManagerFirstName *string `json:"managerFirstName,omitempty"`
	ManagerLastName  *string `json:"managerLastName,omitempty"`

	// ActiveEmployeeCount is computed from the employees table, as opposed
	// to EmployeeCount which is the maintained counter column.
	ActiveEmployeeCount *int `json:"activeEmployeeCount,omitempty"`
}

type NewDepartment struct {
	Name        string
	Description *string
	ManagerID   *int64
	Budget      *float64
	Location    *string
	Color       *string
}

// Patch is the typed partial update for departments; nil means "not
// provided". EmployeeCount is updatable on purpose so the counter can be
// corrected by hand when it drifts.
type Patch struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	ManagerID     *int64   `json:"managerId"`
	Budget        *float64 `json:"budget"`
	Location      *string  `json:"location"`
	Color         *string  `json:"color"`
	EmployeeCount *int     `json:"employeeCount"`
}

type Member struct {
	ID        int64   `json:"id"`
	Code      string  `json:"employeeCode"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	JobTitle  *string `json:"jobTitle"`
	Email     string  `json:"email"`
	Status    string  `json:"status"`
}

type Statistics struct {
	TotalEmployees  int      `json:"totalEmployees"`
	ActiveEmployees int      `json:"activeEmployees"`
	OnLeave         int      `json:"onLeave"`
	AvgSalary       *float64 `json:"avgSalary"`
	AvgPerformance  *float64 `json:"avgPerformance"`
}

// Detail is the single-department projection: the record plus its member
// list and aggregate statistics.
type Detail struct {
	Department
	Employees  []Member   `json:"employees"`
	Statistics Statistics `json:"statistics"`
}
