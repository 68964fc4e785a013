package contract

import "time"

const (
	StatusDraft      = "draft"
	StatusActive     = "active"
	StatusExpired    = "expired"
	StatusTerminated = "terminated"
)

type Contract struct {
	ID             int64      `json:"id"`
	ContractNumber string     `json:"contractNumber"`
	EmployeeID     int64      `json:"employeeId"`
	ContractType   string     `json:"contractType"`
	StartDate      time.Time  `json:"startDate"`
	EndDate        *time.Time `json:"endDate"`
	Salary         *float64   `json:"salary"`
	Terms          *string    `json:"terms"`
	Status         string     `json:"status"`
	FilePath       *string    `json:"filePath"`
	SignedAt       *time.Time `json:"signedAt"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`

	EmployeeFirstName *string `json:"employeeFirstName,omitempty"`
	EmployeeLastName  *string `json:"employeeLastName,omitempty"`
	EmployeeCode      *string `json:"employeeCode,omitempty"`
	JobTitle          *string `json:"jobTitle,omitempty"`
	DepartmentName    *string `json:"departmentName,omitempty"`
}

type NewContract struct {
	EmployeeID   int64
	ContractType string
	StartDate    time.Time
	EndDate      *time.Time
	Salary       *float64
	Terms        *string
}

// Patch is the typed partial update for contracts; nil means "not provided".
type Patch struct {
	ContractType *string  `json:"contractType"`
	StartDate    *string  `json:"startDate"`
	EndDate      *string  `json:"endDate"`
	Salary       *float64 `json:"salary"`
	Terms        *string  `json:"terms"`
	Status       *string  `json:"status"`
	FilePath     *string  `json:"filePath"`
	SignedAt     *string  `json:"signedAt"`
}

type Filter struct {
	Status       string
	EmployeeID   int64
	ContractType string
}

type TypeCount struct {
	ContractType string `json:"contractType"`
	Count        int    `json:"count"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type Statistics struct {
	ByType       []TypeCount   `json:"byType"`
	ByStatus     []StatusCount `json:"byStatus"`
	ExpiringSoon int           `json:"expiringSoon"`
}
