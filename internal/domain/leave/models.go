package leave

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Application struct {
	ID         int64      `json:"id"`
	EmployeeID int64      `json:"employeeId"`
	LeaveType  string     `json:"leaveType"`
	StartDate  time.Time  `json:"startDate"`
	EndDate    time.Time  `json:"endDate"`
	Days       int        `json:"days"`
	Reason     *string    `json:"reason"`
	Status     string     `json:"status"`
	ApprovedBy *int64     `json:"approvedBy"`
	ApprovedAt *time.Time `json:"approvedAt"`
	Comment    *string    `json:"comment"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`

	EmployeeFirstName *string `json:"employeeFirstName,omitempty"`
	EmployeeLastName  *string `json:"employeeLastName,omitempty"`
	EmployeeCode      *string `json:"employeeCode,omitempty"`
	DepartmentName    *string `json:"departmentName,omitempty"`
	ApproverFirstName *string `json:"approverFirstName,omitempty"`
	ApproverLastName  *string `json:"approverLastName,omitempty"`
}

// NewApplication carries a validated create payload. Days may be supplied by
// the caller; when zero it is derived from the date range.
type NewApplication struct {
	EmployeeID int64
	LeaveType  string
	StartDate  time.Time
	EndDate    time.Time
	Days       int
	Reason     *string
}

// Decision carries an approve or reject verdict for a pending application.
type Decision struct {
	Status  string
	Comment *string
	ByID    int64
}

type Filter struct {
	Status     string
	EmployeeID int64
	LeaveType  string
}

type TypeCount struct {
	LeaveType string `json:"leaveType"`
	Count     int    `json:"count"`
	TotalDays int    `json:"totalDays"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type MonthCount struct {
	Month     int `json:"month"`
	Count     int `json:"count"`
	TotalDays int `json:"totalDays"`
}

type Statistics struct {
	Year         int           `json:"year"`
	ByType       []TypeCount   `json:"byType"`
	ByStatus     []StatusCount `json:"byStatus"`
	MonthlyTrend []MonthCount  `json:"monthlyTrend"`
}
