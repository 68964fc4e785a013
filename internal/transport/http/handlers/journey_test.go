package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"peoplehub/internal/app/server"
	"peoplehub/internal/platform/config"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestApp(t *testing.T) (*server.App, *httptest.Server) {
	t.Helper()
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := config.Config{
		DatabaseURL:   dbURL,
		JWTSecret:     "test-secret",
		JWTTTL:        time.Hour,
		Environment:   "test",
		MigrationsDir: "../../../../migrations",
		RunMigrations: true,
		RunSeed:       true,
	}

	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	ts := httptest.NewServer(app.Router)
	t.Cleanup(func() {
		ts.Close()
		app.Close()
	})
	return app, ts
}

func doJSON(t *testing.T, client *http.Client, method, url, token string, payload any) (int, envelope) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode %s %s response: %v", method, url, err)
	}
	return resp.StatusCode, env
}

func login(t *testing.T, client *http.Client, baseURL, email, password string) string {
	t.Helper()
	status, env := doJSON(t, client, "POST", baseURL+"/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if status != http.StatusOK {
		t.Fatalf("login as %s: status %d, message %q", email, status, env.Message)
	}
	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode login data: %v", err)
	}
	if data.Token == "" {
		t.Fatal("login returned empty token")
	}
	return data.Token
}

func registerEmployee(t *testing.T, client *http.Client, baseURL, email, password string) (int64, string) {
	t.Helper()
	status, env := doJSON(t, client, "POST", baseURL+"/api/auth/register", "", map[string]any{
		"firstName": "Test",
		"lastName":  "User",
		"email":     email,
		"password":  password,
	})
	if status != http.StatusCreated {
		t.Fatalf("register %s: status %d, message %q", email, status, env.Message)
	}
	var data struct {
		Token string `json:"token"`
		User  struct {
			ID int64 `json:"id"`
		} `json:"user"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode register data: %v", err)
	}
	return data.User.ID, data.Token
}

const (
	seedAdminEmail    = "alice.hartmann@peoplehub.test"
	seedAdminPassword = "password123"
)

func TestAuthJourney(t *testing.T) {
	_, ts := newTestApp(t)
	client := ts.Client()

	token := login(t, client, ts.URL, seedAdminEmail, seedAdminPassword)

	status, env := doJSON(t, client, "GET", ts.URL+"/api/auth/me", token, nil)
	if status != http.StatusOK {
		t.Fatalf("me: status %d, message %q", status, env.Message)
	}
	var me struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := json.Unmarshal(env.Data, &me); err != nil {
		t.Fatalf("decode me: %v", err)
	}
	if me.Email != seedAdminEmail || me.Role != "admin" {
		t.Errorf("me = %+v", me)
	}

	// Wrong password is a 401 with the credentials message.
	status, env = doJSON(t, client, "POST", ts.URL+"/api/auth/login", "", map[string]string{
		"email":    seedAdminEmail,
		"password": "wrong",
	})
	if status != http.StatusUnauthorized {
		t.Errorf("wrong password: status %d", status)
	}
	if env.Message != "Invalid credentials" {
		t.Errorf("wrong password message = %q", env.Message)
	}

	// No token at all is rejected.
	status, _ = doJSON(t, client, "GET", ts.URL+"/api/employees", "", nil)
	if status != http.StatusUnauthorized {
		t.Errorf("no token: status %d", status)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	_, ts := newTestApp(t)
	client := ts.Client()

	email := fmt.Sprintf("dup-%d@example.com", time.Now().UnixNano())
	registerEmployee(t, client, ts.URL, email, "secret123")

	status, env := doJSON(t, client, "POST", ts.URL+"/api/auth/register", "", map[string]any{
		"firstName": "Second",
		"lastName":  "User",
		"email":     email,
		"password":  "secret123",
	})
	if status != http.StatusConflict {
		t.Fatalf("duplicate register: status %d, message %q", status, env.Message)
	}
	if env.Message != "Email already registered" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestRegisterIgnoresRequestedRole(t *testing.T) {
	_, ts := newTestApp(t)
	client := ts.Client()

	email := fmt.Sprintf("wannabe-%d@example.com", time.Now().UnixNano())
	status, env := doJSON(t, client, "POST", ts.URL+"/api/auth/register", "", map[string]any{
		"firstName": "Eve",
		"lastName":  "Mallory",
		"email":     email,
		"password":  "secret123",
		"role":      "admin",
	})
	if status != http.StatusCreated {
		t.Fatalf("register: status %d, message %q", status, env.Message)
	}
	var data struct {
		Token string `json:"token"`
		User  struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode register data: %v", err)
	}
	if data.User.Role != "employee" {
		t.Errorf("self-registered role = %q, want employee", data.User.Role)
	}

	// The issued token must not open admin-gated routes.
	status, _ = doJSON(t, client, "POST", ts.URL+"/api/departments", data.Token, map[string]any{
		"name": fmt.Sprintf("Escalation %d", time.Now().UnixNano()),
	})
	if status != http.StatusForbidden {
		t.Errorf("self-registered account reached an admin route: status %d", status)
	}
}

func TestDeactivatedAccountCannotLogin(t *testing.T) {
	_, ts := newTestApp(t)
	client := ts.Client()
	admin := login(t, client, ts.URL, seedAdminEmail, seedAdminPassword)

	email := fmt.Sprintf("inactive-%d@example.com", time.Now().UnixNano())
	id, _ := registerEmployee(t, client, ts.URL, email, "secret123")

	status, env := doJSON(t, client, "PUT", fmt.Sprintf("%s/api/employees/%d", ts.URL, id), admin, map[string]any{
		"status": "inactive",
	})
	if status != http.StatusOK {
		t.Fatalf("deactivate: status %d, message %q", status, env.Message)
	}

	status, env = doJSON(t, client, "POST", ts.URL+"/api/auth/login", "", map[string]string{
		"email":    email,
		"password": "secret123",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("inactive login: status %d", status)
	}
	if env.Message != "Your account has been deactivated. Please contact HR." {
		t.Errorf("inactive login message = %q", env.Message)
	}
}

func TestEmployeeAndDepartmentJourney(t *testing.T) {
	_, ts := newTestApp(t)
	client := ts.Client()
	admin := login(t, client, ts.URL, seedAdminEmail, seedAdminPassword)

	deptName := fmt.Sprintf("Research %d", time.Now().UnixNano())
	status, env := doJSON(t, client, "POST", ts.URL+"/api/departments", admin, map[string]any{
		"name":  deptName,
		"color": "#ef4444",
	})
	if status != http.StatusCreated {
		t.Fatalf("create department: status %d, message %q", status, env.Message)
	}
	var dept struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &dept); err != nil {
		t.Fatalf("decode department: %v", err)
	}

	// Duplicate name is rejected.
	status, env = doJSON(t, client, "POST", ts.URL+"/api/departments", admin, map[string]any{"name": deptName})
	if status != http.StatusConflict {
		t.Errorf("duplicate department: status %d", status)
	}
	if env.Message != "Department with this name already exists" {
		t.Errorf("duplicate department message = %q", env.Message)
	}

	email := fmt.Sprintf("worker-%d@example.com", time.Now().UnixNano())
	status, env = doJSON(t, client, "POST", ts.URL+"/api/employees", admin, map[string]any{
		"firstName":    "Nora",
		"lastName":     "Weiss",
		"email":        email,
		"jobTitle":     "Researcher",
		"departmentId": dept.ID,
		"salary":       70000,
	})
	if status != http.StatusCreated {
		t.Fatalf("create employee: status %d, message %q", status, env.Message)
	}
	var emp struct {
		ID   int64  `json:"id"`
		Code string `json:"employeeCode"`
	}
	if err := json.Unmarshal(env.Data, &emp); err != nil {
		t.Fatalf("decode employee: %v", err)
	}
	if emp.Code == "" {
		t.Error("employee code not assigned")
	}

	// Department delete is guarded while it still has employees.
	status, env = doJSON(t, client, "DELETE", fmt.Sprintf("%s/api/departments/%d", ts.URL, dept.ID), admin, nil)
	if status != http.StatusConflict {
		t.Fatalf("guarded department delete: status %d, message %q", status, env.Message)
	}
	if env.Message != "Cannot delete department with employees. Please reassign employees first." {
		t.Errorf("guard message = %q", env.Message)
	}

	// An update with no recognized fields is a validation failure.
	status, env = doJSON(t, client, "PUT", fmt.Sprintf("%s/api/employees/%d", ts.URL, emp.ID), admin, map[string]any{
		"unknownField": "value",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("empty patch: status %d, message %q", status, env.Message)
	}
	if env.Message != "No valid fields to update" {
		t.Errorf("empty patch message = %q", env.Message)
	}

	status, env = doJSON(t, client, "PUT", fmt.Sprintf("%s/api/employees/%d", ts.URL, emp.ID), admin, map[string]any{
		"jobTitle": "Senior Researcher",
	})
	if status != http.StatusOK {
		t.Fatalf("update employee: status %d, message %q", status, env.Message)
	}

	// After removing the employee the department can be deleted.
	status, env = doJSON(t, client, "DELETE", fmt.Sprintf("%s/api/employees/%d", ts.URL, emp.ID), admin, nil)
	if status != http.StatusOK {
		t.Fatalf("delete employee: status %d, message %q", status, env.Message)
	}
	status, env = doJSON(t, client, "DELETE", fmt.Sprintf("%s/api/departments/%d", ts.URL, dept.ID), admin, nil)
	if status != http.StatusOK {
		t.Fatalf("delete department: status %d, message %q", status, env.Message)
	}
}

func TestDepartmentMembershipFollowsEmployeeMove(t *testing.T) {
	_, ts := newTestApp(t)
	client := ts.Client()
	admin := login(t, client, ts.URL, seedAdminEmail, seedAdminPassword)

	createDept := func(name string) int64 {
		t.Helper()
		status, env := doJSON(t, client, "POST", ts.URL+"/api/departments", admin, map[string]any{"name": name})
		if status != http.StatusCreated {
			t.Fatalf("create department %s: status %d, message %q", name, status, env.Message)
		}
		var dept struct {
			ID int64 `json:"id"`
		}
		if err := json.Unmarshal(env.Data, &dept); err != nil {
			t.Fatalf("decode department: %v", err)
		}
		return dept.ID
	}

	type deptDetail struct {
		EmployeeCount int `json:"employeeCount"`
		Employees     []struct {
			ID int64 `json:"id"`
		} `json:"employees"`
	}
	getDept := func(id int64) deptDetail {
		t.Helper()
		status, env := doJSON(t, client, "GET", fmt.Sprintf("%s/api/departments/%d", ts.URL, id), admin, nil)
		if status != http.StatusOK {
			t.Fatalf("get department %d: status %d, message %q", id, status, env.Message)
		}
		var detail deptDetail
		if err := json.Unmarshal(env.Data, &detail); err != nil {
			t.Fatalf("decode department detail: %v", err)
		}
		return detail
	}
	hasMember := func(d deptDetail, empID int64) bool {
		for _, m := range d.Employees {
			if m.ID == empID {
				return true
			}
		}
		return false
	}

	stamp := time.Now().UnixNano()
	oldDept := createDept(fmt.Sprintf("Platform %d", stamp))
	newDept := createDept(fmt.Sprintf("Delivery %d", stamp))

	status, env := doJSON(t, client, "POST", ts.URL+"/api/employees", admin, map[string]any{
		"firstName":    "Milan",
		"lastName":     "Novak",
		"email":        fmt.Sprintf("move-%d@example.com", stamp),
		"departmentId": oldDept,
	})
	if status != http.StatusCreated {
		t.Fatalf("create employee: status %d, message %q", status, env.Message)
	}
	var emp struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &emp); err != nil {
		t.Fatalf("decode employee: %v", err)
	}

	detail := getDept(oldDept)
	if !hasMember(detail, emp.ID) {
		t.Error("new hire missing from department member list")
	}
	if detail.EmployeeCount != 1 {
		t.Errorf("department employeeCount = %d, want 1", detail.EmployeeCount)
	}

	// Moving the employee updates both member lists and both counters.
	status, env = doJSON(t, client, "PUT", fmt.Sprintf("%s/api/employees/%d", ts.URL, emp.ID), admin, map[string]any{
		"departmentId": newDept,
	})
	if status != http.StatusOK {
		t.Fatalf("move employee: status %d, message %q", status, env.Message)
	}

	detail = getDept(oldDept)
	if hasMember(detail, emp.ID) {
		t.Error("moved employee still listed in the old department")
	}
	if detail.EmployeeCount != 0 {
		t.Errorf("old department employeeCount = %d, want 0", detail.EmployeeCount)
	}
	detail = getDept(newDept)
	if !hasMember(detail, emp.ID) {
		t.Error("moved employee missing from the new department")
	}
	if detail.EmployeeCount != 1 {
		t.Errorf("new department employeeCount = %d, want 1", detail.EmployeeCount)
	}

	doJSON(t, client, "DELETE", fmt.Sprintf("%s/api/employees/%d", ts.URL, emp.ID), admin, nil)
	doJSON(t, client, "DELETE", fmt.Sprintf("%s/api/departments/%d", ts.URL, oldDept), admin, nil)
	doJSON(t, client, "DELETE", fmt.Sprintf("%s/api/departments/%d", ts.URL, newDept), admin, nil)
}

func TestLeaveWorkflow(t *testing.T) {
	_, ts := newTestApp(t)
	client := ts.Client()
	admin := login(t, client, ts.URL, seedAdminEmail, seedAdminPassword)

	email := fmt.Sprintf("leave-%d@example.com", time.Now().UnixNano())
	_, workerToken := registerEmployee(t, client, ts.URL, email, "secret123")

	start := time.Now().AddDate(0, 2, 0).Format("2006-01-02")
	end := time.Now().AddDate(0, 2, 4).Format("2006-01-02")

	status, env := doJSON(t, client, "POST", ts.URL+"/api/leaves", workerToken, map[string]any{
		"leaveType": "vacation",
		"startDate": start,
		"endDate":   end,
		"reason":    "Trip",
	})
	if status != http.StatusCreated {
		t.Fatalf("create leave: status %d, message %q", status, env.Message)
	}
	var created struct {
		ID   int64 `json:"id"`
		Days int   `json:"days"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode leave: %v", err)
	}
	if created.Days != 5 {
		t.Errorf("days = %d, want 5", created.Days)
	}

	// An overlapping application for the same period is rejected.
	status, env = doJSON(t, client, "POST", ts.URL+"/api/leaves", workerToken, map[string]any{
		"leaveType": "sick",
		"startDate": start,
		"endDate":   end,
	})
	if status != http.StatusConflict {
		t.Fatalf("overlap: status %d, message %q", status, env.Message)
	}
	if env.Message != "You already have a leave application for this period" {
		t.Errorf("overlap message = %q", env.Message)
	}

	// Employees cannot decide applications.
	decideURL := fmt.Sprintf("%s/api/leaves/%d/status", ts.URL, created.ID)
	status, _ = doJSON(t, client, "PUT", decideURL, workerToken, map[string]any{"status": "approved"})
	if status != http.StatusForbidden {
		t.Errorf("employee decide: status %d", status)
	}

	status, env = doJSON(t, client, "PUT", decideURL, admin, map[string]any{"status": "approved"})
	if status != http.StatusOK {
		t.Fatalf("approve: status %d, message %q", status, env.Message)
	}

	// Approved is terminal; a second decision conflicts.
	status, env = doJSON(t, client, "PUT", decideURL, admin, map[string]any{"status": "rejected"})
	if status != http.StatusConflict {
		t.Fatalf("second decision: status %d, message %q", status, env.Message)
	}
	if env.Message != "Leave application is already approved" {
		t.Errorf("second decision message = %q", env.Message)
	}

	// Decided applications are only removable by an admin.
	leaveURL := fmt.Sprintf("%s/api/leaves/%d", ts.URL, created.ID)
	status, env = doJSON(t, client, "DELETE", leaveURL, workerToken, nil)
	if status != http.StatusForbidden {
		t.Fatalf("employee delete approved leave: status %d, message %q", status, env.Message)
	}
	if env.Message != "Cannot delete approved/rejected leave applications" {
		t.Errorf("employee delete message = %q", env.Message)
	}
	status, env = doJSON(t, client, "DELETE", leaveURL, admin, nil)
	if status != http.StatusOK {
		t.Fatalf("admin delete approved leave: status %d, message %q", status, env.Message)
	}
}

func TestEmployeeSeesOnlyOwnLeaves(t *testing.T) {
	_, ts := newTestApp(t)
	client := ts.Client()

	emailA := fmt.Sprintf("scope-a-%d@example.com", time.Now().UnixNano())
	emailB := fmt.Sprintf("scope-b-%d@example.com", time.Now().UnixNano())
	idA, tokenA := registerEmployee(t, client, ts.URL, emailA, "secret123")
	_, tokenB := registerEmployee(t, client, ts.URL, emailB, "secret123")

	start := time.Now().AddDate(0, 3, 0).Format("2006-01-02")
	end := time.Now().AddDate(0, 3, 1).Format("2006-01-02")
	status, env := doJSON(t, client, "POST", ts.URL+"/api/leaves", tokenA, map[string]any{
		"leaveType": "vacation",
		"startDate": start,
		"endDate":   end,
	})
	if status != http.StatusCreated {
		t.Fatalf("create leave: status %d, message %q", status, env.Message)
	}
	var created struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode leave: %v", err)
	}

	// The list is scoped to the caller even with an explicit filter.
	status, env = doJSON(t, client, "GET", fmt.Sprintf("%s/api/leaves?employeeId=%d", ts.URL, idA), tokenB, nil)
	if status != http.StatusOK {
		t.Fatalf("list leaves: status %d", status)
	}
	var items []struct {
		EmployeeID int64 `json:"employeeId"`
	}
	if err := json.Unmarshal(env.Data, &items); err != nil {
		t.Fatalf("decode leaves list: %v", err)
	}
	for _, item := range items {
		if item.EmployeeID == idA {
			t.Error("employee B can see employee A's applications")
		}
	}

	// Direct fetch of someone else's application is forbidden.
	status, env = doJSON(t, client, "GET", fmt.Sprintf("%s/api/leaves/%d", ts.URL, created.ID), tokenB, nil)
	if status != http.StatusForbidden {
		t.Fatalf("cross-employee get: status %d, message %q", status, env.Message)
	}
	if env.Message != "Not authorized to view this leave application" {
		t.Errorf("cross-employee message = %q", env.Message)
	}
}

func TestContractLifecycle(t *testing.T) {
	_, ts := newTestApp(t)
	client := ts.Client()
	admin := login(t, client, ts.URL, seedAdminEmail, seedAdminPassword)

	email := fmt.Sprintf("contract-%d@example.com", time.Now().UnixNano())
	id, _ := registerEmployee(t, client, ts.URL, email, "secret123")

	status, env := doJSON(t, client, "POST", ts.URL+"/api/contracts", admin, map[string]any{
		"employeeId":   id,
		"contractType": "permanent",
		"startDate":    time.Now().Format("2006-01-02"),
		"salary":       80000,
		"terms":        "Standard employment terms apply.",
	})
	if status != http.StatusCreated {
		t.Fatalf("create contract: status %d, message %q", status, env.Message)
	}
	var created struct {
		ID             int64  `json:"id"`
		ContractNumber string `json:"contractNumber"`
		Status         string `json:"status"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode contract: %v", err)
	}
	if created.Status != "draft" {
		t.Errorf("new contract status = %q, want draft", created.Status)
	}
	if created.ContractNumber == "" {
		t.Error("contract number not assigned")
	}

	// Creating for a missing employee is a 404.
	status, env = doJSON(t, client, "POST", ts.URL+"/api/contracts", admin, map[string]any{
		"employeeId":   999999999,
		"contractType": "permanent",
		"startDate":    time.Now().Format("2006-01-02"),
	})
	if status != http.StatusNotFound {
		t.Errorf("contract for missing employee: status %d, message %q", status, env.Message)
	}

	signURL := fmt.Sprintf("%s/api/contracts/%d/sign", ts.URL, created.ID)
	status, env = doJSON(t, client, "POST", signURL, admin, nil)
	if status != http.StatusOK {
		t.Fatalf("sign: status %d, message %q", status, env.Message)
	}
	var signed struct {
		Status   string  `json:"status"`
		SignedAt *string `json:"signedAt"`
	}
	if err := json.Unmarshal(env.Data, &signed); err != nil {
		t.Fatalf("decode signed contract: %v", err)
	}
	if signed.Status != "active" || signed.SignedAt == nil {
		t.Errorf("signed contract = %+v", signed)
	}

	status, env = doJSON(t, client, "POST", signURL, admin, nil)
	if status != http.StatusConflict {
		t.Fatalf("double sign: status %d, message %q", status, env.Message)
	}
	if env.Message != "Contract is already signed" {
		t.Errorf("double sign message = %q", env.Message)
	}

	// The PDF export responds with a PDF document.
	req, err := http.NewRequest("GET", fmt.Sprintf("%s/api/contracts/%d/pdf", ts.URL, created.ID), nil)
	if err != nil {
		t.Fatalf("pdf request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+admin)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("pdf export: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("pdf export status = %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Type"); got != "application/pdf" {
		t.Errorf("pdf content type = %q", got)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	if !bytes.HasPrefix(raw, []byte("%PDF")) {
		t.Error("response is not a PDF document")
	}
}

func TestDashboardAndReports(t *testing.T) {
	app, ts := newTestApp(t)
	client := ts.Client()
	admin := login(t, client, ts.URL, seedAdminEmail, seedAdminPassword)

	// Flush pending audit writes so recentActivities is stable.
	app.Activity.Wait()

	status, env := doJSON(t, client, "GET", ts.URL+"/api/dashboard/stats", admin, nil)
	if status != http.StatusOK {
		t.Fatalf("dashboard stats: status %d, message %q", status, env.Message)
	}
	var overview struct {
		Totals struct {
			TotalEmployees int `json:"totalEmployees"`
		} `json:"totals"`
	}
	if err := json.Unmarshal(env.Data, &overview); err != nil {
		t.Fatalf("decode overview: %v", err)
	}
	if overview.Totals.TotalEmployees == 0 {
		t.Error("expected seeded employees in dashboard totals")
	}

	status, env = doJSON(t, client, "GET", ts.URL+"/api/dashboard/trends?months=3", admin, nil)
	if status != http.StatusOK {
		t.Fatalf("dashboard trends: status %d, message %q", status, env.Message)
	}

	req, err := http.NewRequest("GET", ts.URL+"/api/reports/employees/export", nil)
	if err != nil {
		t.Fatalf("export request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+admin)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("export status = %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Type"); got != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("export content type = %q", got)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	// XLSX files are zip archives.
	if !bytes.HasPrefix(raw, []byte("PK")) {
		t.Error("export is not a workbook")
	}
}

func TestRoleGates(t *testing.T) {
	_, ts := newTestApp(t)
	client := ts.Client()

	email := fmt.Sprintf("gate-%d@example.com", time.Now().UnixNano())
	_, workerToken := registerEmployee(t, client, ts.URL, email, "secret123")

	status, _ := doJSON(t, client, "POST", ts.URL+"/api/employees", workerToken, map[string]any{
		"firstName": "X", "lastName": "Y", "email": "x@y.z",
	})
	if status != http.StatusForbidden {
		t.Errorf("employee create employee: status %d", status)
	}
	status, _ = doJSON(t, client, "POST", ts.URL+"/api/departments", workerToken, map[string]any{"name": "Nope"})
	if status != http.StatusForbidden {
		t.Errorf("employee create department: status %d", status)
	}
	status, _ = doJSON(t, client, "GET", ts.URL+"/api/reports/employees/export", workerToken, nil)
	if status != http.StatusForbidden {
		t.Errorf("employee export: status %d", status)
	}
}
