package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"shiftdesk/models"
	"shiftdesk/services/errs"

	"go.uber.org/zap"
)

// RosterService is the remote source of truth for employees.
type RosterService interface {
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	CreateEmployee(ctx context.Context, draft models.EmployeeDraft) (models.Employee, error)
	UpdateEmployee(ctx context.Context, id models.EmployeeID, draft models.EmployeeDraft) (models.Employee, error)
	DeleteEmployee(ctx context.Context, id models.EmployeeID) error
}

type rosterClient struct {
	httpClient
}

// NewRosterClient returns a RosterService speaking the /api/employees contract at baseURL.
func NewRosterClient(baseURL string, timeout time.Duration, logger *zap.Logger) RosterService {
	return &rosterClient{httpClient: newHTTPClient(baseURL, timeout, logger)}
}

func (c *rosterClient) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	if err := c.do(ctx, "list employees", http.MethodGet, "/api/employees", nil, &employees, nil); err != nil {
		return nil, err
	}
	for i, e := range employees {
		if e.ID == "" {
			return nil, &errs.MalformedResponseError{Op: "list employees", Err: fmt.Errorf("employee without id at index %d", i)}
		}
	}
	if employees == nil {
		employees = []models.Employee{}
	}
	return employees, nil
}

func (c *rosterClient) CreateEmployee(ctx context.Context, draft models.EmployeeDraft) (models.Employee, error) {
	var created models.Employee
	if err := c.do(ctx, "create employee", http.MethodPost, "/api/employees", draft, &created, nil); err != nil {
		return models.Employee{}, err
	}
	if created.ID == "" {
		return models.Employee{}, &errs.MalformedResponseError{Op: "create employee", Err: errors.New("response has no id")}
	}
	return created, nil
}

func (c *rosterClient) UpdateEmployee(ctx context.Context, id models.EmployeeID, draft models.EmployeeDraft) (models.Employee, error) {
	var updated models.Employee
	path := "/api/employees/" + url.PathEscape(id.String())
	if err := c.do(ctx, "update employee", http.MethodPut, path, draft, &updated, nil); err != nil {
		if statusOf(err) == http.StatusNotFound {
			return models.Employee{}, &errs.NotFoundError{Resource: "employee", ID: id.String()}
		}
		return models.Employee{}, err
	}
	if updated.ID == "" {
		// Some roster services answer PUT with the draft only.
		updated.ID = id
	}
	return updated, nil
}

func (c *rosterClient) DeleteEmployee(ctx context.Context, id models.EmployeeID) error {
	path := "/api/employees/" + url.PathEscape(id.String())
	if err := c.do(ctx, "delete employee", http.MethodDelete, path, nil, nil, nil); err != nil {
		if statusOf(err) == http.StatusNotFound {
			return &errs.NotFoundError{Resource: "employee", ID: id.String()}
		}
		return err
	}
	return nil
}
