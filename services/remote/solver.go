package remote

import (
	"context"
	"errors"
	"net/http"
	"time"

	"shiftdesk/models"
	"shiftdesk/services/errs"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Solver computes an hour-indexed assignment of employees to roles.
type Solver interface {
	Solve(ctx context.Context, req models.SolverRequest) (models.SolverResponse, error)
}

type solverClient struct {
	httpClient
}

// NewSolverClient returns a Solver speaking the POST /api/schedule contract at baseURL.
func NewSolverClient(baseURL string, timeout time.Duration, logger *zap.Logger) Solver {
	return &solverClient{httpClient: newHTTPClient(baseURL, timeout, logger)}
}

func (c *solverClient) Solve(ctx context.Context, req models.SolverRequest) (models.SolverResponse, error) {
	requestID := uuid.New().String()
	c.logger.Info("submitting schedule request",
		zap.String("requestId", requestID),
		zap.Int("employees", len(req.Employees)),
		zap.String("contractVersion", req.ContractVersion),
	)

	var resp models.SolverResponse
	headers := map[string]string{"X-Request-ID": requestID}
	if err := c.do(ctx, "solve schedule", http.MethodPost, "/api/schedule", req, &resp, headers); err != nil {
		return models.SolverResponse{}, err
	}
	if resp.Schedule == nil {
		return models.SolverResponse{}, &errs.MalformedResponseError{Op: "solve schedule", Err: errors.New("missing schedule field")}
	}
	return resp, nil
}
