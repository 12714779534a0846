// File: database/repository/employee/interface.go
package employeeRepo

import (
	"context"

	"shiftdesk/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type EmployeeRepository interface {
	List(ctx context.Context) ([]models.Employee, error)
	Create(ctx context.Context, draft models.EmployeeDraft) (models.Employee, error)
	Update(ctx context.Context, id models.EmployeeID, draft models.EmployeeDraft) (models.Employee, error)
	Delete(ctx context.Context, id models.EmployeeID) error
}

type mongoEmployeeRepo struct {
	coll *mongo.Collection
}

// NewMongoEmployeeRepo constructs a MongoDB EmployeeRepository on the "employees" collection.
func NewMongoEmployeeRepo(db *mongo.Database) EmployeeRepository {
	return &mongoEmployeeRepo{
		coll: db.Collection("employees"),
	}
}
