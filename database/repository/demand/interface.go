// File: database/repository/demand/interface.go
package demandRepo

import (
	"context"

	"shiftdesk/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type DemandRepository interface {
	GetByDate(ctx context.Context, date string) ([]models.DemandSlot, error)
	ReplaceForDate(ctx context.Context, date string, slots []models.DemandSlot) ([]models.DemandSlot, error)
}

type mongoDemandRepo struct {
	coll *mongo.Collection
}

// NewMongoDemandRepo constructs a MongoDB DemandRepository on the "demand" collection.
func NewMongoDemandRepo(db *mongo.Database) DemandRepository {
	return &mongoDemandRepo{
		coll: db.Collection("demand"),
	}
}
