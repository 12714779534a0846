// File: database/repository/demand/crud.go
package demandRepo

import (
	"context"
	"errors"
	"time"

	"shiftdesk/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetByDate returns the stored slots of date. A date with no document has no demand.
func (r *mongoDemandRepo) GetByDate(ctx context.Context, date string) ([]models.DemandSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc models.DemandDocument
	err := r.coll.FindOne(ctx, bson.M{"date": date}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return []models.DemandSlot{}, nil
	}
	if err != nil {
		return nil, err
	}
	return models.CloneSlots(doc.Slots), nil
}

// ReplaceForDate upserts the full day of demand for date.
func (r *mongoDemandRepo) ReplaceForDate(ctx context.Context, date string, slots []models.DemandSlot) ([]models.DemandSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	doc := models.DemandDocument{
		Date:      date,
		Slots:     models.CloneSlots(slots),
		UpdatedAt: time.Now().UTC(),
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"date": date}, doc, opts); err != nil {
		return nil, err
	}
	return models.CloneSlots(doc.Slots), nil
}
