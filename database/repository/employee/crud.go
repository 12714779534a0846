// File: database/repository/employee/crud.go
package employeeRepo

import (
	"context"
	"time"

	"shiftdesk/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// employeeDoc is the stored form of an employee; createdAt keeps List in insertion order.
type employeeDoc struct {
	models.Employee `bson:",inline"`
	CreatedAt       time.Time `bson:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt"`
}

func (r *mongoEmployeeRepo) List(ctx context.Context) ([]models.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []employeeDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	employees := make([]models.Employee, len(docs))
	for i, d := range docs {
		employees[i] = d.Employee
	}
	return employees, nil
}

func (r *mongoEmployeeRepo) Create(ctx context.Context, draft models.EmployeeDraft) (models.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	doc := employeeDoc{
		Employee:  draft.WithID(models.EmployeeID(uuid.New().String())),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return models.Employee{}, err
	}
	return doc.Employee, nil
}

func (r *mongoEmployeeRepo) Update(ctx context.Context, id models.EmployeeID, draft models.EmployeeDraft) (models.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	updated := draft.WithID(id)
	set := bson.M{
		"name":      updated.Name,
		"job":       updated.Job,
		"start":     updated.Start,
		"end":       updated.End,
		"updatedAt": time.Now().UTC(),
	}
	update := bson.M{"$set": set}
	if updated.Age != nil {
		set["age"] = *updated.Age
	} else {
		update["$unset"] = bson.M{"age": ""}
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return models.Employee{}, err
	}
	if res.MatchedCount == 0 {
		return models.Employee{}, mongo.ErrNoDocuments
	}
	return updated, nil
}

func (r *mongoEmployeeRepo) Delete(ctx context.Context, id models.EmployeeID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
