// File: database/repository/settings/repo.go
package settingsRepo

import (
	"context"
	"errors"
	"time"

	"shiftdesk/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// singletonID keys the one settings document.
const singletonID = "global"

type settingsDoc struct {
	ID              string `bson:"_id"`
	models.Settings `bson:",inline"`
}

// MongoSettingsRepo persists the settings singleton. It satisfies settings.Repository.
type MongoSettingsRepo struct {
	coll *mongo.Collection
}

func NewMongoSettingsRepo(db *mongo.Database) *MongoSettingsRepo {
	return &MongoSettingsRepo{
		coll: db.Collection("settings"),
	}
}

// Load returns the stored settings, or nil when nothing was saved yet.
func (r *MongoSettingsRepo) Load(ctx context.Context) (*models.Settings, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc settingsDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": singletonID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s := doc.Settings.Clone()
	return &s, nil
}

func (r *MongoSettingsRepo) Save(ctx context.Context, s models.Settings) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	s.UpdatedAt = time.Now().UTC()
	doc := settingsDoc{ID: singletonID, Settings: s.Clone()}
	opts := options.Replace().SetUpsert(true)
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": singletonID}, doc, opts)
	return err
}
