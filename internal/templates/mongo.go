package templates

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository implements Repository on two MongoDB collections: the per-user
// template sets ("moldcosts") and the read-only seed source ("defaultTemplate").
type MongoRepository struct {
	col      *mongo.Collection
	defaults *mongo.Collection
}

// NewMongoRepository creates the repository and ensures a unique index on userId
// so that at most one template set can exist per user. The seed-once guarantee
// rests on that index, so a failure to create it is fatal rather than ignored.
func NewMongoRepository(col, defaults *mongo.Collection) (*MongoRepository, error) {
	idx := mongo.IndexModel{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)}
	if _, err := col.Indexes().CreateOne(context.Background(), idx); err != nil {
		return nil, fmt.Errorf("ensure unique userId index: %w", err)
	}
	return &MongoRepository{col: col, defaults: defaults}, nil
}

func (r *MongoRepository) GetByUser(ctx context.Context, userID int64) (*TemplateSet, error) {
	var set TemplateSet
	if err := r.col.FindOne(ctx, bson.M{"userId": userID}).Decode(&set); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &set, nil
}

func (r *MongoRepository) SeedIfAbsent(ctx context.Context, userID int64, seed []Template) (*TemplateSet, error) {
	now := time.Now().UTC()
	filter := bson.M{"userId": userID}
	// userId is supplied by the equality filter on upsert; listing it again in
	// $setOnInsert would conflict.
	update := bson.M{"$setOnInsert": bson.M{
		"templates": seed,
		"createdAt": now,
		"updatedAt": now,
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var set TemplateSet
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&set); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// a concurrent first access won the upsert; read its document
			return r.GetByUser(ctx, userID)
		}
		return nil, err
	}
	return &set, nil
}

func (r *MongoRepository) Append(ctx context.Context, userID int64, tpl Template) (*TemplateSet, error) {
	now := time.Now().UTC()
	filter := bson.M{"userId": userID}
	update := bson.M{
		"$push":        bson.M{"templates": tpl},
		"$set":         bson.M{"updatedAt": now},
		"$setOnInsert": bson.M{"createdAt": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var set TemplateSet
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&set)
	if mongo.IsDuplicateKeyError(err) {
		// lost an upsert race on the unique userId index; the set exists now
		err = r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&set)
	}
	if err != nil {
		return nil, err
	}
	return &set, nil
}

func (r *MongoRepository) FindByName(ctx context.Context, userID int64, name string) (Template, error) {
	filter := bson.M{"userId": userID, "templates.templateName": name}
	opts := options.FindOne().SetProjection(bson.M{
		"_id":       0,
		"templates": bson.M{"$elemMatch": bson.M{"templateName": name}},
	})
	var res struct {
		Templates []Template `bson:"templates"`
	}
	if err := r.col.FindOne(ctx, filter, opts).Decode(&res); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if len(res.Templates) == 0 {
		return nil, ErrNotFound
	}
	return res.Templates[0], nil
}

func (r *MongoRepository) Defaults(ctx context.Context) ([]Template, error) {
	cur, err := r.defaults.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []Template{}
	for cur.Next(ctx) {
		var t Template
		if err := cur.Decode(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, cur.Err()
}
