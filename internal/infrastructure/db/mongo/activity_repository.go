package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/projecthub/api/internal/core/domain"
	"github.com/projecthub/api/internal/core/ports"
)

const collectionActivities = "activities"

// ActivityRepository is insert-and-read only.
type ActivityRepository struct {
	col *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{col: db.Collection(collectionActivities)}
}

var _ ports.ActivityRepository = (*ActivityRepository)(nil)

type activityDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	User      primitive.ObjectID `bson:"user"`
	Type      string             `bson:"type"`
	Action    string             `bson:"action"`
	Project   primitive.ObjectID `bson:"project,omitempty"`
	Task      primitive.ObjectID `bson:"task,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d *activityDoc) toDomain() *domain.Activity {
	return &domain.Activity{
		ID:        d.ID.Hex(),
		ActorID:   hexOrEmpty(d.User),
		Kind:      domain.ActivityKind(d.Type),
		Action:    d.Action,
		ProjectID: hexOrEmpty(d.Project),
		TaskID:    hexOrEmpty(d.Task),
		CreatedAt: d.CreatedAt.UTC(),
	}
}

func (r *ActivityRepository) Insert(ctx context.Context, a *domain.Activity) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := activityDoc{
		User:      optionalID(a.ActorID),
		Type:      string(a.Kind),
		Action:    a.Action,
		Project:   optionalID(a.ProjectID),
		Task:      optionalID(a.TaskID),
		CreatedAt: utc(a.CreatedAt),
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	a.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (r *ActivityRepository) List(ctx context.Context, actorID string) ([]*domain.Activity, error) {
	filter := bson.M{}
	if actorID != "" {
		oid, ok := parseID(actorID)
		if !ok {
			return []*domain.Activity{}, nil
		}
		filter["user"] = oid
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, fmt.Errorf("find activities: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []activityDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode activities: %w", err)
	}

	out := make([]*domain.Activity, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

// EnsureIndexes creates indexes on the activities collection.
func (r *ActivityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
