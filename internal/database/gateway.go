package database

import (
	"context"
	"errors"

	"saathi/internal/models"
	"saathi/internal/observability"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/otel/trace"
)

// Store is the set of storage primitives repositories depend on.
type Store interface {
	Insert(ctx context.Context, coll string, doc any) (primitive.ObjectID, error)
	InsertMany(ctx context.Context, coll string, docs []any) ([]primitive.ObjectID, error)
	Find(ctx context.Context, coll string, filter any, out any) error
	FindOne(ctx context.Context, coll string, filter any, out any) (bool, error)
	FindSorted(ctx context.Context, coll string, filter any, sortField string, skip, limit int64, out any) error
	Update(ctx context.Context, coll string, filter any, patch any) (bool, error)
	Upsert(ctx context.Context, coll string, filter any, set any, setOnInsert any) error
	DeleteMany(ctx context.Context, coll string, filter any) (bool, error)
	Aggregate(ctx context.Context, coll string, pipeline any, out any) error
	Ping(ctx context.Context) error
}

// Gateway implements Store on a MongoDB database. Every driver failure is
// logged, counted and returned as a STORAGE_UNAVAILABLE AppError. Absence is
// never an error here.
type Gateway struct {
	db     *mongo.Database
	logger *observability.RepoLogger
}

// NewGateway creates a gateway over db.
func NewGateway(db *mongo.Database) *Gateway {
	return &Gateway{
		db:     db,
		logger: observability.NewRepoLogger("gateway"),
	}
}

func (g *Gateway) begin(ctx context.Context, op, coll string) (context.Context, trace.Span, func()) {
	ctx, span := observability.StartStorageSpan(ctx, op, coll)
	done := observability.TrackStorage(op, coll)
	return ctx, span, func() {
		done()
		span.End()
	}
}

func (g *Gateway) fail(ctx context.Context, span trace.Span, op, coll string, err error) error {
	observability.StorageErrors.WithLabelValues(op, coll).Inc()
	observability.FailSpan(span, err)
	g.logger.LogError(ctx, err, op, coll)
	return models.NewStorageError(op+" "+coll, err)
}

// Insert stores one document and returns its id.
func (g *Gateway) Insert(ctx context.Context, coll string, doc any) (primitive.ObjectID, error) {
	ctx, span, end := g.begin(ctx, "insert", coll)
	defer end()

	res, err := g.db.Collection(coll).InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, g.fail(ctx, span, "insert", coll, err)
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	g.logger.LogWrite(ctx, "insert", coll, map[string]any{"id": id.Hex()})
	return id, nil
}

// InsertMany stores docs in one round trip. An empty batch is a no-op.
func (g *Gateway) InsertMany(ctx context.Context, coll string, docs []any) ([]primitive.ObjectID, error) {
	if len(docs) == 0 {
		return []primitive.ObjectID{}, nil
	}

	ctx, span, end := g.begin(ctx, "insert_many", coll)
	defer end()

	res, err := g.db.Collection(coll).InsertMany(ctx, docs)
	if err != nil {
		return nil, g.fail(ctx, span, "insert_many", coll, err)
	}

	ids := make([]primitive.ObjectID, 0, len(res.InsertedIDs))
	for _, raw := range res.InsertedIDs {
		if id, ok := raw.(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}
	g.logger.LogWrite(ctx, "insert_many", coll, map[string]any{"count": len(ids)})
	return ids, nil
}

// Find decodes every document matching filter into out, a pointer to a slice.
func (g *Gateway) Find(ctx context.Context, coll string, filter any, out any) error {
	ctx, span, end := g.begin(ctx, "find", coll)
	defer end()

	cur, err := g.db.Collection(coll).Find(ctx, filter)
	if err != nil {
		return g.fail(ctx, span, "find", coll, err)
	}
	if err := cur.All(ctx, out); err != nil {
		return g.fail(ctx, span, "find", coll, err)
	}
	return nil
}

// FindOne decodes the first match into out and reports whether one existed.
func (g *Gateway) FindOne(ctx context.Context, coll string, filter any, out any) (bool, error) {
	ctx, span, end := g.begin(ctx, "find_one", coll)
	defer end()

	err := g.db.Collection(coll).FindOne(ctx, filter).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, g.fail(ctx, span, "find_one", coll, err)
	}
	return true, nil
}

// FindSorted returns matches ordered by sortField descending, after skipping
// skip documents and keeping at most limit.
func (g *Gateway) FindSorted(ctx context.Context, coll string, filter any, sortField string, skip, limit int64, out any) error {
	ctx, span, end := g.begin(ctx, "find_sorted", coll)
	defer end()

	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := g.db.Collection(coll).Find(ctx, filter, opts)
	if err != nil {
		return g.fail(ctx, span, "find_sorted", coll, err)
	}
	if err := cur.All(ctx, out); err != nil {
		return g.fail(ctx, span, "find_sorted", coll, err)
	}
	return nil
}

// Update applies patch with $set to the first match and reports whether a
// document matched.
func (g *Gateway) Update(ctx context.Context, coll string, filter any, patch any) (bool, error) {
	ctx, span, end := g.begin(ctx, "update", coll)
	defer end()

	res, err := g.db.Collection(coll).UpdateOne(ctx, filter, bson.M{"$set": patch})
	if err != nil {
		return false, g.fail(ctx, span, "update", coll, err)
	}
	g.logger.LogWrite(ctx, "update", coll, map[string]any{"matched": res.MatchedCount})
	return res.MatchedCount > 0, nil
}

// Upsert updates the first match or inserts a new document built from filter,
// set and setOnInsert.
func (g *Gateway) Upsert(ctx context.Context, coll string, filter any, set any, setOnInsert any) error {
	ctx, span, end := g.begin(ctx, "upsert", coll)
	defer end()

	update := bson.M{}
	if set != nil {
		update["$set"] = set
	}
	if setOnInsert != nil {
		update["$setOnInsert"] = setOnInsert
	}
	if len(update) == 0 {
		return models.NewInternalError(errors.New("upsert " + coll + ": empty update"))
	}

	_, err := g.db.Collection(coll).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return g.fail(ctx, span, "upsert", coll, err)
	}
	return nil
}

// DeleteMany removes every match and reports whether anything was deleted.
func (g *Gateway) DeleteMany(ctx context.Context, coll string, filter any) (bool, error) {
	ctx, span, end := g.begin(ctx, "delete_many", coll)
	defer end()

	res, err := g.db.Collection(coll).DeleteMany(ctx, filter)
	if err != nil {
		return false, g.fail(ctx, span, "delete_many", coll, err)
	}
	g.logger.LogWrite(ctx, "delete_many", coll, map[string]any{"deleted": res.DeletedCount})
	return res.DeletedCount > 0, nil
}

// Aggregate runs pipeline and decodes the results into out.
func (g *Gateway) Aggregate(ctx context.Context, coll string, pipeline any, out any) error {
	ctx, span, end := g.begin(ctx, "aggregate", coll)
	defer end()

	cur, err := g.db.Collection(coll).Aggregate(ctx, pipeline)
	if err != nil {
		return g.fail(ctx, span, "aggregate", coll, err)
	}
	if err := cur.All(ctx, out); err != nil {
		return g.fail(ctx, span, "aggregate", coll, err)
	}
	return nil
}

// Ping checks that the primary is reachable.
func (g *Gateway) Ping(ctx context.Context) error {
	if err := g.db.Client().Ping(ctx, readpref.Primary()); err != nil {
		observability.StorageErrors.WithLabelValues("ping", "").Inc()
		return models.NewStorageError("ping", err)
	}
	return nil
}
