package database

import (
	"context"
	"log/slog"

	"saathi/internal/models"
	"saathi/internal/observability"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// indexSpecs lists the secondary indexes each collection needs. None are
// unique: username uniqueness is enforced by the user service.
var indexSpecs = []struct {
	collection string
	models     []mongo.IndexModel
}{
	{models.CollectionUsers, []mongo.IndexModel{{Keys: bson.D{{Key: "username", Value: 1}}}}},
	{models.CollectionUserProfiles, []mongo.IndexModel{{Keys: bson.D{{Key: "user_id", Value: 1}}}}},
	{models.CollectionUserSkills, []mongo.IndexModel{{Keys: bson.D{{Key: "user_id", Value: 1}}}}},
	{models.CollectionUserProjects, []mongo.IndexModel{{Keys: bson.D{{Key: "user_id", Value: 1}}}}},
	{models.CollectionCommunitySkills, []mongo.IndexModel{
		{Keys: bson.D{{Key: "skill", Value: 1}}},
		{Keys: bson.D{{Key: "community_id", Value: 1}}},
	}},
	{models.CollectionCommunities, []mongo.IndexModel{
		{Keys: bson.D{{Key: "registeration_date_time", Value: -1}}},
		{Keys: bson.D{{Key: "creator_username", Value: 1}}},
	}},
}

// EnsureIndexes creates the lookup indexes. Creating an existing index is a no-op.
func (g *Gateway) EnsureIndexes(ctx context.Context) error {
	for _, spec := range indexSpecs {
		ctx, span, end := g.begin(ctx, "create_indexes", spec.collection)
		names, err := g.db.Collection(spec.collection).Indexes().CreateMany(ctx, spec.models)
		if err != nil {
			err = g.fail(ctx, span, "create_indexes", spec.collection, err)
			end()
			return err
		}
		end()

		observability.Logger.DebugContext(ctx, "indexes ensured",
			slog.String("collection", spec.collection),
			slog.Any("indexes", names),
		)
	}
	return nil
}

// DropCollections removes every application collection. Used by the seeder
// to start from an empty database.
func (g *Gateway) DropCollections(ctx context.Context) error {
	for _, spec := range indexSpecs {
		ctx, span, end := g.begin(ctx, "drop", spec.collection)
		if err := g.db.Collection(spec.collection).Drop(ctx); err != nil {
			err = g.fail(ctx, span, "drop", spec.collection, err)
			end()
			return err
		}
		end()
	}
	observability.Logger.InfoContext(ctx, "collections dropped", slog.Int("count", len(indexSpecs)))
	return nil
}
