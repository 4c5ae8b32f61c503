package repository

import (
	"context"

	"saathi/internal/cache"
	"saathi/internal/database"
	"saathi/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CommunityRepository defines persistence operations for communities.
type CommunityRepository interface {
	Create(ctx context.Context, community *models.Community) (primitive.ObjectID, error)
	AddSkills(ctx context.Context, communityID primitive.ObjectID, skills []string) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.CommunityDTO, error)
	ListByCreator(ctx context.Context, creator string) ([]models.CommunitySummary, error)
	Latest(ctx context.Context, skip, limit int64) ([]models.Community, error)
	SkillsFor(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID][]string, error)
	SearchBySkills(ctx context.Context, skills []string, limit int64, sortBeforeLimit bool) ([]models.CommunitySearchResult, error)
}

type communityRepository struct {
	store database.Store
	cache *cache.Store
}

// NewCommunityRepository returns a new CommunityRepository implementation. cache may be nil.
func NewCommunityRepository(store database.Store, c *cache.Store) CommunityRepository {
	return &communityRepository{store: store, cache: c}
}

func (r *communityRepository) Create(ctx context.Context, community *models.Community) (primitive.ObjectID, error) {
	if community.ID.IsZero() {
		community.ID = primitive.NewObjectID()
	}
	return r.store.Insert(ctx, models.CollectionCommunities, community)
}

func (r *communityRepository) AddSkills(ctx context.Context, communityID primitive.ObjectID, skills []string) error {
	docs := make([]any, 0, len(skills))
	for _, s := range skills {
		docs = append(docs, models.CommunitySkill{ID: primitive.NewObjectID(), CommunityID: communityID, Skill: s})
	}
	if _, err := r.store.InsertMany(ctx, models.CollectionCommunitySkills, docs); err != nil {
		return err
	}
	// A read between the community insert and this one may have cached an
	// empty tech stack.
	r.cache.Invalidate(ctx, cache.CommunityKey(communityID.Hex()))
	return nil
}

func (r *communityRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.CommunityDTO, error) {
	var dto models.CommunityDTO

	found, err := r.cache.Aside(ctx, "community", cache.CommunityKey(id.Hex()), &dto, cache.CommunityTTL, func() (bool, error) {
		var community models.Community
		found, err := r.store.FindOne(ctx, models.CollectionCommunities, bson.M{"_id": id}, &community)
		if err != nil || !found {
			return found, err
		}

		stacks, err := r.SkillsFor(ctx, []primitive.ObjectID{id})
		if err != nil {
			return false, err
		}
		dto = community.ToDTO(stacks[id])
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, models.NewNotFoundError("Community not found")
	}
	return &dto, nil
}

func (r *communityRepository) ListByCreator(ctx context.Context, creator string) ([]models.CommunitySummary, error) {
	out := []models.CommunitySummary{}
	if err := r.store.Find(ctx, models.CollectionCommunities, bson.M{"creator_username": creator}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *communityRepository) Latest(ctx context.Context, skip, limit int64) ([]models.Community, error) {
	out := []models.Community{}
	if err := r.store.FindSorted(ctx, models.CollectionCommunities, bson.M{}, "registeration_date_time", skip, limit, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SkillsFor loads the tech stacks of several communities in one query.
func (r *communityRepository) SkillsFor(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID][]string, error) {
	stacks := make(map[primitive.ObjectID][]string, len(ids))
	if len(ids) == 0 {
		return stacks, nil
	}

	var rows []models.CommunitySkill
	if err := r.store.Find(ctx, models.CollectionCommunitySkills, bson.M{"community_id": bson.M{"$in": ids}}, &rows); err != nil {
		return nil, err
	}
	for _, row := range rows {
		stacks[row.CommunityID] = append(stacks[row.CommunityID], row.Skill)
	}
	return stacks, nil
}

func (r *communityRepository) SearchBySkills(ctx context.Context, skills []string, limit int64, sortBeforeLimit bool) ([]models.CommunitySearchResult, error) {
	out := []models.CommunitySearchResult{}
	if err := r.store.Aggregate(ctx, models.CollectionCommunitySkills, SkillSearchPipeline(skills, limit, sortBeforeLimit), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SkillSearchPipeline groups matching community_skills rows by community,
// joins the community and keeps limit rows ordered newest first. By default
// the limit is applied before the sort, so the rows kept are not necessarily
// the newest matches; sortBeforeLimit swaps the two stages.
func SkillSearchPipeline(skills []string, limit int64, sortBeforeLimit bool) mongo.Pipeline {
	if skills == nil {
		skills = []string{}
	}

	limitStage := bson.D{{Key: "$limit", Value: limit}}
	sortStage := bson.D{{Key: "$sort", Value: bson.D{{Key: "community.registeration_date_time", Value: -1}}}}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "skill", Value: bson.D{{Key: "$in", Value: skills}}}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$community_id"},
			{Key: "tech_stack", Value: bson.D{{Key: "$addToSet", Value: "$skill"}}},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: models.CollectionCommunities},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "community"},
		}}},
		{{Key: "$unwind", Value: "$community"}},
	}

	if sortBeforeLimit {
		pipeline = append(pipeline, sortStage, limitStage)
	} else {
		pipeline = append(pipeline, limitStage, sortStage)
	}

	return append(pipeline, bson.D{{Key: "$project", Value: bson.D{
		{Key: "_id", Value: 0},
		{Key: "name", Value: "$community.name"},
		{Key: "creator_username", Value: "$community.creator_username"},
		{Key: "experience", Value: "$community.experience"},
		{Key: "registeration_date_time", Value: "$community.registeration_date_time"},
		{Key: "tech_stack", Value: 1},
	}}})
}
