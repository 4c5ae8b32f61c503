package repository

import (
	"context"
	"testing"
	"time"

	"saathi/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func stageNames(t *testing.T, pipeline []bson.D) []string {
	t.Helper()
	names := make([]string, 0, len(pipeline))
	for _, stage := range pipeline {
		require.Len(t, stage, 1)
		names = append(names, stage[0].Key)
	}
	return names
}

func TestSkillSearchPipeline_StageOrder(t *testing.T) {
	def := SkillSearchPipeline([]string{"go"}, 5, false)
	assert.Equal(t,
		[]string{"$match", "$group", "$lookup", "$unwind", "$limit", "$sort", "$project"},
		stageNames(t, def))

	sorted := SkillSearchPipeline([]string{"go"}, 5, true)
	assert.Equal(t,
		[]string{"$match", "$group", "$lookup", "$unwind", "$sort", "$limit", "$project"},
		stageNames(t, sorted))
}

func TestSkillSearchPipeline_GroupsMatchesPerCommunity(t *testing.T) {
	p := SkillSearchPipeline([]string{"go", "rust"}, 5, false)

	match := p[0][0].Value.(bson.D)
	assert.Equal(t, "skill", match[0].Key)
	assert.Equal(t, bson.D{{Key: "$in", Value: []string{"go", "rust"}}}, match[0].Value)

	group := p[1][0].Value.(bson.D)
	assert.Equal(t, bson.D{
		{Key: "_id", Value: "$community_id"},
		{Key: "tech_stack", Value: bson.D{{Key: "$addToSet", Value: "$skill"}}},
	}, group)

	lookup := p[2][0].Value.(bson.D)
	assert.Equal(t, bson.D{
		{Key: "from", Value: models.CollectionCommunities},
		{Key: "localField", Value: "_id"},
		{Key: "foreignField", Value: "_id"},
		{Key: "as", Value: "community"},
	}, lookup)

	assert.Equal(t, int64(5), p[4][0].Value)
}

func TestSkillSearchPipeline_NilSkillsMatchNothing(t *testing.T) {
	p := SkillSearchPipeline(nil, 10, false)
	match := p[0][0].Value.(bson.D)
	in := match[0].Value.(bson.D)
	assert.Equal(t, "$in", in[0].Key)
	assert.Equal(t, []string{}, in[0].Value)
}

func TestCommunityRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	id := primitive.NewObjectID()
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("merges tech stack and caches", func(t *testing.T) {
		store := new(MockStore)
		repo := NewCommunityRepository(store, newCache(t))

		store.On("FindOne", mock.Anything, models.CollectionCommunities, bson.M{"_id": id}, mock.Anything).
			Run(func(args mock.Arguments) {
				c := args.Get(3).(*models.Community)
				c.ID = id
				c.Name = "Gophers"
				c.CreatorUsername = "a"
				c.RegisterationDateTime = created
			}).Return(true, nil).Once()
		store.On("Find", mock.Anything, models.CollectionCommunitySkills, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				rows := args.Get(3).(*[]models.CommunitySkill)
				*rows = []models.CommunitySkill{{CommunityID: id, Skill: "go"}, {CommunityID: id, Skill: "grpc"}}
			}).Return(nil).Once()

		for i := 0; i < 2; i++ {
			dto, err := repo.GetByID(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, id.Hex(), dto.ID)
			assert.ElementsMatch(t, []string{"go", "grpc"}, dto.TechStack)
			assert.Equal(t, "2025-01-02T03:04:05Z", dto.RegisterationDateTime)
		}
		store.AssertExpectations(t)
	})

	t.Run("absent community is not found", func(t *testing.T) {
		store := new(MockStore)
		repo := NewCommunityRepository(store, nil)
		store.On("FindOne", mock.Anything, models.CollectionCommunities, mock.Anything, mock.Anything).Return(false, nil)

		_, err := repo.GetByID(ctx, id)
		assert.True(t, models.IsKind(err, models.CodeNotFound))
		store.AssertNotCalled(t, "Find", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCommunityRepository_SkillsForBatches(t *testing.T) {
	store := new(MockStore)
	repo := NewCommunityRepository(store, nil)
	a, b := primitive.NewObjectID(), primitive.NewObjectID()

	store.On("Find", mock.Anything, models.CollectionCommunitySkills,
		bson.M{"community_id": bson.M{"$in": []primitive.ObjectID{a, b}}}, mock.Anything).
		Run(func(args mock.Arguments) {
			rows := args.Get(3).(*[]models.CommunitySkill)
			*rows = []models.CommunitySkill{
				{CommunityID: a, Skill: "go"},
				{CommunityID: b, Skill: "rust"},
				{CommunityID: a, Skill: "k8s"},
			}
		}).Return(nil).Once()

	stacks, err := repo.SkillsFor(context.Background(), []primitive.ObjectID{a, b})
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "k8s"}, stacks[a])
	assert.Equal(t, []string{"rust"}, stacks[b])

	empty, err := repo.SkillsFor(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
	store.AssertExpectations(t)
}

func TestCommunityRepository_LatestPassesPaging(t *testing.T) {
	store := new(MockStore)
	repo := NewCommunityRepository(store, nil)

	store.On("FindSorted", mock.Anything, models.CollectionCommunities, bson.M{}, "registeration_date_time",
		int64(20), int64(10), mock.Anything).Return(nil).Once()

	out, err := repo.Latest(context.Background(), 20, 10)
	require.NoError(t, err)
	assert.NotNil(t, out)
	store.AssertExpectations(t)
}
