package service

import (
	"context"
	"math"
	"testing"
	"time"

	"saathi/internal/featureflags"
	"saathi/internal/models"
	"saathi/internal/repository/repotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestCommunityService(t *testing.T, flags string) (*CommunityService, *repotest.Communities) {
	t.Helper()
	repo := repotest.NewCommunities()
	return NewCommunityService(repo, testClock(t), featureflags.NewManager(flags)), repo
}

func TestNormalizePage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                string
		limit, page         int
		wantLimit, wantPage int
	}{
		{"defaults", 0, 0, 10, 1},
		{"negative", -5, -1, 10, 1},
		{"in range", 25, 3, 25, 3},
		{"capped", 1000, 2, 100, 2},
		{"huge page", 10, math.MaxInt, 10, math.MaxInt / 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, page := NormalizePage(tt.limit, tt.page)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantPage, page)
			assert.GreaterOrEqual(t, pageSkip(limit, page), int64(0))
		})
	}
}

func TestCommunityService_CreateAndGet(t *testing.T) {
	t.Parallel()
	svc, repo := newTestCommunityService(t, "")
	ctx := context.Background()

	id, err := svc.CreateCommunity(ctx, models.CommunityInput{
		CreatorUsername: "a",
		Name:            "Gophers",
		TechStack:       []string{"go", "grpc", "go"},
		Experience:      ptr("beginner"),
	})
	require.NoError(t, err)
	assert.Len(t, repo.Skills[id], 3, "one skill row per tech-stack entry")
	assert.Equal(t, time.UTC, repo.Records[id].RegisterationDateTime.Location())

	dto, err := svc.GetCommunity(ctx, id.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Gophers", dto.Name)
	assert.ElementsMatch(t, []string{"go", "grpc", "go"}, dto.TechStack)
	assert.Equal(t, "beginner", *dto.Experience)
}

func TestCommunityService_CreateFailures(t *testing.T) {
	t.Parallel()

	t.Run("blank tech stack entry is invalid", func(t *testing.T) {
		t.Parallel()
		svc, repo := newTestCommunityService(t, "")

		_, err := svc.CreateCommunity(context.Background(), models.CommunityInput{
			CreatorUsername: "a", Name: "x", TechStack: []string{""},
		})
		assertKind(t, err, models.CodeValidation)
		assert.Empty(t, repo.Records)
	})

	t.Run("skill insert failure leaves the community behind", func(t *testing.T) {
		t.Parallel()
		svc, repo := newTestCommunityService(t, "")
		repo.FailOn["AddSkills"] = true

		_, err := svc.CreateCommunity(context.Background(), models.CommunityInput{
			CreatorUsername: "a", Name: "x", TechStack: []string{"go"},
		})
		assertKind(t, err, models.CodeStorageUnavailable)
		assert.Len(t, repo.Records, 1)
	})
}

func TestCommunityService_GetCommunity(t *testing.T) {
	t.Parallel()
	svc, _ := newTestCommunityService(t, "")

	_, err := svc.GetCommunity(context.Background(), "not-hex")
	assertKind(t, err, models.CodeValidation)

	missing := primitive.NewObjectID().Hex()
	_, err = svc.GetCommunity(context.Background(), missing)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
	assert.Equal(t, "Community "+missing+" not found", appErr.Detail)
}

func TestCommunityService_GetUserCommunities(t *testing.T) {
	t.Parallel()
	svc, _ := newTestCommunityService(t, "")
	ctx := context.Background()

	_, err := svc.CreateCommunity(ctx, models.CommunityInput{CreatorUsername: "a", Name: "one"})
	require.NoError(t, err)
	_, err = svc.CreateCommunity(ctx, models.CommunityInput{CreatorUsername: "b", Name: "two"})
	require.NoError(t, err)

	mine, err := svc.GetUserCommunities(ctx, "a")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "one", mine[0].Name)

	none, err := svc.GetUserCommunities(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestCommunityService_GetLatestCommunities(t *testing.T) {
	t.Parallel()
	svc, repo := newTestCommunityService(t, "")
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		id := primitive.NewObjectID()
		repo.Records[id] = models.Community{
			ID:                    id,
			Name:                  []string{"oldest", "middle", "newest"}[i],
			RegisterationDateTime: base.Add(time.Duration(i) * time.Hour),
		}
		repo.Skills[id] = []string{"go"}
	}

	page1, err := svc.GetLatestCommunities(ctx, 2, 1)
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, "newest", page1[0].Name)
	assert.Equal(t, "middle", page1[1].Name)
	assert.Equal(t, []string{"go"}, page1[0].TechStack)

	page2, err := svc.GetLatestCommunities(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Equal(t, "oldest", page2[0].Name)
	assert.Equal(t, int64(2), repo.LastSkip)

	empty, err := svc.GetLatestCommunities(ctx, 2, 9)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = svc.GetLatestCommunities(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(10), repo.LastLimit)
	assert.Equal(t, int64(0), repo.LastSkip)
}

func TestCommunityService_SearchBySkills(t *testing.T) {
	t.Parallel()

	t.Run("default keeps limit before sort", func(t *testing.T) {
		t.Parallel()
		svc, repo := newTestCommunityService(t, "")

		out, err := svc.SearchBySkills(context.Background(), models.SkillSearchInput{Skills: []string{"go"}}, "10.0.0.1")
		require.NoError(t, err)
		assert.NotNil(t, out)
		assert.Equal(t, int64(10), repo.LastLimit)
		assert.False(t, repo.LastSortFirst)
	})

	t.Run("flag sorts before limiting", func(t *testing.T) {
		t.Parallel()
		svc, repo := newTestCommunityService(t, featureflags.SearchSortBeforeLimit+"=on")

		_, err := svc.SearchBySkills(context.Background(), models.SkillSearchInput{Skills: []string{"go"}, Limit: 500}, "")
		require.NoError(t, err)
		assert.Equal(t, int64(100), repo.LastLimit)
		assert.True(t, repo.LastSortFirst)
	})

	t.Run("returns each overlapping community once", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestCommunityService(t, "")
		ctx := context.Background()

		for name, stack := range map[string][]string{
			"polyglots":   {"go", "rust", "docker", "go"},
			"rustaceans":  {"rust"},
			"pythonistas": {"python", "django"},
		} {
			_, err := svc.CreateCommunity(ctx, models.CommunityInput{CreatorUsername: "a", Name: name, TechStack: stack})
			require.NoError(t, err)
		}

		out, err := svc.SearchBySkills(ctx, models.SkillSearchInput{Skills: []string{"go", "rust"}}, "")
		require.NoError(t, err)
		require.Len(t, out, 2)

		stacks := map[string][]string{}
		for _, r := range out {
			require.NotContains(t, stacks, r.Name, "community listed twice")
			stacks[r.Name] = r.TechStack
		}
		assert.ElementsMatch(t, []string{"go", "rust"}, stacks["polyglots"])
		assert.Equal(t, []string{"rust"}, stacks["rustaceans"])
		assert.NotContains(t, stacks, "pythonistas")
	})

	t.Run("no overlap is empty", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestCommunityService(t, "")
		_, err := svc.CreateCommunity(context.Background(),
			models.CommunityInput{CreatorUsername: "a", Name: "gophers", TechStack: []string{"go"}})
		require.NoError(t, err)

		out, err := svc.SearchBySkills(context.Background(), models.SkillSearchInput{Skills: []string{"cobol"}}, "")
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("storage failure", func(t *testing.T) {
		t.Parallel()
		svc, repo := newTestCommunityService(t, "")
		repo.FailOn["SearchBySkills"] = true

		_, err := svc.SearchBySkills(context.Background(), models.SkillSearchInput{Skills: []string{"go"}}, "")
		assertKind(t, err, models.CodeStorageUnavailable)
	})
}
