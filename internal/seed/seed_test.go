package seed

import (
	"context"
	"testing"
	"time"

	"saathi/internal/featureflags"
	"saathi/internal/repository/repotest"
	"saathi/internal/service"
	"saathi/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSeeder(users *repotest.Users, communities *repotest.Communities, seed int64, opts Options) *Seeder {
	clock := service.FixedClock(time.Date(2025, 4, 3, 18, 33, 0, 0, time.UTC), time.UTC)
	return NewSeeder(
		service.NewUserService(users, clock),
		service.NewCommunityService(communities, clock, featureflags.NewManager("")),
		NewFactory(seed),
		opts,
	)
}

func TestFactoryProducesValidPayloads(t *testing.T) {
	f := NewFactory(42)

	for i := 0; i < 20; i++ {
		reg := f.Registration()
		require.NoError(t, validation.ValidateRegistration(reg), "registration %+v", reg)

		profile := f.Profile(reg.Username)
		require.NoError(t, validation.ValidateProfile(profile))
		assert.NotEmpty(t, *profile.Skills)
		assert.GreaterOrEqual(t, *profile.YearsExp, 0)

		community := f.Community(reg.Username)
		require.NoError(t, validation.ValidateCommunity(community))
		assert.Equal(t, reg.Username, community.CreatorUsername)
	}
}

func TestFactorySkillsAreDistinct(t *testing.T) {
	f := NewFactory(7)

	skills := f.Skills(len(skillPool) + 5)
	assert.Len(t, skills, len(skillPool))

	seen := map[string]bool{}
	for _, s := range skills {
		assert.False(t, seen[s], "duplicate skill %q", s)
		seen[s] = true
	}
}

func TestSeederRun(t *testing.T) {
	users := repotest.NewUsers()
	communities := repotest.NewCommunities()
	s := newTestSeeder(users, communities, 1, Options{NumUsers: 3, CommunitiesPerUser: 2})

	sum, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, sum.Users+sum.Skipped)
	assert.Equal(t, sum.Users, sum.Profiles)
	assert.Equal(t, sum.Users*2, sum.Communities)
	assert.Len(t, users.Accounts, sum.Users)
	assert.Len(t, users.Profiles, sum.Users)
	assert.Len(t, communities.Records, sum.Communities)
}

func TestSeederSkipsExistingUsers(t *testing.T) {
	users := repotest.NewUsers()
	communities := repotest.NewCommunities()

	first, err := newTestSeeder(users, communities, 5, Options{NumUsers: 2}).Run(context.Background())
	require.NoError(t, err)

	second, err := newTestSeeder(users, communities, 5, Options{NumUsers: 2}).Run(context.Background())
	require.NoError(t, err)

	assert.Zero(t, second.Users)
	assert.Equal(t, 2, second.Skipped)
	assert.Len(t, users.Accounts, first.Users)
}

func TestSeederDryRun(t *testing.T) {
	users := repotest.NewUsers()
	communities := repotest.NewCommunities()
	s := newTestSeeder(users, communities, 3, Options{NumUsers: 4, CommunitiesPerUser: 1, DryRun: true})

	sum, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Summary{Users: 4, Profiles: 4, Communities: 4}, sum)
	assert.Empty(t, users.Calls)
	assert.Empty(t, communities.Records)
}

func TestSeederStopsOnStorageFailure(t *testing.T) {
	users := repotest.NewUsers()
	communities := repotest.NewCommunities()
	communities.FailOn["Create"] = true
	s := newTestSeeder(users, communities, 9, Options{NumUsers: 2, CommunitiesPerUser: 1})

	sum, err := s.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, sum.Users)
	assert.Zero(t, sum.Communities)
}
