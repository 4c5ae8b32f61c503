package seed

import (
	"context"
	"fmt"
	"log/slog"

	"saathi/internal/models"
	"saathi/internal/observability"
	"saathi/internal/service"
)

// Options configuration for the seeder
type Options struct {
	NumUsers           int
	CommunitiesPerUser int
	// DryRun builds payloads without writing anything.
	DryRun bool
}

// Summary counts what a run created.
type Summary struct {
	Users       int
	Skipped     int
	Profiles    int
	Communities int
}

// Seeder populates a database through the user and community services.
type Seeder struct {
	users       *service.UserService
	communities *service.CommunityService
	factory     *Factory
	opts        Options
}

func NewSeeder(users *service.UserService, communities *service.CommunityService, factory *Factory, opts Options) *Seeder {
	return &Seeder{users: users, communities: communities, factory: factory, opts: opts}
}

// Run creates opts.NumUsers accounts, each with a profile and
// opts.CommunitiesPerUser communities. Usernames that already exist are
// skipped.
func (s *Seeder) Run(ctx context.Context) (Summary, error) {
	var sum Summary

	for i := 0; i < s.opts.NumUsers; i++ {
		reg := s.factory.Registration()
		profile := s.factory.Profile(reg.Username)
		communities := make([]models.CommunityInput, s.opts.CommunitiesPerUser)
		for j := range communities {
			communities[j] = s.factory.Community(reg.Username)
		}

		if s.opts.DryRun {
			sum.Users++
			sum.Profiles++
			sum.Communities += len(communities)
			continue
		}

		if _, err := s.users.CreateUser(ctx, reg); err != nil {
			if models.IsKind(err, models.CodeConflict) {
				sum.Skipped++
				continue
			}
			return sum, fmt.Errorf("create user %s: %w", reg.Username, err)
		}
		sum.Users++

		if err := s.users.SaveProfile(ctx, reg.Username, profile); err != nil {
			return sum, fmt.Errorf("save profile for %s: %w", reg.Username, err)
		}
		sum.Profiles++

		for _, c := range communities {
			if _, err := s.communities.CreateCommunity(ctx, c); err != nil {
				return sum, fmt.Errorf("create community %q: %w", c.Name, err)
			}
			sum.Communities++
		}
	}

	observability.Logger.InfoContext(ctx, "seeding finished",
		slog.Bool("dry_run", s.opts.DryRun),
		slog.Int("users", sum.Users),
		slog.Int("skipped", sum.Skipped),
		slog.Int("profiles", sum.Profiles),
		slog.Int("communities", sum.Communities),
	)
	return sum, nil
}
