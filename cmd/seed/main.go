// Command main seeds a Saathi database with demo users and communities.
package main

import (
	"context"
	"flag"
	"log"
	"time"
	_ "time/tzdata"

	"saathi/internal/bootstrap"
	"saathi/internal/cache"
	"saathi/internal/config"
	"saathi/internal/database"
	"saathi/internal/featureflags"
	"saathi/internal/repository"
	"saathi/internal/seed"
	"saathi/internal/service"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	perUser := flag.Int("communities", 2, "Communities created by each user")
	dryRun := flag.Bool("dry-run", false, "Generate data without writing it")
	shouldClean := flag.Bool("clean", false, "Drop all collections before seeding")
	seedValue := flag.Int64("seed", time.Now().UnixNano(), "Random seed for generated data")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Printf("Target: %d users, %d communities each, dry-run=%v\n", *numUsers, *perUser, *dryRun)

	opts := seed.Options{NumUsers: *numUsers, CommunitiesPerUser: *perUser, DryRun: *dryRun}
	factory := seed.NewFactory(*seedValue)
	ctx := context.Background()

	if *dryRun {
		sum, err := seed.NewSeeder(nil, nil, factory, opts).Run(ctx)
		if err != nil {
			log.Fatalf("❌ Dry run failed: %v", err)
		}
		log.Printf("Would create %d users and %d communities", sum.Users, sum.Communities)
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	rt, err := bootstrap.InitRuntime(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}
	defer rt.Close(ctx)

	clock, err := service.NewClock(cfg.Timezone)
	if err != nil {
		log.Fatalf("Invalid timezone: %v", err)
	}

	gateway := database.NewGateway(rt.DB)
	store := cache.New(rt.Redis)

	if *shouldClean {
		if err := gateway.DropCollections(ctx); err != nil {
			log.Fatalf("❌ Cleanup failed: %v", err)
		}
		if err := gateway.EnsureIndexes(ctx); err != nil {
			log.Fatalf("❌ Index creation failed: %v", err)
		}
		if rt.Redis != nil {
			if err := rt.Redis.FlushDB(ctx).Err(); err != nil {
				log.Fatalf("❌ Cache flush failed: %v", err)
			}
		}
	}

	users := service.NewUserService(repository.NewUserRepository(gateway, store), clock)
	communities := service.NewCommunityService(repository.NewCommunityRepository(gateway, store), clock,
		featureflags.NewManager(cfg.FeatureFlags))

	sum, err := seed.NewSeeder(users, communities, factory, opts).Run(ctx)
	if err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Printf("✨ Created %d users (%d skipped) and %d communities", sum.Users, sum.Skipped, sum.Communities)
	log.Printf("📧 All seeded users have the password: %s", seed.DefaultPassword)
}
