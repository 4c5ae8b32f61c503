// Package seed creates demo users, profiles and communities for development
// databases. Everything is written through the services so seeded data obeys
// the same rules as API traffic.
package seed

import (
	"fmt"
	"strings"

	"saathi/internal/models"

	"github.com/brianvoe/gofakeit/v6"
)

// DefaultPassword is the password of every seeded account.
const DefaultPassword = "password123"

var (
	skillPool = []string{
		"go", "python", "rust", "typescript", "react", "mongodb", "redis",
		"postgres", "kubernetes", "docker", "graphql", "kafka", "aws", "gcp",
		"terraform", "java", "kotlin", "swift", "flutter", "machine learning",
	}
	experienceLevels  = []string{"beginner", "intermediate", "advanced"}
	communitySuffixes = []string{"Guild", "Circle", "Club", "Collective", "Lab"}
)

// Factory builds request payloads filled with fake but valid data.
type Factory struct {
	faker *gofakeit.Faker
}

// NewFactory returns a Factory. The same seed yields the same sequence.
func NewFactory(seed int64) *Factory {
	return &Factory{faker: gofakeit.New(seed)}
}

func (f *Factory) Registration() models.Registration {
	username := strings.ToLower(strings.ReplaceAll(f.faker.Username(), " ", ""))
	return models.Registration{
		Username: username,
		Name:     f.faker.Name(),
		Email:    fmt.Sprintf("%s@%s", username, f.faker.DomainName()),
		Password: DefaultPassword,
	}
}

func (f *Factory) Profile(username string) models.ProfileInput {
	bio := f.faker.Sentence(12)
	linkedin := "https://www.linkedin.com/in/" + username
	github := "https://github.com/" + username
	portfolio := f.faker.URL()
	years := f.faker.IntRange(0, 15)
	skills := f.Skills(f.faker.IntRange(2, 6))

	projects := make([]models.Project, f.faker.IntRange(0, 3))
	for i := range projects {
		title := f.faker.AppName()
		projects[i] = models.Project{
			Title: title,
			Link:  fmt.Sprintf("https://github.com/%s/%s", username, strings.ToLower(strings.ReplaceAll(title, " ", "-"))),
		}
	}

	return models.ProfileInput{
		Bio:          &bio,
		LinkedinURL:  &linkedin,
		GithubURL:    &github,
		PortfolioURL: &portfolio,
		YearsExp:     &years,
		Skills:       &skills,
		Projects:     &projects,
	}
}

func (f *Factory) Community(creator string) models.CommunityInput {
	experience := f.faker.RandomString(experienceLevels)
	return models.CommunityInput{
		CreatorUsername: creator,
		Name:            fmt.Sprintf("%s %s", f.faker.Company(), f.faker.RandomString(communitySuffixes)),
		TechStack:       f.Skills(f.faker.IntRange(1, 4)),
		Experience:      &experience,
	}
}

// Skills picks n distinct skills from the pool.
func (f *Factory) Skills(n int) []string {
	pool := append([]string(nil), skillPool...)
	f.faker.ShuffleStrings(pool)
	if n > len(pool) {
		n = len(pool)
	}
	return pool[:n]
}
