// Package repository implements the data access layer for the application.
package repository

import (
	"context"

	"saathi/internal/cache"
	"saathi/internal/database"
	"saathi/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository defines persistence operations for users and their profiles.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (primitive.ObjectID, error)

	GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.UserProfile, error)
	CreateProfile(ctx context.Context, profile *models.UserProfile) error
	ReplaceProfile(ctx context.Context, profile *models.UserProfile) (bool, error)

	ListSkills(ctx context.Context, userID primitive.ObjectID) ([]string, error)
	AddSkills(ctx context.Context, userID primitive.ObjectID, skills []string) error
	ReplaceSkills(ctx context.Context, userID primitive.ObjectID, skills []string) error

	ListProjects(ctx context.Context, userID primitive.ObjectID) ([]models.Project, error)
	AddProjects(ctx context.Context, userID primitive.ObjectID, projects []models.Project) error
	ReplaceProjects(ctx context.Context, userID primitive.ObjectID, projects []models.Project) error
}

type userRepository struct {
	store database.Store
	cache *cache.Store
}

// NewUserRepository returns a new UserRepository implementation. cache may be nil.
func NewUserRepository(store database.Store, c *cache.Store) UserRepository {
	return &userRepository{store: store, cache: c}
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User

	found, err := r.cache.Aside(ctx, "user", cache.UserKey(username), &user, cache.UserTTL, func() (bool, error) {
		return r.store.FindOne(ctx, models.CollectionUsers, bson.M{"username": username}, &user)
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, models.NewNotFoundError("User not found")
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	id, err := r.store.Insert(ctx, models.CollectionUsers, user)
	if err != nil {
		return primitive.NilObjectID, err
	}
	r.cache.Invalidate(ctx, cache.UserKey(user.Username))
	return id, nil
}

func (r *userRepository) GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.UserProfile, error) {
	var profile models.UserProfile
	found, err := r.store.FindOne(ctx, models.CollectionUserProfiles, bson.M{"user_id": userID}, &profile)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, models.NewNotFoundError("Profile not found")
	}
	return &profile, nil
}

func (r *userRepository) CreateProfile(ctx context.Context, profile *models.UserProfile) error {
	_, err := r.store.Insert(ctx, models.CollectionUserProfiles, profile)
	return err
}

// ReplaceProfile overwrites every descriptive field of the user's profile and
// reports whether a profile existed.
func (r *userRepository) ReplaceProfile(ctx context.Context, profile *models.UserProfile) (bool, error) {
	return r.store.Update(ctx, models.CollectionUserProfiles, bson.M{"user_id": profile.UserID}, bson.M{
		"bio":           profile.Bio,
		"linkedin_url":  profile.LinkedinURL,
		"github_url":    profile.GithubURL,
		"portfolio_url": profile.PortfolioURL,
		"years_exp":     profile.YearsExp,
	})
}

func (r *userRepository) ListSkills(ctx context.Context, userID primitive.ObjectID) ([]string, error) {
	var rows []models.UserSkill
	if err := r.store.Find(ctx, models.CollectionUserSkills, bson.M{"user_id": userID}, &rows); err != nil {
		return nil, err
	}
	skills := make([]string, 0, len(rows))
	for _, row := range rows {
		skills = append(skills, row.Skill)
	}
	return skills, nil
}

func (r *userRepository) AddSkills(ctx context.Context, userID primitive.ObjectID, skills []string) error {
	docs := make([]any, 0, len(skills))
	for _, s := range skills {
		docs = append(docs, models.UserSkill{ID: primitive.NewObjectID(), UserID: userID, Skill: s})
	}
	_, err := r.store.InsertMany(ctx, models.CollectionUserSkills, docs)
	return err
}

// ReplaceSkills makes the stored skill set equal to skills. Rows that are
// kept are not rewritten.
func (r *userRepository) ReplaceSkills(ctx context.Context, userID primitive.ObjectID, skills []string) error {
	keep := dedupe(skills)

	if _, err := r.store.DeleteMany(ctx, models.CollectionUserSkills, bson.M{
		"user_id": userID,
		"skill":   bson.M{"$nin": keep},
	}); err != nil {
		return err
	}

	for _, s := range keep {
		if err := r.store.Upsert(ctx, models.CollectionUserSkills,
			bson.M{"user_id": userID, "skill": s},
			bson.M{"skill": s}, nil,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *userRepository) ListProjects(ctx context.Context, userID primitive.ObjectID) ([]models.Project, error) {
	var rows []models.UserProject
	if err := r.store.Find(ctx, models.CollectionUserProjects, bson.M{"user_id": userID}, &rows); err != nil {
		return nil, err
	}
	projects := make([]models.Project, 0, len(rows))
	for _, row := range rows {
		projects = append(projects, models.Project{Title: row.Title, Link: row.Link})
	}
	return projects, nil
}

func (r *userRepository) AddProjects(ctx context.Context, userID primitive.ObjectID, projects []models.Project) error {
	docs := make([]any, 0, len(projects))
	for _, p := range projects {
		docs = append(docs, models.UserProject{ID: primitive.NewObjectID(), UserID: userID, Title: p.Title, Link: p.Link})
	}
	_, err := r.store.InsertMany(ctx, models.CollectionUserProjects, docs)
	return err
}

// ReplaceProjects makes the stored projects equal to projects, keyed by
// title. When titles repeat the last link wins.
func (r *userRepository) ReplaceProjects(ctx context.Context, userID primitive.ObjectID, projects []models.Project) error {
	links := make(map[string]string, len(projects))
	titles := make([]string, 0, len(projects))
	for _, p := range projects {
		if _, seen := links[p.Title]; !seen {
			titles = append(titles, p.Title)
		}
		links[p.Title] = p.Link
	}

	if _, err := r.store.DeleteMany(ctx, models.CollectionUserProjects, bson.M{
		"user_id": userID,
		"title":   bson.M{"$nin": titles},
	}); err != nil {
		return err
	}

	for _, title := range titles {
		if err := r.store.Upsert(ctx, models.CollectionUserProjects,
			bson.M{"user_id": userID, "title": title},
			bson.M{"link": links[title]}, nil,
		); err != nil {
			return err
		}
	}
	return nil
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
