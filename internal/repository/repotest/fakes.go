// Package repotest provides in-memory repositories for service and handler tests.
package repotest

import (
	"context"
	"errors"
	"sort"
	"sync"

	"saathi/internal/models"
	"saathi/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInjected is the driver error wrapped by injected storage failures.
var ErrInjected = errors.New("injected failure")

var (
	_ repository.UserRepository      = (*Users)(nil)
	_ repository.CommunityRepository = (*Communities)(nil)
)

// Users is an in-memory UserRepository. Methods named in FailOn return a
// storage error. Calls records every method invoked, in order.
type Users struct {
	mu       sync.Mutex
	Accounts map[string]*models.User
	Profiles map[primitive.ObjectID]*models.UserProfile
	Skills   map[primitive.ObjectID][]string
	Projects map[primitive.ObjectID][]models.Project
	FailOn   map[string]bool
	Calls    []string
}

func NewUsers() *Users {
	return &Users{
		Accounts: map[string]*models.User{},
		Profiles: map[primitive.ObjectID]*models.UserProfile{},
		Skills:   map[primitive.ObjectID][]string{},
		Projects: map[primitive.ObjectID][]models.Project{},
		FailOn:   map[string]bool{},
	}
}

// CallCount reports how often method was invoked.
func (r *Users) CallCount(method string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.Calls {
		if c == method {
			n++
		}
	}
	return n
}

func (r *Users) hit(method string) error {
	r.Calls = append(r.Calls, method)
	if r.FailOn[method] {
		return models.NewStorageError(method, ErrInjected)
	}
	return nil
}

func (r *Users) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.hit("GetByUsername"); err != nil {
		return nil, err
	}
	u, ok := r.Accounts[username]
	if !ok {
		return nil, models.NewNotFoundError("User not found")
	}
	cp := *u
	return &cp, nil
}

func (r *Users) Create(_ context.Context, user *models.User) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.hit("Create"); err != nil {
		return primitive.NilObjectID, err
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	cp := *user
	r.Accounts[user.Username] = &cp
	return user.ID, nil
}

func (r *Users) GetProfile(_ context.Context, userID primitive.ObjectID) (*models.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.hit("GetProfile"); err != nil {
		return nil, err
	}
	p, ok := r.Profiles[userID]
	if !ok {
		return nil, models.NewNotFoundError("Profile not found")
	}
	cp := *p
	return &cp, nil
}

func (r *Users) CreateProfile(_ context.Context, profile *models.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.hit("CreateProfile"); err != nil {
		return err
	}
	cp := *profile
	r.Profiles[profile.UserID] = &cp
	return nil
}

func (r *Users) ReplaceProfile(_ context.Context, profile *models.UserProfile) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.hit("ReplaceProfile"); err != nil {
		return false, err
	}
	existing, ok := r.Profiles[profile.UserID]
	if !ok {
		return false, nil
	}
	cp := *profile
	cp.ID = existing.ID
	r.Profiles[profile.UserID] = &cp
	return true, nil
}

func (r *Users) ListSkills(_ context.Context, userID primitive.ObjectID) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.hit("ListSkills"); err != nil {
		return nil, err
	}
	return append([]string{}, r.Skills[userID]...), nil
}

func (r *Users) AddSkills(_ context.Context, userID primitive.ObjectID, skills []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.hit("AddSkills"); err != nil {
		return err
	}
	r.Skills[userID] = append(r.Skills[userID], skills...)
	return nil
}

func (r *Users) ReplaceSkills(_ context.Context, userID primitive.ObjectID, skills []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.hit("ReplaceSkills"); err != nil {
		return err
	}
	r.Skills[userID] = append([]string{}, skills...)
	return nil
}

func (r *Users) ListProjects(_ context.Context, userID primitive.ObjectID) ([]models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.hit("ListProjects"); err != nil {
		return nil, err
	}
	return append([]models.Project{}, r.Projects[userID]...), nil
}

func (r *Users) AddProjects(_ context.Context, userID primitive.ObjectID, projects []models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.hit("AddProjects"); err != nil {
		return err
	}
	r.Projects[userID] = append(r.Projects[userID], projects...)
	return nil
}

func (r *Users) ReplaceProjects(_ context.Context, userID primitive.ObjectID, projects []models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.hit("ReplaceProjects"); err != nil {
		return err
	}
	r.Projects[userID] = append([]models.Project{}, projects...)
	return nil
}

// Communities is an in-memory CommunityRepository. The Last* fields record
// the arguments of the most recent listing or search.
type Communities struct {
	mu      sync.Mutex
	Records map[primitive.ObjectID]models.Community
	Skills  map[primitive.ObjectID][]string
	FailOn  map[string]bool

	LastSkip      int64
	LastLimit     int64
	LastSortFirst bool
}

func NewCommunities() *Communities {
	return &Communities{
		Records: map[primitive.ObjectID]models.Community{},
		Skills:  map[primitive.ObjectID][]string{},
		FailOn:  map[string]bool{},
	}
}

func (r *Communities) fail(method string) error {
	if r.FailOn[method] {
		return models.NewStorageError(method, ErrInjected)
	}
	return nil
}

func (r *Communities) Create(_ context.Context, c *models.Community) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("Create"); err != nil {
		return primitive.NilObjectID, err
	}
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	r.Records[c.ID] = *c
	return c.ID, nil
}

func (r *Communities) AddSkills(_ context.Context, id primitive.ObjectID, skills []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("AddSkills"); err != nil {
		return err
	}
	r.Skills[id] = append(r.Skills[id], skills...)
	return nil
}

func (r *Communities) GetByID(_ context.Context, id primitive.ObjectID) (*models.CommunityDTO, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("GetByID"); err != nil {
		return nil, err
	}
	c, ok := r.Records[id]
	if !ok {
		return nil, models.NewNotFoundError("Community not found")
	}
	dto := c.ToDTO(r.Skills[id])
	return &dto, nil
}

func (r *Communities) ListByCreator(_ context.Context, creator string) ([]models.CommunitySummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("ListByCreator"); err != nil {
		return nil, err
	}
	out := []models.CommunitySummary{}
	for _, c := range r.Records {
		if c.CreatorUsername == creator {
			out = append(out, models.CommunitySummary{ID: c.ID, Name: c.Name, Experience: c.Experience})
		}
	}
	return out, nil
}

func (r *Communities) Latest(_ context.Context, skip, limit int64) ([]models.Community, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.LastSkip, r.LastLimit = skip, limit
	if err := r.fail("Latest"); err != nil {
		return nil, err
	}
	all := make([]models.Community, 0, len(r.Records))
	for _, c := range r.Records {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].RegisterationDateTime.After(all[j].RegisterationDateTime)
	})
	if skip >= int64(len(all)) {
		return []models.Community{}, nil
	}
	end := min(skip+limit, int64(len(all)))
	return all[skip:end], nil
}

func (r *Communities) SkillsFor(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID][]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("SkillsFor"); err != nil {
		return nil, err
	}
	out := make(map[primitive.ObjectID][]string, len(ids))
	for _, id := range ids {
		if s, ok := r.Skills[id]; ok {
			out[id] = append([]string{}, s...)
		}
	}
	return out, nil
}

// SearchBySkills mirrors the skill-search aggregation: skill rows matching
// any requested skill are grouped per community with their distinct matching
// skills, joined to the community and cut to limit. Without sortBeforeLimit
// the rows kept are the first limit groups by community id, then sorted.
func (r *Communities) SearchBySkills(_ context.Context, skills []string, limit int64, sortBeforeLimit bool) ([]models.CommunitySearchResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.LastLimit, r.LastSortFirst = limit, sortBeforeLimit
	if err := r.fail("SearchBySkills"); err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(skills))
	for _, s := range skills {
		wanted[s] = true
	}

	type group struct {
		id    primitive.ObjectID
		stack []string
	}
	groups := []group{}
	for id, rows := range r.Skills {
		community, ok := r.Records[id]
		if !ok {
			continue
		}
		seen := map[string]bool{}
		var stack []string
		for _, skill := range rows {
			if wanted[skill] && !seen[skill] {
				seen[skill] = true
				stack = append(stack, skill)
			}
		}
		if len(stack) > 0 {
			groups = append(groups, group{id: community.ID, stack: stack})
		}
	}

	newestFirst := func(i, j int) bool {
		return r.Records[groups[i].id].RegisterationDateTime.After(r.Records[groups[j].id].RegisterationDateTime)
	}
	if sortBeforeLimit {
		sort.Slice(groups, newestFirst)
	} else {
		sort.Slice(groups, func(i, j int) bool { return groups[i].id.Hex() < groups[j].id.Hex() })
	}
	if int64(len(groups)) > limit {
		groups = groups[:limit]
	}
	sort.SliceStable(groups, newestFirst)

	out := make([]models.CommunitySearchResult, 0, len(groups))
	for _, g := range groups {
		c := r.Records[g.id]
		out = append(out, models.CommunitySearchResult{
			CreatorUsername:       c.CreatorUsername,
			Name:                  c.Name,
			TechStack:             g.stack,
			Experience:            c.Experience,
			RegisterationDateTime: c.RegisterationDateTime,
		})
	}
	return out, nil
}
