package service

import (
	"context"
	"math"

	"saathi/internal/featureflags"
	"saathi/internal/models"
	"saathi/internal/observability"
	"saathi/internal/repository"
	"saathi/internal/validation"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Paging bounds shared by the community listings.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type CommunityService struct {
	communityRepo repository.CommunityRepository
	clock         *Clock
	flags         *featureflags.Manager
}

func NewCommunityService(communityRepo repository.CommunityRepository, clock *Clock, flags *featureflags.Manager) *CommunityService {
	return &CommunityService{communityRepo: communityRepo, clock: clock, flags: flags}
}

// NormalizePage clamps limit to [1, MaxPageSize], defaulting non-positive
// values to DefaultPageSize, and page to [1, math.MaxInt/limit] so the skip
// offset (page-1)*limit cannot overflow.
func NormalizePage(limit, page int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if page < 1 {
		page = 1
	}
	if maxPage := math.MaxInt / limit; page > maxPage {
		page = maxPage
	}
	return limit, page
}

// pageSkip is the number of rows before page.
func pageSkip(limit, page int) int64 {
	return int64(page-1) * int64(limit)
}

// CreateCommunity stores a community and one skill row per tech-stack entry.
// The skill rows are written after the community; a failure between the two
// leaves the community without a tech stack.
func (s *CommunityService) CreateCommunity(ctx context.Context, in models.CommunityInput) (primitive.ObjectID, error) {
	ctx, span := observability.StartServiceSpan(ctx, "CommunityService", "CreateCommunity")
	defer span.End()

	if err := validation.ValidateCommunity(in); err != nil {
		return primitive.NilObjectID, models.NewValidationError(err.Error())
	}

	community := &models.Community{
		CreatorUsername:       in.CreatorUsername,
		Name:                  in.Name,
		Experience:            in.Experience,
		RegisterationDateTime: s.clock.Now(),
	}

	id, err := s.communityRepo.Create(ctx, community)
	if err != nil {
		observability.FailSpan(span, err)
		return primitive.NilObjectID, err
	}

	if err := s.communityRepo.AddSkills(ctx, id, in.TechStack); err != nil {
		observability.FailSpan(span, err)
		return primitive.NilObjectID, err
	}
	return id, nil
}

// GetCommunity returns a community merged with its tech stack.
func (s *CommunityService) GetCommunity(ctx context.Context, id string) (*models.CommunityDTO, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.NewValidationError("Invalid community id").WithDetail("%s is not a valid community id", id)
	}

	dto, err := s.communityRepo.GetByID(ctx, oid)
	if err != nil {
		if models.IsKind(err, models.CodeNotFound) {
			return nil, models.NewNotFoundError("Community not found").WithDetail("Community %s not found", id)
		}
		return nil, err
	}
	return dto, nil
}

// GetUserCommunities lists the communities a user created.
func (s *CommunityService) GetUserCommunities(ctx context.Context, creator string) ([]models.CommunitySummary, error) {
	return s.communityRepo.ListByCreator(ctx, creator)
}

// GetLatestCommunities returns one page of communities, newest first, each
// merged with its tech stack.
func (s *CommunityService) GetLatestCommunities(ctx context.Context, limit, page int) ([]models.CommunityDTO, error) {
	ctx, span := observability.StartServiceSpan(ctx, "CommunityService", "GetLatestCommunities")
	defer span.End()

	limit, page = NormalizePage(limit, page)

	communities, err := s.communityRepo.Latest(ctx, pageSkip(limit, page), int64(limit))
	if err != nil {
		observability.FailSpan(span, err)
		return nil, err
	}

	out := make([]models.CommunityDTO, 0, len(communities))
	if len(communities) == 0 {
		return out, nil
	}

	ids := make([]primitive.ObjectID, 0, len(communities))
	for _, c := range communities {
		ids = append(ids, c.ID)
	}
	stacks, err := s.communityRepo.SkillsFor(ctx, ids)
	if err != nil {
		observability.FailSpan(span, err)
		return nil, err
	}

	for i := range communities {
		out = append(out, communities[i].ToDTO(stacks[communities[i].ID]))
	}
	return out, nil
}

// SearchBySkills finds communities sharing at least one skill. subject keys
// percentage rollouts of the search ordering flag.
func (s *CommunityService) SearchBySkills(ctx context.Context, in models.SkillSearchInput, subject string) ([]models.CommunitySearchResult, error) {
	ctx, span := observability.StartServiceSpan(ctx, "CommunityService", "SearchBySkills")
	defer span.End()

	if err := validation.ValidateSkillSearch(in); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	// Search shares the listing bounds: 0 means the default, above MaxPageSize is capped.
	limit, _ := NormalizePage(in.Limit, 1)
	sortFirst := s.flags.Enabled(featureflags.SearchSortBeforeLimit, subject)

	results, err := s.communityRepo.SearchBySkills(ctx, in.Skills, int64(limit), sortFirst)
	if err != nil {
		observability.FailSpan(span, err)
		return nil, err
	}
	return results, nil
}
