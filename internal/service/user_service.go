package service

import (
	"context"

	"saathi/internal/models"
	"saathi/internal/observability"
	"saathi/internal/repository"
	"saathi/internal/validation"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo repository.UserRepository
	clock    *Clock
	hashCost int
}

func NewUserService(userRepo repository.UserRepository, clock *Clock) *UserService {
	return &UserService{userRepo: userRepo, clock: clock, hashCost: bcrypt.DefaultCost}
}

// CreateUser registers a new account. Usernames are unique by a lookup
// before insert; concurrent signups for one username can still both succeed.
func (s *UserService) CreateUser(ctx context.Context, in models.Registration) (primitive.ObjectID, error) {
	ctx, span := observability.StartServiceSpan(ctx, "UserService", "CreateUser")
	defer span.End()

	if err := validation.ValidateRegistration(in); err != nil {
		return primitive.NilObjectID, models.NewValidationError(err.Error())
	}

	_, err := s.userRepo.GetByUsername(ctx, in.Username)
	switch {
	case err == nil:
		return primitive.NilObjectID, models.NewConflictError("User already exists").
			WithDetail("User %s already exists", in.Username)
	case !models.IsKind(err, models.CodeNotFound):
		observability.FailSpan(span, err)
		return primitive.NilObjectID, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return primitive.NilObjectID, models.NewInternalError(err)
	}

	user := &models.User{
		Username:              in.Username,
		Name:                  in.Name,
		Email:                 in.Email,
		Password:              string(hash),
		Role:                  models.UserRoleUser,
		RegisterationDateTime: s.clock.Format(s.clock.Now()),
	}

	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		observability.FailSpan(span, err)
		return primitive.NilObjectID, err
	}
	return id, nil
}

// Authenticate checks a username and password pair.
func (s *UserService) Authenticate(ctx context.Context, in models.Login) (*models.User, error) {
	user, err := s.GetUser(ctx, in.Username)
	if err != nil {
		return nil, err
	}

	// Rows written before hashing hold plaintext, which bcrypt reports as a
	// malformed hash rather than a mismatch. Either way the password is wrong.
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid password").
			WithDetail("Invalid password for user %s", in.Username)
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if models.IsKind(err, models.CodeNotFound) {
			return nil, models.NewNotFoundError("User not found").WithDetail("User %s not found", username)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.UserProfile, error) {
	return s.userRepo.GetProfile(ctx, userID)
}

func (s *UserService) GetSkills(ctx context.Context, userID primitive.ObjectID) ([]string, error) {
	return s.userRepo.ListSkills(ctx, userID)
}

func (s *UserService) GetProjects(ctx context.Context, userID primitive.ObjectID) ([]models.Project, error) {
	return s.userRepo.ListProjects(ctx, userID)
}

// GetFullProfile merges a user's profile with their skills and projects.
func (s *UserService) GetFullProfile(ctx context.Context, username string) (*models.ProfileResponse, error) {
	ctx, span := observability.StartServiceSpan(ctx, "UserService", "GetFullProfile")
	defer span.End()

	user, err := s.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}

	profile, err := s.GetProfile(ctx, user.ID)
	if err != nil {
		if models.IsKind(err, models.CodeNotFound) {
			return nil, models.NewNotFoundError("Profile not found").
				WithDetail("Profile for user %s not found", username)
		}
		return nil, err
	}

	skills, err := s.GetSkills(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	projects, err := s.GetProjects(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &models.ProfileResponse{
		Bio:          profile.Bio,
		LinkedinURL:  profile.LinkedinURL,
		GithubURL:    profile.GithubURL,
		PortfolioURL: profile.PortfolioURL,
		YearsExp:     profile.YearsExp,
		Skills:       skills,
		Projects:     projects,
	}, nil
}

// SaveProfile creates the user's profile and inserts their skills and
// projects. A failure after the profile row is written leaves the rows
// written so far in place.
func (s *UserService) SaveProfile(ctx context.Context, username string, in models.ProfileInput) error {
	ctx, span := observability.StartServiceSpan(ctx, "UserService", "SaveProfile")
	defer span.End()

	if err := validation.ValidateProfile(in); err != nil {
		return models.NewValidationError(err.Error())
	}

	user, err := s.GetUser(ctx, username)
	if err != nil {
		return err
	}

	_, err = s.userRepo.GetProfile(ctx, user.ID)
	switch {
	case err == nil:
		return models.NewConflictError("Profile already exists").
			WithDetail("Profile for user %s already exists", username)
	case !models.IsKind(err, models.CodeNotFound):
		return err
	}

	if err := s.userRepo.CreateProfile(ctx, profileRecord(user.ID, in)); err != nil {
		observability.FailSpan(span, err)
		return err
	}
	if in.Skills != nil {
		if err := s.userRepo.AddSkills(ctx, user.ID, *in.Skills); err != nil {
			observability.FailSpan(span, err)
			return err
		}
	}
	if in.Projects != nil {
		if err := s.userRepo.AddProjects(ctx, user.ID, *in.Projects); err != nil {
			observability.FailSpan(span, err)
			return err
		}
	}
	return nil
}

// UpdateProfile replaces the profile's descriptive fields. Skills and
// projects are replaced only when present in the input; an explicit empty
// list clears them and an absent field leaves them unchanged.
func (s *UserService) UpdateProfile(ctx context.Context, username string, in models.ProfileInput) error {
	ctx, span := observability.StartServiceSpan(ctx, "UserService", "UpdateProfile")
	defer span.End()

	if err := validation.ValidateProfile(in); err != nil {
		return models.NewValidationError(err.Error())
	}

	user, err := s.GetUser(ctx, username)
	if err != nil {
		return err
	}

	matched, err := s.userRepo.ReplaceProfile(ctx, profileRecord(user.ID, in))
	if err != nil {
		observability.FailSpan(span, err)
		return err
	}
	if !matched {
		return models.NewNotFoundError("Profile not found").
			WithDetail("Profile for user %s not found", username)
	}

	if in.Skills != nil {
		if err := s.userRepo.ReplaceSkills(ctx, user.ID, *in.Skills); err != nil {
			observability.FailSpan(span, err)
			return err
		}
	}
	if in.Projects != nil {
		if err := s.userRepo.ReplaceProjects(ctx, user.ID, *in.Projects); err != nil {
			observability.FailSpan(span, err)
			return err
		}
	}
	return nil
}

func profileRecord(userID primitive.ObjectID, in models.ProfileInput) *models.UserProfile {
	p := &models.UserProfile{
		ID:           primitive.NewObjectID(),
		UserID:       userID,
		Bio:          in.Bio,
		LinkedinURL:  in.LinkedinURL,
		GithubURL:    in.GithubURL,
		PortfolioURL: in.PortfolioURL,
	}
	if in.YearsExp != nil {
		p.YearsExp = *in.YearsExp
	}
	return p
}
