// Package models contains data structures for the application's domain models.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Collection names used by the user aggregate.
const (
	CollectionUsers        = "user"
	CollectionUserProfiles = "user_profiles"
	CollectionUserSkills   = "user_skills"
	CollectionUserProjects = "user_projects"
)

// UserRole defines what an account is allowed to do.
type UserRole string

const (
	// UserRoleAdmin marks an administrator account.
	UserRoleAdmin UserRole = "admin"
	// UserRoleUser is assigned to every self-registered account.
	UserRoleUser UserRole = "user"
)

// User represents a registered account.
type User struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username              string             `bson:"username" json:"username"`
	Name                  string             `bson:"name" json:"name"`
	Email                 string             `bson:"email" json:"email"`
	Password              string             `bson:"password" json:"password"`
	Role                  UserRole           `bson:"role" json:"role"`
	RegisterationDateTime string             `bson:"registeration_date_time" json:"registeration_date_time"`
}

// UserProfile holds the descriptive part of a user's profile. Skills and
// projects live in their own collections.
type UserProfile struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID       primitive.ObjectID `bson:"user_id" json:"-"`
	Bio          *string            `bson:"bio" json:"bio"`
	LinkedinURL  *string            `bson:"linkedin_url" json:"linkedin_url"`
	GithubURL    *string            `bson:"github_url" json:"github_url"`
	PortfolioURL *string            `bson:"portfolio_url" json:"portfolio_url"`
	YearsExp     int                `bson:"years_exp" json:"years_exp"`
}

// UserSkill is one free-text skill row owned by a user.
type UserSkill struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	UserID primitive.ObjectID `bson:"user_id"`
	Skill  string             `bson:"skill"`
}

// UserProject is one showcased project owned by a user.
type UserProject struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	UserID primitive.ObjectID `bson:"user_id"`
	Title  string             `bson:"title"`
	Link   string             `bson:"link"`
}

// Project is the client-facing shape of a UserProject.
type Project struct {
	Title string `json:"title" bson:"title"`
	Link  string `json:"link" bson:"link"`
}

// Registration is the signup request body.
type Registration struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login is the login request body.
type Login struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ProfileInput is the body of the profile save and update routes.
//
// Skills and Projects are pointers so that an absent field (nil) can be told
// apart from an explicitly empty list. On update, nil leaves the stored rows
// untouched and an empty list clears them.
type ProfileInput struct {
	Bio          *string    `json:"bio"`
	LinkedinURL  *string    `json:"linkedin_url"`
	GithubURL    *string    `json:"github_url"`
	PortfolioURL *string    `json:"portfolio_url"`
	YearsExp     *int       `json:"years_exp"`
	Skills       *[]string  `json:"skills"`
	Projects     *[]Project `json:"projects"`
}

// UserResponse is what GET /user/{username} returns.
type UserResponse struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileResponse is a profile merged with its skills and projects.
type ProfileResponse struct {
	Bio          *string   `json:"bio"`
	LinkedinURL  *string   `json:"linkedin_url"`
	GithubURL    *string   `json:"github_url"`
	PortfolioURL *string   `json:"portfolio_url"`
	YearsExp     int       `json:"years_exp"`
	Skills       []string  `json:"skills"`
	Projects     []Project `json:"projects"`
}

// ToResponse filters a stored user down to the public response fields.
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		Username: u.Username,
		Name:     u.Name,
		Email:    u.Email,
		Password: u.Password,
	}
}
