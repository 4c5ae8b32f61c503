package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names used by the community aggregate.
const (
	CollectionCommunities     = "community"
	CollectionCommunitySkills = "community_skills"
)

// Community represents a group of people organised around a tech stack.
// CreatorUsername is a denormalized username, not a foreign id.
type Community struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty"`
	CreatorUsername       string             `bson:"creator_username"`
	Name                  string             `bson:"name"`
	Experience            *string            `bson:"experience"`
	RegisterationDateTime time.Time          `bson:"registeration_date_time"`
}

// CommunitySkill is one tech-stack entry of a community.
type CommunitySkill struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	CommunityID primitive.ObjectID `bson:"community_id"`
	Skill       string             `bson:"skill"`
}

// CommunityInput is the body of POST /community/create.
type CommunityInput struct {
	CreatorUsername string   `json:"creator_username"`
	Name            string   `json:"name"`
	TechStack       []string `json:"tech_stack"`
	Experience      *string  `json:"experience"`
}

// SkillSearchInput is the body of POST /community/search/skills.
type SkillSearchInput struct {
	Skills []string `json:"skills"`
	Limit  int      `json:"limit"`
}

// CommunityDTO is a community merged with its tech stack.
type CommunityDTO struct {
	ID                    string   `json:"id,omitempty"`
	CreatorUsername       string   `json:"creator_username"`
	Name                  string   `json:"name"`
	TechStack             []string `json:"tech_stack"`
	Experience            *string  `json:"experience"`
	RegisterationDateTime string   `json:"registeration_date_time,omitempty"`
}

// CommunitySummary is the reduced shape listed per creator.
type CommunitySummary struct {
	ID         primitive.ObjectID `json:"id" bson:"_id"`
	Name       string             `json:"name" bson:"name"`
	Experience *string            `json:"experience" bson:"experience"`
}

// CommunitySearchResult is one row of the skill-search aggregation.
type CommunitySearchResult struct {
	CreatorUsername       string    `json:"creator_username" bson:"creator_username"`
	Name                  string    `json:"name" bson:"name"`
	TechStack             []string  `json:"tech_stack" bson:"tech_stack"`
	Experience            *string   `json:"experience" bson:"experience"`
	RegisterationDateTime time.Time `json:"registeration_date_time" bson:"registeration_date_time"`
}

// ToDTO merges a stored community with its tech stack.
func (c *Community) ToDTO(techStack []string) CommunityDTO {
	if techStack == nil {
		techStack = []string{}
	}
	return CommunityDTO{
		ID:                    c.ID.Hex(),
		CreatorUsername:       c.CreatorUsername,
		Name:                  c.Name,
		TechStack:             techStack,
		Experience:            c.Experience,
		RegisterationDateTime: c.RegisterationDateTime.UTC().Format(time.RFC3339Nano),
	}
}
