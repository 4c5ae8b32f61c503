package validation

import (
	"errors"
	"fmt"
	"strings"

	"saathi/internal/models"
)

const maxCommunityNameLength = 100

// ValidateCommunity checks a community creation body. An empty tech stack is
// allowed; blank entries are not.
func ValidateCommunity(in models.CommunityInput) error {
	if err := ValidateUsername(in.CreatorUsername); err != nil {
		return fmt.Errorf("creator_username: %w", err)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return errors.New("name is required")
	}
	if len(name) > maxCommunityNameLength {
		return fmt.Errorf("name must be at most %d characters", maxCommunityNameLength)
	}
	return validateEntries("tech_stack", in.TechStack)
}

// ValidateSkillSearch checks a skill search body.
func ValidateSkillSearch(in models.SkillSearchInput) error {
	if in.Limit < 0 {
		return errors.New("limit cannot be negative")
	}
	return validateEntries("skills", in.Skills)
}
