package server

import (
	"saathi/internal/models"
	"saathi/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	msgCommunitiesFound = "Communities fetched successfully"
	msgNoCommunities    = "No communities found"
)

// communitiesResponse wraps a listing the way every community list route does.
func communitiesResponse[T any](c *fiber.Ctx, items []T) error {
	if len(items) == 0 {
		return c.JSON(fiber.Map{"message": msgNoCommunities, "communities": []T{}})
	}
	return c.JSON(fiber.Map{"message": msgCommunitiesFound, "communities": items})
}

// CreateCommunity handles POST /community/create
// @Summary Create community
// @Tags community
// @Accept json
// @Produce json
// @Param request body models.CommunityInput true "Community"
// @Success 200 {object} object{message=string,community_id=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /community/create [post]
func (s *Server) CreateCommunity(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	var req models.CommunityInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	id, err := s.communityService.CreateCommunity(ctx, req)
	if err != nil {
		return respondWriteError(c, err, fiber.StatusConflict, "Failed to save community details")
	}

	return c.JSON(fiber.Map{
		"message":      "Community created successfully",
		"community_id": id.Hex(),
	})
}

// GetCommunity handles GET /community/id/:community_id
// @Summary Get community
// @Tags community
// @Produce json
// @Param community_id path string true "Community id"
// @Success 200 {object} models.CommunityDTO
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /community/id/{community_id} [get]
func (s *Server) GetCommunity(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	community, err := s.communityService.GetCommunity(ctx, c.Params("community_id"))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(community)
}

// GetUserCommunities handles GET /community/user/:username
// @Summary List communities created by a user
// @Tags community
// @Produce json
// @Param username path string true "Creator username"
// @Success 200 {object} object{message=string,communities=[]models.CommunitySummary}
// @Router /community/user/{username} [get]
func (s *Server) GetUserCommunities(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	communities, err := s.communityService.GetUserCommunities(ctx, c.Params("username"))
	if err != nil {
		return respondServiceError(c, err)
	}

	return communitiesResponse(c, communities)
}

// GetLatestCommunities handles GET /community/latest
// @Summary List most recent communities
// @Tags community
// @Produce json
// @Param limit query int false "Page size" default(10) maximum(100)
// @Param page query int false "Page number" default(1)
// @Success 200 {object} object{message=string,communities=[]models.CommunityDTO}
// @Router /community/latest [get]
func (s *Server) GetLatestCommunities(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	limit := c.QueryInt("limit", service.DefaultPageSize)
	page := c.QueryInt("page", 1)

	communities, err := s.communityService.GetLatestCommunities(ctx, limit, page)
	if err != nil {
		return respondServiceError(c, err)
	}

	return communitiesResponse(c, communities)
}

// SearchCommunities handles POST /community/search/skills
// @Summary Search communities by skills
// @Description Communities whose tech stack shares at least one skill
// @Tags community
// @Accept json
// @Produce json
// @Param request body models.SkillSearchInput true "Search"
// @Success 200 {object} object{message=string,communities=[]models.CommunitySearchResult}
// @Failure 400 {object} models.ErrorResponse
// @Router /community/search/skills [post]
func (s *Server) SearchCommunities(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	var req models.SkillSearchInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	results, err := s.communityService.SearchBySkills(ctx, req, c.IP())
	if err != nil {
		return respondServiceError(c, err)
	}

	return communitiesResponse(c, results)
}
