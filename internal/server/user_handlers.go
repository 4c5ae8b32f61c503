package server

import (
	"saathi/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Signup handles POST /user/signup
// @Summary User signup
// @Description Register a new user account
// @Tags user
// @Accept json
// @Produce json
// @Param request body models.Registration true "Signup request"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /user/signup [post]
func (s *Server) Signup(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	var req models.Registration
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	if _, err := s.userService.CreateUser(ctx, req); err != nil {
		return respondWriteError(c, err, fiber.StatusNotFound, "Failed to save user details")
	}

	return c.JSON(fiber.Map{"message": "User registered successfully"})
}

// Login handles POST /user/login
// @Summary User login
// @Description Check a username and password
// @Tags user
// @Accept json
// @Produce json
// @Param request body models.Login true "Login request"
// @Success 200 {object} object{message=string}
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /user/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	var req models.Login
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	if _, err := s.userService.Authenticate(ctx, req); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "User logged in successfully"})
}

// GetUser handles GET /user/:username
// @Summary Get user
// @Tags user
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} models.UserResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /user/{username} [get]
func (s *Server) GetUser(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := s.userService.GetUser(ctx, c.Params("username"))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user.ToResponse())
}

// GetProfile handles GET /user/profile/:username
// @Summary Get user profile
// @Description Profile merged with skills and projects
// @Tags user
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} models.ProfileResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /user/profile/{username} [get]
func (s *Server) GetProfile(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	profile, err := s.userService.GetFullProfile(ctx, c.Params("username"))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(profile)
}

// SaveProfile handles POST /user/save/profile/:username
// @Summary Save user profile
// @Tags user
// @Accept json
// @Produce json
// @Param username path string true "Username"
// @Param request body models.ProfileInput true "Profile"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /user/save/profile/{username} [post]
func (s *Server) SaveProfile(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	var req models.ProfileInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	if err := s.userService.SaveProfile(ctx, c.Params("username"), req); err != nil {
		return respondWriteError(c, err, fiber.StatusNotFound, "Failed to save profile")
	}

	return c.JSON(fiber.Map{"message": "Profile saved successfully"})
}

// UpdateProfile handles POST /user/update/profile/:username
// @Summary Update user profile
// @Description Omitted skills or projects are kept; an empty list clears them
// @Tags user
// @Accept json
// @Produce json
// @Param username path string true "Username"
// @Param request body models.ProfileInput true "Profile"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} models.ErrorResponse
// @Router /user/update/profile/{username} [post]
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	var req models.ProfileInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	if err := s.userService.UpdateProfile(ctx, c.Params("username"), req); err != nil {
		return respondWriteError(c, err, fiber.StatusNotFound, "Failed to update profile")
	}

	return c.JSON(fiber.Map{"message": "Profile updated successfully"})
}
