package controllers

import (
	"errors"

	"examprep-backend/backend/config"
	"examprep-backend/backend/middleware"
	"examprep-backend/backend/models"
	"examprep-backend/backend/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

type AuthController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAuthController(db *gorm.DB, cfg *config.Config) *AuthController {
	return &AuthController{DB: db, Cfg: cfg}
}

// Register godoc
// @Summary Register a new user
// @Description Creates a new user account and returns a JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /auth/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input middleware.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if errs := middleware.Validate(input); errs != nil {
		return utils.ValidationFailed(c, errs)
	}

	var existing models.User
	err := ac.DB.Where("email = ?", input.Email).First(&existing).Error
	if err == nil {
		return utils.Conflict(c, "Email already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.InternalServerError(c)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return utils.InternalServerError(c)
	}

	user := models.User{
		Name:              input.Name,
		Email:             input.Email,
		Password:          string(hashed),
		TargetExam:        input.TargetExam,
		PreferredLanguage: input.PreferredLanguage,
		PreparationLevel:  input.PreparationLevel,
	}
	if err := ac.DB.Create(&user).Error; err != nil {
		return utils.InternalServerError(c)
	}

	token, err := utils.GenerateJWTToken(utils.TokenClaims{UserID: user.ID, Email: user.Email, Name: user.Name}, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c)
	}

	return utils.SuccessMessage(c, fiber.StatusCreated, "User registered successfully", fiber.Map{
		"userId":     user.ID,
		"name":       user.Name,
		"email":      user.Email,
		"targetExam": user.TargetExam,
		"token":      token,
	})
}

// Login godoc
// @Summary User login
// @Description Authenticates a user and returns a JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input middleware.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if errs := middleware.Validate(input); errs != nil {
		return utils.ValidationFailed(c, errs)
	}

	var user models.User
	if err := ac.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Unauthorized(c, "Invalid email or password")
		}
		return utils.InternalServerError(c)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return utils.Unauthorized(c, "Invalid email or password")
	}

	token, err := utils.GenerateJWTToken(utils.TokenClaims{UserID: user.ID, Email: user.Email, Name: user.Name}, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c)
	}

	return utils.SuccessMessage(c, fiber.StatusOK, "Login successful", fiber.Map{
		"userId":            user.ID,
		"name":              user.Name,
		"email":             user.Email,
		"targetExam":        user.TargetExam,
		"preferredLanguage": user.PreferredLanguage,
		"preparationLevel":  user.PreparationLevel,
		"token":             token,
	})
}

func (ac *AuthController) GetProfile(c *fiber.Ctx) error {
	claims, _ := middleware.CurrentUser(c)

	var user models.User
	if err := ac.DB.First(&user, claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return utils.InternalServerError(c)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"userId":            user.ID,
		"name":              user.Name,
		"email":             user.Email,
		"targetExam":        user.TargetExam,
		"preferredLanguage": user.PreferredLanguage,
		"preparationLevel":  user.PreparationLevel,
		"createdAt":         user.CreatedAt,
	})
}

func (ac *AuthController) UpdateProfile(c *fiber.Ctx) error {
	claims, _ := middleware.CurrentUser(c)

	var update models.UserUpdate
	if err := c.BodyParser(&update); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	changes := update.Changes()
	if len(changes) == 0 {
		return utils.BadRequest(c, "No valid fields to update")
	}

	var user models.User
	if err := ac.DB.First(&user, claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return utils.InternalServerError(c)
	}

	if err := ac.DB.Model(&user).Updates(changes).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return utils.SuccessMessage(c, fiber.StatusOK, "Profile updated successfully", user)
}

func (ac *AuthController) Refresh(c *fiber.Ctx) error {
	claims, _ := middleware.CurrentUser(c)

	token, err := utils.GenerateJWTToken(claims, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c)
	}

	return utils.SuccessMessage(c, fiber.StatusOK, "Token refreshed successfully", fiber.Map{
		"token": token,
	})
}

// Logout is an acknowledgment only; tokens are stateless and the client
// discards its copy.
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	return utils.SuccessMessage(c, fiber.StatusOK, "Logged out successfully", nil)
}

func (ac *AuthController) Verify(c *fiber.Ctx) error {
	claims, _ := middleware.CurrentUser(c)

	return utils.SuccessMessage(c, fiber.StatusOK, "Token is valid", fiber.Map{
		"userId": claims.UserID,
		"email":  claims.Email,
		"name":   claims.Name,
	})
}
