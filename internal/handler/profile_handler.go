package handler

import (
	"net/http"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"

	"heatshield/internal/auth"
	"heatshield/internal/model"
	"heatshield/internal/service"
)

// ProfileHandler handles the authenticated user's profile.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// ProfileResponse lists every non-sensitive user attribute.
type ProfileResponse struct {
	ID           model.UserID `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Phone        *string      `json:"phone"`
	Location     *string      `json:"location"`
	ProfileImage *string      `json:"profile_image"`
	CreatedAt    *string      `json:"created_at"`
	LastLogin    *string      `json:"last_login"`
	SearchCount  int          `json:"search_count"`
}

// UpdateProfileRequest documents the accepted keys. Other keys are ignored.
type UpdateProfileRequest struct {
	Phone    *string `json:"phone" validate:"omitempty,max=20"`
	Location *string `json:"location" validate:"omitempty,max=100"`
}

// ChangePasswordRequest represents a password change.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func toProfileResponse(u *model.User) ProfileResponse {
	return ProfileResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		Location:     u.Location,
		ProfileImage: u.ProfileImage,
		CreatedAt:    isoTime(&u.CreatedAt),
		LastLogin:    isoTime(u.LastLogin),
		SearchCount:  u.SearchCount,
	}
}

// GetProfile godoc
// @Summary Get the caller's profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ProfileResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID, err := auth.UserIDFrom(c)
	if err != nil {
		return fail(err)
	}

	user, err := h.profileService.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, toProfileResponse(user))
}

// UpdateProfile godoc
// @Summary Update phone and location
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Fields to change"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /profile [put]
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	userID, err := auth.UserIDFrom(c)
	if err != nil {
		return fail(err)
	}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(c.Request().Body).Decode(&raw); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}

	var (
		req    UpdateProfileRequest
		update service.ProfileUpdate
	)
	if v, ok := raw["phone"]; ok {
		if err := json.Unmarshal(v, &req.Phone); err != nil {
			return badRequest("phone must be a string or null", "VALIDATION_ERROR")
		}
		update.Phone = service.Field{Set: true, Value: req.Phone}
	}
	if v, ok := raw["location"]; ok {
		if err := json.Unmarshal(v, &req.Location); err != nil {
			return badRequest("location must be a string or null", "VALIDATION_ERROR")
		}
		update.Location = service.Field{Set: true, Value: req.Location}
	}
	if err := c.Validate(&req); err != nil {
		return invalid(err)
	}

	if err := h.profileService.UpdateProfile(c.Request().Context(), userID, update); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Profile updated successfully"})
}

// ChangePassword godoc
// @Summary Change the caller's password
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "Old and new password"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /profile/change-password [put]
func (h *ProfileHandler) ChangePassword(c echo.Context) error {
	userID, err := auth.UserIDFrom(c)
	if err != nil {
		return fail(err)
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}

	if err := h.profileService.ChangePassword(c.Request().Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Password changed successfully"})
}
