package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/sauravsingh6568/paonflowers-sub000/internal/apperr"
	"github.com/sauravsingh6568/paonflowers-sub000/internal/identity"
)

// LocalsUserID is the fiber locals key under which the authenticated user id
// is stored by the token middleware.
const LocalsUserID = "user_id"

// Handler exposes the OTP authentication endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type sendOTPRequest struct {
	Phone string `json:"phone"`
}

// SendOTP issues a one-time code to the phone number. The response never
// echoes the code.
func (h *Handler) SendOTP(c *fiber.Ctx) error {
	var req sendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation(map[string]string{"body": "invalid JSON payload"})
	}
	if err := h.svc.SendCode(c.UserContext(), req.Phone); err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "OTP sent"})
}

type verifyOTPRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

// VerifyOTP validates the code and returns a session token with the user
// projection.
func (h *Handler) VerifyOTP(c *fiber.Ctx) error {
	var req verifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation(map[string]string{"body": "invalid JSON payload"})
	}
	result, err := h.svc.VerifyCode(c.UserContext(), req.Phone, req.Code)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"token": result.Token,
		"user":  result.User.Project(),
	})
}

// Me returns the authenticated user's projection, or a null user if the
// record no longer exists.
func (h *Handler) Me(c *fiber.Ctx) error {
	uid, _ := c.Locals(LocalsUserID).(string)
	if uid == "" {
		return apperr.Unauthorized("missing credentials")
	}
	user, found, err := h.svc.Me(c.UserContext(), uid)
	if err != nil {
		return err
	}
	var payload any
	if found {
		payload = user.Project()
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"user": payload})
}

type updateProfileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Location string `json:"location"`
}

// UpdateProfile completes or edits the authenticated user's profile.
func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	uid, _ := c.Locals(LocalsUserID).(string)
	if uid == "" {
		return apperr.Unauthorized("missing credentials")
	}
	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation(map[string]string{"body": "invalid JSON payload"})
	}
	user, err := h.svc.UpdateProfile(c.UserContext(), uid, identity.ProfileUpdate{
		Name:     req.Name,
		Email:    req.Email,
		Location: req.Location,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"user": user.Project()})
}
