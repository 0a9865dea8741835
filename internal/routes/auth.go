package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sauravsingh6568/paonflowers-sub000/internal/auth"
)

// RegisterAuthRoutes wires the OTP authentication endpoints.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler, rateLimiter, tokenAuth fiber.Handler) {
	group := r.Group("/auth")
	if rateLimiter != nil {
		group.Post("/send-otp", rateLimiter, h.SendOTP)
	} else {
		group.Post("/send-otp", h.SendOTP)
	}
	group.Post("/verify-otp", h.VerifyOTP)
	group.Get("/me", tokenAuth, h.Me)
	group.Patch("/profile", tokenAuth, h.UpdateProfile)
}
