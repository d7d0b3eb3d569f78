package devauth

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Service is what the handlers need from AuthService.
type Service interface {
	Register(ctx context.Context, in RegisterInput) (*User, error)
	Login(ctx context.Context, email, password string) (token, refreshToken string, user *User, err error)
	SeedBills(ctx context.Context, userID string) ([]Bill, bool, error)
}

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// envelope is the response shape of the remote services.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
}

type loginData struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user"`
}

type userData struct {
	User *User `json:"user"`
}

type billsData struct {
	Bills []Bill `json:"bills"`
}

// Register creates a new account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      409   {object}  envelope
// @Router       /api/auth/register [post]
func (h *Handler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, envelope{Message: "invalid payload"})
	}

	user, err := h.svc.Register(c.Request().Context(), RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Role:      req.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrUserExists):
			return c.JSON(http.StatusConflict, envelope{Message: "User already exists"})
		case errors.Is(err, ErrInvalidCredentials):
			return c.JSON(http.StatusBadRequest, envelope{Message: "Email and password are required"})
		}
		return c.JSON(http.StatusInternalServerError, envelope{Message: "internal error"})
	}

	return c.JSON(http.StatusCreated, envelope{Success: true, Message: "Registration successful", Data: userData{User: user}})
}

// Login authenticates a user and returns a JWT.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      401   {object}  envelope
// @Router       /api/auth/login [post]
func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, envelope{Message: "invalid payload"})
	}

	token, refresh, user, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		// Unknown users and bad passwords look the same to the caller.
		if errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrUserNotFound) {
			return c.JSON(http.StatusUnauthorized, envelope{Message: "Invalid email or password"})
		}
		return c.JSON(http.StatusInternalServerError, envelope{Message: "internal error"})
	}

	return c.JSON(http.StatusOK, envelope{
		Success: true,
		Message: "Login successful",
		Data:    loginData{Token: token, RefreshToken: refresh, User: user},
	})
}

// SeedDemoBills creates demo bills for the caller. Repeated calls are no-ops.
//
// @Summary      Seed demo bills
// @Tags         bills
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Success      201  {object}  envelope
// @Failure      401  {object}  envelope
// @Router       /api/bills-payment/v1/bills/seed-demo [post]
func (h *Handler) SeedDemoBills(c echo.Context) error {
	userID, _ := c.Get(ctxUserID).(string)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, envelope{Message: "token missing subject"})
	}

	bills, created, err := h.svc.SeedBills(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, envelope{Message: "internal error"})
	}
	if !created {
		return c.JSON(http.StatusOK, envelope{Success: true, Message: "Demo bills already exist", Data: billsData{Bills: bills}})
	}
	return c.JSON(http.StatusCreated, envelope{Success: true, Message: "Demo bills created", Data: billsData{Bills: bills}})
}
