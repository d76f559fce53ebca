package handler

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campusmerch/store/internal/config"
	"github.com/campusmerch/store/internal/model"
	"github.com/campusmerch/store/internal/repository"
	"github.com/campusmerch/store/internal/utils"
)

// AuthHandler bundles dependencies for the credential lifecycle endpoints:
// signup, signin, refresh, logout and profile lookup.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, users *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

var emailRx = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLen = 6

// ----- DTOs -----

type signupReq struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	StoreName string `json:"storeName"`
	Location  string `json:"location"`
}

type signinReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshReq struct {
	RefreshToken string `json:"refreshToken"`
}

// userResponse is the sanitized view of a user record. The password hash
// and the stored refresh token never appear in it.
type userResponse struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      model.Role `json:"role"`
	StoreName string     `json:"storeName,omitempty"`
	Location  string     `json:"location,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

func toUserResponse(u model.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		StoreName: u.StoreName,
		Location:  u.Location,
		CreatedAt: u.CreatedAt,
	}
}

type authResp struct {
	Success      bool         `json:"success"`
	Message      string       `json:"message"`
	User         userResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

// issueAndStoreTokens creates a fresh token pair for the user and persists
// the refresh token, overwriting (and thereby invalidating) any prior one.
func (h *AuthHandler) issueAndStoreTokens(c echo.Context, u model.User) (access utils.AccessToken, refresh utils.RefreshToken, err error) {
	access, err = utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, string(u.Role), h.Cfg.AccessTTLMin)
	if err != nil {
		return
	}
	refresh, err = utils.NewRefreshToken(h.Cfg.JWTSecret, u.ID, h.Cfg.RefreshTTLDays)
	if err != nil {
		return
	}
	err = h.Users.SaveRefreshToken(c.Request().Context(), u.ID, refresh.Token)
	return
}

// Signup handles POST /api/users/signup. On success the new user is
// persisted and returned with a fresh token pair.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Username, email, password, and role are required"})
	}
	role, err := model.ParseRole(req.Role)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if !emailRx.MatchString(req.Email) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid email format"})
	}
	if len(req.Password) < minPasswordLen {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Password must be at least 6 characters"})
	}
	if role == model.RoleStoreKeeper && (strings.TrimSpace(req.StoreName) == "" || strings.TrimSpace(req.Location) == "") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Store name and location are required for store keepers"})
	}

	u, err := h.Users.Create(c.Request().Context(), repository.NewUser{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Role:      role,
		StoreName: req.StoreName,
		Location:  req.Location,
	}, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameExists) || errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		c.Logger().Errorf("signup: create user: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not register user"})
	}

	access, refresh, err := h.issueAndStoreTokens(c, u)
	if err != nil {
		c.Logger().Errorf("signup: issue tokens: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not issue tokens"})
	}
	return c.JSON(http.StatusCreated, authResp{
		Success:      true,
		Message:      "User registered successfully",
		User:         toUserResponse(u),
		AccessToken:  access.Token,
		RefreshToken: refresh.Token,
	})
}

// Signin handles POST /api/users/signin. Whether the email is unknown or
// the password is wrong, the response is the same 401: error messages must
// not let callers enumerate accounts.
func (h *AuthHandler) Signin(c echo.Context) error {
	var req signinReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email and password are required"})
	}

	u, err := h.Users.GetByEmail(c.Request().Context(), req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid email or password"})
		}
		c.Logger().Errorf("signin: lookup: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not sign in"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid email or password"})
	}

	access, refresh, err := h.issueAndStoreTokens(c, u)
	if err != nil {
		c.Logger().Errorf("signin: issue tokens: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not issue tokens"})
	}
	return c.JSON(http.StatusOK, authResp{
		Success:      true,
		Message:      "Login successful",
		User:         toUserResponse(u),
		AccessToken:  access.Token,
		RefreshToken: refresh.Token,
	})
}

// Refresh handles POST /api/users/refresh. A refresh token is honored only
// when it both matches the value currently stored for its user AND passes
// cryptographic verification; either failure alone is a 403. The refresh
// token is not rotated here, only a new access token is issued.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Refresh token required"})
	}
	raw := strings.TrimSpace(req.RefreshToken)

	u, err := h.Users.FindByRefreshToken(c.Request().Context(), raw)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "Invalid refresh token"})
	}
	if _, err := utils.VerifyToken(h.Cfg.JWTSecret, raw); err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "Expired or invalid refresh token"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, string(u.Role), h.Cfg.AccessTTLMin)
	if err != nil {
		c.Logger().Errorf("refresh: issue access: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not issue token"})
	}
	return c.JSON(http.StatusOK, echo.Map{"accessToken": access.Token})
}

// Logout handles POST /api/users/logout. Clearing the stored refresh token
// is the sole revocation mechanism; access tokens already issued run out
// their TTL.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Refresh token required"})
	}
	err := h.Users.ClearRefreshToken(c.Request().Context(), strings.TrimSpace(req.RefreshToken))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Refresh token not found"})
		}
		c.Logger().Errorf("logout: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not log out"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Logged out"})
}

// Profile handles GET /api/users/user/:id. The route is deliberately
// unauthenticated, matching the behavior this service replaces; the
// response is limited to the sanitized profile fields.
func (h *AuthHandler) Profile(c echo.Context) error {
	id := c.Param("id")
	u, err := h.Users.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		c.Logger().Errorf("profile: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load user"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": toUserResponse(u)})
}
