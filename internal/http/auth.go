package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/auth"
)

type AuthController struct {
	service  *auth.Service
	sessions *auth.SessionManager
	auditor  Auditor
}

func NewAuthController(service *auth.Service, sessions *auth.SessionManager, auditor Auditor) *AuthController {
	return &AuthController{service: service, sessions: sessions, auditor: auditor}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Mode tells clients whether they need to authenticate at all.
func (controller *AuthController) Mode(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"mode": string(controller.service.GetAuthMode())})
}

func (controller *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		respondBadRequest(c, "username and password are required")
		return
	}

	user, err := controller.service.Authenticate(req.Username, req.Password)
	if controller.auditor != nil {
		controller.auditor.LogAuth("login", req.Username, err == nil)
	}
	if err != nil {
		if errors.Is(err, auth.ErrAccountLocked) {
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "account temporarily locked"})
			return
		}
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
		return
	}

	if err := controller.sessions.CreateSession(c.Request, user); err != nil {
		respondInternalError(c, err, "create session")
		return
	}

	c.JSON(http.StatusOK, userResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     string(user.Role),
	})
}

func (controller *AuthController) Logout(c *gin.Context) {
	username := auth.GetUsername(c)
	if err := controller.sessions.DestroySession(c.Request); err != nil {
		respondInternalError(c, err, "destroy session")
		return
	}
	if controller.auditor != nil && username != "" {
		controller.auditor.LogAuth("logout", username, true)
	}
	respondSuccess(c, "logged out")
}

// Me returns the authenticated staff account for the current session.
func (controller *AuthController) Me(c *gin.Context) {
	userID := auth.GetUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	user, err := controller.service.GetUserByID(userID)
	if err != nil {
		respondDomainError(c, err, "current user")
		return
	}
	c.JSON(http.StatusOK, userResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     string(user.Role),
	})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (controller *AuthController) ChangePassword(c *gin.Context) {
	userID := auth.GetUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	err := controller.service.ChangePassword(userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidPassword):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "current password is incorrect"})
		case errors.Is(err, auth.ErrPasswordTooShort), errors.Is(err, auth.ErrPasswordTooLong):
			respondBadRequest(c, err.Error())
		default:
			respondInternalError(c, err, "change password")
		}
		return
	}
	respondSuccess(c, "password changed")
}
