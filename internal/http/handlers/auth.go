package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/geocoder89/portfoliohub/internal/auth"
	"github.com/geocoder89/portfoliohub/internal/domain/user"
	"github.com/geocoder89/portfoliohub/internal/http/middlewares"
	"github.com/geocoder89/portfoliohub/internal/security"
	"github.com/gin-gonic/gin"
)

type TokenIssuer interface {
	GenerateAccessToken(id auth.Identity) (string, error)
}

type AuthHandler struct {
	users UserStore
	jwt   TokenIssuer
}

func NewAuthHandler(users UserStore, jwt TokenIssuer) *AuthHandler {
	return &AuthHandler{users: users, jwt: jwt}
}

type LoginResponse struct {
	Token string    `json:"token"`
	User  user.User `json:"user"`
}

// Login answers unknown emails and wrong passwords with the same 401 so the
// response does not reveal which accounts exist.
func (h *AuthHandler) Login(ctx *gin.Context) {
	var req user.LoginRequest
	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := storeContext(ctx)
	defer cancel()

	u, err := h.users.GetByEmail(cctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondUnauthorized(ctx, "Invalid credentials")
			return
		}
		RespondInternal(ctx, "auth.login", err)
		return
	}

	if err := security.CheckPassword(u.PasswordHash, req.Password); err != nil {
		RespondUnauthorized(ctx, "Invalid credentials")
		return
	}

	token, err := h.jwt.GenerateAccessToken(auth.Identity{ID: u.ID, Email: u.Email, Role: u.Role})
	if err != nil {
		RespondInternal(ctx, "auth.login", err)
		return
	}

	ctx.JSON(http.StatusOK, LoginResponse{Token: token, User: u})
}

// Me echoes the identity the auth middleware attached.
func (h *AuthHandler) Me(ctx *gin.Context) {
	id, ok := middlewares.IdentityFromContext(ctx)
	if !ok {
		RespondUnauthorized(ctx, "Authentication required")
		return
	}
	ctx.JSON(http.StatusOK, id)
}
