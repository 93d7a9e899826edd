package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"taskboard/internal/domain"
)

const contextUserIDKey = "userID"

// mfaScope marks tokens issued to accounts that still owe a second factor.
// Such tokens are only good for the verify-mfa endpoint.
const mfaScope = "mfa"

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type verifyMFARequest struct {
	Code string `json:"code" binding:"required"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email and password are required"})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "user": userToResponse(*user)})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	scope := ""
	if user.MFAEnabled {
		scope = mfaScope
	}
	token, err := h.issueToken(user.ID, user.Email, scope)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"token":       token,
		"user":        userToResponse(*user),
		"requiresMfa": user.MFAEnabled,
	})
}

func (h *Handler) verifyMFA(c *gin.Context) {
	userID, scope, err := h.parseAuthorization(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}
	if scope != mfaScope {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no mfa verification pending"})
		return
	}

	var req verifyMFARequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code is required"})
		return
	}

	user, err := h.users.VerifyMFA(c.Request.Context(), userID, req.Code)
	if err != nil {
		h.writeError(c, err)
		return
	}

	token, err := h.issueToken(user.ID, user.Email, "")
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "user": userToResponse(*user)})
}

func (h *Handler) logout(c *gin.Context) {
	// stateless tokens, nothing to revoke server side
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) issueToken(userID, email, scope string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"exp":     time.Now().Add(h.tokenTTL).Unix(),
	}
	if scope != "" {
		claims["scope"] = scope
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}

func (h *Handler) parseAuthorization(c *gin.Context) (userID, scope string, err error) {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", "", jwt.ErrTokenMalformed
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(h.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return "", "", jwt.ErrTokenUnverifiable
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", jwt.ErrTokenInvalidClaims
	}
	userID, ok = claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", jwt.ErrTokenInvalidClaims
	}
	scope, _ = claims["scope"].(string)
	return userID, scope, nil
}

func (h *Handler) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, scope, err := h.parseAuthorization(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization token is required"})
			return
		}
		if scope == mfaScope {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": domain.ErrMFARequired.Error()})
			return
		}
		c.Set(contextUserIDKey, userID)
		c.Next()
	}
}
