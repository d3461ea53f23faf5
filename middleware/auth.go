package middleware

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"github.com/stitchhouse/stitchhouse-api/config"
	"github.com/stitchhouse/stitchhouse-api/models"
	"gorm.io/gorm"
)

// CustomClaims contains the custom data carried by our access tokens.
type CustomClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Validate does nothing, but is needed to satisfy the
// validator.CustomClaims interface.
func (c CustomClaims) Validate(ctx context.Context) error {
	return nil
}

// newTokenValidator builds a validator for our locally issued HS256 tokens.
func newTokenValidator(cfg *config.Config) (*validator.Validator, error) {
	keyFunc := func(ctx context.Context) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	}

	return validator.New(
		keyFunc,
		validator.HS256,
		cfg.JWTIssuer,
		[]string{cfg.JWTAudience},
		validator.WithCustomClaims(
			func() validator.CustomClaims {
				return &CustomClaims{}
			},
		),
		validator.WithAllowedClockSkew(time.Minute),
	)
}

// RequireAuth resolves the bearer token to a user record, gates access by
// role, and records admin activity. With no roles given, any authenticated
// user passes.
func RequireAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg := config.GetConfig()

		token := extractBearerToken(c)
		if token == "" {
			abortUnauthorized(c, "UNAUTHORIZED", "No authentication token, access denied")
			return
		}

		jwtValidator, err := newTokenValidator(cfg)
		if err != nil {
			log.Printf("Failed to build token validator: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Could not validate credentials",
				},
			})
			c.Abort()
			return
		}

		claims, err := jwtValidator.ValidateToken(c.Request.Context(), token)
		if err != nil {
			abortUnauthorized(c, "INVALID_TOKEN", "Token is invalid")
			return
		}

		validated := claims.(*validator.ValidatedClaims)
		userID, err := strconv.ParseUint(validated.RegisteredClaims.Subject, 10, 64)
		if err != nil {
			abortUnauthorized(c, "INVALID_TOKEN", "Token is invalid")
			return
		}

		// Re-read the user row so a deleted account cannot keep using a
		// still-valid token.
		db := config.GetDB()
		var user models.User
		if err := db.First(&user, uint(userID)).Error; err != nil {
			abortUnauthorized(c, "USER_NOT_FOUND", "User not found")
			return
		}

		if len(allowedRoles) > 0 && !roleAllowed(user.Role, allowedRoles) {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Insufficient permissions",
				},
			})
			c.Abort()
			return
		}

		// Best-effort audit trail for admin actions. A logging fault must
		// never fail an otherwise valid request.
		if user.Role == "admin" {
			logAdminActivity(c, db, &user)
		}

		c.Set("user", user)
		c.Set("user_id", user.ID)
		c.Next()
	}
}

func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	token := strings.TrimPrefix(header, "Bearer ")
	if token == header {
		return ""
	}
	return token
}

func roleAllowed(role string, allowed []string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

func logAdminActivity(c *gin.Context, db *gorm.DB, user *models.User) {
	entry := models.ActivityLog{
		UserID:      user.ID,
		Action:      c.Request.Method + " " + c.Request.URL.Path,
		Description: "Accessed " + c.Request.URL.Path,
		IPAddress:   c.ClientIP(),
		UserAgent:   c.Request.UserAgent(),
	}
	if err := db.Create(&entry).Error; err != nil {
		log.Printf("Failed to record admin activity: %v", err)
	}
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
	c.Abort()
}

// GetCurrentUser extracts the authenticated user from the Gin context
func GetCurrentUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get("user")
	if !exists {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}
