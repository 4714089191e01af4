// internal/middleware/gate_middleware.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fieldserve-backend/internal/pkg/jwt"
	"fieldserve-backend/internal/pkg/policy"
	"fieldserve-backend/internal/pkg/response"
)

const (
	loginPath        = "/login"
	unauthorizedPath = "/unauthorized"
	apiPrefix        = "/api"
)

// authPages are the public pages of the login flow: reachable without a
// token, and bounced forward when a valid session shows up.
var authPages = []string{"/login", "/verify-otp", "/unauthorized"}

// openPaths bypass the gate entirely. /ws authenticates during the
// upgrade and /logout must stay reachable with any cookie state.
var openPaths = []string{"/health", "/ws", "/logout"}

// RequestGate is the single authentication/authorization gate. It runs
// on every request before any handler: public-path bypass, token
// verification, role resolution and policy decision. Page paths get
// redirects, API paths get JSON statuses, and API paths additionally get
// CORS negotiation.
type RequestGate struct {
	verifier *jwt.Verifier
	origins  map[string]bool
	logger   *zap.Logger
}

func NewRequestGate(verifier *jwt.Verifier, allowedOrigins []string, logger *zap.Logger) *RequestGate {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}
	return &RequestGate{verifier: verifier, origins: origins, logger: logger}
}

func (g *RequestGate) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		isAPI := strings.HasPrefix(path, apiPrefix+"/") || path == apiPrefix

		if isAPI {
			g.applyCORS(c)
			if c.Request.Method == http.MethodOptions {
				// Preflight is terminal: no auth, no handler.
				c.AbortWithStatus(http.StatusNoContent)
				return
			}
		}

		// Policy prefixes describe the app's route space; the /api mirror
		// maps onto it.
		policyPath := path
		if isAPI {
			policyPath = strings.TrimPrefix(path, apiPrefix)
			if policyPath == "" {
				policyPath = "/"
			}
		}

		if matchesAny(policyPath, openPaths) {
			c.Next()
			return
		}

		token := extractToken(c)

		if matchesAny(policyPath, authPages) {
			if token == "" {
				c.Next()
				return
			}
			claims, err := g.verifier.Verify(token)
			if err != nil {
				// Broken cookie on a public page: serve it as anonymous.
				c.Next()
				return
			}
			// Already authenticated; bounce forward off the auth pages.
			c.Redirect(http.StatusFound, policy.DefaultLandingRoute(claims.Role))
			c.Abort()
			return
		}

		if token == "" {
			g.deny(c, isAPI, loginPath, http.StatusUnauthorized, "missing session token")
			return
		}

		claims, err := g.verifier.Verify(token)
		if err != nil {
			g.deny(c, isAPI, loginPath, http.StatusUnauthorized, "invalid or expired session")
			return
		}

		if policy.Decide(claims.Role, policyPath) != policy.Allow {
			g.logger.Warn("access denied",
				zap.Int64("employee_id", claims.EmployeeID),
				zap.String("role", string(claims.Role)),
				zap.String("path", path),
			)
			g.deny(c, isAPI, unauthorizedPath, http.StatusForbidden, "insufficient role")
			return
		}

		c.Set(ctxEmployeeID, claims.EmployeeID)
		c.Set(ctxFullName, claims.FullName)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

func (g *RequestGate) deny(c *gin.Context, isAPI bool, target string, status int, message string) {
	if isAPI {
		response.Error(c, status, message, nil)
		return
	}
	c.Redirect(http.StatusFound, target)
	c.Abort()
}

func (g *RequestGate) applyCORS(c *gin.Context) {
	origin := c.GetHeader("Origin")
	if origin != "" && g.origins[origin] {
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Vary", "Origin")
	}
	c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
}

// extractToken reads the session cookie, falling back to a Bearer header
// for non-browser API clients.
func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie("token"); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}
	return ""
}

func matchesAny(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}
