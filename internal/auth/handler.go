package auth

import (
	"encoding/json"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"playdamnit/pkg/models"
)

// usernames: 3-30 chars, letters/digits/underscore/hyphen, checked
// before the request ever reaches the auth service.
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,30}$`)

type Handler struct {
	Service *ServiceClient
	Tokens  TokenService
	Logger  *logrus.Logger
}

func NewHandler(service *ServiceClient, tokens TokenService, logger *logrus.Logger) *Handler {
	return &Handler{Service: service, Tokens: tokens, Logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/sign-in", h.signIn)
	rg.POST("/sign-up", h.signUp)
	rg.POST("/sign-out", h.signOut)
	rg.GET("/session", h.session)

	protected := rg.Group("", Middleware(h.Tokens))
	protected.GET("/passkeys", h.listPasskeys)
	protected.DELETE("/passkeys/:id", h.deletePasskey)
	protected.POST("/passkey/register/:step", h.passkeyStep("register"))

	// passkey sign-in has no session yet
	rg.POST("/passkey/sign-in/:step", h.passkeyStep("sign-in"))
}

type signInReq struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

func (h *Handler) signIn(c *gin.Context) {
	var req signInReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "identifier and password required"})
		return
	}

	session, err := h.Service.SignIn(c.Request.Context(), strings.TrimSpace(req.Identifier), req.Password)
	if err != nil {
		h.Logger.WithError(err).Warn("sign in failed")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	h.establishSession(c, session)
}

type signUpReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Name     string `json:"name"`
	Username string `json:"username" binding:"required"`
}

func (h *Handler) signUp(c *gin.Context) {
	var req signUpReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sign-up payload"})
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if !usernamePattern.MatchString(req.Username) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username must be 3-30 letters, digits, _ or -"})
		return
	}

	session, err := h.Service.SignUp(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)), req.Password, req.Name, req.Username)
	if err != nil {
		h.Logger.WithError(err).Warn("sign up failed")
		c.JSON(http.StatusConflict, gin.H{"error": "could not create account"})
		return
	}

	h.establishSession(c, session)
}

func (h *Handler) signOut(c *gin.Context) {
	if raw := tokenFromRequest(c); raw != "" {
		if claims, err := h.Tokens.Parse(raw); err == nil {
			if err := h.Service.SignOut(c.Request.Context(), claims.SessionToken); err != nil {
				h.Logger.WithError(err).Warn("remote sign out failed")
			}
		}
	}

	h.clearCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}

// session reconfirms the cookie against the auth service so revoked
// sessions die even before the JWT expires.
func (h *Handler) session(c *gin.Context) {
	raw := tokenFromRequest(c)
	if raw == "" {
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}

	claims, err := h.Tokens.Parse(raw)
	if err != nil {
		h.clearCookie(c)
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}

	session, err := h.Service.Session(c.Request.Context(), claims.SessionToken)
	if err != nil {
		h.clearCookie(c)
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": session.User})
}

func (h *Handler) listPasskeys(c *gin.Context) {
	claims := MustGetClaims(c)
	passkeys, err := h.Service.Passkeys(c.Request.Context(), claims.SessionToken)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not list passkeys"})
		return
	}
	c.JSON(http.StatusOK, passkeys)
}

func (h *Handler) deletePasskey(c *gin.Context) {
	claims := MustGetClaims(c)
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "passkey id required"})
		return
	}

	if err := h.Service.DeletePasskey(c.Request.Context(), claims.SessionToken, id); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not delete passkey"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// passkeyStep proxies one WebAuthn ceremony step (begin/finish). The
// finish step of sign-in yields a session, which becomes a cookie like
// any other sign-in.
func (h *Handler) passkeyStep(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		step := strings.TrimSpace(c.Param("step"))
		if step != "begin" && step != "finish" {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown passkey step"})
			return
		}

		body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
			return
		}

		token := ""
		if claims := MustGetClaims(c); claims != nil {
			token = claims.SessionToken
		}

		out, err := h.Service.PasskeyProxy(c.Request.Context(), token, kind+"/"+step, body)
		if err != nil {
			h.Logger.WithError(err).Warn("passkey step failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": "passkey ceremony failed"})
			return
		}

		if kind == "sign-in" && step == "finish" {
			var session models.Session
			if err := json.Unmarshal(out, &session); err == nil && session.Token != "" {
				h.establishSession(c, &session)
				return
			}
		}

		c.Data(http.StatusOK, "application/json", out)
	}
}

func (h *Handler) establishSession(c *gin.Context, session *models.Session) {
	signed, exp, err := h.Tokens.Sign(session)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session failed"})
		return
	}

	maxAge := int(time.Until(exp).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, signed, maxAge, "/", "", false, true)

	// the CLI stores the token and sends it as a bearer header
	c.JSON(http.StatusOK, gin.H{
		"user":       session.User,
		"token":      signed,
		"expires_at": exp.UTC().Format(time.RFC3339),
	})
}

func (h *Handler) clearCookie(c *gin.Context) {
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
}
