package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/platemate/auth-gateway/internal/adapters/transport/http/dto"
	"github.com/platemate/auth-gateway/internal/app/auth/service"
	authErrors "github.com/platemate/auth-gateway/internal/domain/account/errors"
	"github.com/platemate/auth-gateway/internal/infra/metrics"
)

const (
	greeting         = "Hello Universe, Annie are you Okay?!"
	resetSentMessage = "If the email exists, reset instructions have been sent."
)

// opMessages fixes the user-visible strings per operation. Responses must
// stay byte-identical across causes the caller is not allowed to
// distinguish, so everything is a constant here.
type opMessages struct {
	name         string
	badRequest   string
	conflict     string
	unauthorized string
	internal     string
}

var (
	registerMsgs = opMessages{
		name:       "register",
		badRequest: "All fields are required.",
		conflict:   "User with this email or mobile already exists.",
		internal:   "Registration failed.",
	}
	loginMsgs = opMessages{
		name:         "login",
		badRequest:   "Email and password are required.",
		unauthorized: "Invalid credentials.",
		internal:     "Login failed.",
	}
	forgotMsgs = opMessages{
		name:       "forgot-password",
		badRequest: "Email is required.",
		internal:   "Password reset failed.",
	}
	verifyMsgs = opMessages{
		name:         "verify-token",
		badRequest:   "Token is required.",
		unauthorized: "Invalid or expired token.",
		internal:     "Token verification failed.",
	}
)

type Handler struct {
	svc service.Service
	log *zap.Logger
	m   *metrics.Metrics
}

func NewHandler(svc service.Service, log *zap.Logger, m *metrics.Metrics) *Handler {
	return &Handler{svc: svc, log: log, m: m}
}

// Mount attaches the gateway routes to the router. The rate limiter, when
// given, guards every auth route but not the health check; the perimeter
// gate is expected to be installed router-wide by the caller.
func (h *Handler) Mount(r *gin.Engine, limiter gin.HandlerFunc) {
	r.GET("/", h.health)

	auth := r.Group("")
	if limiter != nil {
		auth.Use(limiter)
	}
	auth.POST("/register", h.register)
	auth.POST("/login", h.login)
	auth.POST("/forgot-password", h.forgotPassword)
	auth.POST("/verify-token", h.verifyToken)
}

func (h *Handler) health(c *gin.Context) {
	c.String(http.StatusOK, greeting)
}

func (h *Handler) register(c *gin.Context) {
	var body dto.RegisterDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		h.fail(c, authErrors.NewInvalidArgument(err.Error()), registerMsgs)
		return
	}

	token, err := h.svc.Register(c.Request.Context(), body)
	if err != nil {
		h.fail(c, err, registerMsgs)
		return
	}

	h.m.AuthOperations.WithLabelValues(registerMsgs.name, "success").Inc()
	c.JSON(http.StatusCreated, dto.TokenResponse{Token: token})
}

func (h *Handler) login(c *gin.Context) {
	var body dto.LoginDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		h.fail(c, authErrors.NewInvalidArgument(err.Error()), loginMsgs)
		return
	}

	token, err := h.svc.Login(c.Request.Context(), body)
	if err != nil {
		h.fail(c, err, loginMsgs)
		return
	}

	h.m.AuthOperations.WithLabelValues(loginMsgs.name, "success").Inc()
	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}

func (h *Handler) forgotPassword(c *gin.Context) {
	var body dto.ForgotPasswordDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		h.fail(c, authErrors.NewInvalidArgument(err.Error()), forgotMsgs)
		return
	}

	if err := h.svc.RequestPasswordReset(c.Request.Context(), body); err != nil {
		h.fail(c, err, forgotMsgs)
		return
	}

	h.m.AuthOperations.WithLabelValues(forgotMsgs.name, "success").Inc()
	c.JSON(http.StatusOK, gin.H{"message": resetSentMessage})
}

func (h *Handler) verifyToken(c *gin.Context) {
	var body dto.VerifyTokenDTO
	// token may arrive in the header instead, so a bad body is not fatal
	_ = c.ShouldBindJSON(&body)

	token := body.Token
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		token = strings.TrimPrefix(auth, "Bearer ")
	}

	if err := h.svc.VerifyToken(c.Request.Context(), token); err != nil {
		h.fail(c, err, verifyMsgs)
		return
	}

	h.m.AuthOperations.WithLabelValues(verifyMsgs.name, "success").Inc()
	c.JSON(http.StatusOK, gin.H{"valid": true})
}

// fail is the single error-normalization boundary: internal causes are
// logged for operators and never echoed to the caller.
func (h *Handler) fail(c *gin.Context, err error, msgs opMessages) {
	switch {
	case authErrors.IsInvalidArgument(err):
		h.m.AuthOperations.WithLabelValues(msgs.name, "bad_request").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": msgs.badRequest})
	case authErrors.IsAlreadyExists(err):
		h.m.AuthOperations.WithLabelValues(msgs.name, "conflict").Inc()
		c.JSON(http.StatusConflict, gin.H{"error": msgs.conflict})
	case authErrors.IsInvalidCredentials(err), authErrors.IsInvalidToken(err):
		h.m.AuthOperations.WithLabelValues(msgs.name, "unauthorized").Inc()
		c.JSON(http.StatusUnauthorized, gin.H{"error": msgs.unauthorized})
	default:
		h.log.Error("operation failed",
			zap.String("operation", msgs.name),
			zap.Error(err),
		)
		h.m.AuthOperations.WithLabelValues(msgs.name, "internal").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgs.internal})
	}
}
