package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sahiljoster32/stock-monitor-backend/internal/domain/dto"
	"github.com/sahiljoster32/stock-monitor-backend/internal/middleware"
	"github.com/sahiljoster32/stock-monitor-backend/internal/service"
)

const msgAccessDenied = "Access denied: wrong username or password."

// UsersHandler serves account registration and login.
type UsersHandler struct {
	svc service.AuthService
}

// NewUsersHandler constructs a UsersHandler.
func NewUsersHandler(svc service.AuthService) *UsersHandler {
	return &UsersHandler{svc: svc}
}

// Register handles POST /api/v1/users/register.
//
// Register godoc
// @Summary      Register a user
// @Description  Creates an account and its empty watch list. The password is never echoed back.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterRequest   true  "Account details"
// @Success      201   {object}  dto.RegisterResponse  "Created"
// @Failure      400   {object}  dto.ErrorResponse     "Validation failed"
// @Failure      500   {object}  dto.ErrorResponse     "Internal Error"
// @Router       /api/v1/users/register [post]
func (h *UsersHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(bindingErrors(err)))
		return
	}

	user, err := h.svc.Register(c.Request.Context(), service.Registration{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Password2: req.Password2,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	var fe service.FieldErrors
	if errors.As(err, &fe) {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(fe))
		return
	}
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to register user", err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewRegisterResponse(user))
}

// Login handles POST /api/v1/users/login.
//
// Login godoc
// @Summary      Log in
// @Description  Returns the user's auth token (created on first login) and the last saved watch list.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginRequest   true  "Credentials"
// @Success      200   {object}  dto.LoginResponse  "Success"
// @Failure      400   {object}  dto.ErrorResponse  "Missing or wrong credentials"
// @Failure      500   {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/users/login [post]
func (h *UsersHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(bindingErrors(err)))
		return
	}

	session, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(map[string][]string{
			nonFieldErrors: {msgAccessDenied},
		}))
		return
	}
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to log in", err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:            session.Token,
		UserName:         session.User.Username,
		UserEmail:        session.User.Email,
		FirstName:        session.User.FirstName,
		LastName:         session.User.LastName,
		WatchListSymbols: session.WatchListSymbols,
	})
}
