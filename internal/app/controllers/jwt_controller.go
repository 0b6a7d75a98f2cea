package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Robson2726/Facilitta-sub000/internal/domain/models"
	"github.com/Robson2726/Facilitta-sub000/internal/domain/services"
	"github.com/Robson2726/Facilitta-sub000/internal/domain/services/container"
	"github.com/Robson2726/Facilitta-sub000/internal/error/code"
	"github.com/Robson2726/Facilitta-sub000/internal/error/response"
)

// InterfaceJWTController defines the authentication endpoints
type InterfaceJWTController interface {
	Login()
	SetupStatus()
	SetupAdmin()
}

// JWTController handles login and first-run setup
type JWTController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewJWTController creates a new authentication controller
func NewJWTController(ctx *gin.Context, container *container.ServiceContainer) *JWTController {
	return &JWTController{
		Ctx:       ctx,
		Container: container,
	}
}

// LoginRequest is a login attempt
type LoginRequest struct {
	Login string `json:"login" binding:"required" example:"admin"`
	Senha string `json:"senha" binding:"required" example:"segredo123"`
}

// SetupAdminRequest creates the first admin account
type SetupAdminRequest struct {
	Login string `json:"login" binding:"required" example:"admin"`
	Nome  string `json:"nome" binding:"required" example:"Administrador"`
	Email string `json:"email" binding:"omitempty,email"`
	Senha string `json:"senha" binding:"required,min=6" example:"segredo123"`
}

// HandleJWTFunc returns a gin handler for the given authentication method
func HandleJWTFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewJWTController(ctx, container)

		switch method {
		case "login":
			controller.Login()
		case "setupStatus":
			controller.SetupStatus()
		case "setupAdmin":
			controller.SetupAdmin()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Método inválido", nil)
		}
	}
}

// Login authenticates a staff account and returns a JWT
// @Summary      Login
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200  {object}  response.Response{data=services.LoginResult}
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/login [post]
func (c *JWTController) Login() {
	var req LoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "Informe login e senha")
		return
	}

	result, err := services.Login(c.Ctx.Request.Context(), c.Container.Users(), c.Container.JWT(), req.Login, req.Senha)
	if err != nil {
		failWithError(c.Ctx, err, code.ErrUserNotFound, nil)
		return
	}
	response.Success(c.Ctx, result)
}

// SetupStatus reports whether first-run setup is still pending
// @Summary      First-run setup status
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      503  {object}  ErrorResponse
// @Router       /setup/status [get]
func (c *JWTController) SetupStatus() {
	count, err := c.Container.Users().Count(c.Ctx.Request.Context())
	if err != nil {
		failWithError(c.Ctx, err, code.ErrUserNotFound, nil)
		return
	}
	response.Success(c.Ctx, gin.H{"configuracao_pendente": count == 0})
}

// SetupAdmin creates the first admin account while no account exists
// @Summary      Create the first admin
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body SetupAdminRequest true "Admin account"
// @Success      201  {object}  response.Response{data=UserDTO}
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /setup/admin [post]
func (c *JWTController) SetupAdmin() {
	var req SetupAdminRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "Informe login, nome e senha com no mínimo 6 caracteres")
		return
	}

	user, err := c.Container.Users().Bootstrap(c.Ctx.Request.Context(), services.UserInput{
		Login:       req.Login,
		FullName:    req.Nome,
		Email:       req.Email,
		AccessLevel: models.AccessLevelAdmin,
		Status:      models.UserStatusActive,
		Password:    req.Senha,
	})
	if err != nil {
		failWithError(c.Ctx, err, code.ErrUserNotFound, nil)
		return
	}
	response.SuccessWithMessage(c.Ctx, http.StatusCreated, "Administrador criado com sucesso", toUserDTO(*user))
}
