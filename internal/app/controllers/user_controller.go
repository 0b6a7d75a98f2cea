package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Robson2726/Facilitta-sub000/internal/app/middleware"
	"github.com/Robson2726/Facilitta-sub000/internal/domain/models"
	"github.com/Robson2726/Facilitta-sub000/internal/domain/services"
	"github.com/Robson2726/Facilitta-sub000/internal/domain/services/container"
	"github.com/Robson2726/Facilitta-sub000/internal/error/code"
	"github.com/Robson2726/Facilitta-sub000/internal/error/response"
)

// InterfaceUserController defines staff account administration
type InterfaceUserController interface {
	GetUsers()
	GetUser()
	CreateUser()
	UpdateUser()
	DeleteUser()
	SearchPorters()
}

// UserController handles staff accounts on the desktop
type UserController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewUserController creates a new user controller
func NewUserController(ctx *gin.Context, container *container.ServiceContainer) *UserController {
	return &UserController{
		Ctx:       ctx,
		Container: container,
	}
}

// UserRequest carries the editable account fields in the wire vocabulary.
// Senha may be empty on update to keep the current password.
type UserRequest struct {
	Login  string `json:"login" binding:"required" example:"joao"`
	Nome   string `json:"nome" binding:"required" example:"João Lima"`
	Email  string `json:"email" binding:"omitempty,email" example:"joao@condominio.com"`
	Nivel  string `json:"nivel" example:"porteiro"`
	Status string `json:"status" example:"ativo"`
	Senha  string `json:"senha" example:"segredo123"`
}

func (r UserRequest) toInput() (services.UserInput, bool) {
	in := services.UserInput{
		Login:    r.Login,
		FullName: r.Nome,
		Email:    r.Email,
		Password: r.Senha,
	}
	if r.Nivel != "" {
		level, ok := models.ParseExternalRole(r.Nivel)
		if !ok {
			return in, false
		}
		in.AccessLevel = level
	}
	if r.Status != "" {
		status, ok := models.ParseExternalUserStatus(r.Status)
		if !ok {
			return in, false
		}
		in.Status = status
	}
	return in, true
}

// HandleUserFunc returns a gin handler for the given user method
func HandleUserFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewUserController(ctx, container)

		switch method {
		case "getUsers":
			controller.GetUsers()
		case "getUser":
			controller.GetUser()
		case "createUser":
			controller.CreateUser()
		case "updateUser":
			controller.UpdateUser()
		case "deleteUser":
			controller.DeleteUser()
		case "searchPorters":
			controller.SearchPorters()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Método inválido", nil)
		}
	}
}

// GetUsers lists staff accounts
// @Summary      List staff accounts
// @Tags         Admin Usuarios
// @Produce      json
// @Security     BearerAuth
// @Param        nivel query string false "admin or porteiro"
// @Param        status query string false "ativo or inativo"
// @Success      200  {object}  response.Response{data=[]UserDTO}
// @Router       /admin/usuarios [get]
func (c *UserController) GetUsers() {
	filter, ok := bindUserFilter(c.Ctx)
	if !ok {
		return
	}

	users, err := c.Container.Users().ListUsers(c.Ctx.Request.Context(), filter)
	if err != nil {
		failWithError(c.Ctx, err, code.ErrUserNotFound, emptyList())
		return
	}
	response.Success(c.Ctx, toUserDTOs(users))
}

// GetUser returns one account
// @Summary      Get a staff account
// @Tags         Admin Usuarios
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "User ID"
// @Success      200  {object}  response.Response{data=UserDTO}
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/usuarios/{id} [get]
func (c *UserController) GetUser() {
	id, ok := parseID(c.Ctx, "id")
	if !ok {
		return
	}

	user, err := c.Container.Users().GetUser(c.Ctx.Request.Context(), id)
	if err != nil {
		failWithError(c.Ctx, err, code.ErrUserNotFound, nil)
		return
	}
	response.Success(c.Ctx, toUserDTO(*user))
}

// CreateUser registers a staff account
// @Summary      Create a staff account
// @Tags         Admin Usuarios
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body UserRequest true "Account"
// @Success      201  {object}  response.Response{data=UserDTO}
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /admin/usuarios [post]
func (c *UserController) CreateUser() {
	in, ok := c.bind()
	if !ok {
		return
	}

	user, err := c.Container.Users().CreateUser(c.Ctx.Request.Context(), in)
	if err != nil {
		failWithError(c.Ctx, err, code.ErrUserNotFound, nil)
		return
	}
	response.SuccessWithMessage(c.Ctx, http.StatusCreated, "Usuário cadastrado com sucesso", toUserDTO(*user))
}

// UpdateUser overwrites a staff account
// @Summary      Update a staff account
// @Tags         Admin Usuarios
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "User ID"
// @Param        request body UserRequest true "Account"
// @Success      200  {object}  response.Response{data=UserDTO}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/usuarios/{id} [put]
func (c *UserController) UpdateUser() {
	id, ok := parseID(c.Ctx, "id")
	if !ok {
		return
	}
	in, ok := c.bind()
	if !ok {
		return
	}

	user, err := c.Container.Users().UpdateUser(c.Ctx.Request.Context(), middleware.CurrentUserID(c.Ctx), id, in)
	if err != nil {
		failWithError(c.Ctx, err, code.ErrUserNotFound, nil)
		return
	}
	response.SuccessWithMessage(c.Ctx, http.StatusOK, "Usuário atualizado com sucesso", toUserDTO(*user))
}

// DeleteUser removes an account, or deactivates it when packages reference it
// @Summary      Delete a staff account
// @Tags         Admin Usuarios
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "User ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/usuarios/{id} [delete]
func (c *UserController) DeleteUser() {
	id, ok := parseID(c.Ctx, "id")
	if !ok {
		return
	}

	disabled, err := c.Container.Users().DeleteUser(c.Ctx.Request.Context(), middleware.CurrentUserID(c.Ctx), id)
	if err != nil {
		failWithError(c.Ctx, err, code.ErrUserNotFound, nil)
		return
	}

	message := "Usuário excluído com sucesso"
	if disabled {
		message = "Usuário possui encomendas registradas e foi desativado"
	}
	response.SuccessWithMessage(c.Ctx, http.StatusOK, message, gin.H{"desativado": disabled})
}

// SearchPorters searches active porters by name or login
// @Summary      Search active porters
// @Tags         Admin Usuarios
// @Produce      json
// @Security     BearerAuth
// @Param        q query string false "Name fragment"
// @Success      200  {object}  response.Response{data=[]UserDTO}
// @Router       /admin/porteiros/busca [get]
func (c *UserController) SearchPorters() {
	users, err := c.Container.Directory().SearchActivePorters(c.Ctx.Request.Context(), c.Ctx.Query("q"))
	if err != nil {
		failWithError(c.Ctx, err, code.ErrUserNotFound, emptyList())
		return
	}
	response.Success(c.Ctx, toUserDTOs(users))
}

func (c *UserController) bind() (services.UserInput, bool) {
	var req UserRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "Login e nome são obrigatórios")
		return services.UserInput{}, false
	}

	in, ok := req.toInput()
	if !ok {
		response.ParamError(c.Ctx, "Nível ou status inválido")
		return services.UserInput{}, false
	}
	return in, true
}
