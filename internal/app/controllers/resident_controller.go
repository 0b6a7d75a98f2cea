package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Robson2726/Facilitta-sub000/internal/domain/services"
	"github.com/Robson2726/Facilitta-sub000/internal/domain/services/container"
	"github.com/Robson2726/Facilitta-sub000/internal/error/code"
	"github.com/Robson2726/Facilitta-sub000/internal/error/response"
)

// InterfaceResidentController defines resident administration
type InterfaceResidentController interface {
	GetResidents()
	GetResident()
	SearchResidents()
	CreateResident()
	UpdateResident()
	DeleteResident()
}

// ResidentController handles resident administration on the desktop
type ResidentController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewResidentController creates a new resident controller
func NewResidentController(ctx *gin.Context, container *container.ServiceContainer) *ResidentController {
	return &ResidentController{
		Ctx:       ctx,
		Container: container,
	}
}

// ResidentRequest carries the editable resident fields
type ResidentRequest struct {
	Nome        string `json:"nome" binding:"required" example:"Ana Souza"`
	Rua         string `json:"rua" binding:"required" example:"Rua das Flores"`
	Numero      string `json:"numero" binding:"required" example:"120"`
	Bloco       string `json:"bloco" example:"B"`
	Apartamento string `json:"apartamento" example:"34"`
	Telefone    string `json:"telefone" example:"(11) 98888-7777"`
	Observacoes string `json:"observacoes"`
}

func (r ResidentRequest) toInput() services.ResidentInput {
	return services.ResidentInput{
		Name:   r.Nome,
		Street: r.Rua,
		Number: r.Numero,
		Block:  r.Bloco,
		Unit:   r.Apartamento,
		Phone:  r.Telefone,
		Notes:  r.Observacoes,
	}
}

// HandleResidentFunc returns a gin handler for the given resident method
func HandleResidentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewResidentController(ctx, container)

		switch method {
		case "getResidents":
			controller.GetResidents()
		case "getResident":
			controller.GetResident()
		case "searchResidents":
			controller.SearchResidents()
		case "createResident":
			controller.CreateResident()
		case "updateResident":
			controller.UpdateResident()
		case "deleteResident":
			controller.DeleteResident()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Método inválido", nil)
		}
	}
}

// GetResidents lists every resident
// @Summary      List residents
// @Tags         Admin Moradores
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]ResidentDTO}
// @Failure      401  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /admin/moradores [get]
func (c *ResidentController) GetResidents() {
	residents, err := c.Container.Directory().ListResidents(c.Ctx.Request.Context())
	if err != nil {
		failWithError(c.Ctx, err, code.ErrResidentNotFound, emptyList())
		return
	}
	response.Success(c.Ctx, toResidentDTOs(residents))
}

// GetResident returns one resident
// @Summary      Get a resident
// @Tags         Admin Moradores
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Resident ID"
// @Success      200  {object}  response.Response{data=ResidentDTO}
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/moradores/{id} [get]
func (c *ResidentController) GetResident() {
	id, ok := parseID(c.Ctx, "id")
	if !ok {
		return
	}

	resident, err := c.Container.Directory().GetResident(c.Ctx.Request.Context(), id)
	if err != nil {
		failWithError(c.Ctx, err, code.ErrResidentNotFound, nil)
		return
	}
	response.Success(c.Ctx, toResidentDTO(*resident))
}

// SearchResidents searches residents by name fragment
// @Summary      Search residents
// @Tags         Admin Moradores
// @Produce      json
// @Security     BearerAuth
// @Param        q query string true "Name fragment"
// @Success      200  {object}  response.Response{data=[]ResidentDTO}
// @Router       /admin/moradores/busca [get]
func (c *ResidentController) SearchResidents() {
	residents, err := c.Container.Directory().SearchResidents(c.Ctx.Request.Context(), c.Ctx.Query("q"))
	if err != nil {
		failWithError(c.Ctx, err, code.ErrResidentNotFound, emptyList())
		return
	}
	response.Success(c.Ctx, toResidentDTOs(residents))
}

// CreateResident registers a resident
// @Summary      Create a resident
// @Tags         Admin Moradores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ResidentRequest true "Resident"
// @Success      201  {object}  response.Response{data=ResidentDTO}
// @Failure      400  {object}  ErrorResponse
// @Router       /admin/moradores [post]
func (c *ResidentController) CreateResident() {
	var req ResidentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "Nome, rua e número são obrigatórios")
		return
	}

	resident, err := c.Container.Directory().CreateResident(c.Ctx.Request.Context(), req.toInput())
	if err != nil {
		failWithError(c.Ctx, err, code.ErrResidentNotFound, nil)
		return
	}
	response.SuccessWithMessage(c.Ctx, http.StatusCreated, "Morador cadastrado com sucesso", toResidentDTO(*resident))
}

// UpdateResident overwrites a resident
// @Summary      Update a resident
// @Tags         Admin Moradores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Resident ID"
// @Param        request body ResidentRequest true "Resident"
// @Success      200  {object}  response.Response{data=ResidentDTO}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/moradores/{id} [put]
func (c *ResidentController) UpdateResident() {
	id, ok := parseID(c.Ctx, "id")
	if !ok {
		return
	}

	var req ResidentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "Nome, rua e número são obrigatórios")
		return
	}

	resident, err := c.Container.Directory().UpdateResident(c.Ctx.Request.Context(), id, req.toInput())
	if err != nil {
		failWithError(c.Ctx, err, code.ErrResidentNotFound, nil)
		return
	}
	response.SuccessWithMessage(c.Ctx, http.StatusOK, "Morador atualizado com sucesso", toResidentDTO(*resident))
}

// DeleteResident removes a resident without packages
// @Summary      Delete a resident
// @Tags         Admin Moradores
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Resident ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /admin/moradores/{id} [delete]
func (c *ResidentController) DeleteResident() {
	id, ok := parseID(c.Ctx, "id")
	if !ok {
		return
	}

	if err := c.Container.Directory().DeleteResident(c.Ctx.Request.Context(), id); err != nil {
		failWithError(c.Ctx, err, code.ErrResidentNotFound, nil)
		return
	}
	response.SuccessWithMessage(c.Ctx, http.StatusOK, "Morador excluído com sucesso", nil)
}
