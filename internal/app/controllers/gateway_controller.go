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

// InterfaceGatewayController defines the mobile-facing endpoints
type InterfaceGatewayController interface {
	ListPending()
	CreatePackage()
	DeliverPackage()
	ListUsers()
	ListResidents()
	SuggestResidents()
}

// GatewayController serves the mobile app over the LAN
type GatewayController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewGatewayController creates a new gateway controller
func NewGatewayController(ctx *gin.Context, container *container.ServiceContainer) *GatewayController {
	return &GatewayController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreatePackageRequest is a package intake from the mobile app
type CreatePackageRequest struct {
	Morador         string `json:"morador" example:"Ana Souza"`
	MoradorID       uint   `json:"morador_id" example:"0"`
	Rua             string `json:"rua" example:"Rua das Flores"`
	Numero          string `json:"numero" example:"120"`
	Bloco           string `json:"bloco" example:"B"`
	Apartamento     string `json:"apartamento" example:"34"`
	Telefone        string `json:"telefone"`
	Porteiro        string `json:"porteiro" example:"João Lima"`
	PorteiroID      uint   `json:"porteiro_id" example:"2"`
	Quantidade      int    `json:"quantidade" binding:"omitempty,min=1" example:"1"`
	Observacoes     string `json:"observacoes"`
	DataRecebimento string `json:"data_recebimento" example:"10/05/2024"`
	HoraRecebimento string `json:"hora_recebimento" example:"14:30"`
}

// DeliverPackageRequest is a delivery from the mobile app
type DeliverPackageRequest struct {
	DataEntrega string `json:"data_entrega" example:"10/05/2024"`
	HoraEntrega string `json:"hora_entrega" example:"18:05"`
	RetiradoPor string `json:"retirado_por" example:"Ana Souza"`
	Observacoes string `json:"observacoes"`
	PorteiroID  uint   `json:"porteiro_id" example:"2"`
	Porteiro    string `json:"porteiro"`
}

// CreatedPackageDTO reports the id of a new package
type CreatedPackageDTO struct {
	ID            uint `json:"id"`
	MoradorID     uint `json:"morador_id"`
	MoradorCriado bool `json:"morador_criado"`
}

// HandleGatewayFunc returns a gin handler for the given gateway method
func HandleGatewayFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewGatewayController(ctx, container)

		switch method {
		case "listPending":
			controller.ListPending()
		case "createPackage":
			controller.CreatePackage()
		case "deliverPackage":
			controller.DeliverPackage()
		case "listUsers":
			controller.ListUsers()
		case "listResidents":
			controller.ListResidents()
		case "suggestResidents":
			controller.SuggestResidents()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Método inválido", nil)
		}
	}
}

// ListPending lists packages waiting at the desk
// @Summary      List pending packages
// @Tags         Encomendas
// @Produce      json
// @Success      200  {object}  response.Response{data=[]PackageDTO}
// @Failure      503  {object}  ErrorResponse
// @Router       /encomendas [get]
func (c *GatewayController) ListPending() {
	views, err := c.Container.Packages().FetchPending(c.Ctx.Request.Context())
	if err != nil {
		failWithError(c.Ctx, err, code.ErrPackageNotFound, emptyList())
		return
	}
	response.Success(c.Ctx, toPackageDTOs(views))
}

// CreatePackage registers a package, creating the resident when the name is unknown
// @Summary      Register a package
// @Tags         Encomendas
// @Accept       json
// @Produce      json
// @Param        request body CreatePackageRequest true "Package intake"
// @Success      201  {object}  response.Response{data=CreatedPackageDTO}
// @Failure      400  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /encomendas [post]
func (c *GatewayController) CreatePackage() {
	var req CreatePackageRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Corpo da requisição inválido", nil)
		return
	}
	if req.MoradorID == 0 && req.Morador == "" {
		response.ParamError(c.Ctx, "Informe o morador")
		return
	}
	if req.Quantidade == 0 {
		req.Quantidade = 1
	}

	ctx := c.Ctx.Request.Context()
	receivedAt, err := parseClientTime(c.Container, req.DataRecebimento, req.HoraRecebimento)
	if err != nil {
		failWithError(c.Ctx, err, code.ErrRecordNotFound, nil)
		return
	}

	porter, err := c.Container.Directory().ResolveActivePorter(ctx, req.PorteiroID, req.Porteiro)
	if err != nil {
		failPorter(c.Ctx, err)
		return
	}

	residentID, created := req.MoradorID, false
	if residentID == 0 {
		residentID, created, err = c.Container.Directory().ResolveOrCreateResident(ctx, req.Morador, services.AddressHints{
			Street: req.Rua,
			Number: req.Numero,
			Block:  req.Bloco,
			Unit:   req.Apartamento,
			Phone:  req.Telefone,
		})
		if err != nil {
			failWithError(c.Ctx, err, code.ErrResidentNotFound, nil)
			return
		}
	}

	id, err := c.Container.Packages().Create(ctx, services.CreatePackageInput{
		ResidentID:   residentID,
		ReceivedByID: porter.ID,
		Quantity:     req.Quantidade,
		ReceivedAt:   receivedAt,
		Notes:        req.Observacoes,
	})
	if err != nil {
		failWithError(c.Ctx, err, code.ErrPackageNotFound, nil)
		return
	}

	response.SuccessWithMessage(c.Ctx, http.StatusCreated, "Encomenda cadastrada com sucesso", CreatedPackageDTO{
		ID:            id,
		MoradorID:     residentID,
		MoradorCriado: created,
	})
}

// DeliverPackage marks a pending package as delivered
// @Summary      Deliver a package
// @Tags         Encomendas
// @Accept       json
// @Produce      json
// @Param        id path int true "Package ID"
// @Param        request body DeliverPackageRequest true "Delivery"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /encomendas/{id}/entregar [put]
func (c *GatewayController) DeliverPackage() {
	id, ok := parseID(c.Ctx, "id")
	if !ok {
		return
	}

	var req DeliverPackageRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Corpo da requisição inválido", nil)
		return
	}
	if req.RetiradoPor == "" {
		response.ParamError(c.Ctx, "Informe quem retirou a encomenda")
		return
	}

	ctx := c.Ctx.Request.Context()
	deliveredAt, err := parseClientTime(c.Container, req.DataEntrega, req.HoraEntrega)
	if err != nil {
		failWithError(c.Ctx, err, code.ErrRecordNotFound, nil)
		return
	}

	porter, err := c.Container.Directory().ResolveActivePorter(ctx, req.PorteiroID, req.Porteiro)
	if err != nil {
		failPorter(c.Ctx, err)
		return
	}

	err = c.Container.Packages().Deliver(ctx, id, services.DeliveryInput{
		DeliveredByID: porter.ID,
		DeliveredAt:   deliveredAt,
		RetrievedBy:   req.RetiradoPor,
		Notes:         req.Observacoes,
	})
	if err != nil {
		failWithError(c.Ctx, err, code.ErrPackageNotFound, nil)
		return
	}

	response.SuccessWithMessage(c.Ctx, http.StatusOK, "Encomenda entregue com sucesso", gin.H{"id": id})
}

// ListUsers lists staff accounts filtered by wire role and status
// @Summary      List staff accounts
// @Tags         Usuarios
// @Produce      json
// @Param        nivel query string false "admin or porteiro"
// @Param        status query string false "ativo or inativo"
// @Success      200  {object}  response.Response{data=[]UserDTO}
// @Failure      400  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /usuarios [get]
func (c *GatewayController) ListUsers() {
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

// ListResidents lists residents, or searches them when q is given
// @Summary      List residents
// @Tags         Moradores
// @Produce      json
// @Param        q query string false "Name fragment"
// @Success      200  {object}  response.Response{data=[]ResidentDTO}
// @Failure      503  {object}  ErrorResponse
// @Router       /moradores [get]
func (c *GatewayController) ListResidents() {
	ctx := c.Ctx.Request.Context()

	var (
		residents []models.Resident
		err       error
	)
	if q := c.Ctx.Query("q"); q != "" {
		residents, err = c.Container.Directory().SearchResidents(ctx, q)
	} else {
		residents, err = c.Container.Directory().ListResidents(ctx)
	}
	if err != nil {
		failWithError(c.Ctx, err, code.ErrResidentNotFound, emptyList())
		return
	}
	response.Success(c.Ctx, toResidentDTOs(residents))
}

// SuggestResidents ranks resident names by package history
// @Summary      Suggest resident names
// @Tags         Moradores
// @Produce      json
// @Param        q query string false "Name fragment"
// @Success      200  {object}  response.Response{data=[]SuggestionDTO}
// @Failure      503  {object}  ErrorResponse
// @Router       /moradores/sugestoes [get]
func (c *GatewayController) SuggestResidents() {
	suggestions, err := c.Container.Directory().SuggestResidents(c.Ctx.Request.Context(), c.Ctx.Query("q"))
	if err != nil {
		failWithError(c.Ctx, err, code.ErrResidentNotFound, emptyList())
		return
	}
	response.Success(c.Ctx, toSuggestionDTOs(suggestions))
}

// bindUserFilter reads nivel and status in the wire vocabulary
func bindUserFilter(c *gin.Context) (services.UserFilter, bool) {
	var filter services.UserFilter
	if nivel := c.Query("nivel"); nivel != "" {
		level, ok := models.ParseExternalRole(nivel)
		if !ok {
			response.ParamError(c, "Nível inválido, use admin ou porteiro")
			return filter, false
		}
		filter.AccessLevel = level
	}
	if status := c.Query("status"); status != "" {
		st, ok := models.ParseExternalUserStatus(status)
		if !ok {
			response.ParamError(c, "Status inválido, use ativo ou inativo")
			return filter, false
		}
		filter.Status = st
	}
	return filter, true
}
