package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Robson2726/Facilitta-sub000/internal/domain/services"
	"github.com/Robson2726/Facilitta-sub000/internal/domain/services/container"
	"github.com/Robson2726/Facilitta-sub000/internal/error/code"
	"github.com/Robson2726/Facilitta-sub000/internal/error/response"
	"github.com/Robson2726/Facilitta-sub000/pkg/utils"
)

const defaultHistoryLimit = 200

// InterfacePackageController defines package administration
type InterfacePackageController interface {
	GetPending()
	GetPackage()
	CreatePackage()
	UpdatePackage()
	DeliverPackage()
	DeliverBatch()
	GetDelivered()
}

// PackageController handles package administration on the desktop
type PackageController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewPackageController creates a new package controller
func NewPackageController(ctx *gin.Context, container *container.ServiceContainer) *PackageController {
	return &PackageController{
		Ctx:       ctx,
		Container: container,
	}
}

// PackageRequest carries the receivable fields of a package
type PackageRequest struct {
	MoradorID       uint   `json:"morador_id" binding:"required" example:"3"`
	PorteiroID      uint   `json:"porteiro_id" binding:"required" example:"2"`
	Quantidade      int    `json:"quantidade" binding:"required,min=1" example:"1"`
	Observacoes     string `json:"observacoes"`
	DataRecebimento string `json:"data_recebimento" example:"10/05/2024"`
	HoraRecebimento string `json:"hora_recebimento" example:"14:30"`
}

// DeliveryRequest carries the metadata of one delivery
type DeliveryRequest struct {
	PorteiroID  uint   `json:"porteiro_id" binding:"required" example:"2"`
	RetiradoPor string `json:"retirado_por" binding:"required" example:"Ana Souza"`
	Observacoes string `json:"observacoes"`
	DataEntrega string `json:"data_entrega" example:"10/05/2024"`
	HoraEntrega string `json:"hora_entrega" example:"18:05"`
}

// BatchDeliveryRequest delivers several packages with shared metadata
type BatchDeliveryRequest struct {
	IDs []uint `json:"ids" example:"10,11,12"`
	DeliveryRequest
}

// HandlePackageFunc returns a gin handler for the given package method
func HandlePackageFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewPackageController(ctx, container)

		switch method {
		case "getPending":
			controller.GetPending()
		case "getPackage":
			controller.GetPackage()
		case "createPackage":
			controller.CreatePackage()
		case "updatePackage":
			controller.UpdatePackage()
		case "deliverPackage":
			controller.DeliverPackage()
		case "deliverBatch":
			controller.DeliverBatch()
		case "getDelivered":
			controller.GetDelivered()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Método inválido", nil)
		}
	}
}

// GetPending lists packages waiting at the desk
// @Summary      List pending packages
// @Tags         Admin Encomendas
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]PackageDTO}
// @Router       /admin/encomendas [get]
func (c *PackageController) GetPending() {
	views, err := c.Container.Packages().FetchPending(c.Ctx.Request.Context())
	if err != nil {
		failWithError(c.Ctx, err, code.ErrPackageNotFound, emptyList())
		return
	}
	response.Success(c.Ctx, toPackageDTOs(views))
}

// GetPackage returns one package
// @Summary      Get a package
// @Tags         Admin Encomendas
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Package ID"
// @Success      200  {object}  response.Response{data=PackageDTO}
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/encomendas/{id} [get]
func (c *PackageController) GetPackage() {
	id, ok := parseID(c.Ctx, "id")
	if !ok {
		return
	}

	view, err := c.Container.Packages().FetchByID(c.Ctx.Request.Context(), id)
	if err != nil {
		failWithError(c.Ctx, err, code.ErrPackageNotFound, nil)
		return
	}
	response.Success(c.Ctx, toPackageDTO(*view))
}

// CreatePackage registers a package for a known resident
// @Summary      Register a package
// @Tags         Admin Encomendas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body PackageRequest true "Package"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Router       /admin/encomendas [post]
func (c *PackageController) CreatePackage() {
	in, ok := c.bindReceivable()
	if !ok {
		return
	}

	id, err := c.Container.Packages().Create(c.Ctx.Request.Context(), in)
	if err != nil {
		failWithError(c.Ctx, err, code.ErrPackageNotFound, nil)
		return
	}
	response.SuccessWithMessage(c.Ctx, http.StatusCreated, "Encomenda cadastrada com sucesso", gin.H{"id": id})
}

// UpdatePackage overwrites the receivable fields of a package
// @Summary      Update a package
// @Tags         Admin Encomendas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Package ID"
// @Param        request body PackageRequest true "Package"
// @Success      200  {object}  response.Response{data=PackageDTO}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/encomendas/{id} [put]
func (c *PackageController) UpdatePackage() {
	id, ok := parseID(c.Ctx, "id")
	if !ok {
		return
	}
	in, ok := c.bindReceivable()
	if !ok {
		return
	}

	ctx := c.Ctx.Request.Context()
	if err := c.Container.Packages().Update(ctx, id, in); err != nil {
		failWithError(c.Ctx, err, code.ErrPackageNotFound, nil)
		return
	}

	view, err := c.Container.Packages().FetchByID(ctx, id)
	if err != nil {
		failWithError(c.Ctx, err, code.ErrPackageNotFound, nil)
		return
	}
	response.SuccessWithMessage(c.Ctx, http.StatusOK, "Encomenda atualizada com sucesso", toPackageDTO(*view))
}

// DeliverPackage marks one package as delivered
// @Summary      Deliver a package
// @Tags         Admin Encomendas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Package ID"
// @Param        request body DeliveryRequest true "Delivery"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /admin/encomendas/{id}/entregar [put]
func (c *PackageController) DeliverPackage() {
	id, ok := parseID(c.Ctx, "id")
	if !ok {
		return
	}

	var req DeliveryRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "Porteiro e nome de quem retirou são obrigatórios")
		return
	}
	in, ok := c.deliveryInput(req)
	if !ok {
		return
	}

	if err := c.Container.Packages().Deliver(c.Ctx.Request.Context(), id, in); err != nil {
		failWithError(c.Ctx, err, code.ErrPackageNotFound, nil)
		return
	}
	response.SuccessWithMessage(c.Ctx, http.StatusOK, "Encomenda entregue com sucesso", gin.H{"id": id})
}

// DeliverBatch delivers several packages independently and reports each outcome
// @Summary      Deliver packages in batch
// @Tags         Admin Encomendas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body BatchDeliveryRequest true "Batch"
// @Success      200  {object}  response.Response{data=BatchReportDTO}
// @Failure      400  {object}  ErrorResponse
// @Router       /admin/encomendas/entregar-lote [post]
func (c *PackageController) DeliverBatch() {
	var req BatchDeliveryRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "Porteiro e nome de quem retirou são obrigatórios")
		return
	}
	in, ok := c.deliveryInput(req.DeliveryRequest)
	if !ok {
		return
	}

	// one ineligible porter would otherwise fail every item of the batch
	ctx := c.Ctx.Request.Context()
	if _, err := c.Container.Directory().ResolveActivePorter(ctx, in.DeliveredByID, ""); err != nil {
		failPorter(c.Ctx, err)
		return
	}

	report, err := c.Container.Batch().DeliverAll(ctx, services.BatchRequest{
		IDs:           req.IDs,
		DeliveredByID: in.DeliveredByID,
		DeliveredAt:   in.DeliveredAt,
		RetrievedBy:   in.RetrievedBy,
		Notes:         in.Notes,
	})
	if err != nil {
		failWithError(c.Ctx, err, code.ErrPackageNotFound, nil)
		return
	}

	message := fmt.Sprintf("%d encomenda(s) entregue(s), %d falha(s)", report.SucceededCount(), report.FailedCount())
	response.SuccessWithMessage(c.Ctx, http.StatusOK, message, toBatchReportDTO(report))
}

// GetDelivered lists delivered packages within an optional date range
// @Summary      Delivery history
// @Tags         Admin Encomendas
// @Produce      json
// @Security     BearerAuth
// @Param        de query string false "From date (dd/mm/yyyy)"
// @Param        ate query string false "To date (dd/mm/yyyy), inclusive"
// @Param        limite query int false "Maximum rows"
// @Success      200  {object}  response.Response{data=[]PackageDTO}
// @Failure      400  {object}  ErrorResponse
// @Router       /admin/encomendas/entregues [get]
func (c *PackageController) GetDelivered() {
	loc := c.Container.Config().Location()

	var from, to time.Time
	var err error
	if de := c.Ctx.Query("de"); de != "" {
		if from, err = utils.ParseLocalDateTime(de, "00:00:00", loc, time.Now()); err != nil {
			failWithError(c.Ctx, err, code.ErrRecordNotFound, emptyList())
			return
		}
	}
	if ate := c.Ctx.Query("ate"); ate != "" {
		if to, err = utils.ParseLocalDateTime(ate, "23:59:59", loc, time.Now()); err != nil {
			failWithError(c.Ctx, err, code.ErrRecordNotFound, emptyList())
			return
		}
	}

	limit := defaultHistoryLimit
	if l, err := strconv.Atoi(c.Ctx.Query("limite")); err == nil && l > 0 {
		limit = l
	}

	views, err := c.Container.Packages().ListDelivered(c.Ctx.Request.Context(), from, to, limit)
	if err != nil {
		failWithError(c.Ctx, err, code.ErrPackageNotFound, emptyList())
		return
	}
	response.Success(c.Ctx, toPackageDTOs(views))
}

func (c *PackageController) bindReceivable() (services.CreatePackageInput, bool) {
	var req PackageRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "Morador, porteiro e quantidade (mínimo 1) são obrigatórios")
		return services.CreatePackageInput{}, false
	}

	receivedAt, err := parseClientTime(c.Container, req.DataRecebimento, req.HoraRecebimento)
	if err != nil {
		failWithError(c.Ctx, err, code.ErrRecordNotFound, nil)
		return services.CreatePackageInput{}, false
	}

	return services.CreatePackageInput{
		ResidentID:   req.MoradorID,
		ReceivedByID: req.PorteiroID,
		Quantity:     req.Quantidade,
		ReceivedAt:   receivedAt,
		Notes:        req.Observacoes,
	}, true
}

func (c *PackageController) deliveryInput(req DeliveryRequest) (services.DeliveryInput, bool) {
	deliveredAt, err := parseClientTime(c.Container, req.DataEntrega, req.HoraEntrega)
	if err != nil {
		failWithError(c.Ctx, err, code.ErrRecordNotFound, nil)
		return services.DeliveryInput{}, false
	}

	return services.DeliveryInput{
		DeliveredByID: req.PorteiroID,
		DeliveredAt:   deliveredAt,
		RetrievedBy:   req.RetiradoPor,
		Notes:         req.Observacoes,
	}, true
}
