package controllers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Robson2726/Facilitta-sub000/internal/domain/services/container"
	"github.com/Robson2726/Facilitta-sub000/internal/error/code"
	"github.com/Robson2726/Facilitta-sub000/internal/error/response"
	"github.com/Robson2726/Facilitta-sub000/internal/infrastructure/database"
)

// StatusDTO reports gateway health
type StatusDTO struct {
	Servidor string `json:"servidor" example:"online"`
	Database bool   `json:"database" example:"true"`
	Horario  string `json:"horario"`
}

// HealthController serves the status endpoint
type HealthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewHealthController creates a new health controller
func NewHealthController(ctx *gin.Context, container *container.ServiceContainer) *HealthController {
	return &HealthController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleHealthFunc returns a gin handler for the given health method
func HandleHealthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewHealthController(ctx, container)

		switch method {
		case "status":
			controller.Status()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Método inválido", nil)
		}
	}
}

// Status reports that the gateway is up and whether the database answers
// @Summary      Gateway status
// @Tags         Status
// @Produce      json
// @Success      200  {object}  response.Response{data=StatusDTO}
// @Router       /status [get]
func (c *HealthController) Status() {
	err := database.Ping(c.Ctx.Request.Context(), c.Container.GetDB())
	if err != nil {
		_ = c.Ctx.Error(err)
	}

	response.Success(c.Ctx, StatusDTO{
		Servidor: "online",
		Database: err == nil,
		Horario:  formatTime(time.Now().In(c.Container.Config().Location())),
	})
}
