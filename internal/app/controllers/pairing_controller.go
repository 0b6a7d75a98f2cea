package controllers

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Robson2726/Facilitta-sub000/internal/domain/services/container"
	"github.com/Robson2726/Facilitta-sub000/internal/error/code"
	"github.com/Robson2726/Facilitta-sub000/internal/error/response"
)

// PairingDTO is the descriptor shown on the desktop for the mobile app to scan
type PairingDTO struct {
	IP        string `json:"ip" example:"192.168.0.15"`
	Porta     int    `json:"porta" example:"3000"`
	Conteudo  string `json:"conteudo" example:"192.168.0.15:3000"`
	QRCodePNG string `json:"qrcode_png"`
}

// PairingController serves the pairing descriptor and its QR code
type PairingController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewPairingController creates a new pairing controller
func NewPairingController(ctx *gin.Context, container *container.ServiceContainer) *PairingController {
	return &PairingController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandlePairingFunc returns a gin handler for the given pairing method
func HandlePairingFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewPairingController(ctx, container)

		switch method {
		case "descriptor":
			controller.Descriptor()
		case "qrcode":
			controller.QRCode()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Método inválido", nil)
		}
	}
}

// Descriptor returns the gateway address and a base64 QR PNG
// @Summary      Pairing descriptor
// @Tags         Pareamento
// @Produce      json
// @Success      200  {object}  response.Response{data=PairingDTO}
// @Failure      503  {object}  ErrorResponse
// @Router       /pareamento [get]
func (c *PairingController) Descriptor() {
	pairing := c.Container.Pairing()

	d, err := pairing.Descriptor()
	if err != nil {
		failWithError(c.Ctx, err, code.ErrPairingUnavailable, nil)
		return
	}
	png, err := pairing.QRCode()
	if err != nil {
		failWithError(c.Ctx, err, code.ErrPairingUnavailable, nil)
		return
	}

	response.Success(c.Ctx, PairingDTO{
		IP:        d.Address,
		Porta:     d.Port,
		Conteudo:  d.String(),
		QRCodePNG: base64.StdEncoding.EncodeToString(png),
	})
}

// QRCode returns the pairing QR code as an image
// @Summary      Pairing QR code
// @Tags         Pareamento
// @Produce      png
// @Success      200
// @Failure      503  {object}  ErrorResponse
// @Router       /pareamento/qrcode.png [get]
func (c *PairingController) QRCode() {
	png, err := c.Container.Pairing().QRCode()
	if err != nil {
		failWithError(c.Ctx, err, code.ErrPairingUnavailable, nil)
		return
	}
	c.Ctx.Header("Cache-Control", "no-store")
	c.Ctx.Data(http.StatusOK, "image/png", png)
}
