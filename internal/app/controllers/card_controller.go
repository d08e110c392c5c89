package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/quicktech/studentportal/internal/app/models/dto"
	"github.com/quicktech/studentportal/internal/app/services"
	"github.com/quicktech/studentportal/internal/middleware"
)

// CardController serves the two-sided student identity card
type CardController struct {
	cardService *services.CardService
	logger      zerolog.Logger
}

// NewCardController creates a new CardController
func NewCardController(cardService *services.CardService, logger zerolog.Logger) *CardController {
	return &CardController{
		cardService: cardService,
		logger:      logger,
	}
}

// ExportPDF downloads the card as a PDF
// @Summary Export my ID card as PDF
// @Description Renders both card faces and returns a two-page landscape letter PDF, front on page one and back on page two. A failed render returns an error, never a partial document.
// @Tags idcard
// @Produce application/pdf
// @Security BearerAuth
// @Success 200 {file} file "PDF document"
// @Failure 400 {object} dto.ErrorResponse "Profile incomplete"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "No profile saved yet"
// @Failure 500 {object} dto.ErrorResponse "Export failed"
// @Router /idcard/pdf [get]
func (c *CardController) ExportPDF(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	pdfBytes, err := c.cardService.ExportPDF(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="student-id-card.pdf"`)
	ctx.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// PrintHTML serves the printable card surface
// @Summary Print my ID card
// @Description Returns an HTML page showing both card faces. The page triggers the browser print dialog once every image has finished loading.
// @Tags idcard
// @Produce html
// @Security BearerAuth
// @Success 200 {string} string "Printable HTML page"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "No profile saved yet"
// @Failure 500 {object} dto.ErrorResponse "Render failed"
// @Router /idcard/print [get]
func (c *CardController) PrintHTML(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	html, err := c.cardService.PrintHTML(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
