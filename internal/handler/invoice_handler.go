package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"faktura/internal/calc"
	"faktura/internal/invoice"
	"faktura/internal/logger"
	"faktura/internal/pdf"
	"faktura/internal/words"
	"faktura/pkg/models"
)

// TotalsRequest is the body of POST /totals.
type TotalsRequest struct {
	Items []models.LineItem `json:"items" binding:"required"`
}

// DeriveRequest is the body of POST /items/derive.
type DeriveRequest struct {
	Item   models.LineItem `json:"item"`
	Edited string          `json:"edited" binding:"required"`
}

// NumberInputRequest is the body of POST /number-input.
type NumberInputRequest struct {
	Raw string `json:"raw"`
}

// NumberInputResponse carries the sanitized text and, when it parses, its value.
type NumberInputResponse struct {
	Value  string           `json:"value"`
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

// WordsResponse is returned by GET /words.
type WordsResponse struct {
	Amount string `json:"amount"`
	Words  string `json:"words"`
}

// InvoiceHandler handles HTTP requests for invoice calculations
type InvoiceHandler struct {
	service  *invoice.Service
	renderer *pdf.Renderer
	log      zerolog.Logger
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(service *invoice.Service, renderer *pdf.Renderer) *InvoiceHandler {
	return &InvoiceHandler{
		service:  service,
		renderer: renderer,
		log:      logger.WithComponent("handler"),
	}
}

// RegisterRoutes registers the handler's routes with the given router group
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/totals", h.Totals)
	rg.GET("/words", h.Words)
	rg.POST("/items/derive", h.DeriveItem)
	rg.POST("/number-input", h.NumberInput)
	rg.POST("/invoices/summary", h.Summary)
	rg.POST("/invoices/pdf", h.PDF)
}

// Totals computes the invoice totals of a list of line items.
func (h *InvoiceHandler) Totals(c *gin.Context) {
	var req TotalsRequest
	if err := bindJSON(c, &req); err != nil {
		respondBadRequest(c, ErrInvalidInput, newErrorDetail("body", err.Error()))
		return
	}
	respondOK(c, calc.ComputeTotals(req.Items))
}

// Words spells the amount query parameter in Polish. The amount is echoed as
// parsed; grosze are rounded only in the spelling.
func (h *InvoiceHandler) Words(c *gin.Context) {
	amount, err := calc.ParseAmount(c.Query("amount"))
	if err != nil {
		respondBadRequest(c, ErrInvalidAmount, newErrorDetail("amount", err.Error()))
		return
	}
	if err := words.Validate(amount); err != nil {
		respondBadRequest(c, ErrInvalidAmount, newErrorDetail("amount", err.Error()))
		return
	}
	respondOK(c, WordsResponse{
		Amount: amount.String(),
		Words:  words.AmountToWords(amount),
	})
}

// DeriveItem recomputes the dependent price of a line item after an edit.
func (h *InvoiceHandler) DeriveItem(c *gin.Context) {
	var req DeriveRequest
	if err := bindJSON(c, &req); err != nil {
		respondBadRequest(c, ErrInvalidInput, newErrorDetail("body", err.Error()))
		return
	}

	field, err := invoice.ParseField(req.Edited)
	if err != nil {
		respondBadRequest(c, ErrInvalidInput, newErrorDetail("edited", err.Error()))
		return
	}

	item, err := h.service.DeriveItem(req.Item, field)
	if err != nil {
		respondUnprocessableEntity(c, ErrCannotDerive, newErrorDetail("vatRate", err.Error()))
		return
	}
	respondOK(c, item)
}

// NumberInput sanitizes the raw text of a numeric form field.
func (h *InvoiceHandler) NumberInput(c *gin.Context) {
	var req NumberInputRequest
	if err := bindJSON(c, &req); err != nil {
		respondBadRequest(c, ErrInvalidInput, newErrorDetail("body", err.Error()))
		return
	}

	resp := NumberInputResponse{Value: calc.FormatNumberInput(req.Raw)}
	if amount, err := calc.ParseAmount(resp.Value); err == nil {
		resp.Amount = &amount
	}
	respondOK(c, resp)
}

// Summary validates an invoice and returns its totals and amount in words.
func (h *InvoiceHandler) Summary(c *gin.Context) {
	inv, ok := h.loadValidInvoice(c)
	if !ok {
		return
	}
	respondOK(c, h.service.Summarize(inv))
}

// PDF validates an invoice and returns it rendered as a PDF attachment.
func (h *InvoiceHandler) PDF(c *gin.Context) {
	inv, ok := h.loadValidInvoice(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, inv, h.service.Summarize(inv)); err != nil {
		h.log.Error().
			Err(err).
			Str("invoice_number", inv.InvoiceNumber).
			Msg("Failed to render invoice PDF")
		respondInternalServerError(c, ErrRenderingFailure)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", pdf.FileName(inv)))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// loadValidInvoice decodes and validates the request body, writing the error
// response itself when it returns false.
func (h *InvoiceHandler) loadValidInvoice(c *gin.Context) (*models.Invoice, bool) {
	inv, err := invoice.LoadInvoice(c.Request.Body)
	if err != nil {
		respondBadRequest(c, ErrInvalidInput, newErrorDetail("body", err.Error()))
		return nil, false
	}

	if err := invoice.Validate(inv); err != nil {
		var verrs invoice.ValidationErrors
		if !errors.As(err, &verrs) {
			respondBadRequest(c, ErrInvalidInput, newErrorDetail("body", err.Error()))
			return nil, false
		}
		details := make([]ErrorDetail, 0, len(verrs))
		for _, v := range verrs {
			details = append(details, newErrorDetail(v.Field, v.Message))
		}
		h.log.Debug().
			Str("invoice_number", inv.InvoiceNumber).
			Int("problems", len(details)).
			Msg("Rejected invalid invoice")
		respondUnprocessableEntity(c, ErrInvalidInvoice, details...)
		return nil, false
	}

	return inv, true
}

// bindJSON binds JSON request body to a struct
func bindJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return fmt.Errorf("invalid JSON format: %v", err)
	}
	return nil
}
