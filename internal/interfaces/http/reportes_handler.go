package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Contable-api/internal/application/reportes"
)

// ReportesHandler maneja la exportación de documentos (protegido).
type ReportesHandler struct {
	uc *reportes.UseCase
}

// NewReportesHandler construye el handler.
func NewReportesHandler(uc *reportes.UseCase) *ReportesHandler {
	return &ReportesHandler{uc: uc}
}

// KardexPDF godoc
// @Summary      Kardex en PDF
// @Tags         reportes
// @Security     Bearer
// @Produce      application/pdf
// @Param        metodo     path   string  true   "promedio | peps | ueps"
// @Param        instancia  query  string  false  "instancia (default: principal)"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/kardex/{metodo}.pdf [get]
func (h *ReportesHandler) KardexPDF(c *fiber.Ctx) error {
	metodo := c.Params("metodo")
	pdf, err := h.uc.KardexPDF(c.Context(), GetPerfilID(c), metodo, c.Query("instancia"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="kardex-`+metodo+`.pdf"`)
	return c.Send(pdf)
}

// LibroDiarioPDF godoc
// @Summary      Libro diario en PDF
// @Tags         reportes
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/contabilidad/libro-diario.pdf [get]
func (h *ReportesHandler) LibroDiarioPDF(c *fiber.Ctx) error {
	pdf, err := h.uc.LibroDiarioPDF(c.Context(), GetPerfilID(c))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="libro-diario.pdf"`)
	return c.Send(pdf)
}

// LibroDiarioXML godoc
// @Summary      Libro diario en XML
// @Tags         reportes
// @Security     Bearer
// @Produce      application/xml
// @Success      200  {file}  binary
// @Router       /api/contabilidad/libro-diario.xml [get]
func (h *ReportesHandler) LibroDiarioXML(c *fiber.Ctx) error {
	xml, err := h.uc.LibroDiarioXML(c.Context(), GetPerfilID(c))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXML)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="libro-diario.xml"`)
	return c.Send(xml)
}
