package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ricci/insurance-api/internal/dto"
	"github.com/ricci/insurance-api/internal/http/middleware"
	"github.com/ricci/insurance-api/internal/service"
)

type ClientHandler struct {
	clients  *service.ClientService
	exports  *service.ExportService
	pageSize int
	log      zerolog.Logger
}

func NewClientHandler(clients *service.ClientService, exports *service.ExportService, pageSize int, log zerolog.Logger) *ClientHandler {
	return &ClientHandler{
		clients:  clients,
		exports:  exports,
		pageSize: pageSize,
		log:      log,
	}
}

// GET /api/v1/clients?page=0&size=5&sortBy=name&sortDir=asc
func (h *ClientHandler) listClients(c *gin.Context) {
	page := parsePageSpec(c, "name", "asc", h.pageSize)
	clients, err := h.clients.List(c.Request.Context(), page)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	if len(clients) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, dto.ToClientDtos(clients))
}

// GET /api/v1/clients/:id
func (h *ClientHandler) getClient(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	client, err := h.clients.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToClientDto(client))
}

// PATCH /api/v1/clients/:id
func (h *ClientHandler) patchClient(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var patch dto.ClientPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validPhone(patch.Phone.Ptr()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid phone format"})
		return
	}
	updated, err := h.clients.PartialUpdate(c.Request.Context(), id, patch)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToClientDto(updated))
}

// DELETE /api/v1/clients/:id — soft delete, responds with the record
func (h *ClientHandler) deleteClient(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	deleted, err := h.clients.SoftDelete(c.Request.Context(), id)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	if principal, ok := middleware.MustPrincipal(c); ok {
		h.log.Info().
			Str("subject", principal.Subject).
			Str("clientId", id.String()).
			Msg("client soft-deleted")
	}
	c.JSON(http.StatusOK, dto.ToClientDto(deleted))
}

// GET /api/v1/clients/persons
func (h *ClientHandler) listPersons(c *gin.Context) {
	page := parsePageSpec(c, "name", "asc", h.pageSize)
	persons, err := h.clients.ListPersons(c.Request.Context(), page)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	if len(persons) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, dto.ToClientDtos(persons))
}

// POST /api/v1/clients/persons
func (h *ClientHandler) createPerson(c *gin.Context) {
	var in dto.PersonCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validPhone(in.Phone) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid phone format"})
		return
	}
	created, err := h.clients.CreatePerson(c.Request.Context(), in)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.Header("Location", "/api/v1/clients/"+created.ClientID.String())
	c.JSON(http.StatusCreated, dto.ToClientDto(created))
}

// GET /api/v1/clients/companies
func (h *ClientHandler) listCompanies(c *gin.Context) {
	page := parsePageSpec(c, "name", "asc", h.pageSize)
	companies, err := h.clients.ListCompanies(c.Request.Context(), page)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	if len(companies) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, dto.ToClientDtos(companies))
}

// POST /api/v1/clients/companies
func (h *ClientHandler) createCompany(c *gin.Context) {
	var in dto.CompanyCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validPhone(in.Phone) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid phone format"})
		return
	}
	created, err := h.clients.CreateCompany(c.Request.Context(), in)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.Header("Location", "/api/v1/clients/"+created.ClientID.String())
	c.JSON(http.StatusCreated, dto.ToClientDto(created))
}

// POST /api/v1/clients/:id/contracts/export
func (h *ClientHandler) exportContracts(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	result, err := h.exports.ExportExcel(c.Request.Context(), id)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	contentType := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	c.Header("Content-Disposition", `attachment; filename="`+result.FileName+`"`)
	c.Data(http.StatusOK, contentType, result.Content)
}

// POST /api/v1/clients/:id/contracts/export/pdf
func (h *ClientHandler) exportContractsPDF(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	result, err := h.exports.ExportPDF(c.Request.Context(), id)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.FileName+`"`)
	c.Data(http.StatusOK, "application/pdf", result.Content)
}
