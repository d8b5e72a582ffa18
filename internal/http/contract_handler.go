package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ricci/insurance-api/internal/dto"
	"github.com/ricci/insurance-api/internal/http/middleware"
	"github.com/ricci/insurance-api/internal/service"
)

type ContractHandler struct {
	contracts *service.ContractService
	clients   *service.ClientService
	pageSize  int
	log       zerolog.Logger
}

func NewContractHandler(contracts *service.ContractService, clients *service.ClientService, pageSize int, log zerolog.Logger) *ContractHandler {
	return &ContractHandler{
		contracts: contracts,
		clients:   clients,
		pageSize:  pageSize,
		log:       log,
	}
}

// GET /api/v1/contracts?page=0&size=5&sortBy=updateDate&sortDir=desc
func (h *ContractHandler) listContracts(c *gin.Context) {
	page := parsePageSpec(c, "updateDate", "desc", h.pageSize)
	contracts, err := h.contracts.List(c.Request.Context(), page)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	if len(contracts) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, dto.ToContractDtos(contracts))
}

// GET /api/v1/contracts/:id — detail embeds the full client
func (h *ContractHandler) getContract(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	contract, err := h.contracts.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToContractExpandedDto(contract))
}

// POST /api/v1/contracts — the handler resolves the owning client and
// hands it to the contract service
func (h *ContractHandler) createContract(c *gin.Context) {
	var in dto.ContractCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	client, err := h.clients.Get(c.Request.Context(), in.ClientID)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	created, err := h.contracts.Create(c.Request.Context(), in, client)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.Header("Location", "/api/v1/contracts/"+created.ContractID.String())
	c.JSON(http.StatusCreated, dto.ToContractDto(created))
}

// PATCH /api/v1/contracts/:id
func (h *ContractHandler) patchContract(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var patch dto.ContractPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.contracts.PartialUpdate(c.Request.Context(), id, patch)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToContractDto(updated))
}

// DELETE /api/v1/contracts/:id — closes the contract, no-op if closed
func (h *ContractHandler) deleteContract(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	deleted, err := h.contracts.SoftDelete(c.Request.Context(), id)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	if principal, ok := middleware.MustPrincipal(c); ok {
		h.log.Info().
			Str("subject", principal.Subject).
			Str("contractId", id.String()).
			Msg("contract closed")
	}
	c.JSON(http.StatusOK, dto.ToContractDto(deleted))
}

// GET /api/v1/clients/:id/contracts/active?updatedAfter=2024-01-01T00:00:00Z
func (h *ContractHandler) listActiveContracts(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	if raw := c.Query("updatedAfter"); raw != "" {
		threshold, err := parseTimestamp(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid updatedAfter"})
			return
		}
		contracts, err := h.contracts.GetActiveContractsUpdatedAfter(ctx, id, threshold)
		if err != nil {
			handleError(c, h.log, err)
			return
		}
		c.JSON(http.StatusOK, dto.ToContractDtos(contracts))
		return
	}

	contracts, err := h.contracts.GetActiveContracts(ctx, id)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToContractDtos(contracts))
}

// GET /api/v1/clients/:id/contracts/active/cost
func (h *ContractHandler) sumActiveContractsCost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	total, err := h.contracts.GetSumOfActiveContractsCost(c.Request.Context(), id)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"clientId":  id,
		"totalCost": total,
	})
}
