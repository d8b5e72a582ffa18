package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(clients *ClientHandler, contracts *ContractHandler, authMiddleware gin.HandlerFunc, environment string) *gin.Engine {
	if environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	api.Use(authMiddleware)

	api.GET("/clients", clients.listClients)
	api.GET("/clients/persons", clients.listPersons)
	api.POST("/clients/persons", clients.createPerson)
	api.GET("/clients/companies", clients.listCompanies)
	api.POST("/clients/companies", clients.createCompany)
	api.GET("/clients/:id", clients.getClient)
	api.PATCH("/clients/:id", clients.patchClient)
	api.DELETE("/clients/:id", clients.deleteClient)
	api.GET("/clients/:id/contracts/active", contracts.listActiveContracts)
	api.GET("/clients/:id/contracts/active/cost", contracts.sumActiveContractsCost)
	api.POST("/clients/:id/contracts/export", clients.exportContracts)
	api.POST("/clients/:id/contracts/export/pdf", clients.exportContractsPDF)

	api.GET("/contracts", contracts.listContracts)
	api.POST("/contracts", contracts.createContract)
	api.GET("/contracts/:id", contracts.getContract)
	api.PATCH("/contracts/:id", contracts.patchContract)
	api.DELETE("/contracts/:id", contracts.deleteContract)

	return router
}
