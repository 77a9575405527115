package routes

import (
	"os"
	"strings"

	"opsdesk-backend/config"
	"opsdesk-backend/controllers"
	"opsdesk-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Client routes
		clients := api.Group("/clients")
		{
			clients.POST("", controllers.CreateClient)
			clients.GET("", controllers.GetClients)
			clients.GET("/:slug", controllers.GetClient)
			clients.PUT("/:slug", controllers.UpdateClient)
			clients.DELETE("/:slug", controllers.DeleteClient)
			clients.POST("/:slug/picture", controllers.ChangeClientPicture)

			clients.POST("/:slug/branches", controllers.CreateBranch)
			clients.PUT("/:slug/branches/:id", controllers.UpdateBranch)
			clients.DELETE("/:slug/branches/:id", controllers.DeleteBranch)

			clients.POST("/:slug/documents", controllers.UploadDocument)
			clients.GET("/:slug/documents", controllers.GetDocuments)

			clients.POST("/:slug/bills", controllers.CreateBill)
			clients.GET("/:slug/bills", controllers.GetClientBalance)
		}

		// Bill routes
		bills := api.Group("/bills")
		{
			bills.PUT("/:id", controllers.UpdateBill)
			bills.DELETE("/:id", controllers.DeleteBill)
			bills.POST("/:id/status", controllers.SetBillStatus)
			bills.GET("/:id/proof", controllers.DownloadBillProof)
		}

		// Installment routes
		installments := api.Group("/installments")
		{
			installments.PUT("/:id", controllers.EditInstallment)
			installments.POST("/:id/status", controllers.SetInstallmentStatus)
			installments.DELETE("/:id", controllers.DeleteInstallment)
		}

		// Office routes
		offices := api.Group("/offices")
		{
			offices.POST("", controllers.CreateOffice)
			offices.GET("", controllers.GetOffices)
			offices.GET("/:slug", controllers.GetOffice)
			offices.PUT("/:slug", controllers.UpdateOffice)
			offices.DELETE("/:slug", controllers.DeleteOffice)

			offices.POST("/:slug/bank-accounts", controllers.AddOfficeBankAccount)
			offices.POST("/:slug/documents", controllers.UploadDocument)
			offices.GET("/:slug/documents", controllers.GetDocuments)
		}

		// Collaborator routes
		collaborators := api.Group("/collaborators")
		{
			collaborators.POST("", controllers.CreateCollaborator)
			collaborators.GET("", controllers.GetCollaborators)
			collaborators.GET("/:slug", controllers.GetCollaborator)
			collaborators.PUT("/:slug", controllers.UpdateCollaborator)
			collaborators.DELETE("/:slug", controllers.DeleteCollaborator)
			collaborators.POST("/:slug/status", controllers.ToggleCollaboratorStatus)
			collaborators.POST("/:slug/bank-accounts", controllers.AddCollaboratorBankAccount)
			collaborators.POST("/:slug/documents", controllers.UploadDocument)
			collaborators.GET("/:slug/documents", controllers.GetDocuments)
		}

		// Document routes (shared across owners)
		documents := api.Group("/documents")
		{
			documents.PUT("/:id", controllers.EditDocument)
			documents.GET("/:id/download", controllers.DownloadDocument)
			documents.DELETE("/:id", controllers.DeleteDocument)
		}

		// Project routes
		projects := api.Group("/projects")
		{
			projects.POST("", controllers.CreateProject)
			projects.GET("", controllers.GetProjects)
			projects.POST("/:slug/archive", controllers.ToggleProjectArchive)
			projects.POST("/:slug/status", controllers.UpdateProjectStatus)
			projects.DELETE("/:slug", controllers.DeleteProject)
		}

		// Inventory routes
		equipments := api.Group("/equipments")
		{
			equipments.POST("", controllers.CreateEquipment)
			equipments.GET("", controllers.GetEquipments)
			equipments.PUT("/:id", controllers.UpdateEquipment)
			equipments.DELETE("/:id", controllers.DeleteEquipment)
		}

		// Bank account routes
		api.DELETE("/bank-accounts/:id", controllers.DeleteBankAccount)
	}

	return r
}
