package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"agency-hub/internal/adapter/notification"
	"agency-hub/internal/adapter/storage"
	"agency-hub/internal/api/handler"
	"agency-hub/internal/api/middleware"
	"agency-hub/internal/pkg/auth"
	"agency-hub/internal/pkg/config"
	"agency-hub/internal/pkg/jwt"
	"agency-hub/internal/repository"
	"agency-hub/internal/service"
)

// Setup wires repositories, services and handlers and registers every route
func Setup(cfg *config.Config, db *gorm.DB, store storage.ObjectStore, notifier notification.Notifier, logger *zap.Logger) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.Server.AllowOrigins))
	r.Use(middleware.RateLimitMiddleware(cfg.RateLimit))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	issuer := jwt.NewIssuer(cfg.Auth.JWT)

	// repositories
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	fileRepo := repository.NewFileRepository(db)

	// services
	ldapService := service.NewLDAPService(&cfg.Auth.LDAP)
	authService := service.NewAuthService(&cfg.Auth, issuer, userRepo, ldapService, logger)
	userService := service.NewUserService(userRepo, clientRepo, logger)
	clientService := service.NewClientService(clientRepo, logger)
	projectService := service.NewProjectService(projectRepo, clientRepo, logger)
	taskService := service.NewTaskService(taskRepo, projectRepo, userRepo, logger)
	invoiceService := service.NewInvoiceService(invoiceRepo, clientRepo, projectRepo, notifier, logger)
	messageService := service.NewMessageService(messageRepo, projectRepo, logger)
	fileService := service.NewFileService(fileRepo, projectRepo, store, cfg.Storage.PresignTTL(), logger)
	portalService := service.NewPortalService(userRepo, projectRepo, taskRepo, messageRepo, fileRepo, invoiceRepo, logger)

	// handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	clientHandler := handler.NewClientHandler(clientService)
	projectHandler := handler.NewProjectHandler(projectService)
	taskHandler := handler.NewTaskHandler(taskService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	messageHandler := handler.NewMessageHandler(messageService)
	fileHandler := handler.NewFileHandler(fileService, cfg.Server.MaxUploadSize)
	portalHandler := handler.NewPortalHandler(portalService)

	can := middleware.RequirePermission

	v1 := r.Group("/api/v1")
	{
		// no token required
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/refresh", authHandler.Refresh)
		}

		authed := v1.Group("")
		authed.Use(middleware.AuthMiddleware(issuer))
		{
			authed.GET("/auth/me", authHandler.GetMe)
			authed.GET("/roles", can(auth.PermUserView), userHandler.ListRoles)

			users := authed.Group("/users")
			{
				users.GET("", can(auth.PermUserView), userHandler.List)
				users.GET("/:id", can(auth.PermUserView), userHandler.Get)
				users.PATCH("/:id", can(auth.PermUserManage), userHandler.Update)
			}

			clients := authed.Group("/clients")
			{
				clients.POST("", can(auth.PermClientManage), clientHandler.Create)
				clients.GET("", can(auth.PermClientView), clientHandler.List)
				clients.GET("/:id", can(auth.PermClientView), clientHandler.Get)
				clients.PATCH("/:id", can(auth.PermClientManage), clientHandler.Update)
				clients.DELETE("/:id", can(auth.PermClientDelete), clientHandler.Delete)
			}

			projects := authed.Group("/projects")
			{
				projects.POST("", can(auth.PermProjectManage), projectHandler.Create)
				projects.GET("", can(auth.PermProjectView), projectHandler.List)
				projects.GET("/:id", can(auth.PermProjectView), projectHandler.Get)
				projects.PATCH("/:id", can(auth.PermProjectManage), projectHandler.Update)
				projects.DELETE("/:id", can(auth.PermProjectDelete), projectHandler.Delete)

				projects.POST("/:id/tasks", can(auth.PermTaskManage), taskHandler.Create)
				projects.GET("/:id/tasks", can(auth.PermTaskView), taskHandler.ListByProject)

				projects.POST("/:id/messages", can(auth.PermMessageManage), messageHandler.Create)
				projects.GET("/:id/messages", can(auth.PermMessageView), messageHandler.ListByProject)

				projects.POST("/:id/files", can(auth.PermFileManage), fileHandler.Upload)
				projects.GET("/:id/files", can(auth.PermFileView), fileHandler.ListByProject)
			}

			tasks := authed.Group("/tasks")
			{
				tasks.GET("", can(auth.PermTaskView), taskHandler.List)
				tasks.GET("/:id", can(auth.PermTaskView), taskHandler.Get)
				tasks.PATCH("/:id", can(auth.PermTaskManage), taskHandler.Update)
				tasks.DELETE("/:id", can(auth.PermTaskManage), taskHandler.Delete)
			}

			invoices := authed.Group("/invoices")
			{
				invoices.POST("", can(auth.PermInvoiceManage), invoiceHandler.Create)
				invoices.GET("", can(auth.PermInvoiceView), invoiceHandler.List)
				invoices.GET("/:id", can(auth.PermInvoiceView), invoiceHandler.Get)
				invoices.PATCH("/:id", can(auth.PermInvoiceManage), invoiceHandler.Update)
				invoices.DELETE("/:id", can(auth.PermInvoiceDelete), invoiceHandler.Delete)
				invoices.POST("/:id/mark-paid", can(auth.PermInvoiceManage), invoiceHandler.MarkPaid)
			}

			messages := authed.Group("/messages")
			{
				messages.GET("/:id", can(auth.PermMessageView), messageHandler.Get)
				messages.DELETE("/:id", can(auth.PermMessageManage), messageHandler.Delete)
			}

			files := authed.Group("/files")
			{
				files.GET("/:id", can(auth.PermFileView), fileHandler.Get)
				files.GET("/:id/download", can(auth.PermFileView), fileHandler.Download)
				files.DELETE("/:id", can(auth.PermFileManage), fileHandler.Delete)
			}

			// any role may call; the portal service scopes by linked client
			portal := authed.Group("/portal", can(auth.PermPortalView))
			{
				portal.GET("/projects", portalHandler.ListProjects)
				portal.GET("/projects/:id", portalHandler.GetProject)
				portal.GET("/invoices", portalHandler.ListInvoices)
				portal.GET("/invoices/:id", portalHandler.GetInvoice)
			}
		}
	}

	return r
}
