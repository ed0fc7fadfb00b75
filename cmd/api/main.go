package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-partsledger/internal/handler"
	"go-partsledger/internal/invoice"
	"go-partsledger/internal/middleware"
	"go-partsledger/internal/model"
	"go-partsledger/internal/ratelimit"
	"go-partsledger/internal/repository"
	"go-partsledger/internal/service"
	"go-partsledger/internal/ws"
	"go-partsledger/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.Category{}, &model.Product{},
		&model.Partner{}, &model.Transaction{}, &model.TransactionItem{},
		&model.User{}, &model.Privilege{}, &model.Role{},
	)

	// 3. Seed default privileges, roles, and admin user
	seedPrivilegesRolesAndAdmin(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	partnerRepo := repository.NewPartnerRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	userRepo := repository.NewUserRepo(db)
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	reversalPolicy := service.ParseStockReversalPolicy(os.Getenv("STOCK_REVERSAL_POLICY"))

	postingService := service.NewPostingService(productRepo, txRepo, db, wsHub, reversalPolicy)
	catalogService := service.NewCatalogService(productRepo, categoryRepo, db, wsHub)
	partnerService := service.NewPartnerService(partnerRepo)
	dashService := service.NewDashboardService(txRepo)
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo, privilegeRepo, roleRepo)

	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "static"
	}
	renderer := invoice.NewRenderer(invoice.AssetsFromDir(staticDir))

	// 5 account creation attempts per client IP per 5 minutes
	createUserLimiter := ratelimit.New(5, 5*time.Minute)

	txHandler := handler.NewTransactionHandler(postingService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	partnerHandler := handler.NewPartnerHandler(partnerService)
	invoiceHandler := handler.NewInvoiceHandler(postingService, renderer)
	dashHandler := handler.NewDashboardHandler(dashService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService, createUserLimiter)
	roleHandler := handler.NewRoleHandler(roleRepo, privilegeRepo)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "PartsLedger v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/validate-token", authHandler.ValidateToken)
	auth.Post("/reset-password", middleware.RequireAuth(userRepo), authHandler.ResetPassword)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Dashboard
	protected.Get("/dashboard/stats", middleware.RequirePrivilege("dashboard:view"), dashHandler.GetStats)

	// Categories
	protected.Get("/categories", catalogHandler.GetCategories)
	protected.Post("/categories", middleware.RequirePrivilege("category:create"), catalogHandler.CreateCategory)
	protected.Put("/categories/:id", middleware.RequirePrivilege("category:update"), catalogHandler.UpdateCategory)
	protected.Delete("/categories/:id", middleware.RequirePrivilege("category:delete"), catalogHandler.DeleteCategory)

	// Products
	protected.Get("/products", catalogHandler.GetProducts)
	protected.Get("/products/:id", catalogHandler.GetProduct)
	protected.Post("/products", middleware.RequirePrivilege("product:create"), catalogHandler.CreateProduct)
	protected.Put("/products/:id", middleware.RequirePrivilege("product:update"), catalogHandler.UpdateProduct)
	protected.Delete("/products/:id", middleware.RequirePrivilege("product:delete"), catalogHandler.DeleteProduct)
	protected.Post("/products/bulk-delete", middleware.RequirePrivilege("product:delete"), catalogHandler.BulkDeleteProducts)

	// Partners
	protected.Get("/partners", partnerHandler.GetPartners)
	protected.Get("/partners/:id", partnerHandler.GetPartner)
	protected.Post("/partners", middleware.RequirePrivilege("partner:create"), partnerHandler.CreatePartner)
	protected.Put("/partners/:id", middleware.RequirePrivilege("partner:update"), partnerHandler.UpdatePartner)
	protected.Delete("/partners/:id", middleware.RequirePrivilege("partner:delete"), partnerHandler.DeletePartner)

	// Transactions
	protected.Get("/transactions", middleware.RequirePrivilege("transaction:view"), txHandler.GetTransactions)
	protected.Get("/transactions/:id", middleware.RequirePrivilege("transaction:view"), txHandler.GetTransaction)
	protected.Post("/transactions", middleware.RequirePrivilege("transaction:create"), txHandler.PostTransaction)
	protected.Put("/transactions/:id", middleware.RequirePrivilege("transaction:update"), txHandler.UpdateTransaction)
	protected.Delete("/transactions/:id", middleware.RequirePrivilege("transaction:delete"), txHandler.DeleteTransaction)

	// Invoices
	protected.Get("/transactions/:id/invoice/pdf", middleware.RequirePrivilege("invoice:generate"), invoiceHandler.GetInvoicePDF)
	protected.Post("/transactions/:id/invoice/pdf", middleware.RequirePrivilege("invoice:generate"), invoiceHandler.EditInvoicePDF)

	// User Management
	protected.Get("/users", userHandler.GetUsers)
	protected.Get("/users/:id", userHandler.GetUser)
	protected.Post("/users", middleware.RequirePrivilege("user:create"), userHandler.CreateUser)
	protected.Put("/users/:id", middleware.RequirePrivilege("user:update"), userHandler.UpdateUser)
	protected.Delete("/users/:id", middleware.RequirePrivilege("user:delete"), userHandler.DeleteUser)
	protected.Put("/users/:id/privileges", middleware.RequirePrivilege("user:update_privilege"), userHandler.UpdateUserPrivileges)

	// Roles and privileges
	protected.Get("/roles", roleHandler.GetRoles)
	protected.Get("/privileges", roleHandler.GetPrivileges)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedPrivilegesRolesAndAdmin creates default privileges, roles, and the
// initial admin account if they don't exist.
func seedPrivilegesRolesAndAdmin(db *gorm.DB) {
	privilegeRepo := repository.NewPrivilegeRepo(db)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	// 1. Seed privileges first
	if err := privilegeRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed privileges: %v", err)
	}

	// 2. Seed roles
	if err := roleRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed roles: %v", err)
	}

	// 3. Assign privileges to roles
	allPrivileges, _ := privilegeRepo.FindAll()

	// ADMIN gets everything
	adminRole, err := roleRepo.FindByCode(model.RoleAdmin)
	if err == nil && len(adminRole.Privileges) == 0 {
		db.Model(adminRole).Association("Privileges").Replace(allPrivileges)
		adminRole.Privileges = allPrivileges
		log.Println("ADMIN role assigned all privileges")
	}

	// MANAGER runs the catalog and ledger but not user administration
	managerRole, err := roleRepo.FindByCode(model.RoleManager)
	if err == nil && len(managerRole.Privileges) == 0 {
		managerPrivileges := []model.Privilege{}
		for _, p := range allPrivileges {
			switch p.Code {
			case "user:create", "user:update", "user:delete", "user:update_privilege":
				continue
			}
			managerPrivileges = append(managerPrivileges, p)
		}
		db.Model(managerRole).Association("Privileges").Replace(managerPrivileges)
		log.Println("MANAGER role assigned catalog and ledger privileges")
	}

	// SALES posts sales and prints invoices
	salesRole, err := roleRepo.FindByCode(model.RoleSales)
	if err == nil && len(salesRole.Privileges) == 0 {
		salesCodes := map[string]bool{
			"product:view":       true,
			"category:view":      true,
			"partner:view":       true,
			"partner:create":     true,
			"transaction:view":   true,
			"transaction:create": true,
			"invoice:generate":   true,
			"dashboard:view":     true,
		}
		salesPrivileges := []model.Privilege{}
		for _, p := range allPrivileges {
			if salesCodes[p.Code] {
				salesPrivileges = append(salesPrivileges, p)
			}
		}
		db.Model(salesRole).Association("Privileges").Replace(salesPrivileges)
		log.Println("SALES role assigned posting privileges")
	}

	// 4. Seed the initial admin user
	if _, err := userRepo.FindByUsername("admin"); err == nil {
		return
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123"
		log.Println("Warning: ADMIN_PASSWORD not set, using default")
	}

	admin := &model.User{
		Username: "admin",
		FullName: "Administrator",
		IsActive: true,
	}
	if adminRole != nil {
		admin.RoleID = &adminRole.ID
		admin.Privileges = adminRole.Privileges
	}
	if err := admin.SetPassword(adminPassword); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}
	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
		return
	}
	log.Println("Admin user created (username: admin)")
}
