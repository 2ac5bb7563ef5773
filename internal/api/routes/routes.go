package routes

import (
	"fmt"
	"time"

	"staff-backoffice-backend/internal/api/handlers"
	"staff-backoffice-backend/internal/api/middleware"
	"staff-backoffice-backend/internal/auth"
	"staff-backoffice-backend/internal/config"
	"staff-backoffice-backend/internal/repository"
	"staff-backoffice-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// SetupRoutes configures all the routes for the application
func SetupRoutes(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(cfg))

	validate := validator.New()

	// Repositories
	branchRepo := repository.NewBranchRepository(db)
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	permissionRepo := repository.NewPermissionRepository(db)
	positionRepo := repository.NewPositionRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)

	// Authentication and authorization
	authConfig := auth.NewAuthConfig(cfg)
	hasher := auth.NewPasswordHasher(authConfig.BcryptCost)
	tokens := auth.NewTokenService(authConfig)
	denylist := auth.NewTokenDenylist(5 * time.Minute)

	authService, err := auth.NewAuthService(authConfig, userRepo, roleRepo, refreshTokenRepo, hasher, tokens, denylist, validate)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auth service: %w", err)
	}

	extraPolicies, err := auth.LoadPolicies(cfg.PoliciesFile)
	if err != nil {
		return nil, err
	}
	authorizer := auth.NewAuthorizer(append(auth.DefaultPolicies(), extraPolicies...)...)
	authMiddleware := auth.NewAuthMiddleware(tokens, denylist, authorizer)
	authHandler := auth.NewAuthHandler(authService)

	// Services
	branchService := service.NewBranchService(branchRepo, validate)
	userService := service.NewUserService(userRepo, roleRepo, hasher, validate)
	roleService := service.NewRoleService(roleRepo, permissionRepo, validate)
	permissionService := service.NewPermissionService(permissionRepo, validate)
	positionService := service.NewPositionService(positionRepo, employeeRepo, validate)
	employeeService := service.NewEmployeeService(employeeRepo, positionRepo, validate)

	// Handlers
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	healthHandler := handlers.NewHealthHandler(sqlDB, Version)
	branchHandler := handlers.NewBranchHandler(branchService)
	userHandler := handlers.NewUserHandler(userService)
	roleHandler := handlers.NewRoleHandler(roleService)
	permissionHandler := handlers.NewPermissionHandler(permissionService)
	positionHandler := handlers.NewPositionHandler(positionService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")

	authRoutes := v1.Group("/auth")
	{
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/refresh", authHandler.Refresh)
		authRoutes.POST("/logout", authMiddleware.RequireAuth(), authHandler.Logout)
		authRoutes.GET("/me", authMiddleware.RequireAuth(), authHandler.Me)
	}

	// Everything below requires a valid access token
	protected := v1.Group("")
	protected.Use(authMiddleware.RequireAuth())

	require := func(policy string) gin.HandlerFunc { return authMiddleware.RequirePolicy(policy) }

	branches := protected.Group("/branches")
	{
		branches.GET("", require(auth.PolicyBranchesRead), branchHandler.ListBranches)
		branches.POST("", require(auth.PolicyBranchesWrite), branchHandler.CreateBranch)
		branches.GET("/:id", require(auth.PolicyBranchesRead), branchHandler.GetBranch)
		branches.PUT("/:id", require(auth.PolicyBranchesWrite), branchHandler.UpdateBranch)
		branches.DELETE("/:id", require(auth.PolicyBranchesWrite), branchHandler.DeleteBranch)
	}

	users := protected.Group("/users")
	{
		users.GET("", require(auth.PolicyUsersRead), userHandler.ListUsers)
		users.POST("", require(auth.PolicyUsersWrite), userHandler.CreateUser)
		users.GET("/:id", require(auth.PolicyUsersRead), userHandler.GetUser)
		users.PUT("/:id", require(auth.PolicyUsersWrite), userHandler.UpdateUser)
		users.DELETE("/:id", require(auth.PolicyUsersWrite), userHandler.DeleteUser)
		users.PUT("/:id/roles", require(auth.PolicyUsersWrite), userHandler.AssignRoles)
		users.PUT("/:id/password", require(auth.PolicyUsersWrite), userHandler.ChangePassword)
	}

	roles := protected.Group("/roles")
	{
		roles.GET("", require(auth.PolicyRolesRead), roleHandler.ListRoles)
		roles.POST("", require(auth.PolicyRolesWrite), roleHandler.CreateRole)
		roles.GET("/:id", require(auth.PolicyRolesRead), roleHandler.GetRole)
		roles.PUT("/:id", require(auth.PolicyRolesWrite), roleHandler.UpdateRole)
		roles.DELETE("/:id", require(auth.PolicyRolesWrite), roleHandler.DeleteRole)
		roles.PUT("/:id/permissions", require(auth.PolicyRolesWrite), roleHandler.SetPermissions)
	}

	permissions := protected.Group("/permissions")
	{
		permissions.GET("", require(auth.PolicyPermissionsRead), permissionHandler.ListPermissions)
		permissions.POST("", require(auth.PolicyPermissionsWrite), permissionHandler.CreatePermission)
		permissions.GET("/:id", require(auth.PolicyPermissionsRead), permissionHandler.GetPermission)
		permissions.PUT("/:id", require(auth.PolicyPermissionsWrite), permissionHandler.UpdatePermission)
		permissions.DELETE("/:id", require(auth.PolicyPermissionsWrite), permissionHandler.DeletePermission)
	}

	positions := protected.Group("/positions")
	{
		positions.GET("", require(auth.PolicyPositionsRead), positionHandler.ListPositions)
		positions.POST("", require(auth.PolicyPositionsWrite), positionHandler.CreatePosition)
		positions.GET("/:id", require(auth.PolicyPositionsRead), positionHandler.GetPosition)
		positions.PUT("/:id", require(auth.PolicyPositionsWrite), positionHandler.UpdatePosition)
		positions.DELETE("/:id", require(auth.PolicyPositionsWrite), positionHandler.DeletePosition)
	}

	employees := protected.Group("/employees")
	{
		employees.GET("", require(auth.PolicyEmployeesRead), employeeHandler.ListEmployees)
		employees.POST("", require(auth.PolicyEmployeesWrite), employeeHandler.CreateEmployee)
		employees.GET("/:id", require(auth.PolicyEmployeesRead), employeeHandler.GetEmployee)
		employees.PUT("/:id", require(auth.PolicyEmployeesWrite), employeeHandler.UpdateEmployee)
		employees.DELETE("/:id", require(auth.PolicyEmployeesWrite), employeeHandler.DeleteEmployee)
		employees.POST("/:id/terminate", require(auth.PolicyEmployeesWrite), employeeHandler.TerminateEmployee)
	}

	return router, nil
}
