package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"staff-backoffice-backend/internal/auth"
	"staff-backoffice-backend/internal/config"
	"staff-backoffice-backend/internal/database"
	"staff-backoffice-backend/internal/database/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Simple structures that directly match DB schema
type BranchData struct {
	Code    string `yaml:"code"`
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
	Phone   string `yaml:"phone"`
	Email   string `yaml:"email"`
}

type PermissionData struct {
	Code        string `yaml:"code"`
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
}

type RoleData struct {
	Name        string   `yaml:"name"`
	BranchCode  string   `yaml:"branch_code"`
	Description string   `yaml:"description"`
	Permissions []string `yaml:"permissions"`
}

type UserData struct {
	Email      string   `yaml:"email"`
	Password   string   `yaml:"password"`
	FirstName  string   `yaml:"first_name"`
	LastName   string   `yaml:"last_name"`
	BranchCode string   `yaml:"branch_code"`
	Roles      []string `yaml:"roles"`
}

// File structures
type BranchesFile struct {
	Branches []BranchData `yaml:"branches"`
}

type PermissionsFile struct {
	Permissions []PermissionData `yaml:"permissions"`
}

type RolesFile struct {
	Roles []RoleData `yaml:"roles"`
}

type UsersFile struct {
	Users []UserData `yaml:"users"`
}

func main() {
	log.Println("Loading initial data from YAML files...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database with retry (for dockerized Postgres startup)
	db, err := connectWithRetry(cfg.DatabaseURL, 60, time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	if err := loadDataFromYAMLFiles(db, hasher, "scripts/data"); err != nil {
		log.Fatalf("Failed to load data from YAML files: %v", err)
	}

	log.Println("Initial data loaded successfully")
}

// connectWithRetry attempts to initialize the DB with retries to wait for Postgres readiness.
func connectWithRetry(dsn string, maxAttempts int, delay time.Duration) (*gorm.DB, error) {
	opts := &database.Options{
		LogLevel: logger.Silent,
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := database.Initialize(dsn, opts)
		if err == nil {
			return db, nil
		}
		// Only log every 10 attempts to reduce noise
		if attempt%10 == 0 || attempt == maxAttempts {
			log.Printf("Database not ready (%d/%d): %v", attempt, maxAttempts, err)
		}
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("database not ready after %d attempts", maxAttempts)
}

func loadDataFromYAMLFiles(db *gorm.DB, hasher *auth.PasswordHasher, dataDir string) error {
	// Lists from several files are appended, so data can be split per branch
	var branchesFile BranchesFile
	err := loadYAML(dataDir, "branches", func(data []byte) error {
		var file BranchesFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return err
		}
		branchesFile.Branches = append(branchesFile.Branches, file.Branches...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to load branches: %w", err)
	}

	var permissionsFile PermissionsFile
	err = loadYAML(dataDir, "permissions", func(data []byte) error {
		var file PermissionsFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return err
		}
		permissionsFile.Permissions = append(permissionsFile.Permissions, file.Permissions...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to load permissions: %w", err)
	}

	var rolesFile RolesFile
	err = loadYAML(dataDir, "roles", func(data []byte) error {
		var file RolesFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return err
		}
		rolesFile.Roles = append(rolesFile.Roles, file.Roles...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to load roles: %w", err)
	}

	var usersFile UsersFile
	err = loadYAML(dataDir, "users", func(data []byte) error {
		var file UsersFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return err
		}
		usersFile.Users = append(usersFile.Users, file.Users...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}

	// Branches first; every other record hangs off one
	branchMap := make(map[string]*models.Branch)
	branchCreated := 0
	for _, data := range branchesFile.Branches {
		branch, created, err := createBranch(db, data)
		if err != nil {
			return fmt.Errorf("failed to create branch %s: %w", data.Code, err)
		}
		branchMap[branch.Code] = branch
		if created {
			branchCreated++
		}
	}
	log.Printf("Branches: %d created, %d total", branchCreated, len(branchesFile.Branches))

	// Permission codes are per branch, so each branch gets the full catalogue
	permissionMap := make(map[string]map[string]*models.Permission)
	permissionCreated := 0
	for code, branch := range branchMap {
		permissionMap[code] = make(map[string]*models.Permission)
		for _, data := range permissionsFile.Permissions {
			permission, created, err := createPermission(db, branch, data)
			if err != nil {
				return fmt.Errorf("failed to create permission %s in %s: %w", data.Code, code, err)
			}
			permissionMap[code][permission.Code] = permission
			if created {
				permissionCreated++
			}
		}
	}
	log.Printf("Permissions: %d created", permissionCreated)

	roleMap := make(map[string]map[string]*models.Role)
	roleCreated := 0
	for _, data := range rolesFile.Roles {
		branch, ok := branchMap[strings.ToUpper(data.BranchCode)]
		if !ok {
			return fmt.Errorf("role %s references unknown branch %s", data.Name, data.BranchCode)
		}
		role, created, err := createRole(db, branch, data, permissionMap[branch.Code])
		if err != nil {
			return fmt.Errorf("failed to create role %s: %w", data.Name, err)
		}
		if roleMap[branch.Code] == nil {
			roleMap[branch.Code] = make(map[string]*models.Role)
		}
		roleMap[branch.Code][role.Name] = role
		if created {
			roleCreated++
		}
	}
	log.Printf("Roles: %d created, %d total", roleCreated, len(rolesFile.Roles))

	userCreated := 0
	for _, data := range usersFile.Users {
		branch, ok := branchMap[strings.ToUpper(data.BranchCode)]
		if !ok {
			return fmt.Errorf("user %s references unknown branch %s", data.Email, data.BranchCode)
		}
		created, err := createUser(db, hasher, branch, data, roleMap[branch.Code])
		if err != nil {
			return fmt.Errorf("failed to create user %s: %w", data.Email, err)
		}
		if created {
			userCreated++
		}
	}
	log.Printf("Users: %d created, %d total", userCreated, len(usersFile.Users))

	return nil
}

// loadYAML hands every *.yaml file under dataDir whose name contains kind to decode.
func loadYAML(dataDir, kind string, decode func(data []byte) error) error {
	return filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".yaml") || !strings.Contains(filepath.Base(path), kind) {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := decode(data); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		return nil
	})
}

func createBranch(db *gorm.DB, data BranchData) (*models.Branch, bool, error) {
	code := strings.ToUpper(strings.TrimSpace(data.Code))

	var existing models.Branch
	err := db.Where("lower(code) = lower(?)", code).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	branch := &models.Branch{
		Name:     data.Name,
		Code:     code,
		Address:  data.Address,
		Phone:    data.Phone,
		Email:    data.Email,
		IsActive: true,
	}
	if err := db.Create(branch).Error; err != nil {
		return nil, false, err
	}
	return branch, true, nil
}

func createPermission(db *gorm.DB, branch *models.Branch, data PermissionData) (*models.Permission, bool, error) {
	var existing models.Permission
	err := db.Where("tenant_id = ? AND code = ?", branch.ID, data.Code).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	permission := &models.Permission{
		TenantModel: models.TenantModel{TenantID: branch.ID},
		Code:        data.Code,
		Category:    data.Category,
		Description: data.Description,
		IsActive:    true,
	}
	if err := db.Create(permission).Error; err != nil {
		return nil, false, err
	}
	return permission, true, nil
}

func createRole(db *gorm.DB, branch *models.Branch, data RoleData, permissions map[string]*models.Permission) (*models.Role, bool, error) {
	var existing models.Role
	err := db.Where("tenant_id = ? AND lower(name) = lower(?)", branch.ID, data.Name).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	role := &models.Role{
		TenantModel: models.TenantModel{TenantID: branch.ID},
		Name:        data.Name,
		Description: data.Description,
		IsActive:    true,
	}
	for _, code := range data.Permissions {
		permission, ok := permissions[code]
		if !ok {
			return nil, false, fmt.Errorf("unknown permission %s", code)
		}
		role.RolePermissions = append(role.RolePermissions, models.RolePermission{
			TenantModel:  models.TenantModel{TenantID: branch.ID},
			PermissionID: permission.ID,
		})
	}

	if err := db.Create(role).Error; err != nil {
		return nil, false, err
	}
	return role, true, nil
}

func createUser(db *gorm.DB, hasher *auth.PasswordHasher, branch *models.Branch, data UserData, roles map[string]*models.Role) (bool, error) {
	email := strings.ToLower(strings.TrimSpace(data.Email))

	var existing models.User
	err := db.Where("lower(email) = ?", email).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	password := data.Password
	if env := os.Getenv("SEED_ADMIN_PASSWORD"); env != "" {
		password = env
	}
	hash, err := hasher.Hash(password)
	if err != nil {
		return false, err
	}

	user := &models.User{
		TenantModel:  models.TenantModel{TenantID: branch.ID},
		Email:        email,
		PasswordHash: hash,
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		IsActive:     true,
	}
	for _, name := range data.Roles {
		role, ok := roles[name]
		if !ok {
			return false, fmt.Errorf("unknown role %s in branch %s", name, branch.Code)
		}
		user.UserRoles = append(user.UserRoles, models.UserRole{
			TenantModel: models.TenantModel{TenantID: branch.ID},
			RoleID:      role.ID,
		})
	}
	return true, db.Create(user).Error
}
