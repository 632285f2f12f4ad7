package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/notice-management/internal/auth"
	userDatamodel "github.com/frahmantamala/notice-management/internal/core/datamodel/user"
)

// Bootstrap commands for operators: the first admin account has to come from
// somewhere other than the admin-only register endpoint.
var createAdminCmd = &cobra.Command{
	Use:   "create_admin_user",
	Short: "Create an admin user from ADMIN_EMAIL / ADMIN_PASSWORD / ADMIN_NAME",
	Run: func(cmd *cobra.Command, args []string) {
		email := os.Getenv("ADMIN_EMAIL")
		password := os.Getenv("ADMIN_PASSWORD")
		name := os.Getenv("ADMIN_NAME")
		if email == "" || password == "" {
			log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
		}
		if name == "" {
			name = "Administrator"
		}

		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		db, err := openGorm(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		var existing userDatamodel.User
		if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
			log.Fatalf("user %s already exists; use reset_admin_password instead", email)
		}

		hash, err := auth.HashPassword(password, cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}

		u := &userDatamodel.User{
			Email:        email,
			Name:         name,
			Role:         userDatamodel.RoleAdmin,
			IsActive:     true,
			PasswordHash: hash,
		}
		if err := db.Create(u).Error; err != nil {
			log.Fatalf("failed to create admin user: %v", err)
		}

		fmt.Printf("Created admin user %s (id %d)\n", email, u.ID)
	},
}

var resetAdminPasswordCmd = &cobra.Command{
	Use:   "reset_admin_password",
	Short: "Reset an existing user's password from ADMIN_EMAIL / ADMIN_PASSWORD",
	Run: func(cmd *cobra.Command, args []string) {
		email := os.Getenv("ADMIN_EMAIL")
		password := os.Getenv("ADMIN_PASSWORD")
		if email == "" || password == "" {
			log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
		}

		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		db, err := openGorm(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		var u userDatamodel.User
		if err := db.Where("email = ?", email).First(&u).Error; err != nil {
			log.Fatalf("user %s not found: %v", email, err)
		}

		hash, err := auth.HashPassword(password, cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}

		if err := db.Model(&u).Update("password_hash", hash).Error; err != nil {
			log.Fatalf("failed to reset password: %v", err)
		}

		fmt.Printf("Password reset for %s\n", email)
	},
}
