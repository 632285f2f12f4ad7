package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/frahmantamala/notice-management/internal"
	"github.com/frahmantamala/notice-management/internal/auth"
	departmentDatamodel "github.com/frahmantamala/notice-management/internal/core/datamodel/department"
	userDatamodel "github.com/frahmantamala/notice-management/internal/core/datamodel/user"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with a department hierarchy and one user per role for development.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := openGorm(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if clearData {
			// Child tables first so foreign keys don't block the wipe.
			for _, table := range []string{
				"activity_logs", "notice_tracking", "notice_distributions",
				"notices", "revoked_tokens", "users", "departments",
			} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		headOffice := seedDepartment(db, &departmentDatamodel.Department{
			Name:       "Head Office",
			OfficeType: departmentDatamodel.OfficeTypeDirectorate,
			Province:   "Bagmati",
			District:   "Kathmandu",
		})
		distribution := seedDepartment(db, &departmentDatamodel.Department{
			Name:       "Distribution and Consumer Services",
			OfficeType: departmentDatamodel.OfficeTypeDivision,
			ParentID:   &headOffice.ID,
			Province:   "Bagmati",
			District:   "Kathmandu",
		})
		seedDepartment(db, &departmentDatamodel.Department{
			Name:       "Gandaki Province Office",
			OfficeType: departmentDatamodel.OfficeTypeProvince,
			ParentID:   &headOffice.ID,
			Province:   "Gandaki",
			District:   "Kaski",
		})

		hash, err := auth.HashPassword("password", cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash seed password: %v", err)
		}

		seedUser(db, "admin@nea.local", "Administrator", userDatamodel.RoleAdmin, hash, nil)
		seedUser(db, "head@nea.local", "Department Head", userDatamodel.RoleDepartmentHead, hash, &distribution.ID)
		seedUser(db, "chief@nea.local", "Section Chief", userDatamodel.RoleSectionChief, hash, &distribution.ID)
		seedUser(db, "staff@nea.local", "Staff Member", userDatamodel.RoleStaff, hash, &distribution.ID)
		seedUser(db, "it@nea.local", "IT Manager", userDatamodel.RoleITManager, hash, &headOffice.ID)

		fmt.Println("Seeding complete")
	},
}

func seedDepartment(db *gorm.DB, dept *departmentDatamodel.Department) *departmentDatamodel.Department {
	var existing departmentDatamodel.Department
	if err := db.Where("name = ?", dept.Name).First(&existing).Error; err == nil {
		fmt.Printf("department %q already exists\n", dept.Name)
		return &existing
	}

	if err := db.Create(dept).Error; err != nil {
		log.Fatalf("failed to seed department %q: %v", dept.Name, err)
	}
	fmt.Printf("Seeded department: %s\n", dept.Name)
	return dept
}

func seedUser(db *gorm.DB, email, name, role, passwordHash string, departmentID *int64) {
	var existing userDatamodel.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		fmt.Printf("user %s already exists\n", email)
		return
	}

	u := &userDatamodel.User{
		Email:        email,
		Name:         name,
		Role:         role,
		DepartmentID: departmentID,
		IsActive:     true,
		PasswordHash: passwordHash,
	}
	if err := db.Create(u).Error; err != nil {
		log.Fatalf("failed to seed user %s: %v", email, err)
	}
	fmt.Printf("Seeded user: %s (%s)\n", email, role)
}

func openGorm(cfg internal.DatabaseConfig) (*gorm.DB, error) {
	sqlDB, err := initDB(cfg)
	if err != nil {
		return nil, err
	}
	return gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB.DB}), &gorm.Config{
		TranslateError: true,
	})
}
