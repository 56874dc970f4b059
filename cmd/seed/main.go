package main

import (
	"log"
	"os"

	"ai-recorddesk-be/internal/model"
	"ai-recorddesk-be/pkg/authz"
	"ai-recorddesk-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type seedActor struct {
	EmployeeID string
	Email      string
	FullName   string
	Role       string
	Department string
	Password   string
}

// Demo directory covering one actor per role tier so every authorization
// path can be exercised against a fresh database.
var demoActors = []seedActor{
	{"EMP001", "admin@recorddesk.local", "Ada Morris", authz.RoleAdmin, "it", "admin-password"},
	{"EMP002", "sysadmin@recorddesk.local", "Noel Tran", authz.RoleSystemAdmin, "it", "sysadmin-password"},
	{"EMP010", "hr.manager@recorddesk.local", "Priya Nair", authz.RoleHRManager, "hr", "hr-password"},
	{"EMP011", "hr.staff@recorddesk.local", "Jon Keller", authz.RoleHRStaff, "hr", "hr-password"},
	{"EMP020", "fin.manager@recorddesk.local", "Sofia Reyes", authz.RoleFinanceManager, "finance", "fin-password"},
	{"EMP021", "accountant@recorddesk.local", "Marta Lind", authz.RoleAccountant, "finance", "fin-password"},
	{"EMP030", "procurement@recorddesk.local", "Leo Baptiste", authz.RoleProcurementStaff, "procurement", "proc-password"},
	{"EMP031", "warehouse@recorddesk.local", "Ines Okafor", authz.RoleWarehouseManager, "procurement", "proc-password"},
	{"EMP040", "support@recorddesk.local", "Remy Drake", authz.RoleCustomerService, "support", "support-password"},
	{"EMP100", "employee@recorddesk.local", "Kim Castle", authz.RoleEmployee, "operations", "employee-password"},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.Open(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	seedActors(db)
	log.Println("Success: Seed data applied.")
}

func seedActors(db *gorm.DB) {
	for _, a := range demoActors {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Error: hash password for %s: %v", a.EmployeeID, err)
		}
		hashStr := string(hash)

		actor := model.Actor{
			Id:           uuid.New(),
			EmployeeID:   a.EmployeeID,
			Email:        a.Email,
			FullName:     a.FullName,
			PasswordHash: &hashStr,
			Role:         a.Role,
			Department:   a.Department,
			Status:       "active",
		}

		err = db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}},
			DoNothing: true,
		}).Create(&actor).Error
		if err != nil {
			log.Printf("Warn: seed actor %s: %v", a.EmployeeID, err)
			continue
		}
		log.Printf("Seeded actor %s (%s)", a.EmployeeID, a.Role)
	}
}
