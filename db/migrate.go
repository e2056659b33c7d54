package db

import (
	"fmt"
	"log"

	"github.com/nabhacare/telemed/models"
)

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.DoctorProfile{},
		&models.Consultation{},
		&models.ContactRequest{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}
