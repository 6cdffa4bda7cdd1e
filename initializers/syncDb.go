package initializers

import (
	"log"

	"github.com/lashup/lashup-api/models"
)

func SyncDatabase() {
	DB.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Product{},
		&models.Booking{},
		&models.ProductOrder{},
		&models.GalleryItem{},
	)
	log.Println("Database synced successfully.")
}
