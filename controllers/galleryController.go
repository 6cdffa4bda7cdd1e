package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/lashup/lashup-api/initializers"
	"github.com/lashup/lashup-api/models"
)

func AddGalleryItem(ctx *gin.Context) {
	var item models.GalleryItem
	if err := ctx.ShouldBindJSON(&item); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if item.Type == "" {
		item.Type = "image"
	}

	if err := initializers.DB.Create(&item).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to add gallery item", err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": "Gallery item added", "item": item})
}

func GetGalleryItems(ctx *gin.Context) {
	var items []models.GalleryItem
	if result := initializers.DB.Order("created_at desc").Find(&items); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch gallery items", result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"items": items})
}

func DeleteGalleryItem(ctx *gin.Context) {
	itemID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid gallery item ID", err)
		return
	}

	if result := initializers.DB.Delete(&models.GalleryItem{}, itemID); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete gallery item", result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Gallery item deleted"})
}

// getAWSUploader returns a configured S3 uploader
func getAWSUploader() (*manager.Uploader, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return manager.NewUploader(client), nil
}

// UploadGalleryImages uploads one or more images to S3 and creates a gallery
// item for each successful upload.
func UploadGalleryImages(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid form data", err)
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		respondWithError(ctx, http.StatusBadRequest, "No files uploaded", nil)
		return
	}

	uploader, err := getAWSUploader()
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to configure AWS", err)
		return
	}

	bucket := os.Getenv("AWS_S3_BUCKET")
	var items []models.GalleryItem
	var failedUploads []string

	for _, file := range files {
		f, openErr := file.Open()
		if openErr != nil {
			log.Printf("Error opening file %s: %v", file.Filename, openErr)
			failedUploads = append(failedUploads, file.Filename)
			continue
		}

		// Unique key to prevent overwrites
		uniqueFilename := fmt.Sprintf("gallery/%s-%s", time.Now().Format("20060102150405"), file.Filename)

		result, uploadErr := uploader.Upload(context.TODO(), &s3.PutObjectInput{
			Bucket:      aws.String(bucket),
			Key:         aws.String(uniqueFilename),
			Body:        f,
			ACL:         "public-read",
			ContentType: aws.String(file.Header.Get("Content-Type")),
		})
		f.Close()

		if uploadErr != nil {
			log.Printf("Error uploading file %s: %v", file.Filename, uploadErr)
			failedUploads = append(failedUploads, file.Filename)
			continue
		}

		item := models.GalleryItem{Type: "image", Url: result.Location}
		if err := initializers.DB.Create(&item).Error; err != nil {
			log.Printf("Error saving gallery item to database: %v", err)
			continue
		}
		items = append(items, item)
	}

	response := gin.H{
		"message": "Files processed",
		"items":   items,
	}
	if len(failedUploads) > 0 {
		response["failed"] = failedUploads
	}

	ctx.JSON(http.StatusOK, response)
}
