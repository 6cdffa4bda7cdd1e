package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lashup/lashup-api/initializers"
	"github.com/lashup/lashup-api/models"
	"gorm.io/gorm"
)

func CreateService(ctx *gin.Context) {
	var service models.Service
	if err := ctx.ShouldBindJSON(&service); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := initializers.DB.Create(&service).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create service", err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": "Service created", "service": service})
}

func GetServices(ctx *gin.Context) {
	var services []models.Service
	if result := initializers.DB.Order("created_at desc").Find(&services); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch services", result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"services": services})
}

func GetService(ctx *gin.Context) {
	serviceID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid service ID", err)
		return
	}

	var service models.Service
	result := initializers.DB.First(&service, serviceID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Service not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve service", result.Error)
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"service": service})
}

func UpdateService(ctx *gin.Context) {
	serviceID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid service ID", err)
		return
	}

	var service models.Service
	if err := initializers.DB.First(&service, serviceID).Error; err != nil {
		respondWithError(ctx, http.StatusNotFound, "Service not found", nil)
		return
	}

	var serviceData models.Service
	if err := ctx.ShouldBindJSON(&serviceData); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	service.Name = serviceData.Name
	service.Description = serviceData.Description
	service.Price = serviceData.Price
	service.ImageUrl = serviceData.ImageUrl
	service.Duration = serviceData.Duration
	service.Features = serviceData.Features
	if err := initializers.DB.Save(&service).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update service", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Service updated", "service": service})
}

func DeleteService(ctx *gin.Context) {
	serviceID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid service ID", err)
		return
	}

	if result := initializers.DB.Delete(&models.Service{}, serviceID); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete service", result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Service deleted"})
}
