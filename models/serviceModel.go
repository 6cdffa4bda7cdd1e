package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	gorm.Model
	Name        string         `json:"name" binding:"required"`
	Description string         `json:"description"`
	Price       float64        `json:"price" binding:"required"`
	ImageUrl    string         `json:"imageUrl"`
	Duration    float64        `json:"duration"`
	Features    datatypes.JSON `json:"features"`
}
