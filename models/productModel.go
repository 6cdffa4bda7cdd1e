package models

import "gorm.io/gorm"

type Product struct {
	gorm.Model
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required"`
	ImageUrl    string  `json:"imageUrl"`
	IsActive    bool    `json:"isActive" gorm:"default:true"`
}
