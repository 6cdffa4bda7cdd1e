package models

import "gorm.io/gorm"

type GalleryItem struct {
	gorm.Model
	Type string `json:"type"`
	Url  string `json:"url" binding:"required"`
}
