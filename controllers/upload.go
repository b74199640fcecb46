package controllers

import (
	"context"
	"log"
	"mime/multipart"

	"food-store/models"

	"github.com/gin-gonic/gin"
)

// uploadMenuImage validates the multipart file and pushes it to the image CDN.
func uploadMenuImage(c *gin.Context, header *multipart.FileHeader) (url, publicID string, err error) {
	cld, err := models.NewCloudinaryService()
	if err != nil {
		return "", "", err
	}

	if err := cld.ValidateImageFile(header); err != nil {
		return "", "", err
	}

	file, err := header.Open()
	if err != nil {
		return "", "", err
	}
	defer file.Close()

	return cld.UploadImage(c.Request.Context(), file, header.Filename, "menu")
}

// destroyMenuImage removes a CDN asset, best effort.
func destroyMenuImage(publicID string) {
	cld, err := models.NewCloudinaryService()
	if err != nil {
		log.Printf("cloudinary unavailable, leaving asset %s behind: %v", publicID, err)
		return
	}
	if err := cld.DeleteImage(context.Background(), publicID); err != nil {
		log.Printf("failed to delete cloudinary asset %s: %v", publicID, err)
	}
}
