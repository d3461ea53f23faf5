package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stitchhouse/stitchhouse-api/config"
	"github.com/stitchhouse/stitchhouse-api/models"
	"github.com/stitchhouse/stitchhouse-api/services"
	"github.com/stitchhouse/stitchhouse-api/utils"
)

// UploadProductImage handles POST /products/:id/images (admin) - uploads a
// product image to S3 and appends the stored key to the product's image list
func UploadProductImage(c *gin.Context) {
	db := config.GetDB()

	var product models.Product
	if err := db.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product not found",
			},
		})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "An image file is required",
			},
		})
		return
	}

	if err := utils.ValidateImageFile(fileHeader); err != nil {
		var uploadErr *utils.FileUploadError
		code := "VALIDATION_ERROR"
		if errors.As(err, &uploadErr) {
			code = uploadErr.Code
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": err.Error(),
			},
		})
		return
	}

	s3Service := services.GetS3Service()
	if s3Service == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORAGE_ERROR",
				"message": "Image storage is not configured",
			},
		})
		return
	}

	s3Key, err := s3Service.UploadFile(fileHeader)
	if err != nil {
		log.Printf("Image upload error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORAGE_ERROR",
				"message": "Failed to upload image",
			},
		})
		return
	}

	product.Images = append(product.Images, s3Key)
	if err := db.Model(&product).Select("images").Updates(&product).Error; err != nil {
		// Keep the bucket consistent with the database
		if deleteErr := s3Service.DeleteFile(s3Key); deleteErr != nil {
			log.Printf("Failed to clean up orphaned image %s: %v", s3Key, deleteErr)
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to save product image",
			},
		})
		return
	}

	imageURL, err := s3Service.GetPresignedURL(s3Key)
	if err != nil {
		log.Printf("Presigned URL error for %s: %v", s3Key, err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"message":   "Image uploaded successfully",
		"image_key": s3Key,
		"image_url": imageURL,
		"product":   product,
	})
}
