// services/resource_service.go
package services

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"career-quest-system/models"
	"career-quest-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResourceService struct {
	DB *gorm.DB
}

func NewResourceService(db *gorm.DB) *ResourceService {
	return &ResourceService{DB: db}
}

// GetResources fetches curated resources, filtered by career and kind.
func (s *ResourceService) GetResources(c *fiber.Ctx) error {
	career := c.Query("career")
	kind := c.Query("kind")

	query := s.DB.Model(&models.Resource{})
	if career != "" {
		query = query.Where("career = ?", career)
	}
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}

	var resources []models.Resource
	if err := query.Order("created_at DESC").Find(&resources).Error; err != nil {
		log.Printf("DB Error fetching resources: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch resources"})
	}
	return c.JSON(resources)
}

// CreateResource adds a curated resource (Admin only). Accepts multipart
// form data with an optional "attachment" file, stored in R2 when
// configured, else in the local uploads dir.
func (s *ResourceService) CreateResource(c *fiber.Ctx) error {
	career := strings.TrimSpace(c.FormValue("career"))
	title := strings.TrimSpace(c.FormValue("title"))
	link := strings.TrimSpace(c.FormValue("link"))
	kind := models.ResourceKind(c.FormValue("kind", string(models.ResourceKindCourse)))
	free := c.FormValue("free", "true") != "false"

	if career == "" || title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "career and title are required"})
	}
	switch kind {
	case models.ResourceKindCourse, models.ResourceKindBook, models.ResourceKindTutorial,
		models.ResourceKindPractice, models.ResourceKindCertification:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid resource kind"})
	}

	resource := &models.Resource{
		ID:     uuid.NewString(),
		Career: career,
		Title:  title,
		Link:   link,
		Kind:   kind,
		Free:   free,
	}

	if fileHeader, err := c.FormFile("attachment"); err == nil && fileHeader != nil {
		key := fmt.Sprintf("resources/%s%s", resource.ID, filepath.Ext(fileHeader.Filename))
		if utils.R2Configured() {
			url, err := utils.UploadFileToR2(fileHeader, key)
			if err != nil {
				log.Printf("R2 upload failed for resource %s: %v", resource.ID, err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store attachment"})
			}
			resource.AttachmentURL = url
		} else {
			destPath := utils.GetUploadPath(filepath.Base(key))
			if err := utils.SaveFile(fileHeader, destPath); err != nil {
				log.Printf("Local save failed for resource %s: %v", resource.ID, err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store attachment"})
			}
			resource.AttachmentURL = "/uploads/" + filepath.Base(key)
		}
	}

	if err := s.DB.Create(resource).Error; err != nil {
		log.Printf("DB Error creating resource: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create resource"})
	}
	return c.Status(fiber.StatusCreated).JSON(resource)
}

// DeleteResource removes a curated resource (Admin only, soft delete).
func (s *ResourceService) DeleteResource(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid resource ID"})
	}

	var resource models.Resource
	if err := s.DB.First(&resource, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Resource not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	if err := s.DB.Delete(&resource).Error; err != nil {
		log.Printf("DB Error deleting resource: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete resource"})
	}
	return c.JSON(fiber.Map{"message": "Resource deleted successfully"})
}
