package handler

import (
	"biryani_club/constants"
	"biryani_club/database"
	"biryani_club/helper"
	"biryani_club/model"
	"biryani_club/utils"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetMenu returns in-stock items grouped by category, most popular first.
// A closed store answers 503 so the storefront can show its closed screen.
func GetMenu(c *fiber.Ctx) error {
	if !helper.IsStoreOpen() {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, constants.STORE_CLOSED, nil)
	}

	db := database.DB

	var items model.MenuItems
	if err := db.Where("in_stock = ?", true).
		Order("popularity desc, name asc").
		Find(&items).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	grouped := make(map[string]model.MenuItems)
	categories := []string{}
	for _, item := range items {
		if _, seen := grouped[item.Category]; !seen {
			categories = append(categories, item.Category)
		}
		grouped[item.Category] = append(grouped[item.Category], item)
	}
	sort.Strings(categories)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"categories": categories,
		"menu":       grouped,
	})
}

func TrackPopularity(c *fiber.Ctx) error {
	db := database.DB

	input, ok := c.Locals("inputTrackPopularity").(model.TrackPopularityInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Input parse failed", nil)
	}

	result := db.Model(&model.MenuItem{}).
		Where("name = ?", input.ItemName).
		UpdateColumn("popularity", gorm.Expr("popularity + 1"))
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ITEM_NOT_FOUND, nil)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "tracked"})
}

// GetMenuItemsAdmin lists everything including out-of-stock items.
func GetMenuItemsAdmin(c *fiber.Ctx) error {
	db := database.DB

	var items model.MenuItems
	query := db.Order("category asc, name asc")

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	limit := c.QueryInt("limit", 0)
	page := c.QueryInt("page", 1)
	query = utils.ApplyPagination(query, &limit, &page)

	if err := query.Find(&items).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, items)
}

func CreateMenuItem(c *fiber.Ctx) error {
	db := database.DB

	input, ok := c.Locals("inputCreateMenuItem").(model.CreateMenuItemInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Input parse failed", nil)
	}

	var existing model.MenuItem
	if err := db.Where("name = ?", input.Name).First(&existing).Error; err == nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, "Item name already exists", nil, "name")
	}

	item := model.MenuItem{
		Name:        input.Name,
		Slug:        helper.GenerateUniqueMenuItemSlug(db, input.Name),
		Category:    input.Category,
		Price:       input.Price,
		Description: input.Description,
		Emoji:       input.Emoji,
		ImageUrl:    input.ImageUrl,
		InStock:     true,
	}

	if err := db.Create(&item).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, item)
}

func EditMenuItem(c *fiber.Ctx) error {
	db := database.DB

	slugParam, _ := c.Locals("menuItemSlug").(string)
	input, ok := c.Locals("inputEditMenuItem").(model.EditMenuItemInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Input parse failed", nil)
	}

	var item model.MenuItem
	if err := db.Where("slug = ?", slugParam).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ITEM_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	updates := map[string]interface{}{}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if input.Price != nil {
		updates["price"] = *input.Price
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Emoji != nil {
		updates["emoji"] = *input.Emoji
	}
	if input.ImageUrl != nil {
		updates["image_url"] = *input.ImageUrl
	}
	if input.InStock != nil {
		updates["in_stock"] = *input.InStock
	}

	if len(updates) == 0 {
		return utils.SuccessResponse(c, fiber.StatusOK, item)
	}

	if err := db.Model(&item).Updates(updates).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Update failed", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, item)
}

func DeleteMenuItem(c *fiber.Ctx) error {
	db := database.DB

	slugParam := c.Params("slug")

	var item model.MenuItem
	if err := db.Where("slug = ?", slugParam).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ITEM_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := db.Delete(&item).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Delete failed", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "deleted"})
}

// DeleteMenuItems removes a batch of items by id.
func DeleteMenuItems(c *fiber.Ctx) error {
	db := database.DB

	input, ok := c.Locals("deleteIds").(model.ArrayId)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Input parse failed", nil)
	}

	result := db.Where("id IN ?", input.IDs).Delete(&model.MenuItem{})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Delete failed", result.Error)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"deleted": result.RowsAffected,
	})
}

func ToggleStock(c *fiber.Ctx) error {
	db := database.DB

	input, ok := c.Locals("inputToggleStock").(model.ToggleStockInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Input parse failed", nil)
	}

	result := db.Model(&model.MenuItem{}).
		Where("name = ?", input.ItemName).
		Update("in_stock", input.InStock)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ITEM_NOT_FOUND, nil)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"itemName": input.ItemName,
		"inStock":  input.InStock,
	})
}

// GenerateSignature signs Cloudinary upload params so the dashboard can
// upload item photos directly from the browser.
func GenerateSignature(c *fiber.Ctx) error {
	type SigParams struct {
		Folder       string `json:"folder"`
		PublicID     string `json:"public_id"`
		ResourceType string `json:"resource_type"` // parsed but never signed
	}

	var params SigParams
	if err := c.BodyParser(&params); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid signature params", err)
	}

	timestamp := time.Now().Unix()

	paramMap := make(map[string]string)
	if params.Folder != "" {
		paramMap["folder"] = params.Folder
	}
	if params.PublicID != "" {
		paramMap["public_id"] = params.PublicID
	}
	paramMap["timestamp"] = fmt.Sprintf("%d", timestamp)

	keys := make([]string, 0, len(paramMap))
	for k := range paramMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var stringToSign strings.Builder
	for i, k := range keys {
		if i > 0 {
			stringToSign.WriteString("&")
		}
		stringToSign.WriteString(k)
		stringToSign.WriteString("=")
		stringToSign.WriteString(paramMap[k])
	}
	stringToSign.WriteString(os.Getenv("CLOUDINARY_API_SECRET"))

	h := sha1.New()
	h.Write([]byte(stringToSign.String()))
	signature := hex.EncodeToString(h.Sum(nil))

	return c.JSON(fiber.Map{
		"signature": signature,
		"timestamp": timestamp,
		"apiKey":    os.Getenv("CLOUDINARY_API_KEY"),
		"cloudName": os.Getenv("CLOUDINARY_CLOUD_NAME"),
	})
}

// UploadMenuItemImage takes a multipart image, pushes it to Cloudinary and
// stores the secure URL on the item.
func UploadMenuItemImage(c *fiber.Ctx) error {
	db := database.DB

	cld, ok := c.Locals("cld").(*cloudinary.Cloudinary)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cloudinary client unavailable", nil)
	}

	slugParam := c.Params("slug")
	var item model.MenuItem
	if err := db.Where("slug = ?", slugParam).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ITEM_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Image file is required", err)
	}
	if file.Size > 5*1024*1024 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File exceeds 5MB", nil)
	}

	f, err := file.Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cannot open file", err)
	}
	defer f.Close()

	publicID := fmt.Sprintf("menu_%s_%d", item.Slug, time.Now().UnixNano())
	uploadResult, err := cld.Upload.Upload(c.Context(), f, uploader.UploadParams{
		Folder:       "menu/items",
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Upload failed", err)
	}

	if err := db.Model(&item).Update("image_url", uploadResult.SecureURL).Error; err != nil {
		cld.Upload.Destroy(c.Context(), uploader.DestroyParams{PublicID: uploadResult.PublicID})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Update failed", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"imageUrl": uploadResult.SecureURL,
	})
}
