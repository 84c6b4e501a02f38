package adminapi

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Mustagiz/Aleen/internal/domain"
	"github.com/Mustagiz/Aleen/internal/webserver"
	"github.com/Mustagiz/Aleen/pkg/common"
)

type productPayload struct {
	Name         string  `json:"name" form:"name" validate:"required,min=1,max=200"`
	Category     string  `json:"category" form:"category" validate:"required"`
	Size         string  `json:"size" form:"size"`
	Color        string  `json:"color" form:"color"`
	CostPrice    float64 `json:"cost_price" form:"cost_price" validate:"gte=0"`
	SellingPrice float64 `json:"selling_price" form:"selling_price" validate:"gte=0"`
	Stock        int     `json:"stock" form:"stock" validate:"gte=0"`
	ImageUrl     string  `json:"image_url" form:"image_url"`
}

// registerProductRoutes registers the catalog CRUD endpoints
func registerProductRoutes() {
	webserver.ApiGET("/products", listProducts)
	webserver.ApiGET("/products/:id", getProduct)
	webserver.ApiPOST("/products", createProduct)
	webserver.ApiPUT("/products/:id", updateProduct)
	webserver.ApiDELETE("/products/:id", deleteProduct)
}

func listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)

	search := strings.TrimSpace(c.QueryParam("search"))
	category := strings.TrimSpace(c.QueryParam("category"))
	lowStock := c.QueryParam("lowStock")

	db := GetDB(c).Model(&domain.Product{})
	if search != "" {
		if db.Name() == "postgres" {
			db = db.Where("name ILIKE ?", "%"+search+"%")
		} else {
			db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
		}
	}
	if category != "" {
		db = db.Where("category = ?", category)
	}
	if lowStock == "true" {
		db = db.Where("low_stock_alert = ?", true)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	var rows []domain.Product
	if err := db.Order("created_at DESC").Offset((page-1)*pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}
	return ok(c, p)
}

func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name and category are required, prices and stock must not be negative", nil)
	}

	imageUrl := strings.TrimSpace(payload.ImageUrl)
	if file, err := c.FormFile("image"); err == nil {
		url, err := saveProductImage(file)
		if err != nil {
			return fail(c, http.StatusInternalServerError, "UPLOAD_ERROR", "Failed to store product image", err.Error())
		}
		imageUrl = url
	}

	p := domain.Product{
		ID:           common.UUIDint64(),
		Name:         strings.TrimSpace(payload.Name),
		Category:     strings.TrimSpace(payload.Category),
		Size:         strings.TrimSpace(payload.Size),
		Color:        strings.TrimSpace(payload.Color),
		CostPrice:    payload.CostPrice,
		SellingPrice: payload.SellingPrice,
		Stock:        payload.Stock,
		ImageUrl:     imageUrl,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := GetDB(c).Create(&p).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product", err.Error())
	}
	return created(c, p)
}

func updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name and category are required, prices and stock must not be negative", nil)
	}

	p.Name = strings.TrimSpace(payload.Name)
	p.Category = strings.TrimSpace(payload.Category)
	p.Size = strings.TrimSpace(payload.Size)
	p.Color = strings.TrimSpace(payload.Color)
	p.CostPrice = payload.CostPrice
	p.SellingPrice = payload.SellingPrice
	p.Stock = payload.Stock
	if payload.ImageUrl != "" {
		p.ImageUrl = strings.TrimSpace(payload.ImageUrl)
	}
	if file, err := c.FormFile("image"); err == nil {
		url, err := saveProductImage(file)
		if err != nil {
			return fail(c, http.StatusInternalServerError, "UPLOAD_ERROR", "Failed to store product image", err.Error())
		}
		p.ImageUrl = url
	}
	p.UpdatedAt = time.Now()

	if err := GetDB(c).Save(&p).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", err.Error())
	}
	return ok(c, p)
}

func deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	if err := GetDB(c).Where("id = ?", id).Delete(&domain.Product{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", err.Error())
	}
	return ok(c, echo.Map{"message": "Product deleted"})
}

// saveProductImage stores an uploaded image under the uploads dir with a
// random name and returns its public path.
func saveProductImage(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		ext = ".jpg"
	}
	name := uuid.New().String() + ext

	dstPath := filepath.Join(webserver.AppCtx().Config().UploadsDir(), name)
	dst, err := os.Create(dstPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}
