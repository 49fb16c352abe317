package controllers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"apachemart/app/models"
	"apachemart/app/repositories"
	"apachemart/pkg/bind"
	"apachemart/pkg/logger"
	"apachemart/pkg/response"
	"apachemart/pkg/storage"
)

type ProductController struct {
	products *repositories.ProductRepository
}

func NewProductController(products *repositories.ProductRepository) *ProductController {
	return &ProductController{products: products}
}

type productRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Category    string  `json:"category"`
}

// Index lists the catalogue, optionally filtered by ?category=.
func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	var (
		products []*models.Product
		err      error
	)
	if category := r.URL.Query().Get("category"); category != "" {
		products, err = c.products.GetProductsByCategory(category)
	} else {
		products, err = c.products.GetProducts()
	}
	if err != nil {
		response.FromError(w, err)
		return
	}

	views := make([]map[string]interface{}, 0, len(products))
	for _, p := range products {
		views = append(views, productView(p))
	}
	response.Success(w, views)
}

// Show returns one product.
func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	product, err := c.products.GetProductByID(id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	if product == nil {
		response.NotFound(w)
		return
	}
	response.Success(w, productView(product))
}

// Store creates a catalogue entry.
func (c *ProductController) Store(w http.ResponseWriter, r *http.Request) {
	var body productRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product, err := models.NewProduct(body.Name, body.Price, body.Stock)
	if err != nil {
		response.FromError(w, err)
		return
	}
	product.Description = body.Description
	product.Category = body.Category

	if err := c.products.AddProduct(product); err != nil {
		response.FromError(w, err)
		return
	}

	logger.WithCtx(r.Context()).Info("product created", "product_id", product.ID)
	response.Created(w, productView(product))
}

// Update replaces a product's fields.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var body productRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.products.GetProductByID(id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	if product == nil {
		response.NotFound(w)
		return
	}

	if err := product.SetName(body.Name); err != nil {
		response.FromError(w, err)
		return
	}
	if err := product.SetPrice(body.Price); err != nil {
		response.FromError(w, err)
		return
	}
	if err := product.SetStock(body.Stock); err != nil {
		response.FromError(w, err)
		return
	}
	product.Description = body.Description
	product.Category = body.Category

	if err := c.products.UpdateProduct(product); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, productView(product))
}

// Destroy removes a product.
func (c *ProductController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := c.products.DeleteProduct(id); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]interface{}{"deleted": id})
}

// UploadImage stores a product image on the configured disk and saves its
// public URL on the product.
func (c *ProductController) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	product, err := c.products.GetProductByID(id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	if product == nil {
		response.NotFound(w)
		return
	}

	if err := r.ParseMultipartForm(8 << 20); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "missing image file")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		response.Error(w, http.StatusUnprocessableEntity, "unsupported image type")
		return
	}

	path := fmt.Sprintf("products/%d%s", product.ID, ext)
	if err := storage.PutStream(path, io.LimitReader(file, 8<<20)); err != nil {
		logger.WithCtx(r.Context()).Error("image upload failed", "product_id", product.ID, "error", err)
		response.Error(w, http.StatusInternalServerError, "upload failed")
		return
	}

	product.ImageURL = storage.URL(path)
	if err := c.products.UpdateProduct(product); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, productView(product))
}

func productView(p *models.Product) map[string]interface{} {
	return map[string]interface{}{
		"id":          p.ID,
		"name":        p.Name(),
		"description": p.Description,
		"price":       p.Price(),
		"stock":       p.Stock(),
		"category":    p.Category,
		"image_url":   p.ImageURL,
		"created_at":  p.CreatedAt,
	}
}

// pathID parses the {id} route parameter, replying 400 on garbage.
func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}
