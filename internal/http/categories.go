package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/entities"
)

type CategoriesController struct {
	store   CategoryStore
	auditor Auditor
}

func NewCategoriesController(store CategoryStore, auditor Auditor) *CategoriesController {
	return &CategoriesController{store: store, auditor: auditor}
}

type categoryRequest struct {
	Name string `json:"name"`
}

func (controller *CategoriesController) List(c *gin.Context) {
	categories, err := controller.store.List()
	if err != nil {
		respondInternalError(c, err, "list categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories, "count": len(categories)})
}

func (controller *CategoriesController) Create(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if err := required("name", req.Name); err != nil {
		respondDomainError(c, err, "create category")
		return
	}

	category := &entities.Category{Name: req.Name}
	err := controller.store.Add(category)
	if controller.auditor != nil {
		controller.auditor.LogCatalogChange("category", strconv.Itoa(category.ID), "add", "Added category "+category.Name, err)
	}
	if err != nil {
		respondDomainError(c, err, "create category")
		return
	}
	respondCreated(c, category)
}

func (controller *CategoriesController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if err := required("name", req.Name); err != nil {
		respondDomainError(c, err, "update category")
		return
	}

	category := &entities.Category{ID: id, Name: req.Name}
	err := controller.store.Update(category)
	if controller.auditor != nil {
		controller.auditor.LogCatalogChange("category", strconv.Itoa(id), "update", "Updated category "+category.Name, err)
	}
	if err != nil {
		respondDomainError(c, err, "update category")
		return
	}
	c.JSON(http.StatusOK, category)
}

func (controller *CategoriesController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	err := controller.store.Delete(id)
	if controller.auditor != nil {
		controller.auditor.LogDelete("category", strconv.Itoa(id), strconv.Itoa(id), err)
	}
	if err != nil {
		respondDomainError(c, err, "delete category")
		return
	}
	respondSuccess(c, "category deleted")
}
