package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/entities"
)

type AuthorsController struct {
	store   AuthorStore
	auditor Auditor
}

func NewAuthorsController(store AuthorStore, auditor Auditor) *AuthorsController {
	return &AuthorsController{store: store, auditor: auditor}
}

type authorRequest struct {
	Name      string `json:"name"`
	Biography string `json:"biography"`
	BirthDate string `json:"birth_date"`
}

func (r *authorRequest) validate() error {
	if err := required("name", r.Name); err != nil {
		return err
	}
	return validDate("birth_date", r.BirthDate)
}

func (controller *AuthorsController) List(c *gin.Context) {
	authors, err := controller.store.List()
	if err != nil {
		respondInternalError(c, err, "list authors")
		return
	}
	c.JSON(http.StatusOK, gin.H{"authors": authors, "count": len(authors)})
}

func (controller *AuthorsController) Create(c *gin.Context) {
	var req authorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		respondDomainError(c, err, "create author")
		return
	}

	author := &entities.Author{Name: req.Name, Biography: req.Biography, BirthDate: req.BirthDate}
	err := controller.store.Add(author)
	if controller.auditor != nil {
		controller.auditor.LogCatalogChange("author", strconv.Itoa(author.ID), "add", "Added author "+author.Name, err)
	}
	if err != nil {
		respondDomainError(c, err, "create author")
		return
	}
	respondCreated(c, author)
}

func (controller *AuthorsController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req authorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		respondDomainError(c, err, "update author")
		return
	}

	author := &entities.Author{ID: id, Name: req.Name, Biography: req.Biography, BirthDate: req.BirthDate}
	err := controller.store.Update(author)
	if controller.auditor != nil {
		controller.auditor.LogCatalogChange("author", strconv.Itoa(id), "update", "Updated author "+author.Name, err)
	}
	if err != nil {
		respondDomainError(c, err, "update author")
		return
	}
	c.JSON(http.StatusOK, author)
}

func (controller *AuthorsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	err := controller.store.Delete(id)
	if controller.auditor != nil {
		controller.auditor.LogDelete("author", strconv.Itoa(id), strconv.Itoa(id), err)
	}
	if err != nil {
		respondDomainError(c, err, "delete author")
		return
	}
	respondSuccess(c, "author deleted")
}
