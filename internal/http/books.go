package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/entities"
)

type BooksController struct {
	store   BookStore
	auditor Auditor
}

func NewBooksController(store BookStore, auditor Auditor) *BooksController {
	return &BooksController{store: store, auditor: auditor}
}

type bookRequest struct {
	ISBN            string `json:"isbn"`
	Title           string `json:"title"`
	PublicationYear int    `json:"publication_year"`
	Edition         string `json:"edition"`
	PublisherID     int    `json:"publisher_id"`
	AuthorIDs       []int  `json:"author_ids"`
	CategoryIDs     []int  `json:"category_ids"`
	CopyCount       int    `json:"copy_count"`
}

func (r *bookRequest) validate(forCreate bool) error {
	if forCreate {
		if err := required("isbn", r.ISBN); err != nil {
			return err
		}
	}
	if err := required("title", r.Title); err != nil {
		return err
	}
	if r.PublisherID <= 0 {
		return &ValidationError{Field: "publisher_id", Reason: "is required"}
	}
	if forCreate && r.CopyCount < 1 {
		return &ValidationError{Field: "copy_count", Reason: "must be at least 1"}
	}
	return nil
}

func (controller *BooksController) List(c *gin.Context) {
	listings, err := controller.store.List()
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": listings, "count": len(listings)})
}

func (controller *BooksController) Get(c *gin.Context) {
	isbn := c.Param("isbn")
	if isbn == "" {
		respondBadRequest(c, "invalid isbn")
		return
	}

	detail, err := controller.store.Get(isbn)
	if err != nil {
		respondDomainError(c, err, "get book")
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (controller *BooksController) Create(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if err := req.validate(true); err != nil {
		respondDomainError(c, err, "create book")
		return
	}

	book := &entities.Book{
		ISBN:            req.ISBN,
		Title:           req.Title,
		PublicationYear: req.PublicationYear,
		Edition:         req.Edition,
		PublisherID:     req.PublisherID,
	}
	err := controller.store.Add(book, req.AuthorIDs, req.CategoryIDs, req.CopyCount)
	if controller.auditor != nil {
		controller.auditor.LogCatalogChange("book", book.ISBN, "add", "Added book "+book.Title, err)
	}
	if err != nil {
		respondDomainError(c, err, "create book")
		return
	}
	respondCreated(c, book)
}

func (controller *BooksController) Update(c *gin.Context) {
	isbn := c.Param("isbn")
	if isbn == "" {
		respondBadRequest(c, "invalid isbn")
		return
	}

	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if err := req.validate(false); err != nil {
		respondDomainError(c, err, "update book")
		return
	}

	book := &entities.Book{
		ISBN:            isbn,
		Title:           req.Title,
		PublicationYear: req.PublicationYear,
		Edition:         req.Edition,
		PublisherID:     req.PublisherID,
	}
	err := controller.store.Update(book, req.AuthorIDs, req.CategoryIDs)
	if controller.auditor != nil {
		controller.auditor.LogCatalogChange("book", isbn, "update", "Updated book "+book.Title, err)
	}
	if err != nil {
		respondDomainError(c, err, "update book")
		return
	}
	c.JSON(http.StatusOK, book)
}

func (controller *BooksController) Delete(c *gin.Context) {
	isbn := c.Param("isbn")
	if isbn == "" {
		respondBadRequest(c, "invalid isbn")
		return
	}

	err := controller.store.Delete(isbn)
	if controller.auditor != nil {
		controller.auditor.LogDelete("book", isbn, isbn, err)
	}
	if err != nil {
		respondDomainError(c, err, "delete book")
		return
	}
	respondSuccess(c, "book deleted")
}
