package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/entities"
)

type PublishersController struct {
	store   PublisherStore
	auditor Auditor
}

func NewPublishersController(store PublisherStore, auditor Auditor) *PublishersController {
	return &PublishersController{store: store, auditor: auditor}
}

type publisherRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	ContactInfo string `json:"contact_info"`
}

func (r *publisherRequest) validate() error {
	return required("name", r.Name)
}

func (controller *PublishersController) List(c *gin.Context) {
	publishers, err := controller.store.List()
	if err != nil {
		respondInternalError(c, err, "list publishers")
		return
	}
	c.JSON(http.StatusOK, gin.H{"publishers": publishers, "count": len(publishers)})
}

func (controller *PublishersController) Create(c *gin.Context) {
	var req publisherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		respondDomainError(c, err, "create publisher")
		return
	}

	publisher := &entities.Publisher{Name: req.Name, Address: req.Address, ContactInfo: req.ContactInfo}
	err := controller.store.Add(publisher)
	if controller.auditor != nil {
		controller.auditor.LogCatalogChange("publisher", strconv.Itoa(publisher.ID), "add", "Added publisher "+publisher.Name, err)
	}
	if err != nil {
		respondDomainError(c, err, "create publisher")
		return
	}
	respondCreated(c, publisher)
}

func (controller *PublishersController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req publisherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		respondDomainError(c, err, "update publisher")
		return
	}

	publisher := &entities.Publisher{ID: id, Name: req.Name, Address: req.Address, ContactInfo: req.ContactInfo}
	err := controller.store.Update(publisher)
	if controller.auditor != nil {
		controller.auditor.LogCatalogChange("publisher", strconv.Itoa(id), "update", "Updated publisher "+publisher.Name, err)
	}
	if err != nil {
		respondDomainError(c, err, "update publisher")
		return
	}
	c.JSON(http.StatusOK, publisher)
}

func (controller *PublishersController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	err := controller.store.Delete(id)
	if controller.auditor != nil {
		controller.auditor.LogDelete("publisher", strconv.Itoa(id), strconv.Itoa(id), err)
	}
	if err != nil {
		respondDomainError(c, err, "delete publisher")
		return
	}
	respondSuccess(c, "publisher deleted")
}
