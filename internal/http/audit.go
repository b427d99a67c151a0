package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/entities"
)

type AuditController struct {
	store AuditStore
}

func NewAuditController(store AuditStore) *AuditController {
	return &AuditController{store: store}
}

// List returns a page of audit events, newest first. An optional type query
// parameter narrows the page to a single event type.
func (controller *AuditController) List(c *gin.Context) {
	limit, offset := parsePagination(c)

	var (
		events []entities.AuditEvent
		total  int64
		err    error
	)
	if eventType := c.Query("type"); eventType != "" {
		events, total, err = controller.store.GetEventsByType(entities.AuditEventType(eventType), limit, offset)
	} else {
		events, total, err = controller.store.GetEvents(limit, offset)
	}
	if err != nil {
		respondInternalError(c, err, "list audit events")
		return
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Data:    events,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(events)) < total,
	})
}

// EntityHistory returns every recorded event for one entity, such as a
// single book or member.
func (controller *AuditController) EntityHistory(c *gin.Context) {
	entityType := c.Param("entityType")
	entityKey := c.Param("entityKey")
	if entityType == "" || entityKey == "" {
		respondBadRequest(c, "entity type and key are required")
		return
	}

	events, err := controller.store.GetEventsForEntity(entityType, entityKey)
	if err != nil {
		respondInternalError(c, err, "entity audit history")
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events, "count": len(events)})
}
