package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/entities"
)

type MembersController struct {
	store   MemberStore
	auditor Auditor
}

func NewMembersController(store MemberStore, auditor Auditor) *MembersController {
	return &MembersController{store: store, auditor: auditor}
}

type memberRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	JoinDate  string `json:"join_date"`
}

func (r *memberRequest) validate() error {
	if err := required("first_name", r.FirstName); err != nil {
		return err
	}
	if err := required("last_name", r.LastName); err != nil {
		return err
	}
	if err := validEmail("email", r.Email); err != nil {
		return err
	}
	if err := validDate("join_date", r.JoinDate); err != nil {
		return err
	}
	return nil
}

func (controller *MembersController) List(c *gin.Context) {
	members, err := controller.store.List()
	if err != nil {
		respondInternalError(c, err, "list members")
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members, "count": len(members)})
}

func (controller *MembersController) Create(c *gin.Context) {
	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		respondDomainError(c, err, "create member")
		return
	}

	member := &entities.Member{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		JoinDate:  req.JoinDate,
	}
	err := controller.store.Add(member)
	if controller.auditor != nil {
		controller.auditor.LogCatalogChange("member", strconv.Itoa(member.ID), "add",
			"Added member "+member.FirstName+" "+member.LastName, err)
	}
	if err != nil {
		respondDomainError(c, err, "create member")
		return
	}
	respondCreated(c, member)
}

func (controller *MembersController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		respondDomainError(c, err, "update member")
		return
	}

	member := &entities.Member{
		ID:        id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
	}
	err := controller.store.Update(member)
	if controller.auditor != nil {
		controller.auditor.LogCatalogChange("member", strconv.Itoa(id), "update",
			"Updated member "+member.FirstName+" "+member.LastName, err)
	}
	if err != nil {
		respondDomainError(c, err, "update member")
		return
	}
	c.JSON(http.StatusOK, member)
}

func (controller *MembersController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	err := controller.store.Delete(id)
	if controller.auditor != nil {
		controller.auditor.LogDelete("member", strconv.Itoa(id), strconv.Itoa(id), err)
	}
	if err != nil {
		respondDomainError(c, err, "delete member")
		return
	}
	respondSuccess(c, "member deleted")
}
