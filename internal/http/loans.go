package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/database"
	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/entities"
)

// DefaultLoanPeriodDays is applied when an issue request omits the due date.
const DefaultLoanPeriodDays = 14

type LoansController struct {
	store   LoanStore
	auditor Auditor
}

func NewLoansController(store LoanStore, auditor Auditor) *LoansController {
	return &LoansController{store: store, auditor: auditor}
}

type issueRequest struct {
	CopyID    int    `json:"copy_id"`
	ISBN      string `json:"isbn"`
	MemberID  int    `json:"member_id"`
	IssueDate string `json:"issue_date"`
	DueDate   string `json:"due_date"`
}

func (r *issueRequest) validate() error {
	if r.CopyID <= 0 && r.ISBN == "" {
		return &ValidationError{Field: "copy_id", Reason: "either copy_id or isbn is required"}
	}
	if r.MemberID <= 0 {
		return &ValidationError{Field: "member_id", Reason: "is required"}
	}
	if err := validDate("issue_date", r.IssueDate); err != nil {
		return err
	}
	if err := validDate("due_date", r.DueDate); err != nil {
		return err
	}
	return nil
}

type returnRequest struct {
	ReturnDate string `json:"return_date"`
}

type addCopyRequest struct {
	ISBN          string `json:"isbn"`
	ShelfLocation string `json:"shelf_location"`
}

func (controller *LoansController) List(c *gin.Context) {
	if c.Query("active") == "true" {
		active, err := controller.store.ListActive()
		if err != nil {
			respondInternalError(c, err, "list active loans")
			return
		}
		c.JSON(http.StatusOK, gin.H{"loans": active, "count": len(active)})
		return
	}
	all, err := controller.store.List()
	if err != nil {
		respondInternalError(c, err, "list loans")
		return
	}
	c.JSON(http.StatusOK, gin.H{"loans": all, "count": len(all)})
}

func (controller *LoansController) AvailableBooks(c *gin.Context) {
	available, err := controller.store.AvailableBooks()
	if err != nil {
		respondInternalError(c, err, "list available books")
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": available, "count": len(available)})
}

func (controller *LoansController) AvailableCopies(c *gin.Context) {
	copies, err := controller.store.AvailableCopies()
	if err != nil {
		respondInternalError(c, err, "list available copies")
		return
	}
	c.JSON(http.StatusOK, gin.H{"copies": copies, "count": len(copies)})
}

func (controller *LoansController) Overdue(c *gin.Context) {
	overdue, err := controller.store.Overdue()
	if err != nil {
		respondInternalError(c, err, "list overdue loans")
		return
	}
	c.JSON(http.StatusOK, gin.H{"loans": overdue, "count": len(overdue)})
}

// Issue lends a copy to a member. The caller may name an exact copy or just
// an ISBN, in which case the first available copy of that book is used.
func (controller *LoansController) Issue(c *gin.Context) {
	var req issueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		respondDomainError(c, err, "issue loan")
		return
	}

	copyID := req.CopyID
	if copyID <= 0 {
		resolved, found, err := controller.store.FirstAvailableCopy(req.ISBN)
		if err != nil {
			respondDomainError(c, err, "issue loan")
			return
		}
		if !found {
			respondDomainError(c, database.ErrCopyNotAvailable, "issue loan")
			return
		}
		copyID = resolved
	}

	issueDate := req.IssueDate
	if issueDate == "" {
		issueDate = time.Now().Format(entities.DateFormat)
	}
	dueDate := req.DueDate
	if dueDate == "" {
		issued, err := time.Parse(entities.DateFormat, issueDate)
		if err != nil {
			respondBadRequest(c, "invalid issue_date")
			return
		}
		dueDate = issued.AddDate(0, 0, DefaultLoanPeriodDays).Format(entities.DateFormat)
	}

	loan, err := controller.store.Issue(copyID, req.MemberID, issueDate, dueDate)
	if controller.auditor != nil {
		key := strconv.Itoa(copyID)
		if loan != nil {
			key = strconv.Itoa(loan.ID)
		}
		controller.auditor.LogLoan("issue", key,
			"Issued copy "+strconv.Itoa(copyID)+" to member "+strconv.Itoa(req.MemberID), err)
	}
	if err != nil {
		respondDomainError(c, err, "issue loan")
		return
	}
	respondCreated(c, loan)
}

// Return closes a loan and releases its copy. A second return of the same
// loan is rejected so the first recorded return date stands.
func (controller *LoansController) Return(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req returnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if err := validDate("return_date", req.ReturnDate); err != nil {
		respondDomainError(c, err, "return loan")
		return
	}

	returnDate := req.ReturnDate
	if returnDate == "" {
		returnDate = time.Now().Format(entities.DateFormat)
	}

	err := controller.store.Return(id, returnDate)
	if controller.auditor != nil {
		controller.auditor.LogLoan("return", strconv.Itoa(id),
			"Returned loan "+strconv.Itoa(id), err)
	}
	if err != nil {
		respondDomainError(c, err, "return loan")
		return
	}
	respondSuccess(c, "loan returned")
}

func (controller *LoansController) AddCopy(c *gin.Context) {
	var req addCopyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if err := required("isbn", req.ISBN); err != nil {
		respondDomainError(c, err, "add copy")
		return
	}

	copy, err := controller.store.AddCopy(req.ISBN, req.ShelfLocation)
	if controller.auditor != nil {
		key := req.ISBN
		if copy != nil {
			key = strconv.Itoa(copy.ID)
		}
		controller.auditor.LogCatalogChange("copy", key, "add",
			"Added copy of "+req.ISBN, err)
	}
	if err != nil {
		respondDomainError(c, err, "add copy")
		return
	}
	respondCreated(c, copy)
}
