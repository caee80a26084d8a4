package handlers

import (
	"fmt"
	"net/http"

	"stargate/internal/services"

	"github.com/gin-gonic/gin"
)

type PersonHandler struct {
	personService *services.PersonService
	exportService *services.ExportService
}

func NewPersonHandler(personService *services.PersonService, exportService *services.ExportService) *PersonHandler {
	return &PersonHandler{
		personService: personService,
		exportService: exportService,
	}
}

type createPersonRequest struct {
	Name string `json:"name"`
}

// CreatePerson registers a new person by unique name
func (h *PersonHandler) CreatePerson(c *gin.Context) {
	var req createPersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, BaseResponse{
			Success:      false,
			Message:      "Invalid request body",
			ResponseCode: http.StatusBadRequest,
		})
		return
	}

	person, err := h.personService.Register(req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, "Person created", person)
}

// GetPeople lists all people with their current career status
func (h *PersonHandler) GetPeople(c *gin.Context) {
	people, err := h.personService.List()
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "People retrieved", people)
}

// GetPersonByName retrieves one person by display name
func (h *PersonHandler) GetPersonByName(c *gin.Context) {
	name := c.Param("name")

	person, err := h.personService.GetByName(name)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Person retrieved", person)
}

// ExportRoster streams an xlsx workbook of the roster and duty history
func (h *PersonHandler) ExportRoster(c *gin.Context) {
	workbook, err := h.exportService.RosterWorkbook()
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "astronaut-roster.xlsx"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := workbook.Write(c.Writer); err != nil {
		respondError(c, err)
	}
}
