package handlers

import (
	"fmt"
	"net/http"
	"time"

	"stargate/internal/apperrors"
	"stargate/internal/models"
	"stargate/internal/services"

	"github.com/gin-gonic/gin"
)

type AstronautDutyHandler struct {
	personService *services.PersonService
	dutyService   *services.AstronautDutyService
}

func NewAstronautDutyHandler(personService *services.PersonService,
	dutyService *services.AstronautDutyService) *AstronautDutyHandler {
	return &AstronautDutyHandler{
		personService: personService,
		dutyService:   dutyService,
	}
}

type createDutyRequest struct {
	Name          string `json:"name"`
	Rank          string `json:"rank"`
	DutyTitle     string `json:"dutyTitle"`
	DutyStartDate string `json:"dutyStartDate"`
}

// CreateAstronautDuty records a new duty assignment for a person by name
func (h *AstronautDutyHandler) CreateAstronautDuty(c *gin.Context) {
	var req createDutyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, BaseResponse{
			Success:      false,
			Message:      "Invalid request body",
			ResponseCode: http.StatusBadRequest,
		})
		return
	}

	startDate, err := parseDutyDate(req.DutyStartDate)
	if err != nil {
		respondError(c, err)
		return
	}

	person, err := h.personService.GetByName(req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	duty, err := h.dutyService.RecordDuty(person.ID, req.Rank, req.DutyTitle, startDate)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Astronaut duty created", duty)
}

type dutyHistoryResponse struct {
	Person *models.Person          `json:"person"`
	Duties []*models.AstronautDuty `json:"astronautDuties"`
}

// GetAstronautDutiesByName retrieves a person and their full duty history
func (h *AstronautDutyHandler) GetAstronautDutiesByName(c *gin.Context) {
	name := c.Param("name")

	person, duties, err := h.dutyService.HistoryForName(name)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Astronaut duties retrieved", dutyHistoryResponse{
		Person: person,
		Duties: duties,
	})
}

// parseDutyDate accepts a calendar date, with or without a time component
func parseDutyDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: duty start date is required", apperrors.ErrInvalidInput)
	}

	for _, layout := range []string{models.DateFormat, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: unparseable duty start date %q", apperrors.ErrInvalidInput, value)
}
