package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"stargate/internal/repositories"
	"stargate/internal/services"
	"stargate/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	db := testutil.OpenTestDB(t)

	personRepo := repositories.NewPersonRepository(db, false)
	dutyRepo := repositories.NewAstronautDutyRepository(db)
	personService := services.NewPersonService(personRepo)
	dutyService := services.NewAstronautDutyService(db, personRepo, dutyRepo, "RETIRED")
	exportService := services.NewExportService(personRepo, dutyRepo)

	personHandler := NewPersonHandler(personService, exportService)
	dutyHandler := NewAstronautDutyHandler(personService, dutyService)
	healthHandler := NewHealthHandler()

	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.POST("/person", personHandler.CreatePerson)
	router.GET("/person", personHandler.GetPeople)
	router.GET("/person/:name", personHandler.GetPersonByName)
	router.GET("/export/roster", personHandler.ExportRoster)
	router.POST("/astronautduty", dutyHandler.CreateAstronautDuty)
	router.GET("/astronautduty/:name", dutyHandler.GetAstronautDutiesByName)
	router.GET("/health", healthHandler.HealthCheck)

	return router
}

func performJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}

	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) BaseResponse {
	t.Helper()

	var resp BaseResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestCreatePersonEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("creates person", func(t *testing.T) {
		w := performJSON(router, http.MethodPost, "/person", gin.H{"name": "Daniel Jackson"})
		assert.Equal(t, http.StatusCreated, w.Code)

		resp := decodeResponse(t, w)
		assert.True(t, resp.Success)
		assert.Equal(t, http.StatusCreated, resp.ResponseCode)
	})

	t.Run("duplicate name returns conflict", func(t *testing.T) {
		w := performJSON(router, http.MethodPost, "/person", gin.H{"name": "Daniel Jackson"})
		assert.Equal(t, http.StatusConflict, w.Code)

		resp := decodeResponse(t, w)
		assert.False(t, resp.Success)
	})

	t.Run("empty name returns bad request", func(t *testing.T) {
		w := performJSON(router, http.MethodPost, "/person", gin.H{"name": ""})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetPersonEndpoints(t *testing.T) {
	router := setupTestRouter(t)

	performJSON(router, http.MethodPost, "/person", gin.H{"name": "Samantha Carter"})

	t.Run("get by name", func(t *testing.T) {
		w := performJSON(router, http.MethodGet, "/person/Samantha%20Carter", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		resp := decodeResponse(t, w)
		assert.True(t, resp.Success)
	})

	t.Run("unknown name returns not found", func(t *testing.T) {
		w := performJSON(router, http.MethodGet, "/person/Nobody", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("list people", func(t *testing.T) {
		w := performJSON(router, http.MethodGet, "/person", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		resp := decodeResponse(t, w)
		people, ok := resp.Data.([]interface{})
		require.True(t, ok)
		assert.Len(t, people, 1)
	})
}

func TestCreateAstronautDutyEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	performJSON(router, http.MethodPost, "/person", gin.H{"name": "John Shepard"})

	t.Run("creates duty", func(t *testing.T) {
		w := performJSON(router, http.MethodPost, "/astronautduty", gin.H{
			"name":          "John Shepard",
			"rank":          "2LT",
			"dutyTitle":     "Pilot",
			"dutyStartDate": "2020-01-01",
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown person returns not found", func(t *testing.T) {
		w := performJSON(router, http.MethodPost, "/astronautduty", gin.H{
			"name":          "Nobody",
			"rank":          "2LT",
			"dutyTitle":     "Pilot",
			"dutyStartDate": "2020-01-01",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unparseable date returns bad request", func(t *testing.T) {
		w := performJSON(router, http.MethodPost, "/astronautduty", gin.H{
			"name":          "John Shepard",
			"rank":          "2LT",
			"dutyTitle":     "Pilot",
			"dutyStartDate": "January 1st",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("backdated duty returns bad request", func(t *testing.T) {
		w := performJSON(router, http.MethodPost, "/astronautduty", gin.H{
			"name":          "John Shepard",
			"rank":          "1LT",
			"dutyTitle":     "Pilot",
			"dutyStartDate": "2019-01-01",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetAstronautDutiesEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	performJSON(router, http.MethodPost, "/person", gin.H{"name": "John Shepard"})
	performJSON(router, http.MethodPost, "/astronautduty", gin.H{
		"name":          "John Shepard",
		"rank":          "2LT",
		"dutyTitle":     "Pilot",
		"dutyStartDate": "2020-01-01",
	})
	performJSON(router, http.MethodPost, "/astronautduty", gin.H{
		"name":          "John Shepard",
		"rank":          "1LT",
		"dutyTitle":     "Pilot",
		"dutyStartDate": "2021-06-01",
	})

	w := performJSON(router, http.MethodGet, "/astronautduty/John%20Shepard", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Person struct {
				Name        string `json:"name"`
				CurrentRank string `json:"currentRank"`
			} `json:"person"`
			Duties []struct {
				Rank          string  `json:"rank"`
				DutyStartDate string  `json:"dutyStartDate"`
				DutyEndDate   *string `json:"dutyEndDate"`
			} `json:"astronautDuties"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Equal(t, "John Shepard", resp.Data.Person.Name)
	assert.Equal(t, "1LT", resp.Data.Person.CurrentRank)
	require.Len(t, resp.Data.Duties, 2)
	require.NotNil(t, resp.Data.Duties[0].DutyEndDate)
	assert.Contains(t, *resp.Data.Duties[0].DutyEndDate, "2021-05-31")
	assert.Nil(t, resp.Data.Duties[1].DutyEndDate)
}

func TestExportRosterEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	performJSON(router, http.MethodPost, "/person", gin.H{"name": "Samantha Carter"})

	w := performJSON(router, http.MethodGet, "/export/roster", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.NotZero(t, w.Body.Len())
}

func TestHealthEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	w := performJSON(router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
