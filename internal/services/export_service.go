package services

import (
	"fmt"
	"time"

	"stargate/internal/apperrors"
	"stargate/internal/models"
	"stargate/internal/repositories"

	"github.com/xuri/excelize/v2"
)

// ExportService builds spreadsheet exports of the astronaut roster.
type ExportService struct {
	personRepo *repositories.PersonRepository
	dutyRepo   *repositories.AstronautDutyRepository
}

func NewExportService(personRepo *repositories.PersonRepository,
	dutyRepo *repositories.AstronautDutyRepository) *ExportService {
	return &ExportService{
		personRepo: personRepo,
		dutyRepo:   dutyRepo,
	}
}

// RosterWorkbook builds an xlsx workbook with a roster sheet of all people and
// their current status, and a duty history sheet with every duty period.
func (s *ExportService) RosterWorkbook() (*excelize.File, error) {
	people, err := s.personRepo.List()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	f := excelize.NewFile()

	rosterSheet := "Roster"
	f.SetSheetName("Sheet1", rosterSheet)

	rosterHeaders := []string{"Name", "Current Rank", "Current Duty Title", "Career Start", "Career End"}
	for i, header := range rosterHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(rosterSheet, cell, header)
	}

	for row, person := range people {
		values := []interface{}{
			person.Name,
			person.CurrentRank,
			person.CurrentDutyTitle,
			optionalDate(person.CareerStartDate),
			optionalDate(person.CareerEndDate),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(rosterSheet, cell, value)
		}
	}

	historySheet := "Duty History"
	if _, err := f.NewSheet(historySheet); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	historyHeaders := []string{"Name", "Rank", "Duty Title", "Start Date", "End Date"}
	for i, header := range historyHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(historySheet, cell, header)
	}

	row := 2
	for _, person := range people {
		duties, err := s.dutyRepo.ListByPersonID(person.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
		}

		for _, duty := range duties {
			end := "Still Active"
			if duty.EndDate != nil {
				end = duty.EndDate.Format(models.DateFormat)
			}
			values := []interface{}{
				person.Name,
				duty.Rank,
				duty.DutyTitle,
				duty.StartDate.Format(models.DateFormat),
				end,
			}
			for col, value := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row)
				f.SetCellValue(historySheet, cell, value)
			}
			row++
		}
	}

	return f, nil
}

func optionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(models.DateFormat)
}
