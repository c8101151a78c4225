package applications

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const rankingSheet = "Ranked Applicants"

var rankingHeaders = []string{
	"Rank", "Applicant", "Email", "ATS Score", "Status", "Years of Experience",
	"Relevant Experience", "Current Location", "Expected Salary", "Applied At",
}

// ExportRanking renders a job's ranking as an XLSX workbook.
func (s *Service) ExportRanking(ctx context.Context, jobID string) ([]byte, string, error) {
	listings, err := s.Ranking(ctx, jobID)
	if err != nil {
		return nil, "", err
	}
	data, err := RankingWorkbook(listings)
	if err != nil {
		return nil, "", err
	}
	return data, fmt.Sprintf("applications-%s.xlsx", jobID), nil
}

// RankingWorkbook writes listings, already in rank order, to a single-sheet workbook.
func RankingWorkbook(listings []Listing) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", rankingSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	for i, h := range rankingHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(rankingSheet, cell, h); err != nil {
			return nil, err
		}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(rankingHeaders))
	if err := f.SetCellStyle(rankingSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(rankingSheet, "A", "A", 8); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(rankingSheet, "B", lastCol, 22); err != nil {
		return nil, err
	}

	for i, l := range listings {
		name, email := "", ""
		if l.Applicant != nil {
			name = strings.TrimSpace(l.Applicant.FirstName + " " + l.Applicant.LastName)
			email = l.Applicant.Email
		}
		row := []any{
			i + 1,
			name,
			email,
			l.ATSScore,
			string(l.Status),
			l.YearsOfExperience,
			l.RelevantExperience,
			l.CurrentLocation,
			l.ExpectedSalary,
			l.AppliedAt.Format("2006-01-02 15:04"),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(rankingSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	if err := f.SetPanes(rankingSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
