// Package export renders tabular data as xlsx workbooks.
package export

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Table is a single sheet: a header row followed by data rows.
type Table struct {
	Sheet   string
	Headers []string
	Rows    [][]any
}

// XLSX writes t into a new workbook and returns its bytes.
func XLSX(t Table) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := t.Sheet
	if sheet == "" {
		sheet = "Sheet1"
	}
	if sheet != "Sheet1" {
		idx, err := f.NewSheet(sheet)
		if err != nil {
			return nil, fmt.Errorf("new sheet: %w", err)
		}
		f.SetActiveSheet(idx)
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return nil, fmt.Errorf("delete default sheet: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	for i, h := range t.Headers {
		c, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, c, h); err != nil {
			return nil, err
		}
		_ = f.SetCellStyle(sheet, c, c, headerStyle)
	}

	for r, row := range t.Rows {
		for i, v := range row {
			c, _ := excelize.CoordinatesToCellName(i+1, r+2)
			if err := f.SetCellValue(sheet, c, v); err != nil {
				return nil, err
			}
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}

// Attachment sends buf as a downloadable xlsx file.
func Attachment(c *gin.Context, filename string, buf *bytes.Buffer) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, ContentType, buf.Bytes())
}
