package extract

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// extractExcel fills spreadsheet facts. Every sheet is streamed once:
// exact row counts need the full read, the first sampleRows data rows
// feed type inference. Legacy .xls workbooks fail to open and degrade
// to excel_error.
func (e *Extractor) extractExcel(rec *Record, path string) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		rec.ExcelError = err.Error()
		return
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	info := make(map[string]SheetInfo, len(sheets))
	for _, sheet := range sheets {
		si, err := readSheet(wb, sheet)
		if err != nil {
			rec.ExcelError = fmt.Sprintf("sheet %q: %v", sheet, err)
			return
		}
		info[sheet] = si
	}

	sheetCount := len(sheets)
	rec.SheetCount = &sheetCount
	rec.SheetNames = sheets
	rec.SheetsInfo = info
}

func readSheet(wb *excelize.File, sheet string) (SheetInfo, error) {
	rows, err := wb.Rows(sheet)
	if err != nil {
		return SheetInfo{}, err
	}
	defer rows.Close()

	var header []string
	var sample [][]string
	var total int64
	for rows.Next() {
		total++
		if total == 1 {
			if header, err = rows.Columns(); err != nil {
				return SheetInfo{}, err
			}
			continue
		}
		if len(sample) < sampleRows {
			cols, err := rows.Columns()
			if err != nil {
				return SheetInfo{}, err
			}
			sample = append(sample, cols)
		}
	}
	if err := rows.Error(); err != nil {
		return SheetInfo{}, err
	}

	dataRows := total - 1
	if dataRows < 0 {
		dataRows = 0
	}
	return SheetInfo{
		RowCount:    dataRows,
		ColumnCount: len(header),
		ColumnNames: header,
		DataTypes:   inferColumnTypes(header, sample),
	}, nil
}
