package xlsexport

import "github.com/xuri/excelize/v2"

const (
	fontFamily  = "Calibri"
	fontSize    = 11
	columnWidth = 28
)

func writeCell(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}

func setRangeStyle(f *excelize.File, sheet string, style *excelize.Style, colFrom, rowFrom, colTo, rowTo int) error {
	styleID, err := f.NewStyle(style)
	if err != nil {
		return err
	}
	cellFirst, err := excelize.CoordinatesToCellName(colFrom, rowFrom)
	if err != nil {
		return err
	}
	cellLast, err := excelize.CoordinatesToCellName(colTo, rowTo)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cellFirst, cellLast, styleID)
}

// writeHeader пишет заголовок в строку row+1 и возвращает номер этой строки
func writeHeader(f *excelize.File, sheet string, row int, headers []string) (int, error) {
	row++
	style := &excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Font:      &excelize.Font{Bold: true, Family: fontFamily, Size: fontSize},
	}
	if err := setRangeStyle(f, sheet, style, 1, row, len(headers), row); err != nil {
		return row, err
	}
	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return row, err
	}
	if err = f.SetColWidth(sheet, "A", lastCol, columnWidth); err != nil {
		return row, err
	}
	for idx, value := range headers {
		if err = writeCell(f, sheet, idx+1, row, value); err != nil {
			return row, err
		}
	}
	return row, nil
}

func applyDataStyle(f *excelize.File, sheet string, colFrom, rowFrom, colTo, rowTo int) error {
	style := &excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center", WrapText: true},
		Font:      &excelize.Font{Family: fontFamily, Size: fontSize},
	}
	return setRangeStyle(f, sheet, style, colFrom, rowFrom, colTo, rowTo)
}
