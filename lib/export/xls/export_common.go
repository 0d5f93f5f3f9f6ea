package xlsexport

import "github.com/xuri/excelize/v2"

const dateLayout = "02.01.2006"

func writeCell(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}

func newStyle(f *excelize.File, bold bool, horizontal string) (int, error) {
	return f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: horizontal,
			Vertical:   "center",
			WrapText:   !bold,
		},
		Font: &excelize.Font{
			Bold:   bold,
			Family: "Times New Roman",
			Size:   11,
		},
	})
}

func setRangeStyle(f *excelize.File, sheet string, style, colFrom, rowFrom, colTo, rowTo int) error {
	cellFirst, err := excelize.CoordinatesToCellName(colFrom, rowFrom)
	if err != nil {
		return err
	}
	cellLast, err := excelize.CoordinatesToCellName(colTo, rowTo)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cellFirst, cellLast, style)
}

// writeHeader заголовок таблицы в первой строке, возвращает номер последней заполненной строки
func writeHeader(f *excelize.File, sheet string, headers []string) (int, error) {
	row := 1
	style, err := newStyle(f, true, "center")
	if err != nil {
		return row, err
	}
	if err = setRangeStyle(f, sheet, style, 1, row, len(headers), row); err != nil {
		return row, err
	}
	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return row, err
	}
	if err = f.SetColWidth(sheet, "A", lastCol, 25); err != nil {
		return row, err
	}
	for idx, value := range headers {
		if err = writeCell(f, sheet, idx+1, row, value); err != nil {
			return row, err
		}
	}
	return row, nil
}

// writeRows каждая строка - набор значений по колонкам
func writeRows(f *excelize.File, sheet string, row int, rows [][]interface{}, colCount int) (int, error) {
	if len(rows) == 0 {
		return row, nil
	}
	style, err := newStyle(f, false, "left")
	if err != nil {
		return row, err
	}
	if err = setRangeStyle(f, sheet, style, 1, row+1, colCount, row+len(rows)); err != nil {
		return row, err
	}
	for _, values := range rows {
		row++
		for idx, value := range values {
			if value == nil {
				continue
			}
			if err = writeCell(f, sheet, idx+1, row, value); err != nil {
				return row, err
			}
		}
	}
	return row, nil
}
