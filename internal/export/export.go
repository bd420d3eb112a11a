// Package export produces an XLSX inventory of the building index, one sheet
// per floor, for hand-off to facilities staff.
package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/kortnav/rumfinder/internal/index"
)

const entrancesSheet = "Entrances"

// Workbook renders the building index as XLSX bytes. Floor sheets list each
// room with its normalized position in index order; the entrances sheet
// lists the ground-floor entrance points.
func Workbook(b *index.Building) ([]byte, error) {
	f := excelize.NewFile()

	for i, idx := range b.Floors() {
		sheet := sheetName(string(idx.Floor))
		if i == 0 {
			// Rename the default sheet instead of leaving an empty Sheet1.
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}

		headers := []string{"Room", "X", "Y", "Document"}
		for col, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			_ = f.SetCellValue(sheet, cell, h)
		}

		row := 2
		for _, name := range idx.RoomNames() {
			p, _ := idx.Room(name)
			write := func(col int, v any) {
				cell, _ := excelize.CoordinatesToCellName(col, row)
				_ = f.SetCellValue(sheet, cell, v)
			}
			write(1, name)
			write(2, p.X)
			write(3, p.Y)
			write(4, idx.Path)
			row++
		}

		_ = f.SetColWidth(sheet, "A", "A", 18)
		_ = f.SetColWidth(sheet, "B", "C", 12)
		_ = f.SetColWidth(sheet, "D", "D", 48)
	}

	if _, err := f.NewSheet(entrancesSheet); err != nil {
		return nil, err
	}
	for col, h := range []string{"Floor", "X", "Y"} {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(entrancesSheet, cell, h)
	}
	ground := b.Ground()
	for i, p := range ground.Entrances {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, i+2)
			_ = f.SetCellValue(entrancesSheet, cell, v)
		}
		write(1, string(ground.Floor))
		write(2, p.X)
		write(3, p.Y)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile writes the workbook for b to path.
func WriteFile(path string, b *index.Building) error {
	data, err := Workbook(b)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// sheetName makes a floor id presentable as an Excel sheet name.
func sheetName(floor string) string {
	s := strings.ReplaceAll(floor, "_", " ")
	if s == "" {
		return "Floor"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
