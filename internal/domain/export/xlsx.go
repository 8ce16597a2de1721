package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"cat-registry/internal/domain/cats"
)

const catsSheet = "Cats"

var catsHeader = []any{
	"ID", "Name", "Callname", "Gender", "Birthday", "Microchip", "Status",
	"Colour", "Titles", "Litter", "Neutered", "HCM tested", "PKD tested",
	"Dam", "Sire", "Owner", "Breeder", "Birth weight (g)", "Current weight (g)", "Notes",
}

func writeWorkbook(w io.Writer, items []cats.Cat, nm *names) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", catsSheet); err != nil {
		return fmt.Errorf("xlsx sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4F6D7A"}},
		Border: []excelize.Border{{Type: "bottom", Color: "#2F3E46", Style: 1}},
	})
	if err != nil {
		return fmt.Errorf("xlsx style: %w", err)
	}
	if err := f.SetSheetRow(catsSheet, "A1", &catsHeader); err != nil {
		return fmt.Errorf("xlsx header: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(catsHeader), 1)
	if err := f.SetCellStyle(catsSheet, "A1", last, header); err != nil {
		return fmt.Errorf("xlsx header style: %w", err)
	}

	for i, c := range items {
		row, err := catRow(c, nm)
		if err != nil {
			return err
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(catsSheet, cell, &row); err != nil {
			return fmt.Errorf("xlsx row %d: %w", i+2, err)
		}
	}

	_ = f.SetColWidth(catsSheet, "B", "B", 28)
	_ = f.SetColWidth(catsSheet, "N", "Q", 24)
	_ = f.SetColWidth(catsSheet, "T", "T", 40)
	_ = f.SetPanes(catsSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
	if len(items) > 0 {
		end, _ := excelize.CoordinatesToCellName(len(catsHeader), len(items)+1)
		_ = f.AutoFilter(catsSheet, "A1:"+end, nil)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

func catRow(c cats.Cat, nm *names) ([]any, error) {
	dam, err := nm.cat(c.DamID)
	if err != nil {
		return nil, err
	}
	sire, err := nm.cat(c.SireID)
	if err != nil {
		return nil, err
	}
	owner, err := nm.owner(c.OwnerID)
	if err != nil {
		return nil, err
	}
	breeder, err := nm.breeder(c.BreederID)
	if err != nil {
		return nil, err
	}

	return []any{
		c.ID,
		c.DisplayName(),
		c.Callname,
		string(c.Gender),
		c.Birthday.Format("2006-01-02"),
		c.Microchip,
		string(c.Status),
		c.Colour,
		c.Titles,
		c.LitterCode,
		yesNo(c.Neutered),
		yesNo(c.HCMTested),
		yesNo(c.PKDTested),
		dam,
		sire,
		owner,
		breeder,
		intOrEmpty(c.BirthWeightGrams),
		intOrEmpty(c.CurrentWeightGrams),
		c.Notes,
	}, nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func intOrEmpty(v *int) any {
	if v == nil {
		return ""
	}
	return *v
}
