// Package report renders reconciliation results into the deliverable
// formats: the make-ready XLSX workbook, a GeoJSON pole summary, and a
// point shapefile for GIS tooling.
package report

import (
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/rkwm713/makeready-cli/internal/model"
	"github.com/rkwm713/makeready-cli/internal/units"
)

const sheetName = "Make Ready Report"

var xlsxColumns = []string{
	"Operation Number",
	"Attachment Action",
	"Pole Owner",
	"Pole #",
	"Pole Structure",
	"Proposed Riser",
	"Proposed Guy",
	"PLA (%)",
	"Construction Grade",
	"Lowest Com Mid-Span",
	"Lowest CPS Electrical Mid-Span",
	"Attacher",
	"Existing Height",
	"Proposed Height",
	"Mid-Span Height",
	"Notes",
}

// WriteXLSX writes the make-ready workbook. Each pole occupies a block of
// rows: the pole-level columns are filled on the block's first row only,
// the way reviewers expect merged-cell reports to read.
func WriteXLSX(path string, result *model.RunResult) error {
	f, err := buildXLSX(result)
	if err != nil {
		return err
	}
	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "report: save %s", path)
	}
	return nil
}

// EncodeXLSX streams the make-ready workbook to w.
func EncodeXLSX(w io.Writer, result *model.RunResult) error {
	f, err := buildXLSX(result)
	if err != nil {
		return err
	}
	return eris.Wrap(f.Write(w), "report: encode xlsx")
}

func buildXLSX(result *model.RunResult) (*xlsx.File, error) {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(sheetName)
	if err != nil {
		return nil, eris.Wrap(err, "report: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range xlsxColumns {
		header.AddCell().SetString(col)
	}

	for i := range result.Poles {
		writePole(sheet, i+1, &result.Poles[i])
	}
	return f, nil
}

func writePole(sheet *xlsx.Sheet, operation int, rec *model.PoleRecord) {
	comm, elec, underground := model.PrimaryMidspans(rec.Spans)
	commStr, elecStr := units.FormatHeight(comm), units.FormatHeight(elec)
	if underground && comm == nil {
		commStr = model.UG
	}
	if underground && elec == nil {
		elecStr = model.UG
	}

	rows := rec.Rows
	if len(rows) == 0 {
		// a pole with no attachments still gets its summary line
		rows = []model.Row{{Kind: model.RowAttachment}}
	}

	for i, r := range rows {
		row := sheet.AddRow()
		if i == 0 {
			row.AddCell().SetString(fmt.Sprintf("%d", operation))
			row.AddCell().SetString(string(rec.Action))
			row.AddCell().SetString(rec.Attributes.Owner)
			row.AddCell().SetString(rec.Number)
			row.AddCell().SetString(rec.Attributes.Structure)
			row.AddCell().SetString(rec.Attributes.ProposedRisers)
			row.AddCell().SetString(rec.Attributes.ProposedGuys)
			row.AddCell().SetString(rec.Attributes.LoadingPercent)
			row.AddCell().SetString(rec.Attributes.ConstructionGrade)
			row.AddCell().SetString(commStr)
			row.AddCell().SetString(elecStr)
		} else {
			for range xlsxColumns[:11] {
				row.AddCell()
			}
		}

		switch r.Kind {
		case model.RowHeader:
			row.AddCell().SetString(r.Header)
		case model.RowAttachment:
			att := r.Attachment
			if att == nil {
				continue
			}
			row.AddCell().SetString(att.Description)
			row.AddCell().SetString(units.FormatHeight(att.ExistingHeight))
			row.AddCell().SetString(units.FormatHeight(att.ProposedHeight))
			if att.Underground {
				row.AddCell().SetString(model.UG)
			} else {
				row.AddCell().SetString(units.FormatHeight(att.MidspanHeight))
			}
			row.AddCell().SetString(att.Note)
		}
	}
}
