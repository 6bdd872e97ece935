package bulk

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/persistorai/tenantadmin/internal/models"
)

const xlsxSheet = "Users"

// FieldValue renders one exportable field of u. Arrays are joined with ';'
// and times use the audit timestamp layout.
func FieldValue(u *models.User, field string) string {
	switch field {
	case "id":
		return u.ID
	case "username":
		return u.Username
	case "email":
		return u.Email
	case "firstName":
		return u.FirstName
	case "lastName":
		return u.LastName
	case "status":
		return u.Status
	case "roles":
		return strings.Join(u.Roles, ";")
	case "organizationId":
		return u.OrganizationID
	case "lastLogin":
		if u.LastLogin == nil {
			return ""
		}

		return u.LastLogin.UTC().Format(models.TimestampLayout)
	case "createdAt":
		return u.CreatedAt.UTC().Format(models.TimestampLayout)
	case "updatedAt":
		return u.UpdatedAt.UTC().Format(models.TimestampLayout)
	default:
		return ""
	}
}

// WriteCSV renders users as CSV. Every value is double-quoted with embedded
// quotes doubled; the optional header line is not quoted. Lines are joined
// with '\n' and there is no trailing newline after the last row.
func WriteCSV(users []models.User, fields []string, headers bool) []byte {
	var b bytes.Buffer

	if headers {
		b.WriteString(strings.Join(fields, ","))
		b.WriteByte('\n')
	}

	for i := range users {
		if i > 0 {
			b.WriteByte('\n')
		}

		for j, f := range fields {
			if j > 0 {
				b.WriteByte(',')
			}

			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(FieldValue(&users[i], f), `"`, `""`))
			b.WriteByte('"')
		}
	}

	return b.Bytes()
}

// WriteTSV renders users as unquoted tab-separated text. Tabs and line
// breaks inside values become spaces.
func WriteTSV(users []models.User, fields []string, headers bool) []byte {
	var b bytes.Buffer
	clean := strings.NewReplacer("\t", " ", "\r", " ", "\n", " ")

	if headers {
		b.WriteString(strings.Join(fields, "\t"))
		b.WriteByte('\n')
	}

	for i := range users {
		if i > 0 {
			b.WriteByte('\n')
		}

		for j, f := range fields {
			if j > 0 {
				b.WriteByte('\t')
			}

			b.WriteString(clean.Replace(FieldValue(&users[i], f)))
		}
	}

	return b.Bytes()
}

// WriteXLSX renders users into a single-sheet workbook with a bold, frozen
// header row.
func WriteXLSX(users []models.User, fields []string, headers bool) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(xlsxSheet)
	if err != nil {
		return nil, fmt.Errorf("creating sheet: %w", err)
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("removing default sheet: %w", err)
	}

	f.SetActiveSheet(index)

	row := 1

	if headers {
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return nil, fmt.Errorf("creating header style: %w", err)
		}

		for col, name := range fields {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, fmt.Errorf("header cell: %w", err)
			}

			if err := f.SetCellValue(xlsxSheet, cell, name); err != nil {
				return nil, fmt.Errorf("setting header %s: %w", cell, err)
			}

			if err := f.SetCellStyle(xlsxSheet, cell, cell, style); err != nil {
				return nil, fmt.Errorf("styling header %s: %w", cell, err)
			}
		}

		if err := f.SetPanes(xlsxSheet, &excelize.Panes{
			Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
		}); err != nil {
			return nil, fmt.Errorf("freezing header: %w", err)
		}

		row++
	}

	for i := range users {
		for col, name := range fields {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, fmt.Errorf("data cell: %w", err)
			}

			if err := f.SetCellStr(xlsxSheet, cell, FieldValue(&users[i], name)); err != nil {
				return nil, fmt.Errorf("setting %s: %w", cell, err)
			}
		}

		row++
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}

	return buf.Bytes(), nil
}

// Template is the downloadable import template: the header and one example row.
const Template = "username,email,firstName,lastName,status,organizationId\n" +
	"john.doe,john.doe@company.com,John,Doe,active,org-1\n"
