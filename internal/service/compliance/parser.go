package compliance

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/prolyhq/payroll-backend-go/internal/domain/compliance"
)

// defaultPagIBIGCap applies when an uploaded Pag-IBIG table omits its
// Maximum row.
var defaultPagIBIGCap = decimal.NewFromInt(100)

// ParseFile parses one uploaded rate-table document into a normalized
// bracket table. CSV and xlsx are supported; any other extension is an
// error. A document that parses but yields no brackets comes back Empty,
// which callers treat as a signal to fall back to the built-in defaults.
func ParseFile(typ compliance.Type, path string) (compliance.BracketTable, error) {
	rows, err := readRows(path)
	if err != nil {
		return compliance.BracketTable{Type: typ}, err
	}

	table := compliance.BracketTable{Type: typ, MaxContribution: defaultPagIBIGCap}

	switch typ {
	case compliance.TypeSSS:
		table.Contribution = parseSSSRows(rows)
	case compliance.TypePhilHealth:
		table.Contribution = parseShareRows(rows, "Monthly Salary")
	case compliance.TypePagIBIG:
		table.Contribution, table.MaxContribution = parsePagIBIGRows(rows)
	case compliance.TypeTax:
		table.Tax = parseTaxRows(rows)
	default:
		return compliance.BracketTable{Type: typ}, compliance.ErrInvalidComplianceType
	}

	return table, nil
}

// readRows loads the document into header-keyed records, one map per data
// row. Header matching is exact; missing columns read as empty strings.
func readRows(path string) ([]map[string]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSVRows(path)
	case ".xlsx", ".xls":
		return readExcelRows(path)
	default:
		return nil, compliance.ErrUnsupportedFileFormat
	}
}

func readCSVRows(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rate table file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read rate table csv: %w", err)
	}
	if len(records) < 2 {
		return nil, nil
	}

	return zipRows(records[0], records[1:]), nil
}

func readExcelRows(path string) ([]map[string]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rate table workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rate table sheet: %w", err)
	}
	if len(records) < 2 {
		return nil, nil
	}

	return zipRows(records[0], records[1:]), nil
}

func zipRows(header []string, data [][]string) []map[string]string {
	var rows []map[string]string
	for _, record := range data {
		row := make(map[string]string, len(header))
		empty := true
		for i, name := range header {
			var value string
			if i < len(record) {
				value = strings.TrimSpace(record[i])
			}
			if value != "" {
				empty = false
			}
			row[strings.TrimSpace(name)] = value
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows
}

// parseSSSRows reads fixed employee/employer shares keyed by a
// "min-max" Salary Range column. Malformed rows are skipped.
func parseSSSRows(rows []map[string]string) []compliance.ContributionBracket {
	var brackets []compliance.ContributionBracket
	for _, row := range rows {
		min, max, ok := parseRange(row["Salary Range"])
		if !ok {
			continue
		}
		empShare, err := decimal.NewFromString(orZero(row["Employee Share"]))
		if err != nil {
			continue
		}
		b := compliance.ContributionBracket{Min: min, Max: max, EmployeeShare: &empShare}
		if emrShare, err := decimal.NewFromString(orZero(row["Employer Share"])); err == nil {
			b.EmployerShare = &emrShare
		}
		brackets = append(brackets, b)
	}
	return brackets
}

// parseShareRows reads brackets whose shares may be a fixed amount or a
// percentage of gross ("3.00%"), keyed by the named salary column.
func parseShareRows(rows []map[string]string, rangeColumn string) []compliance.ContributionBracket {
	var brackets []compliance.ContributionBracket
	for _, row := range rows {
		min, max, ok := parseRange(row[rangeColumn])
		if !ok {
			continue
		}
		b := compliance.ContributionBracket{Min: min, Max: max}
		if !parseShare(row["Employee Share"], &b.EmployeeShare, &b.EmployeeRate) {
			continue
		}
		parseShare(row["Employer Share"], &b.EmployerShare, &b.EmployerRate)
		brackets = append(brackets, b)
	}
	return brackets
}

// parsePagIBIGRows is parseShareRows plus the special "Maximum" row that
// caps the contribution.
func parsePagIBIGRows(rows []map[string]string) ([]compliance.ContributionBracket, decimal.Decimal) {
	maxContribution := defaultPagIBIGCap
	var remaining []map[string]string
	for _, row := range rows {
		label := row["Monthly Salary"]
		if strings.Contains(label, "Maximum") || strings.Contains(label, "Max") {
			if ceiling, err := decimal.NewFromString(orZero(row["Employee Share"])); err == nil {
				maxContribution = ceiling
			}
			continue
		}
		remaining = append(remaining, row)
	}
	return parseShareRows(remaining, "Monthly Salary"), maxContribution
}

// parseTaxRows reads the BIR ladder: from, to, base tax and the marginal
// rate over the excess. A blank "To" leaves the bracket open-ended.
func parseTaxRows(rows []map[string]string) []compliance.TaxBracket {
	var brackets []compliance.TaxBracket
	for _, row := range rows {
		from, err := decimal.NewFromString(orZero(row["Taxable Income From"]))
		if err != nil {
			continue
		}
		base, err := decimal.NewFromString(orZero(row["Base Tax"]))
		if err != nil {
			continue
		}
		rate, ok := parsePercent(row["Rate Over"])
		if !ok {
			continue
		}
		b := compliance.TaxBracket{From: from, BaseTax: base, Rate: rate}
		if to := row["To"]; to != "" && to != "+" {
			upper, err := decimal.NewFromString(to)
			if err != nil {
				continue
			}
			b.To = &upper
		}
		brackets = append(brackets, b)
	}
	return brackets
}

// parseRange splits "min-max" into bounds. A max of "+" (as in "80001+")
// means open-ended; the separator form "1501+" is normalized beforehand.
func parseRange(s string) (decimal.Decimal, *decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "+") && !strings.Contains(s, "-") {
		s = strings.TrimSuffix(s, "+") + "-+"
	}
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return decimal.Decimal{}, nil, false
	}
	min, err := decimal.NewFromString(strings.TrimSpace(parts[0]))
	if err != nil {
		return decimal.Decimal{}, nil, false
	}
	upper := strings.TrimSpace(parts[1])
	if upper == "+" {
		return min, nil, true
	}
	max, err := decimal.NewFromString(upper)
	if err != nil {
		return decimal.Decimal{}, nil, false
	}
	return min, &max, true
}

// parseShare fills either the fixed amount or the fractional rate from a
// cell like "300.00" or "3.00%".
func parseShare(s string, fixed **decimal.Decimal, rate **float64) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if strings.Contains(s, "%") {
		r, ok := parsePercent(s)
		if !ok {
			return false
		}
		*rate = &r
		return true
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}
	*fixed = &d
	return true
}

// parsePercent converts "20%" to 0.20. A bare number is read as a percent
// figure too, matching how the tables are authored.
func parsePercent(s string) (float64, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v / 100, true
}

func orZero(s string) string {
	if strings.TrimSpace(s) == "" {
		return "0"
	}
	return strings.TrimSpace(s)
}
