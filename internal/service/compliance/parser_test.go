package compliance

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/prolyhq/payroll-backend-go/internal/domain/compliance"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseFileSSS(t *testing.T) {
	path := writeCSV(t, "sss.csv", `Salary Range,Employee Share,Employer Share
0-3249.99,135.00,255.00
3250-3749.99,157.50,297.50
24750+,1125.00,2155.00
garbage row without a range,,
`)

	table, err := ParseFile(compliance.TypeSSS, path)
	require.NoError(t, err)
	require.Len(t, table.Contribution, 3)

	first := table.Contribution[0]
	assert.True(t, first.Min.IsZero())
	require.NotNil(t, first.Max)
	assert.Equal(t, "3249.99", first.Max.String())
	require.NotNil(t, first.EmployeeShare)
	assert.Equal(t, "135", first.EmployeeShare.String())
	require.NotNil(t, first.EmployerShare)
	assert.Equal(t, "255", first.EmployerShare.String())

	last := table.Contribution[2]
	assert.Nil(t, last.Max)
	assert.Equal(t, "24750", last.Min.String())
}

func TestParseFilePhilHealth(t *testing.T) {
	path := writeCSV(t, "philhealth.csv", `Monthly Salary,Employee Share,Employer Share
0-10000,300.00,300.00
10000.01-79999.99,3.00%,3.00%
80000+,2400.00,2400.00
`)

	table, err := ParseFile(compliance.TypePhilHealth, path)
	require.NoError(t, err)
	require.Len(t, table.Contribution, 3)

	fixed := table.Contribution[0]
	require.NotNil(t, fixed.EmployeeShare)
	assert.Equal(t, "300", fixed.EmployeeShare.String())
	assert.Nil(t, fixed.EmployeeRate)

	rated := table.Contribution[1]
	assert.Nil(t, rated.EmployeeShare)
	require.NotNil(t, rated.EmployeeRate)
	assert.InDelta(t, 0.03, *rated.EmployeeRate, 1e-9)

	open := table.Contribution[2]
	assert.Nil(t, open.Max)
}

func TestParseFilePagIBIG(t *testing.T) {
	path := writeCSV(t, "pagibig.csv", `Monthly Salary,Employee Share,Employer Share
0-1500,1.00%,2.00%
1500.01+,2.00%,2.00%
Maximum,200.00,200.00
`)

	table, err := ParseFile(compliance.TypePagIBIG, path)
	require.NoError(t, err)
	require.Len(t, table.Contribution, 2)
	assert.Equal(t, "200", table.MaxContribution.String())
}

func TestParseFilePagIBIGDefaultCap(t *testing.T) {
	path := writeCSV(t, "pagibig.csv", `Monthly Salary,Employee Share,Employer Share
0-1500,1.00%,2.00%
`)

	table, err := ParseFile(compliance.TypePagIBIG, path)
	require.NoError(t, err)
	assert.Equal(t, "100", table.MaxContribution.String())
}

func TestParseFileTax(t *testing.T) {
	path := writeCSV(t, "tax.csv", `Taxable Income From,To,Base Tax,Rate Over
0,20833,0,0%
20833,33333,0,20%
166667,+,40833.33,32%
`)

	table, err := ParseFile(compliance.TypeTax, path)
	require.NoError(t, err)
	require.Len(t, table.Tax, 3)

	second := table.Tax[1]
	assert.Equal(t, "20833", second.From.String())
	require.NotNil(t, second.To)
	assert.Equal(t, "33333", second.To.String())
	assert.InDelta(t, 0.20, second.Rate, 1e-9)

	top := table.Tax[2]
	assert.Nil(t, top.To)
	assert.Equal(t, "40833.33", top.BaseTax.String())
}

func TestParseFileXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sss.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Salary Range", "Employee Share", "Employer Share"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"0-3249.99", "135.00", "255.00"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := ParseFile(compliance.TypeSSS, path)
	require.NoError(t, err)
	require.Len(t, table.Contribution, 1)
	assert.Equal(t, "135", table.Contribution[0].EmployeeShare.String())
}

func TestParseFileUnsupportedExtension(t *testing.T) {
	path := writeCSV(t, "table.pdf", "not a spreadsheet")

	_, err := ParseFile(compliance.TypeSSS, path)
	assert.ErrorIs(t, err, compliance.ErrUnsupportedFileFormat)
}

func TestParseFileHeaderOnlyIsEmpty(t *testing.T) {
	path := writeCSV(t, "sss.csv", "Salary Range,Employee Share,Employer Share\n")

	table, err := ParseFile(compliance.TypeSSS, path)
	require.NoError(t, err)
	assert.True(t, table.Empty())
}
