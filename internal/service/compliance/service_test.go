package compliance

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prolyhq/payroll-backend-go/internal/domain/compliance"
)

func newTestService(t *testing.T) (*ComplianceServiceImpl, *fakeRateTableRepository, string) {
	t.Helper()
	repo := &fakeRateTableRepository{}
	uploadDir := t.TempDir()
	svc := &ComplianceServiceImpl{
		tables:     repo,
		calculator: NewCalculator(repo),
		uploadDir:  uploadDir,
		runTx: func(ctx context.Context, fn func(tx pgx.Tx) error) error {
			return fn(nil)
		},
	}
	return svc, repo, uploadDir
}

const sampleSSSCSV = `Salary Range,Employee Share,Employer Share
0-3249.99,135.00,255.00
3250+,500.00,900.00
`

func TestUploadRateTable(t *testing.T) {
	svc, repo, uploadDir := newTestService(t)

	resp, err := svc.Upload(context.Background(), compliance.UploadRateTableRequest{
		Type:          string(compliance.TypeSSS),
		Name:          "SSS 2026 schedule",
		EffectiveFrom: "2026-01-01",
	}, "sss_2026.csv", strings.NewReader(sampleSSSCSV))
	require.NoError(t, err)

	assert.Equal(t, string(compliance.TypeSSS), resp.Type)
	assert.Equal(t, 1, resp.Version)
	assert.Equal(t, "2026-01-01", resp.EffectiveFrom)

	stored := repo.tables[compliance.TypeSSS]
	require.NotNil(t, stored)
	assert.Equal(t, uploadDir, filepath.Dir(stored.SourceRef))
	_, err = os.Stat(stored.SourceRef)
	assert.NoError(t, err)
}

func TestUploadAssignsIncreasingVersions(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Upload(ctx, compliance.UploadRateTableRequest{
		Type:          string(compliance.TypeSSS),
		Name:          "SSS 2026 schedule",
		EffectiveFrom: "2026-01-01",
	}, "sss_v1.csv", strings.NewReader(sampleSSSCSV))
	require.NoError(t, err)

	second, err := svc.Upload(ctx, compliance.UploadRateTableRequest{
		Type:          string(compliance.TypeSSS),
		Name:          "SSS 2026 schedule, corrected",
		EffectiveFrom: "2026-01-01",
	}, "sss_v2.csv", strings.NewReader(sampleSSSCSV))
	require.NoError(t, err)

	assert.Equal(t, 1, first.Version)
	assert.Equal(t, 2, second.Version)
}

// Version assignment and the insert must share one transaction; when it
// rolls back, no version is burned and no table is registered.
func TestUploadRollsBackVersionWithInsert(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	rollback := assert.AnError
	svc.runTx = func(ctx context.Context, fn func(tx pgx.Tx) error) error {
		return rollback
	}

	_, err := svc.Upload(ctx, compliance.UploadRateTableRequest{
		Type:          string(compliance.TypeSSS),
		Name:          "SSS 2026 schedule",
		EffectiveFrom: "2026-01-01",
	}, "sss.csv", strings.NewReader(sampleSSSCSV))
	assert.ErrorIs(t, err, rollback)
	assert.Nil(t, repo.tables[compliance.TypeSSS])

	svc.runTx = func(ctx context.Context, fn func(tx pgx.Tx) error) error {
		return fn(nil)
	}
	resp, err := svc.Upload(ctx, compliance.UploadRateTableRequest{
		Type:          string(compliance.TypeSSS),
		Name:          "SSS 2026 schedule",
		EffectiveFrom: "2026-01-01",
	}, "sss.csv", strings.NewReader(sampleSSSCSV))
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Version)
}

func TestUploadRejectsUnsupportedExtension(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Upload(context.Background(), compliance.UploadRateTableRequest{
		Type:          string(compliance.TypeSSS),
		Name:          "SSS schedule",
		EffectiveFrom: "2026-01-01",
	}, "schedule.pdf", strings.NewReader(sampleSSSCSV))
	assert.ErrorIs(t, err, compliance.ErrUnsupportedFileFormat)
}

func TestUploadRejectsEmptyDocument(t *testing.T) {
	svc, repo, uploadDir := newTestService(t)

	_, err := svc.Upload(context.Background(), compliance.UploadRateTableRequest{
		Type:          string(compliance.TypeSSS),
		Name:          "Header only",
		EffectiveFrom: "2026-01-01",
	}, "empty.csv", strings.NewReader("Salary Range,Employee Share,Employer Share\n"))
	assert.ErrorIs(t, err, compliance.ErrEmptyRateTable)

	// Nothing registered, and the rejected file is cleaned up.
	assert.Nil(t, repo.tables[compliance.TypeSSS])
	leftovers, readErr := os.ReadDir(uploadDir)
	require.NoError(t, readErr)
	assert.Empty(t, leftovers)
}

func TestUploadValidatesRequest(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Upload(context.Background(), compliance.UploadRateTableRequest{
		Type:          "GSIS",
		Name:          "",
		EffectiveFrom: "January 1",
	}, "table.csv", strings.NewReader(sampleSSSCSV))
	assert.Error(t, err)
}

func TestHistoryRejectsUnknownType(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.History(context.Background(), "GSIS")
	assert.ErrorIs(t, err, compliance.ErrInvalidComplianceType)
}

func TestPreview(t *testing.T) {
	svc, _, _ := newTestService(t)

	resp, err := svc.Preview(context.Background(), "30000", "2026-03-01")
	require.NoError(t, err)

	assert.Equal(t, "2026-03-01", resp.AsOf)
	assert.Equal(t, "1125", resp.SSS.String())
	assert.Equal(t, "900", resp.PhilHealth.String())
	assert.Equal(t, "100", resp.PagIBIG.String())
	assert.Equal(t, "1408.4", resp.Tax.String())
	assert.Equal(t, "3533.4", resp.Total.String())

	require.Len(t, resp.Sources, 4)
	for _, src := range resp.Sources {
		assert.Equal(t, "default", src.Source)
	}
}

func TestPreviewUsesUploadedTable(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Upload(ctx, compliance.UploadRateTableRequest{
		Type:          string(compliance.TypeSSS),
		Name:          "SSS 2026 schedule",
		EffectiveFrom: "2026-01-01",
	}, "sss.csv", strings.NewReader(sampleSSSCSV))
	require.NoError(t, err)

	resp, err := svc.Preview(ctx, "30000", "2026-03-01")
	require.NoError(t, err)

	assert.Equal(t, "500", resp.SSS.String())
	assert.Equal(t, "uploaded", resp.Sources[0].Source)
	assert.Equal(t, 1, resp.Sources[0].Version)
}

func TestPreviewRejectsBadGross(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Preview(context.Background(), "-100", "")
	assert.Error(t, err)
	_, err = svc.Preview(context.Background(), "lots", "")
	assert.Error(t, err)
}
