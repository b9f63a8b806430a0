package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/guttosm/signstats/internal/ingestion"
	"github.com/guttosm/signstats/internal/report"
	"github.com/guttosm/signstats/internal/service"
)

const header = "成交金额,手续费,是否签约,双融账户,部门,买卖方向,客户代码,交收日期\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestCollectInputs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.csv", header)
	writeFile(t, dir, "a.XLSX", "x")
	writeFile(t, dir, "~$a.xlsx", "lock")
	writeFile(t, dir, "old"+OutputSuffix, "out")
	writeFile(t, dir, "notes.txt", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.csv"), 0o755))

	files, err := CollectInputs(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.XLSX"), filepath.Join(dir, "b.csv")}, files)
}

func TestCollectInputs_Empty(t *testing.T) {
	_, err := CollectInputs(t.TempDir())
	assert.ErrorIs(t, err, ErrNoInputs)
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, "june"+OutputSuffix, OutputName("/data/input/june.xlsx"))
	assert.Equal(t, "trades.2025"+OutputSuffix, OutputName("trades.2025.csv"))
}

func TestParallelism(t *testing.T) {
	assert.Equal(t, 3, parallelism(3))
	assert.Equal(t, maxParallel, parallelism(100))
	assert.GreaterOrEqual(t, parallelism(0), 1)
	assert.LessOrEqual(t, parallelism(0), maxParallel)
}

func TestProcessDirectory_WritesOneWorkbookPerFile(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "nested", "out")
	writeFile(t, in, "day1.csv", header+
		"10000,10,是,,财富中心,证券买入,C1,20250606\n"+
		"20000,20,#N/A,Y,营销中心,证券买入,C2,20250606\n")
	writeFile(t, in, "day2.csv", header+
		"5000,5,,,其他,证券卖出,C9,20250607\n")

	results, err := ProcessDirectory(context.Background(), service.NewSummaryService(), in, Options{OutDir: out, Parallel: 2})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, 3, results[0].Rows)
	assert.Equal(t, 2, results[0].BuyRows)
	assert.Equal(t, 0, results[1].Rows, "sell-only input yields an empty summary")

	f, err := excelize.OpenFile(filepath.Join(out, "day1"+OutputSuffix))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(report.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, report.Columns[0], rows[0][0])

	_, err = os.Stat(filepath.Join(out, "day2"+OutputSuffix))
	assert.NoError(t, err)
}

func TestProcessFiles_FailureStopsBatch(t *testing.T) {
	in := t.TempDir()
	good := writeFile(t, in, "good.csv", header+"1,1,,,x,证券买入,C1,20250606\n")
	bad := writeFile(t, in, "bad.csv", "only,three,columns\n1,2,3\n")

	_, err := ProcessFiles(context.Background(), service.NewSummaryService(), []string{good, bad}, Options{OutDir: t.TempDir(), Parallel: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ingestion.ErrMissingColumns)
	assert.Contains(t, err.Error(), "bad.csv")
}

func TestProcessFiles_CanceledContext(t *testing.T) {
	in := t.TempDir()
	f := writeFile(t, in, "a.csv", header)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ProcessFiles(ctx, service.NewSummaryService(), []string{f}, Options{OutDir: t.TempDir()})
	assert.ErrorIs(t, err, context.Canceled)
}
