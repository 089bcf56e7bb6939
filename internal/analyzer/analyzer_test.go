package analyzer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flamegraph-analysis/internal/hotspot"
	apperrors "github.com/flamegraph-analysis/pkg/errors"
)

const sampleReport = `<html><body><script>
const cpool = [
'all',
' com/mimecast/robin/smtp/EmailReceipt.process',
' com/mimecast/robin/io/LineInputStream.readLine',
' java/lang/Thread.run',
];
f(0,0,0,100)
f(1,1,0,60,2)
n(2,30)
u(3,10)
n(99,1000)
</script></body></html>`

func TestFlamegraphAnalyzer_Analyze(t *testing.T) {
	ana := NewFlamegraphAnalyzer(hotspot.DefaultOptions(), nil)

	report, err := ana.Analyze(context.Background(), sampleReport)

	require.NoError(t, err)
	assert.Equal(t, 4, report.PoolSize)
	// Out-of-pool key 99 contributes nothing.
	assert.Equal(t, int64(200), report.TotalSamples)
	assert.False(t, report.Fallback)
	assert.Equal(t, int64(90), report.RelevantSamples)

	require.NotEmpty(t, report.Ranked)
	assert.Equal(t, "com/mimecast/robin/smtp/EmailReceipt.process", report.Ranked[0].Name)
	assert.Equal(t, int64(60), report.Ranked[0].Samples)
}

func TestFlamegraphAnalyzer_MissingPool(t *testing.T) {
	ana := NewFlamegraphAnalyzer(hotspot.DefaultOptions(), nil)

	_, err := ana.Analyze(context.Background(), "<html>no pool</html>")

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeFormatError, apperrors.GetErrorCode(err))
}

func TestFlamegraphAnalyzer_NoRenderingCalls(t *testing.T) {
	document := `const cpool = [
'all',
];`

	ana := NewFlamegraphAnalyzer(hotspot.DefaultOptions(), nil)
	report, err := ana.Analyze(context.Background(), document)

	require.NoError(t, err)
	assert.Equal(t, int64(0), report.TotalSamples)
	assert.True(t, report.Fallback)
	assert.Empty(t, report.Ranked)
}

func TestFlamegraphAnalyzer_AnalyzeFromReader(t *testing.T) {
	ana := NewFlamegraphAnalyzer(hotspot.DefaultOptions(), nil)

	report, err := ana.AnalyzeFromReader(context.Background(), strings.NewReader(sampleReport))

	require.NoError(t, err)
	assert.Equal(t, int64(200), report.TotalSamples)
}

func TestFlamegraphAnalyzer_Name(t *testing.T) {
	ana := NewFlamegraphAnalyzer(hotspot.DefaultOptions(), nil)
	assert.Equal(t, "flamegraph-html", ana.Name())
}
