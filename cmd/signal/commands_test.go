package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/valentinpelus/signal/pkg/analysis"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("SLACK_WEBHOOK_URL", "")
	t.Setenv("SLACK_BOT_TOKEN", "")
	t.Setenv("DISCORD_WEBHOOK_URL", "")
	t.Setenv("LLM_PROVIDER", "none")

	filterSource, filterSentiment, filterTheme = "", "", ""
	deliverReport = false
	customerType = "Individual"

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestNewLogger(t *testing.T) {
	l, err := newLogger("warn", false)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))

	l, err = newLogger("warn", true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	_, err = newLogger("loud", false)
	assert.Error(t, err)
}

func TestClassifyCommand(t *testing.T) {
	out, err := execute(t, "classify", "Critical bug: export is failing", "--customer-type", "Enterprise")
	require.NoError(t, err)

	var got analysis.Analysis
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, analysis.ThemeReliability, got.Theme)
	assert.Equal(t, analysis.SentimentNegative, got.Sentiment)
	assert.Equal(t, 5, got.Urgency)
	assert.Equal(t, analysis.ImpactHigh, got.Impact)
}

func TestClassifyCommand_RejectsBlankMessage(t *testing.T) {
	_, err := execute(t, "classify", "   ")
	assert.Error(t, err)
}

func TestImportThenReport(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("STORE_BACKEND", "file")
	t.Setenv("STORE_FILE_PATH", filepath.Join(dir, "feedback.json"))
	t.Setenv("SEED_DEMO_DATA", "false")

	csvPath := filepath.Join(dir, "export.csv")
	csv := "source,message,customer_type\n" +
		"Support,The dashboard is terribly slow,Enterprise\n" +
		"Email,,Individual\n"
	require.NoError(t, os.WriteFile(csvPath, []byte(csv), 0o600))

	out, err := execute(t, "import", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 records (1 rows skipped), 1 records total")

	out, err = execute(t, "report")
	require.NoError(t, err)
	assert.Contains(t, out, "Signal Feedback Summary")
	assert.Contains(t, out, "• Performance: 1 mentions")

	out, err = execute(t, "report", "--source", "Email")
	require.NoError(t, err)
	assert.Contains(t, out, "• No feedback this week")
}

func TestReportRejectsUnknownFilterValues(t *testing.T) {
	t.Setenv("STORE_BACKEND", "memory")

	_, err := execute(t, "report", "--theme", "Perfomance")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown theme "Perfomance"`)
	assert.Contains(t, err.Error(), "Performance, UX, Pricing")

	_, err = execute(t, "report", "--sentiment", "negative")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown sentiment "negative"`)

	out, err := execute(t, "report", "--theme", "Pricing", "--sentiment", "Negative")
	require.NoError(t, err)
	assert.Contains(t, out, "Signal Feedback Summary")
}

func TestReportDeliverWithoutChannels(t *testing.T) {
	t.Setenv("STORE_BACKEND", "memory")
	_, err := execute(t, "report", "--deliver")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot deliver report")
}
