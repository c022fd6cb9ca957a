package cmd

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRunReport_Weekly(t *testing.T) {
	env := setupEnv(t, fixture)

	runReport(reportCmd, nil)

	out := env.stdout.String()
	assert.Equal(t, 0, env.exitCode)
	assert.Empty(t, env.stderr.String())
	assert.NotContains(t, out, "Subject:")
	assert.Contains(t, out, "By category:")
	assert.Regexp(t, `project-a\s+3 h 00 min`, out)
	assert.Regexp(t, `project-b\s+1 h 30 min`, out)
	assert.Regexp(t, `Total work done this week:\s+4 h 30 min`, out)
	assert.Regexp(t, `Total slacking this week:\s+0 h 30 min`, out)
	assert.NotContains(t, out, "coffee")
}

func TestRunReport_EmailHeadersFlag(t *testing.T) {
	env := setupEnv(t, fixture)
	setFlag(t, reportCmd, "email-headers", "true")

	runReport(reportCmd, nil)

	assert.Contains(t, env.stdout.String(), "Subject: Weekly report for me (week 01)\n\nBy category:")
}

func TestRunReport_EmailHeadersFromConfig(t *testing.T) {
	env := setupEnv(t, fixture)
	env.writeConfig(t, `timezone = "UTC"
email_headers = true
name = "Jane"
sender = "jane@example.com"
recipient = "activity@example.com"`)

	runReport(reportCmd, nil)

	out := env.stdout.String()
	assert.Contains(t, out, "From: jane@example.com\n")
	assert.Contains(t, out, "To: activity@example.com\n")
	assert.Contains(t, out, "Subject: Weekly report for Jane (week 01)\n")
}

func TestRunReport_EmailHeadersFlagOverridesConfig(t *testing.T) {
	env := setupEnv(t, fixture)
	env.writeConfig(t, "timezone = \"UTC\"\nemail_headers = true")
	setFlag(t, reportCmd, "email-headers", "false")

	runReport(reportCmd, nil)

	assert.NotContains(t, env.stdout.String(), "Subject:")
}

func TestRunReport_Day(t *testing.T) {
	env := setupEnv(t, fixture)
	setFlag(t, reportCmd, "day", "2023-12-28")
	setFlag(t, reportCmd, "email-headers", "true")

	runReport(reportCmd, nil)

	out := env.stdout.String()
	assert.Contains(t, out, "Subject: Weekly report for me (week 52)")
	assert.Regexp(t, `Total work done this week:\s+0 h 00 min`, out)
}

func TestRunReport_Daily(t *testing.T) {
	env := setupEnv(t, fixture)
	setFlag(t, reportCmd, "daily", "true")
	setFlag(t, reportCmd, "day", "2024-01-01")
	setFlag(t, reportCmd, "email-headers", "true")

	runReport(reportCmd, nil)

	out := env.stdout.String()
	assert.Contains(t, out, "Subject: 2024-01-01 report for me (Monday, week 01)")
	assert.Regexp(t, `project-a\s+1 h 00 min`, out)
	assert.Regexp(t, `Total work done this day:\s+2 h 30 min`, out)
}

func TestRunReport_HeaderAndFooter(t *testing.T) {
	env := setupEnv(t, fixture)
	setFlag(t, reportCmd, "header", "Hi team,")
	setFlag(t, reportCmd, "footer", "Cheers")

	runReport(reportCmd, nil)

	out := env.stdout.String()
	assert.Contains(t, out, "Hi team,\nBy category:")
	assert.Contains(t, out, "\n\nCheers\n")
}

func TestRunReport_JSON(t *testing.T) {
	env := setupEnv(t, fixture)
	setFlag(t, reportCmd, "format", "json")

	runReport(reportCmd, nil)

	var doc struct {
		Start       string `json:"start"`
		WorkMinutes int64  `json:"work_minutes"`
		Categories  []struct {
			Name    string `json:"name"`
			Minutes int64  `json:"minutes"`
		} `json:"categories"`
	}
	require.NoError(t, sonic.Unmarshal(env.stdout.Bytes(), &doc))
	assert.Equal(t, "2024-01-01T02:00:00Z", doc.Start)
	assert.Equal(t, int64(270), doc.WorkMinutes)
	require.Len(t, doc.Categories, 2)
	assert.Equal(t, "project-a", doc.Categories[0].Name)
	assert.Equal(t, int64(180), doc.Categories[0].Minutes)
}

func TestRunReport_YAML(t *testing.T) {
	env := setupEnv(t, fixture)
	setFlag(t, reportCmd, "format", "yaml")
	setFlag(t, reportCmd, "daily", "true")

	runReport(reportCmd, nil)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(env.stdout.Bytes(), &doc))
	assert.Equal(t, 120, doc["work_minutes"])
	assert.Equal(t, "2 h 00 min", doc["work"])
}

func TestRunReport_InvalidFormat(t *testing.T) {
	env := setupEnv(t, fixture)
	setFlag(t, reportCmd, "format", "xml")

	runReport(reportCmd, nil)

	assert.Equal(t, 1, env.exitCode)
	assert.Contains(t, env.stderr.String(), "Error: Invalid --format value")
	assert.Empty(t, env.stdout.String())
}

func TestRunReport_InvalidDay(t *testing.T) {
	env := setupEnv(t, fixture)
	setFlag(t, reportCmd, "day", "last week")

	runReport(reportCmd, nil)

	assert.Equal(t, 1, env.exitCode)
	assert.Contains(t, env.stderr.String(), "Error: Invalid date")
}

func TestRunReport_ParseError(t *testing.T) {
	env := setupEnv(t, "2024-01-01 09:00 missing colon\n")

	runReport(reportCmd, nil)

	assert.Equal(t, 1, env.exitCode)
	assert.Contains(t, env.stderr.String(), "Line 1:")
	assert.Empty(t, env.stdout.String())
}

func TestCompleteFormats(t *testing.T) {
	formats, _ := completeFormats(reportCmd, nil, "")

	assert.Equal(t, []string{"text", "json", "yaml"}, formats)
}
