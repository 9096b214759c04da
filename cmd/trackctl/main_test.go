package main

import (
	"bytes"
	"io/ioutil"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureLog = `[
  {"id":"1","taskId":"42","startTime":"2026-08-01T09:00:00Z","endTime":"2026-08-01T10:30:00Z","duration":5400000,"description":"landing page","isActive":false},
  {"id":"2","taskId":"general","startTime":"2026-08-01T11:00:00Z","endTime":"2026-08-01T11:30:00Z","duration":1800000,"isActive":false},
  {"id":"3","taskId":"42","startTime":"2026-08-03T14:00:00Z","endTime":"2026-08-03T15:00:00Z","duration":3600000,"description":"landing page","isActive":false}
]`

func writeFixture(t *testing.T) string {
	t.Helper()
	tmp, err := ioutil.TempFile("", "entries.*.json")
	require.NoError(t, err)
	_, err = tmp.WriteString(fixtureLog)
	require.NoError(t, err)
	require.NoError(t, tmp.Close())
	t.Cleanup(func() { os.Remove(tmp.Name()) })
	return tmp.Name()
}

func runCommand(t *testing.T, args ...string) string {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())

	// flag values persist between Execute calls, reset the range
	startDate, endDate = "", ""
	return buf.String()
}

func TestHoursCommand(t *testing.T) {
	path := writeFixture(t)
	out := runCommand(t, "hours", "--file", path)

	assert.Contains(t, out, "2026-08-01  2h 0m 0s")
	assert.Contains(t, out, "2026-08-03  1h 0m 0s")
	assert.Contains(t, out, "Total hours worked from 2026-08-01 to 2026-08-03: 3h 0m 0s")
}

func TestHoursCommand_SingleDay(t *testing.T) {
	path := writeFixture(t)
	out := runCommand(t, "hours", "--file", path, "--start-date", "2026-08-01")

	assert.Contains(t, out, "Total hours worked from 2026-08-01 to 2026-08-01: 2h 0m 0s")
	assert.NotContains(t, out, "2026-08-03")
}

func TestReportCommand(t *testing.T) {
	path := writeFixture(t)
	out := runCommand(t, "report", "--file", path)

	assert.Contains(t, out, "42 (landing page)")
	assert.Contains(t, out, "2h 30m 0s")
	assert.Contains(t, out, "general (no task)")
}

func TestEntriesCommand(t *testing.T) {
	path := writeFixture(t)
	out := runCommand(t, "entries", "--file", path)

	assert.Contains(t, out, "3 entries")
	assert.Contains(t, out, "09:00:00 - 10:30:00")
}

func TestInvalidRange(t *testing.T) {
	path := writeFixture(t)
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"hours", "--file", path, "--start-date", "2026-08-05", "--end-date", "2026-08-01"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "end date cannot be before start date")
	startDate, endDate = "", ""
}
