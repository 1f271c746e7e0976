package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelcomp/internal/config"
	"hotelcomp/internal/dataprocessing"
)

func writeDataset(t *testing.T) string {
	t.Helper()

	header := []string{
		dataprocessing.HeaderAddress, dataprocessing.HeaderState, dataprocessing.HeaderCounty,
		dataprocessing.HeaderProjectName, dataprocessing.HeaderOwnerName, dataprocessing.HeaderRooms,
		dataprocessing.HeaderMarketValue, dataprocessing.HeaderVPR, dataprocessing.HeaderHotelClass,
	}
	content := strings.Join(header, ",") + "\n" +
		"Subject Main St,Texas,Harris,Subject,Subject LLC,200,5000000,25000,Upper Midscale\n" +
		"A Main St,Texas,Harris,A,A LLC,150,5500000,20000,Upper Midscale\n" +
		"B Main St,Texas,Harris,B,B LLC,100,4200000,15000,Upscale\n"

	path := filepath.Join(t.TempDir(), "hotels.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestRunCommand(t *testing.T) {
	input := writeDataset(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "results.xlsx")
	preview := filepath.Join(dir, "preview.csv")

	stdout, err := execute(t, "run", "--input", input, "--out", out, "--preview", preview, "--tolerance", "0.2")
	require.NoError(t, err)

	assert.Contains(t, stdout, "3 subjects processed")
	assert.Contains(t, stdout, "Subject Main St")
	assert.Contains(t, stdout, "Results written to "+out)
	assert.FileExists(t, out)
	assert.FileExists(t, preview)
}

func TestRunCommand_AddressScope(t *testing.T) {
	input := writeDataset(t)
	out := filepath.Join(t.TempDir(), "results.xlsx")

	stdout, err := execute(t, "run", "-i", input, "-o", out, "--address", "Subject Main St", "--address", "Nowhere Rd")
	require.NoError(t, err)

	assert.Contains(t, stdout, "1 subjects processed")
	assert.Contains(t, stdout, "Addresses not found: Nowhere Rd")
}

func TestRunCommand_Errors(t *testing.T) {
	input := writeDataset(t)
	out := filepath.Join(t.TempDir(), "results.xlsx")

	_, err := execute(t, "run", "--out", out)
	assert.Error(t, err, "input is required")

	_, err = execute(t, "run", "-i", input, "-o", out, "--tolerance", "9")
	assert.Error(t, err)

	_, err = execute(t, "run", "-i", input, "-o", out, "--max-results", "0")
	assert.Error(t, err)

	_, err = execute(t, "run", "-i", filepath.Join(t.TempDir(), "missing.xlsx"), "-o", out)
	assert.Error(t, err)
}

func TestResolveInput(t *testing.T) {
	paths := config.NewPaths(t.TempDir(), config.PathsConfig{DataDir: "data", ReportsDir: "reports", LogsDir: "logs"})
	require.NoError(t, paths.EnsureDirectories())
	require.NoError(t, os.WriteFile(paths.GetDataPath("hotels.csv"), []byte("x"), 0644))

	assert.Equal(t, paths.GetDataPath("hotels.csv"), resolveInput(paths, "hotels.csv"))
	assert.Equal(t, "elsewhere.csv", resolveInput(paths, "elsewhere.csv"), "unknown names are left for the loader to reject")

	local := writeDataset(t)
	assert.Equal(t, local, resolveInput(paths, local))
}

func TestRatesCommand(t *testing.T) {
	stdout, err := execute(t, "rates")
	require.NoError(t, err)
	assert.Contains(t, stdout, "STATE")
	assert.Contains(t, stdout, "Texas")
	assert.Contains(t, stdout, "0.0250")
}

func TestClassesCommand(t *testing.T) {
	stdout, err := execute(t, "classes")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Luxury Class")
	assert.Contains(t, stdout, "1,2,3")
}

func TestVersionCommand(t *testing.T) {
	stdout, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Hotel Comparable Matcher v")
}
