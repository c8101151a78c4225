package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreCommandPrintsResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.json")
	resume := `{"personalInfo":{"fullName":"Sara Ali","email":"sara@example.com"},"skills":["Go","SQL"],
		"workExperience":[{"jobTitle":"Backend Developer","company":"Acme","description":"Developed APIs"}]}`
	require.NoError(t, os.WriteFile(path, []byte(resume), 0o600))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"score", "--file", path, "--job-title", "Backend Developer"})
	require.NoError(t, rootCmd.Execute())

	var result map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Contains(t, result, "ATS_Score")
	assert.Contains(t, result, "breakdown")
}

func TestScoreCommandRejectsNonObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.json")
	require.NoError(t, os.WriteFile(path, []byte(`[1,2]`), 0o600))

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"score", "--file", path})
	assert.Error(t, rootCmd.Execute())
}
