package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezoic/sipp/linear"
)

func writeConfig(t *testing.T, dir, csv string) (string, string) {
	t.Helper()
	dataPath := filepath.Join(dir, "data.csv")
	modelPath := filepath.Join(dir, "models", "impact_model.json")
	require.NoError(t, os.WriteFile(dataPath, []byte(csv), 0o644))

	cfgPath := filepath.Join(dir, "sipp.toml")
	body := "data_path = '" + dataPath + "'\nmodel_path = '" + modelPath + "'\nlog_level = 'error'\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0o644))
	return cfgPath, modelPath
}

func TestRunTrainsModel(t *testing.T) {
	cfgPath, modelPath := writeConfig(t, t.TempDir(),
		"District,Budget,Target_Audience,Location,Sustainability_Factors,Impact_Score\nA,100,50,3,7,80\n")

	var out bytes.Buffer
	require.NoError(t, run(&out, cfgPath))
	assert.Contains(t, out.String(), "Model trained and saved to: "+modelPath)

	lr, err := linear.Load(modelPath)
	require.NoError(t, err)
	assert.InDelta(t, 80, lr.Intercept, 1e-12)
}

func TestRunReportsError(t *testing.T) {
	cfgPath, modelPath := writeConfig(t, t.TempDir(),
		"District,Budget,Target_Audience,Location,Sustainability_Factors\nA,100,50,3,7\n")

	var out bytes.Buffer
	err := run(&out, cfgPath)
	require.Error(t, err)
	assert.Contains(t, out.String(), "❌ Error:")
	assert.Contains(t, out.String(), "Impact_Score")

	_, statErr := os.Stat(modelPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRootRejectsArguments(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"extra"})
	cmd.SetOut(&bytes.Buffer{})
	assert.Error(t, cmd.Execute())
}
