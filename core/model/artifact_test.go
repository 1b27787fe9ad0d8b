package model_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezoic/sipp/core/model"
	sippErrors "github.com/ezoic/sipp/pkg/errors"
)

func validArtifact() *model.Artifact {
	return &model.Artifact{
		ModelSpec: model.ArtifactSpec{
			Name:          model.LinearRegressionName,
			FormatVersion: model.FormatVersion,
		},
		Params: model.LinearParams{
			Coefficients: []float64{0.5, -1.25, 2, 0},
			Intercept:    10,
			NFeatures:    4,
			FeatureNames: []string{"Budget", "Target_Audience", "Location", "Sustainability_Factors"},
		},
	}
}

func TestCodecFor(t *testing.T) {
	tests := map[string]model.Codec{
		"m.json":    model.JSONCodec{},
		"m.JSON":    model.JSONCodec{},
		"m":         model.JSONCodec{},
		"m.pkl":     model.JSONCodec{},
		"m.msgpack": model.MsgpackCodec{},
		"m.mpk":     model.MsgpackCodec{},
	}
	for path, want := range tests {
		assert.IsType(t, want, model.CodecFor(path), path)
	}
}

func TestArtifactRoundTrip(t *testing.T) {
	for _, codec := range []model.Codec{model.JSONCodec{}, model.MsgpackCodec{}} {
		var buf bytes.Buffer
		require.NoError(t, model.WriteArtifact(&buf, validArtifact(), codec))

		got, err := model.ReadArtifact(&buf, codec)
		require.NoError(t, err)
		assert.Equal(t, validArtifact().Params, got.Params)
		assert.Equal(t, model.LinearRegressionName, got.ModelSpec.Name)
	}
}

func TestJSONLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, model.WriteArtifact(&buf, validArtifact(), model.JSONCodec{}))

	out := buf.String()
	for _, key := range []string{`"model_spec"`, `"format_version": "1.0"`, `"coefficients"`, `"intercept": 10`, `"n_features": 4`} {
		assert.Contains(t, out, key)
	}
}

func TestArtifactValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(a *model.Artifact)
		substr string
	}{
		{"missing version", func(a *model.Artifact) { a.ModelSpec.FormatVersion = "" }, "format_version is required"},
		{"unsupported version", func(a *model.Artifact) { a.ModelSpec.FormatVersion = "2.0" }, "unsupported format version"},
		{"wrong model", func(a *model.Artifact) { a.ModelSpec.Name = "Ridge" }, "expected LinearRegression"},
		{"empty coefficients", func(a *model.Artifact) {
			a.Params.Coefficients = nil
			a.Params.NFeatures = 0
			a.Params.FeatureNames = nil
		}, "coefficients cannot be empty"},
		{"n_features mismatch", func(a *model.Artifact) { a.Params.NFeatures = 3 }, "n_features (3)"},
		{"feature names mismatch", func(a *model.Artifact) { a.Params.FeatureNames = []string{"Budget"} }, "feature_names length"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validArtifact()
			tt.mutate(a)
			err := a.Validate()
			require.Error(t, err)
			assert.True(t, sippErrors.Is(err, sippErrors.ErrBadArtifact))
			assert.Contains(t, err.Error(), tt.substr)
		})
	}
}

func TestReadArtifactCorrupt(t *testing.T) {
	_, err := model.ReadArtifact(strings.NewReader("{not json"), model.JSONCodec{})
	assert.True(t, sippErrors.Is(err, sippErrors.ErrBadArtifact))

	_, err = model.ReadArtifact(strings.NewReader("\xc1\xc1"), model.MsgpackCodec{})
	assert.True(t, sippErrors.Is(err, sippErrors.ErrBadArtifact))
}

func TestSaveLoadArtifact(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "models", "impact_model.json")

	require.NoError(t, model.SaveArtifact(path, validArtifact()))

	got, err := model.LoadArtifact(path)
	require.NoError(t, err)
	assert.Equal(t, validArtifact().Params, got.Params)

	// No temporary files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSaveArtifactRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "impact_model.json")

	a := validArtifact()
	a.Params.NFeatures = 9
	require.Error(t, model.SaveArtifact(path, a))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestLoadArtifactFileNotFound(t *testing.T) {
	_, err := model.LoadArtifact(filepath.Join(t.TempDir(), "nonexistent_file.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open file")
}

func TestBaseEstimator(t *testing.T) {
	var e model.BaseEstimator
	assert.False(t, e.IsFitted())
	assert.Equal(t, "not_fitted", e.State.String())

	e.SetFitted()
	e.NSamples = 3
	assert.True(t, e.IsFitted())
	assert.Equal(t, "fitted", e.State.String())

	e.Reset()
	assert.False(t, e.IsFitted())
	assert.Zero(t, e.NSamples)
}
