package model

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/ezoic/sipp/pkg/errors"
)

// FormatVersion is the only artifact version this package reads and writes.
const FormatVersion = "1.0"

// LinearRegressionName is the model name recorded for OLS artifacts.
const LinearRegressionName = "LinearRegression"

// ArtifactSpec is the artifact metadata.
type ArtifactSpec struct {
	Name          string    `json:"name" msgpack:"name"`                     // e.g. "LinearRegression"
	FormatVersion string    `json:"format_version" msgpack:"format_version"` // always FormatVersion
	CreatedAt     time.Time `json:"created_at,omitempty" msgpack:"created_at,omitempty"`
}

// LinearParams holds the fitted parameters of a linear model.
type LinearParams struct {
	Coefficients []float64 `json:"coefficients" msgpack:"coefficients"`
	Intercept    float64   `json:"intercept" msgpack:"intercept"`
	NFeatures    int       `json:"n_features" msgpack:"n_features"`
	FeatureNames []string  `json:"feature_names,omitempty" msgpack:"feature_names,omitempty"`
}

// Artifact is the persisted form of a trained linear model.
type Artifact struct {
	ModelSpec ArtifactSpec `json:"model_spec" msgpack:"model_spec"`
	Params    LinearParams `json:"params" msgpack:"params"`
}

// Codec encodes and decodes artifacts.
type Codec interface {
	Encode(w io.Writer, a *Artifact) error
	Decode(r io.Reader) (*Artifact, error)
}

// JSONCodec writes indented scikit-learn style JSON.
type JSONCodec struct{}

func (JSONCodec) Encode(w io.Writer, a *Artifact) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(a); err != nil {
		return errors.Wrap(err, "failed to encode model")
	}
	return nil
}

func (JSONCodec) Decode(r io.Reader) (*Artifact, error) {
	var a Artifact
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return nil, errors.Wrapf(errors.ErrBadArtifact, "failed to decode JSON: %v", err)
	}
	return &a, nil
}

// MsgpackCodec writes the compact binary encoding.
type MsgpackCodec struct{}

func (MsgpackCodec) Encode(w io.Writer, a *Artifact) error {
	if err := msgpack.NewEncoder(w).Encode(a); err != nil {
		return errors.Wrap(err, "failed to encode model")
	}
	return nil
}

func (MsgpackCodec) Decode(r io.Reader) (*Artifact, error) {
	var a Artifact
	if err := msgpack.NewDecoder(r).Decode(&a); err != nil {
		return nil, errors.Wrapf(errors.ErrBadArtifact, "failed to decode msgpack: %v", err)
	}
	return &a, nil
}

// CodecFor picks a codec from the file extension. ".msgpack" and ".mpk"
// select msgpack; everything else is JSON.
func CodecFor(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".msgpack", ".mpk":
		return MsgpackCodec{}
	default:
		return JSONCodec{}
	}
}

// Validate checks the artifact against the format contract.
func (a *Artifact) Validate() error {
	if a.ModelSpec.FormatVersion == "" {
		return errors.Wrap(errors.ErrBadArtifact, "format_version is required")
	}
	if a.ModelSpec.FormatVersion != FormatVersion {
		return errors.Wrapf(errors.ErrBadArtifact, "unsupported format version: %s", a.ModelSpec.FormatVersion)
	}
	if a.ModelSpec.Name != LinearRegressionName {
		return errors.Wrapf(errors.ErrBadArtifact, "expected %s, got %q", LinearRegressionName, a.ModelSpec.Name)
	}

	p := a.Params
	if len(p.Coefficients) == 0 {
		return errors.Wrap(errors.ErrBadArtifact, "coefficients cannot be empty")
	}
	if p.NFeatures != len(p.Coefficients) {
		return errors.Wrapf(errors.ErrBadArtifact, "n_features (%d) does not match coefficients length (%d)",
			p.NFeatures, len(p.Coefficients))
	}
	if len(p.FeatureNames) > 0 && len(p.FeatureNames) != p.NFeatures {
		return errors.Wrapf(errors.ErrBadArtifact, "feature_names length (%d) does not match n_features (%d)",
			len(p.FeatureNames), p.NFeatures)
	}
	return nil
}

// WriteArtifact validates a and encodes it to w.
func WriteArtifact(w io.Writer, a *Artifact, codec Codec) error {
	if err := a.Validate(); err != nil {
		return err
	}
	return codec.Encode(w, a)
}

// ReadArtifact decodes and validates an artifact from r.
func ReadArtifact(r io.Reader, codec Codec) (*Artifact, error) {
	a, err := codec.Decode(r)
	if err != nil {
		return nil, err
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// SaveArtifact writes a to path, creating parent directories. The file is
// written to a temporary sibling and renamed into place, so readers never
// observe a partially written artifact.
func SaveArtifact(path string, a *Artifact) error {
	if err := a.Validate(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()
	_ = tmp.Chmod(0o644)

	if err := CodecFor(path).Encode(tmp, a); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace artifact: %w", err)
	}
	return nil
}

// LoadArtifact reads and validates the artifact at path.
func LoadArtifact(path string) (*Artifact, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return ReadArtifact(file, CodecFor(path))
}
