package linear

import (
	"io"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/sipp/core/model"
	sippErrors "github.com/ezoic/sipp/pkg/errors"
	"github.com/ezoic/sipp/pkg/log"
)

// Artifact converts the fitted model to its persisted form.
func (lr *LinearRegression) Artifact() (*model.Artifact, error) {
	if !lr.IsFitted() {
		return nil, sippErrors.NewNotFittedError("LinearRegression", "Artifact")
	}

	var names []string
	if len(lr.FeatureNames) > 0 {
		names = append(names, lr.FeatureNames...)
	}

	return &model.Artifact{
		ModelSpec: model.ArtifactSpec{
			Name:          model.LinearRegressionName,
			FormatVersion: model.FormatVersion,
			CreatedAt:     time.Now().UTC(),
		},
		Params: model.LinearParams{
			Coefficients: lr.Coefficients(),
			Intercept:    lr.Intercept,
			NFeatures:    lr.NFeatures,
			FeatureNames: names,
		},
	}, nil
}

// FromArtifact builds a fitted model from a validated artifact.
func FromArtifact(a *model.Artifact) (*LinearRegression, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	lr := NewLinearRegression()
	lr.NFeatures = a.Params.NFeatures
	lr.Intercept = a.Params.Intercept
	lr.Weights = mat.NewVecDense(len(a.Params.Coefficients), append([]float64(nil), a.Params.Coefficients...))
	if len(a.Params.FeatureNames) > 0 {
		lr.FeatureNames = append([]string(nil), a.Params.FeatureNames...)
	}
	lr.SetFitted()
	return lr, nil
}

// Save persists the model to path. The codec follows the file extension
// (see model.CodecFor) and an existing artifact is replaced wholesale.
func (lr *LinearRegression) Save(path string) (err error) {
	defer sippErrors.Recover(&err, "LinearRegression.Save")
	a, err := lr.Artifact()
	if err != nil {
		return err
	}
	if err := model.SaveArtifact(path, a); err != nil {
		return err
	}

	if lr.logger != nil {
		lr.logger.Info("Model saved",
			log.OperationKey, log.OperationSave,
			log.PhaseKey, log.PhasePersist,
			log.PathKey, path,
		)
	}
	return nil
}

// Encode writes the model to w with the given codec.
func (lr *LinearRegression) Encode(w io.Writer, codec model.Codec) error {
	a, err := lr.Artifact()
	if err != nil {
		return err
	}
	return model.WriteArtifact(w, a, codec)
}

// Load reads a fitted model from path.
func Load(path string) (_ *LinearRegression, err error) {
	defer sippErrors.Recover(&err, "linear.Load")
	a, err := model.LoadArtifact(path)
	if err != nil {
		return nil, err
	}
	lr, err := FromArtifact(a)
	if err != nil {
		return nil, err
	}

	lr.logger.Info("Model loaded",
		log.OperationKey, log.OperationLoad,
		log.PhaseKey, log.PhasePersist,
		log.PathKey, path,
		log.FeaturesKey, lr.NFeatures,
	)
	return lr, nil
}

// Read decodes a fitted model from r with the given codec.
func Read(r io.Reader, codec model.Codec) (*LinearRegression, error) {
	a, err := model.ReadArtifact(r, codec)
	if err != nil {
		return nil, err
	}
	return FromArtifact(a)
}
