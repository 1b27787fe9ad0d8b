// Package model provides the estimator building blocks and the persisted
// model artifact shared by the trainer and the predictor.
//
// The package covers:
//
//   - BaseEstimator: fitted-state tracking embedded by estimators
//   - Artifact: the on-disk contract between trainer and predictor
//     (coefficients, intercept, feature names)
//   - Codecs: scikit-learn style JSON and a compact msgpack encoding,
//     selected by file extension
//
// Example usage:
//
//	type MyModel struct {
//		model.BaseEstimator
//		// model-specific fields
//	}
//
//	func (m *MyModel) Fit(X, y mat.Matrix) error {
//		// training logic
//		m.SetFitted() // mark as trained
//		return nil
//	}
//
// Artifacts are immutable once written: SaveArtifact replaces the file
// wholesale and never edits it in place.
package model

// EstimatorState represents the learning state of a model
type EstimatorState int

const (
	// NotFitted indicates the model is not yet trained
	NotFitted EstimatorState = iota
	// Fitted indicates the model has been trained
	Fitted
)

func (s EstimatorState) String() string {
	if s == Fitted {
		return "fitted"
	}
	return "not_fitted"
}

// BaseEstimator is the base structure for all models
type BaseEstimator struct {
	// State holds the model's learning state.
	State EstimatorState

	// ModelType identifies the type of model
	ModelType string

	// NSamples is the number of rows seen by the last Fit. Zero when the
	// model was loaded from an artifact.
	NSamples int
}

// IsFitted returns whether the model has been fitted with training data.
//
// All models must be fitted (or loaded from an artifact) before they can be
// used for predictions.
//
// Example:
//
//	if !model.IsFitted() {
//	    err := model.Fit(X, y)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	}
//	predictions, err := model.Predict(X_test)
func (e *BaseEstimator) IsFitted() bool {
	return e.State == Fitted
}

// SetFitted marks the estimator as fitted (trained).
//
// This method is called internally by model implementations after successful
// training or loading. Should only be called by model implementations, not by
// end users.
func (e *BaseEstimator) SetFitted() {
	e.State = Fitted
}

// Reset returns the estimator to its initial untrained state.
func (e *BaseEstimator) Reset() {
	e.State = NotFitted
	e.NSamples = 0
}
