// Package impact holds the predictor core: the loaded session state, the
// per-district prediction, the tier classification and the training
// workflow that produces the model artifact.
//
// The dataset and model are loaded once by Load into a State value and are
// never modified afterwards:
//
//	state, err := impact.Load(cfg.DataPath, cfg.ModelPath)
//	if err != nil {
//		// fatal startup error
//	}
//	res, err := state.PredictForDistrict("Lalitpur")
//	if errors.Is(err, impact.ErrNoData) {
//		// district has no rows
//	}
//	fmt.Println(res.Headline(), res.Tier.Pros(), res.Tier.Cons())
package impact

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/ezoic/sipp/dataset"
	"github.com/ezoic/sipp/linear"
	sippErrors "github.com/ezoic/sipp/pkg/errors"
	"github.com/ezoic/sipp/pkg/log"
)

// Errors returned by PredictForDistrict.
var (
	ErrNoData      = sippErrors.ErrNoData
	ErrNoSelection = sippErrors.ErrNoSelection
)

// Regressor is the model contract the predictor relies on.
type Regressor interface {
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// State is the read-only session state: the dataset and the trained model.
type State struct {
	Data  *dataset.Dataset
	Model Regressor

	logger log.Logger
}

// NewState wraps an already loaded dataset and model.
func NewState(data *dataset.Dataset, model Regressor) *State {
	return &State{
		Data:   data,
		Model:  model,
		logger: log.GetLoggerWithName("impact"),
	}
}

// Load reads the dataset and the model artifact. Any failure is a fatal
// startup error for the caller.
func Load(dataPath, modelPath string) (*State, error) {
	data, err := dataset.Load(dataPath, dataset.Options{})
	if err != nil {
		return nil, err
	}

	model, err := linear.Load(modelPath)
	if err != nil {
		return nil, sippErrors.Wrapf(err, "model %s", modelPath)
	}
	if err := checkModel(model); err != nil {
		return nil, sippErrors.Wrapf(err, "model %s", modelPath)
	}

	return NewState(data, model), nil
}

func checkModel(m *linear.LinearRegression) error {
	if m.NFeatures != dataset.NumFeatures {
		return sippErrors.NewDimensionError("impact.Load", dataset.NumFeatures, m.NFeatures, 1)
	}
	if len(m.FeatureNames) > 0 && !slices.Equal(m.FeatureNames, dataset.FeatureColumns) {
		return sippErrors.Wrapf(sippErrors.ErrBadArtifact,
			"model features %v do not match dataset features %v", m.FeatureNames, dataset.FeatureColumns)
	}
	return nil
}

// Districts returns the dropdown values: sorted, deduplicated districts.
func (s *State) Districts() []string {
	return s.Data.Districts()
}

// Result is the outcome of one district prediction.
type Result struct {
	District    string
	Score       float64   // mean of Predictions
	Rows        int       // number of matching dataset rows
	Predictions []float64 // per-row predictions in file order
	Tier        Tier
}

// Headline is the result label text.
func (r Result) Headline() string {
	return fmt.Sprintf("Predicted Impact Score for %s: %.2f", r.District, r.Score)
}

// PredictForDistrict predicts every dataset row of district and returns the
// arithmetic mean. An empty district yields ErrNoSelection and a district
// without rows yields ErrNoData; neither performs a prediction.
func (s *State) PredictForDistrict(district string) (Result, error) {
	if district == "" {
		return Result{}, ErrNoSelection
	}

	rows := s.Data.Filter(district)
	if len(rows) == 0 {
		return Result{}, sippErrors.Wrapf(ErrNoData, "district %q", district)
	}

	pred, err := s.Model.Predict(dataset.FeatureMatrix(rows))
	if err != nil {
		return Result{}, sippErrors.Wrapf(err, "predict district %q", district)
	}

	n, _ := pred.Dims()
	if n != len(rows) {
		return Result{}, sippErrors.NewDimensionError("impact.PredictForDistrict", len(rows), n, 0)
	}
	preds := make([]float64, n)
	for i := range preds {
		preds[i] = pred.At(i, 0)
	}

	score := stat.Mean(preds, nil)
	res := Result{
		District:    district,
		Score:       score,
		Rows:        n,
		Predictions: preds,
		Tier:        Classify(score),
	}

	if s.logger != nil {
		s.logger.Info("District predicted",
			log.OperationKey, log.OperationPredict,
			log.DistrictKey, district,
			log.SamplesKey, n,
			log.ScoreKey, score,
			log.TierKey, res.Tier.String(),
		)
	}
	return res, nil
}
