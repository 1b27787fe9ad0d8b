package impact

import (
	"time"

	"github.com/ezoic/sipp/dataset"
	"github.com/ezoic/sipp/linear"
	"github.com/ezoic/sipp/metrics"
	"github.com/ezoic/sipp/pkg/log"
)

// Report summarizes a training run.
type Report struct {
	DataPath     string
	ModelPath    string
	Samples      int
	Coefficients []float64
	Intercept    float64
	R2           float64
	RMSE         float64
	Duration     time.Duration
}

// Train fits an OLS model of Impact_Score on the feature columns of the
// dataset at dataPath and writes it to modelPath, replacing any previous
// artifact. Nothing is written when loading or fitting fails.
func Train(dataPath, modelPath string) (*Report, error) {
	start := time.Now()
	logger := log.GetLoggerWithName("impact").With(log.PhaseKey, log.PhaseTraining)

	data, err := dataset.Load(dataPath, dataset.Options{RequireTarget: true})
	if err != nil {
		return nil, err
	}

	X := dataset.FeatureMatrix(data.Rows)
	y := dataset.TargetVector(data.Rows)

	lr := linear.NewLinearRegression()
	lr.FeatureNames = append([]string(nil), dataset.FeatureColumns...)
	if err := lr.Fit(X, y); err != nil {
		return nil, err
	}

	pred, err := lr.Predict(X)
	if err != nil {
		return nil, err
	}
	yPred := metrics.ColumnVector(pred)
	r2, err := metrics.R2Score(y, yPred)
	if err != nil {
		return nil, err
	}
	rmse, err := metrics.RMSE(y, yPred)
	if err != nil {
		return nil, err
	}

	if err := lr.Save(modelPath); err != nil {
		return nil, err
	}

	report := &Report{
		DataPath:     dataPath,
		ModelPath:    modelPath,
		Samples:      data.Len(),
		Coefficients: lr.Coefficients(),
		Intercept:    lr.Intercept,
		R2:           r2,
		RMSE:         rmse,
		Duration:     time.Since(start),
	}

	logger.Info("Model trained",
		log.PathKey, modelPath,
		log.SamplesKey, report.Samples,
		"r2", r2,
		"rmse", rmse,
		log.DurationMsKey, report.Duration.Milliseconds(),
	)
	return report, nil
}
