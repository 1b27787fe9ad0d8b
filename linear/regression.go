// Package linear provides the ordinary least squares model behind the
// impact score.
//
// LinearRegression fits y ≈ X·coef + intercept by minimizing the sum of
// squared residuals. The system is solved on mean-centered data through a
// singular value decomposition, which yields the minimum-norm solution when
// X is rank deficient (too few rows, duplicated or constant columns). A
// single training row is therefore fitted exactly: every coefficient is zero
// and the intercept equals the target.
//
// Example usage:
//
//	lr := linear.NewLinearRegression()
//	err := lr.Fit(X, y) // X: features, y: target values
//	if err != nil {
//		log.Fatal(err)
//	}
//	predictions, err := lr.Predict(XTest)
//
// Fitted models persist through the core/model artifact codecs:
//
//	err = lr.Save("models/impact_model.json")
//	loaded, err := linear.Load("models/impact_model.json")
package linear

import (
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/sipp/core/model"
	sippErrors "github.com/ezoic/sipp/pkg/errors"
	"github.com/ezoic/sipp/pkg/log"
)

// LinearRegression is a linear regression model
type LinearRegression struct {
	model.BaseEstimator

	Weights      *mat.VecDense // Model weights (coefficients)
	Intercept    float64       // Model intercept
	NFeatures    int           // Number of features
	FeatureNames []string      // Optional column names, in weight order

	logger log.Logger
}

// NewLinearRegression creates a new, untrained linear regression model.
//
// Example:
//
//	lr := linear.NewLinearRegression()
//	err := lr.Fit(X, y)
//	predictions, err := lr.Predict(X_test)
func NewLinearRegression() *LinearRegression {
	lr := &LinearRegression{}
	lr.ModelType = model.LinearRegressionName

	lr.logger = log.GetLoggerWithName("linear").With(
		log.ModelNameKey, model.LinearRegressionName,
		log.ComponentKey, "linear",
	)

	return lr
}

// Fit trains the linear regression model using the provided training data.
//
// X and y are centered by their column means, the centered system is solved
// with a thin SVD keeping singular values above eps·max(n, p)·σ_max, and the
// intercept is recovered as mean(y) - mean(X)·coef.
//
// Parameters:
//   - X: Feature matrix of shape (n_samples, n_features)
//   - y: Target column of shape (n_samples, 1)
//
// Errors:
//   - ErrEmptyData: if X or y are empty
//   - DimensionError: if the number of samples in X and y don't match
//   - ValueError: if y is not a column vector or the data contains NaN/Inf
//   - ErrSingularMatrix: if the decomposition does not converge
func (lr *LinearRegression) Fit(X, y mat.Matrix) (err error) {
	defer sippErrors.Recover(&err, "LinearRegression.Fit")

	startTime := time.Now()
	r, c := X.Dims()
	ry, cy := y.Dims()

	if lr.logger != nil {
		lr.logger.Info("Training started",
			log.OperationKey, log.OperationFit,
			log.PhaseKey, log.PhaseTraining,
			log.SamplesKey, r,
			log.FeaturesKey, c,
		)
	}

	if r == 0 || c == 0 {
		return sippErrors.NewModelError("LinearRegression.Fit", "empty data", sippErrors.ErrEmptyData)
	}

	if ry != r {
		return sippErrors.NewDimensionError("LinearRegression.Fit", r, ry, 0)
	}

	if cy != 1 {
		return sippErrors.NewValueError("LinearRegression.Fit", "y must be a column vector")
	}

	// Column means
	xMean := make([]float64, c)
	var yMean float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := X.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return sippErrors.NewValueError("LinearRegression.Fit", "X contains NaN or Inf")
			}
			xMean[j] += v
		}
		v := y.At(i, 0)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return sippErrors.NewValueError("LinearRegression.Fit", "y contains NaN or Inf")
		}
		yMean += v
	}
	for j := range xMean {
		xMean[j] /= float64(r)
	}
	yMean /= float64(r)

	// Centered copies
	xc := mat.NewDense(r, c, nil)
	yc := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			xc.Set(i, j, X.At(i, j)-xMean[j])
		}
		yc.SetVec(i, y.At(i, 0)-yMean)
	}

	coef := mat.NewVecDense(c, nil)

	// All-zero centered features mean every row shares one feature vector;
	// the best fit is then the constant mean(y) and coef stays zero.
	if mat.Norm(xc, 1) > 0 {
		var svd mat.SVD
		if ok := svd.Factorize(xc, mat.SVDThin); !ok {
			return sippErrors.NewModelError("LinearRegression.Fit", "SVD did not converge", sippErrors.ErrSingularMatrix)
		}

		rcond := math.Nextafter(1, 2) - 1
		rcond *= float64(max(r, c))
		if rank := svd.Rank(rcond); rank > 0 {
			svd.SolveVecTo(coef, yc, rank)
		}
	}

	intercept := yMean
	for j := 0; j < c; j++ {
		intercept -= xMean[j] * coef.AtVec(j)
	}

	lr.Weights = coef
	lr.Intercept = intercept
	lr.NFeatures = c
	lr.NSamples = r
	lr.SetFitted()

	duration := time.Since(startTime)
	if lr.logger != nil {
		lr.logger.Info("Training completed",
			log.OperationKey, log.OperationFit,
			log.PhaseKey, log.PhaseTraining,
			log.DurationMsKey, duration.Milliseconds(),
			log.SamplesKey, r,
			log.FeaturesKey, c,
		)
	}

	return nil
}

// Predict generates predictions for the input feature matrix using the trained model.
//
// Each prediction is the dot product of the row with the learned weights
// plus the intercept. The model must be fitted or loaded first.
//
// Returns a prediction matrix of shape (n_samples, 1).
//
// Errors:
//   - NotFittedError: if the model hasn't been trained yet
//   - DimensionError: if X has a different number of features than the model
func (lr *LinearRegression) Predict(X mat.Matrix) (_ mat.Matrix, err error) {
	defer sippErrors.Recover(&err, "LinearRegression.Predict")
	if !lr.IsFitted() {
		return nil, sippErrors.NewNotFittedError("LinearRegression", "Predict")
	}

	r, c := X.Dims()
	if c != lr.NFeatures {
		return nil, sippErrors.NewDimensionError("LinearRegression.Predict", lr.NFeatures, c, 1)
	}

	if lr.logger != nil {
		lr.logger.Debug("Prediction started",
			log.OperationKey, log.OperationPredict,
			log.PhaseKey, log.PhaseInference,
			log.SamplesKey, r,
			log.FeaturesKey, c,
		)
	}

	// Prediction: y = X * weights + intercept
	predictions := mat.NewDense(r, 1, nil)

	for i := 0; i < r; i++ {
		pred := lr.Intercept
		for j := 0; j < c; j++ {
			pred += X.At(i, j) * lr.Weights.AtVec(j)
		}
		predictions.Set(i, 0, pred)
	}

	if lr.logger != nil {
		lr.logger.Debug("Prediction completed",
			log.OperationKey, log.OperationPredict,
			log.PredsKey, r,
		)
	}

	return predictions, nil
}

// Coefficients returns a copy of the learned weights.
func (lr *LinearRegression) Coefficients() []float64 {
	if lr.Weights == nil {
		return nil
	}

	weights := make([]float64, lr.Weights.Len())
	for i := 0; i < lr.Weights.Len(); i++ {
		weights[i] = lr.Weights.AtVec(i)
	}
	return weights
}

// Score calculates the coefficient of determination (R²) of the model.
//
// Zero-variance targets score 1 when predictions are exact and 0 otherwise.
func (lr *LinearRegression) Score(X, y mat.Matrix) (_ float64, err error) {
	defer sippErrors.Recover(&err, "LinearRegression.Score")
	if !lr.IsFitted() {
		return 0, sippErrors.NewNotFittedError("LinearRegression", "Score")
	}

	yPred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}

	r, _ := y.Dims()
	pr, _ := yPred.Dims()
	if r != pr {
		return 0, sippErrors.NewDimensionError("LinearRegression.Score", pr, r, 0)
	}

	var yMean float64
	for i := 0; i < r; i++ {
		yMean += y.At(i, 0)
	}
	yMean /= float64(r)

	var tss, rss float64
	for i := 0; i < r; i++ {
		yTrue := y.At(i, 0)
		yPredVal := yPred.At(i, 0)

		tss += (yTrue - yMean) * (yTrue - yMean)
		rss += (yTrue - yPredVal) * (yTrue - yPredVal)
	}

	if tss == 0 {
		if rss == 0 {
			return 1, nil
		}
		return 0, nil
	}

	return 1 - rss/tss, nil
}
