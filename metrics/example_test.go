package metrics_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/sipp/linear"
	"github.com/ezoic/sipp/metrics"
)

// Impact_Score values of four sample districts and a model's predictions
// for them. Residuals are -2, 3, -1 and 1.
var (
	impactTrue = []float64{34.05, 65.58, 34.62, 71.21}
	impactPred = []float64{36.05, 62.58, 35.62, 70.21}
)

func impactVectors() (*mat.VecDense, *mat.VecDense) {
	return mat.NewVecDense(len(impactTrue), impactTrue), mat.NewVecDense(len(impactPred), impactPred)
}

// ExampleMSE reports the mean squared residual of the impact predictions
func ExampleMSE() {
	yTrue, yPred := impactVectors()

	mse, err := metrics.MSE(yTrue, yPred)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("MSE: %.2f\n", mse)

	// Output: MSE: 3.75
}

// ExampleRMSE reports the error in score points
func ExampleRMSE() {
	yTrue, yPred := impactVectors()

	rmse, err := metrics.RMSE(yTrue, yPred)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("RMSE: %.2f points\n", rmse)

	// Output: RMSE: 1.94 points
}

func ExampleMAE() {
	yTrue, yPred := impactVectors()

	mae, err := metrics.MAE(yTrue, yPred)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("MAE: %.2f\n", mae)

	// Output: MAE: 1.75
}

// ExampleR2Score scores the impact predictions against the score variance
func ExampleR2Score() {
	yTrue, yPred := impactVectors()

	r2, err := metrics.R2Score(yTrue, yPred)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("R²: %.3f\n", r2)

	// Output: R²: 0.987
}

// ExampleR2Score_constantTarget shows the score for a target with no variance
func ExampleR2Score_constantTarget() {
	yTrue := mat.NewVecDense(1, []float64{80})
	yPred := mat.NewVecDense(1, []float64{80})

	r2, err := metrics.R2Score(yTrue, yPred)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("R²: %.1f\n", r2)

	// Output: R²: 1.0
}

// ExampleColumnVector evaluates a fitted model by converting its Predict
// output into the vector the metrics take.
func ExampleColumnVector() {
	// Impact_Score = 0.2*Budget(thousands) + 20
	X := mat.NewDense(3, 1, []float64{50, 100, 150})
	y := mat.NewVecDense(3, []float64{30, 40, 50})

	lr := linear.NewLinearRegression()
	if err := lr.Fit(X, y); err != nil {
		fmt.Println("error:", err)
		return
	}
	pred, err := lr.Predict(X)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	yPred := metrics.ColumnVector(pred)
	r2, err := metrics.R2Score(y, yPred)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("predictions: %d, first: %.2f\n", yPred.Len(), yPred.AtVec(0))
	fmt.Printf("R²: %.4f\n", r2)

	// Output: predictions: 3, first: 30.00
	// R²: 1.0000
}
