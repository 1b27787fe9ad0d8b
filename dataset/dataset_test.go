package dataset

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sippErrors "github.com/ezoic/sipp/pkg/errors"
)

func TestLoad(t *testing.T) {
	ds, err := Load(filepath.Join("testdata", "districts.csv"), Options{RequireTarget: true})
	require.NoError(t, err)

	require.Equal(t, 5, ds.Len())
	first := ds.Rows[0]
	assert.Equal(t, "Lalitpur", first.District)
	assert.Equal(t, [NumFeatures]float64{120.5, 300, 2, 7}, first.Features)
	assert.Equal(t, 68.2, first.ImpactScore)
	assert.True(t, first.HasTarget)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open dataset")
}

func TestDistricts(t *testing.T) {
	ds, err := Load(filepath.Join("testdata", "districts.csv"), Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Bhaktapur", "Kathmandu", "Lalitpur"}, ds.Districts())
}

func TestDistrictsSortedLexically(t *testing.T) {
	csv := "District,Budget,Target_Audience,Location,Sustainability_Factors\n" +
		"b,1,1,1,1\nB,1,1,1,1\na,1,1,1,1\nb,1,1,1,1\n,1,1,1,1\n"
	ds, err := Read(strings.NewReader(csv), Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"B", "a", "b"}, ds.Districts())
}

func TestFilter(t *testing.T) {
	ds, err := Load(filepath.Join("testdata", "districts.csv"), Options{})
	require.NoError(t, err)

	rows := ds.Filter("Kathmandu")
	require.Len(t, rows, 2)
	assert.Equal(t, 200.0, rows[0].Features[0])
	assert.Equal(t, 180.0, rows[1].Features[0])

	assert.Empty(t, ds.Filter("Pokhara"))
	assert.Empty(t, ds.Filter("kathmandu"))
}

func TestFeatureMatrixAndTargets(t *testing.T) {
	ds, err := Load(filepath.Join("testdata", "districts.csv"), Options{RequireTarget: true})
	require.NoError(t, err)

	rows := ds.Filter("Lalitpur")
	X := FeatureMatrix(rows)
	r, c := X.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, NumFeatures, c)
	assert.Equal(t, 95.0, X.At(1, 0))
	assert.Equal(t, 5.0, X.At(1, 3))

	y := TargetVector(rows)
	assert.Equal(t, []float64{68.2, 55.0}, y.RawVector().Data)

	r, c = FeatureMatrix(nil).Dims()
	assert.Zero(t, r)
	assert.Zero(t, c)
}

func TestReadColumnOrderAndWhitespace(t *testing.T) {
	csv := "Impact_Score, Sustainability_Factors,Location,Target_Audience,Budget,District\n" +
		"80, 4 ,3,50, 100,  A \n"
	ds, err := Read(strings.NewReader(csv), Options{RequireTarget: true})
	require.NoError(t, err)

	require.Equal(t, 1, ds.Len())
	assert.Equal(t, "A", ds.Rows[0].District)
	assert.Equal(t, [NumFeatures]float64{100, 50, 3, 4}, ds.Rows[0].Features)
	assert.Equal(t, 80.0, ds.Rows[0].ImpactScore)
}

func TestReadErrors(t *testing.T) {
	header := "District,Budget,Target_Audience,Location,Sustainability_Factors,Impact_Score\n"

	tests := []struct {
		name  string
		csv   string
		opts  Options
		check func(t *testing.T, err error)
	}{
		{
			name: "empty input",
			csv:  "",
			check: func(t *testing.T, err error) {
				assert.True(t, sippErrors.Is(err, sippErrors.ErrEmptyData))
			},
		},
		{
			name: "header only",
			csv:  header,
			check: func(t *testing.T, err error) {
				assert.True(t, sippErrors.Is(err, sippErrors.ErrEmptyData))
			},
		},
		{
			name: "missing feature column",
			csv:  "District,Budget,Location,Sustainability_Factors\nA,1,2,3\n",
			check: func(t *testing.T, err error) {
				assert.True(t, sippErrors.Is(err, sippErrors.ErrMissingColumn))
				assert.Contains(t, err.Error(), "Target_Audience")
			},
		},
		{
			name: "missing target when required",
			csv:  "District,Budget,Target_Audience,Location,Sustainability_Factors\nA,1,2,3,4\n",
			opts: Options{RequireTarget: true},
			check: func(t *testing.T, err error) {
				assert.True(t, sippErrors.Is(err, sippErrors.ErrMissingColumn))
				assert.Contains(t, err.Error(), "Impact_Score")
			},
		},
		{
			name: "non-numeric feature",
			csv:  header + "A,1,2,3,4,5\nB,1,two,3,4,5\n",
			check: func(t *testing.T, err error) {
				var colErr *sippErrors.ColumnError
				require.True(t, sippErrors.As(err, &colErr))
				assert.Equal(t, 2, colErr.Row)
				assert.Equal(t, "Target_Audience", colErr.Column)
			},
		},
		{
			name: "empty feature",
			csv:  header + "A,1,,3,4,5\n",
			check: func(t *testing.T, err error) {
				var colErr *sippErrors.ColumnError
				require.True(t, sippErrors.As(err, &colErr))
				assert.Equal(t, "", colErr.Value)
			},
		},
		{
			name: "bad target when required",
			csv:  header + "A,1,2,3,4,n/a\n",
			opts: Options{RequireTarget: true},
			check: func(t *testing.T, err error) {
				var colErr *sippErrors.ColumnError
				require.True(t, sippErrors.As(err, &colErr))
				assert.Equal(t, "Impact_Score", colErr.Column)
			},
		},
		{
			name: "ragged row",
			csv:  header + "A,1,2,3\n",
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "row 1")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.csv), tt.opts)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestReadBadTargetIgnoredForPrediction(t *testing.T) {
	csv := "District,Budget,Target_Audience,Location,Sustainability_Factors,Impact_Score\n" +
		"A,1,2,3,4,\n"
	ds, err := Read(strings.NewReader(csv), Options{})
	require.NoError(t, err)
	assert.False(t, ds.Rows[0].HasTarget)
}
