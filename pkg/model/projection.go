package model

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Projection holds 2-D PCA coordinates for the transcriptomics feature
// matrix, one (X, Y) pair per input row.
type Projection struct {
	X                 []float64  `json:"x"`
	Y                 []float64  `json:"y"`
	ExplainedVariance [2]float64 `json:"explained_variance"`
}

// expressionMatrix lays out logFC, p_value and the extra feature columns as a
// dense row-major matrix.
func expressionMatrix(rows []ExpressionRecord) *mat.Dense {
	if len(rows) == 0 {
		return nil
	}
	cols := 2 + len(rows[0].Features)
	data := make([]float64, 0, len(rows)*cols)
	for _, r := range rows {
		data = append(data, r.LogFC, r.PValue)
		data = append(data, r.Features...)
	}
	return mat.NewDense(len(rows), cols, data)
}

// ProjectPCA computes the first two principal components of the
// transcriptomics numeric columns. It needs at least 3 rows and 3 columns;
// smaller inputs return an error the pipeline reports as a warning.
func ProjectPCA(rows []ExpressionRecord) (*Projection, error) {
	x := expressionMatrix(rows)
	if x == nil {
		return nil, fmt.Errorf("projection needs transcriptomics rows")
	}

	n, d := x.Dims()
	if n <= 2 || d <= 2 {
		return nil, fmt.Errorf("projection needs at least 3 samples and 3 features, got %dx%d", n, d)
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(x, nil); !ok {
		return nil, fmt.Errorf("principal component decomposition failed")
	}

	var vecs mat.Dense
	pc.VectorsTo(&vecs)
	vars := pc.VarsTo(nil)

	// Center the columns before projecting onto the leading components.
	centered := mat.NewDense(n, d, nil)
	for j := 0; j < d; j++ {
		col := mat.Col(nil, j, x)
		mean := stat.Mean(col, nil)
		for i := 0; i < n; i++ {
			centered.Set(i, j, col[i]-mean)
		}
	}

	var proj mat.Dense
	proj.Mul(centered, vecs.Slice(0, d, 0, 2))

	out := &Projection{
		X: make([]float64, n),
		Y: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		out.X[i] = proj.At(i, 0)
		out.Y[i] = proj.At(i, 1)
	}

	total := 0.0
	for _, v := range vars {
		total += v
	}
	if total > 0 {
		out.ExplainedVariance[0] = vars[0] / total
		out.ExplainedVariance[1] = vars[1] / total
	}

	return out, nil
}
