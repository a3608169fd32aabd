package mlmodel

import "math/rand"

// ForestParams configures random-forest fitting. The defaults mirror the
// estimators the suggestion models were tuned with.
type ForestParams struct {
	Trees    int
	MaxDepth int
	MinSplit int
	Seed     int64
}

// DefaultForestParams returns the standard suggestion-model configuration.
func DefaultForestParams() ForestParams {
	return ForestParams{
		Trees:    50,
		MaxDepth: 10,
		MinSplit: 2,
		Seed:     42,
	}
}

// Forest is a bagged ensemble of regression trees. Fitting is deterministic
// for a given seed; prediction is the mean over trees.
type Forest struct {
	Trees []*Node
}

// FitForest trains a forest on the feature matrix x and target y. Each tree
// sees a bootstrap sample drawn from its own seeded stream.
func FitForest(x [][]float64, y []float64, params ForestParams) *Forest {
	forest := &Forest{Trees: make([]*Node, 0, params.Trees)}
	tp := treeParams{maxDepth: params.MaxDepth, minSplit: params.MinSplit}

	n := len(x)
	for t := 0; t < params.Trees; t++ {
		rng := rand.New(rand.NewSource(params.Seed + int64(t)))
		idx := make([]int, n)
		for i := range idx {
			idx[i] = rng.Intn(n)
		}
		forest.Trees = append(forest.Trees, growTree(x, y, idx, 0, tp))
	}
	return forest
}

// Predict returns the ensemble mean for one feature vector.
func (f *Forest) Predict(x []float64) float64 {
	if len(f.Trees) == 0 {
		return 0
	}
	var sum float64
	for _, tree := range f.Trees {
		sum += tree.Predict(x)
	}
	return sum / float64(len(f.Trees))
}

// Classifier is a binary classifier built on a regression forest over 0/1
// labels: the ensemble mean is a vote share, thresholded at one half.
type Classifier struct {
	Forest *Forest
}

// FitClassifier trains a classifier on boolean labels.
func FitClassifier(x [][]float64, flags []bool, params ForestParams) *Classifier {
	y := make([]float64, len(flags))
	for i, flag := range flags {
		if flag {
			y[i] = 1
		}
	}
	return &Classifier{Forest: FitForest(x, y, params)}
}

// PredictFlag returns the majority vote for one feature vector.
func (c *Classifier) PredictFlag(x []float64) bool {
	return c.Forest.Predict(x) >= 0.5
}
