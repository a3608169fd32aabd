// Package mlmodel implements the estimators behind invoice suggestions:
// seeded random forests of regression trees, a binary classifier built on
// them, and the persisted artifact that bundles fitted models with the
// feature encoders.
package mlmodel

import "sort"

// Node is a node of a regression tree. A node with no children is a leaf
// and predicts Value; otherwise samples with feature <= Threshold descend
// left. Fields are exported for gob encoding.
type Node struct {
	Left      *Node
	Right     *Node
	Threshold float64
	Value     float64
	Feature   int
}

// Predict walks the tree for one feature vector.
func (n *Node) Predict(x []float64) float64 {
	node := n
	for node.Left != nil {
		if x[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Value
}

// treeParams bounds tree growth.
type treeParams struct {
	maxDepth int
	minSplit int
}

// growTree fits a regression tree on the rows of X selected by idx,
// minimizing the sum of squared errors at each split.
func growTree(x [][]float64, y []float64, idx []int, depth int, params treeParams) *Node {
	node := &Node{Value: mean(y, idx)}
	if depth >= params.maxDepth || len(idx) < params.minSplit {
		return node
	}

	feature, threshold, ok := bestSplit(x, y, idx)
	if !ok {
		return node
	}

	var left, right []int
	for _, i := range idx {
		if x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return node
	}

	node.Feature = feature
	node.Threshold = threshold
	node.Left = growTree(x, y, left, depth+1, params)
	node.Right = growTree(x, y, right, depth+1, params)
	return node
}

// bestSplit scans every feature for the threshold with the largest SSE
// reduction. Candidate thresholds sit midway between distinct consecutive
// values, so tie order among equal values cannot affect the result.
func bestSplit(x [][]float64, y []float64, idx []int) (feature int, threshold float64, ok bool) {
	n := len(idx)
	if n < 2 {
		return 0, 0, false
	}

	type pair struct{ v, y float64 }
	pairs := make([]pair, n)

	baseSSE := sse(y, idx)
	bestGain := 0.0

	for f := 0; f < len(x[idx[0]]); f++ {
		for i, row := range idx {
			pairs[i] = pair{v: x[row][f], y: y[row]}
		}
		sort.Slice(pairs, func(a, b int) bool { return pairs[a].v < pairs[b].v })

		var leftSum, leftSq float64
		var totalSum, totalSq float64
		for _, p := range pairs {
			totalSum += p.y
			totalSq += p.y * p.y
		}

		for i := 0; i < n-1; i++ {
			leftSum += pairs[i].y
			leftSq += pairs[i].y * pairs[i].y
			if pairs[i].v == pairs[i+1].v {
				continue
			}

			leftN := float64(i + 1)
			rightN := float64(n - i - 1)
			rightSum := totalSum - leftSum
			rightSq := totalSq - leftSq

			split := (leftSq - leftSum*leftSum/leftN) + (rightSq - rightSum*rightSum/rightN)
			gain := baseSSE - split
			if gain > bestGain {
				bestGain = gain
				feature = f
				threshold = (pairs[i].v + pairs[i+1].v) / 2
				ok = true
			}
		}
	}
	return feature, threshold, ok
}

func mean(y []float64, idx []int) float64 {
	if len(idx) == 0 {
		return 0
	}
	var sum float64
	for _, i := range idx {
		sum += y[i]
	}
	return sum / float64(len(idx))
}

func sse(y []float64, idx []int) float64 {
	m := mean(y, idx)
	var total float64
	for _, i := range idx {
		d := y[i] - m
		total += d * d
	}
	return total
}
