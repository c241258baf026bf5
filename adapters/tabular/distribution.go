package tabular

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"tablero/domain/tabular"
)

// minDistributionSamples is the smallest set the shape markers are computed
// for; below that skewness and the normality check are noise.
const minDistributionSamples = 3

// distributionMarkers computes optional shape statistics for a numeric
// column. It never fails the profile: too few samples yields nil.
func distributionMarkers(values []tabular.Value) *tabular.DistributionMarkers {
	var nums []float64
	for _, v := range values {
		if v.Kind == tabular.KindNumber {
			nums = append(nums, v.Num)
		}
	}
	if len(nums) < minDistributionSamples {
		return nil
	}

	median, err := stats.Median(nums)
	if err != nil {
		return nil
	}
	stdDev, err := stats.StandardDeviation(nums)
	if err != nil {
		return nil
	}
	q1, err := stats.Percentile(nums, 25)
	if err != nil {
		return nil
	}
	q3, err := stats.Percentile(nums, 75)
	if err != nil {
		return nil
	}
	mean, _ := stats.Mean(nums)
	skew := skewness(nums, mean, stdDev)

	return &tabular.DistributionMarkers{
		Median:       median,
		StdDev:       stdDev,
		Q1:           q1,
		Q3:           q3,
		Skewness:     skew,
		NormalPValue: jarqueBeraPValue(nums, mean, stdDev, skew),
	}
}

func skewness(data []float64, mean, stdDev float64) float64 {
	if stdDev == 0 {
		return 0
	}
	var sum float64
	for _, x := range data {
		d := (x - mean) / stdDev
		sum += d * d * d
	}
	return sum / float64(len(data))
}

// jarqueBeraPValue runs the Jarque-Bera normality test; the statistic is
// asymptotically chi-squared with two degrees of freedom.
func jarqueBeraPValue(data []float64, mean, stdDev, skew float64) float64 {
	if stdDev == 0 {
		return 0
	}
	var kurt float64
	for _, x := range data {
		d := (x - mean) / stdDev
		kurt += d * d * d * d
	}
	n := float64(len(data))
	kurt = kurt/n - 3
	jb := n / 6 * (skew*skew + kurt*kurt/4)
	if math.IsNaN(jb) || math.IsInf(jb, 0) {
		return 0
	}
	chi2 := distuv.ChiSquared{K: 2}
	return 1 - chi2.CDF(jb)
}
