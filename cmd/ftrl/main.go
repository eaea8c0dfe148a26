// Package main provides the ftrl CLI: a synthetic click-through-rate
// training run that exercises the dense and sparse FTRL paths.
package main

import (
	"fmt"
	"math"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/ftrl-ml/ftrl/nn"
	"github.com/ftrl-ml/ftrl/optim"
	"github.com/ftrl-ml/ftrl/tensor"
)

const version = "v0.1.0-dev"

func init() {
	pflag.Int("samples", 200000, "Number of synthetic training samples")
	pflag.Int("features", 1<<16, "Size of the hashed feature space (weight rows)")
	pflag.Int("active", 16, "Active features per sample")
	pflag.Int("report-every", 20000, "Samples between progress reports")
	pflag.Uint64("seed", 42, "RNG seed")
	pflag.Float64("alpha", 0.1, "FTRL learning-rate scale")
	pflag.Float64("beta", 1.0, "FTRL smoothing term")
	pflag.Float64("lambda1", 1.0, "L1 regularization strength")
	pflag.Float64("lambda2", 1.0, "L2 regularization strength")
	pflag.Parse()
}

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		log.WithError(err).Fatal("Failed to bind flags")
	}

	if pflag.NArg() > 0 && pflag.Arg(0) == "version" {
		fmt.Printf("ftrl %s\n", version)
		return
	}

	if err := run(); err != nil {
		log.WithError(err).Error("Training failed")
		os.Exit(1)
	}
}

func run() error {
	samples := viper.GetInt("samples")
	features := viper.GetInt("features")
	active := viper.GetInt("active")
	reportEvery := viper.GetInt("report-every")

	weights, err := tensor.Zeros(tensor.Shape{features, 1}, tensor.Float64)
	if err != nil {
		return err
	}
	param := nn.NewParameter("weights", weights)

	optimizer, err := optim.NewFTRL([]*nn.Parameter{param}, optim.FTRLConfig{
		Alpha:   viper.GetFloat64("alpha"),
		Beta:    viper.GetFloat64("beta"),
		Lambda1: viper.GetFloat64("lambda1"),
		Lambda2: viper.GetFloat64("lambda2"),
	})
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"samples":  samples,
		"features": features,
		"active":   active,
		"alpha":    optimizer.GetLR(),
	}).Info("Starting synthetic CTR training")

	rng := rand.New(rand.NewSource(viper.GetUint64("seed")))
	truth := makeGroundTruth(rng, features)

	w := weights.AsFloat64()
	losses := make([]float64, 0, reportEvery)
	idxBuf := make([]int64, active)
	gradBuf := make([]float64, active)

	for s := 1; s <= samples; s++ {
		// Draw a sparse binary sample: `active` hashed feature indices,
		// duplicates allowed (the engine composes them sequentially).
		var scoreTrue, score float64
		for j := 0; j < active; j++ {
			idx := rng.Int63n(int64(features))
			idxBuf[j] = idx
			scoreTrue += truth[idx]
			score += w[idx]
		}
		label := 0.0
		if (distuv.Bernoulli{P: sigmoid(scoreTrue), Src: rng}).Rand() == 1 {
			label = 1.0
		}

		// Logistic loss gradient w.r.t. each active weight is (p - y).
		p := sigmoid(score)
		for j := range gradBuf {
			gradBuf[j] = p - label
		}
		losses = append(losses, logLoss(p, label))

		indices, err := tensor.FromSlice(idxBuf, tensor.Shape{active})
		if err != nil {
			return err
		}
		grad, err := tensor.FromSlice(gradBuf, tensor.Shape{active, 1})
		if err != nil {
			return err
		}
		if err := optimizer.StepSparse(param, indices, grad); err != nil {
			return err
		}

		if s%reportEvery == 0 {
			log.WithFields(log.Fields{
				"sample":   s,
				"log_loss": stat.Mean(losses, nil),
				"nonzero":  nonzeroFraction(w),
			}).Info("Progress")
			losses = losses[:0]
		}
	}

	log.WithFields(log.Fields{
		"nonzero": nonzeroFraction(w),
	}).Info("Training complete")
	return nil
}

// makeGroundTruth builds a sparse true weight vector: a few strong
// signals in a sea of zeros, the regime FTRL's L1 term is built for.
func makeGroundTruth(rng *rand.Rand, features int) []float64 {
	truth := make([]float64, features)
	signal := distuv.Normal{Mu: 0, Sigma: 2, Src: rng}
	for i := 0; i < features/100; i++ {
		truth[rng.Intn(features)] = signal.Rand()
	}
	return truth
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func logLoss(p, y float64) float64 {
	const eps = 1e-15
	p = math.Min(math.Max(p, eps), 1-eps)
	return -(y*math.Log(p) + (1-y)*math.Log(1-p))
}

func nonzeroFraction(w []float64) float64 {
	n := 0
	for _, v := range w {
		if v != 0 {
			n++
		}
	}
	return float64(n) / float64(len(w))
}
