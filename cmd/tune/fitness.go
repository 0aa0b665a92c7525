package main

import (
	"fmt"
	"math"
	"sync"

	"github.com/pthm-cable/driftleaf/config"
	"github.com/pthm-cable/driftleaf/game"
)

// FitnessEvaluator plays headless sessions with the autopilot and scores
// a parameter vector by the rapids it clears.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int
	seeds      []int64
	baseConfig *config.Config

	mu          sync.Mutex
	lastRuns    int
	lastCleared float64
}

// NewFitnessEvaluator creates an evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// LastResult returns the mean rapids cleared and total runs of the most
// recent evaluation.
func (fe *FitnessEvaluator) LastResult() (float64, int) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastCleared, fe.lastRuns
}

type seedResult struct {
	cleared float64
	runs    int
	err     error
}

// Evaluate returns the fitness of x (lower is better): the negated mean
// rapids cleared per run across all seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSession(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var cleared float64
	var runs int
	for _, r := range results {
		if r.err != nil {
			fmt.Printf("  session failed: %v\n", r.err)
			return math.Inf(1)
		}
		cleared += r.cleared
		runs += r.runs
	}
	mean := cleared / float64(max(runs, 1))

	fe.mu.Lock()
	fe.lastCleared = mean
	fe.lastRuns = runs
	fe.mu.Unlock()

	return -mean
}

// runSession plays one seed to maxTicks. A run still in progress at the
// end counts with the rapids it has cleared so far.
func (fe *FitnessEvaluator) runSession(cfg *config.Config, seed int64) seedResult {
	g, err := game.NewGame(cfg, game.Options{Seed: seed})
	if err != nil {
		return seedResult{err: err}
	}
	defer g.Close()

	pilot := game.NewAutopilot(cfg.Autopilot)
	for g.Tick() < fe.maxTicks {
		if err := g.Update(pilot.Input(g)); err != nil {
			return seedResult{err: err}
		}
	}

	sum := g.Stats().Summary()
	res := seedResult{cleared: sum.MeanScore * float64(sum.Runs), runs: sum.Runs}
	if p := g.Play(); p != nil && !p.Over() {
		res.cleared += float64(p.RapidsCleared())
		res.runs++
	}
	return res
}

// copyConfig returns a copy of the base config that Evaluate can mutate.
// Rock variants are shared; nothing writes to them.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}
