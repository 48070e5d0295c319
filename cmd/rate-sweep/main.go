package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"squarelife/internal/data"
	"squarelife/internal/organism"
	"squarelife/internal/sims/squarelife"
)

type paramSet struct {
	reproduction float64
	mutation     float64
	metabolism   float64
}

func (p paramSet) String() string {
	return fmt.Sprintf("reproduction=%+.3f mutation=%+.3f metabolism=%+.3f", p.reproduction, p.mutation, p.metabolism)
}

func (p paramSet) genes() []organism.Gene {
	return []organism.Gene{
		{ID: 1001, Name: "sweep-reproduction", Type: organism.ReproductionRate(p.reproduction)},
		{ID: 1002, Name: "sweep-mutation", Type: organism.MutationRate(p.mutation)},
		{ID: 1003, Name: "sweep-metabolism", Type: organism.Metabolism(p.metabolism)},
	}
}

type scenarioResult struct {
	params paramSet
	squarelife.PopulationResult
}

func main() {
	steps := flag.Int("steps", 500, "ticks to simulate per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	width := flag.Int("width", 96, "world width")
	height := flag.Int("height", 96, "world height")
	seed := flag.Int64("seed", 1337, "seed used for deterministic runs")
	initial := flag.Int("initial", 24, "initial organisms per scenario")
	maxPop := flag.Int("max-population", 2048, "population cap per scenario")
	genomeFile := flag.String("genomes", "", "YAML genome library (defaults to built-ins)")
	flag.Parse()

	genomes := data.DefaultGenomes()
	if *genomeFile != "" {
		loaded, err := data.LoadGenomes(*genomeFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
			os.Exit(1)
		}
		genomes = loaded
	}

	baseCfg := squarelife.DefaultConfig()
	baseCfg.Width = *width
	baseCfg.Height = *height
	baseCfg.Seed = *seed
	baseCfg.Params.InitialOrganisms = *initial
	baseCfg.Params.MaxPopulation = *maxPop
	baseCfg.Genomes = genomes

	reproductionOptions := []float64{-0.08, -0.05, 0, 0.05, 0.1}
	mutationOptions := []float64{-0.1, -0.05, 0, 0.1}
	metabolismOptions := []float64{-0.05, 0, 0.4, 1.0}

	var sets []paramSet
	for _, r := range reproductionOptions {
		for _, m := range mutationOptions {
			for _, met := range metabolismOptions {
				sets = append(sets, paramSet{reproduction: r, mutation: m, metabolism: met})
			}
		}
	}

	fmt.Printf("Sweeping %d parameter sets (%d workers, %d steps)\n", len(sets), *workers, *steps)

	jobs := make(chan paramSet)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				cfg := baseCfg
				cfg.Genomes = squarelife.AugmentGenomes(baseCfg.Genomes, params.genes()...)
				results <- scenarioResult{params: params, PopulationResult: squarelife.SurvivalRun(cfg, *steps)}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	extinct := 0
	for res := range results {
		all = append(all, res)
		if !res.Survived() {
			extinct++
		}
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].FinalPopulation != all[j].FinalPopulation {
			return all[i].FinalPopulation > all[j].FinalPopulation
		}
		return all[i].PeakPopulation > all[j].PeakPopulation
	})
	elapsed := time.Since(start)

	fmt.Printf("\n%d/%d scenarios went extinct. Top 5 results (elapsed %s):\n", extinct, len(all), elapsed.Round(time.Millisecond))
	for i := 0; i < len(all) && i < 5; i++ {
		res := all[i]
		fmt.Printf("%2d) final=%d peak=%d@%d births=%d deaths=%d dropped=%d params=%s\n",
			i+1, res.FinalPopulation, res.PeakPopulation, res.PeakTick, res.Births, res.Deaths, res.Dropped, res.params)
	}
}
