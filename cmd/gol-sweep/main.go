package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"conway/internal/app"
	"conway/internal/sweep"

	"github.com/charmbracelet/log"
)

type outcome struct {
	res sweep.Result
	err error
}

func main() {
	sizes := flag.String("sizes", "16,64,128,256", "comma separated grid sizes")
	seeds := flag.String("seeds", "1,42,1337", "comma separated seeds")
	steps := flag.Int("steps", 100, "generations per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of scenarios run concurrently")
	tasks := flag.Int("task-workers", 0, "parallel strategy worker limit (0 = GOMAXPROCS)")
	chunk := flag.Int("chunk", 0, "cells per parallel task (0 = default)")
	level := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	logger, err := app.NewLogger(os.Stderr, *level, "sweep")
	if err != nil {
		log.Fatal(err)
	}
	sizeList, err := parseInts(*sizes)
	if err != nil {
		logger.Fatal("bad -sizes", "err", err)
	}
	seedList, err := parseSeeds(*seeds)
	if err != nil {
		logger.Fatal("bad -seeds", "err", err)
	}

	plan := sweep.Plan(sizeList, seedList, *steps)
	for i := range plan {
		plan[i].Workers = *tasks
		plan[i].Chunk = *chunk
	}
	logger.Info("sweeping", "scenarios", len(plan), "workers", *workers, "steps", *steps)

	jobs := make(chan sweep.Scenario)
	results := make(chan outcome)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := range jobs {
				res, err := sweep.Run(s)
				results <- outcome{res: res, err: err}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, s := range plan {
			jobs <- s
		}
		close(jobs)
	}()

	start := time.Now()
	var all []sweep.Result
	failed := 0
	for out := range results {
		if out.err != nil {
			failed++
			logger.Error("scenario failed", "scenario", out.res.Scenario, "err", out.err)
			continue
		}
		if out.res.DivergedAt != 0 {
			failed++
			logger.Error("strategies diverged", "scenario", out.res.Scenario, "generation", out.res.DivergedAt)
		}
		all = append(all, out.res)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].Scenario.Size != all[j].Scenario.Size {
			return all[i].Scenario.Size < all[j].Scenario.Size
		}
		return all[i].Scenario.Seed < all[j].Scenario.Seed
	})

	fmt.Printf("\nResults (elapsed %s):\n", time.Since(start).Round(time.Millisecond))
	for _, r := range all {
		status := "ok"
		if r.DivergedAt != 0 {
			status = fmt.Sprintf("DIVERGED@%d", r.DivergedAt)
		}
		fmt.Printf("%-36s pop=%d->%d changes=%d seq=%s par=%s speedup=%.2fx %s\n",
			r.Scenario, r.InitialPopulation, r.FinalPopulation, r.Changes,
			r.Sequential.Round(time.Microsecond), r.Parallel.Round(time.Microsecond), r.Speedup(), status)
	}
	if failed > 0 {
		logger.Error("sweep failed", "failed", failed, "total", len(plan))
		os.Exit(1)
	}
}

func parseInts(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func parseSeeds(s string) ([]uint64, error) {
	var out []uint64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
