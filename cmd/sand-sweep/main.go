// Command sand-sweep runs one scenario across a matrix of dispatcher settings
// and checks that every configuration of a policy ends on the same grid.
package main

import (
	"context"
	"flag"
	"fmt"
	"hash/fnv"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"fallsand/internal/scenario"
	"fallsand/internal/sims/sandbox"
	"fallsand/pkg/sand"
)

type runSet struct {
	workers  int
	bandRows int
	policy   sand.Policy
}

func (r runSet) String() string {
	return fmt.Sprintf("policy=%s workers=%d band_rows=%d", r.policy, r.workers, r.bandRows)
}

type runResult struct {
	set       runSet
	digest    uint64
	particles int
	initial   int
	swallowed int
	elapsed   time.Duration
	err       error
}

func main() {
	scenarioPath := flag.String("scenario", "", "scenario YAML file (empty uses the built-in shelf)")
	steps := flag.Int("steps", 240, "steps to simulate per configuration")
	parallel := flag.Int("parallel", 2, "configurations run at once")
	workerList := flag.String("workers", "", "comma separated worker counts (default 1,2,GOMAXPROCS)")
	bandList := flag.String("band-rows", "1,8,32", "comma separated band heights")
	flag.Parse()

	scn, err := scenario.Load(*scenarioPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	workerOptions, err := parseInts(*workerList, []int{1, 2, runtime.GOMAXPROCS(0)})
	if err != nil {
		fmt.Fprintln(os.Stderr, "workers:", err)
		os.Exit(2)
	}
	bandOptions, err := parseInts(*bandList, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "band-rows:", err)
		os.Exit(2)
	}

	var sets []runSet
	for _, policy := range []sand.Policy{sand.PolicyClaim, sand.PolicyOverwrite} {
		for _, workers := range workerOptions {
			for _, rows := range bandOptions {
				sets = append(sets, runSet{workers: workers, bandRows: rows, policy: policy})
			}
		}
	}

	fmt.Printf("Sweeping %q over %d configurations (%d at once, %d steps)\n", scn.Name, len(sets), *parallel, *steps)

	jobs := make(chan runSet)
	results := make(chan runResult)
	var wg sync.WaitGroup

	for i := 0; i < *parallel; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for set := range jobs {
				results <- runScenario(scn, set, *steps)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, set := range sets {
			jobs <- set
		}
		close(jobs)
	}()

	start := time.Now()
	var all []runResult
	for res := range results {
		all = append(all, res)
	}
	sort.Slice(all, func(i, j int) bool {
		a, b := all[i].set, all[j].set
		if a.policy != b.policy {
			return a.policy < b.policy
		}
		if a.workers != b.workers {
			return a.workers < b.workers
		}
		return a.bandRows < b.bandRows
	})

	failed := false
	digests := map[sand.Policy]uint64{}
	for _, res := range all {
		if res.err != nil {
			fmt.Printf("%s: error: %v\n", res.set, res.err)
			failed = true
			continue
		}
		status := "ok"
		if want, ok := digests[res.set.policy]; !ok {
			digests[res.set.policy] = res.digest
		} else if want != res.digest {
			status = "DIVERGED"
			failed = true
		}
		if res.particles+res.swallowed != res.initial {
			status = "MASS CHANGED"
			failed = true
		}
		fmt.Printf("%-44s digest=%016x particles=%d/%d swallowed=%d took=%s %s\n",
			res.set, res.digest, res.particles, res.initial, res.swallowed, res.elapsed.Round(time.Millisecond), status)
	}
	fmt.Printf("\nSweep finished in %s\n", time.Since(start).Round(time.Millisecond))
	if failed {
		os.Exit(1)
	}
}

func runScenario(scn *scenario.Scenario, set runSet, steps int) runResult {
	res := runResult{set: set}
	world, err := sandbox.NewFromScenario(scn, sandbox.Config{
		Workers:  set.workers,
		BandRows: set.bandRows,
		Policy:   set.policy.String(),
	})
	if err != nil {
		res.err = err
		return res
	}
	g := world.Grid()
	res.initial = particles(g)

	start := time.Now()
	for i := 0; i < steps; i++ {
		if err := world.Step(context.Background()); err != nil {
			res.err = err
			return res
		}
		res.swallowed += world.LastStats().Swallowed
	}
	res.elapsed = time.Since(start)
	res.particles = particles(g)
	res.digest = digest(world.Cells())
	return res
}

func particles(g *sand.Grid) int {
	return g.Len() - g.Count(sand.Empty)
}

func digest(cells []uint8) uint64 {
	h := fnv.New64a()
	h.Write(cells)
	return h.Sum64()
}

func parseInts(list string, fallback []int) ([]int, error) {
	if strings.TrimSpace(list) == "" {
		return fallback, nil
	}
	var out []int
	for _, field := range strings.Split(list, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, err
		}
		if v <= 0 {
			return nil, fmt.Errorf("value %d must be positive", v)
		}
		out = append(out, v)
	}
	return out, nil
}
