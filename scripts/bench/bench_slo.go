// bench_slo.go — SLO benchmark for the conversational round trip.
// Run: go run ./scripts/bench [--messages N] [--iterations N] [--out path]
//
// Seeds an in-memory journal with synthetic conversations, then
// generates a JSON report with p50/p95/p99 latencies for the add,
// list-reply, token-search, and snapshot paths.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/hurttlocker/jot/internal/journal"
	"github.com/hurttlocker/jot/internal/store"
)

type BenchResult struct {
	Command    string  `json:"command"`
	Iterations int     `json:"iterations"`
	P50Ms      float64 `json:"p50_ms"`
	P95Ms      float64 `json:"p95_ms"`
	P99Ms      float64 `json:"p99_ms"`
	MinMs      float64 `json:"min_ms"`
	MaxMs      float64 `json:"max_ms"`
	MeanMs     float64 `json:"mean_ms"`
	Pass       bool    `json:"pass"`
	SLOMs      float64 `json:"slo_ms"`
}

type BenchReport struct {
	GeneratedAt   string        `json:"generated_at"`
	Messages      int           `json:"messages"`
	Entries       int           `json:"entries"`
	ItemEntries   int           `json:"item_entries"`
	DistinctItems int           `json:"distinct_items"`
	Results       []BenchResult `json:"results"`
	AllPass       bool          `json:"all_pass"`
}

func main() {
	messages := flag.Int("messages", 5000, "Number of synthetic messages to seed")
	iterations := flag.Int("iterations", 50, "Number of iterations per benchmark")
	outFile := flag.String("out", "", "Output JSON file (default: stdout)")
	flag.Parse()

	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))
	engine := journal.New(store.New())

	fmt.Fprintf(os.Stderr, "jot SLO Benchmark\n")
	fmt.Fprintf(os.Stderr, "  Messages: %d\n", *messages)
	fmt.Fprintf(os.Stderr, "  Iterations: %d\n\n", *iterations)

	seedStart := time.Now()
	for i := 0; i < *messages; i++ {
		engine.HandleMessage(ctx, syntheticMessage(rng))
	}
	seedDur := time.Since(seedStart)
	fmt.Fprintf(os.Stderr, "  Seeded in %.1fs (%.0f msg/sec)\n\n",
		seedDur.Seconds(), float64(*messages)/seedDur.Seconds())

	stats := engine.Store().Snapshot()
	report := BenchReport{
		GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
		Messages:      *messages,
		Entries:       stats.Entries,
		ItemEntries:   stats.EntriesWithItems,
		DistinctItems: stats.DistinctItems,
		AllPass:       true,
	}

	// 1. Add round trip (classify, extract, store)
	addTimes := benchmarkAdds(ctx, engine, rng, *iterations)
	addResult := computeResult("say_add", addTimes, 50)
	report.Results = append(report.Results, addResult)
	if !addResult.Pass {
		report.AllPass = false
	}

	// 2. List-query round trip (match everything, aggregate items,
	// re-extract itemless notes)
	replyTimes := benchmarkListReplies(ctx, engine, *iterations)
	replyResult := computeResult("say_query", replyTimes, 1000)
	report.Results = append(report.Results, replyResult)
	if !replyResult.Pass {
		report.AllPass = false
	}

	// 3. Tokenized search over note content
	searchTimes := benchmarkTokenSearch(engine, *iterations)
	searchResult := computeResult("search_tokens", searchTimes, 250)
	report.Results = append(report.Results, searchResult)
	if !searchResult.Pass {
		report.AllPass = false
	}

	// 4. Store snapshot
	snapTimes := benchmarkSnapshot(engine, *iterations)
	snapResult := computeResult("snapshot", snapTimes, 250)
	report.Results = append(report.Results, snapResult)
	if !snapResult.Pass {
		report.AllPass = false
	}

	for _, r := range report.Results {
		status := "✅ PASS"
		if !r.Pass {
			status = "❌ FAIL"
		}
		fmt.Fprintf(os.Stderr, "  %s: p50=%.1fms p95=%.1fms p99=%.1fms (SLO: %.0fms) %s\n",
			r.Command, r.P50Ms, r.P95Ms, r.P99Ms, r.SLOMs, status)
	}

	if report.AllPass {
		fmt.Fprintf(os.Stderr, "\n✅ All SLOs met\n")
	} else {
		fmt.Fprintf(os.Stderr, "\n❌ Some SLOs missed\n")
	}

	jsonBytes, _ := json.MarshalIndent(report, "", "  ")
	if *outFile != "" {
		os.WriteFile(*outFile, jsonBytes, 0644)
		fmt.Fprintf(os.Stderr, "\nReport written to %s\n", *outFile)
	} else {
		fmt.Println(string(jsonBytes))
	}
}

func benchmarkAdds(ctx context.Context, eng *journal.Engine, rng *rand.Rand, iterations int) []float64 {
	var times []float64
	for i := 0; i < iterations; i++ {
		msg := syntheticAdd(rng)
		start := time.Now()
		eng.HandleMessage(ctx, msg)
		times = append(times, float64(time.Since(start).Microseconds())/1000.0)
	}
	return times
}

func benchmarkListReplies(ctx context.Context, eng *journal.Engine, iterations int) []float64 {
	var times []float64
	for i := 0; i < iterations; i++ {
		q := listQueries[i%len(listQueries)]
		start := time.Now()
		eng.HandleMessage(ctx, q)
		times = append(times, float64(time.Since(start).Microseconds())/1000.0)
	}
	return times
}

func benchmarkTokenSearch(eng *journal.Engine, iterations int) []float64 {
	var times []float64
	for i := 0; i < iterations; i++ {
		q := tokenQueries[i%len(tokenQueries)]
		start := time.Now()
		eng.Search().Query(q)
		times = append(times, float64(time.Since(start).Microseconds())/1000.0)
	}
	return times
}

func benchmarkSnapshot(eng *journal.Engine, iterations int) []float64 {
	var times []float64
	for i := 0; i < iterations; i++ {
		start := time.Now()
		eng.Store().Snapshot()
		times = append(times, float64(time.Since(start).Microseconds())/1000.0)
	}
	return times
}

func computeResult(name string, times []float64, sloMs float64) BenchResult {
	sort.Float64s(times)
	n := len(times)
	if n == 0 {
		return BenchResult{Command: name, SLOMs: sloMs}
	}

	sum := 0.0
	for _, t := range times {
		sum += t
	}

	p95 := times[int(float64(n)*0.95)]
	result := BenchResult{
		Command:    name,
		Iterations: n,
		P50Ms:      times[n/2],
		P95Ms:      p95,
		P99Ms:      times[int(float64(n)*0.99)],
		MinMs:      times[0],
		MaxMs:      times[n-1],
		MeanMs:     sum / float64(n),
		SLOMs:      sloMs,
		Pass:       p95 <= sloMs,
	}

	return result
}
