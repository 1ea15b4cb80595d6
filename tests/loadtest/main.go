package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

const (
	baseURL      = "http://127.0.0.1:18090"
	numWorkers   = 50
	testDuration = 10 * time.Second
	numEmployees = 12
	numMonths    = 12
	year         = 2025
)

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

func main() {
	fmt.Println("=== ShiftPlan Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s\n", numWorkers, testDuration)
	fmt.Printf("Employees: %d | Months: %d\n\n", numEmployees, numMonths)

	// Wait for server
	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	// Phase 1: Seed every month
	fmt.Println("\n--- Phase 1: Seeding months (POST /api/snapshots) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doSave(rng)
	})

	// Phase 2: Mixed read/write load
	fmt.Println("\n--- Phase 2: Mixed load (40% save, 60% read) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.40:
			return doSave(rng)
		case r < 0.75:
			return doGet("/api/snapshots", rng)
		case r < 0.90:
			return doGet("/api/hours", rng)
		default:
			return doGet("/api/coverage", rng)
		}
	})

	// Phase 3: Read-heavy load, share links included
	fmt.Println("\n--- Phase 3: Read-heavy load (10% save, 90% read) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.10:
			return doSave(rng)
		case r < 0.50:
			return doGet("/api/snapshots", rng)
		case r < 0.70:
			return doView(rng)
		default:
			return doGet("/api/hours", rng)
		}
	})
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-22s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + repeat("-", 88))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		avg := avgDuration(s.latencies)
		p50 := percentile(s.latencies, 0.50)
		p95 := percentile(s.latencies, 0.95)
		p99 := percentile(s.latencies, 0.99)

		fmt.Printf("  %-22s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors, fmtDur(avg), fmtDur(p50), fmtDur(p95), fmtDur(p99))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + repeat("-", 88))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func randomSnapshot(rng *rand.Rand, month int) map[string]interface{} {
	employees := make([]map[string]string, numEmployees)
	for i := range employees {
		employees[i] = map[string]string{
			"id":    fmt.Sprintf("%d", i+1),
			"name":  fmt.Sprintf("Employee %d", i+1),
			"color": "bg-blue-200",
		}
	}
	var assignments []map[string]interface{}
	for day := 1; day <= 28; day++ {
		for _, shift := range []string{"early", "night"} {
			assignments = append(assignments, map[string]interface{}{
				"date":       fmt.Sprintf("%02d.%02d", day, month+1),
				"shift":      shift,
				"employeeId": fmt.Sprintf("%d", rng.Intn(numEmployees)+1),
			})
		}
	}
	return map[string]interface{}{"employees": employees, "assignments": assignments}
}

func doSave(rng *rand.Rand) result {
	month := rng.Intn(numMonths)
	data, _ := json.Marshal(randomSnapshot(rng, month))
	url := fmt.Sprintf("%s/api/snapshots?month=%d&year=%d", baseURL, month, year)
	start := time.Now()
	resp, err := httpClient.Post(url, "application/json", bytes.NewReader(data))
	lat := time.Since(start)
	if err != nil {
		return result{"POST /api/snapshots", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"POST /api/snapshots", resp.StatusCode, lat, resp.StatusCode != 200}
}

func doGet(path string, rng *rand.Rand) result {
	url := fmt.Sprintf("%s%s?month=%d&year=%d", baseURL, path, rng.Intn(numMonths), year)
	start := time.Now()
	resp, err := httpClient.Get(url)
	lat := time.Since(start)
	if err != nil {
		return result{"GET " + path, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET " + path, resp.StatusCode, lat, resp.StatusCode != 200}
}

// doView follows a share link with a random hash, so most answers are stale.
func doView(rng *rand.Rand) result {
	url := fmt.Sprintf("%s/view?view=readonly&month=%d&year=%d&hash=%x", baseURL, rng.Intn(numMonths), year, rng.Int31())
	start := time.Now()
	resp, err := httpClient.Get(url)
	lat := time.Since(start)
	if err != nil {
		return result{"GET /view", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /view", resp.StatusCode, lat, resp.StatusCode != 200}
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}

func repeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}
