//go:build load
// +build load

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bytedance/sonic"
)

var (
	addr     = flag.String("addr", "http://127.0.0.1:8700", "panel engine base URL")
	requests = flag.Int("requests", 500, "Total number of tab open/close cycles")
	workers  = flag.Int("workers", 8, "Number of concurrent workers")
)

type result struct {
	duration time.Duration
	err      error
}

func main() {
	flag.Parse()

	log.Printf("Starting panel HTTP load test")
	log.Printf("Target: %s", *addr)
	log.Printf("Requests: %d", *requests)
	log.Printf("Workers: %d", *workers)

	client := &http.Client{Timeout: 10 * time.Second}

	if err := ping(client); err != nil {
		log.Fatalf("Engine not reachable: %v", err)
	}

	results := runLoadTest(client, *requests, *workers)
	analyzeResults(results)
}

func ping(client *http.Client) error {
	resp, err := client.Get(*addr + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health returned %d", resp.StatusCode)
	}
	return nil
}

func runLoadTest(client *http.Client, totalRequests, workers int) []result {
	results := make([]result, 0, totalRequests)
	var mu sync.Mutex

	var completed atomic.Int32
	start := time.Now()

	var wg sync.WaitGroup
	requestsChan := make(chan int, totalRequests)

	for i := 0; i < totalRequests; i++ {
		requestsChan <- i
	}
	close(requestsChan)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for range requestsChan {
				res := executeRequest(client)

				mu.Lock()
				results = append(results, res)
				mu.Unlock()

				count := completed.Add(1)
				if count%100 == 0 {
					elapsed := time.Since(start)
					rps := float64(count) / elapsed.Seconds()
					log.Printf("Progress: %d/%d cycles (%.2f req/sec)",
						count, totalRequests, rps)
				}
			}
		}()
	}

	wg.Wait()
	return results
}

// executeRequest opens a tab and closes it again, timing the full
// cycle. Each cycle spawns and reaps one real shell.
func executeRequest(client *http.Client) result {
	start := time.Now()

	id, err := createTab(client)
	if err == nil {
		err = closeSession(client, id)
	}

	return result{
		duration: time.Since(start),
		err:      err,
	}
}

func createTab(client *http.Client) (string, error) {
	resp, err := client.Post(*addr+"/tabs", "application/json", nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("create tab returned %d: %s", resp.StatusCode, raw)
	}

	var body struct {
		Tab struct {
			ID string `json:"id"`
		} `json:"tab"`
	}
	if err := sonic.Unmarshal(raw, &body); err != nil {
		return "", err
	}
	if body.Tab.ID == "" {
		return "", fmt.Errorf("create tab returned no id")
	}
	return body.Tab.ID, nil
}

func closeSession(client *http.Client, id string) error {
	req, err := http.NewRequest(http.MethodDelete, *addr+"/sessions/"+id, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("close session returned %d", resp.StatusCode)
	}
	return nil
}

func analyzeResults(results []result) {
	if len(results) == 0 {
		log.Println("No results to analyze")
		return
	}

	var (
		totalDuration time.Duration
		successCount  int
		errorCount    int
		durations     []time.Duration
	)

	for _, r := range results {
		totalDuration += r.duration
		if r.err == nil {
			successCount++
		} else {
			errorCount++
		}
		durations = append(durations, r.duration)
	}

	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })

	total := len(results)
	avgDuration := totalDuration / time.Duration(total)
	p50 := durations[total*50/100]
	p95 := durations[total*95/100]
	p99 := durations[total*99/100]
	maxDuration := durations[total-1]

	fmt.Println("\n========================================")
	fmt.Println("Load Test Results")
	fmt.Println("========================================")
	fmt.Printf("Total Cycles:      %d\n", total)
	fmt.Printf("Successful:        %d (%.2f%%)\n", successCount, float64(successCount)/float64(total)*100)
	fmt.Printf("Failed:            %d (%.2f%%)\n", errorCount, float64(errorCount)/float64(total)*100)
	fmt.Println("----------------------------------------")
	fmt.Printf("Average Latency:   %v\n", avgDuration)
	fmt.Printf("P50 Latency:       %v\n", p50)
	fmt.Printf("P95 Latency:       %v\n", p95)
	fmt.Printf("P99 Latency:       %v\n", p99)
	fmt.Printf("Max Latency:       %v\n", maxDuration)
	fmt.Println("========================================")
}
