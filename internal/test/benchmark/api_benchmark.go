// Package benchmark drives concurrent request load against the gateway
package benchmark

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"
)

// APIBenchmark fires Requests calls at BaseURL with at most Concurrency in flight
type APIBenchmark struct {
	BaseURL     string
	Concurrency int
	Requests    int
	AuthToken   string
	Client      *http.Client
}

// BenchmarkResult aggregates one run
type BenchmarkResult struct {
	URL            string        `json:"url"`
	Method         string        `json:"method"`
	Concurrency    int           `json:"concurrency"`
	TotalRequests  int           `json:"total_requests"`
	SuccessCount   int           `json:"success_count"`
	FailureCount   int           `json:"failure_count"`
	TotalTime      time.Duration `json:"total_time"`
	AverageTime    time.Duration `json:"average_time"`
	MinTime        time.Duration `json:"min_time"`
	MaxTime        time.Duration `json:"max_time"`
	RequestsPerSec float64       `json:"requests_per_sec"`
	StatusCodes    map[int]int   `json:"status_codes"`
	Errors         []string      `json:"errors"`
}

type requestResult struct {
	duration   time.Duration
	statusCode int
	err        error
}

// NewAPIBenchmark creates a runner with a 10s per-request timeout
func NewAPIBenchmark(baseURL string, concurrency, requests int, authToken string) *APIBenchmark {
	if concurrency < 1 {
		concurrency = 1
	}
	return &APIBenchmark{
		BaseURL:     baseURL,
		Concurrency: concurrency,
		Requests:    requests,
		AuthToken:   authToken,
		Client:      &http.Client{Timeout: 10 * time.Second},
	}
}

// RunGET loads a GET endpoint
func (b *APIBenchmark) RunGET(path string) *BenchmarkResult {
	return b.run(http.MethodGet, b.BaseURL+path, nil)
}

// RunPOST loads a POST endpoint with the same JSON body on every call
func (b *APIBenchmark) RunPOST(path string, payload interface{}) *BenchmarkResult {
	return b.runJSON(http.MethodPost, path, payload)
}

// RunPUT loads a PUT endpoint with the same JSON body on every call
func (b *APIBenchmark) RunPUT(path string, payload interface{}) *BenchmarkResult {
	return b.runJSON(http.MethodPut, path, payload)
}

func (b *APIBenchmark) runJSON(method, path string, payload interface{}) *BenchmarkResult {
	url := b.BaseURL + path
	body, err := json.Marshal(payload)
	if err != nil {
		return &BenchmarkResult{
			URL:         url,
			Method:      method,
			StatusCodes: map[int]int{},
			Errors:      []string{fmt.Sprintf("encode payload: %v", err)},
		}
	}
	return b.run(method, url, body)
}

func (b *APIBenchmark) run(method, url string, payload []byte) *BenchmarkResult {
	results := make(chan requestResult, b.Requests)
	limiter := make(chan struct{}, b.Concurrency)
	var wg sync.WaitGroup

	started := time.Now()
	for i := 0; i < b.Requests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			limiter <- struct{}{}
			defer func() { <-limiter }()
			results <- b.once(method, url, payload)
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	res := &BenchmarkResult{
		URL:           url,
		Method:        method,
		Concurrency:   b.Concurrency,
		TotalRequests: b.Requests,
		MinTime:       1<<63 - 1,
		StatusCodes:   make(map[int]int),
	}
	var busy time.Duration
	for r := range results {
		if r.err != nil {
			res.FailureCount++
			res.Errors = append(res.Errors, r.err.Error())
			continue
		}

		busy += r.duration
		if r.duration < res.MinTime {
			res.MinTime = r.duration
		}
		if r.duration > res.MaxTime {
			res.MaxTime = r.duration
		}
		res.StatusCodes[r.statusCode]++
		if r.statusCode >= 200 && r.statusCode < 300 {
			res.SuccessCount++
		} else {
			res.FailureCount++
		}
	}

	res.TotalTime = time.Since(started)
	if res.TotalTime > 0 {
		res.RequestsPerSec = float64(b.Requests) / res.TotalTime.Seconds()
	}
	if answered := res.SuccessCount + res.FailureCount - len(res.Errors); answered > 0 {
		res.AverageTime = busy / time.Duration(answered)
	}
	return res
}

func (b *APIBenchmark) once(method, url string, payload []byte) requestResult {
	start := time.Now()
	req, err := http.NewRequest(method, url, bytes.NewReader(payload))
	if err != nil {
		return requestResult{err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if b.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+b.AuthToken)
	}

	resp, err := b.Client.Do(req)
	if err != nil {
		return requestResult{err: err}
	}
	resp.Body.Close()

	return requestResult{duration: time.Since(start), statusCode: resp.StatusCode}
}

// Summary renders the result for test logs
func (r *BenchmarkResult) Summary() string {
	codes := make([]int, 0, len(r.StatusCodes))
	for code := range r.StatusCodes {
		codes = append(codes, code)
	}
	sort.Ints(codes)

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s: %d requests, concurrency %d, %d ok, %d failed, %.1f req/s, avg %s, max %s",
		r.Method, r.URL, r.TotalRequests, r.Concurrency, r.SuccessCount, r.FailureCount,
		r.RequestsPerSec, r.AverageTime, r.MaxTime)
	for _, code := range codes {
		fmt.Fprintf(&b, " [%d x%d]", code, r.StatusCodes[code])
	}
	for i, e := range r.Errors {
		if i == 3 {
			fmt.Fprintf(&b, " (+%d more errors)", len(r.Errors)-3)
			break
		}
		fmt.Fprintf(&b, " error: %s", e)
	}
	return b.String()
}
