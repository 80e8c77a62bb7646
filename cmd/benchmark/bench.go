// Command benchmark drives load at /v1/autoroute with the whole routing
// stack running in-process against fake upstreams.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/nulzo/autorouter/internal/adapters/benchmark"
	"github.com/nulzo/autorouter/internal/adapters/cache"
	"github.com/nulzo/autorouter/internal/adapters/cache/memory"
	"github.com/nulzo/autorouter/internal/adapters/openrouter"
	"github.com/nulzo/autorouter/internal/cli"
	"github.com/nulzo/autorouter/internal/config"
	"github.com/nulzo/autorouter/internal/core/services/autorouter"
	"github.com/nulzo/autorouter/internal/core/services/catalog"
	"github.com/nulzo/autorouter/internal/llm"
	_ "github.com/nulzo/autorouter/internal/llm/openai"
	"github.com/nulzo/autorouter/internal/server"
	"github.com/nulzo/autorouter/internal/store/sqlite"
	vegeta "github.com/tsenart/vegeta/v12/lib"
	"go.uber.org/zap"
)

const benchKey = "bench-key-12345"

var prompts = []string{
	"Write a Go function that reverses a linked list",
	"Prove that the square root of 2 is irrational",
	"Summarise the plot of Hamlet",
	"hi",
}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "duration of the attack")
	rate := flag.Int("rate", 50, "requests per second")
	latency := flag.Duration("upstream-latency", 10*time.Millisecond, "simulated classifier latency")
	chaos := flag.Bool("chaos", false, "simulate random client disconnections")
	flag.Parse()

	upstream := httptest.NewServer(fakeUpstream(*latency))
	defer upstream.Close()

	app, cleanup, err := newApp(upstream.URL)
	if err != nil {
		fmt.Printf("%s %v\n", cli.CrossMark(), err)
		return
	}
	defer cleanup()

	target := app.URL + "/v1/autoroute"
	fmt.Printf("%s attacking %s for %s at %d req/s\n", cli.Arrow(), target, *duration, *rate)

	done := make(chan struct{})
	if *chaos {
		go startChaosMonkey(target, max(5, min(50, *rate/10)), done)
	}

	targeter := func(t *vegeta.Target) error {
		body, _ := json.Marshal(map[string]string{"prompt": prompts[rand.Intn(len(prompts))]})
		t.Method = http.MethodPost
		t.URL = target
		t.Body = body
		t.Header = http.Header{
			"Content-Type":  []string{"application/json"},
			"Authorization": []string{"Bearer " + benchKey},
		}
		return nil
	}

	attacker := vegeta.NewAttacker(vegeta.KeepAlive(true))
	var metrics vegeta.Metrics
	for res := range attacker.Attack(targeter, vegeta.Rate{Freq: *rate, Per: time.Second}, *duration, "autoroute") {
		metrics.Add(res)
	}
	metrics.Close()
	close(done)

	report(&metrics)
}

func report(m *vegeta.Metrics) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	fmt.Println(strings.Repeat("-", 50))
	fmt.Println("p50:        ", m.Latencies.P50)
	fmt.Println("p99:        ", m.Latencies.P99)
	fmt.Println("max:        ", m.Latencies.Max)
	fmt.Printf("success:     %.2f%%\n", m.Success*100)
	fmt.Printf("throughput:  %.2f req/s\n", m.Throughput)
	fmt.Printf("heap in use: %.2f MB\n", float64(mem.HeapInuse)/1024/1024)
	fmt.Println("status codes:")
	cli.PrettyPrint(m.StatusCodes)
	fmt.Println(strings.Repeat("-", 50))

	seen := make(map[string]bool)
	for _, msg := range m.Errors {
		if !seen[msg] && len(seen) < 5 {
			fmt.Println(cli.CrossMark(), msg)
			seen[msg] = true
		}
	}
}

// newApp assembles the production stack pointed at the fake upstream.
func newApp(upstreamURL string) (*httptest.Server, func(), error) {
	log := zap.NewNop()

	cfg := &config.Config{
		Server:    config.ServerConfig{Env: "production", APIKeys: []string{benchKey}},
		RateLimit: config.RateLimitConfig{RequestsPerSecond: 100000, Burst: 100000},
		Classifier: config.ProviderConfig{
			ID:        "classifier",
			Type:      "openai",
			BaseURL:   upstreamURL + "/v1",
			APIKey:    "mock-key",
			Model:     "openai/gpt-4o-mini",
			MaxTokens: 10,
			Timeout:   5 * time.Second,
		},
	}

	fetcher := catalog.NewFetcher(
		openrouter.NewClient(openrouter.Config{BaseURL: upstreamURL + "/v1"}),
		benchmark.NewClient(benchmark.Config{BaseURL: upstreamURL + "/aa", APIKey: "mock-key"}),
		cache.NewMemo(memory.NewMemoryCache(), log),
		catalog.Config{},
		log,
	)

	provider, err := llm.NewProvider(cfg.Classifier)
	if err != nil {
		return nil, nil, err
	}

	repo, err := sqlite.NewSQLiteStorage(":memory:", log)
	if err != nil {
		return nil, nil, err
	}

	srv := server.New(cfg, log, server.Dependencies{
		Autorouter: autorouter.NewService(fetcher, autorouter.NewLLMClassifier(provider, cfg.Classifier), log),
		Catalog:    fetcher,
		Repo:       repo,
		Version:    "bench",
	})

	app := httptest.NewServer(srv.Handler())
	return app, func() {
		app.Close()
		_ = repo.Close()
	}, nil
}

var (
	marketplaceBody = []byte(`{"data": [
		{"id": "anthropic/claude-3.5-sonnet", "name": "Anthropic: Claude 3.5 Sonnet", "pricing": {"prompt": "0.000003", "completion": "0.000015"}},
		{"id": "openai/gpt-4o", "name": "OpenAI: GPT-4o", "pricing": {"prompt": "0.0000025", "completion": "0.00001"}},
		{"id": "openai/gpt-4o-mini", "name": "OpenAI: GPT-4o-mini", "pricing": {"prompt": "0.00000015", "completion": "0.0000006"}},
		{"id": "deepseek/deepseek-r1", "name": "DeepSeek: R1", "pricing": {"prompt": "0.00000055", "completion": "0.0000022"}}
	]}`)
	benchmarkBody = []byte(`{"data": [
		{"name": "Claude 3.5 Sonnet", "provider": "anthropic", "rank": 1, "coding_index": 49.8, "math_index": 39.2},
		{"name": "GPT-4o", "provider": "openai", "rank": 2, "coding_index": 40.1, "math_index": 35.0},
		{"name": "GPT-4o mini", "provider": "openai", "rank": 5},
		{"name": "DeepSeek R1", "provider": "deepseek", "rank": 3, "math_index": 80.2}
	]}`)
	labels = []string{"coding", "math_reasoning", "general", "quick"}
)

func fakeUpstream(latency time.Duration) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/models", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(marketplaceBody)
	})
	mux.HandleFunc("GET /aa/data/llms/models", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(benchmarkBody)
	})
	mux.HandleFunc("POST /v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(latency)
		label := labels[rand.Intn(len(labels))]
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"id":"bench-%s","object":"chat.completion","model":"openai/gpt-4o-mini","choices":[{"index":0,"message":{"role":"assistant","content":%s},"finish_reason":"stop"}],"usage":{"prompt_tokens":80,"completion_tokens":2,"total_tokens":82}}`,
			strconv.FormatInt(time.Now().UnixNano(), 36), strconv.Quote(label))
	})
	return mux
}

func startChaosMonkey(url string, concurrency int, done chan struct{}) {
	fmt.Printf("%s chaos monkey: %d clients disconnecting after 1-200ms\n", cli.Arrow(), concurrency)

	var wg sync.WaitGroup
	wg.Add(concurrency)
	for range concurrency {
		go func() {
			defer wg.Done()
			client := &http.Client{}
			for {
				select {
				case <-done:
					return
				default:
				}

				timeout := time.Duration(rand.Intn(200)+1) * time.Millisecond
				ctx, cancel := context.WithTimeout(context.Background(), timeout)
				req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(`{"prompt":"chaos"}`))
				req.Header.Set("Content-Type", "application/json")
				req.Header.Set("Authorization", "Bearer "+benchKey)

				if resp, err := client.Do(req); err == nil {
					_ = resp.Body.Close()
				}
				cancel()
				time.Sleep(time.Duration(rand.Intn(50)) * time.Millisecond)
			}
		}()
	}
	wg.Wait()
}
