// Command smoke probes a running admin gateway and reports which endpoints
// answer. Intended for deploy verification, not as a test suite.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

type probe struct {
	Name     string
	Path     string
	Critical bool
}

type result struct {
	Probe    probe
	Status   int
	Duration time.Duration
	Err      error
}

func main() {
	var (
		base    string
		query   string
		timeout time.Duration
	)

	flag.StringVar(&base, "base", "http://localhost:8080", "gateway base URL")
	flag.StringVar(&query, "query", "", "search query to exercise the list endpoint with")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	listPath := "/api/v1/courses?page=1"
	if query != "" {
		listPath += "&query=" + url.QueryEscape(query)
	}

	probes := []probe{
		{Name: "health", Path: "/health", Critical: true},
		{Name: "ready", Path: "/ready", Critical: true},
		{Name: "list courses", Path: listPath, Critical: true},
		{Name: "universities", Path: "/api/v1/lookups/universities", Critical: false},
		{Name: "cities", Path: "/api/v1/lookups/cities", Critical: false},
		{Name: "countries", Path: "/api/v1/lookups/countries", Critical: false},
		{Name: "currencies", Path: "/api/v1/lookups/currencies", Critical: false},
		{Name: "metrics", Path: "/metrics", Critical: false},
	}

	client := &http.Client{Timeout: timeout}
	failures := 0

	for _, p := range probes {
		res := run(client, base, p)
		report(res)
		if p.Critical && (res.Err != nil || res.Status != http.StatusOK) {
			failures++
		}
	}

	if failures > 0 {
		fmt.Printf("%d critical probe(s) failed\n", failures)
		os.Exit(1)
	}
	fmt.Println("all critical probes passed")
}

func run(client *http.Client, base string, p probe) result {
	res := result{Probe: p}
	target := strings.TrimRight(base, "/") + p.Path

	start := time.Now()
	resp, err := client.Get(target)
	res.Duration = time.Since(start)
	if err != nil {
		res.Err = err
		return res
	}
	defer resp.Body.Close()

	res.Status = resp.StatusCode
	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			res.Err = fmt.Errorf("read body: %w", err)
			return res
		}
		var decoded interface{}
		if err := json.Unmarshal(body, &decoded); err != nil {
			res.Err = fmt.Errorf("invalid json body: %w", err)
		}
	}
	return res
}

func report(res result) {
	status := "ok"
	detail := fmt.Sprintf("%d in %s", res.Status, res.Duration.Round(time.Millisecond))
	if res.Err != nil {
		status = "FAIL"
		detail = res.Err.Error()
	} else if res.Status != http.StatusOK {
		status = "WARN"
	}
	fmt.Printf("%-14s %-5s %s\n", res.Probe.Name, status, detail)
}
