// Command bundle_drift compares metric bundles served by two deployments of
// the insight API. Aggregation is deterministic over identical source data,
// so any diff beyond the per-request fields (snapshot id, timestamps, timing
// meta) indicates drift between the two environments.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"reflect"
	"strings"
	"time"
)

type target struct {
	label string
	path  string
}

type comparison struct {
	Target    target
	StatusA   int
	StatusB   int
	Match     bool
	Error     error
	DurationA time.Duration
	DurationB time.Duration
}

// volatileFields differ between otherwise-identical responses and are
// stripped before comparing.
var volatileFields = map[string]struct{}{
	"snapshotId":         {},
	"generatedAt":        {},
	"processing_time_ms": {},
}

func main() {
	var (
		baseA    string
		baseB    string
		courses  string
		students string
		prefix   string
		timeout  time.Duration
	)

	flag.StringVar(&baseA, "base-a", "http://localhost:8080", "first API base URL")
	flag.StringVar(&baseB, "base-b", "http://localhost:8081", "second API base URL")
	flag.StringVar(&courses, "courses", "", "comma-separated course IDs to compare")
	flag.StringVar(&students, "students", "", "comma-separated student IDs to compare")
	flag.StringVar(&prefix, "prefix", "/api/v1", "API path prefix")
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "HTTP client timeout")
	flag.Parse()

	targets := buildTargets(prefix, courses, students)
	if len(targets) == 0 {
		log.Fatal("no targets: pass -courses and/or -students")
	}

	client := &http.Client{Timeout: timeout}
	var drifted int
	var comparisons []comparison
	for _, t := range targets {
		comp := compareTarget(client, baseA, baseB, t)
		if comp.Error != nil || !comp.Match {
			drifted++
		}
		comparisons = append(comparisons, comp)
	}

	printReport(comparisons)
	fmt.Printf("Drifted: %d of %d\n", drifted, len(targets))
	if drifted > 0 {
		os.Exit(1)
	}
}

func buildTargets(prefix, courses, students string) []target {
	var targets []target
	for _, id := range splitIDs(courses) {
		targets = append(targets, target{
			label: "course " + id,
			path:  fmt.Sprintf("%s/courses/%s/metrics", prefix, id),
		})
	}
	for _, id := range splitIDs(students) {
		targets = append(targets, target{
			label: "student " + id,
			path:  fmt.Sprintf("%s/students/%s/metrics", prefix, id),
		})
	}
	return targets
}

func splitIDs(raw string) []string {
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids
}

func compareTarget(client *http.Client, baseA, baseB string, tgt target) comparison {
	comp := comparison{Target: tgt}

	bodyA, statusA, durA, err := fetch(client, baseA, tgt.path)
	comp.DurationA = durA
	if err != nil {
		comp.Error = fmt.Errorf("fetch %s from %s: %w", tgt.label, baseA, err)
		return comp
	}
	bodyB, statusB, durB, err := fetch(client, baseB, tgt.path)
	comp.DurationB = durB
	if err != nil {
		comp.Error = fmt.Errorf("fetch %s from %s: %w", tgt.label, baseB, err)
		return comp
	}

	comp.StatusA = statusA
	comp.StatusB = statusB
	comp.Match = statusA == statusB && bundlesEqual(bodyA, bodyB)
	return comp
}

func fetch(client *http.Client, base, path string) ([]byte, int, time.Duration, error) {
	url := strings.TrimRight(base, "/") + path
	start := time.Now()
	resp, err := client.Get(url)
	if err != nil {
		return nil, 0, time.Since(start), err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, time.Since(start), err
	}
	return body, resp.StatusCode, time.Since(start), nil
}

func bundlesEqual(a, b []byte) bool {
	var aj, bj interface{}
	if err := json.Unmarshal(a, &aj); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bj); err != nil {
		return false
	}
	stripVolatile(&aj)
	stripVolatile(&bj)
	return reflect.DeepEqual(aj, bj)
}

func stripVolatile(v *interface{}) {
	switch val := (*v).(type) {
	case map[string]interface{}:
		for k := range val {
			if _, volatile := volatileFields[k]; volatile {
				delete(val, k)
				continue
			}
			v2 := val[k]
			stripVolatile(&v2)
			val[k] = v2
		}
	case []interface{}:
		for i, v2 := range val {
			stripVolatile(&v2)
			val[i] = v2
		}
	}
}

func printReport(results []comparison) {
	fmt.Println("Bundle Drift Report")
	fmt.Println("===================")
	for _, res := range results {
		status := "OK"
		if res.Error != nil {
			status = "ERROR"
		} else if !res.Match {
			status = "DRIFT"
		}
		fmt.Printf("[%s] %s\n", status, res.Target.label)
		if res.Error != nil {
			fmt.Printf("  Error: %v\n", res.Error)
			continue
		}
		fmt.Printf("  Status A: %d (%s) | Status B: %d (%s)\n", res.StatusA, res.DurationA, res.StatusB, res.DurationB)
	}
}
