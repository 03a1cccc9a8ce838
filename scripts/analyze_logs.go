package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

type LogStats struct {
	Lines              int
	TotalErrors        int
	TotalWarnings      int
	LoginSuccess       int
	LoginFailures      int
	Registrations      int
	RateLimited        int
	Requests           int
	FailedRequests     int
	StatusCodes        map[int]int
	Transitions        map[string]int
	UserActivities     map[string]int
	ErrorPatterns      map[string]int
	SlowestRequestMs   int64
	SlowestRequestPath string
}

// logLine is one JSON entry written by the application logger
type logLine struct {
	Level     string `json:"level"`
	Msg       string `json:"msg"`
	Method    string `json:"method"`
	Path      string `json:"path"`
	Status    int    `json:"status"`
	LatencyMs int64  `json:"latency_ms"`
}

var (
	emailRegex      = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	transitionRegex = regexp.MustCompile(`^Subscription \d+ moved from \w+ to (\w+)$`)
	numberRegex     = regexp.MustCompile(`\d+`)
)

func newLogStats() *LogStats {
	return &LogStats{
		StatusCodes:    make(map[int]int),
		Transitions:    make(map[string]int),
		UserActivities: make(map[string]int),
		ErrorPatterns:  make(map[string]int),
	}
}

func main() {
	date := flag.String("date", time.Now().Format("2006-01-02"), "day of the log file to analyze")
	logDir := flag.String("dir", "./logs", "log directory")
	flag.Parse()

	logFile := filepath.Join(*logDir, fmt.Sprintf("app-%s.log", *date))
	file, err := os.Open(logFile)
	if err != nil {
		fmt.Printf("Error opening log file %s: %v\n", logFile, err)
		os.Exit(1)
	}
	defer file.Close()

	stats := newLogStats()
	if err := analyze(file, stats); err != nil {
		fmt.Printf("Error reading log file %s: %v\n", logFile, err)
		os.Exit(1)
	}
	printReport(os.Stdout, stats)
}

// analyze folds every JSON log line of r into stats. Lines that are not JSON are skipped.
func analyze(r io.Reader, stats *LogStats) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var entry logLine
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			continue
		}
		stats.Lines++
		record(entry, stats)
	}
	return scanner.Err()
}

func record(entry logLine, stats *LogStats) {
	switch entry.Level {
	case "error":
		stats.TotalErrors++
		stats.ErrorPatterns[errorPattern(entry.Msg)]++
	case "warning":
		stats.TotalWarnings++
	}

	switch {
	case entry.Msg == "request completed":
		stats.Requests++
		stats.StatusCodes[entry.Status]++
		if entry.Status >= 400 {
			stats.FailedRequests++
		}
		if entry.LatencyMs > stats.SlowestRequestMs {
			stats.SlowestRequestMs = entry.LatencyMs
			stats.SlowestRequestPath = entry.Method + " " + entry.Path
		}
	case strings.HasPrefix(entry.Msg, "User logged in"):
		stats.LoginSuccess++
		extractUserActivity(entry.Msg, stats)
	case strings.HasPrefix(entry.Msg, "Login attempt failed"):
		stats.LoginFailures++
		extractUserActivity(entry.Msg, stats)
	case strings.HasPrefix(entry.Msg, "User registration completed successfully"):
		stats.Registrations++
		extractUserActivity(entry.Msg, stats)
	case strings.HasPrefix(entry.Msg, "Rate limit exceeded"):
		stats.RateLimited++
	default:
		if m := transitionRegex.FindStringSubmatch(entry.Msg); m != nil {
			stats.Transitions[m[1]]++
		}
	}
}

func extractUserActivity(msg string, stats *LogStats) {
	if email := emailRegex.FindString(msg); email != "" {
		stats.UserActivities[email]++
	}
}

// errorPattern reduces a message to its stable prefix so ids and emails do not split buckets
func errorPattern(msg string) string {
	if i := strings.Index(msg, ":"); i > 0 {
		msg = msg[:i]
	}
	msg = emailRegex.ReplaceAllString(msg, "<email>")
	return strings.TrimSpace(numberRegex.ReplaceAllString(msg, "N"))
}

func printReport(w io.Writer, stats *LogStats) {
	fmt.Fprintln(w, "\n=== Log Analysis Report ===")
	fmt.Fprintln(w, "Generated:", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Lines analyzed: %d\n", stats.Lines)

	fmt.Fprintln(w, "\n1. Authentication Statistics:")
	fmt.Fprintf(w, "   Successful Logins: %d\n", stats.LoginSuccess)
	fmt.Fprintf(w, "   Failed Logins: %d\n", stats.LoginFailures)
	fmt.Fprintf(w, "   Registrations: %d\n", stats.Registrations)
	fmt.Fprintf(w, "   Rate Limited Requests: %d\n", stats.RateLimited)

	fmt.Fprintln(w, "\n2. Requests:")
	fmt.Fprintf(w, "   Total: %d, Failed: %d\n", stats.Requests, stats.FailedRequests)
	codes := make([]int, 0, len(stats.StatusCodes))
	for code := range stats.StatusCodes {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	for _, code := range codes {
		fmt.Fprintf(w, "   %d: %d\n", code, stats.StatusCodes[code])
	}
	if stats.SlowestRequestPath != "" {
		fmt.Fprintf(w, "   Slowest: %s (%d ms)\n", stats.SlowestRequestPath, stats.SlowestRequestMs)
	}

	fmt.Fprintln(w, "\n3. Subscription Transitions:")
	printTop(w, stats.Transitions, len(stats.Transitions))

	fmt.Fprintln(w, "\n4. Error Statistics:")
	fmt.Fprintf(w, "   Total Errors: %d, Warnings: %d\n", stats.TotalErrors, stats.TotalWarnings)

	fmt.Fprintln(w, "\n5. Most Active Users:")
	printTop(w, stats.UserActivities, 5)

	fmt.Fprintln(w, "\n6. Most Common Errors:")
	printTop(w, stats.ErrorPatterns, 5)
}

type countEntry struct {
	Key   string
	Count int
}

func topN(counts map[string]int, n int) []countEntry {
	entries := make([]countEntry, 0, len(counts))
	for k, v := range counts {
		entries = append(entries, countEntry{k, v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count == entries[j].Count {
			return entries[i].Key < entries[j].Key
		}
		return entries[i].Count > entries[j].Count
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

func printTop(w io.Writer, counts map[string]int, n int) {
	entries := topN(counts, n)
	if len(entries) == 0 {
		fmt.Fprintln(w, "   none")
		return
	}
	for i, e := range entries {
		fmt.Fprintf(w, "   %d. %s: %d\n", i+1, e.Key, e.Count)
	}
}
