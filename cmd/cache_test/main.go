// Manual smoke test for the Redis response cache. Run against a live server
// seeded with cmd/seed; it requests each cached endpoint twice and compares
// latencies to confirm the second hit is served from cache.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

type CacheTestResult struct {
	Endpoint     string        `json:"endpoint"`
	CacheStatus  string        `json:"cache_status"`
	ResponseTime time.Duration `json:"response_time"`
	DataSize     int           `json:"data_size"`
	Success      bool          `json:"success"`
	Error        string        `json:"error,omitempty"`
}

type CacheTestSuite struct {
	BaseURL    string
	AdminToken string
	Results    []CacheTestResult
}

func main() {
	baseURL := os.Getenv("CACHE_TEST_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000/api/v1"
	}

	suite := &CacheTestSuite{
		BaseURL:    baseURL,
		AdminToken: os.Getenv("CACHE_TEST_ADMIN_TOKEN"),
		Results:    []CacheTestResult{},
	}

	fmt.Println("🧪 Starting Cache Smoke Test...")
	fmt.Println("===============================")

	// Test Redis connection
	if err := testRedisConnection(); err != nil {
		log.Fatalf("❌ Redis connection failed: %v", err)
	}
	fmt.Println("✅ Redis connection: OK")

	searchDate := time.Now().AddDate(0, 0, 7).Format("2006-01-02")

	testCases := []struct {
		name     string
		endpoint string
	}{
		// Flight search (highest traffic surface)
		{"Flight Search SGN-HAN", fmt.Sprintf("/flights?departure=SGN&destination=HAN&departDate=%s", searchDate)},
		{"Flight Search HAN-DAD", fmt.Sprintf("/flights?departure=HAN&destination=DAD&departDate=%s", searchDate)},
		{"Flight Search Business", fmt.Sprintf("/flights?departure=SGN&destination=DAD&departDate=%s&seatClass=business", searchDate)},

		// Admin listings
		{"Admin Flight List", "/admin/flights?page=1&limit=10"},
		{"Admin Booking List", "/admin/bookings?page=1&limit=10"},
		{"Admin Promotion List", "/admin/promotions?page=1&limit=10"},

		// Statistics dashboard
		{"Statistics Overview", "/admin/statistics/overview"},
		{"Popular Routes", "/admin/statistics/routes"},
	}

	for _, tc := range testCases {
		fmt.Printf("\n🔍 Testing: %s\n", tc.name)

		// First request (cache miss)
		result1 := suite.testEndpoint(tc.endpoint, "MISS")
		suite.Results = append(suite.Results, result1)

		// Second request (should be cache hit)
		time.Sleep(100 * time.Millisecond)
		result2 := suite.testEndpoint(tc.endpoint, "HIT")
		suite.Results = append(suite.Results, result2)

		if result1.Success && result2.Success {
			improvement := float64(result1.ResponseTime-result2.ResponseTime) / float64(result1.ResponseTime) * 100
			fmt.Printf("   📈 Performance improvement: %.1f%% (%v -> %v)\n",
				improvement, result1.ResponseTime, result2.ResponseTime)
		}
	}

	suite.generateReport()

	fmt.Println("\n🎉 Cache Smoke Test Complete!")
}

func testRedisConnection() error {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})
	defer client.Close()

	ctx := context.Background()
	_, err := client.Ping(ctx).Result()
	return err
}

func (s *CacheTestSuite) testEndpoint(endpoint, expectedCacheStatus string) CacheTestResult {
	url := s.BaseURL + endpoint

	start := time.Now()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return CacheTestResult{
			Endpoint:    endpoint,
			CacheStatus: "ERROR",
			Success:     false,
			Error:       err.Error(),
		}
	}

	// Admin endpoints need a real token from /admin/auth/login
	if strings.Contains(endpoint, "/admin/") && s.AdminToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.AdminToken)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return CacheTestResult{
			Endpoint:     endpoint,
			CacheStatus:  "ERROR",
			ResponseTime: time.Since(start),
			Success:      false,
			Error:        err.Error(),
		}
	}
	defer resp.Body.Close()

	responseTime := time.Since(start)
	body, _ := io.ReadAll(resp.Body)

	// Infer cache status from response time; hits come straight from Redis
	actualCacheStatus := "UNKNOWN"
	if expectedCacheStatus == "MISS" {
		actualCacheStatus = "MISS"
	} else if expectedCacheStatus == "HIT" {
		if responseTime < 50*time.Millisecond {
			actualCacheStatus = "HIT"
		} else {
			actualCacheStatus = "MISS"
		}
	}

	success := resp.StatusCode >= 200 && resp.StatusCode < 400

	result := CacheTestResult{
		Endpoint:     endpoint,
		CacheStatus:  actualCacheStatus,
		ResponseTime: responseTime,
		DataSize:     len(body),
		Success:      success,
	}

	if !success {
		result.Error = fmt.Sprintf("HTTP %d", resp.StatusCode)
	}

	statusIcon := "✅"
	if !success {
		statusIcon = "❌"
	}

	cacheIcon := "🔥"
	if actualCacheStatus == "MISS" {
		cacheIcon = "💾"
	} else if actualCacheStatus == "UNKNOWN" {
		cacheIcon = "❓"
	}

	fmt.Printf("   %s %s [%s] %v (%d bytes)\n",
		statusIcon, cacheIcon, actualCacheStatus, responseTime, len(body))

	return result
}

func (s *CacheTestSuite) generateReport() {
	fmt.Println("\n📊 CACHE PERFORMANCE REPORT")
	fmt.Println("==========================")

	totalTests := len(s.Results)
	successfulTests := 0
	cacheHits := 0
	cacheMisses := 0
	cacheHitTime := time.Duration(0)
	cacheMissTime := time.Duration(0)

	for _, result := range s.Results {
		if result.Success {
			successfulTests++
		}

		switch result.CacheStatus {
		case "HIT":
			cacheHits++
			cacheHitTime += result.ResponseTime
		case "MISS":
			cacheMisses++
			cacheMissTime += result.ResponseTime
		}
	}

	fmt.Printf("Total Tests: %d\n", totalTests)
	fmt.Printf("Successful: %d (%.1f%%)\n", successfulTests, float64(successfulTests)/float64(totalTests)*100)
	fmt.Printf("Cache Hits: %d\n", cacheHits)
	fmt.Printf("Cache Misses: %d\n", cacheMisses)

	if cacheHits > 0 && cacheMisses > 0 {
		avgHitTime := cacheHitTime / time.Duration(cacheHits)
		avgMissTime := cacheMissTime / time.Duration(cacheMisses)
		improvement := float64(avgMissTime-avgHitTime) / float64(avgMissTime) * 100
		fmt.Printf("Average Cache Hit Time: %v\n", avgHitTime)
		fmt.Printf("Average Cache Miss Time: %v\n", avgMissTime)
		fmt.Printf("Overall Cache Performance Improvement: %.1f%%\n", improvement)
	}

	reportData, err := json.MarshalIndent(map[string]interface{}{
		"summary": map[string]interface{}{
			"total_tests":      totalTests,
			"successful_tests": successfulTests,
			"cache_hits":       cacheHits,
			"cache_misses":     cacheMisses,
		},
		"results": s.Results,
	}, "", "  ")
	if err == nil {
		if err := os.WriteFile("cache_test_results.json", reportData, 0644); err == nil {
			fmt.Println("\n💾 Detailed results saved to cache_test_results.json")
		}
	}
}
