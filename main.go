package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"pricehound/config"
	"pricehound/internal/browser"
	"pricehound/internal/report"
	"pricehound/internal/scrape"
	"pricehound/logger"
	"pricehound/pkg/errors"
	"pricehound/services/cache"
	"pricehound/services/publisher"
	"pricehound/services/worker"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()

	if err := run(); err != nil {
		// run's defers have already released the browser and services
		logger.Fatal("Run failed: %v", err)
	}
}

// run owns every resource of one scrape run. Teardown happens through its
// defers, so the browser, driver and service connections are released on
// every exit path, failures included.
func run() error {
	log := logger.Default

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return errors.NewConfiguration("invalid configuration", err)
	}

	stdin := bufio.NewReader(os.Stdin)
	query := readQuery(stdin)
	if query == "" {
		return errors.NewConfiguration("no search query given", nil)
	}
	minDiscount := readMinDiscount(stdin, cfg.MinDiscount)

	log.Info().
		Str("environment", cfg.Environment).
		Str("query", query).
		Float64("min_discount", minDiscount).
		Msg("Starting run")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	services := initializeServices(ctx, cfg)
	defer services.Cleanup()

	fmt.Println("\nInitializing browser...")
	opts := browser.DefaultOptions()
	opts.Headless = cfg.Headless
	opts.Timeout = cfg.FetchTimeout
	session, err := browser.New(opts)
	if err != nil {
		return fmt.Errorf("failed to start browser session: %w", err)
	}
	defer session.Close()

	// Build one pipeline per enabled retailer, all sharing the session
	fetcher := scrape.NewFetcher(session, services.Cache, log)
	retailers := scrape.CreateRetailers(cfg)
	pipelines := make([]worker.Searcher, 0, len(retailers))
	order := make([]string, 0, len(retailers))
	for _, rc := range retailers {
		pipelines = append(pipelines, scrape.NewPipeline(rc, fetcher, cfg.SegmentDelayMin, cfg.SegmentDelayMax))
		order = append(order, rc.Name)
	}

	w := worker.NewWorker(pipelines, services.Publisher)
	results := w.Run(query)

	for _, retailer := range order {
		printTopDeals(retailer, results[retailer])
	}

	rows := report.AssembleRows(results, scrape.PrimaryRetailer, minDiscount, order)
	if len(rows) == 0 {
		fmt.Println("\nNo results found to save.")
		return nil
	}

	path, err := exportReport(rows, cfg.OutputDir, query)
	if err != nil {
		return err
	}
	fmt.Printf("\nResults saved to: %s\n", path)

	w.PublishRecords(rows)
	return nil
}

// exportReport writes the assembled rows to a timestamped CSV under dir.
func exportReport(rows []scrape.ProductRecord, dir, query string) (string, error) {
	return report.WriteCSV(rows, dir, report.Filename(query, time.Now()))
}

// readQuery takes the query from the first argument or prompts for it.
func readQuery(stdin *bufio.Reader) string {
	if len(os.Args) > 1 {
		return strings.TrimSpace(strings.Join(os.Args[1:], " "))
	}
	fmt.Print("Enter the product you want to search for: ")
	line, _ := stdin.ReadString('\n')
	return strings.TrimSpace(line)
}

// readMinDiscount prompts for an optional minimum discount threshold,
// falling back to the configured default on empty or invalid input.
func readMinDiscount(stdin *bufio.Reader, fallback float64) float64 {
	fmt.Printf("Minimum discount %% (enter for %.0f): ", fallback)
	line, _ := stdin.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(line, 64)
	if err != nil || value < 0 || value > 100 {
		fmt.Println("Invalid threshold, keeping default.")
		return fallback
	}
	return value
}

// printTopDeals prints a console preview of the best finds per retailer.
func printTopDeals(retailer string, records []scrape.ProductRecord) {
	if len(records) == 0 {
		return
	}

	fmt.Printf("\nTop 5 %s Deals:\n", retailer)
	for i, r := range records {
		if i >= 5 {
			break
		}
		fmt.Printf("Title: %s\n", r.Title)
		fmt.Printf("Current Price: $%.2f\n", r.CurrentPrice)
		fmt.Printf("Original Price: $%.2f\n", r.OriginalPrice)
		fmt.Printf("Discount: %.1f%%\n", r.DiscountPct)
		fmt.Printf("Link: %s\n\n", r.Link)
	}
}

// Services holds all the initialized services
type Services struct {
	Cache     cache.CacheService
	Publisher publisher.Publisher
}

// Cleanup cleans up all services
func (s *Services) Cleanup() {
	if s.Publisher != nil {
		s.Publisher.Close()
	}
}

// initializeServices initializes the optional cache and publisher services.
// Both stay nil when their addresses are not configured.
func initializeServices(ctx context.Context, cfg config.Config) *Services {
	services := &Services{}

	if cfg.MemcacheAddr != "" {
		services.Cache = cache.NewMemcacheService(cfg.MemcacheAddr)
		logger.Info("Connected to Memcache at %s", cfg.MemcacheAddr)
	}

	if cfg.RedisAddr != "" {
		services.Publisher = publisher.NewRedisPublisher(ctx, cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream)
		logger.Info("Connected to Redis at %s (DB: %d, Stream: %s)", cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream)
	}

	return services
}
