package scrape

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/PuerkitoBio/goquery"

	"pricehound/helpers"
	"pricehound/logger"
	"pricehound/pkg/errors"
	"pricehound/services/cache"
)

// Fetcher wraps the browser session with bounded retries, jittered backoff
// and a degrade-to-empty terminal policy. A fetch that exhausts its retry
// budget returns nil rather than an error: one retailer or segment failing
// must never abort the run.
type Fetcher struct {
	session  PageSession
	cache    cache.CacheService
	log      *logger.Logger
	sleep    func(time.Duration)
	fallback func(url string) (io.Reader, error)
}

// NewFetcher creates a fetcher over a shared browser session. cache may be
// nil, disabling the rate-limit guard.
func NewFetcher(session PageSession, cacheSvc cache.CacheService, log *logger.Logger) *Fetcher {
	return &Fetcher{
		session:  session,
		cache:    cacheSvc,
		log:      log,
		sleep:    time.Sleep,
		fallback: helpers.FetchWithRandomHeaders,
	}
}

// FetchPage navigates to url and polls for the readiness selector. On
// timeout it performs exactly one recovery reload for that attempt, then
// retries the whole fetch with uniform jittered backoff until the retry
// budget runs out. Returns nil when the page could not be fetched.
func (f *Fetcher) FetchPage(url, readySelector string, cfg FetchConfig) *goquery.Document {
	for attempt := 1; attempt <= cfg.MaxRetries; attempt++ {
		// The guard can be armed by another fetch against the same
		// retailer while this one is backing off, so check every attempt.
		if f.rateLimited(cfg) {
			f.log.Warn().Str("url", url).Msg("skipping fetch, rate-limit guard armed")
			return nil
		}

		doc, err := f.fetchOnce(url, readySelector, cfg)
		if err == nil {
			return doc
		}

		f.log.Warn().
			Err(err).
			Str("url", url).
			Int("attempt", attempt).
			Int("max_retries", cfg.MaxRetries).
			Msg("fetch attempt failed")

		if !errors.IsRetryableError(err) {
			f.log.Error().Str("url", url).Msg("fetch error is not retryable, returning empty")
			return nil
		}
		if attempt < cfg.MaxRetries {
			f.sleep(jitter(cfg.BackoffMin, cfg.BackoffMax))
		}
	}

	f.log.Error().Str("url", url).Msg("fetch failed after all retries, returning empty")
	return nil
}

// fetchOnce is a single navigate-wait-snapshot attempt.
func (f *Fetcher) fetchOnce(url, readySelector string, cfg FetchConfig) (*goquery.Document, error) {
	if err := f.session.Navigate(url); err != nil {
		// Navigation itself broke; try a plain HTTP fetch before counting
		// the attempt as failed. Pages that render server-side still yield
		// usable markup this way.
		if doc, fbErr := f.fetchDirect(url, readySelector); fbErr == nil {
			return doc, nil
		}
		return nil, errors.NewFetch(cfg.Retailer, "navigate failed", err)
	}

	if err := f.session.WaitFor(readySelector, cfg.Timeout); err != nil {
		// One recovery reload per attempt, then give up on this attempt.
		if rerr := f.session.Reload(); rerr != nil {
			return nil, errors.NewFetch(cfg.Retailer, fmt.Sprintf("wait for %q then reload failed", readySelector), rerr)
		}
		if err := f.session.WaitFor(readySelector, cfg.Timeout); err != nil {
			return nil, errors.NewFetch(cfg.Retailer, fmt.Sprintf("wait for %q after reload", readySelector), err)
		}
	}

	// Nudge lazy-loaded listings into rendering.
	for i := 0; i < 3; i++ {
		f.session.ScrollBy(150 + rand.Intn(350))
		f.sleep(time.Duration(200+rand.Intn(300)) * time.Millisecond)
	}

	doc, err := f.session.Snapshot()
	if err != nil {
		return nil, errors.NewFetch(cfg.Retailer, "snapshot failed", err)
	}

	if doc.Find(readySelector).Length() == 0 {
		// An interstitial or throttle page loaded instead of results;
		// further attempts against the retailer are pointless right now.
		f.armRateLimit(cfg)
		return nil, errors.NewRateLimit(cfg.Retailer, cfg.BlockTime)
	}

	return doc, nil
}

// fetchDirect fetches the page over plain HTTP with randomized headers.
func (f *Fetcher) fetchDirect(url, readySelector string) (*goquery.Document, error) {
	body, err := f.fallback(url)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, err
	}
	if doc.Find(readySelector).Length() == 0 {
		return nil, fmt.Errorf("direct fetch missing readiness marker %q", readySelector)
	}
	return doc, nil
}

// rateLimited reports whether the guard cache is armed for this retailer.
func (f *Fetcher) rateLimited(cfg FetchConfig) bool {
	if f.cache == nil || cfg.RateLimitKey == "" {
		return false
	}
	_, err := f.cache.Get(cfg.RateLimitKey)
	return err == nil
}

// armRateLimit blocks further fetches for this retailer for cfg.BlockTime.
// A snapshot with no readiness marker after a clean load usually means an
// interstitial or throttle page.
func (f *Fetcher) armRateLimit(cfg FetchConfig) {
	if f.cache == nil || cfg.RateLimitKey == "" || cfg.BlockTime <= 0 {
		return
	}
	value := []byte(fmt.Sprintf("%d", int(cfg.BlockTime.Seconds())))
	if err := f.cache.Set(cfg.RateLimitKey, value, cfg.BlockTime); err != nil {
		f.log.Warn().Err(err).Str("key", cfg.RateLimitKey).Msg("failed to arm rate-limit guard")
	}
}

// jitter picks a uniform random duration within [min, max].
func jitter(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)))
}
