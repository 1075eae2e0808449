package scrape

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// fakeSession implements PageSession against canned HTML for testing.
type fakeSession struct {
	html        string
	navErr      error
	waitErr     error
	failWaits   int
	snapErr     error
	navigations []string
	reloads     int
	cookieClear int
	scrolls     int
}

func (f *fakeSession) Navigate(url string) error {
	f.navigations = append(f.navigations, url)
	return f.navErr
}

func (f *fakeSession) WaitFor(selector string, timeout time.Duration) error {
	if f.failWaits > 0 {
		f.failWaits--
		return &mockError{message: "wait timeout"}
	}
	return f.waitErr
}

func (f *fakeSession) Reload() error {
	f.reloads++
	return nil
}

func (f *fakeSession) ScrollBy(delta int) error {
	f.scrolls++
	return nil
}

func (f *fakeSession) ClearCookies() error {
	f.cookieClear++
	return nil
}

func (f *fakeSession) CurrentURL() string {
	if len(f.navigations) == 0 {
		return ""
	}
	return f.navigations[len(f.navigations)-1]
}

func (f *fakeSession) Snapshot() (*goquery.Document, error) {
	if f.snapErr != nil {
		return nil, f.snapErr
	}
	return goquery.NewDocumentFromReader(strings.NewReader(f.html))
}

// MockCacheService implements a simple in-memory cache for testing
type MockCacheService struct {
	cache map[string][]byte
}

func NewMockCacheService() *MockCacheService {
	return &MockCacheService{
		cache: make(map[string][]byte),
	}
}

func (m *MockCacheService) Get(key string) ([]byte, error) {
	if val, ok := m.cache[key]; ok {
		return val, nil
	}
	return nil, &mockError{message: "cache miss"}
}

func (m *MockCacheService) Set(key string, value []byte, expiration time.Duration) error {
	m.cache[key] = value
	return nil
}

func (m *MockCacheService) Delete(key string) error {
	delete(m.cache, key)
	return nil
}

type mockError struct {
	message string
}

func (e *mockError) Error() string {
	return e.message
}
