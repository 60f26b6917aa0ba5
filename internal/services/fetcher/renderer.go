package fetcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/ternarybob/arbor"
)

// Renderer runs JavaScript-heavy pages through a pool of headless Chrome
// contexts with round-robin allocation. Instances are created lazily on
// first use so the binary works without Chrome when rendering never
// triggers.
type Renderer struct {
	browsers         []context.Context
	browserCancels   []context.CancelFunc
	allocatorCancels []context.CancelFunc
	mu               sync.Mutex
	maxInstances     int
	currentIndex     int
	userAgent        string
	jsWaitTime       time.Duration
	requestTimeout   time.Duration
	initialized      bool
	logger           arbor.ILogger
}

// RendererConfig holds configuration for the browser pool
type RendererConfig struct {
	MaxInstances   int
	UserAgent      string
	JSWaitTime     time.Duration
	RequestTimeout time.Duration
}

// NewRenderer creates a new renderer. Browsers are not started until the
// first Render call.
func NewRenderer(config RendererConfig, logger arbor.ILogger) *Renderer {
	if config.MaxInstances <= 0 {
		config.MaxInstances = 1
	}
	if config.JSWaitTime <= 0 {
		config.JSWaitTime = 2 * time.Second
	}
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = 30 * time.Second
	}
	return &Renderer{
		maxInstances:   config.MaxInstances,
		userAgent:      config.UserAgent,
		jsWaitTime:     config.JSWaitTime,
		requestTimeout: config.RequestTimeout,
		logger:         logger,
	}
}

// Render navigates to a URL, waits for scripts to settle, and returns the
// rendered HTML.
func (r *Renderer) Render(ctx context.Context, pageURL string) (string, error) {
	browserCtx, err := r.getBrowser()
	if err != nil {
		return "", err
	}

	runCtx, cancel := context.WithTimeout(browserCtx, r.requestTimeout)
	defer cancel()

	// Propagate caller cancellation into the browser context
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-runCtx.Done():
		}
	}()

	var html string
	err = chromedp.Run(runCtx,
		network.Enable(),
		network.SetExtraHTTPHeaders(network.Headers{"Accept-Language": "en-US,en;q=0.9"}),
		chromedp.Navigate(pageURL),
		chromedp.Sleep(r.jsWaitTime),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", pageURL, err)
	}
	return html, nil
}

func (r *Renderer) getBrowser() (context.Context, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.initialized {
		if err := r.initLocked(); err != nil {
			return nil, err
		}
	}
	if len(r.browsers) == 0 {
		return nil, fmt.Errorf("no browser instances available")
	}

	index := r.currentIndex % len(r.browsers)
	r.currentIndex = (r.currentIndex + 1) % len(r.browsers)
	return r.browsers[index], nil
}

// initLocked creates the browser pool. Must be called with the mutex held.
func (r *Renderer) initLocked() error {
	r.logger.Info().
		Int("pool_size", r.maxInstances).
		Dur("js_wait_time", r.jsWaitTime).
		Msg("Initializing headless browser pool")

	created := 0
	var lastErr error
	for i := 0; i < r.maxInstances; i++ {
		if err := r.createInstance(i); err != nil {
			lastErr = err
			r.logger.Warn().Err(err).Int("browser_index", i).Msg("Failed to create browser instance")
			continue
		}
		created++
	}

	if created == 0 {
		r.cleanupLocked()
		return fmt.Errorf("failed to create any browser instances: %w", lastErr)
	}

	r.initialized = true
	r.logger.Info().Int("browsers_created", created).Msg("Headless browser pool initialized")
	return nil
}

func (r *Renderer) createInstance(index int) error {
	allocatorOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(r.userAgent),
	)

	allocatorCtx, allocatorCancel := chromedp.NewExecAllocator(context.Background(), allocatorOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocatorCtx)

	testCtx, testCancel := context.WithTimeout(browserCtx, r.requestTimeout)
	defer testCancel()

	if err := chromedp.Run(testCtx, chromedp.Navigate("about:blank")); err != nil {
		browserCancel()
		allocatorCancel()
		return fmt.Errorf("browser instance failed startup test: %w", err)
	}

	r.browsers = append(r.browsers, browserCtx)
	r.browserCancels = append(r.browserCancels, browserCancel)
	r.allocatorCancels = append(r.allocatorCancels, allocatorCancel)

	r.logger.Debug().Int("browser_index", index).Msg("Browser instance created")
	return nil
}

// Close shuts down all browser instances
func (r *Renderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.initialized {
		return nil
	}
	r.cleanupLocked()
	r.initialized = false
	r.logger.Info().Msg("Headless browser pool shut down")
	return nil
}

// cleanupLocked cancels all contexts. Must be called with the mutex held.
func (r *Renderer) cleanupLocked() {
	for _, cancel := range r.browserCancels {
		if cancel != nil {
			cancel()
		}
	}
	for _, cancel := range r.allocatorCancels {
		if cancel != nil {
			cancel()
		}
	}
	r.browsers = nil
	r.browserCancels = nil
	r.allocatorCancels = nil
	r.currentIndex = 0
}
