package gmaps

import (
	"context"

	"github.com/chromedp/chromedp"
)

// Session owns one headless browser for the lifetime of a scrape batch.
// All hotels share it sequentially; Close releases the browser and its
// allocator.
type Session struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewSession launches a browser context. The returned session must be
// closed by the caller, including on early abort.
func NewSession(parent context.Context, headless bool) *Session {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("lang", "en-US"),
		chromedp.Flag("log-level", "3"), // suppress Chrome logs
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
		chromedp.WindowSize(1280, 900),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, opts...)
	ctx, cancelCtx := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	cancel := func() {
		cancelCtx()
		cancelAlloc()
	}
	return &Session{ctx: ctx, cancel: cancel}
}

// Context returns the chromedp context shared by the batch.
func (s *Session) Context() context.Context {
	return s.ctx
}

// Close releases the browser.
func (s *Session) Close() {
	s.cancel()
}
