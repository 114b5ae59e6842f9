package pagination

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// DefaultSettleDelay gives Chrome time to finish layout before reading geometry
const DefaultSettleDelay = 100 * time.Millisecond

// measureScript reads the settled height of the flow and its break markers
const measureScript = `(() => {
	const el = document.getElementById("flow");
	if (!el) { return {height: -1, breaks: 0}; }
	return {
		height: el.scrollHeight,
		breaks: el.querySelectorAll('div[data-type="page-break"]').length
	};
})()`

// ChromeMeasurer renders content in headless Chrome at the content-band
// width and reads its scrollHeight. One browser is shared; every
// measurement runs in its own tab.
type ChromeMeasurer struct {
	layout      Layout
	chromePath  string
	SettleDelay time.Duration

	mu          sync.Mutex
	browserCtx  context.Context
	cancelAlloc context.CancelFunc
	cancelTab   context.CancelFunc
}

// NewChromeMeasurer creates a measurer; call Start before measuring
func NewChromeMeasurer(layout Layout, chromePath string) *ChromeMeasurer {
	return &ChromeMeasurer{
		layout:      layout,
		chromePath:  chromePath,
		SettleDelay: DefaultSettleDelay,
	}
}

// Start launches the browser
func (m *ChromeMeasurer) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.browserCtx != nil {
		return nil
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
	)
	// Custom Chrome path (for headless-shell in Docker)
	if m.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(m.chromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, cancelTab := chromedp.NewContext(allocCtx)

	// The first Run starts the browser process
	if err := chromedp.Run(browserCtx); err != nil {
		cancelTab()
		cancelAlloc()
		return fmt.Errorf("failed to start chrome: %w", err)
	}

	m.browserCtx = browserCtx
	m.cancelAlloc = cancelAlloc
	m.cancelTab = cancelTab
	log.Println("Chrome measurer started")
	return nil
}

// Close shuts the browser down. Later measurements report ErrSurfaceNotReady.
func (m *ChromeMeasurer) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.browserCtx == nil {
		return
	}
	m.cancelTab()
	m.cancelAlloc()
	m.browserCtx = nil
}

func (m *ChromeMeasurer) browser() context.Context {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.browserCtx
}

func (m *ChromeMeasurer) Measure(ctx context.Context, content string) (Measurement, error) {
	browserCtx := m.browser()
	if browserCtx == nil {
		return Measurement{}, ErrSurfaceNotReady
	}

	tabCtx, cancel := chromedp.NewContext(browserCtx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var result Measurement
	err := chromedp.Run(tabCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, MeasurementDocument(content, m.layout)).Do(ctx)
		}),
		chromedp.Sleep(m.SettleDelay),
		chromedp.Evaluate(measureScript, &result),
	)
	if err != nil {
		if ctx.Err() != nil {
			return Measurement{}, ctx.Err()
		}
		return Measurement{}, fmt.Errorf("failed to measure content: %w", err)
	}
	if result.Height < 0 {
		return Measurement{}, ErrSurfaceNotReady
	}
	result.Source = SourceRendered
	return result, nil
}

// MeasurementDocument is the page Chrome lays out: the flow alone, at the
// content-band width, styled like the editor.
func MeasurementDocument(content string, layout Layout) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
html, body { margin: 0; padding: 0; }
#flow { width: %dpx; }
%s
</style>
</head>
<body>
<div id="flow" class="prose">%s</div>
</body>
</html>`, layout.ContentWidth(), ProseStylesheet, content)
}
