package renderer

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/ysmood/gson"

	"github.com/gkobilansky/landing-page-report/models"
	"github.com/gkobilansky/landing-page-report/snapshot"
)

// CaptureRequest describes one snapshot capture.
type CaptureRequest struct {
	URL            string
	ViewportWidth  int
	ViewportHeight int
	Timeout        time.Duration
	Stealth        bool
	Screenshot     bool
	Headers        map[string]string
}

// Capture renders the page and extracts the element records, rendered
// HTML, and (optionally) a full-page screenshot the analyzers consume.
//
// Lifecycle follows the usual rod discipline: stealth and headers are
// installed before navigation, the idle wait runs after navigation, and
// the page is parked on about:blank and returned to the pool no matter
// how the capture ends.
func (r *Renderer) Capture(ctx context.Context, req *CaptureRequest) (*snapshot.PageSnapshot, error) {
	// ── 1. Timeout and viewport defaults ────────────────────────────
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = r.rendererCfg.DefaultTimeout
	}
	if timeout > r.rendererCfg.MaxTimeout {
		timeout = r.rendererCfg.MaxTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	viewportWidth := req.ViewportWidth
	viewportHeight := req.ViewportHeight
	if viewportWidth <= 0 {
		viewportWidth = r.rendererCfg.DefaultViewportWidth
	}
	if viewportHeight <= 0 {
		viewportHeight = r.rendererCfg.DefaultViewportHeight
	}

	// ── 2. Acquire page from pool ───────────────────────────────────
	r.activePages.Add(1)
	defer r.activePages.Add(-1)

	page, acquireErr := r.pagePool.Get(func() (*rod.Page, error) {
		return r.browser.Page(proto.TargetCreateTarget{})
	})
	if acquireErr != nil {
		return nil, models.NewAnalysisError(
			models.ErrCodeBrowserCrash,
			"failed to acquire page from pool",
			acquireErr,
		)
	}

	// ── 3. CRITICAL DEFER: prevent DOM memory leak + guarantee pool return
	defer func() {
		if navErr := page.Navigate("about:blank"); navErr != nil {
			slog.Warn("cleanup: failed to navigate to about:blank", "error", navErr)
		}
		r.pagePool.Put(page)
	}()

	// ── 4. Stealth injection (before navigation) ────────────────────
	if req.Stealth {
		if _, evalErr := page.EvalOnNewDocument(stealth.JS); evalErr != nil {
			slog.Warn("stealth injection failed, proceeding without stealth", "error", evalErr)
		}
	}

	// ── 4b. Extra headers ───────────────────────────────────────────
	if len(req.Headers) > 0 {
		_ = proto.NetworkSetExtraHTTPHeaders{
			Headers: toHeadersMap(req.Headers),
		}.Call(page)
	}

	// ── 5. Viewport ─────────────────────────────────────────────────
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             viewportWidth,
		Height:            viewportHeight,
		DeviceScaleFactor: 1,
	}); err != nil {
		slog.Warn("failed to set viewport, using browser default", "error", err)
	}

	// ── 6. Bind request context to page ─────────────────────────────
	p := page.Context(ctx)

	// ── 7. Navigate ─────────────────────────────────────────────────
	if navErr := p.Navigate(req.URL); navErr != nil {
		return nil, categorizeError(navErr, "navigation to target URL failed")
	}

	// ── 8. Wait for the DOM to settle ───────────────────────────────
	if stableErr := p.WaitDOMStable(300*time.Millisecond, 0.1); stableErr != nil {
		slog.Debug("WaitDOMStable did not converge, proceeding with current DOM",
			"error", stableErr)
	}

	// ── 9. Collect element records ──────────────────────────────────
	snap, err := collectSnapshot(p)
	if err != nil {
		return nil, categorizeError(err, "element collection failed")
	}
	snap.URL = req.URL
	snap.CapturedAt = time.Now()

	// ── 9b. Status code via navigation timing (best-effort) ─────────
	if res, evalErr := p.Eval(`() => {
		try {
			const entries = performance.getEntriesByType("navigation");
			if (entries.length > 0) return entries[0].responseStatus || 0;
		} catch(e) {}
		return 0;
	}`); evalErr == nil {
		snap.StatusCode = res.Value.Int()
	}

	// ── 10. Rendered HTML ───────────────────────────────────────────
	rawHTML, htmlErr := p.HTML()
	if htmlErr != nil {
		return nil, categorizeError(htmlErr, "failed to extract page HTML")
	}
	snap.HTML = rawHTML

	// ── 11. Screenshot (optional, best-effort) ──────────────────────
	if req.Screenshot {
		shot, shotErr := p.Screenshot(true, &proto.PageCaptureScreenshot{
			Format: proto.PageCaptureScreenshotFormatPng,
		})
		if shotErr != nil {
			slog.Warn("screenshot failed, raster analysis unavailable", "error", shotErr)
		} else {
			snap.Screenshot = shot
		}
	}

	return snap, nil
}

// collectSnapshot runs the in-page collection script and decodes its
// JSON payload into the snapshot contract.
func collectSnapshot(p *rod.Page) (*snapshot.PageSnapshot, error) {
	res, err := p.Eval(collectJS)
	if err != nil {
		return nil, err
	}

	var snap snapshot.PageSnapshot
	if err := json.Unmarshal([]byte(res.Value.Str()), &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// collectJS walks the DOM once and serializes every candidate element
// into the ElementRecord shape. The element cap keeps pathological pages
// from flooding the engine; classification degrades gracefully with a
// truncated set.
const collectJS = `() => {
	const MAX_ELEMENTS = 1500;
	const MAX_TEXT = 600;

	const vp = {
		width: window.innerWidth,
		height: window.innerHeight,
	};

	const heroEl = document.querySelector(
		'[class*="hero"], [class*="banner"], [class*="jumbotron"], main > section:first-of-type'
	);

	const records = [];
	const all = document.querySelectorAll('body *');
	for (const el of all) {
		if (records.length >= MAX_ELEMENTS) break;
		const tag = el.tagName.toLowerCase();
		if (tag === 'script' || tag === 'style' || tag === 'noscript' ||
			tag === 'svg' || tag === 'path' || tag === 'meta' || tag === 'link') {
			continue;
		}

		const rect = el.getBoundingClientRect();
		const cs = window.getComputedStyle(el);

		// Direct text only: descendants produce their own records, so
		// aggregating innerText everywhere would double every phrase.
		// Container-ish elements still get a capped innerText so
		// testimonial cards carry their attribution lines.
		let text = '';
		const containerish = tag === 'blockquote' || tag === 'figure' ||
			tag === 'article' || el.className.toString().match(/testimonial|review|quote|card/i);
		if (containerish) {
			text = (el.innerText || '').trim().slice(0, MAX_TEXT);
		} else {
			for (const n of el.childNodes) {
				if (n.nodeType === Node.TEXT_NODE) text += n.textContent;
			}
			text = text.trim().slice(0, MAX_TEXT);
			if (!text && (tag === 'a' || tag === 'button')) {
				text = (el.innerText || '').trim().slice(0, MAX_TEXT);
			}
		}

		const attrs = {};
		for (const name of ['type', 'href', 'value', 'alt', 'loading', 'srcset', 'aria-label']) {
			const v = el.getAttribute(name);
			if (v !== null) attrs[name] = v;
		}
		if (el.querySelector('img')) attrs['hasImg'] = 'true';

		records.push({
			text: text,
			tag: tag,
			role: el.getAttribute('role') || '',
			classes: Array.from(el.classList),
			attrs: attrs,
			rect: {
				top: rect.top + window.scrollY,
				left: rect.left + window.scrollX,
				width: rect.width,
				height: rect.height,
			},
			style: {
				display: cs.display,
				visibility: cs.visibility,
				position: cs.position,
				backgroundColor: cs.backgroundColor,
				color: cs.color,
				fontFamily: cs.fontFamily,
				fontSize: parseFloat(cs.fontSize) || 0,
				fontWeight: cs.fontWeight,
				lineHeight: parseFloat(cs.lineHeight) || 0,
				opacity: parseFloat(cs.opacity),
				marginTop: parseFloat(cs.marginTop) || 0,
				marginBottom: parseFloat(cs.marginBottom) || 0,
			},
			ancestry: {
				inHeader: !!el.closest('header'),
				inFooter: !!el.closest('footer'),
				inNav: !!el.closest('nav'),
				inForm: !!el.closest('form'),
				inHero: heroEl ? heroEl.contains(el) : false,
				inAside: !!el.closest('aside'),
			},
		});
	}

	return JSON.stringify({
		final_url: window.location.href,
		title: document.title,
		viewport: vp,
		elements: records,
	});
}`

// toHeadersMap converts a plain string map to the proto.NetworkHeaders
// type (map[string]gson.JSON) required by NetworkSetExtraHTTPHeaders.
func toHeadersMap(headers map[string]string) proto.NetworkHeaders {
	m := make(proto.NetworkHeaders, len(headers))
	for k, v := range headers {
		m[k] = gson.New(v)
	}
	return m
}

// categorizeError wraps raw errors into typed AnalysisErrors so the API
// layer can map them to appropriate HTTP status codes.
func categorizeError(err error, msg string) *models.AnalysisError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewAnalysisError(models.ErrCodeTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return models.NewAnalysisError(models.ErrCodeTimeout, "request canceled", err)
	default:
		return models.NewAnalysisError(models.ErrCodeNavigation, msg, err)
	}
}
