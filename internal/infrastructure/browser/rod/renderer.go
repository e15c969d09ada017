package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"quiz-solver/internal/application/port/output"
	"quiz-solver/internal/domain/entity"
)

var _ output.RendererPort = (*Renderer)(nil)

// Renderer drives one shared headless Chrome process. Every Render call gets
// its own page (browser target), so concurrent sessions stay isolated.
type Renderer struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	cfg      Config
}

type Config struct {
	Headless    bool
	NavTimeout  time.Duration
	IdleTimeout time.Duration
	SettleDelay time.Duration
	NoSandbox   bool
}

func DefaultConfig() Config {
	return Config{
		Headless:    true,
		NavTimeout:  30 * time.Second,
		IdleTimeout: 5 * time.Second,
		SettleDelay: 2 * time.Second,
		NoSandbox:   true,
	}
}

func NewRenderer(cfg Config) (*Renderer, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		NoSandbox(cfg.NoSandbox).
		Delete("use-mock-keychain").
		Set("disable-setuid-sandbox")

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	return &Renderer{browser: browser, launcher: l, cfg: cfg}, nil
}

// Render navigates a fresh page to url, waits for load plus a network-idle
// window and a short settle delay for late JS rendering, then snapshots the
// DOM and visible text. The page is closed on every path.
func (r *Renderer) Render(ctx context.Context, url string) (*entity.RenderedPage, error) {
	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Timeout(r.cfg.NavTimeout).Navigate(url); err != nil {
		return nil, fmt.Errorf("navigate %s: %w", url, err)
	}
	if err := page.Timeout(r.cfg.NavTimeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait load %s: %w", url, err)
	}
	_ = page.WaitIdle(r.cfg.IdleTimeout)
	time.Sleep(r.cfg.SettleDelay)

	html, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("serialize page: %w", err)
	}

	info, err := page.Info()
	if err != nil {
		return nil, fmt.Errorf("page info: %w", err)
	}

	bodyText := ""
	if res, err := page.Eval(`() => document.body ? document.body.innerText : ""`); err == nil {
		bodyText = res.Value.Str()
	}

	return &entity.RenderedPage{
		URL:      info.URL,
		Title:    info.Title,
		HTML:     html,
		BodyText: bodyText,
	}, nil
}

func (r *Renderer) Close() {
	if r.browser != nil {
		_ = r.browser.Close()
	}
	if r.launcher != nil {
		r.launcher.Kill()
		r.launcher.Cleanup()
	}
}
