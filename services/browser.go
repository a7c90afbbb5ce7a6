// services/browser.go
package services

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"naver-booking-notifier/config"
	"naver-booking-notifier/models"
)

// BookingSource is the dashboard collaborator: it supplies the raw page text
// and the login-validity signal.
type BookingSource interface {
	EnsureReady(ctx context.Context) error
	FetchPageText(ctx context.Context) (string, error)
	SessionValid(ctx context.Context) (bool, error)
}

var chromeExecutablePath = func() string {
	if path, _ := exec.LookPath("google-chrome"); path != "" {
		return path
	}
	if path, _ := exec.LookPath("chromium"); path != "" {
		return path
	}
	return "/Applications/Google Chrome.app/Contents/MacOS/Google Chrome"
}()

const (
	bookingsURLTemplate = "https://partner.booking.naver.com/bizes/%s/booking-list-view?countFilter=CONFIRMED"
	pageLoadTimeout     = 60 * time.Second
	pageSettleDelay     = 3 * time.Second

	// Login page shows 로그인; the partner dashboard shows 예약자관리.
	loginMarker     = "로그인"
	dashboardMarker = "예약자관리"
)

// NaverSession drives a headless Chrome against the partner dashboard using
// a persistent profile directory that holds the saved login. One shared
// browser handle, lazily initialized before the first extraction.
type NaverSession struct {
	mu          sync.Mutex
	bookingsURL string
	profileDir  string

	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	ready         bool
}

func NewNaverSession(bizID, profileDir string) *NaverSession {
	return &NaverSession{
		bookingsURL: fmt.Sprintf(bookingsURLTemplate, bizID),
		profileDir:  profileDir,
	}
}

func (s *NaverSession) EnsureReady(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureReadyLocked(ctx)
}

func (s *NaverSession) ensureReadyLocked(ctx context.Context) error {
	if s.ready {
		return nil
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(
		context.Background(),
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.ExecPath(chromeExecutablePath),
			chromedp.UserDataDir(s.profileDir),
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
		)...,
	)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return err
	}
	s.allocCancel = allocCancel
	s.browserCtx = browserCtx
	s.browserCancel = browserCancel

	html, err := s.pageHTML(ctx)
	if err != nil {
		s.closeLocked()
		return err
	}
	if sessionExpired(html) {
		s.closeLocked()
		return models.ErrSessionExpired
	}

	s.ready = true
	config.Logger().Info("naver session ready", zap.String("url", s.bookingsURL))
	return nil
}

// FetchPageText navigates to the confirmed-bookings view and returns the
// visible text of the page body.
func (s *NaverSession) FetchPageText(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureReadyLocked(ctx); err != nil {
		return "", err
	}
	html, err := s.pageHTML(ctx)
	if err != nil {
		return "", err
	}
	if sessionExpired(html) {
		return "", models.ErrSessionExpired
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	text := doc.Find("body").Text()
	config.Logger().Debug("page text fetched", zap.Int("length", len(text)))
	return text, nil
}

func (s *NaverSession) SessionValid(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureReadyLocked(ctx); err != nil {
		return false, err
	}
	html, err := s.pageHTML(ctx)
	if err != nil {
		return false, err
	}
	return !sessionExpired(html), nil
}

// Ready reports whether the browser has been initialized, without touching it.
func (s *NaverSession) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// Refresh tears the browser down and re-initializes it with the saved profile.
func (s *NaverSession) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
	return s.ensureReadyLocked(ctx)
}

func (s *NaverSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
}

func (s *NaverSession) closeLocked() {
	if s.browserCancel != nil {
		s.browserCancel()
		s.browserCancel = nil
	}
	if s.allocCancel != nil {
		s.allocCancel()
		s.allocCancel = nil
	}
	s.browserCtx = nil
	s.ready = false
}

func (s *NaverSession) pageHTML(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	runCtx, cancel := context.WithTimeout(s.browserCtx, pageLoadTimeout)
	defer cancel()

	var html string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(s.bookingsURL),
		chromedp.Sleep(pageSettleDelay),
		chromedp.OuterHTML("body", &html, chromedp.ByQuery),
	)
	return html, err
}

func sessionExpired(html string) bool {
	return strings.Contains(html, loginMarker) && !strings.Contains(html, dashboardMarker)
}
