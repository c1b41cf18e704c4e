package editor

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"chameleon-be/internal/pkg/logger"
)

const (
	DefaultMinContext     = 5
	DefaultRequestTimeout = 30 * time.Second
)

type Config struct {
	DebounceDelay  time.Duration
	MinContext     int
	ContextWindow  int
	RequestTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		DebounceDelay:  DefaultDebounce,
		MinContext:     DefaultMinContext,
		ContextWindow:  DefaultContextWindow,
		RequestTimeout: DefaultRequestTimeout,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.DebounceDelay <= 0 {
		c.DebounceDelay = d.DebounceDelay
	}
	if c.MinContext <= 0 {
		c.MinContext = d.MinContext
	}
	if c.ContextWindow <= 0 {
		c.ContextWindow = d.ContextWindow
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = d.RequestTimeout
	}
	return c
}

// Suggestion is what the overlay shows.
type Suggestion struct {
	Text    string `json:"text"`
	Visible bool   `json:"visible"`
	Loading bool   `json:"loading"`
}

// Snapshot is a consistent copy of the session's observable state.
// Revision grows with every change so consumers can drop out-of-order copies.
type Snapshot struct {
	Suggestion Suggestion `json:"suggestion"`
	Selection  Selection  `json:"selection"`
	Overlay    Point      `json:"overlay"`
	Context    string     `json:"context"`
	Revision   uint64     `json:"revision"`
}

// request is the debounced value: the context plus the parameters it is sent with.
type request struct {
	Context   string
	Tone      string
	Purpose   string
	Genre     string
	Structure string
}

type Option func(*Session)

func WithLogger(l logger.ILogger) Option {
	return func(s *Session) { s.logger = l }
}

func WithSessionProvider(p SessionProvider) Option {
	return func(s *Session) { s.users = p }
}

func WithClipboard(c Clipboard) Option {
	return func(s *Session) { s.clipboard = c }
}

// WithAuthRequired sets the notifier called when a copy is attempted while signed out.
func WithAuthRequired(fn func()) Option {
	return func(s *Session) { s.onAuthRequired = fn }
}

// WithErrorHook observes suggestion failures; they never reach the user otherwise.
func WithErrorHook(fn func(error)) Option {
	return func(s *Session) { s.onError = fn }
}

func WithObserver(fn func(Snapshot)) Option {
	return func(s *Session) { s.observer = fn }
}

func WithSelection(sel Selection) Option {
	return func(s *Session) { s.selection = sel }
}

// Session is one editing surface's suggestion pipeline.
type Session struct {
	cfg       Config
	suggester Suggester
	debouncer *Debouncer[request]

	logger         logger.ILogger
	users          SessionProvider
	clipboard      Clipboard
	onAuthRequired func()
	onError        func(error)
	observer       func(Snapshot)

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	doc        Document
	overlay    Point
	excerpt    string
	selection  Selection
	suggestion Suggestion
	generation uint64
	revision   uint64

	notifyMu sync.Mutex
}

func NewSession(suggester Suggester, cfg Config, opts ...Option) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		cfg:       cfg.withDefaults(),
		suggester: suggester,
		logger:    logger.NewNopLogger(),
		users:     NewUserHolder(nil),
		ctx:       ctx,
		cancel:    cancel,
		selection: DefaultSelection(),
		overlay:   FallbackPosition,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.debouncer = NewDebouncer(s.cfg.DebounceDelay, s.fire)
	return s
}

// Update reports a text or caret change from the editing surface.
func (s *Session) Update(text string, cursor int, geom *Geometry) {
	s.mu.Lock()
	s.doc = Document{Text: text, Cursor: cursor}
	s.overlay = PlaceOverlay(geom)
	s.excerpt = extractContext(text, cursor, s.cfg.ContextWindow)
	s.revision++
	req := s.requestLocked()
	s.mu.Unlock()

	s.debouncer.Push(req)
	s.notify()
}

// HandleKey applies a keyboard shortcut and reports whether the key was consumed.
// Ctrl/Cmd+Enter is always consumed so it never inserts a newline.
func (s *Session) HandleKey(ev KeyEvent) bool {
	switch ActionFor(ev) {
	case ActionAccept:
		s.Accept()
		return true
	case ActionDismiss:
		if !s.visible() {
			return false
		}
		s.Dismiss()
		return true
	case ActionCycleUp:
		return s.Cycle(-1)
	case ActionCycleDown:
		return s.Cycle(1)
	case ActionPrevDimension:
		s.SwitchDimension(-1)
		return true
	case ActionNextDimension:
		s.SwitchDimension(1)
		return true
	}
	return false
}

// Accept inserts the visible suggestion after the cursor, separated by a space,
// and returns the inserted text.
func (s *Session) Accept() (string, bool) {
	s.mu.Lock()
	if !s.suggestion.Visible {
		s.mu.Unlock()
		return "", false
	}
	inserted := " " + s.suggestion.Text
	s.doc.InsertAtCursor(inserted)
	s.suggestion = Suggestion{}
	// A fetch still in flight was made for the old text.
	s.generation++
	s.excerpt = extractContext(s.doc.Text, s.doc.Cursor, s.cfg.ContextWindow)
	s.revision++
	req := s.requestLocked()
	s.mu.Unlock()

	s.debouncer.Push(req)
	s.notify()
	return inserted, true
}

// Dismiss hides the suggestion. Calling it again is a no-op.
func (s *Session) Dismiss() {
	s.mu.Lock()
	if s.suggestion == (Suggestion{}) {
		s.mu.Unlock()
		return
	}
	s.suggestion = Suggestion{}
	s.revision++
	s.mu.Unlock()
	s.notify()
}

// SwitchDimension changes which dimension up/down cycling affects.
func (s *Session) SwitchDimension(step int) {
	s.mu.Lock()
	s.selection.SwitchDimension(step)
	s.revision++
	s.mu.Unlock()
	s.notify()
}

// Cycle moves the active dimension's value while a suggestion is visible.
// The shown text stays; the new parameters apply to the next debounced fetch.
func (s *Session) Cycle(step int) bool {
	s.mu.Lock()
	if !s.suggestion.Visible {
		s.mu.Unlock()
		return false
	}
	s.selection.Cycle(step)
	s.revision++
	req := s.requestLocked()
	s.mu.Unlock()

	s.debouncer.Push(req)
	s.notify()
	return true
}

// Copy hands the full document to the clipboard when a user is signed in.
func (s *Session) Copy() (string, error) {
	if s.users == nil || s.users.CurrentUser() == nil {
		if s.onAuthRequired != nil {
			s.onAuthRequired()
		}
		return "", ErrAuthRequired
	}

	s.mu.Lock()
	text := s.doc.Text
	s.mu.Unlock()

	if s.clipboard != nil {
		if err := s.clipboard.WriteText(text); err != nil {
			return "", err
		}
	}
	return text, nil
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) Document() Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// Close stops pending debounces and cancels in-flight fetches.
func (s *Session) Close() {
	s.debouncer.Stop()
	s.cancel()
}

func (s *Session) visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.suggestion.Visible
}

func (s *Session) requestLocked() request {
	return request{
		Context:   s.excerpt,
		Tone:      s.selection.Tone,
		Purpose:   s.selection.Purpose,
		Genre:     s.selection.Genre,
		Structure: s.selection.Structure,
	}
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		Suggestion: s.suggestion,
		Selection:  s.selection,
		Overlay:    s.overlay,
		Context:    s.excerpt,
		Revision:   s.revision,
	}
}

// fire runs on the debouncer's timer goroutine.
func (s *Session) fire(r request) {
	if s.ctx.Err() != nil {
		return
	}

	s.mu.Lock()
	s.generation++
	gen := s.generation
	if utf8.RuneCountInString(strings.TrimSpace(r.Context)) < s.cfg.MinContext {
		s.suggestion = Suggestion{}
		s.revision++
		s.mu.Unlock()
		s.notify()
		return
	}
	s.suggestion.Loading = true
	s.revision++
	s.mu.Unlock()
	s.notify()

	s.fetch(gen, r)
}

func (s *Session) fetch(gen uint64, r request) {
	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.RequestTimeout)
	defer cancel()

	text, err := s.suggester.Suggest(ctx, Request{
		Text:      r.Context,
		Tone:      r.Tone,
		Purpose:   r.Purpose,
		Genre:     r.Genre,
		Structure: r.Structure,
	})

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		s.logger.Debug("Editor", "Discarding stale suggestion", map[string]interface{}{
			"generation": gen,
		})
		return
	}

	text = strings.TrimSpace(text)
	if err != nil || text == "" {
		s.suggestion = Suggestion{}
	} else {
		s.suggestion = Suggestion{Text: text, Visible: true}
	}
	s.revision++
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("Editor", "Suggestion request failed", map[string]interface{}{
			"error": err.Error(),
		})
		if s.onError != nil {
			s.onError(err)
		}
	}
	s.notify()
}

// notify delivers snapshots one at a time so observers see revisions in order.
func (s *Session) notify() {
	if s.observer == nil {
		return
	}
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	s.observer(s.Snapshot())
}
