package licenses

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/opencode-ai/lic/internal/clock"
	"github.com/opencode-ai/lic/internal/logging"
	"github.com/rs/zerolog"
)

// ErrUnresolvedPlaceholder is returned in strict mode when placeholders
// survive rendering.
var ErrUnresolvedPlaceholder = errors.New("unresolved placeholder")

// UnresolvedPlaceholderError lists the tokens left in the rendered text.
type UnresolvedPlaceholderError struct {
	License string
	Tokens  []string
}

func (e *UnresolvedPlaceholderError) Error() string {
	return fmt.Sprintf("license %s: unresolved placeholders: %s", e.License, strings.Join(e.Tokens, ", "))
}

func (e *UnresolvedPlaceholderError) Unwrap() error {
	return ErrUnresolvedPlaceholder
}

// IdentitySource supplies the author defaults, normally from git config.
type IdentitySource interface {
	UserName(ctx context.Context) (string, error)
	UserEmail(ctx context.Context) (string, error)
}

// Renderer substitutes placeholder tokens in license bodies.
type Renderer struct {
	clock    clock.Clock
	identity IdentitySource
	strict   bool
	logger   zerolog.Logger
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithClock sets the clock used for the default year.
func WithClock(c clock.Clock) RendererOption {
	return func(r *Renderer) {
		if c != nil {
			r.clock = c
		}
	}
}

// WithIdentity sets the source for default author and email.
func WithIdentity(src IdentitySource) RendererOption {
	return func(r *Renderer) {
		r.identity = src
	}
}

// WithStrict makes Render fail when placeholders remain.
func WithStrict(strict bool) RendererOption {
	return func(r *Renderer) {
		r.strict = strict
	}
}

// WithLogger overrides the component logger.
func WithLogger(logger zerolog.Logger) RendererOption {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// NewRenderer creates a renderer using the real clock and no identity source.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		clock:  clock.Real(),
		logger: logging.Component("render"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve fills empty values from the defaults: year from the clock,
// author and email from the identity source. Explicit values are kept.
func (r *Renderer) Resolve(ctx context.Context, values Values) Values {
	values.Author = strings.TrimSpace(values.Author)
	values.Year = strings.TrimSpace(values.Year)
	values.Email = strings.TrimSpace(values.Email)
	values.Project = strings.TrimSpace(values.Project)

	if values.Year == "" {
		values.Year = strconv.Itoa(r.clock.Now().Year())
	}

	if r.identity == nil {
		return values
	}
	if values.Author == "" {
		name, err := r.identity.UserName(ctx)
		if err != nil {
			r.logger.Debug().Err(err).Msg("no default author")
		}
		values.Author = strings.TrimSpace(name)
	}
	if values.Email == "" {
		email, err := r.identity.UserEmail(ctx)
		if err != nil {
			r.logger.Debug().Err(err).Msg("no default email")
		}
		values.Email = strings.TrimSpace(email)
	}
	return values
}

// Render resolves defaults and substitutes every recognized token in the
// license body. Tokens the license does not declare are left verbatim.
func (r *Renderer) Render(ctx context.Context, lic *License, values Values) (string, error) {
	return r.RenderResolved(lic, r.Resolve(ctx, values))
}

// RenderResolved substitutes values as given, without consulting the clock
// or identity source. Use it with values already passed through Resolve.
func (r *Renderer) RenderResolved(lic *License, values Values) (string, error) {
	if lic == nil {
		return "", fmt.Errorf("license is required")
	}

	text, unresolved := substitute(lic, values)

	if len(unresolved) > 0 {
		if r.strict {
			return "", &UnresolvedPlaceholderError{License: lic.ID, Tokens: unresolved}
		}
		r.logger.Debug().
			Str("license", lic.ID).
			Strs("tokens", unresolved).
			Msg("placeholders left verbatim")
	}

	r.logger.Debug().
		Str("license", lic.ID).
		Str("author", values.Author).
		Str("year", values.Year).
		Msg("rendered license")

	return text, nil
}

var canonicalTokenPattern = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_-]*)\s*\}\}`)

// canonicalTokens scans body for {{field}} tokens, tolerating inner spaces.
// Tokens naming a known field are returned with it; the rest are unknown.
func canonicalTokens(body string) (known map[string]Field, unknown []string) {
	known = make(map[string]Field)
	for _, match := range canonicalTokenPattern.FindAllStringSubmatch(body, -1) {
		field := Field(strings.ToLower(match[1]))
		if field.Valid() {
			known[match[0]] = field
			continue
		}
		unknown = append(unknown, match[0])
	}
	return known, unknown
}

// substitute performs a single left-to-right pass, so replacement values
// are never rescanned. It returns the tokens that had no value, plus
// canonical-looking tokens that name no known field.
func substitute(lic *License, values Values) (string, []string) {
	pairs := make([]string, 0, 2*(len(lic.Placeholders)+len(Fields)))
	missing := make(map[string]struct{})

	add := func(token string, field Field) {
		if !containsToken(lic.Body, token) {
			return
		}
		value := values.Get(field)
		if value == "" {
			missing[token] = struct{}{}
			return
		}
		pairs = append(pairs, token, value)
	}

	for _, ph := range lic.Placeholders {
		add(ph.Token, ph.Field)
	}
	known, unknown := canonicalTokens(lic.Body)
	tokens := make([]string, 0, len(known))
	for token := range known {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	for _, token := range tokens {
		add(token, known[token])
	}
	for _, token := range unknown {
		missing[token] = struct{}{}
	}

	text := lic.Body
	if len(pairs) > 0 {
		text = strings.NewReplacer(pairs...).Replace(lic.Body)
	}

	unresolved := make([]string, 0, len(missing))
	for token := range missing {
		unresolved = append(unresolved, token)
	}
	sort.Strings(unresolved)
	return text, unresolved
}

func containsToken(body, token string) bool {
	return token != "" && strings.Contains(body, token)
}
