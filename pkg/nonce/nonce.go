// Package nonce issues action-scoped tokens bound to an actor and session.
//
// A token is valid during the tick it was issued in and the following one,
// where a tick is half of the configured lifetime. Tokens are deterministic
// within a tick, so with SingleUse enabled spending is tracked per token and
// scope: Consume remembers the pair until the token would expire anyway.
package nonce

import (
	"context"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-post-delete/pkg/host"
	"github.com/goliatone/go-post-delete/pkg/interfaces/cache"
	"github.com/goliatone/go-post-delete/pkg/interfaces/logger"
	masker "github.com/goliatone/go-masker"
	"golang.org/x/crypto/blake2b"
)

const (
	// DefaultLifetime matches a one day validity window.
	DefaultLifetime = 24 * time.Hour
	// MinSecretLength is the shortest accepted signing secret.
	MinSecretLength = 16

	tokenLength = 20
	replayKey   = "nonce:used:"
)

var (
	// ErrSecretTooShort is returned when the signing secret is too short.
	ErrSecretTooShort = fmt.Errorf("nonce: secret must be at least %d bytes", MinSecretLength)
	// ErrActionRequired is returned when creating a token without an action.
	ErrActionRequired = errors.New("nonce: action is required")
)

// Dependencies wires the token manager.
type Dependencies struct {
	Secret    []byte
	Lifetime  time.Duration
	SingleUse bool
	// Used remembers consumed tokens when SingleUse is set. Defaults to an
	// in-memory cache.
	Used   cache.Cache
	Logger logger.Logger
	Now    func() time.Time
}

// Manager implements host.Tokens.
type Manager struct {
	key       [32]byte
	lifetime  time.Duration
	singleUse bool
	used      cache.Cache
	logger    logger.Logger
	now       func() time.Time
}

var (
	_ host.Tokens        = (*Manager)(nil)
	_ host.TokenConsumer = (*Manager)(nil)
)

// New builds a token manager.
func New(deps Dependencies) (*Manager, error) {
	if len(deps.Secret) < MinSecretLength {
		return nil, ErrSecretTooShort
	}
	if deps.Lifetime <= 0 {
		deps.Lifetime = DefaultLifetime
	}
	if deps.Used == nil {
		deps.Used = cache.NewMemory()
	}
	if deps.Logger == nil {
		deps.Logger = &logger.Nop{}
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Manager{
		key:       blake2b.Sum256(deps.Secret),
		lifetime:  deps.Lifetime,
		singleUse: deps.SingleUse,
		used:      deps.Used,
		logger:    deps.Logger,
		now:       deps.Now,
	}, nil
}

// Create issues a token for action bound to actor.
func (m *Manager) Create(ctx context.Context, action string, actor host.Actor) (string, error) {
	if m == nil {
		return "", errors.New("nonce: manager is nil")
	}
	if strings.TrimSpace(action) == "" {
		return "", ErrActionRequired
	}
	return m.sign(m.tick(), action, actor)
}

// Verify reports whether token was issued for action and actor during the
// current or previous tick. It does not spend the token; see Consume.
func (m *Manager) Verify(ctx context.Context, token, action string, actor host.Actor) bool {
	if m == nil || token == "" || action == "" {
		return false
	}
	tick := m.tick()
	valid := false
	for _, candidate := range []int64{tick, tick - 1} {
		expected, err := m.sign(candidate, action, actor)
		if err != nil {
			m.logger.Error("nonce: sign failed", logger.F("error", err))
			return false
		}
		if subtle.ConstantTimeCompare([]byte(expected), []byte(token)) == 1 {
			valid = true
			break
		}
	}
	if !valid {
		m.logger.Debug("nonce: token rejected",
			logger.F("action", action),
			logger.F("token", MaskToken(token)),
		)
		return false
	}
	return true
}

// Consume spends token for scope. Without SingleUse it always succeeds.
func (m *Manager) Consume(ctx context.Context, token, scope string) bool {
	if m == nil || token == "" {
		return false
	}
	if !m.singleUse {
		return true
	}
	key := replayKey + scope + ":" + token
	if _, seen, err := m.used.Get(ctx, key); err != nil || seen {
		m.logger.Debug("nonce: token replayed",
			logger.F("scope", scope),
			logger.F("token", MaskToken(token)),
		)
		return false
	}
	if err := m.used.Set(ctx, key, true, m.lifetime); err != nil {
		m.logger.Warn("nonce: record used token failed", logger.F("error", err))
		return false
	}
	return true
}

func (m *Manager) tick() int64 {
	half := int64(m.lifetime / time.Second / 2)
	if half <= 0 {
		half = 1
	}
	now := m.now().Unix()
	return (now + half - 1) / half
}

func (m *Manager) sign(tick int64, action string, actor host.Actor) (string, error) {
	mac, err := blake2b.New256(m.key[:])
	if err != nil {
		return "", err
	}
	fmt.Fprintf(mac, "%d|%s|%s|%s", tick, action, actor.ID, actor.Session)
	return hex.EncodeToString(mac.Sum(nil))[:tokenLength], nil
}

// MaskToken hides the middle of a token for logging.
func MaskToken(token string) string {
	if token == "" {
		return ""
	}
	if masked, err := masker.Default.String("preserveEnds(2,2)", token); err == nil {
		return masked
	}
	runes := []rune(token)
	if len(runes) <= 4 {
		return strings.Repeat("*", len(runes))
	}
	return string(runes[:2]) + strings.Repeat("*", len(runes)-4) + string(runes[len(runes)-2:])
}
