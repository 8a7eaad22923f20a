// Package featureflags evaluates runtime switches configured through FEATURE_FLAGS.
package featureflags

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strconv"
	"strings"
)

// Flags understood by the API. Unknown names in FEATURE_FLAGS are kept and reported but
// nothing reads them.
const (
	// RecipePremoderation holds new recipes from non-moderators until an admin approves them.
	RecipePremoderation = "recipe_premoderation"
	// ChatHTTPRelay mirrors messages posted over REST into the live chat room. Clients that
	// also emit chat:message on the socket would see each message twice, so it is off by default.
	ChatHTTPRelay = "chat_http_relay"
	// LiveNotifications pushes delivered notifications to connected sessions.
	LiveNotifications = "live_notifications"
)

// defaults applies when a known flag is absent from the configuration.
var defaults = map[string]bool{
	RecipePremoderation: false,
	ChatHTTPRelay:       false,
	LiveNotifications:   true,
}

// Manager evaluates flags from a comma separated name=value list, for example
// "recipe_premoderation=25%,chat_http_relay=off".
//
// Values are on/true/1, off/false/0 or N% for a deterministic per-user rollout.
type Manager struct {
	flags map[string]string
}

// NewManager parses raw. Malformed pairs are skipped.
func NewManager(raw string) *Manager {
	flags := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		name, value = normalize(name), normalize(value)
		if name == "" || value == "" {
			continue
		}
		flags[name] = value
	}
	return &Manager{flags: flags}
}

// Enabled evaluates name for userID. A userID of 0 is an anonymous caller and never falls
// inside a partial rollout.
func (m *Manager) Enabled(name string, userID uint) bool {
	name = normalize(name)
	if m == nil {
		return defaults[name]
	}

	value, ok := m.flags[name]
	if !ok {
		return defaults[name]
	}

	switch value {
	case "on", "true", "1":
		return true
	case "off", "false", "0":
		return false
	}

	pct, ok := percentage(value)
	switch {
	case !ok || pct <= 0:
		return false
	case pct >= 100:
		return true
	case userID == 0:
		return false
	}
	return rolloutBucket(name, userID) < pct
}

// Func binds a flag so callers that only know a user id can evaluate it.
func (m *Manager) Func(name string) func(userID uint) bool {
	return func(userID uint) bool {
		return m.Enabled(name, userID)
	}
}

// Raw returns a copy of the configured values.
func (m *Manager) Raw() map[string]string {
	if m == nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(m.flags))
	for k, v := range m.flags {
		out[k] = v
	}
	return out
}

// Names lists known and configured flags in order.
func (m *Manager) Names() []string {
	seen := make(map[string]struct{}, len(defaults))
	for name := range defaults {
		seen[name] = struct{}{}
	}
	if m != nil {
		for name := range m.flags {
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot evaluates every flag for one user.
func (m *Manager) Snapshot(userID uint) map[string]bool {
	names := m.Names()
	out := make(map[string]bool, len(names))
	for _, name := range names {
		out[name] = m.Enabled(name, userID)
	}
	return out
}

func percentage(value string) (int, bool) {
	raw, ok := strings.CutSuffix(value, "%")
	if !ok {
		return 0, false
	}
	pct, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return pct, true
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func rolloutBucket(name string, userID uint) int {
	h := fnv.New32a()
	_, _ = fmt.Fprintf(h, "%s:%d", name, userID)
	return int(h.Sum32() % 100)
}
