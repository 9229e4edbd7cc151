// Package identity resolves the caller identity supplied to the task service.
// The identity is an opaque string; nothing here validates it.
package identity

import (
	"fmt"
	"os"
	"os/user"
	"strings"
)

// Resolver yields the identity the surrounding environment attributes to the
// current caller.
type Resolver interface {
	Current() (string, error)
}

// EnvResolver resolves in precedence order: configured override, the
// TASKDECK_OWNER environment variable, then the OS username.
type EnvResolver struct {
	// Override, when non-empty, is returned as-is.
	Override string
}

func (r EnvResolver) Current() (string, error) {
	if o := strings.TrimSpace(r.Override); o != "" {
		return o, nil
	}
	if o := strings.TrimSpace(os.Getenv("TASKDECK_OWNER")); o != "" {
		return o, nil
	}
	u, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("resolve os user: %w", err)
	}
	return u.Username, nil
}

// Static resolves to a fixed identity. Used in tests and one-shot commands.
type Static string

func (s Static) Current() (string, error) { return string(s), nil }
