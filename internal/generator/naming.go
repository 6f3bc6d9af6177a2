package generator

import (
	"strings"

	"github.com/toyz/dualgen/internal/config"
	"github.com/toyz/dualgen/internal/models"
)

// DeriveName returns the name of the interface generated from a declaration
// named name written in the source style. The client suffix and the source
// style token are stripped when present, then the opposite style's primary
// token and the client suffix are appended:
//
//	UserBlockingClient   (direct) -> UserAsynchronousClient
//	UserReactiveClient   (async)  -> UserBlockingClient
//	FooClient            (direct) -> FooAsynchronousClient
func DeriveName(name string, source models.Style, naming config.NamingConfig) string {
	base := strings.TrimSuffix(name, naming.ClientSuffix)

	var token string
	switch source {
	case models.StyleDirect:
		base = strings.TrimSuffix(base, naming.DirectToken)
		token = naming.AsyncToken
	case models.StyleAsync:
		base = trimFirstSuffix(base, asyncTokens(naming)...)
		token = naming.DirectToken
	}

	return base + token + naming.ClientSuffix
}

// asyncTokens lists the primary async token followed by its aliases
func asyncTokens(naming config.NamingConfig) []string {
	return append([]string{naming.AsyncToken}, naming.AsyncAliases...)
}

func trimFirstSuffix(s string, suffixes ...string) string {
	for _, suffix := range suffixes {
		if suffix != "" && strings.HasSuffix(s, suffix) {
			return strings.TrimSuffix(s, suffix)
		}
	}
	return s
}
