package cache

// Namespace is the fixed prefix that separates the three read operations in
// the key space.
type Namespace string

// Namespaces for the cached read operations.
const (
	NamespaceReadme Namespace = "readme"
	NamespaceIssues Namespace = "issues"
	NamespacePulls  Namespace = "pulls"
)

// Namespaces lists every namespace, in a stable order.
func Namespaces() []Namespace {
	return []Namespace{NamespaceReadme, NamespaceIssues, NamespacePulls}
}

// Keyer derives cache keys. Identical (namespace, repo) pairs must always
// produce the identical key and distinct namespaces must never collide.
type Keyer interface {
	Key(ns Namespace, repo string) string
}

// DefaultKeyer produces keys of the form "namespace:owner/name".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// Key returns "ns:repo".
func (DefaultKeyer) Key(ns Namespace, repo string) string {
	return string(ns) + ":" + repo
}

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// Deployments that share one backend between differently-privileged tokens
// can scope keys so that private repository data fetched with one token is
// never served to another.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "team-a:")
//	keyer.Key(NamespaceReadme, "owner/repo") // "team-a:readme:owner/repo"
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys. A nil inner keyer uses
// [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// Key generates a prefixed key.
func (k *ScopedKeyer) Key(ns Namespace, repo string) string {
	return k.prefix + k.inner.Key(ns, repo)
}

// TokenScope returns a key prefix derived from an API token, suitable for
// [NewScopedKeyer]. The token itself never appears in the key. An empty
// token yields the shared "anon:" scope.
func TokenScope(token string) string {
	if token == "" {
		return "anon:"
	}
	return "tok:" + Hash([]byte(token))[:16] + ":"
}
