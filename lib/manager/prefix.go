package manager

import (
	"fmt"
	"strings"
)

// Separator joins the namespace and the logical key in the wire key.
const Separator = ":"

// prefixCodec maps logical keys to namespaced wire keys and back.
// The prefixed form is the only key form ever sent to the backend.
type prefixCodec struct {
	namespace string
}

func newPrefixCodec(namespace string) (prefixCodec, error) {
	if namespace == "" {
		return prefixCodec{}, newError(KindInvalidKey, "namespace must not be empty")
	}
	if strings.Contains(namespace, Separator) {
		return prefixCodec{}, newError(KindInvalidKey, fmt.Sprintf("namespace %q must not contain %q", namespace, Separator))
	}
	return prefixCodec{namespace: namespace}, nil
}

// concat returns the namespaced wire key for a logical key.
func (p prefixCodec) concat(key string) (string, error) {
	if key == "" {
		return "", newError(KindInvalidKey, "key must not be empty")
	}
	if strings.Contains(key, Separator) {
		return "", newError(KindInvalidKey, fmt.Sprintf("key %q must not contain %q", key, Separator))
	}
	return p.namespace + Separator + key, nil
}

// split strips the namespace prefix from a wire key.
func (p prefixCodec) split(prefixedKey string) (string, error) {
	prefix := p.wirePrefix()
	if !strings.HasPrefix(prefixedKey, prefix) {
		return "", newError(KindInvalidKey, fmt.Sprintf("key %q does not belong to namespace %q", prefixedKey, p.namespace))
	}
	return strings.TrimPrefix(prefixedKey, prefix), nil
}

// wirePrefix returns the prefix shared by all wire keys of the namespace.
func (p prefixCodec) wirePrefix() string {
	return p.namespace + Separator
}

// lockResource returns the lock resource name guarding a wire key.
func lockResource(prefixedKey string) string {
	return "lock:" + prefixedKey
}
