package mahalanobis

import "fmt"

// Method selects the subsampling strategy used before covariance estimation.
type Method string

const (
	MethodRandom     Method = "random"
	MethodSystematic Method = "systematic"
	MethodCluster    Method = "cluster"
)

// Valid reports whether m names a known subsampling strategy.
func (m Method) Valid() bool {
	switch m {
	case MethodRandom, MethodSystematic, MethodCluster:
		return true
	default:
		return false
	}
}

// ParseMethod converts a method name into a Method.
func ParseMethod(s string) (Method, error) {
	m := Method(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
	return m, nil
}

// UnmarshalText implements encoding.TextUnmarshaler so config files can name
// the method directly.
func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
