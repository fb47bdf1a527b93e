package loader

import "fmt"

// Diagnostic is a non-fatal note about a key the engine does not interpret.
// It never changes how a material resolves.
type Diagnostic struct {
	// Scope names the JSON object the key was found on, e.g. ScopeMaterial or ScopeTexture.
	Scope string

	// Key is the unrecognized key.
	Key string

	// Subject identifies the owning object, e.g. "material 3" or "texture 0".
	Subject string
}

// String formats the diagnostic as "<SCOPE> unrecognized key <key> (<subject>)".
func (d Diagnostic) String() string {
	if d.Subject == "" {
		return fmt.Sprintf("%s unrecognized key %s", d.Scope, d.Key)
	}
	return fmt.Sprintf("%s unrecognized key %s (%s)", d.Scope, d.Key, d.Subject)
}

// Reporter receives diagnostics as they are found.
type Reporter func(Diagnostic)

func (r Reporter) report(scope, subject string, keys []string) {
	if r == nil {
		return
	}
	for _, k := range keys {
		r(Diagnostic{Scope: scope, Key: k, Subject: subject})
	}
}
