package sensitive

const redacted = "[REDACTED]"

// String holds secret material such as consumer and token secrets. It prints
// and marshals as a fixed placeholder so a stray Printf or JSON dump does not
// leak the value. Use Reveal to get the raw string.
type String string

// Reveal returns the raw secret.
func (s String) Reveal() string {
	return string(s)
}

// Empty reports whether no secret was set.
func (s String) Empty() bool {
	return s == ""
}

func (s String) String() string {
	if s == "" {
		return ""
	}
	return redacted
}

// GoString covers %#v.
func (s String) GoString() string {
	return `sensitive.String("` + s.String() + `")`
}

// MarshalText redacts the value for JSON, TOML and other text encoders.
func (s String) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText stores the raw value.
func (s *String) UnmarshalText(b []byte) error {
	*s = String(b)
	return nil
}
