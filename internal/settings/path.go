package settings

import "strings"

// PathKind identifies the shape of a stored path setting.
type PathKind int

const (
	// PathInvalid is any shape that cannot name a command.
	PathInvalid PathKind = iota
	// PathSingle is a lone executable path.
	PathSingle
	// PathMultiple is an executable followed by arguments.
	PathMultiple
)

// PathSetting is the decoded form of the path setting. Exactly one of
// Single or Multiple is meaningful, depending on Kind.
type PathSetting struct {
	Kind     PathKind
	Single   string
	Multiple []string
}

// SinglePath returns a PathSetting holding one executable path.
func SinglePath(path string) PathSetting {
	return PathSetting{Kind: PathSingle, Single: path}
}

// MultiplePath returns a PathSetting holding an executable and its arguments.
func MultiplePath(args []string) PathSetting {
	return PathSetting{Kind: PathMultiple, Multiple: append([]string(nil), args...)}
}

// DecodePath converts a raw stored value into a PathSetting. Blank
// strings, empty sequences, sequences with a blank executable, and
// sequences holding anything but strings decode as PathInvalid.
func DecodePath(v any) PathSetting {
	if s, ok := v.(string); ok {
		// A blank string is malformed rather than a single path: its
		// absolute form would be the working directory itself.
		if strings.TrimSpace(s) == "" {
			return PathSetting{Kind: PathInvalid}
		}
		return SinglePath(s)
	}

	// Same for a blank executable ahead of the arguments.
	args, ok := toStrings(v)
	if !ok || len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return PathSetting{Kind: PathInvalid}
	}
	return MultiplePath(args)
}
