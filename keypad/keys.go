package keypad

import (
	"strings"

	"github.com/warp/datecalc/calc"
)

// Key tokens understood by KeyToIntent besides digits and unit letters.
const (
	KeyClear     = "C"
	KeyBackspace = "Backspace"
	KeyEvaluate  = "="
	KeyAdd       = "+"
	KeySub       = "-"

	PrefixSet   = "set:"
	PrefixMonth = "month:"
	PrefixDay   = "day:"
)

// KeyToIntent classifies a key token against the current state. It returns
// nil for keys that mean nothing right now (a unit letter with no number
// waiting for it, an unknown key).
func KeyToIntent(s State, key string) Intent {
	switch key {
	case KeyClear:
		return Clear{}
	case KeyBackspace:
		return Delete{}
	case KeyEvaluate:
		return Evaluate{}
	case KeyAdd:
		return Operate{Op: calc.OpAdd}
	case KeySub:
		if s.Mode() != ModeResult && calc.ContinuesDate(s.Display) {
			return Digit{Char: KeySub}
		}
		return Operate{Op: calc.OpSub}
	}

	if u, ok := unitKey(key); ok {
		if s.Mode() == ModeResult && calc.HasInterval(s.Output) {
			return ReformatDuration{Unit: u}
		}
		if calc.AwaitsUnit(s.Display) {
			return UnitSuffix{Unit: u}
		}
		return nil
	}

	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		return Digit{Char: key}
	}

	switch {
	case strings.HasPrefix(key, PrefixSet):
		return SetDisplay{Text: strings.TrimPrefix(key, PrefixSet)}
	case strings.HasPrefix(key, PrefixMonth):
		return AppendMonth{Month: strings.TrimPrefix(key, PrefixMonth)}
	case strings.HasPrefix(key, PrefixDay):
		return AppendDay{Day: strings.TrimPrefix(key, PrefixDay)}
	}

	return nil
}

// unitKey accepts lower-case unit letters only; upper-case "C" is clear.
func unitKey(key string) (calc.Unit, bool) {
	switch key {
	case "d", "w", "m", "y":
		return calc.Unit(key), true
	}
	return "", false
}

// HandleKey classifies key and reduces it.
func HandleKey(s State, key string) State {
	return Reduce(s, KeyToIntent(s, key))
}

// Run feeds each key to HandleKey starting from the empty state.
func Run(keys ...string) State {
	s := Empty()
	for _, k := range keys {
		s = HandleKey(s, k)
	}
	return s
}

// SplitKeys turns a typed sequence such as "2024-01-01 - 2024-01-10 = d" into
// single-character keys. Spaces separate nothing and are dropped.
func SplitKeys(input string) []string {
	keys := make([]string, 0, len(input))
	for _, r := range input {
		if r == ' ' || r == '\t' || r == '\n' {
			continue
		}
		keys = append(keys, string(r))
	}
	return keys
}
