package nav

import "github.com/emotrack/emotrack-go/internal/client/state"

// CanAccess is the access policy: gated pages need a session holding both
// user and token; everything else is always reachable. Pure, no side
// effects.
func CanAccess(p Page, s *state.Session) bool {
	if !p.Gated() {
		return true
	}
	return s != nil && s.Authenticated()
}
