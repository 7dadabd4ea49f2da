package gateway

// decisionKind enumerates the terminal states of a route-class gate.
type decisionKind uint8

const (
	decisionAllow decisionKind = iota
	decisionRedirect
	decisionFail
)

func (k decisionKind) String() string {
	switch k {
	case decisionAllow:
		return "allow"
	case decisionRedirect:
		return "redirect"
	case decisionFail:
		return "fail"
	default:
		return "unknown"
	}
}

// decision is the outcome of gating one request against one route class.
// Every gate returns exactly one of the three terminal states.
type decision struct {
	kind     decisionKind
	location string // redirect target, absolute or path-relative
	status   int    // http status for decisionFail
	reason   string // short label for logs
	detail   error  // underlying failure, exposed only when configured
}

func allow() decision {
	return decision{kind: decisionAllow, reason: "allow"}
}

func redirectTo(location, reason string) decision {
	return decision{kind: decisionRedirect, location: location, reason: reason}
}

func fail(status int, reason string, detail error) decision {
	return decision{kind: decisionFail, status: status, reason: reason, detail: detail}
}
