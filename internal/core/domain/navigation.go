package domain

// NavigationDecision is the guard's verdict for one navigation attempt.
type NavigationDecision string

const (
	NavigationAllow           NavigationDecision = "allow"
	NavigationHandoffExternal NavigationDecision = "handoff_external"
	NavigationDeny            NavigationDecision = "deny"
)

// NavigationKind describes what triggered a navigation.
type NavigationKind string

const (
	NavigationLinkActivated NavigationKind = "link_activated"
	NavigationRedirect      NavigationKind = "redirect"
	NavigationFormSubmitted NavigationKind = "form_submitted"
	NavigationBackForward   NavigationKind = "back_forward"
	NavigationReload        NavigationKind = "reload"
	NavigationResource      NavigationKind = "resource"
	NavigationOther         NavigationKind = "other"
)

// UserInitiated reports whether the navigation came from an explicit link
// activation rather than script, redirect or resource loading.
func (k NavigationKind) UserInitiated() bool {
	return k == NavigationLinkActivated
}

type NavigationRequest struct {
	URL  string
	Kind NavigationKind
}

// NavigationVerdict is never persisted.
type NavigationVerdict struct {
	Decision      NavigationDecision `json:"decision"`
	Origin        string             `json:"origin,omitempty"`
	ModuleID      string             `json:"module_id,omitempty"`
	ScriptEnabled bool               `json:"script_enabled"`
	Reason        string             `json:"reason"`
}
