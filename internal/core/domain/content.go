package domain

// LoadPhase is the coarse state of one content view.
type LoadPhase string

const (
	LoadLoading LoadPhase = "loading"
	LoadReady   LoadPhase = "ready"
	LoadFailed  LoadPhase = "failed"
)

// Error view copy.
const (
	LoadErrorTitle     = "Unable to Connect"
	LoadRetryLabel     = "Try Again"
	DefaultLoadFailure = "The page could not be loaded."
)

const InjectAtDocumentStart = "document-start"

// LoadState is per view and reset to Loading on every new load epoch.
type LoadState struct {
	Phase LoadPhase
	Err   error
}

func Loading() LoadState { return LoadState{Phase: LoadLoading} }

func Ready() LoadState { return LoadState{Phase: LoadReady} }

func Failed(err error) LoadState { return LoadState{Phase: LoadFailed, Err: err} }

// ViewSignals is what the UI host renders for a view.
type ViewSignals struct {
	Busy               bool   `json:"busy"`
	InteractionEnabled bool   `json:"interaction_enabled"`
	ShowRetry          bool   `json:"show_retry"`
	ErrorTitle         string `json:"error_title,omitempty"`
	ErrorMessage       string `json:"error_message,omitempty"`
	RetryLabel         string `json:"retry_label,omitempty"`
}

// Signals maps the load state to UI signals.
func (s LoadState) Signals() ViewSignals {
	switch s.Phase {
	case LoadLoading:
		return ViewSignals{Busy: true}
	case LoadFailed:
		msg := DefaultLoadFailure
		if s.Err != nil && s.Err.Error() != "" {
			msg = s.Err.Error()
		}
		return ViewSignals{
			InteractionEnabled: true,
			ShowRetry:          true,
			ErrorTitle:         LoadErrorTitle,
			ErrorMessage:       msg,
			RetryLabel:         LoadRetryLabel,
		}
	default:
		return ViewSignals{InteractionEnabled: true}
	}
}

// LifecycleEvent is a callback from the content host.
type LifecycleEvent string

const (
	LifecycleStarted  LifecycleEvent = "started"
	LifecycleFinished LifecycleEvent = "finished"
	LifecycleFailed   LifecycleEvent = "failed"
)

func (e LifecycleEvent) Valid() bool {
	switch e {
	case LifecycleStarted, LifecycleFinished, LifecycleFailed:
		return true
	}
	return false
}

// InjectionPayload is installed into the content context before any page
// script runs for the epoch it was built for.
type InjectionPayload struct {
	Epoch         uint64 `json:"epoch"`
	Script        string `json:"script"`
	TokenSet      bool   `json:"token_set"`
	InjectAt      string `json:"inject_at"`
	MainFrameOnly bool   `json:"main_frame_only"`
}

// LoadTicket is handed to the content host for one load epoch. The host must
// install Injection and confirm it before loading StartURL.
type LoadTicket struct {
	ViewID     string            `json:"view_id"`
	Module     ModuleDescriptor  `json:"module"`
	Epoch      uint64            `json:"epoch"`
	StartURL   string            `json:"start_url"`
	UserAgent  string            `json:"user_agent"`
	Injection  InjectionPayload  `json:"injection"`
	Navigation NavigationVerdict `json:"navigation"`
}

// ViewSnapshot is the observable state of a content view.
type ViewSnapshot struct {
	ViewID   string      `json:"view_id"`
	ModuleID string      `json:"module_id"`
	Epoch    uint64      `json:"epoch"`
	Injected bool        `json:"injected"`
	Phase    LoadPhase   `json:"phase"`
	Signals  ViewSignals `json:"signals"`
	Closed   bool        `json:"closed,omitempty"`
}
