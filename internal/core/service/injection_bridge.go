package service

import (
	"encoding/json"
	"strings"

	"github.com/ewbmobile/hybrid-shell/internal/core/domain"
)

// Local storage slots read by module content.
const (
	TokenSlot = "token"
	UserSlot  = "user"
)

// InjectionBridge builds the script that seeds module content with the
// session token before the content's own script runs.
type InjectionBridge struct {
	tokenSlot string
	userSlot  string
}

func NewInjectionBridge() *InjectionBridge {
	return &InjectionBridge{tokenSlot: TokenSlot, userSlot: UserSlot}
}

// Build returns the payload for one load epoch. The output depends only on
// its inputs. An empty token omits the token assignment; the user slot keeps
// any value the content stored earlier and is only defaulted to "{}".
func (b *InjectionBridge) Build(epoch uint64, token string) domain.InjectionPayload {
	var sb strings.Builder
	if token != "" {
		sb.WriteString("localStorage.setItem(")
		sb.WriteString(jsString(b.tokenSlot))
		sb.WriteString(", ")
		sb.WriteString(jsString(token))
		sb.WriteString(");\n")
	}
	user := jsString(b.userSlot)
	sb.WriteString("localStorage.setItem(")
	sb.WriteString(user)
	sb.WriteString(", localStorage.getItem(")
	sb.WriteString(user)
	sb.WriteString(") || \"{}\");\n")

	return domain.InjectionPayload{
		Epoch:         epoch,
		Script:        sb.String(),
		TokenSet:      token != "",
		InjectAt:      domain.InjectAtDocumentStart,
		MainFrameOnly: true,
	}
}

// jsString quotes s as a JavaScript string literal. encoding/json escapes
// quotes, backslashes, control characters, '<', '>', '&' and U+2028/U+2029.
func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
