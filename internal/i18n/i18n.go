// Package i18n resolves the request language and holds the small set of
// user-facing strings the API returns directly (email subjects and
// subscription outcome messages). Full page-level string tables live in
// the frontend.
package i18n

import "strings"

// Language is a supported site language.
type Language string

const (
	LangEN Language = "en"
	LangES Language = "es"
)

// Default is the fallback language when none can be resolved.
const Default = LangEN

// Normalize maps a raw language tag ("es-ES", "en-US;q=0.9", ...) to a
// supported language by prefix. Returns "" when the tag is unrecognized.
func Normalize(value string) Language {
	lower := strings.ToLower(strings.TrimSpace(value))
	switch {
	case strings.HasPrefix(lower, "es"):
		return LangES
	case strings.HasPrefix(lower, "en"):
		return LangEN
	default:
		return ""
	}
}

// Resolve picks the request language: the lang cookie wins, then the
// first Accept-Language segment, then the default.
func Resolve(cookieLang, acceptLanguage string) Language {
	if lang := Normalize(cookieLang); lang != "" {
		return lang
	}
	header, _, _ := strings.Cut(acceptLanguage, ",")
	if lang := Normalize(header); lang != "" {
		return lang
	}
	return Default
}

var messages = map[Language]map[string]string{
	LangEN: {
		"subscribe.subscribed":   "Subscription confirmed. Please check your inbox.",
		"subscribe.resubscribed": "Subscription confirmed. Please check your inbox.",
		"subscribe.already":      "You're already subscribed.",
		"unsubscribe.ok":         "Your subscription has been cancelled.",
		"unsubscribe.already":    "This address is already unsubscribed.",
		"unsubscribe.not_found":  "If the address was subscribed, it has been removed.",
		"contact.sent":           "Message sent successfully! I'll get back to you soon.",

		"email.subscribe.subject":   "Subscription confirmed",
		"email.unsubscribe.subject": "Subscription cancelled",
	},
	LangES: {
		"subscribe.subscribed":   "Suscripción confirmada. Revisa tu correo.",
		"subscribe.resubscribed": "Suscripción confirmada. Revisa tu correo.",
		"subscribe.already":      "Ya estás suscrito.",
		"unsubscribe.ok":         "Tu suscripción ha sido cancelada.",
		"unsubscribe.already":    "Este correo ya estaba dado de baja.",
		"unsubscribe.not_found":  "Si el correo estaba suscrito, ya fue eliminado.",
		"contact.sent":           "¡Mensaje enviado con éxito! Te responderé pronto.",

		"email.subscribe.subject":   "Suscripcion confirmada",
		"email.unsubscribe.subject": "Suscripcion cancelada",
	},
}

// T returns the message for key in the given language, falling back to
// the default language, then to the key itself.
func T(lang Language, key string) string {
	if table, ok := messages[lang]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if msg, ok := messages[Default][key]; ok {
		return msg
	}
	return key
}
