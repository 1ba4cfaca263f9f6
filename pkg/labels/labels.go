package labels

import (
	"fmt"
	"strings"
)

// Message keys understood by Resolve.
const (
	KeyTitle           = "title"
	KeyNameHint        = "hint_name"
	KeyNameEmpty       = "error_name_empty"
	KeyAge             = "age"
	KeyGender          = "gender"
	KeyGenderMale      = "gender_male"
	KeyGenderFemale    = "gender_female"
	KeySubscribe       = "subscribe"
	KeySubscriptionYes = "subscription_yes"
	KeySubscriptionNo  = "subscription_no"
	KeySend            = "button_send"
	KeySelectAvatar    = "button_select_avatar"
	KeyClearAvatar     = "button_clear_avatar"
	KeyQuit            = "button_quit"
	KeyAvatarNone      = "avatar_none"
	KeySummaryEmpty    = "summary_empty"
	KeySummaryTemplate = "result"
)

// DefaultGenderKeys lists the gender option keys used when none are
// configured. The first entry is the default selection.
var DefaultGenderKeys = []string{KeyGenderMale, KeyGenderFemale}

// Labels is the resolved string bundle for one locale.
type Labels struct {
	Locale          string   `json:"locale"`
	Title           string   `json:"title"`
	NameHint        string   `json:"nameHint"`
	NameEmpty       string   `json:"nameEmpty"`
	AgeFormat       string   `json:"ageFormat"`
	Gender          string   `json:"gender"`
	GenderOptions   []string `json:"genderOptions"`
	Subscribe       string   `json:"subscribe"`
	SubscriptionYes string   `json:"subscriptionYes"`
	SubscriptionNo  string   `json:"subscriptionNo"`
	Send            string   `json:"send"`
	SelectAvatar    string   `json:"selectAvatar"`
	ClearAvatar     string   `json:"clearAvatar"`
	Quit            string   `json:"quit"`
	AvatarNone      string   `json:"avatarNone"`
	SummaryEmpty    string   `json:"summaryEmpty"`
	SummaryTemplate string   `json:"summaryTemplate"`
}

// ResolveOptions tunes Resolve.
type ResolveOptions struct {
	// GenderKeys selects the keys translated into GenderOptions, in display
	// order. Defaults to DefaultGenderKeys.
	GenderKeys []string
	// OnMissing controls the string used when a key cannot be translated.
	// Defaults to returning the key itself.
	OnMissing MissingTranslationHandler
}

// Resolve translates every form label for locale. It never fails: missing
// messages are routed through opts.OnMissing.
func Resolve(t Translator, locale string, opts ResolveOptions) Labels {
	onMissing := opts.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	lookup := func(key string) string {
		return translate(locale, key, "", t, onMissing)
	}

	genderKeys := opts.GenderKeys
	if len(genderKeys) == 0 {
		genderKeys = DefaultGenderKeys
	}
	genders := make([]string, 0, len(genderKeys))
	seen := make(map[string]struct{}, len(genderKeys))
	for _, key := range genderKeys {
		label := lookup(key)
		if strings.TrimSpace(label) == "" {
			continue
		}
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		genders = append(genders, label)
	}

	return Labels{
		Locale:          CanonicalLocale(locale),
		Title:           lookup(KeyTitle),
		NameHint:        lookup(KeyNameHint),
		NameEmpty:       lookup(KeyNameEmpty),
		AgeFormat:       lookup(KeyAge),
		Gender:          lookup(KeyGender),
		GenderOptions:   genders,
		Subscribe:       lookup(KeySubscribe),
		SubscriptionYes: lookup(KeySubscriptionYes),
		SubscriptionNo:  lookup(KeySubscriptionNo),
		Send:            lookup(KeySend),
		SelectAvatar:    lookup(KeySelectAvatar),
		ClearAvatar:     lookup(KeyClearAvatar),
		Quit:            lookup(KeyQuit),
		AvatarNone:      lookup(KeyAvatarNone),
		SummaryEmpty:    lookup(KeySummaryEmpty),
		SummaryTemplate: lookup(KeySummaryTemplate),
	}
}

// AgeLabel formats the age caption with a whole-number age.
func (l Labels) AgeLabel(age int) string {
	if !strings.Contains(l.AgeFormat, "%") {
		return fmt.Sprintf("%s %d", l.AgeFormat, age)
	}
	return fmt.Sprintf(l.AgeFormat, age)
}

// SubscriptionPhrase selects the yes/no phrase for the flag.
func (l Labels) SubscriptionPhrase(subscribed bool) string {
	if subscribed {
		return l.SubscriptionYes
	}
	return l.SubscriptionNo
}

// HasGender reports whether label is one of the configured gender options.
func (l Labels) HasGender(label string) bool {
	return l.GenderIndex(label) >= 0
}

// GenderIndex returns the position of label in GenderOptions or -1.
func (l Labels) GenderIndex(label string) int {
	for i, option := range l.GenderOptions {
		if option == label {
			return i
		}
	}
	return -1
}

// Clone returns a copy that does not share the GenderOptions slice.
func (l Labels) Clone() Labels {
	l.GenderOptions = append([]string(nil), l.GenderOptions...)
	return l
}

// Lookup returns the resolved message for a catalog key.
func (l Labels) Lookup(key string) (string, bool) {
	var msg string
	switch key {
	case KeyTitle:
		msg = l.Title
	case KeyNameHint:
		msg = l.NameHint
	case KeyNameEmpty:
		msg = l.NameEmpty
	case KeyAge:
		msg = l.AgeFormat
	case KeyGender:
		msg = l.Gender
	case KeySubscribe:
		msg = l.Subscribe
	case KeySubscriptionYes:
		msg = l.SubscriptionYes
	case KeySubscriptionNo:
		msg = l.SubscriptionNo
	case KeySend:
		msg = l.Send
	case KeySelectAvatar:
		msg = l.SelectAvatar
	case KeyClearAvatar:
		msg = l.ClearAvatar
	case KeyQuit:
		msg = l.Quit
	case KeyAvatarNone:
		msg = l.AvatarNone
	case KeySummaryEmpty:
		msg = l.SummaryEmpty
	case KeySummaryTemplate:
		msg = l.SummaryTemplate
	default:
		return "", false
	}
	return msg, msg != ""
}
