package grammar

import (
	"fmt"
	"strings"

	"wordsteady/internal/models"
)

const genericHint = "That ending doesn't fit this starter grammatically. Read the starter again and try another ending."

// Hint explains why option does not complete starter. pool is used to find
// a worked example that does fit.
func Hint(starter models.Starter, option models.Option, pool []models.Finisher) string {
	switch option.Kind {
	case models.OptionTenseDistractor:
		if h := tenseHint(starter, pool); h != "" {
			return h
		}
	case models.OptionFormDistractor:
		if h := formHint(starter, pool); h != "" {
			return h
		}
	}

	// An untagged wrong pick can still be explained by what went wrong.
	if starter.AcceptsForm(option.Finisher.Form) && option.Finisher.Form == models.FormClause {
		if h := tenseHint(starter, pool); h != "" {
			return h
		}
	}
	if !starter.AcceptsForm(option.Finisher.Form) {
		if h := formHint(starter, pool); h != "" {
			return h
		}
	}
	return genericHint
}

func tenseHint(starter models.Starter, pool []models.Finisher) string {
	var tense string
	switch starter.Tense {
	case models.TensePast:
		tense = "past"
	case models.TensePresent:
		tense = "present"
	default:
		return ""
	}

	msg := fmt.Sprintf("Tense mismatch: this starter is in the %s tense, so the clause after it must be %s tense too.", tense, tense)
	if example := workedExample(starter, pool, models.FormClause); example != "" {
		msg += " For example: " + example
	}
	return msg
}

func formHint(starter models.Starter, pool []models.Finisher) string {
	for _, form := range starter.Accepts {
		var msg string
		switch form {
		case models.FormClause:
			msg = "This starter needs a full clause after it, with its own subject and verb."
		case models.FormGerund:
			msg = "This starter needs an -ing phrase after it, like \"the pressure increasing\"."
		case models.FormNounPhrase:
			msg = "This starter needs a noun or noun phrase after it, not a verb."
		case models.FormVerbPhrase:
			msg = "This starter needs a verb phrase after it, starting with a plain verb like \"stand\" or \"keep\"."
		default:
			continue
		}
		if example := workedExample(starter, pool, form); example != "" {
			msg += " For example: " + example
		}
		return msg
	}
	return ""
}

// workedExample joins starter with the first finisher of form that fits it
func workedExample(starter models.Starter, pool []models.Finisher, form models.FormTag) string {
	for _, f := range pool {
		if f.Form == form && IsCompatible(starter, f) {
			return fmt.Sprintf("%q", Sentence(starter, f))
		}
	}
	return ""
}

// Sentence joins a starter and finisher into display text
func Sentence(starter models.Starter, finisher models.Finisher) string {
	text := starter.Text
	if text != "" && !strings.HasSuffix(text, " ") {
		text += " "
	}
	return text + strings.TrimSpace(finisher.Text)
}
