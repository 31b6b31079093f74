package content

import "wordsteady/internal/models"

// Fallback returns the built-in pack served when the day's document cannot
// be fetched or decoded
func Fallback(date string) *models.Pack {
	clause := []models.FormTag{models.FormClause}
	past, present := models.TensePast, models.TensePresent

	return &models.Pack{
		ID:          "fallback-" + date,
		Word:        "STEADFAST",
		Display:     "Steadfast",
		Meaning:     "firm and reliable in purpose, loyalty, or belief",
		Example:     "“She remained steadfast during the crisis.”",
		Minutes:     defaultMinutes,
		Step3Target: 2,
		Fallback:    true,
		Starters: []models.Starter{
			{Text: "She remained steadfast when ", Accepts: clause, Tense: past},
			{Text: "I try to be steadfast when ", Accepts: clause, Tense: present},
			{Text: "He stayed steadfast despite ", Accepts: []models.FormTag{models.FormGerund}},
			{Text: "They were steadfast in their ", Accepts: []models.FormTag{models.FormNounPhrase}},
			{Text: "A steadfast person will ", Accepts: []models.FormTag{models.FormVerbPhrase}},
		},
		Finishers: []models.Finisher{
			{Text: "things get difficult.", Form: models.FormClause, Tense: present},
			{Text: "others change their minds.", Form: models.FormClause, Tense: present},
			{Text: "the pressure is intense.", Form: models.FormClause, Tense: present},
			{Text: "it matters most.", Form: models.FormClause, Tense: present},
			{Text: "it would be easier to quit.", Form: models.FormClause, Tense: present},

			{Text: "things got difficult.", Form: models.FormClause, Tense: past},
			{Text: "others changed their minds.", Form: models.FormClause, Tense: past},
			{Text: "the pressure was intense.", Form: models.FormClause, Tense: past},
			{Text: "it mattered most.", Form: models.FormClause, Tense: past},
			{Text: "it would have been easier to quit.", Form: models.FormClause, Tense: past},

			{Text: "things getting difficult.", Form: models.FormGerund},
			{Text: "the pressure increasing.", Form: models.FormGerund},
			{Text: "the criticism growing louder.", Form: models.FormGerund},

			{Text: "beliefs.", Form: models.FormNounPhrase},
			{Text: "commitment.", Form: models.FormNounPhrase},
			{Text: "principles.", Form: models.FormNounPhrase},

			{Text: "keep going.", Form: models.FormVerbPhrase},
			{Text: "stand firm.", Form: models.FormVerbPhrase},
			{Text: "follow through.", Form: models.FormVerbPhrase},
			{Text: "remain calm under pressure.", Form: models.FormVerbPhrase},
		},
	}
}
