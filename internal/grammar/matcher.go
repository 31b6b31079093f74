package grammar

import (
	"wordsteady/internal/models"
)

// Rand is the subset of *rand.Rand the matcher draws from
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// IsCompatible reports whether finisher may follow starter.
// The form must be accepted; a CLAUSE additionally needs both sides to carry
// the same tense.
func IsCompatible(starter models.Starter, finisher models.Finisher) bool {
	if !starter.AcceptsForm(finisher.Form) {
		return false
	}
	if finisher.Form == models.FormClause {
		return starter.Tense != models.TenseNone &&
			finisher.Tense != models.TenseNone &&
			starter.Tense == finisher.Tense
	}
	return true
}

// CompatibleFinishers filters pool down to the finishers that fit starter
func CompatibleFinishers(starter models.Starter, pool []models.Finisher) []models.Finisher {
	var out []models.Finisher
	for _, f := range pool {
		if IsCompatible(starter, f) {
			out = append(out, f)
		}
	}
	return out
}

// BuildDistractors picks up to two wrong finishers for challenge mode: one
// with the opposite tense (CLAUSE starters only) and one of a form the starter
// does not accept. Neither repeats text from correct or from each other.
func BuildDistractors(starter models.Starter, correct, pool []models.Finisher, rng Rand) []models.Option {
	seen := make(map[string]bool, len(correct)+2)
	for _, f := range correct {
		seen[f.TextKey()] = true
	}

	var out []models.Option

	if starter.AcceptsForm(models.FormClause) {
		if opposite := starter.Tense.Opposite(); opposite != models.TenseNone {
			candidates := filter(pool, func(f models.Finisher) bool {
				return f.Form == models.FormClause && f.Tense == opposite && !seen[f.TextKey()]
			})
			if len(candidates) > 0 {
				pick := candidates[rng.Intn(len(candidates))]
				seen[pick.TextKey()] = true
				out = append(out, models.Option{Finisher: pick, Kind: models.OptionTenseDistractor})
			}
		}
	}

	// Only forms that still have an unseen finisher are eligible, so a pack
	// with a sparse pool does not silently lose the form distractor.
	byForm := make(map[models.FormTag][]models.Finisher)
	var forms []models.FormTag
	for _, form := range models.AllForms {
		if starter.AcceptsForm(form) {
			continue
		}
		candidates := filter(pool, func(f models.Finisher) bool {
			return f.Form == form && !seen[f.TextKey()]
		})
		if len(candidates) > 0 {
			byForm[form] = candidates
			forms = append(forms, form)
		}
	}
	if len(forms) > 0 {
		form := forms[rng.Intn(len(forms))]
		candidates := byForm[form]
		pick := candidates[rng.Intn(len(candidates))]
		out = append(out, models.Option{Finisher: pick, Kind: models.OptionFormDistractor})
	}

	return out
}

// DisplayList builds the finisher chips for starter: the compatible set, plus
// distractors in challenge mode, deduplicated by text and shuffled.
func DisplayList(starter models.Starter, pool []models.Finisher, challenge bool, rng Rand) []models.Option {
	correct := CompatibleFinishers(starter, pool)

	list := make([]models.Option, 0, len(correct)+2)
	for _, f := range correct {
		list = append(list, models.Option{Finisher: f, Kind: models.OptionCorrect})
	}
	if challenge {
		list = append(list, BuildDistractors(starter, correct, pool, rng)...)
	}

	list = uniqueByText(list)
	rng.Shuffle(len(list), func(i, j int) {
		list[i], list[j] = list[j], list[i]
	})
	return list
}

func uniqueByText(list []models.Option) []models.Option {
	seen := make(map[string]bool, len(list))
	out := list[:0]
	for _, o := range list {
		key := o.Finisher.TextKey()
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, o)
	}
	return out
}

func filter(pool []models.Finisher, keep func(models.Finisher) bool) []models.Finisher {
	var out []models.Finisher
	for _, f := range pool {
		if keep(f) {
			out = append(out, f)
		}
	}
	return out
}
