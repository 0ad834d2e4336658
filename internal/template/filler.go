package template

import "strings"

// MatchTier says how an extracted key found its placeholder.
type MatchTier string

const (
	TierNone    MatchTier = "none"
	TierExact   MatchTier = "exact"
	TierSynonym MatchTier = "synonym"
	TierFuzzy   MatchTier = "fuzzy"
)

// Match records the outcome for one extracted key.
type Match struct {
	Key         string    `json:"key"`
	Tier        MatchTier `json:"tier"`
	Placeholder string    `json:"placeholder,omitempty"`
}

// Fill substitutes extracted values into the template. Unmatched keys and
// unmatched placeholders are left alone.
func Fill(templateText string, fields Fields) string {
	out, _ := FillWithReport(templateText, fields)
	return out
}

// FillWithReport is Fill plus a per-key record of which tier matched.
//
// Keys are applied in order against a cumulative working text:
//  1. exact "[key]", every occurrence;
//  2. synonyms of key, table order, first marker present;
//  3. fuzzy: first label of the original template that contains key or is
//     contained in it, compared lowercased.
func FillWithReport(templateText string, fields Fields) (string, []Match) {
	filled := templateText
	matches := make([]Match, 0, len(fields))

	var labels []string
	labelsReady := false

	for _, f := range fields {
		placeholder := bracket(f.Key)
		if strings.Contains(filled, placeholder) {
			filled = strings.ReplaceAll(filled, placeholder, f.Value)
			matches = append(matches, Match{Key: f.Key, Tier: TierExact, Placeholder: placeholder})
			continue
		}

		if ph, ok := synonymPlaceholder(filled, f.Key); ok {
			filled = strings.ReplaceAll(filled, ph, f.Value)
			matches = append(matches, Match{Key: f.Key, Tier: TierSynonym, Placeholder: ph})
			continue
		}

		if !labelsReady {
			labels = placeholderLabels(templateText)
			labelsReady = true
		}

		m := Match{Key: f.Key, Tier: TierNone}
		key := strings.ToLower(f.Key)
		for _, label := range labels {
			l := strings.ToLower(label)
			if strings.Contains(l, key) || strings.Contains(key, l) {
				// first candidate wins even if its marker is already gone
				ph := bracket(label)
				if strings.Contains(filled, ph) {
					filled = strings.ReplaceAll(filled, ph, f.Value)
					m.Tier = TierFuzzy
					m.Placeholder = ph
				}
				break
			}
		}
		matches = append(matches, m)
	}

	return filled, matches
}

func synonymPlaceholder(text, key string) (string, bool) {
	for _, e := range SynonymTable {
		if !e.has(key) {
			continue
		}
		for _, s := range e.Synonyms {
			ph := bracket(s)
			if strings.Contains(text, ph) {
				return ph, true
			}
		}
	}
	return "", false
}

// placeholderLabels splits on "[" and keeps, for every piece holding a "]",
// the text before that "]". Stray brackets produce odd labels; that is
// accepted.
func placeholderLabels(text string) []string {
	var out []string
	for _, piece := range strings.Split(text, "[") {
		if i := strings.Index(piece, "]"); i >= 0 {
			out = append(out, piece[:i])
		}
	}
	return out
}

func bracket(label string) string {
	return "[" + label + "]"
}
