package validation

import "strings"

// CompletenessValidator confirms every required section is present.
type CompletenessValidator struct {
	rules CompletenessRules
}

func NewCompletenessValidator(rules *Rules) *CompletenessValidator {
	return &CompletenessValidator{rules: rules.Completeness}
}

func (v *CompletenessValidator) Name() string { return "completeness" }

// Validate reports a missing or blank required section as an error and a
// section shorter than its minimum length as a warning.
func (v *CompletenessValidator) Validate(sections map[string]string) Result {
	res := newResult(v.Name())
	present := make(map[string]string, len(sections))
	for title, text := range sections {
		present[normalizeTitle(title)] = strings.TrimSpace(text)
	}
	for _, req := range v.rules.RequiredSections {
		text, ok := present[normalizeTitle(req.Title)]
		if !ok || text == "" {
			res.errorf("missing required section: %s", req.Title)
			continue
		}
		if req.MinLength > 0 && len([]rune(text)) < req.MinLength {
			res.warnf("section %s is shorter than %d characters (%d)", req.Title, req.MinLength, len([]rune(text)))
		}
	}
	return *res
}

func normalizeTitle(t string) string {
	return strings.ToLower(strings.Join(strings.Fields(t), " "))
}
