package validation

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/osaxon/nc-tech-test/pkg/card"
)

// DatasetReport summarizes a dataset check.
type DatasetReport struct {
	Cards     int     `json:"cards"`
	Templates int     `json:"templates"`
	Result    *Result `json:"result"`
}

// ValidateDataset checks a persisted card document and template document
// together: every card must match the stored schema, ids must be unique, and
// each card's cover template must exist. Malformed documents are reported as
// errors wrapping ErrInvalidJSON.
func ValidateDataset(cardsData, templatesData []byte) (*DatasetReport, error) {
	var rawCards []json.RawMessage
	if err := json.Unmarshal(cardsData, &rawCards); err != nil {
		return nil, fmt.Errorf("%w: cards: %v", ErrInvalidJSON, err)
	}
	var templates []card.Template
	if err := json.Unmarshal(templatesData, &templates); err != nil {
		return nil, fmt.Errorf("%w: templates: %v", ErrInvalidJSON, err)
	}

	report := &DatasetReport{
		Cards:     len(rawCards),
		Templates: len(templates),
		Result:    &Result{Valid: true},
	}

	known := make(map[string]bool, len(templates))
	for _, t := range templates {
		known[t.ID] = true
	}

	v := MustCardValidator(ModeStored)
	seen := make(map[string]int, len(rawCards))
	for i, raw := range rawCards {
		prefix := strconv.Itoa(i)
		res, err := v.ValidateJSON(raw)
		if err != nil {
			return nil, err
		}
		report.Result.Merge(prefix, res)

		var c card.Card
		if err := json.Unmarshal(raw, &c); err != nil {
			// Shape errors were reported above.
			continue
		}
		if first, dup := seen[c.ID]; dup && c.ID != "" {
			report.Result.AddError(&FieldError{
				Field:   prefix + ".id",
				Code:    ErrCodeDuplicate,
				Message: fmt.Sprintf("duplicate id %q (first seen at index %d)", c.ID, first),
			})
		} else {
			seen[c.ID] = i
		}
		if cover := c.CoverTemplateID(); cover != "" && !known[cover] {
			report.Result.AddError(&FieldError{
				Field:   prefix + ".pages.0.template",
				Code:    ErrCodeReference,
				Message: fmt.Sprintf("unknown template %q", cover),
			})
		}
	}
	return report, nil
}
