// Package forms validates and normalizes raw dashboard form fields. Every
// validator is a pure function from a field map to either a non-empty
// field-error map or a normalized payload, never both.
package forms

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Ramsey-B/clover/pkg/models"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Fields is a flat string-keyed field map as posted by a form.
type Fields map[string]string

// Get returns the named field trimmed of surrounding whitespace.
func (f Fields) Get(name string) string {
	return strings.TrimSpace(f[name])
}

// FieldKind classifies how a schema field is validated and stored.
type FieldKind string

const (
	KindText    FieldKind = "text"
	KindNumeric FieldKind = "numeric"
)

// FieldSpec declares one field of a form schema.
type FieldSpec struct {
	Name     string
	Required bool
	Kind     FieldKind
}

// submissionSchemas declares the payload field set per page. Update validation
// is driven by these instead of caller-supplied field lists, so the payload
// keys of a stored submission always match its page's schema.
var submissionSchemas = map[models.SubmissionPage][]FieldSpec{
	models.PageIntake: {
		{Name: "fullName", Required: true, Kind: KindText},
		{Name: "workEmail", Required: true, Kind: KindText},
		{Name: "company", Required: true, Kind: KindText},
		{Name: "summary", Required: true, Kind: KindText},
		{Name: "budget", Required: false, Kind: KindNumeric},
	},
	models.PageOps: {
		{Name: "team", Required: true, Kind: KindText},
		{Name: "priority", Required: true, Kind: KindText},
		{Name: "dueDate", Required: true, Kind: KindText},
		{Name: "request", Required: true, Kind: KindText},
	},
	models.PageRisk: {
		{Name: "area", Required: true, Kind: KindText},
		{Name: "level", Required: true, Kind: KindText},
		{Name: "impact", Required: true, Kind: KindText},
		{Name: "mitigation", Required: true, Kind: KindText},
	},
}

// SubmissionSchema returns the declared field specs for a page.
func SubmissionSchema(page models.SubmissionPage) ([]FieldSpec, bool) {
	specs, ok := submissionSchemas[page]
	return specs, ok
}

// ValidateIntake checks the vendor intake form and returns the normalized
// payload, or the field errors if any rule fails.
func ValidateIntake(f Fields) (map[string]any, map[string]string) {
	fullName := f.Get("fullName")
	workEmail := f.Get("workEmail")
	company := f.Get("company")
	summary := f.Get("summary")
	budgetRaw := f.Get("budget")

	fieldErrors := map[string]string{}

	if fullName == "" {
		fieldErrors["fullName"] = "Full name is required."
	}
	if workEmail == "" {
		fieldErrors["workEmail"] = "Email is required."
	} else if !emailRegex.MatchString(workEmail) {
		fieldErrors["workEmail"] = "Enter a valid email."
	}
	if company == "" {
		fieldErrors["company"] = "Company is required."
	}
	if summary == "" {
		fieldErrors["summary"] = "Project summary is required."
	}

	var budget any
	if budgetRaw != "" {
		parsed, err := strconv.ParseFloat(budgetRaw, 64)
		if err != nil || parsed < 0 {
			fieldErrors["budget"] = "Budget must be a positive number."
		} else {
			budget = parsed
		}
	}

	if len(fieldErrors) > 0 {
		return nil, fieldErrors
	}

	return map[string]any{
		"fullName":  fullName,
		"workEmail": workEmail,
		"company":   company,
		"summary":   summary,
		"budget":    budget,
	}, nil
}

// ValidateOpsRequest checks the store request form.
func ValidateOpsRequest(f Fields) (map[string]any, map[string]string) {
	team := f.Get("team")
	priority := f.Get("priority")
	dueDate := f.Get("dueDate")
	request := f.Get("request")

	fieldErrors := map[string]string{}

	if team == "" {
		fieldErrors["team"] = "Team name is required."
	}
	if priority == "" {
		fieldErrors["priority"] = "Select a priority."
	}
	if dueDate == "" {
		fieldErrors["dueDate"] = "Add a due date."
	}
	if request == "" {
		fieldErrors["request"] = "Request details are required."
	}

	if len(fieldErrors) > 0 {
		return nil, fieldErrors
	}

	return map[string]any{
		"team":     team,
		"priority": priority,
		"dueDate":  dueDate,
		"request":  request,
	}, nil
}

// ValidateRiskReview checks the issue/risk review form.
func ValidateRiskReview(f Fields) (map[string]any, map[string]string) {
	area := f.Get("area")
	level := f.Get("level")
	impact := f.Get("impact")
	mitigation := f.Get("mitigation")

	fieldErrors := map[string]string{}

	if area == "" {
		fieldErrors["area"] = "Risk area is required."
	}
	if level == "" {
		fieldErrors["level"] = "Select a risk level."
	}
	if impact == "" {
		fieldErrors["impact"] = "Impact summary is required."
	}
	if mitigation == "" {
		fieldErrors["mitigation"] = "Add a mitigation plan."
	}

	if len(fieldErrors) > 0 {
		return nil, fieldErrors
	}

	return map[string]any{
		"area":       area,
		"level":      level,
		"impact":     impact,
		"mitigation": mitigation,
	}, nil
}

// ValidateSubmissionUpdate checks an edited submission against the declared
// schema for its page. Text fields are required; numeric fields are optional
// and stored as null when empty. Any field error means no payload is produced
// at all.
func ValidateSubmissionUpdate(page models.SubmissionPage, f Fields) (map[string]any, map[string]string) {
	specs, ok := submissionSchemas[page]
	if !ok {
		return nil, map[string]string{"page": "Unknown submission page."}
	}

	payload := map[string]any{}
	fieldErrors := map[string]string{}

	for _, spec := range specs {
		raw := f.Get(spec.Name)
		switch spec.Kind {
		case KindNumeric:
			if raw == "" {
				payload[spec.Name] = nil
				continue
			}
			parsed, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				fieldErrors[spec.Name] = "Enter a valid number."
				continue
			}
			payload[spec.Name] = parsed
		default:
			if raw == "" && spec.Required {
				fieldErrors[spec.Name] = "This field is required."
			}
			payload[spec.Name] = raw
		}
	}

	if len(fieldErrors) > 0 {
		return nil, fieldErrors
	}

	return payload, nil
}
