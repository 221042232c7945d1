package api

import (
	"fmt"

	"github.com/tidwall/gjson"
)

type fieldKind int

const (
	kindNumber fieldKind = iota
	kindBool
	kindArray
)

func (k fieldKind) String() string {
	switch k {
	case kindBool:
		return "boolean"
	case kindArray:
		return "array"
	}
	return "number"
}

type requiredField struct {
	path string
	kind fieldKind
}

// shaped is implemented by responses whose rendered fields must all be
// present. A body that decodes but lacks one of them is not a usable payload.
// last_audit is left out: an absent timestamp renders as Invalid Date.
type shaped interface {
	requiredFields() []requiredField
}

func (k fieldKind) matches(r gjson.Result) bool {
	switch k {
	case kindBool:
		return r.Type == gjson.True || r.Type == gjson.False
	case kindArray:
		return r.IsArray()
	}
	return r.Type == gjson.Number
}

func checkShape(body []byte, fields []requiredField) error {
	if !gjson.ValidBytes(body) || !gjson.ParseBytes(body).IsObject() {
		return fmt.Errorf("expected a JSON object")
	}
	for _, f := range fields {
		r := gjson.GetBytes(body, f.path)
		if !r.Exists() || r.Type == gjson.Null {
			return fmt.Errorf("missing field %q", f.path)
		}
		if !f.kind.matches(r) {
			return fmt.Errorf("field %q is not a %s", f.path, f.kind)
		}
	}
	return nil
}

func (*StatsResponse) requiredFields() []requiredField {
	return []requiredField{
		{"total_commits", kindNumber},
		{"avg_developers", kindNumber},
		{"total_codespace_hours", kindNumber},
		{"cost_estimate", kindNumber},
	}
}

func (*GovernanceResponse) requiredFields() []requiredField {
	return []requiredField{
		{"policies.machine_types", kindArray},
		{"policies.idle_timeout_minutes", kindNumber},
		{"policies.max_retention_days", kindNumber},
		{"policies.require_sso", kindBool},
		{"policies.allowed_extensions", kindArray},
		{"compliance.total_codespaces", kindNumber},
		{"compliance.active_codespaces", kindNumber},
		{"compliance.compliant_codespaces", kindNumber},
		{"compliance.policy_violations", kindNumber},
		{"cost_controls.monthly_budget", kindNumber},
		{"cost_controls.current_spend", kindNumber},
		{"cost_controls.projected_spend", kindNumber},
		{"cost_controls.per_user_limit", kindNumber},
	}
}
