package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"go.dfds.cloud/codespaces-dashboard-refresher/internal/api"
)

const checkmark = "✓"

// Renderer turns dashboard payloads into view-slot content. Strings coming
// from the backend are stripped of markup before they are placed in HTML.
type Renderer struct {
	loc    *time.Location
	policy *bluemonday.Policy
}

func NewRenderer(loc *time.Location) *Renderer {
	if loc == nil {
		loc = time.Local
	}
	return &Renderer{
		loc:    loc,
		policy: bluemonday.StrictPolicy(),
	}
}

func (r *Renderer) text(s string) string {
	return r.policy.Sanitize(s)
}

// Stats holds the four plain-text stat slots.
type Stats struct {
	TotalCommits   string
	AvgDevelopers  string
	CodespaceHours string
	CostEstimate   string
}

func (r *Renderer) Stats(s *api.StatsResponse) Stats {
	return Stats{
		TotalCommits:   strconv.Itoa(s.TotalCommits),
		AvgDevelopers:  Number(s.AvgDevelopers),
		CodespaceHours: Hours(s.TotalCodespaceHours),
		CostEstimate:   Currency(s.CostEstimate),
	}
}

func (r *Renderer) Policies(p api.Policies) string {
	machineTypes := make([]string, len(p.MachineTypes))
	for i, mt := range p.MachineTypes {
		machineTypes[i] = r.text(mt)
	}

	items := []string{
		"Machine Types: " + strings.Join(machineTypes, ", "),
		fmt.Sprintf("Idle Timeout: %d minutes", p.IdleTimeoutMinutes),
		fmt.Sprintf("Max Retention: %d days", p.MaxRetentionDays),
		"SSO Required: " + YesNo(p.RequireSSO),
		fmt.Sprintf("Allowed Extensions: %d approved", len(p.AllowedExtensions)),
	}

	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "<li>%s %s</li>\n", checkmark, item)
	}
	return b.String()
}

// ComplianceRate is compliant / total codespaces in percent.
func ComplianceRate(c api.Compliance) Percent {
	return Ratio(float64(c.CompliantCodespaces), float64(c.TotalCodespaces))
}

func (r *Renderer) Compliance(c api.Compliance) string {
	rate := ComplianceRate(c)

	var b strings.Builder
	fmt.Fprintf(&b, "<p><strong>Total Codespaces:</strong> %d</p>\n", c.TotalCodespaces)
	fmt.Fprintf(&b, "<p><strong>Active:</strong> %d</p>\n", c.ActiveCodespaces)
	fmt.Fprintf(&b, "<p><strong>Compliance Rate:</strong> %s</p>\n", rate.Label())
	b.WriteString(progressBar(rate.Width(), ""))
	fmt.Fprintf(&b, "<p><strong>Policy Violations:</strong> %d</p>\n", c.PolicyViolations)
	fmt.Fprintf(&b, "<p style=\"font-size: 0.875rem; color: #656d76; margin-top: 8px;\">Last audit: %s</p>\n",
		r.text(LocalDateTime(c.LastAudit, r.loc)))
	return b.String()
}

// BudgetUsed is current spend / monthly budget in percent.
func BudgetUsed(c api.CostControls) Percent {
	return Ratio(c.CurrentSpend, c.MonthlyBudget)
}

func (r *Renderer) CostControls(c api.CostControls) string {
	used := BudgetUsed(c)

	var b strings.Builder
	fmt.Fprintf(&b, "<p><strong>Monthly Budget:</strong> %s</p>\n", RawCurrency(c.MonthlyBudget))
	fmt.Fprintf(&b, "<p><strong>Current Spend:</strong> %s</p>\n", RawCurrency(c.CurrentSpend))
	fmt.Fprintf(&b, "<p><strong>Projected:</strong> %s</p>\n", RawCurrency(c.ProjectedSpend))
	b.WriteString(progressBar(used.Width(), BudgetColor(used)))
	fmt.Fprintf(&b, "<p><strong>Per User Limit:</strong> %s</p>\n", RawCurrency(c.PerUserLimit))
	return b.String()
}

func progressBar(width, background string) string {
	style := "width: " + width
	if background != "" {
		style += "; background: " + background
	}
	return fmt.Sprintf("<div class=\"progress-bar\">\n<div class=\"progress-fill\" style=\"%s\"></div>\n</div>\n", style)
}
