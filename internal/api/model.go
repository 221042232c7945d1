package api

type StatsResponse struct {
	TotalCommits        int     `json:"total_commits"`
	AvgDailyCommits     float64 `json:"avg_daily_commits"`
	TotalPRs            int     `json:"total_prs"`
	AvgDevelopers       float64 `json:"avg_developers"`
	TotalCodespaceHours float64 `json:"total_codespace_hours"`
	CostEstimate        float64 `json:"cost_estimate"`
}

type GovernanceResponse struct {
	Policies     Policies     `json:"policies"`
	Compliance   Compliance   `json:"compliance"`
	CostControls CostControls `json:"cost_controls"`
}

type Policies struct {
	MachineTypes       []string `json:"machine_types"`
	IdleTimeoutMinutes int      `json:"idle_timeout_minutes"`
	MaxRetentionDays   int      `json:"max_retention_days"`
	RequireSSO         bool     `json:"require_sso"`
	AllowedExtensions  []string `json:"allowed_extensions"`
}

type Compliance struct {
	TotalCodespaces     int    `json:"total_codespaces"`
	ActiveCodespaces    int    `json:"active_codespaces"`
	CompliantCodespaces int    `json:"compliant_codespaces"`
	PolicyViolations    int    `json:"policy_violations"`
	LastAudit           string `json:"last_audit"`
}

type CostControls struct {
	MonthlyBudget  float64 `json:"monthly_budget"`
	CurrentSpend   float64 `json:"current_spend"`
	ProjectedSpend float64 `json:"projected_spend"`
	PerUserLimit   float64 `json:"per_user_limit"`
}
