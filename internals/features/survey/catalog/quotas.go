package catalog

// QuotaTargets fixes the sampling targets per (province, role). A "both"
// respondent counts toward both role quotas. Targets come from the field
// survey plan and are not operator-configurable.
var QuotaTargets = map[string]map[string]int{
	"balochistan": {RoleLegal: 6, RoleCustoms: 6},
	"ict":         {RoleLegal: 6, RoleCustoms: 6},
	"kpk":         {RoleLegal: 6, RoleCustoms: 6},
	"punjab":      {RoleLegal: 6, RoleCustoms: 6},
	"sindh":       {RoleLegal: 6, RoleCustoms: 6},
}

// Completion-score weights. Display heuristic only, not an invariant.
const (
	WeightGeneric      = 30
	WeightRoleSpecific = 50
	WeightFinal        = 20
)
