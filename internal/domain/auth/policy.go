package auth

// policy is the single authorization table for the whole API: (resource,
// action) to the set of roles allowed to perform it. Operations absent from
// the table are open to any authenticated identity.
var policy = map[string][]string{
	"employees.create": {RoleAdmin, RoleManager},
	"employees.update": {RoleAdmin, RoleManager},
	"employees.delete": {RoleAdmin},

	"departments.create": {RoleAdmin},
	"departments.update": {RoleAdmin},
	"departments.delete": {RoleAdmin},

	"leaves.decide": {RoleAdmin, RoleManager},

	"contracts.create": {RoleAdmin, RoleManager},
	"contracts.update": {RoleAdmin, RoleManager},
	"contracts.sign":   {RoleAdmin, RoleManager},
	"contracts.stats":  {RoleAdmin, RoleManager},
	"contracts.export": {RoleAdmin, RoleManager},
	"contracts.delete": {RoleAdmin},

	"reports.export": {RoleAdmin, RoleManager},
}

// Allowed reports whether role may perform action on resource.
func Allowed(resource, action, role string) bool {
	roles, restricted := policy[resource+"."+action]
	if !restricted {
		return true
	}
	for _, allowed := range roles {
		if role == allowed {
			return true
		}
	}
	return false
}
