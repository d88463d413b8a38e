package access

import "github.com/google/uuid"

// Kind names a resource kind governed by the policy tables.
type Kind string

const (
	// KindPatients covers the patient directory records.
	KindPatients Kind = "patients"
	// KindObservations covers clinical observations: vitals and notes.
	KindObservations Kind = "observations"
	// KindLabRequests covers the student-facing imaging/blood-test request
	// endpoints.
	KindLabRequests Kind = "lab_requests"
	// KindLabManagement covers the instructor-facing request management
	// surface.
	KindLabManagement Kind = "lab_management"
	// KindFileManagement covers file metadata upload/edit/delete.
	KindFileManagement Kind = "file_management"
	// KindFileListing covers listing which files exist. Row-level filtering
	// of what a student sees is a query concern, not handled here.
	KindFileListing Kind = "file_listing"
	// KindFileContent covers viewing or downloading file bytes. Students
	// additionally need a grant from the grants package; this table only
	// answers the method-level question.
	KindFileContent Kind = "file_content"
)

// SafeMethods are the read-only HTTP methods.
var SafeMethods = []string{"GET", "HEAD", "OPTIONS"}

var allMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}

// rolePermissions maps each resource kind to the methods a role may use.
// Methods absent from a role's list are denied. Admin is granted everything
// implicitly unless a kind lists admin explicitly.
var rolePermissions = map[Kind]map[Role][]string{
	KindPatients: {
		RoleStudent:    SafeMethods,
		RoleInstructor: allMethods,
	},
	KindObservations: {
		RoleStudent:    allMethods,
		RoleInstructor: SafeMethods,
	},
	KindLabRequests: {
		RoleStudent: {"GET", "POST", "HEAD", "OPTIONS"},
	},
	KindLabManagement: {
		RoleInstructor: allMethods,
	},
	KindFileManagement: {
		RoleInstructor: allMethods,
	},
	KindFileListing: {
		RoleStudent:    SafeMethods,
		RoleInstructor: allMethods,
	},
	KindFileContent: {
		RoleStudent:    SafeMethods,
		RoleInstructor: allMethods,
	},
}

// Ownable is implemented by records that belong to a specific user. Object
// checks fall back to denying access when a target does not expose
// ownership.
type Ownable interface {
	OwnerID() (uuid.UUID, bool)
}

// Decision carries one request's resolved role so that the collection-level
// and object-level checks of the same authorization decision do not resolve
// it twice.
type Decision struct {
	principal *Principal
	role      Role
	resolved  bool
}

// Check resolves the principal's role once for the lifetime of the decision.
func Check(p *Principal) Decision {
	role, ok := ResolveRole(p)
	return Decision{principal: p, role: role, resolved: ok}
}

// Allows answers the collection-level question: may this role use this
// method on this resource kind at all. Denials are answered with false,
// never an error.
func (d Decision) Allows(method string, kind Kind) bool {
	if !d.resolved {
		return false
	}

	table := rolePermissions[kind]
	if d.role == RoleAdmin {
		if _, restricted := table[RoleAdmin]; !restricted {
			return true
		}
	}
	return contains(table[d.role], method)
}

// AllowsObject answers the object-level question for a concrete target
// record. Kinds without an explicit object rule deny access unless the
// target exposes an ownership attribute matching the principal.
func (d Decision) AllowsObject(method string, kind Kind, target any) bool {
	if !d.resolved {
		return false
	}
	if d.role == RoleAdmin {
		return true
	}

	switch kind {
	case KindObservations:
		if d.role == RoleInstructor {
			return contains(SafeMethods, method)
		}
		return d.owns(target)

	case KindLabRequests:
		// Students may only read their own requests back; edits after
		// creation go through the instructor surface.
		if d.role == RoleStudent {
			return d.owns(target) && contains(SafeMethods, method)
		}
		return false

	case KindPatients, KindLabManagement, KindFileManagement, KindFileListing, KindFileContent:
		return d.Allows(method, kind)

	default:
		// Fail closed: an unknown kind grants nothing beyond ownership.
		return d.owns(target)
	}
}

func (d Decision) owns(target any) bool {
	o, ok := target.(Ownable)
	if !ok {
		return false
	}
	owner, ok := o.OwnerID()
	return ok && owner == d.principal.ID
}

// CheckAccess is the authorization gate endpoints call: one collection-level
// check, plus an object-level check when a target record is supplied.
func CheckAccess(p *Principal, method string, kind Kind, target any) bool {
	d := Check(p)
	if !d.Allows(method, kind) {
		return false
	}
	if target == nil {
		return true
	}
	return d.AllowsObject(method, kind, target)
}

func contains(methods []string, method string) bool {
	for _, m := range methods {
		if m == method {
			return true
		}
	}
	return false
}
