// Package tenant defines the query-narrowing scope every tenant-scoped
// repository call takes explicitly. Carrying it as a parameter instead of
// ambient state makes an unscoped query impossible to write by accident.
package tenant

type scopeKind int

const (
	scopeNone scopeKind = iota
	scopeAll
	scopeCompany
	scopeManufacturer
)

// Scope restricts a query to the caller's authorization boundary.
type Scope struct {
	kind           scopeKind
	companyID      string
	manufacturerID string
}

// ScopeNone matches no rows (inactive or unbound membership).
func ScopeNone() Scope { return Scope{kind: scopeNone} }

// ScopeAll matches every row (internal admin).
func ScopeAll() Scope { return Scope{kind: scopeAll} }

// ScopeCompany matches rows owned by one tenant.
func ScopeCompany(companyID string) Scope {
	return Scope{kind: scopeCompany, companyID: companyID}
}

// ScopeManufacturer matches rows linked to one manufacturer.
func ScopeManufacturer(manufacturerID string) Scope {
	return Scope{kind: scopeManufacturer, manufacturerID: manufacturerID}
}

// None reports the empty scope.
func (s Scope) None() bool { return s.kind == scopeNone }

// All reports the unrestricted scope.
func (s Scope) All() bool { return s.kind == scopeAll }

// Company returns the tenant restriction, if any.
func (s Scope) Company() (string, bool) {
	return s.companyID, s.kind == scopeCompany
}

// Manufacturer returns the manufacturer restriction, if any.
func (s Scope) Manufacturer() (string, bool) {
	return s.manufacturerID, s.kind == scopeManufacturer
}

// Allows reports whether a row owned by companyID falls inside the scope.
// Manufacturer scopes never own company rows directly; resource-specific
// repositories interpret them (e.g. items by manufacturer_id).
func (s Scope) Allows(companyID string) bool {
	switch s.kind {
	case scopeAll:
		return true
	case scopeCompany:
		return s.companyID == companyID
	default:
		return false
	}
}
