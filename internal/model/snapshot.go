package model

// Snapshot is the read-only data set the chat answers from. It is built
// once at startup and shared by every request.
type Snapshot struct {
	Catalog  *ProductCatalog
	Policies map[PolicyKind]*PolicyDocument
}

// Policy returns the document of the given kind, or nil.
func (s *Snapshot) Policy(kind PolicyKind) *PolicyDocument {
	if s == nil || s.Policies == nil {
		return nil
	}
	return s.Policies[kind]
}
