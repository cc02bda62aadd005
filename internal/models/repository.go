package models

// SourceRepository is the repository the triggering event originated from.
type SourceRepository struct {
	Owner  string `json:"owner"`
	Name   string `json:"name"`
	NodeID string `json:"nodeId"`
}

// FullName returns the owner/name form of the repository.
func (r SourceRepository) FullName() string {
	return r.Owner + "/" + r.Name
}

// TargetRepository is the transfer destination. It always shares the source owner.
type TargetRepository struct {
	Owner  string `json:"owner"`
	Name   string `json:"name"`
	NodeID string `json:"nodeId"`
}

// FullName returns the owner/name form of the repository.
func (r TargetRepository) FullName() string {
	return r.Owner + "/" + r.Name
}
