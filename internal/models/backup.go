package models

// Backup is the portable dump of all collections. Pointer fields
// distinguish "key absent" from "key present but empty" so partial
// imports only touch the collections the file actually carries.
type Backup struct {
	Teachers *[]Teacher `json:"professores,omitempty"`
	Events   *[]Event   `json:"eventos,omitempty"`
	Students *[]Student `json:"alunos,omitempty"`
	Config   *AppConfig `json:"config,omitempty"`
}

// Empty reports whether the backup carries none of the known keys.
func (b Backup) Empty() bool {
	return b.Teachers == nil && b.Events == nil && b.Students == nil && b.Config == nil
}
