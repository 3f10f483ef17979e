// Package mail holds the record types shared by the triage workflow and
// its collaborator contracts.
package mail

// Roles for Exchange entries.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Email is the incoming record a workflow run processes.
type Email struct {
	Sender  string `json:"sender" yaml:"sender"`
	Subject string `json:"subject" yaml:"subject"`
	Body    string `json:"body" yaml:"body"`
}

// Exchange is one entry of the collaborator conversation log: a prompt sent
// or an answer received. Runs accumulate exchanges append-only for audit.
type Exchange struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
