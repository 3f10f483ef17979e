/*
Package ports defines the driven ports (interfaces) for the courier workflow.

These interfaces decouple the triage graph from external implementations:
nodes call collaborators for domain judgments and side effects, and the
service archives completed runs through a store.

# Key Interfaces

  - Classifier: judges an incoming record (flagged or legitimate, with category).
  - Responder: drafts a reply for a legitimate record.
  - Notifier: delivers a notification with the prepared draft.
  - ResultStore: archives the Outcome of completed runs for later lookup.
*/
package ports
