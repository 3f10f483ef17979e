/*
Package courier is a typed directed-graph workflow engine for record triage.

It processes incoming email records through a compiled workflow graph: each
record is read, judged by a Classifier collaborator, and either set aside
with a flag note or answered with a drafted reply delivered through a
Notifier. The graph engine itself (pkg/graph) is generic and reusable; the
triage topology (pkg/triage) is the reference workflow.

# Architecture

The core is decoupled from its collaborators through ports (pkg/ports):
Classifier, Responder, and Notifier are injected at construction, so the
engine can run against a language model service, a rule set, or test stubs
without changing the workflow. Completed runs are archived through a
ResultStore (in-memory or Redis).

# Usage

	svc, err := courier.New(triage.Collaborators{
		Classifier: memory.DefaultClassifier(),
		Responder:  memory.NewResponder(),
		Notifier:   console.New(),
	})
	if err != nil {
		log.Fatal(err)
	}

	outcome, err := svc.Process(ctx, mail.Email{
		Sender:  "john.smith@example.com",
		Subject: "Question about your services",
		Body:    "Could we schedule a call next week?",
	})

Every run is independent: the compiled graph is read-only and shared, each
run owns its own state container, and Process may be called concurrently.
*/
package courier
