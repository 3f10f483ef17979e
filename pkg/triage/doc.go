// Package triage implements the reference record-triage workflow: an
// incoming email is read, judged by a Classifier, and either set aside with
// a flag note or answered with a drafted reply that is handed to a
// Notifier. The topology is a five-node graph with one conditional
// divergence after classification.
package triage
