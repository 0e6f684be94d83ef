// Package risk manages the project risk register.
//
// The register lives at .ngaio/risks.yaml: flat entries with an ID, a
// description, a score, mapped controls, and a treatment status drawn from
// {Open, Mitigated, Accepted}. The only supported mutation is an explicit
// status update; entry creation and editing happen in the file directly so
// the change is reviewable.
package risk
