// Package utils provides small filesystem and system helpers shared across
// Ngaio commands: project root discovery and user/host identification.
package utils
