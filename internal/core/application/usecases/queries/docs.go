// Package queries contains read-only operations over the document store and
// the transition journal. Handlers never write.
package queries
