// Package loader fetches and parses the dataset exactly once per session.
//
// A Loader moves through Pending -> Loading -> Ready or Failed and never
// leaves Ready or Failed. There are no retries: a failure is terminal and
// callers are expected to show a permanent "unable to load" placeholder.
// The State value is passed explicitly to every consumer, which must not
// derive anything from a dataset before the state is Ready.
package loader
