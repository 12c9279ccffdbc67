// Package executor carries out resolved rename plans.
//
// In dry-run mode the executor never touches the filesystem and predicts
// the outcome. In apply mode every rename refuses to replace an existing
// target, and quarantine moves create their mirrored parent directories
// on demand. Finish removes the directories it created that ended up
// empty. Each Execute call affects at most one entry.
package executor
