// Package organizer materializes classification results on disk.
//
// Every operation reduces to a list of Placements (source file, destination
// folder, destination name, copy or move). Place creates destination folders
// idempotently, skips missing sources with a warning, and resolves existing
// destinations with the configured ConflictPolicy so reruns never pile up
// duplicate copies. Copies preserve mode and modification time and are
// verified by size and SHA-256; moves fall back to copy-then-remove across
// filesystems.
//
// Higher-level operations (PairByIdentifier, SortByIdentifier, OrganizeNotas,
// OrganizeBoletos, LinkFolders, CompareDocuments) build placements from
// classify groups and return a Summary of what happened.
package organizer
