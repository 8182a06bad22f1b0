// Package preflight provides readiness checks for the folders condodocs reads
// from and writes to.
//
// These checks run in two contexts:
//   - Every organizing command calls Require before touching files. If an
//     input folder is unreadable or the output root cannot be created, the
//     command stops before any file moves.
//   - The CLI "condodocs config validate" command uses RunAll to display the
//     status of every configured folder.
package preflight
