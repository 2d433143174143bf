// Package fileutil walks documentation trees in a deterministic order.
//
// Walk returns a lazy, restartable sequence of matching file paths. Within
// each directory, files are yielded in sorted name order before the walk
// descends into subdirectories, which are themselves visited in sorted order.
// The resulting order is stable across runs and platforms, which keeps CI
// output reproducible.
//
// # Filtering
//
//	for path, err := range fileutil.Walk(".", fileutil.WalkOptions{
//	    Extensions:  []string{".adoc"},
//	    ExcludeDirs: []string{".git"},
//	}) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(path)
//	}
//
// Extensions are matched case-insensitively and may be given with or without
// the leading dot. ExcludeDirs matches directory base names anywhere in the
// tree.
//
// # Errors
//
// Traversal errors are fatal. An unreadable directory or a missing root is
// yielded once as a non-nil error and the sequence ends; nothing is skipped
// silently.
package fileutil
