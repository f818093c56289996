// Package repack orchestrates the container operations behind library
// curation: moving assets to their catalog's place, extracting single
// assets into standalone files, deleting assets, and editing metadata.
//
// Every mutation follows the same shape. The affected entities are loaded
// into the session document behind a staging lease so resident entities
// with colliding names survive untouched, external resources are embedded
// for the write and restored afterwards, and the container file is replaced
// atomically. Batch entry points skip unreadable containers and report
// per-file outcomes in a Summary instead of aborting the run.
package repack
