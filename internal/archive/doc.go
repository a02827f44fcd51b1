// Package archive turns an arrived zip file into an extracted directory.
//
// Processor runs the pipeline for one candidate path: wait until no other
// process holds the file, pick a collision-free target directory under the
// destination, extract every entry, delete the source archive and append a
// follow-up entry to the task document. Each step's outcome is reported as a
// Result rather than an error so callers can keep going after a bad archive.
//
// Extraction runs against an afero.Fs so the pipeline can be exercised on an
// in-memory filesystem; the readiness probe always targets the real file.
package archive
