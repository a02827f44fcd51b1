// Package todo maintains the markdown task document that collects a follow-up
// entry for every extracted archive.
//
// Entries are appended, never rewritten: the document is owned by a person
// and edited by hand between runs, so the package only reads it to check for
// an existing heading and then writes with O_APPEND. Parsing for display goes
// through goldmark with the task list extension so checkbox state is read the
// same way a markdown renderer would read it.
package todo
