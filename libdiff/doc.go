// Package libdiff computes line-level differences between a document and
// its formatted form.
//
// Lines produces the edits that turn one text into another. Editors apply
// them as text edits so that formatting leaves unchanged lines, and with
// them cursors and marks, untouched. Unified renders the same edits as a
// unified diff for the command line. Apply and Reverse check and invert
// edits.
package libdiff
