// Package report renders generation batches, breach audits and history
// listings.
//
// Four formats are supported: plain text for the terminal, JSON and YAML
// for scripts, and Markdown for documentation. Every writer targets an
// io.Writer, so the caller chooses between stdout and a file.
package report
