// Package pipeline drives password batches from draft to acceptance.
//
// Pipeline.Generate runs the generation loop. For every requested password
// it drafts a candidate and, in safe mode, asks the breach checker about it:
//
//	Draft -> Checked -> Safe         accept, next password
//	                 -> Leaked       discard, draft again (bounded)
//	                 -> LookupFailed abort the whole batch
//
// Generation is strictly sequential: one candidate, one lookup at a time.
//
// Auditor checks existing passwords for the `check` command. Those lookups
// are independent of each other and run concurrently under an errgroup
// limit.
package pipeline
