// Package core ties the vCard reader and the CSV emitter together into
// conversions that the CLI and the HTTP surface share.
//
// It holds no transport or terminal code, so it can be used by the cobra
// commands, the web handlers, or tests without modification.
//
// # Conversions
//
// [Service.ConvertFile] reads one .vcf file and writes a CSV file next to it
// under a name that never overwrites an existing file:
//
//	svc := core.NewService()
//	res, err := svc.ConvertFile(ctx, "contacts.vcf")
//	// res.Output == "contacts.csv" (or contacts_1.csv, ...)
//	// res.Processed, res.Skipped
//
// [Service.Convert] does the same between an io.Reader and an io.Writer and
// is what the upload handler uses.
//
// Every conversion gets a run ID (a UUID) that is attached to its log
// entries and returned in [Result.RunID].
//
// # Malformed input
//
// Malformed cards are not errors. They are counted in [Result.Skipped], with
// the line and reason of each in [Result.Skips]. Errors are reserved for I/O
// failures and cancellation.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each category has its own code range for support reference:
//
//   - FILE001-FILE006: input file errors (size, missing, empty)
//   - OUT001-OUT002: output file errors
//   - CNV001-CNV004: conversion errors (busy, cancelled, timeout)
//
// # Concurrency
//
// [Limiter] bounds how many conversions run at once in the HTTP server.
// The CLI runs a single conversion and does not use it.
package core
