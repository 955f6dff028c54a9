// Package importer loads raw templates into a template library.
//
// Imports validate every template up front, skip templates whose content ID
// is already stored, write the rest in batches and retry batches that lose
// a transaction conflict with exponential backoff. Progress is reported to
// an io.Writer.
package importer
