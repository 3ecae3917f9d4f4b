// Package stratchat answers questions about a digital transformation
// strategy document. It flattens the document into a local knowledge base,
// matches user questions against it, routes questions that need outside
// knowledge to a search-grounded model, and phrases every answer through a
// hosted language model.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., gemini/, sqlite/, fsnotify/).
package stratchat
