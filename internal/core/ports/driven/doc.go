// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Backend: The command surface over store and model runtimes
//   - GraphStore: Document, entity, and edge persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Embedder: Generates vector embeddings. Without it, chunks are
//     stored unvectored and semantic search is unavailable.
//   - KnowledgeExtractor: LLM entity and relation extraction. Without
//     it, graph construction is unavailable.
//   - ChatStreamer: Streaming completions. Without it, chat is
//     unavailable.
//   - ModelCatalog: Downloadable model listing.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
