package domain

// DocumentRecord describes one ingested document as reported by the server.
// The server is the source of truth: records are never patched field-by-field
// client side, only replaced wholesale by a catalog refresh.
type DocumentRecord struct {
	// ID is the opaque unique identifier assigned at ingestion time.
	ID string

	// Source is the display name, typically the uploaded filename.
	Source string

	// Chunks is the number of indexed chunks. Never negative.
	Chunks int

	// EmbeddingModel is the model used to embed the chunks.
	EmbeddingModel string
}

// SourceRef is a retrieval citation attached to an assistant reply.
type SourceRef struct {
	// Source is the display name of the cited document.
	Source string

	// Page is the page number within the document, when known.
	Page *int

	// Snippet is a short excerpt of the matched content.
	Snippet string
}

// UploadResult is the server's acknowledgement of a document upload.
// The full DocumentRecord is only discoverable on the next catalog
// refresh; the upload call itself returns just these two fields.
type UploadResult struct {
	// Filename is the stored name of the uploaded file.
	Filename string

	// Chunks is the number of chunks produced by ingestion.
	Chunks int
}
