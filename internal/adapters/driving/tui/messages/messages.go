// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/localrag/ragchat-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewChat is the conversation view.
	ViewChat
	// ViewDocuments lists the server document catalog.
	ViewDocuments
	// ViewUpload is the document upload view.
	ViewUpload
	// ViewProvider is the provider and model selection view.
	ViewProvider
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewChat:
		return "chat"
	case ViewDocuments:
		return "documents"
	case ViewUpload:
		return "upload"
	case ViewProvider:
		return "provider"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ChatCompleted carries the outcome of a chat turn back to the model.
// RequestID identifies the turn so stale completions can be discarded.
type ChatCompleted struct {
	RequestID string
	Reply     domain.TurnReply
	Err       error
}

// CatalogRefreshed signals a catalog fetch finished. The snapshot
// itself lives in the catalog service; views re-read it on receipt.
type CatalogRefreshed struct {
	Err error
}

// CatalogTick drives the periodic catalog refresh while the documents
// view is visible. Gen identifies the poll chain that scheduled the
// tick; ticks from an earlier chain are ignored, so re-entering the
// view never leaves two chains running.
type CatalogTick struct {
	Gen int
}

// DocumentDeleted signals a delete operation finished.
type DocumentDeleted struct {
	DocumentID string
	Err        error
}

// UploadCompleted carries the outcome of a document upload.
type UploadCompleted struct {
	Result domain.UploadResult
	Err    error
}

// ModelsLoaded carries the model names available on the local provider.
type ModelsLoaded struct {
	Models []string
	Err    error
}

// SettingsSaved signals provider settings were persisted.
type SettingsSaved struct {
	Err error
}
