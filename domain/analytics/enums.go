// Package analytics provides the request bodies of the Trieve analytics
// endpoints.
package analytics

import (
	"slices"

	"github.com/helixml/trieve-go/domain/model"
)

func init() {
	model.RegisterNullable[EventTypesFilter]()
	model.RegisterNullable[RagTypes]()
	model.RegisterNullable[RAGSortBy]()
}

// EventTypesFilter restricts events to one kind.
type EventTypesFilter string

// EventTypesFilter values.
const (
	EventAddToCart     EventTypesFilter = "add_to_cart"
	EventPurchase      EventTypesFilter = "purchase"
	EventView          EventTypesFilter = "view"
	EventClick         EventTypesFilter = "click"
	EventFilterClicked EventTypesFilter = "filter_clicked"
	EventSearch        EventTypesFilter = "search"
)

var eventTypes = []string{"add_to_cart", "purchase", "view", "click", "filter_clicked", "search"}

// Valid reports whether e is a declared value.
func (e EventTypesFilter) Valid() bool { return slices.Contains(eventTypes, string(e)) }

// Values lists the declared values.
func (EventTypesFilter) Values() []string { return slices.Clone(eventTypes) }

// RagTypes tells which chunks were handed to the model.
type RagTypes string

// RagTypes values.
const (
	RagChosenChunks RagTypes = "chosen_chunks"
	RagAllChunks    RagTypes = "all_chunks"
)

var ragTypes = []string{"chosen_chunks", "all_chunks"}

// Valid reports whether r is a declared value.
func (r RagTypes) Valid() bool { return slices.Contains(ragTypes, string(r)) }

// Values lists the declared values.
func (RagTypes) Values() []string { return slices.Clone(ragTypes) }

// RAGSortBy is the column RAG query listings are ordered by.
type RAGSortBy string

// RAGSortBy values.
const (
	RAGSortByCreatedAt RAGSortBy = "created_at"
	RAGSortByLatency   RAGSortBy = "latency"
	RAGSortByTopScore  RAGSortBy = "top_score"
)

var ragSortBy = []string{"created_at", "latency", "top_score"}

// Valid reports whether s is a declared value.
func (s RAGSortBy) Valid() bool { return slices.Contains(ragSortBy, string(s)) }

// Values lists the declared values.
func (RAGSortBy) Values() []string { return slices.Clone(ragSortBy) }
