package trieve

import (
	"errors"

	"github.com/helixml/trieve-go/domain/model"
)

// Exported errors for library consumers.
var (
	// ErrUnknownModel indicates the name is not a registered model.
	ErrUnknownModel = model.ErrUnknownModel

	// ErrNoDocument indicates the catalog was built without an OpenAPI document.
	ErrNoDocument = errors.New("trieve: no openapi document loaded")
)
