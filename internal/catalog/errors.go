package catalog

import (
	"fmt"

	"github.com/masar-app/masar/internal/types"
)

// UnknownTemplateError indicates a template id that is not in the catalog.
type UnknownTemplateError struct {
	ID types.TemplateID
}

func (e *UnknownTemplateError) Error() string {
	return fmt.Sprintf("unknown template id: %q", e.ID)
}
