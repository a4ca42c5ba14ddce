package definition

import "fmt"

// SchemaError reports a defect in the input definition: an unresolved type
// reference, a malformed descriptor or an unrecognized primitive kind.
// Generation never recovers from it.
type SchemaError struct {
	// Subject locates the defect, e.g. "models.Pet.owner".
	Subject string
	Detail  string
	// Descriptor is the offending descriptor when one is involved.
	Descriptor *Descriptor
}

func (e *SchemaError) Error() string {
	if e.Descriptor != nil {
		return fmt.Sprintf("definition: %s: %s (%s)", e.Subject, e.Detail, e.Descriptor)
	}
	return fmt.Sprintf("definition: %s: %s", e.Subject, e.Detail)
}
