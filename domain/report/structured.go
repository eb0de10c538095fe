package report

// StructuredOptions controls the structured (JSON-compatible) result view
type StructuredOptions struct {
	// IncludeRender embeds bulky visualization payloads in the output
	IncludeRender bool
	// Include restricts a metric's rendered fields to the listed keys,
	// keyed by metric type tag. Nil means all fields.
	Include map[string][]string
	// Exclude drops the listed keys from a metric's rendered fields,
	// keyed by metric type tag.
	Exclude map[string][]string
}

// FilterFields applies include/exclude key filters to a rendered structure,
// returning a new map. Include wins over exclude when both name a key.
func FilterFields(structure map[string]interface{}, include, exclude []string) map[string]interface{} {
	out := make(map[string]interface{}, len(structure))
	if len(include) > 0 {
		for _, key := range include {
			if v, ok := structure[key]; ok {
				out[key] = v
			}
		}
		return out
	}
	excluded := make(map[string]bool, len(exclude))
	for _, key := range exclude {
		excluded[key] = true
	}
	for k, v := range structure {
		if !excluded[k] {
			out[k] = v
		}
	}
	return out
}
