package domain

// OutputFilter post-processes an extracted description, e.g. removes formatting the model was asked not to produce.
type OutputFilter interface {
	FilterOutput(description string) string
}
