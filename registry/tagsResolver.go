package registry

import "github.com/iulianpascalau/metrics-registry/metrics"

// tagsResolver matches required tags against the tags optionally declared by definitions
type tagsResolver struct {
}

// NewTagsResolver creates a tags resolver backed by the definitions' own declared tags
func NewTagsResolver() *tagsResolver {
	return &tagsResolver{}
}

// HasTags returns true when the definition declares every required tag. An empty
// requirement matches any definition; a definition without tags matches none
func (resolver *tagsResolver) HasTags(definition metrics.Definition, required []string) bool {
	if len(required) == 0 {
		return true
	}

	tagged, ok := definition.(metrics.TagsHandler)
	if !ok {
		return false
	}

	declared := make(map[string]struct{})
	for _, tag := range tagged.Tags() {
		declared[tag] = struct{}{}
	}

	for _, tag := range required {
		_, found := declared[tag]
		if !found {
			return false
		}
	}

	return true
}

// IsInterfaceNil returns true if the value under the interface is nil
func (resolver *tagsResolver) IsInterfaceNil() bool {
	return resolver == nil
}
